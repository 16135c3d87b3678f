// knightroutes prints every shortest knight route between two squares.
package main

import "github.com/hailam/knightroutes/cmd/knightroutes/cmd"

func main() {
	cmd.Execute()
}
