package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hailam/knightroutes/internal/protocol"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer route requests interactively",
	Long: `Read commands from standard input, one per line, and answer them on
standard output. Type "help" in the session for the command list.

Examples:
  knightroutes serve
  printf 'draw on\nA1-H8\n' | knightroutes serve --no-cache`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	session := protocol.New(env.solver, env.printer)
	return session.Run(cmd.InOrStdin(), cmd.OutOrStdout())
}
