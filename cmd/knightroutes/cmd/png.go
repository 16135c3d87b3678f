package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hailam/knightroutes/internal/render"
	"github.com/hailam/knightroutes/internal/report"
	"github.com/hailam/knightroutes/internal/search"
)

var (
	pngOutput   string
	pngRoute    int
	pngExplored bool
	pngSVG      bool
	pngSize     int
)

var pngCmd = &cobra.Command{
	Use:   "png XY-XY",
	Short: "Draw a solved request as an image",
	Long: `Solve one request and draw its search layers on a board image. One of
the routes, numbered as in the route listing, is traced over the layers.

Examples:
  knightroutes png A1-H8                    # Writes A1-H8.png with route 1
  knightroutes png A1-H8 --route 0 -o a.png # Layers only
  knightroutes png E4-E5 --explored         # Every explored layer, not just the pruned ones
  knightroutes png A1-B1 --svg -o -         # SVG source on stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runPNG,
}

func init() {
	rootCmd.AddCommand(pngCmd)

	pngCmd.Flags().StringVarP(&pngOutput, "output", "o", "",
		"output file, - for stdout (default is START-TARGET.png)")
	pngCmd.Flags().IntVarP(&pngRoute, "route", "r", 1,
		"route number to trace, 0 for none")
	pngCmd.Flags().BoolVar(&pngExplored, "explored", false,
		"draw every explored layer instead of the pruned layers")
	pngCmd.Flags().BoolVar(&pngSVG, "svg", false,
		"write the board as SVG without labels")
	pngCmd.Flags().IntVar(&pngSize, "size", 0,
		"square size in pixels (0 uses the configured value)")
}

func runPNG(cmd *cobra.Command, args []string) error {
	req, err := search.ParseRequest(args[0])
	if err != nil {
		return err
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.solver.Solve(req)
	if err != nil {
		return err
	}

	frame, err := buildFrame(res, env.printer.Separator)
	if err != nil {
		return err
	}

	size := env.cfg.Image.SquareSize
	if pngSize > 0 {
		size = pngSize
	}
	renderer, err := render.NewImageRenderer(size, nil)
	if err != nil {
		return err
	}

	name := pngOutput
	if name == "" {
		ext := ".png"
		if pngSVG {
			ext = ".svg"
		}
		name = req.String() + ext
	}

	var w io.Writer = cmd.OutOrStdout()
	if name != "-" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if pngSVG {
		_, err = w.Write(renderer.SVG(frame))
		return err
	}

	img, err := renderer.Render(frame)
	if err != nil {
		return err
	}
	if err := render.WritePNG(w, img); err != nil {
		return err
	}
	if name != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d)\n", name, renderer.Size(), renderer.Size())
	}
	return nil
}

// buildFrame selects the layers and the route to draw. Routes are numbered
// in the order the route listing prints them.
func buildFrame(res *search.Result, sep string) (render.Frame, error) {
	layers := res.Layers
	if pngExplored {
		layers = res.Explored
	}
	frame := render.Frame{
		Layers: report.Bitboards(layers),
		Target: res.Target,
	}

	if pngRoute == 0 {
		return frame, nil
	}
	if pngRoute < 0 || pngRoute > len(res.Routes) {
		return frame, fmt.Errorf("route %d out of range 1-%d", pngRoute, len(res.Routes))
	}

	routes := slices.Clone(res.Routes)
	search.SortRoutes(routes, sep)
	frame.Route = routes[pngRoute-1]
	return frame, nil
}
