// Knight route viewer built with Ebitengine
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/knightroutes/internal/config"
	"github.com/hailam/knightroutes/internal/search"
	"github.com/hailam/knightroutes/internal/storage"
	"github.com/hailam/knightroutes/internal/ui"
)

var (
	configPath = flag.String("config", "", "configuration file")
	squareSize = flag.Int("size", 0, "square size in pixels (0 uses the configured value)")
	sorted     = flag.Bool("sorted", false, "enumerate routes in square order")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [XY-XY]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	request := "A1-H8"
	if flag.NArg() > 0 {
		request = flag.Arg(0)
	}
	req, err := search.ParseRequest(request)
	if err != nil {
		log.Fatal(err)
	}

	cfg := loadConfig()
	size := cfg.Image.SquareSize
	if *squareSize > 0 {
		size = *squareSize
	}

	res, err := search.Solve(req.Start, req.Target,
		search.WithSortedPredecessors(*sorted || cfg.Search.SortedPredecessors))
	if err != nil {
		log.Fatal(err)
	}

	viewer, err := ui.NewViewer(res, size, cfg.Output.Separator)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewer.ScreenSize())
	ebiten.SetWindowTitle("Knight Routes " + req.String())

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() *config.Config {
	path := *configPath
	if path == "" {
		if p, err := storage.DefaultConfigPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		log.Printf("Warning: %v (using default settings)", err)
		return config.Default()
	}
	return cfg
}
