package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/hailam/knightroutes/internal/config"
	"github.com/hailam/knightroutes/internal/report"
	"github.com/hailam/knightroutes/internal/search"
	"github.com/hailam/knightroutes/internal/storage"
)

// environment is what every command needs to answer requests.
type environment struct {
	cfg     *config.Config
	printer report.Printer
	solver  report.Solver

	// cache is nil when caching is disabled or unavailable.
	cache *storage.Storage
}

// setup loads the configuration, applies the flags the user set on top of
// it, and opens the route cache.
func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	env := &environment{
		cfg: cfg,
		printer: report.Printer{
			Separator: cfg.Output.Separator,
			Draw:      cfg.Output.Draw,
			Verbose:   cfg.Output.Verbose,
			Summary:   cfg.Output.Summary,
			Sorted:    cfg.Search.SortedPredecessors,
		},
	}

	if cfg.Cache.Enabled {
		env.cache = openCache(cfg.Cache.Dir)
	}
	if env.cache != nil {
		env.solver = storage.NewCachedSolver(env.cache, cfg.Search.SortedPredecessors)
	} else {
		env.solver = report.DirectSolver(search.WithSortedPredecessors(cfg.Search.SortedPredecessors))
	}
	return env, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = storage.DefaultConfigPath(); err != nil {
			log.Printf("Warning: no data directory: %v (using default settings)", err)
		}
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("draw") {
		cfg.Output.Draw = drawBoards
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = verboseMode
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = summary
	}
	if flags.Changed("sep") {
		cfg.Output.Separator = separator
	}
	if flags.Changed("sorted") {
		cfg.Search.SortedPredecessors = sortedPreds
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openCache opens the route cache, or returns nil and carries on uncached.
func openCache(dir string) *storage.Storage {
	var (
		store *storage.Storage
		err   error
	)
	if dir != "" {
		store, err = storage.Open(dir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: route cache unavailable: %v", err)
		return nil
	}
	return store
}

// Close releases the route cache.
func (e *environment) Close() {
	if e.cache == nil {
		return
	}
	if err := e.cache.Close(); err != nil {
		log.Printf("Warning: closing route cache: %v", err)
	}
}
