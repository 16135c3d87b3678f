package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/hailam/knightroutes/internal/search"
)

var (
	// Global flags
	configPath  string
	noCache     bool
	cpuProfile  string
	drawBoards  bool
	verboseMode bool
	summary     bool
	sortedPreds bool
	separator   string
	workers     int

	profileFile *os.File
)

// errUsage is returned when there is nothing to solve; the usage text has
// already been printed.
var errUsage = errors.New("no route requests")

var rootCmd = &cobra.Command{
	Use:   "knightroutes [flags] XY-XY ...",
	Short: "Find every shortest knight route between two squares",
	Long: `Find every shortest sequence of knight moves from a start square to a
target square on a chess board.

Each request is written START-TARGET with squares from A1 to H8. The routes
of every request are printed sorted and numbered.

Examples:
  knightroutes A1-H8                 # All 108 six-move routes
  knightroutes --draw A1-B1 D4-E5    # Draw the pruned search layers
  knightroutes --verbose E4-E5       # Draw every layer while searching
  knightroutes serve                 # Interactive session on stdin
  knightroutes png A1-H8 -o a1h8.png # Board image with the first route`,
	Version:           "1.0.0",
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: startProfile,
	RunE:              runRoot,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	stopProfile()

	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "",
		"configuration file (default is config.yaml in the data directory)")
	flags.BoolVar(&noCache, "no-cache", false,
		"do not read or write the route cache")
	flags.StringVar(&cpuProfile, "cpuprofile", "",
		"write cpu profile to file")
	flags.BoolVarP(&drawBoards, "draw", "d", false,
		"show solutions on chessboard")
	flags.BoolVarP(&verboseMode, "verbose", "v", false,
		"show solving steps on chessboard")
	flags.BoolVar(&summary, "summary", false,
		"print a summary line after the routes")
	flags.BoolVar(&sortedPreds, "sorted", false,
		"enumerate routes in square order instead of discovery order")
	flags.StringVar(&separator, "sep", "-",
		"separator between the squares of a route")
	flags.IntVarP(&workers, "workers", "w", 0,
		"concurrent searches for uncached requests (0 uses the configured value)")
}

// startProfile starts CPU profiling if requested (via flag or environment variable)
func startProfile(cmd *cobra.Command, args []string) error {
	profilePath := cpuProfile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath == "" {
		return nil
	}

	f, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("could not start CPU profile: %w", err)
	}
	profileFile = f
	log.Printf("CPU profiling enabled, writing to %s", profilePath)
	return nil
}

func stopProfile() {
	if profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	profileFile.Close()
	profileFile = nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.Usage()
		return errUsage
	}

	requests := make([]search.Request, len(args))
	for i, arg := range args {
		req, err := search.ParseRequest(arg)
		if err != nil {
			return err
		}
		requests[i] = req
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()

	// Without a cache the searches are independent and can run concurrently.
	// Verbose output must follow each search as it runs.
	if env.cache == nil && !env.printer.Verbose {
		results, err := search.SolveBatch(cmd.Context(), requests, env.cfg.Search.Workers,
			search.WithSortedPredecessors(env.cfg.Search.SortedPredecessors))
		if err != nil {
			return err
		}
		for _, res := range results {
			fmt.Fprintln(out, res.Request())
			if err := env.printer.PrintResult(out, res); err != nil {
				return err
			}
		}
		return nil
	}

	for _, req := range requests {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if _, err := env.printer.Print(out, req, env.solver); err != nil {
			return fmt.Errorf("%s: %w", req, err)
		}
	}
	return nil
}
