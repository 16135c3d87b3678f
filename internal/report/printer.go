package report

import (
	"fmt"
	"io"

	"github.com/hailam/knightroutes/internal/board"
	"github.com/hailam/knightroutes/internal/render"
	"github.com/hailam/knightroutes/internal/search"
)

// Solver answers a route request.
type Solver interface {
	Solve(req search.Request) (*search.Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(req search.Request) (*search.Result, error)

// Solve calls f(req).
func (f SolverFunc) Solve(req search.Request) (*search.Result, error) {
	return f(req)
}

// DirectSolver searches every request from scratch.
func DirectSolver(opts ...search.Option) Solver {
	return SolverFunc(func(req search.Request) (*search.Result, error) {
		return search.Solve(req.Start, req.Target, opts...)
	})
}

// Printer writes the answer to a request: the request itself, the boards
// asked for, the numbered routes and an optional summary line.
type Printer struct {
	Separator string
	Draw      bool
	Verbose   bool
	Summary   bool

	// Sorted selects canonical predecessor order for verbose searches.
	Sorted bool
}

func (p *Printer) separator() string {
	if p.Separator == "" {
		return DefaultSeparator
	}
	return p.Separator
}

// Print answers req on w. Verbose printers run their own search so every
// layer can be drawn as it is found; otherwise solver is used.
func (p *Printer) Print(w io.Writer, req search.Request, solver Solver) (*search.Result, error) {
	if _, err := fmt.Fprintln(w, req); err != nil {
		return nil, err
	}

	var (
		res *search.Result
		err error
	)
	if p.Verbose {
		res, err = p.solveVerbose(w, req)
	} else {
		res, err = solver.Solve(req)
	}
	if err != nil {
		return nil, err
	}

	return res, p.PrintResult(w, res)
}

func (p *Printer) solveVerbose(w io.Writer, req search.Request) (*search.Result, error) {
	if err := render.DrawText(w, []board.Bitboard{board.SquareBB(req.Start)}, req.Target); err != nil {
		return nil, err
	}

	var drawErr error
	hook := func(_ int, layers []search.Layer) {
		if drawErr == nil {
			drawErr = render.DrawText(w, Bitboards(layers), req.Target)
		}
	}
	res, err := search.Solve(req.Start, req.Target,
		search.WithSortedPredecessors(p.Sorted),
		search.WithLayerHook(hook))
	if err != nil {
		return nil, err
	}
	return res, drawErr
}

// PrintResult writes the parts of the answer that follow the search.
func (p *Printer) PrintResult(w io.Writer, res *search.Result) error {
	if p.Draw {
		if err := render.DrawText(w, Bitboards(res.Layers), res.Target); err != nil {
			return err
		}
	}
	if err := WriteRoutes(w, res.Routes, p.separator()); err != nil {
		return err
	}
	if p.Summary {
		_, err := fmt.Fprintln(w, Summary(res.Request(), res.Moves, len(res.Routes)))
		return err
	}
	return nil
}

// Bitboards converts search layers to square sets for drawing.
func Bitboards(layers []search.Layer) []board.Bitboard {
	out := make([]board.Bitboard, len(layers))
	for i, layer := range layers {
		out[i] = layer.Bitboard()
	}
	return out
}
