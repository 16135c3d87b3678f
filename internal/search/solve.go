package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/knightroutes/internal/board"
)

// ErrMalformedRequest is returned when a request is not of the form "XY-XY".
var ErrMalformedRequest = errors.New("malformed route request")

// Request is a start/target pair.
type Request struct {
	Start  board.Square
	Target board.Square
}

// String renders the request as "START-TARGET".
func (r Request) String() string {
	return r.Start.String() + "-" + r.Target.String()
}

// ParseRequest decodes text such as "A1-H8". Both squares must decode and lie on the board.
func ParseRequest(s string) (Request, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || strings.Contains(to, "-") {
		return Request{}, fmt.Errorf("%w: %q", ErrMalformedRequest, s)
	}

	start, err := board.ParseSquare(from)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	target, err := board.ParseSquare(to)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	if !start.IsValid() {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidSquare, start)
	}
	if !target.IsValid() {
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidSquare, target)
	}

	return Request{Start: start, Target: target}, nil
}

// Result contains the outcome of a search.
type Result struct {
	Start  board.Square
	Target board.Square

	// Moves is the knight distance; every route has Moves+1 squares.
	Moves int

	// Explored is the full BFS layer list, Layers the pruned one.
	Explored []Layer
	Layers   []Layer

	Routes []Route
}

// Request returns the start/target pair the result answers.
func (r *Result) Request() Request {
	return Request{Start: r.Start, Target: r.Target}
}

// Solve runs a complete search: BFS to the target, pruning, route enumeration.
func Solve(start, target board.Square, opts ...Option) (*Result, error) {
	e, err := New(start, target, opts...)
	if err != nil {
		return nil, err
	}
	return e.Solve()
}

// Solve runs the engine to completion and collects its result.
func (e *Engine) Solve() (*Result, error) {
	if err := e.Run(); err != nil {
		return nil, err
	}

	pruned, err := e.Prune()
	if err != nil {
		return nil, err
	}
	routes, err := e.Routes()
	if err != nil {
		return nil, err
	}

	return &Result{
		Start:    e.start,
		Target:   e.target,
		Moves:    e.Moves(),
		Explored: e.Layers(),
		Layers:   pruned,
		Routes:   routes,
	}, nil
}

// SolveBatch solves every request with its own engine, running up to
// workers searches at once (no limit when workers <= 0). Results are
// returned in request order. The first failure cancels the remaining
// requests and is returned.
func SolveBatch(ctx context.Context, requests []Request, workers int, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Solve(req.Start, req.Target, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", req, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
