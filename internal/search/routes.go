package search

import (
	"errors"
	"slices"
	"strings"

	"github.com/hailam/knightroutes/internal/board"
)

// ErrNotSolved is returned by Prune and Routes when the target has not been reached.
var ErrNotSolved = errors.New("search not solved")

// Route is one shortest sequence of squares from start to target, inclusive.
type Route []board.Square

// Moves returns the number of knight moves in the route.
func (r Route) Moves() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Join renders the route as square text joined by sep, e.g. "A1-B3".
func (r Route) Join(sep string) string {
	parts := make([]string, len(r))
	for i, sq := range r {
		parts[i] = sq.String()
	}
	return strings.Join(parts, sep)
}

// String renders the route with "-" between squares.
func (r Route) String() string {
	return r.Join("-")
}

// Squares returns the route as a square set.
func (r Route) Squares() board.Bitboard {
	return Layer(r).Bitboard()
}

// SortRoutes orders routes by their joined text.
func SortRoutes(routes []Route, sep string) {
	slices.SortStableFunc(routes, func(a, b Route) int {
		return strings.Compare(a.Join(sep), b.Join(sep))
	})
}

// Prune reduces the layers to the squares that lie on some shortest route.
// Walking back from the target, each kept layer is the union of the
// predecessors of the layer after it. The first kept layer is {start} and
// the last is {target}.
func (e *Engine) Prune() ([]Layer, error) {
	if !e.Solved() {
		return nil, ErrNotSolved
	}
	if e.pruned != nil {
		return e.pruned, nil
	}

	var pruned []Layer
	kept := Layer{e.target}
	for len(kept) > 0 {
		pruned = append(pruned, kept)

		var previous Layer
		var seen board.Bitboard
		for _, sq := range kept {
			for _, p := range e.preds[sq] {
				if !seen.IsSet(p) {
					seen = seen.Set(p)
					previous = append(previous, p)
				}
			}
		}
		kept = previous
	}

	slices.Reverse(pruned)
	e.pruned = pruned
	return pruned, nil
}

// Routes enumerates every shortest route from start to target. Routes are
// built layer by layer over the pruned graph, so each square's routes are
// computed once and extended by its successors.
//
// Predecessors are visited in discovery order, or in canonical square order
// when WithSortedPredecessors is set.
func (e *Engine) Routes() ([]Route, error) {
	pruned, err := e.Prune()
	if err != nil {
		return nil, err
	}

	memo := make(map[board.Square][]Route)
	for _, layer := range pruned {
		for _, sq := range layer {
			preds := e.orderedPredecessors(sq)
			if len(preds) == 0 {
				memo[sq] = []Route{{sq}}
				continue
			}

			var routes []Route
			for _, p := range preds {
				for _, prefix := range memo[p] {
					route := make(Route, len(prefix), len(prefix)+1)
					copy(route, prefix)
					routes = append(routes, append(route, sq))
				}
			}
			memo[sq] = routes
		}
	}

	return memo[e.target], nil
}

func (e *Engine) orderedPredecessors(sq board.Square) []board.Square {
	preds := e.preds[sq]
	if !e.options.SortPredecessors || len(preds) < 2 {
		return preds
	}

	sorted := slices.Clone(preds)
	slices.SortFunc(sorted, func(a, b board.Square) int {
		return strings.Compare(a.String(), b.String())
	})
	return sorted
}
