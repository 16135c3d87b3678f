// Package search finds every shortest knight route between two squares.
//
// The Engine runs a level-synchronised breadth-first search that records, for
// each newly reached square, all squares of the previous layer that reach it
// in one jump. Prune then keeps only the squares that lead to the target, and
// Routes expands the remaining predecessor graph into concrete routes.
//
// An Engine owns all of its state and is not safe for concurrent use;
// SolveBatch gives every request its own Engine.
package search

import (
	"errors"
	"fmt"

	"github.com/hailam/knightroutes/internal/board"
)

var (
	// ErrInvalidSquare is returned when a start or target square is off the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrUnreachable is returned when the frontier empties before the target is reached.
	ErrUnreachable = errors.New("target unreachable")
)

// Layer is the set of squares first reached at one knight-move distance,
// in discovery order.
type Layer []board.Square

// Bitboard returns the layer as a square set.
func (l Layer) Bitboard() board.Bitboard {
	var bb board.Bitboard
	for _, sq := range l {
		bb = bb.Set(sq)
	}
	return bb
}

// Contains reports whether sq is in the layer.
func (l Layer) Contains(sq board.Square) bool {
	for _, s := range l {
		if s == sq {
			return true
		}
	}
	return false
}

// Engine is a single knight route search from start to target.
type Engine struct {
	start   board.Square
	target  board.Square
	options Options

	// reached holds every square visited so far; layers[k] is the set
	// first reached at distance k.
	reached board.Bitboard
	layers  []Layer

	// preds maps a square to its predecessors, deduplicated, in the order
	// they were recorded.
	preds map[board.Square][]board.Square

	pruned []Layer
}

// New creates an engine for one start/target pair. Both squares must be on the board.
func New(start, target board.Square, opts ...Option) (*Engine, error) {
	if !start.IsValid() {
		return nil, fmt.Errorf("%w: start %s", ErrInvalidSquare, start)
	}
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidSquare, target)
	}

	return &Engine{
		start:   start,
		target:  target,
		options: applyOptions(opts),
		reached: board.SquareBB(start),
		layers:  []Layer{{start}},
		preds:   make(map[board.Square][]board.Square),
	}, nil
}

// Start returns the start square.
func (e *Engine) Start() board.Square { return e.start }

// Target returns the target square.
func (e *Engine) Target() board.Square { return e.target }

// Solved reports whether the target has been reached.
func (e *Engine) Solved() bool {
	return e.reached.IsSet(e.target)
}

// Reached returns every square visited so far.
func (e *Engine) Reached() board.Bitboard {
	return e.reached
}

// Layers returns the layers found so far. Before Prune this is the full
// BFS tree; the returned slice must not be modified.
func (e *Engine) Layers() []Layer {
	return e.layers
}

// AddPredecessor records pred as a predecessor of sq. Adding the same
// predecessor twice has no further effect.
func (e *Engine) AddPredecessor(sq, pred board.Square) {
	for _, p := range e.preds[sq] {
		if p == pred {
			return
		}
	}
	e.preds[sq] = append(e.preds[sq], pred)
}

// Predecessors returns a copy of the predecessors recorded for sq.
func (e *Engine) Predecessors(sq board.Square) []board.Square {
	preds := e.preds[sq]
	out := make([]board.Square, len(preds))
	copy(out, preds)
	return out
}

// AdvanceLayer expands current by one knight move and returns the squares
// reached for the first time. A square reached from several squares of
// current gets all of them as predecessors. The new squares are merged into
// the reached set before returning.
func (e *Engine) AdvanceLayer(current Layer) Layer {
	var next Layer
	var building board.Bitboard

	for _, from := range current {
		for _, off := range board.KnightOffsets {
			to := from.Offset(off[0], off[1])
			if !to.IsValid() {
				continue
			}

			switch {
			case e.reached.IsSet(to):
				// reached at an earlier depth
			case building.IsSet(to):
				// same-depth arrival from another square
				e.AddPredecessor(to, from)
			default:
				// first arrival
				building = building.Set(to)
				next = append(next, to)
				e.AddPredecessor(to, from)
			}
		}
	}

	e.reached |= building
	return next
}

// Run advances the search layer by layer until the target is reached.
// The layer hook, if any, is called after each layer is appended.
// Calling Run on a solved engine is a no-op.
func (e *Engine) Run() error {
	for !e.Solved() {
		next := e.AdvanceLayer(e.layers[len(e.layers)-1])
		if len(next) == 0 {
			return fmt.Errorf("%w: %s from %s", ErrUnreachable, e.target, e.start)
		}
		e.layers = append(e.layers, next)

		if e.options.LayerHook != nil {
			e.options.LayerHook(len(e.layers)-1, e.layers)
		}
	}
	return nil
}

// Moves returns the knight distance from start to target. Only valid once solved.
func (e *Engine) Moves() int {
	return len(e.layers) - 1
}
