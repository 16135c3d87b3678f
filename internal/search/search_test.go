package search

import (
	"context"
	"errors"
	"testing"

	"github.com/hailam/knightroutes/internal/board"
)

func sq(s string) board.Square {
	return board.MustParseSquare(s)
}

func solve(t *testing.T, from, to string, opts ...Option) *Result {
	t.Helper()
	res, err := Solve(sq(from), sq(to), opts...)
	if err != nil {
		t.Fatalf("Solve(%s, %s): %v", from, to, err)
	}
	return res
}

func joined(routes []Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.String()
	}
	return out
}

// TestKnownDistances checks distances and route counts for well-known pairs.
func TestKnownDistances(t *testing.T) {
	tests := []struct {
		from, to string
		moves    int
		routes   int
	}{
		{"A1", "B3", 1, 1},
		{"A1", "A1", 0, 1},
		{"A1", "H8", 6, 108},
		{"A1", "B1", 3, 2},
		{"A1", "H1", 5, 18},
		{"D4", "E5", 2, 2},
		{"E4", "E5", 3, 12},
	}

	for _, tc := range tests {
		t.Run(tc.from+"-"+tc.to, func(t *testing.T) {
			res := solve(t, tc.from, tc.to)
			if res.Moves != tc.moves {
				t.Errorf("moves = %d, want %d", res.Moves, tc.moves)
			}
			if len(res.Routes) != tc.routes {
				t.Errorf("routes = %d, want %d", len(res.Routes), tc.routes)
			}
		})
	}
}

func TestSingleMove(t *testing.T) {
	res := solve(t, "A1", "B3")
	got := joined(res.Routes)
	if len(got) != 1 || got[0] != "A1-B3" {
		t.Errorf("routes = %v, want [A1-B3]", got)
	}
}

func TestStartIsTarget(t *testing.T) {
	for _, s := range []string{"A1", "E4", "H8"} {
		res := solve(t, s, s)
		if res.Moves != 0 {
			t.Errorf("%s: moves = %d, want 0", s, res.Moves)
		}
		if len(res.Routes) != 1 || len(res.Routes[0]) != 1 || res.Routes[0][0] != sq(s) {
			t.Errorf("%s: routes = %v, want [[%s]]", s, joined(res.Routes), s)
		}
		if len(res.Layers) != 1 || len(res.Layers[0]) != 1 {
			t.Errorf("%s: pruned layers = %v", s, res.Layers)
		}
	}
}

func TestAdjacentSameRank(t *testing.T) {
	res := solve(t, "A1", "B1")
	want := []string{"A1-C2-A3-B1", "A1-B3-D2-B1"}
	got := joined(res.Routes)
	if len(got) != len(want) {
		t.Fatalf("routes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("route %d = %s, want %s", i, got[i], want[i])
		}
		if res.Routes[i].Moves() != 3 {
			t.Errorf("route %s has %d moves, want 3", got[i], res.Routes[i].Moves())
		}
	}
}

// TestRouteInvariants checks the shortest-path properties for every pair of squares.
func TestRouteInvariants(t *testing.T) {
	squares := board.AllSquares()
	for _, from := range squares {
		for _, to := range squares {
			res, err := Solve(from, to)
			if err != nil {
				t.Fatalf("Solve(%s, %s): %v", from, to, err)
			}
			checkResult(t, res)
		}
	}
}

func checkResult(t *testing.T, res *Result) {
	t.Helper()
	name := res.Request().String()

	if len(res.Routes) == 0 {
		t.Fatalf("%s: no routes", name)
	}
	if len(res.Layers) != res.Moves+1 {
		t.Errorf("%s: %d pruned layers for %d moves", name, len(res.Layers), res.Moves)
	}

	first, last := res.Layers[0], res.Layers[len(res.Layers)-1]
	if len(first) != 1 || first[0] != res.Start {
		t.Errorf("%s: first pruned layer = %v", name, first)
	}
	if len(last) != 1 || last[0] != res.Target {
		t.Errorf("%s: last pruned layer = %v", name, last)
	}

	for d := 1; d < len(res.Layers); d++ {
		for _, s := range res.Layers[d] {
			linked := false
			for _, p := range res.Layers[d-1] {
				if board.IsKnightMove(p, s) {
					linked = true
					break
				}
			}
			if !linked {
				t.Errorf("%s: %s at depth %d has no predecessor in the previous layer", name, s, d)
			}
		}
	}

	seen := make(map[string]bool, len(res.Routes))
	for _, r := range res.Routes {
		text := r.String()
		if seen[text] {
			t.Errorf("%s: duplicate route %s", name, text)
		}
		seen[text] = true

		if r.Moves() != res.Moves {
			t.Errorf("%s: route %s has %d moves, want %d", name, text, r.Moves(), res.Moves)
		}
		if r[0] != res.Start || r[len(r)-1] != res.Target {
			t.Errorf("%s: route %s has wrong endpoints", name, text)
		}
		for i := 1; i < len(r); i++ {
			if !board.IsKnightMove(r[i-1], r[i]) {
				t.Errorf("%s: route %s has illegal hop %s-%s", name, text, r[i-1], r[i])
			}
			if !res.Layers[i].Contains(r[i]) {
				t.Errorf("%s: route %s leaves pruned layer %d at %s", name, text, i, r[i])
			}
		}
	}
}

func TestSymmetry(t *testing.T) {
	pairs := [][2]string{{"A1", "H8"}, {"A1", "B1"}, {"C3", "F7"}, {"B2", "G7"}, {"E4", "E5"}}
	for _, p := range pairs {
		forward := solve(t, p[0], p[1])
		backward := solve(t, p[1], p[0])
		if forward.Moves != backward.Moves {
			t.Errorf("%s-%s: moves %d vs %d", p[0], p[1], forward.Moves, backward.Moves)
		}
		if len(forward.Routes) != len(backward.Routes) {
			t.Errorf("%s-%s: routes %d vs %d", p[0], p[1], len(forward.Routes), len(backward.Routes))
		}
	}
}

func TestDiscoveryOrder(t *testing.T) {
	res := solve(t, "A1", "H8")
	if got := res.Routes[0].String(); got != "A1-C2-A3-C4-E5-G6-H8" {
		t.Errorf("first route = %s, want A1-C2-A3-C4-E5-G6-H8", got)
	}
}

func TestSortedPredecessors(t *testing.T) {
	plain := solve(t, "A1", "H8")
	sorted := solve(t, "A1", "H8", WithSortedPredecessors(true))

	if len(plain.Routes) != len(sorted.Routes) {
		t.Fatalf("route counts differ: %d vs %d", len(plain.Routes), len(sorted.Routes))
	}

	// H8 is reached from G6 first, but F7 sorts before it.
	if got := sorted.Routes[0][5]; got != sq("F7") {
		t.Errorf("sorted first route = %s, want it to pass F7", sorted.Routes[0])
	}

	SortRoutes(plain.Routes, "-")
	SortRoutes(sorted.Routes, "-")
	a, b := joined(plain.Routes), joined(sorted.Routes)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sorted route sets differ at %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestSortRoutes(t *testing.T) {
	res := solve(t, "A1", "H8")
	SortRoutes(res.Routes, "-")
	for i := 1; i < len(res.Routes); i++ {
		if res.Routes[i-1].String() > res.Routes[i].String() {
			t.Fatalf("routes not sorted at %d: %s > %s", i, res.Routes[i-1], res.Routes[i])
		}
	}
	if got := res.Routes[0].String(); got != "A1-B3-A5-B7-D6-F7-H8" {
		t.Errorf("first sorted route = %s", got)
	}
}

func TestAdvanceLayer(t *testing.T) {
	e, err := New(sq("A1"), sq("H8"))
	if err != nil {
		t.Fatal(err)
	}

	first := e.AdvanceLayer(e.Layers()[0])
	if len(first) != 2 || first[0] != sq("C2") || first[1] != sq("B3") {
		t.Fatalf("first layer = %v, want [C2 B3]", first)
	}

	second := e.AdvanceLayer(first)
	if len(second) != 9 {
		t.Errorf("second layer has %d squares, want 9", len(second))
	}
	if second.Contains(sq("A1")) {
		t.Error("second layer revisited the start square")
	}

	// D4 is reached from both C2 and B3.
	preds := e.Predecessors(sq("D4"))
	if len(preds) != 2 || preds[0] != sq("C2") || preds[1] != sq("B3") {
		t.Errorf("D4 predecessors = %v, want [C2 B3]", preds)
	}

	if got := e.Reached().PopCount(); got != 12 {
		t.Errorf("reached %d squares, want 12", got)
	}
}

func TestAddPredecessorIdempotent(t *testing.T) {
	e, err := New(sq("A1"), sq("B3"))
	if err != nil {
		t.Fatal(err)
	}
	e.AddPredecessor(sq("B3"), sq("A1"))
	e.AddPredecessor(sq("B3"), sq("A1"))
	if got := e.Predecessors(sq("B3")); len(got) != 1 {
		t.Errorf("predecessors = %v, want one entry", got)
	}
}

func TestLayerHook(t *testing.T) {
	var depths []int
	var sizes []int
	hook := func(depth int, layers []Layer) {
		depths = append(depths, depth)
		sizes = append(sizes, len(layers[depth]))
	}

	res := solve(t, "A1", "H8", WithLayerHook(hook))
	if len(depths) != res.Moves {
		t.Fatalf("hook called %d times, want %d", len(depths), res.Moves)
	}
	want := []int{2, 9, 20, 21, 10, 1}
	for i, d := range depths {
		if d != i+1 {
			t.Errorf("call %d reported depth %d", i, d)
		}
		if sizes[i] != want[i] {
			t.Errorf("layer %d has %d squares, want %d", d, sizes[i], want[i])
		}
	}

	if got := len(res.Explored); got != 7 {
		t.Errorf("explored %d layers, want 7", got)
	}
}

func TestHookNotCalledAtDistanceZero(t *testing.T) {
	calls := 0
	solve(t, "C3", "C3", WithLayerHook(func(int, []Layer) { calls++ }))
	if calls != 0 {
		t.Errorf("hook called %d times", calls)
	}
}

func TestInvalidSquares(t *testing.T) {
	if _, err := New(board.NewSquare(8, 0), sq("A1")); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("New with invalid start: err = %v", err)
	}
	if _, err := Solve(sq("A1"), board.NewSquare(0, -1)); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("Solve with invalid target: err = %v", err)
	}
}

func TestPruneBeforeRun(t *testing.T) {
	e, err := New(sq("A1"), sq("H8"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Prune(); !errors.Is(err, ErrNotSolved) {
		t.Errorf("Prune before Run: err = %v", err)
	}
	if _, err := e.Routes(); !errors.Is(err, ErrNotSolved) {
		t.Errorf("Routes before Run: err = %v", err)
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("a1-H8")
	if err != nil {
		t.Fatal(err)
	}
	if req.Start != board.A1 || req.Target != board.H8 {
		t.Errorf("ParseRequest = %s", req)
	}

	malformed := []string{"", "A1", "A1H8", "A1-H8-C3", "A-H8", "A1-H", "A1-HX"}
	for _, in := range malformed {
		if _, err := ParseRequest(in); !errors.Is(err, ErrMalformedRequest) {
			t.Errorf("ParseRequest(%q) err = %v, want ErrMalformedRequest", in, err)
		}
	}

	for _, in := range []string{"J1-A1", "A1-A9"} {
		if _, err := ParseRequest(in); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseRequest(%q) err = %v, want ErrInvalidSquare", in, err)
		}
	}
}

func TestSolveBatch(t *testing.T) {
	requests := []Request{
		{sq("A1"), sq("H8")},
		{sq("A1"), sq("B3")},
		{sq("E4"), sq("E4")},
		{sq("A1"), sq("B1")},
	}

	results, err := SolveBatch(context.Background(), requests, 2)
	if err != nil {
		t.Fatal(err)
	}
	wantMoves := []int{6, 1, 0, 3}
	for i, res := range results {
		if res.Request() != requests[i] {
			t.Errorf("result %d answers %s, want %s", i, res.Request(), requests[i])
		}
		if res.Moves != wantMoves[i] {
			t.Errorf("%s: moves = %d, want %d", requests[i], res.Moves, wantMoves[i])
		}
	}
}

func TestSolveBatchErrors(t *testing.T) {
	requests := []Request{{sq("A1"), sq("H8")}, {sq("A1"), board.NewSquare(9, 9)}}
	if _, err := SolveBatch(context.Background(), requests, 0); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("err = %v, want ErrInvalidSquare", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := SolveBatch(ctx, requests[:1], 1); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func BenchmarkSolveCorners(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Solve(board.A1, board.H8)
	}
}

func BenchmarkSolveAllPairs(b *testing.B) {
	squares := board.AllSquares()
	for i := 0; i < b.N; i++ {
		for _, from := range squares {
			for _, to := range squares {
				Solve(from, to)
			}
		}
	}
}
