package browse

import (
	"testing"

	"github.com/hailam/knightroutes/internal/board"
	"github.com/hailam/knightroutes/internal/search"
)

func solve(t *testing.T, s string) *search.Result {
	t.Helper()
	req, err := search.ParseRequest(s)
	if err != nil {
		t.Fatal(err)
	}
	res, err := search.Solve(req.Start, req.Target)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestNewShowsEverything(t *testing.T) {
	b := New(solve(t, "A1-H8"), "-")

	if b.Route() != 1 || b.Shown() != 7 {
		t.Errorf("route=%d shown=%d, want 1 and 7", b.Route(), b.Shown())
	}
	f := b.Frame()
	if len(f.Layers) != 7 || f.Target != board.H8 {
		t.Errorf("frame layers=%d target=%s", len(f.Layers), f.Target)
	}
	if got := search.Route(f.Route).String(); got != "A1-B3-A5-B7-D6-F7-H8" {
		t.Errorf("first route = %s", got)
	}

	want := "A1-H8: 6 moves, 108 routes  layers 7/7 pruned  route 1/108 A1-B3-A5-B7-D6-F7-H8"
	if b.Caption() != want {
		t.Errorf("Caption() = %q, want %q", b.Caption(), want)
	}
}

func TestRouteCycling(t *testing.T) {
	b := New(solve(t, "A1-B1"), "-")

	steps := []int{2, 0, 1, 2}
	for _, want := range steps {
		b.NextRoute()
		if b.Route() != want {
			t.Fatalf("after NextRoute route = %d, want %d", b.Route(), want)
		}
	}

	b.PrevRoute()
	b.PrevRoute()
	if b.Route() != 0 {
		t.Errorf("route = %d, want 0", b.Route())
	}
	if b.Frame().Route != nil {
		t.Error("no route should be traced")
	}
	b.PrevRoute()
	if b.Route() != 2 {
		t.Errorf("route = %d, want 2", b.Route())
	}
}

func TestLayerStepping(t *testing.T) {
	b := New(solve(t, "A1-B1"), "-")

	if b.ShowMore() {
		t.Error("ShowMore past the last layer")
	}
	for b.ShowLess() {
	}
	if b.Shown() != 1 {
		t.Fatalf("shown = %d, want 1", b.Shown())
	}

	f := b.Frame()
	if len(f.Layers) != 1 || len(f.Route) != 1 || f.Route[0] != board.A1 {
		t.Errorf("start frame = %+v", f)
	}

	b.ShowMore()
	if got := len(b.Frame().Route); got != 2 {
		t.Errorf("route prefix has %d squares, want 2", got)
	}
}

func TestToggleExplored(t *testing.T) {
	b := New(solve(t, "A1-H8"), "-")
	b.ShowLess()

	b.ToggleExplored()
	if b.Shown() != 7 {
		t.Errorf("shown = %d, want all 7 explored layers", b.Shown())
	}
	if got := b.Frame().Layers[3].PopCount(); got != 20 {
		t.Errorf("explored layer 3 has %d squares, want 20", got)
	}

	b.ToggleExplored()
	if got := b.Frame().Layers[3].PopCount(); got != 14 {
		t.Errorf("pruned layer 3 has %d squares, want 14", got)
	}
}

func TestSingleSquare(t *testing.T) {
	b := New(solve(t, "C3-C3"), "-")
	if b.Shown() != 1 || b.Route() != 1 {
		t.Errorf("shown=%d route=%d", b.Shown(), b.Route())
	}
	if b.ShowMore() || b.ShowLess() {
		t.Error("a single layer cannot change")
	}
}
