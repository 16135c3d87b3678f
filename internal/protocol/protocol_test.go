package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/knightroutes/internal/report"
	"github.com/hailam/knightroutes/internal/storage"
)

func run(t *testing.T, s *Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := s.Run(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestSessionTranscript(t *testing.T) {
	s := New(report.DirectSolver(), report.Printer{})

	input := strings.Join([]string{
		"isready",
		"D4-E5",
		"",
		"sep \" > \"",
		"route a1-b1",
		"J1-A1",
		"A1B3",
		"bogus",
		"draw maybe",
		"quit",
		"A1-H8",
	}, "\n")

	want := strings.Join([]string{
		"readyok",
		"D4-E5",
		"  1: D4-C6-E5",
		"  2: D4-F3-E5",
		"A1-B1",
		"  1: A1 > B3 > D2 > B1",
		"  2: A1 > C2 > A3 > B1",
		"error: invalid square: J1",
		`error: unknown command "A1B3"`,
		`error: unknown command "bogus"`,
		`error: expected on or off, got "maybe"`,
	}, "\n") + "\n"

	if got := run(t, s, input); got != want {
		t.Errorf("transcript =\n%s\nwant\n%s", got, want)
	}
	if s.Printer().Separator != " > " {
		t.Errorf("separator = %q", s.Printer().Separator)
	}
}

func TestSessionSettings(t *testing.T) {
	s := New(report.DirectSolver(), report.Printer{})
	run(t, s, "draw on\nverbose ON\nsummary true\n")

	p := s.Printer()
	if !p.Draw || !p.Verbose || !p.Summary {
		t.Errorf("settings not applied: %+v", p)
	}

	run(t, s, "verbose off\n")
	if s.Printer().Verbose {
		t.Error("verbose still on")
	}

	out := run(t, s, "sep\nroute\n")
	if !strings.Contains(out, "error: separator must not be empty") {
		t.Errorf("missing separator error in %q", out)
	}
	if !strings.Contains(out, "error: route needs a request") {
		t.Errorf("missing route error in %q", out)
	}
}

func TestSessionDrawAndSummary(t *testing.T) {
	s := New(report.DirectSolver(), report.Printer{Draw: true, Summary: true})
	out := run(t, s, "A1-H8\n")

	if !strings.HasPrefix(out, "A1-H8\n  A B C D E F G H\n") {
		t.Errorf("unexpected start:\n%s", out)
	}
	if !strings.Contains(out, "108: ") {
		t.Error("missing route 108")
	}
	if !strings.HasSuffix(out, "A1-H8: 6 moves, 108 routes\n") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestSessionStats(t *testing.T) {
	s := New(report.DirectSolver(), report.Printer{})
	out := run(t, s, "A1-B3\nstats\n")
	if !strings.HasSuffix(out, "requests 1\ncache disabled\n") {
		t.Errorf("stats without cache = %q", out)
	}

	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cached := New(storage.NewCachedSolver(store, false), report.Printer{})
	out = run(t, cached, "A1-B3\nA1-B3\nB3-A1\nstats\n")
	if !strings.HasSuffix(out, "requests 3\ncache hits 1 misses 2\n") {
		t.Errorf("stats with cache = %q", out)
	}
}
