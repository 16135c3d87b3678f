// Package report formats solved knight routes for people.
package report

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/hailam/knightroutes/internal/search"
)

// DefaultSeparator joins the squares of a route.
const DefaultSeparator = "-"

// Lines returns the routes joined with sep and sorted.
func Lines(routes []search.Route, sep string) []string {
	lines := make([]string, len(routes))
	for i, r := range routes {
		lines[i] = r.Join(sep)
	}
	slices.Sort(lines)
	return lines
}

// WriteRoutes writes the sorted routes one per line, numbered from 1.
func WriteRoutes(w io.Writer, routes []search.Route, sep string) error {
	return WriteLines(w, Lines(routes, sep))
}

// WriteLines writes already joined routes, numbered from 1, in the given order.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		fmt.Fprintf(bw, "%3d: %s\n", i+1, line)
	}
	return bw.Flush()
}

// Summary describes a result in one line, e.g. "A1-H8: 6 moves, 108 routes".
func Summary(req search.Request, moves, routes int) string {
	return fmt.Sprintf("%s: %s, %s", req, plural(moves, "move"), plural(routes, "route"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return humanize.Comma(int64(n)) + " " + unit + "s"
}
