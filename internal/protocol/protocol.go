// Package protocol implements the line based knightroutes session used by
// "knightroutes serve".
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hailam/knightroutes/internal/report"
	"github.com/hailam/knightroutes/internal/search"
)

const helpText = `commands:
  XY-XY | route XY-XY   print every shortest knight route
  draw on|off           draw the pruned layers after solving
  verbose on|off        draw every search layer while solving
  sep <text>            set the route separator
  stats                 show cache statistics
  isready               answer readyok
  help                  show this text
  quit                  end the session`

// statsReporter is implemented by solvers that count cache hits.
type statsReporter interface {
	Stats() (hits, misses uint64)
}

// Session reads commands and answers route requests.
type Session struct {
	solver  report.Solver
	printer report.Printer

	answered int
}

// New creates a session. printer holds the initial output settings.
func New(solver report.Solver, printer report.Printer) *Session {
	return &Session{
		solver:  solver,
		printer: printer,
	}
}

// Printer returns the current output settings.
func (s *Session) Printer() report.Printer {
	return s.printer
}

// Run reads commands from r until quit or end of input, writing answers to w.
// Command errors are reported on w and do not end the session.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		var err error
		switch strings.ToLower(cmd) {
		case "route":
			err = s.handleRoute(bw, rest)
		case "draw":
			err = setFlag(&s.printer.Draw, rest)
		case "verbose":
			err = setFlag(&s.printer.Verbose, rest)
		case "summary":
			err = setFlag(&s.printer.Summary, rest)
		case "sep":
			err = s.handleSeparator(rest)
		case "stats":
			s.handleStats(bw)
		case "isready":
			fmt.Fprintln(bw, "readyok")
		case "help":
			fmt.Fprintln(bw, helpText)
		case "quit":
			return bw.Flush()
		default:
			if strings.Contains(cmd, "-") && rest == "" {
				err = s.handleRoute(bw, cmd)
			} else {
				err = fmt.Errorf("unknown command %q", cmd)
			}
		}
		if err != nil {
			fmt.Fprintf(bw, "error: %v\n", err)
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handleRoute answers "route XY-XY".
func (s *Session) handleRoute(w io.Writer, arg string) error {
	if arg == "" {
		return fmt.Errorf("route needs a request like A1-H8")
	}
	req, err := search.ParseRequest(arg)
	if err != nil {
		return err
	}
	if _, err := s.printer.Print(w, req, s.solver); err != nil {
		return err
	}
	s.answered++
	return nil
}

// handleSeparator processes "sep <text>". The text is taken verbatim, so
// quotes can carry surrounding spaces: sep " > ".
func (s *Session) handleSeparator(arg string) error {
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		arg = arg[1 : len(arg)-1]
	}
	if arg == "" {
		return fmt.Errorf("separator must not be empty")
	}
	s.printer.Separator = arg
	return nil
}

func (s *Session) handleStats(w io.Writer) {
	fmt.Fprintf(w, "requests %s\n", humanize.Comma(int64(s.answered)))
	sr, ok := s.solver.(statsReporter)
	if !ok {
		fmt.Fprintln(w, "cache disabled")
		return
	}
	hits, misses := sr.Stats()
	fmt.Fprintf(w, "cache hits %s misses %s\n",
		humanize.Comma(int64(hits)), humanize.Comma(int64(misses)))
}

func setFlag(flag *bool, arg string) error {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		*flag = true
	case "off", "false", "0":
		*flag = false
	default:
		return fmt.Errorf("expected on or off, got %q", arg)
	}
	return nil
}
