package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

// session is a calculator attached to an output.
type session struct {
	calc *calc.Calculator
	ctx  *calc.Context
	out  io.Writer
	echo bool
	// csv is the default file for :export.
	csv string
	// recall is the text to offer at the next prompt.
	recall string
}

func newSession(out io.Writer, cfg *config, echo bool) *session {
	ctx := calc.NewContext(calc.Mode(cfg.mode()))
	csv := cfg.HistoryCSV
	if csv == "" {
		csv = calc.HistoryFilename
	}
	return &session{
		calc: calc.New(calc.WithContext(ctx), calc.WithTimeLayout(cfg.layout())),
		ctx:  ctx,
		out:  out,
		echo: echo,
		csv:  csv,
	}
}

// eval evaluates an expression and prints its result.
func (s *session) eval(src string) error {
	if s.echo {
		if n, err := s.ctx.Normalize(src); err == nil {
			if a, err := calc.ParseString(n); err == nil {
				fmt.Fprintf(s.out, "%s : %v : ", n, a)
			}
		}
	}
	r, err := s.calc.Evaluate(src)
	if err != nil {
		if s.echo {
			fmt.Fprintln(s.out)
		}
		return err
	}
	fmt.Fprintln(s.out, r.Display)
	return nil
}

// export writes the history to a CSV file.
func (s *session) export(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := s.calc.History().WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// command runs a colon command. It returns false if the session should end.
func (s *session) command(line string) bool {
	f := strings.Fields(line)
	switch strings.ToLower(f[0]) {
	case ":deg":
		s.calc.SetAngleMode(calc.Degrees)
		fmt.Fprintln(s.out, calc.Degrees)
	case ":rad":
		s.calc.SetAngleMode(calc.Radians)
		fmt.Fprintln(s.out, calc.Radians)
	case ":history":
		h := s.calc.History()
		if h.Len() == 0 {
			fmt.Fprintln(s.out, "no history")
			break
		}
		for i, e := range h.Entries() {
			fmt.Fprintf(s.out, "%3d  %s = %s  (%s)\n", i, e.Expression, e.Result, e.Time)
		}
	case ":recall":
		if len(f) != 2 {
			fmt.Fprintln(s.out, "usage: :recall N")
			break
		}
		i, err := strconv.Atoi(f[1])
		if err != nil {
			fmt.Fprintf(s.out, "bad history index %q\n", f[1])
			break
		}
		expr, ok := s.calc.History().Select(i)
		if !ok {
			fmt.Fprintf(s.out, "no history entry %d\n", i)
			break
		}
		s.recall = expr
	case ":clear":
		s.calc.ClearHistory()
		fmt.Fprintln(s.out, "history cleared")
	case ":export":
		name := s.csv
		if len(f) > 1 {
			name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), f[0]))
		}
		if err := s.export(name); err != nil {
			fmt.Fprintln(s.out, "error:", err)
			break
		}
		fmt.Fprintf(s.out, "wrote %d entries to %s\n", s.calc.History().Len(), name)
	case ":help", ":h", ":?":
		printUsage(s.out)
	case ":quit", ":q", ":exit":
		return false
	default:
		fmt.Fprintf(s.out, "unknown command %s; type :help for help\n", f[0])
	}
	return true
}

// complete completes the name being typed at the end of line.
func complete(line string) []string {
	if strings.HasPrefix(line, ":") {
		var r []string
		for _, c := range []string{":deg", ":rad", ":history", ":recall ", ":clear", ":export ", ":help", ":quit"} {
			if strings.HasPrefix(c, line) {
				r = append(r, c)
			}
		}
		return r
	}
	k := len(line)
	for k > 0 && isNameByte(line[k-1]) {
		k--
	}
	word := line[k:]
	if word == "" {
		return nil
	}
	var r []string
	for _, name := range calc.Names() {
		if strings.HasPrefix(name, word) {
			r = append(r, line[:k]+name)
		}
	}
	return r
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// prompt is the interactive prompt, showing the angle mode.
func (s *session) prompt() string {
	return s.calc.AngleMode().String() + "> "
}

// repl runs an interactive session until the user quits or input ends. Input
// lines are kept in histfile across sessions.
func (s *session) repl(histfile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)
	if histfile != "" {
		if f, err := os.Open(histfile); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histfile); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Fprintln(s.out, "Type :help for help.")
	for {
		var line string
		var err error
		if s.recall != "" {
			line, err = ln.PromptWithSuggestion(s.prompt(), s.recall, -1)
			s.recall = ""
		} else {
			line, err = ln.Prompt(s.prompt())
		}
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if !s.command(line) {
				return nil
			}
			continue
		}
		if err := s.eval(line); err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}
