package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("calc: ")
	var (
		inname, cfgname, csvname string
		rad, echo, interactive   bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&csvname, "csv", "", "export history to this CSV file at exit")
	flag.BoolVar(&rad, "rad", false, "use radians instead of degrees")
	flag.BoolVar(&echo, "echo", false, "print normalized input and parse trees")
	flag.BoolVar(&interactive, "i", false, "run an interactive session")
	flag.Parse()

	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rad":
			cfg.AngleMode = "deg"
			if rad {
				cfg.AngleMode = "rad"
			}
		case "csv":
			cfg.HistoryCSV = csvname
		}
	})

	s := newSession(os.Stdout, cfg, echo)
	ok := true
	if interactive {
		if err := s.repl(lineHistory(cfg)); err != nil {
			log.Print(err)
			ok = false
		}
	} else {
		f, err := infile(inname, flag.NArg() == 0)
		if err != nil {
			log.Fatal(err)
		}
		if f != nil {
			ok = s.run(f)
		}
		for _, arg := range flag.Args() {
			ok = s.line(arg) && ok
		}
	}

	if cfg.HistoryCSV != "" {
		if err := s.export(cfg.HistoryCSV); err != nil {
			log.Print(err)
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

// run evaluates each non-blank line of in. It reports whether every line
// evaluated successfully.
func (s *session) run(in io.Reader) bool {
	ok := true
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		ok = s.line(sc.Text()) && ok
	}
	if err := sc.Err(); err != nil {
		log.Print(err)
		return false
	}
	return ok
}

// line evaluates one expression and logs any error. Blank lines are skipped.
func (s *session) line(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" {
		return true
	}
	if err := s.eval(src); err != nil {
		log.Printf("%s: %v", src, err)
		return false
	}
	return true
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return bufio.NewReader(f), nil
	case inname == "-", std:
		return bufio.NewReader(os.Stdin), nil
	}
	return nil, nil
}

// lineHistory returns the file in which the interactive session keeps its
// input history, or the empty string if there is none.
func lineHistory(cfg *config) string {
	if cfg.LineHistory != "" {
		return cfg.LineHistory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calc_history")
}

// usage is printed for :help.
const usage = `Enter an expression to evaluate it. Commands:
  :deg         use degrees for trigonometry
  :rad         use radians for trigonometry
  :history     list past calculations, newest first
  :recall N    edit the expression of history entry N
  :clear       clear the history
  :export [F]  write the history as CSV to F
  :help        show this message
  :quit        exit`

func printUsage(w io.Writer) {
	fmt.Fprintln(w, usage)
	fmt.Fprintln(w, "Functions and constants:", strings.Join(calc.Names(), " "))
}
