package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func testSession(echo bool) (*session, *strings.Builder) {
	var b strings.Builder
	return newSession(&b, &config{}, echo), &b
}

func TestSessionEval(t *testing.T) {
	s, b := testSession(false)
	for _, src := range []string{"2+2", "Ans*10", "5!"} {
		if err := s.eval(src); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
	if got, want := b.String(), "4\n40\n120\n"; got != want {
		t.Errorf("want output %q, got %q", want, got)
	}
	if err := s.eval("2+"); err == nil {
		t.Error("no error for 2+")
	}
}

func TestSessionEcho(t *testing.T) {
	s, b := testSession(true)
	if err := s.eval("2(3+4)"); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "2*(3+4) : ([2] × [(3) + (4)]) : 14\n"; got != want {
		t.Errorf("want output %q, got %q", want, got)
	}
}

func TestSessionRun(t *testing.T) {
	s, b := testSession(false)
	if !s.run(strings.NewReader("1+1\n\n  2*3  \n")) {
		t.Error("run failed")
	}
	if s.run(strings.NewReader("1+\n4\n")) {
		t.Error("run with a bad line succeeded")
	}
	if got, want := b.String(), "2\n6\n4\n"; got != want {
		t.Errorf("want output %q, got %q", want, got)
	}
}

func TestSessionCommands(t *testing.T) {
	s, b := testSession(false)
	if !s.command(":rad") {
		t.Fatal(":rad ended the session")
	}
	if m := s.calc.AngleMode(); m != calc.Radians {
		t.Errorf("mode is %v after :rad", m)
	}
	if p := s.prompt(); p != "RAD> " {
		t.Errorf("prompt is %q", p)
	}
	s.command(":DEG")
	if m := s.calc.AngleMode(); m != calc.Degrees {
		t.Errorf("mode is %v after :DEG", m)
	}
	b.Reset()

	s.command(":history")
	if got := b.String(); got != "no history\n" {
		t.Errorf("empty history printed %q", got)
	}
	s.eval("1+2")
	s.eval("sin(30)")
	b.Reset()
	s.command(":history")
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "sin(30) = 0.5") || !strings.Contains(lines[1], "1+2 = 3") {
		t.Errorf("wrong history listing %q", lines)
	}

	s.command(":recall 1")
	if s.recall != "1+2" {
		t.Errorf("recalled %q", s.recall)
	}
	b.Reset()
	s.recall = ""
	s.command(":recall 9")
	s.command(":recall x")
	s.command(":recall")
	if s.recall != "" {
		t.Errorf("bad recalls set %q", s.recall)
	}
	if n := strings.Count(b.String(), "\n"); n != 3 {
		t.Errorf("want 3 messages for bad recalls, got %q", b.String())
	}

	s.command(":clear")
	if n := s.calc.History().Len(); n != 0 {
		t.Errorf("%d entries after :clear", n)
	}
	if _, ok := s.calc.LastAnswer(); !ok {
		t.Error(":clear lost the answer")
	}

	b.Reset()
	s.command(":help")
	if !strings.Contains(b.String(), ":recall N") || !strings.Contains(b.String(), "sqrt") {
		t.Errorf("help is %q", b.String())
	}
	b.Reset()
	s.command(":frobnicate")
	if !strings.Contains(b.String(), "unknown command :frobnicate") {
		t.Errorf("unknown command printed %q", b.String())
	}
	for _, q := range []string{":quit", ":q", ":exit"} {
		if s.command(q) {
			t.Errorf("%s did not end the session", q)
		}
	}
}

func TestSessionExport(t *testing.T) {
	s, b := testSession(false)
	s.eval("6*7")
	name := filepath.Join(t.TempDir(), "out dir.csv")
	if !s.command(":export " + name) {
		t.Fatal(":export ended the session")
	}
	if !strings.Contains(b.String(), "wrote 1 entries") {
		t.Errorf("export printed %q", b.String())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), s.calc.ExportHistoryCSV(); got != want {
		t.Errorf("exported %q, want %q", got, want)
	}
}

func TestSessionExportDefault(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hist.csv")
	var b strings.Builder
	s := newSession(&b, &config{HistoryCSV: name}, false)
	s.command(":export")
	if _, err := os.Stat(name); err != nil {
		t.Errorf("default export: %v", err)
	}
}

func TestComplete(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"2+", nil},
		{"s", []string{"sin", "sqrt"}},
		{"2*sq", []string{"2*sqrt"}},
		{"a", []string{"acos", "asin", "atan"}},
		{"p", []string{"pi", "pow"}},
		{"xyz", nil},
		{":re", []string{":recall "}},
		{":", []string{":deg", ":rad", ":history", ":recall ", ":clear", ":export ", ":help", ":quit"}},
	}
	for _, c := range cases {
		if got := complete(c.line); !reflect.DeepEqual(got, c.want) {
			t.Errorf("completing %q: want %q, got %q", c.line, c.want, got)
		}
	}
}
