package calc

import (
	"math"
	"reflect"
	"testing"
)

func TestFactorial(t *testing.T) {
	cases := []struct {
		n, r float64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
		{171, math.Inf(1)},
		{1e300, math.Inf(1)},
		{-1, math.NaN()},
		{4.5, math.NaN()},
		{-0.5, math.NaN()},
		{math.NaN(), math.NaN()},
		{math.Inf(1), math.NaN()},
		{math.Inf(-1), math.NaN()},
	}
	for _, c := range cases {
		r := factorial(c.n)
		if math.IsNaN(c.r) {
			if !math.IsNaN(r) {
				t.Errorf("%g! should be NaN but is %g", c.n, r)
			}
			continue
		}
		if r != c.r {
			t.Errorf("%g!: want %g, got %g", c.n, c.r, r)
		}
	}
	if r := factorial(170); math.IsInf(r, 0) || r < 7.25e306 {
		t.Errorf("170! is %g", r)
	}
}

func TestConsts(t *testing.T) {
	cases := map[string]float64{
		"pi": math.Pi,
		"e":  math.E,
	}
	for name, want := range cases {
		got, ok := globalconsts[name]
		if !ok {
			t.Errorf("no constant %s", name)
			continue
		}
		if got != want {
			t.Errorf("%s is %.17g, want %.17g", name, got, want)
		}
	}
}

func TestFuncArity(t *testing.T) {
	cases := map[string]int{
		"sin":  1,
		"cos":  1,
		"tan":  1,
		"asin": 1,
		"acos": 1,
		"atan": 1,
		"ln":   1,
		"log":  1,
		"exp":  1,
		"sqrt": 1,
		"fact": 1,
		"pow":  2,
		"root": 2,
	}
	if len(cases) != len(globalfuncs) {
		t.Errorf("%d functions, want %d", len(globalfuncs), len(cases))
	}
	for name, n := range cases {
		f, ok := globalfuncs[name]
		if !ok {
			t.Errorf("no function %s", name)
			continue
		}
		for i := 0; i <= 3; i++ {
			if f.CanCall(i) != (i == n) {
				t.Errorf("%s: CanCall(%d) is %t", name, i, f.CanCall(i))
			}
		}
	}
}

func TestFuncCall(t *testing.T) {
	deg := NewContext()
	rad := NewContext(Mode(Radians))
	cases := []struct {
		name string
		ctx  *Context
		args []float64
		r    float64
	}{
		{"sin", deg, []float64{30}, 0.5},
		{"sin", rad, []float64{math.Pi / 6}, 0.5},
		{"cos", deg, []float64{180}, -1},
		{"tan", rad, []float64{0}, 0},
		{"asin", deg, []float64{1}, 90},
		{"asin", rad, []float64{1}, math.Pi / 2},
		{"acos", deg, []float64{-1}, 180},
		{"atan", rad, []float64{1}, math.Pi / 4},
		{"ln", deg, []float64{1}, 0},
		{"log", deg, []float64{100}, 2},
		{"exp", rad, []float64{1}, math.E},
		{"sqrt", deg, []float64{16}, 4},
		{"pow", deg, []float64{3, 4}, 81},
		{"root", deg, []float64{32, 5}, 2},
		{"fact", deg, []float64{6}, 720},
	}
	for _, c := range cases {
		r := globalfuncs[c.name].Call(c.ctx, c.args)
		if math.Abs(r-c.r) > 1e-12 {
			t.Errorf("%s%v in %v: want %g, got %g", c.name, c.args, c.ctx.AngleMode(), c.r, r)
		}
	}
}

func TestNames(t *testing.T) {
	want := []string{
		"acos", "asin", "atan", "cos", "e", "exp", "fact", "ln",
		"log", "pi", "pow", "root", "sin", "sqrt", "tan",
	}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong names:\n\twant %q\n\tgot  %q", want, got)
	}
}
