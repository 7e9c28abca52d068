package calc_test

import (
	"math"
	"testing"

	"github.com/Knetic/govaluate"

	"github.com/zephyrtronium/calc"
)

// oraclefuncs are the functions shared with govaluate, in radians.
var oraclefuncs = map[string]govaluate.ExpressionFunction{
	"sin": func(args ...interface{}) (interface{}, error) {
		return math.Sin(args[0].(float64)), nil
	},
	"cos": func(args ...interface{}) (interface{}, error) {
		return math.Cos(args[0].(float64)), nil
	},
	"sqrt": func(args ...interface{}) (interface{}, error) {
		return math.Sqrt(args[0].(float64)), nil
	},
	"ln": func(args ...interface{}) (interface{}, error) {
		return math.Log(args[0].(float64)), nil
	},
	"exp": func(args ...interface{}) (interface{}, error) {
		return math.Exp(args[0].(float64)), nil
	},
	"pow": func(args ...interface{}) (interface{}, error) {
		return math.Pow(args[0].(float64), args[1].(float64)), nil
	},
}

// TestEvalOracle checks plain arithmetic against an independent evaluator.
func TestEvalOracle(t *testing.T) {
	cases := []string{
		"1+2*3",
		"(1+2)*3",
		"2*(3+4)*5",
		"10/4+3",
		"1.5*4-2",
		"-3+5",
		"(8-3)/(2+0.5)",
		"0.1+0.2",
		"3*3*3/(1+1)",
		"-(2+3)*-(4-1)",
		"sqrt(2)*sqrt(2)",
		"sin(1)+cos(1)",
		"ln(10)/ln(2)",
		"exp(1)-2",
		"pow(2, 0.5)*pow(3, 2)",
		"sqrt(16)/(1+pow(2, 3))",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			o, err := govaluate.NewEvaluableExpressionWithFunctions(src, oraclefuncs)
			if err != nil {
				t.Fatalf("oracle failed to parse %q: %v", src, err)
			}
			v, err := o.Evaluate(nil)
			if err != nil {
				t.Fatalf("oracle failed to evaluate %q: %v", src, err)
			}
			want, ok := v.(float64)
			if !ok {
				t.Fatalf("oracle gave %T for %q", v, src)
			}
			got, err := calc.EvalString(src, calc.Mode(calc.Radians))
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", src, err)
			}
			if !near(got, want) {
				t.Errorf("%q: oracle says %g, got %g", src, want, got)
			}
		})
	}
}
