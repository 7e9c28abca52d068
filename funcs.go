package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. The set of functions an expression
// may call is fixed; there is no way to add to it.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. The context supplies the angle mode and must not be
	// modified.
	Call(ctx *Context, args []float64) float64

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	"sin":  angular{math.Sin},
	"cos":  angular{math.Cos},
	"tan":  angular{math.Tan},
	"asin": inverse{math.Asin},
	"acos": inverse{math.Acos},
	"atan": inverse{math.Atan},
	"ln":   monadic{math.Log},
	"log":  monadic{math.Log10},
	"exp":  monadic{math.Exp},
	"sqrt": monadic{math.Sqrt},
	"pow":  dyadic{math.Pow},
	"root": dyadic{func(a, n float64) float64 { return math.Pow(a, 1/n) }},
	"fact": monadic{factorial},
}

// constprec is the precision to which constants are computed before rounding
// to float64.
const constprec = 64

var globalconsts = map[string]float64{
	"pi": bigconst(bigfloat.Pi),
	"e": bigconst(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

func bigconst(f func(out *big.Float) *big.Float) float64 {
	r := f(new(big.Float).SetPrec(constprec))
	v, _ := r.Float64()
	return v
}

// Names returns the names of all functions and constants, sorted.
func Names() []string {
	names := make([]string, 0, len(globalfuncs)+len(globalconsts))
	for k := range globalfuncs {
		names = append(names, k)
	}
	for k := range globalconsts {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(ctx *Context, args []float64) float64 {
	return m.f(args[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

type dyadic struct {
	f func(x, y float64) float64
}

func (d dyadic) Call(ctx *Context, args []float64) float64 {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// angular is a trigonometric function whose argument is in the context's
// angle mode.
type angular struct {
	f func(float64) float64
}

func (a angular) Call(ctx *Context, args []float64) float64 {
	return a.f(ctx.toRadians(args[0]))
}

func (a angular) CanCall(n int) bool {
	return n == 1
}

// inverse is an inverse trigonometric function whose result is in the
// context's angle mode.
type inverse struct {
	f func(float64) float64
}

func (v inverse) Call(ctx *Context, args []float64) float64 {
	return ctx.fromRadians(v.f(args[0]))
}

func (v inverse) CanCall(n int) bool {
	return n == 1
}

// factorials holds every finite float64 factorial. 170! is the last.
var factorials [171]float64

func init() {
	factorials[0] = 1
	for i := 1; i < len(factorials); i++ {
		factorials[i] = factorials[i-1] * float64(i)
	}
}

// factorial computes n!. It is NaN rather than an error for n outside the
// non-negative integers.
func factorial(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n != math.Trunc(n) {
		return math.NaN()
	}
	if n >= float64(len(factorials)) {
		return math.Inf(1)
	}
	return factorials[int(n)]
}
