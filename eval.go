package calc

import (
	"math"
	"strings"
)

// AngleMode is the unit in which trigonometric functions take arguments and
// inverse trigonometric functions give results.
type AngleMode int8

const (
	Degrees AngleMode = iota
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	default:
		return "AngleMode(?)"
	}
}

// Context is a context for evaluating expressions. It holds the angle mode
// and the previous answer. It is not safe to use a Context concurrently.
type Context struct {
	mode   AngleMode
	ans    float64
	hasAns bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	modeopt AngleMode
	ansopt  float64
)

func (modeopt) ctxOption() {}
func (ansopt) ctxOption()  {}

// Mode sets the angle mode of the context.
func Mode(m AngleMode) ContextOption {
	return modeopt(m)
}

// Answer sets the previous answer of the context.
func Answer(v float64) ContextOption {
	return ansopt(v)
}

// NewContext creates a new evaluation context. If no angle mode is given, the
// default is Degrees. The context has no previous answer unless one is given.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case modeopt:
			n.mode = AngleMode(opt)
		case ansopt:
			n.ans, n.hasAns = float64(opt), true
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// AngleMode returns the context's angle mode.
func (ctx *Context) AngleMode() AngleMode {
	return ctx.mode
}

// SetAngleMode changes the context's angle mode.
func (ctx *Context) SetAngleMode(m AngleMode) {
	ctx.mode = m
}

// LastAnswer returns the result of the last successful evaluation, if any.
func (ctx *Context) LastAnswer() (float64, bool) {
	return ctx.ans, ctx.hasAns
}

func (ctx *Context) toRadians(x float64) float64 {
	if ctx.mode == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func (ctx *Context) fromRadians(x float64) float64 {
	if ctx.mode == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

// Eval evaluates a parsed expression. The context is not modified. The only
// error is a *NameError when the expression refers to a previous answer that
// the context lacks; numeric problems like division by zero produce
// infinities or NaN instead.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	return e.n.eval(ctx)
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// Display is the formatted value.
	Display string
	// Value is the numeric value.
	Value float64
}

// Evaluate normalizes, parses, and evaluates raw calculator input. On success,
// the value becomes the context's previous answer.
func (ctx *Context) Evaluate(raw string) (Result, error) {
	src, err := ctx.Normalize(raw)
	if err != nil {
		return Result{}, err
	}
	e, err := ParseString(src)
	if err != nil {
		return Result{}, err
	}
	v, err := ctx.Eval(e)
	if err != nil {
		return Result{}, err
	}
	ctx.ans, ctx.hasAns = v, true
	return Result{Display: Format(v), Value: v}, nil
}

// eval computes the node's value.
func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeNum, nodeConst:
		return n.num, nil
	case nodeAns:
		if !ctx.hasAns {
			return 0, &NameError{Name: "Ans"}
		}
		return ctx.ans, nil
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(ctx)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return n.fn.Call(ctx, args), nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			return l / r, nil
		default:
			return math.Pow(l, r), nil
		}
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// EvalString is a shortcut to evaluate calculator input with a new context.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	r, err := NewContext(opts...).Evaluate(strings.TrimSpace(src))
	return r.Value, err
}
