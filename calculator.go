package calc

import (
	"strings"
	"time"
)

// DefaultTimeLayout is the layout for history timestamps when none is given.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// Calculator evaluates user input with a Context and records each success in
// a History. It is not safe for concurrent use.
type Calculator struct {
	ctx    *Context
	hist   *History
	now    func() time.Time
	layout string
}

// Option is an option used when creating a Calculator.
type Option func(*Calculator)

// WithContext sets the context the calculator evaluates with.
func WithContext(ctx *Context) Option {
	return func(c *Calculator) { c.ctx = ctx }
}

// WithClock sets the source of history timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// WithTimeLayout sets the time layout of history timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *Calculator) { c.layout = layout }
}

// New creates a calculator in degrees mode with an empty history.
func New(opts ...Option) *Calculator {
	c := Calculator{
		hist:   NewHistory(),
		now:    time.Now,
		layout: DefaultTimeLayout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.ctx == nil {
		c.ctx = NewContext()
	}
	return &c
}

// Evaluate evaluates input and records it in the history. Surrounding space
// is ignored. On error, neither the previous answer nor the history changes.
func (c *Calculator) Evaluate(raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}, &EmptyExpressionError{Col: 1}
	}
	r, err := c.ctx.Evaluate(raw)
	if err != nil {
		return Result{}, err
	}
	c.hist.Record(Entry{Expression: raw, Result: r.Display, Time: c.now().Format(c.layout)})
	return r, nil
}

// SetAngleMode changes the angle mode for later evaluations.
func (c *Calculator) SetAngleMode(m AngleMode) {
	c.ctx.SetAngleMode(m)
}

// AngleMode returns the current angle mode.
func (c *Calculator) AngleMode() AngleMode {
	return c.ctx.AngleMode()
}

// LastAnswer returns the result of the last successful evaluation, if any.
func (c *Calculator) LastAnswer() (float64, bool) {
	return c.ctx.LastAnswer()
}

// History returns the calculator's history.
func (c *Calculator) History() *History {
	return c.hist
}

// ClearHistory removes all history entries. The previous answer is kept.
func (c *Calculator) ClearHistory() {
	c.hist.Clear()
}

// ExportHistoryCSV renders the history as CSV.
func (c *Calculator) ExportHistoryCSV() string {
	return c.hist.ExportCSV()
}
