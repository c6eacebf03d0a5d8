package engine

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/abortcalc/internal/margin"
)

// Engine holds the current snapshot and applies mutations to it.
type Engine struct {
	current State
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an engine whose current snapshot is initial.
func New(initial State, opts ...Option) *Engine {
	e := &Engine{current: initial, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the latest published snapshot.
func (e *Engine) Current() State { return e.current }

// Reset publishes s as the current snapshot without recomputation.
func (e *Engine) Reset(s State) {
	e.current = s
	e.logger.Debug("state reset", "state", s.String())
}

// SetInput replaces the value of the free quantity q and recomputes the
// output. The input value itself is not clamped.
func (e *Engine) SetInput(q margin.Quantity, v float64) (State, error) {
	if !q.Valid() {
		return e.current, fmt.Errorf("set input: %w: %d", ErrInvalidQuantity, int(q))
	}
	cur := e.current
	if q == cur.output {
		return cur, fmt.Errorf("set input %s: %w", q.Name(), ErrOutputLocked)
	}

	next := cur.withValue(q, v)
	out, err := solve(next, cur.output)
	if err != nil {
		return cur, err
	}
	next = next.withValue(cur.output, out)

	e.current = next
	e.logger.Debug("input set",
		"quantity", q.Symbol(),
		"value", v,
		"output", cur.output.Symbol(),
		"result", out,
	)
	return next, nil
}

// SetOutputTarget makes q the computed quantity and recomputes it from the
// other four. The previous output keeps its value as a free input.
func (e *Engine) SetOutputTarget(q margin.Quantity) (State, error) {
	if !q.Valid() {
		return e.current, fmt.Errorf("set output: %w: %d", ErrInvalidQuantity, int(q))
	}
	cur := e.current
	out, err := solve(cur, q)
	if err != nil {
		return cur, err
	}
	next := cur.withValue(q, out)
	next.output = q

	e.current = next
	e.logger.Debug("output target set",
		"previous", cur.output.Symbol(),
		"output", q.Symbol(),
		"result", out,
	)
	return next, nil
}

// solve computes target from the other four values of s and clamps it.
func solve(s State, target margin.Quantity) (float64, error) {
	raw, err := target.Solve(s.Values())
	if err != nil {
		return 0, err
	}
	return s.records[target].Range.Clamp(raw), nil
}
