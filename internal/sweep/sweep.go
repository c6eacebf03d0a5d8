// Package sweep evaluates the output quantity across the range of one input.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
)

var ErrTooFewSamples = errors.New("sweep: need at least two samples")

// Point is one sample: the swept input and the resulting output.
type Point struct {
	Input  float64
	Output float64
}

// Result holds a sweep of Free against the state's output quantity.
type Result struct {
	Free   margin.Quantity
	Output margin.Quantity
	Points []Point
}

// Run moves free from its range start to stop in evenly spaced samples.
// Each sample goes through an engine seeded with state, so outputs are clamped
// exactly as in interactive use. state itself is never modified.
func Run(state engine.State, free margin.Quantity, samples int) (*Result, error) {
	if !free.Valid() {
		return nil, fmt.Errorf("sweep: %w: %d", engine.ErrInvalidQuantity, int(free))
	}
	if free == state.Output() {
		return nil, fmt.Errorf("sweep %s: %w", free.Name(), engine.ErrOutputLocked)
	}
	if samples < 2 {
		return nil, ErrTooFewSamples
	}

	rng := state.Record(free).Range
	step := (rng.Stop - rng.Start) / float64(samples-1)

	e := engine.New(state)
	res := &Result{Free: free, Output: state.Output(), Points: make([]Point, 0, samples)}
	for i := 0; i < samples; i++ {
		in := rng.Start + float64(i)*step
		if i == samples-1 {
			in = rng.Stop
		}
		st, err := e.SetInput(free, in)
		if err != nil {
			return nil, err
		}
		res.Points = append(res.Points, Point{Input: in, Output: st.Value(res.Output)})
	}
	return res, nil
}

// Outputs returns the finite output values in input order, and the number of
// samples dropped for being NaN or infinite.
func (r *Result) Outputs() ([]float64, int) {
	out := make([]float64, 0, len(r.Points))
	dropped := 0
	for _, p := range r.Points {
		if math.IsNaN(p.Output) || math.IsInf(p.Output, 0) {
			dropped++
			continue
		}
		out = append(out, p.Output)
	}
	return out, dropped
}

// Bounds returns the smallest and largest finite output.
func (r *Result) Bounds() (lo, hi float64, ok bool) {
	vals, _ := r.Outputs()
	if len(vals) == 0 {
		return 0, 0, false
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}
