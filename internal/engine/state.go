package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/abortcalc/internal/margin"
)

// Range bounds a quantity. Step is the UI increment.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

// Clamp saturates v at the bounds. NaN compares false against both bounds and
// lands on Stop.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return math.Max(r.Start, r.Stop)
	}
	return math.Max(r.Start, math.Min(r.Stop, v))
}

// Validate checks start <= stop and step > 0.
func (r Range) Validate() error {
	if math.IsNaN(r.Start) || math.IsNaN(r.Stop) || r.Start > r.Stop {
		return fmt.Errorf("%w: start %v > stop %v", ErrInvalidRange, r.Start, r.Stop)
	}
	if !(r.Step > 0) {
		return fmt.Errorf("%w: step %v must be positive", ErrInvalidRange, r.Step)
	}
	return nil
}

// Fraction returns the position of v within the range in [0, 1].
// Non-finite values at or beyond a bound map to that bound; NaN maps to 0.
func (r Range) Fraction(v float64) float64 {
	if math.IsNaN(v) || r.Stop == r.Start {
		return 0
	}
	return (r.Clamp(v) - r.Start) / (r.Stop - r.Start)
}

// Record is one quantity's value together with its slider metadata.
type Record struct {
	Value float64
	Range Range
	Units string
}

// State is an immutable snapshot of all five records and the output selector.
// Copies never share storage, so a State can be held across engine calls.
type State struct {
	records [margin.Count]Record
	output  margin.Quantity
}

var defaultRanges = [margin.Count]Range{
	margin.Angle:  {Start: 0.1, Stop: 90.0, Step: 0.1},
	margin.Buffer: {Start: 0.5, Stop: 100.0, Step: 0.5},
	margin.Time:   {Start: 0.1, Stop: 10.0, Step: 0.1},
	margin.Speed:  {Start: 5.0, Stop: 300.0, Step: 5.0},
	margin.Radius: {Start: 1.0, Stop: 100.0, Step: 1.0},
}

// DefaultRanges returns the stock slider ranges.
func DefaultRanges() [margin.Count]Range { return defaultRanges }

// DefaultState returns the startup snapshot: every value 5.0, output θ.
func DefaultState() State {
	var s State
	for _, q := range margin.All {
		s.records[q] = Record{Value: 5.0, Range: defaultRanges[q], Units: q.Units()}
	}
	s.output = margin.Angle
	return s
}

// NewState builds a snapshot from explicit values and ranges. Values are taken
// as given; the output is not recomputed.
func NewState(values margin.Values, ranges [margin.Count]Range, output margin.Quantity) (State, error) {
	if !output.Valid() {
		return State{}, fmt.Errorf("%w: output %d", ErrInvalidQuantity, int(output))
	}
	var s State
	for _, q := range margin.All {
		if err := ranges[q].Validate(); err != nil {
			return State{}, fmt.Errorf("%s: %w", q.Name(), err)
		}
		s.records[q] = Record{Value: values[q], Range: ranges[q], Units: q.Units()}
	}
	s.output = output
	return s, nil
}

// Output returns the quantity currently computed from the other four.
func (s State) Output() margin.Quantity { return s.output }

// Record returns the record for q, or the zero Record if q is invalid.
func (s State) Record(q margin.Quantity) Record {
	if !q.Valid() {
		return Record{}
	}
	return s.records[q]
}

// Value returns q's current value.
func (s State) Value(q margin.Quantity) float64 { return s.Record(q).Value }

// Values returns all five values indexed by quantity.
func (s State) Values() margin.Values {
	var v margin.Values
	for _, q := range margin.All {
		v[q] = s.records[q].Value
	}
	return v
}

func (s State) withValue(q margin.Quantity, v float64) State {
	s.records[q].Value = v
	return s
}

func (s State) String() string {
	var b strings.Builder
	for i, q := range margin.All {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(q.Symbol())
		if q == s.output {
			b.WriteByte('*')
		}
		b.WriteByte('=')
		b.WriteString(FormatValue(s.records[q].Value))
	}
	return b.String()
}

// FormatValue renders v with four significant digits, keeping a decimal
// point on whole numbers ("5.0"). Non-finite values render as NaN, ∞ or -∞.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	s := strconv.FormatFloat(v, 'g', 4, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type recordJSON struct {
	Symbol  string   `json:"symbol"`
	Name    string   `json:"name"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
	Start   float64  `json:"start"`
	Stop    float64  `json:"stop"`
	Step    float64  `json:"step"`
	Units   string   `json:"units"`
	Output  bool     `json:"output"`
}

type stateJSON struct {
	Output     string       `json:"output"`
	Quantities []recordJSON `json:"quantities"`
}

// MarshalJSON encodes the snapshot. Non-finite values encode as null with the
// display form kept in "display".
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Output:     s.output.Name(),
		Quantities: make([]recordJSON, 0, margin.Count),
	}
	for _, q := range margin.All {
		rec := s.records[q]
		r := recordJSON{
			Symbol:  q.Symbol(),
			Name:    q.Name(),
			Display: FormatValue(rec.Value),
			Start:   rec.Range.Start,
			Stop:    rec.Range.Stop,
			Step:    rec.Range.Step,
			Units:   rec.Units,
			Output:  q == s.output,
		}
		if !math.IsNaN(rec.Value) && !math.IsInf(rec.Value, 0) {
			v := rec.Value
			r.Value = &v
		}
		out.Quantities = append(out.Quantities, r)
	}
	return json.Marshal(out)
}
