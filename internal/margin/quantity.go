package margin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuantity reports an identifier outside the five quantities.
var ErrInvalidQuantity = errors.New("margin: invalid quantity")

// Quantity identifies one of the five related variables.
type Quantity int

const (
	Angle Quantity = iota
	Buffer
	Time
	Speed
	Radius
)

// Count is the number of quantities.
const Count = 5

// All lists the quantities in formula parameter order.
var All = [Count]Quantity{Angle, Buffer, Time, Speed, Radius}

var quantityInfo = [Count]struct {
	symbol, name, units string
}{
	Angle:  {"θ", "angle", "degrees"},
	Buffer: {"b", "buffer", "feet"},
	Time:   {"t", "time", "seconds"},
	Speed:  {"s", "speed", "knots"},
	Radius: {"r", "radius", "feet"},
}

// Valid reports whether q is one of the five quantities.
func (q Quantity) Valid() bool {
	return q >= Angle && q <= Radius
}

// Symbol returns the single-letter symbol, e.g. "θ".
func (q Quantity) Symbol() string {
	if !q.Valid() {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityInfo[q].symbol
}

// Name returns the long name used in configuration files.
func (q Quantity) Name() string {
	if !q.Valid() {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityInfo[q].name
}

// Units returns the display unit label.
func (q Quantity) Units() string {
	if !q.Valid() {
		return ""
	}
	return quantityInfo[q].units
}

func (q Quantity) String() string { return q.Symbol() }

// ParseQuantity accepts a symbol, a long name or "theta".
func ParseQuantity(s string) (Quantity, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "theta" {
		return Angle, nil
	}
	for _, q := range All {
		if key == quantityInfo[q].symbol || key == quantityInfo[q].name {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
}

// Values holds one value per quantity, indexed by Quantity.
type Values [Count]float64

// Solve computes q from the other four values. The entry for q is ignored.
func (q Quantity) Solve(v Values) (float64, error) {
	switch q {
	case Angle:
		return AbortAngle(v[Buffer], v[Time], v[Speed], v[Radius]), nil
	case Buffer:
		return AbortBuffer(v[Angle], v[Time], v[Speed], v[Radius]), nil
	case Time:
		return TimeMargin(v[Angle], v[Buffer], v[Speed], v[Radius]), nil
	case Speed:
		return AbortSpeed(v[Angle], v[Buffer], v[Time], v[Radius]), nil
	case Radius:
		return AbortRadius(v[Angle], v[Buffer], v[Time], v[Speed]), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, int(q))
}
