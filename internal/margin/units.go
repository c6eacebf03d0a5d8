package margin

import "math"

// Conversion factors between display and working units.
const (
	KnotsToMPS   = 0.5144444444
	MPSToKnots   = 1.9438444924
	FeetToMeters = 0.3048
	MetersToFeet = 3.28083989501
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
