package margin

import "math"

// AbortAngle returns the deflection angle in degrees that opens bufferFt of
// lateral clearance after timeS seconds at speedKt on a radiusFt turn.
func AbortAngle(bufferFt, timeS, speedKt, radiusFt float64) float64 {
	buffer := bufferFt * FeetToMeters
	speed := speedKt * KnotsToMPS
	radius := radiusFt * FeetToMeters

	run := timeS * speed
	angle := math.Atan(radius/run) + math.Asin((buffer-radius)/math.Sqrt(radius*radius+run*run))
	return degrees(angle)
}

// AbortBuffer returns the lateral buffer in feet.
func AbortBuffer(angleDeg, timeS, speedKt, radiusFt float64) float64 {
	angle := radians(angleDeg)
	speed := speedKt * KnotsToMPS
	radius := radiusFt * FeetToMeters

	buffer := timeS*speed*math.Sin(angle) + radius*(1-math.Cos(angle))
	return buffer * MetersToFeet
}

// TimeMargin returns the time in seconds needed to open the buffer.
func TimeMargin(angleDeg, bufferFt, speedKt, radiusFt float64) float64 {
	angle := radians(angleDeg)
	buffer := bufferFt * FeetToMeters
	speed := speedKt * KnotsToMPS
	radius := radiusFt * FeetToMeters

	return (buffer + radius*(math.Cos(angle)-1)) / (speed * math.Sin(angle))
}

// AbortSpeed returns the ground speed in knots.
func AbortSpeed(angleDeg, bufferFt, timeS, radiusFt float64) float64 {
	angle := radians(angleDeg)
	buffer := bufferFt * FeetToMeters
	radius := radiusFt * FeetToMeters

	speed := (buffer + radius*(math.Cos(angle)-1)) / (timeS * math.Sin(angle))
	return speed * MPSToKnots
}

// AbortRadius returns the turn radius in feet.
func AbortRadius(angleDeg, bufferFt, timeS, speedKt float64) float64 {
	angle := radians(angleDeg)
	buffer := bufferFt * FeetToMeters
	speed := speedKt * KnotsToMPS

	radius := (timeS*speed*math.Sin(angle) - buffer) / (math.Cos(angle) - 1)
	return radius * MetersToFeet
}
