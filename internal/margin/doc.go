// Package margin provides the closed-form relations of a lateral abort.
//
// Five quantities describe a vehicle deflecting away from an obstacle:
//
//   - [Angle]: deflection angle θ, degrees
//   - [Buffer]: lateral buffer distance b, feet
//   - [Time]: elapsed time t, seconds
//   - [Speed]: ground speed s, knots
//   - [Radius]: turn radius r, feet
//
// Given any four, [Quantity.Solve] returns the fifth in its display unit.
// The formulas work in meters, meters per second and radians internally.
//
// # Degenerate Inputs
//
// No input is rejected. A zero sin(θ), a zero cos(θ)-1 or an arcsin argument
// outside [-1, 1] yields ±Inf or NaN exactly as IEEE-754 arithmetic does.
package margin
