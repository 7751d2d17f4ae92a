package app

import "time"

// Limits bounds what the validator accepts. It is passed in at construction
// rather than read from process-wide settings.
type Limits struct {
	MinWeightKg       float64
	MaxWeightKg       float64
	MaxFractionDigits int
	Location          *time.Location
}

// DefaultLimits returns the limits used in production: weights in
// (0, 1000) kg with at most two decimal places, "today" in local time.
func DefaultLimits() Limits {
	return Limits{
		MinWeightKg:       0.01,
		MaxWeightKg:       999.99,
		MaxFractionDigits: 2,
		Location:          time.Local,
	}
}
