package services

import "math"

// RegularHoursCap is the number of hours paid at the plain hourly rate.
const RegularHoursCap = 8.0

// ApplicableHours returns how many of totalHours fall within a surcharge
// tier's [minHour, maxHour] band. Tiers are not mutually exclusive brackets:
// each one independently measures the hours at or above its floor, capped at
// its ceiling when one is set. Hours already paid in the regular base are not
// excluded; base pay and tier pay for the same hours are summed independently.
func ApplicableHours(totalHours, minHour float64, maxHour *float64) float64 {
	if totalHours <= minHour {
		return 0
	}
	if maxHour != nil && totalHours > *maxHour {
		return *maxHour - minHour
	}
	return totalHours - minHour
}

// RegularHours caps worked hours at the regular-pay ceiling.
func RegularHours(totalHours float64) float64 {
	return math.Min(totalHours, RegularHoursCap)
}
