package utils

import "math"

// RoundFloat rounds a float64 to the specified number of decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// ProgressPercent returns how far a campaign is toward its goal, rounded to
// two decimals and capped at 100.
func ProgressPercent(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	p := RoundFloat(raised/goal*100, 2)
	if p > 100 {
		return 100
	}
	return p
}
