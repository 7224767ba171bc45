package service

import "math"

// calcPercentChange returns the period-over-period change in percent. A zero
// previous value yields 100 when the current value is positive and 0
// otherwise, avoiding division by zero.
func calcPercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return (current - previous) / previous * 100
}

// goalProgress returns saved/target as a whole percentage, clamped to 100.
func goalProgress(saved, target float64) int {
	if target <= 0 {
		return 0
	}

	progress := int(math.Round(saved / target * 100))
	if progress > 100 {
		progress = 100
	}

	return progress
}
