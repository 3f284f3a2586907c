package output

import (
	"strconv"
)

// Display helpers round the exact binary value the way printf does, so 0.125
// renders as 0.12.

// FormatDelay renders a delay or score with two decimals
func FormatDelay(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatFraction renders a 0-1 fraction as a percentage with one decimal
func FormatFraction(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// FormatPercent renders a value already on the 0-100 scale with one decimal
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatProbability renders a probability with four decimals
func FormatProbability(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
