package model

import "math"

// Tolerance is the rounding tolerance used when comparing monetary amounts.
// Stated bill fields are considered consistent when they agree within a cent.
const Tolerance = 0.01

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ceil2 rounds a dollar amount up to the next cent. Installment payments
// use it so a schedule never comes up short of the balance it divides.
func Ceil2(v float64) float64 {
	return math.Ceil(v*100) / 100
}

// AmountsEqual reports whether two dollar amounts agree within Tolerance.
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}
