package money

import "github.com/shopspring/decimal"

// Monetary amounts are carried as float64 satang-precision baht values
// (decimal(15,2) columns). Every intermediate pricing step is rounded
// independently through this package so totals are reproducible.

// Round2 rounds an amount to 2 decimal places, half away from zero.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// Mul multiplies an amount by a rate and rounds to 2 decimal places.
func Mul(amount, rate float64) float64 {
	f, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		Float64()
	return f
}

// Div divides an amount by a divisor and rounds to 2 decimal places.
func Div(amount, divisor float64) float64 {
	f, _ := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(divisor)).
		Round(2).
		Float64()
	return f
}

// Sub subtracts b from a without losing 2-decimal precision.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).
		Sub(decimal.NewFromFloat(b)).
		Round(2).
		Float64()
	return f
}

// Add adds two amounts without losing 2-decimal precision.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).
		Add(decimal.NewFromFloat(b)).
		Round(2).
		Float64()
	return f
}
