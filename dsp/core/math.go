//go:build !fastmath

package core

import "math"

func mathLog10(x float64) float64 {
	return math.Log10(x)
}

func mathPower10(x float64) float64 {
	return math.Pow(10, x)
}

func mathExp(x float64) float64 {
	return math.Exp(x)
}
