//go:build fastmath

package core

import (
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.30258509299404568401799145468

// mathLog10 uses the identity log10(x) = ln(x) / ln(10).
func mathLog10(x float64) float64 {
	return approx.FastLog(x) / ln10
}

// mathPower10 uses the identity 10^x = e^(x * ln(10)).
func mathPower10(x float64) float64 {
	return approx.FastExp(x * ln10)
}

func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
