package core

import "math"

// FloorDB is the level reported for silence and for any amplitude below
// FloorAmplitude.
const FloorDB = -90.0

// FloorAmplitude is the linear amplitude that maps to FloorDB.
var FloorAmplitude = math.Pow(10, FloorDB/20)

// Clamp limits v to [lo, hi]. lo must not exceed hi.
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FlushDenormals returns 0 for |x| below 1e-30 and x otherwise. Feedback
// state decaying towards zero is passed through it.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return mathPower10(db / 20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Amplitudes at or below FloorAmplitude, including zero, negative and NaN
// values, report FloorDB.
func LinearToDB(linear float64) float64 {
	if !(linear > FloorAmplitude) {
		return FloorDB
	}

	return 20 * mathLog10(linear)
}

// SmoothingCoeff returns the one-pole coefficient 1 - exp(-1/(fs*t)) for a
// time constant given in milliseconds. Non-positive times return 1, which
// makes the smoother follow its target immediately.
func SmoothingCoeff(sampleRate, timeMs float64) float64 {
	if timeMs <= 0 || sampleRate <= 0 {
		return 1
	}

	return 1 - mathExp(-1/(sampleRate*timeMs*0.001))
}

// BlockSmoothingCoeff is SmoothingCoeff for a smoother that is updated once
// per block of n samples rather than once per sample.
func BlockSmoothingCoeff(sampleRate, timeMs float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	if timeMs <= 0 || sampleRate <= 0 {
		return 1
	}

	return 1 - mathExp(-float64(n)/(sampleRate*timeMs*0.001))
}
