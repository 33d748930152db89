package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// EncodeSample converts a left/right pair into mid (sum) and side
// (difference).
func EncodeSample(left, right float64) (mid, side float64) {
	return left + right, left - right
}

// DecodeSample converts mid/side back to left/right. It is the exact
// inverse of EncodeSample.
func DecodeSample(mid, side float64) (left, right float64) {
	return (mid + side) * 0.5, (mid - side) * 0.5
}

// EncodeBlock writes mid = left+right and side = left-right.
//
// All slices must share one length. mid must not alias left or right;
// side may alias right.
func EncodeBlock(mid, side, left, right []float64) error {
	if err := checkLengths(mid, side, left, right); err != nil {
		return err
	}

	vecmath.AddBlock(mid, left, right)
	vecmath.ScaleBlock(side, right, -1)
	vecmath.AddBlockInPlace(side, left)

	return nil
}

// DecodeBlock writes left = (mid+side)/2 and right = (mid-side)/2.
//
// All slices must share one length. left must not alias mid or side;
// right may alias side.
func DecodeBlock(left, right, mid, side []float64) error {
	if err := checkLengths(left, right, mid, side); err != nil {
		return err
	}

	vecmath.AddMulBlock(left, mid, side, 0.5)
	vecmath.ScaleBlock(right, side, -1)
	vecmath.AddMulBlock(right, mid, right, 0.5)

	return nil
}

func checkLengths(a, b, c, d []float64) error {
	n := len(a)
	if len(b) != n || len(c) != n || len(d) != n {
		return fmt.Errorf("mid/side block lengths must match: %d, %d, %d, %d", len(a), len(b), len(c), len(d))
	}

	return nil
}
