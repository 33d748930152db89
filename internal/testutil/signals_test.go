package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	RequireNearlyEqual(t, "s[12]", s[12], 1, 1e-15)
	RequireNearlyEqual(t, "RMS", RMS(s), math.Sqrt(0.5), 1e-12)
}

func TestSineDB(t *testing.T) {
	cases := []struct {
		db   float64
		peak float64
	}{
		{0, 1},
		{-6.020599913279624, 0.5},
		{-20, 0.1},
	}

	for _, tc := range cases {
		s := SineDB(1000, 48000, tc.db, 48)
		RequireNearlyEqual(t, "peak", Peak(s), tc.peak, 1e-12)
	}
}

func TestBurst(t *testing.T) {
	sig := DC(1, 10)

	cases := []struct {
		onset, length int
		want          []float64
	}{
		{2, 3, []float64{0, 0, 1, 1, 1, 0, 0, 0, 0, 0}},
		{8, 5, []float64{0, 0, 0, 0, 0, 0, 0, 0, 1, 1}},
		{12, 2, make([]float64, 10)},
		{-1, 4, make([]float64, 10)},
	}

	for _, tc := range cases {
		RequireSliceNearlyEqual(t, Burst(sig, tc.onset, tc.length), tc.want, 0)
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := DeterministicNoise(42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)

	RequireSliceNearlyEqual(t, a, b, 0)
	RequireBounded(t, a, 0.5)

	if a[0] == c[0] && a[1] == c[1] {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRMSAndPeakEmpty(t *testing.T) {
	if RMS(nil) != 0 || Peak(nil) != 0 {
		t.Fatal("empty input must report 0")
	}
}
