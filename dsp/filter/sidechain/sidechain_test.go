package sidechain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-opto/dsp/filter/design"
)

const sr = 48000.0

func TestFilter_DisabledIsPassthrough(t *testing.T) {
	f := New(sr)
	f.Configure(Settings{FreqHz: 100, Q: 0.7}, Settings{FreqHz: 5000, Q: 0.7})

	for i, x := range []float64{0, 1, 0.25, 0.9, 0.001} {
		if y := f.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestBank_CoefficientCache(t *testing.T) {
	b := NewBank(design.LowPass, sr)

	b.Configure(Settings{Enabled: true, FreqHz: 1000, Q: 0.707})
	b.Configure(Settings{Enabled: true, FreqHz: 1000 + Tolerance/2, Q: 0.707})
	b.Configure(Settings{Enabled: false, FreqHz: 1000, Q: 0.707})
	if got := b.Updates(); got != 1 {
		t.Fatalf("updates = %d, want 1", got)
	}

	b.Configure(Settings{Enabled: true, FreqHz: 1001, Q: 0.707})
	if got := b.Updates(); got != 2 {
		t.Fatalf("updates after change = %d, want 2", got)
	}

	b.Invalidate()
	b.Configure(Settings{Enabled: true, FreqHz: 1001, Q: 0.707})
	if got := b.Updates(); got != 3 {
		t.Fatalf("updates after invalidate = %d, want 3", got)
	}
}

func TestBank_ResetClearsAndRecomputes(t *testing.T) {
	b := NewBank(design.HighPass, sr)
	s := Settings{Enabled: true, FreqHz: 200, Q: 0.707}
	b.Configure(s)
	for range 16 {
		b.ProcessSample(1)
	}

	b.Reset()
	for i, st := range b.Cascade().State() {
		if st != [2]float64{} {
			t.Fatalf("section %d state = %v after Reset", i, st)
		}
	}
	if c := b.Cascade().Coefficients(0); c.B0 != 0 || c.A1 != 0 {
		t.Fatalf("coefficients not cleared: %+v", c)
	}

	b.Configure(s)
	if want := design.Compute(design.HighPass, sr, 200, 0.707); b.Cascade().Coefficients(2) != want {
		t.Fatal("Configure after Reset did not recompute coefficients")
	}
}

func TestFilter_SlopeIs36dBPerOctave(t *testing.T) {
	f := New(sr)
	f.Configure(Settings{Enabled: true, FreqHz: 1000, Q: design.ButterworthQ}, Settings{})

	c := f.LowPass().Cascade()
	drop := c.MagnitudeDB(8000, sr) - c.MagnitudeDB(16000, sr)
	if drop < 30 {
		t.Fatalf("octave drop = %.1f dB, want >= 30", drop)
	}
	if c.Order() != 6 {
		t.Fatalf("order = %d, want 6", c.Order())
	}
}

func TestFilter_HighPassRemovesDC(t *testing.T) {
	f := New(sr)
	f.Configure(Settings{}, Settings{Enabled: true, FreqHz: 100, Q: design.ButterworthQ})

	var y float64
	for range int(sr) {
		y = f.ProcessSample(1)
	}
	if math.Abs(y) > 1e-6 {
		t.Fatalf("DC output after 1 s = %v, want ~0", y)
	}
}

func TestFilter_LanesAreIndependent(t *testing.T) {
	lp := Settings{Enabled: true, FreqHz: 500, Q: 0.707}
	a, b := New(sr), New(sr)
	a.Configure(lp, Settings{})
	b.Configure(lp, Settings{})

	a.ProcessSample(1)
	if a.LowPass().Cascade().Coefficients(0) != b.LowPass().Cascade().Coefficients(0) {
		t.Fatal("identical controls must give identical coefficients")
	}
	if b.LowPass().Cascade().State()[0] != [2]float64{} {
		t.Fatal("processing one lane changed the other lane's history")
	}
}
