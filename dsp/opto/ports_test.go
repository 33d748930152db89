package opto

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
)

func TestPortClassification(t *testing.T) {
	controls, meters, audio := 0, 0, 0

	for i := range NumPorts {
		p := Port(i)

		kinds := 0
		if p.IsControl() {
			controls++
			kinds++
		}

		if p.IsMeter() {
			meters++
			kinds++
		}

		if p.IsAudio() {
			audio++
			kinds++
		}

		if kinds != 1 {
			t.Fatalf("port %s belongs to %d classes", p, kinds)
		}
	}

	if controls != 11 || meters != 3 || audio != 4 {
		t.Fatalf("controls=%d meters=%d audio=%d", controls, meters, audio)
	}
}

func TestPortNumbering(t *testing.T) {
	cases := []struct {
		port Port
		idx  int
		name string
	}{
		{PortPeakReduction, 0, "peak_reduction"},
		{PortMeter, 2, "meter"},
		{PortRatioMode, 5, "ratio_mode"},
		{PortSidechainHighPassQ, 11, "sc_hp_q"},
		{PortOutputRMS, 12, "output_rms"},
		{PortGainReductionMeter, 13, "gain_reduction_meter"},
		{PortAudioOutR, 17, "audio_out_r"},
		{Port(42), 42, "Port(42)"},
	}

	for _, tc := range cases {
		if int(tc.port) != tc.idx || tc.port.String() != tc.name {
			t.Fatalf("port %d = %q, want %d %q", int(tc.port), tc.port.String(), tc.idx, tc.name)
		}
	}
}

func TestSetControl(t *testing.T) {
	var p Params

	writes := []struct {
		port  Port
		value float64
	}{
		{PortPeakReduction, 0.25},
		{PortGain, 0.75},
		{PortBypass, 0.6},
		{PortMidSide, 0.5},
		{PortRatioMode, 2.9},
		{PortSidechainLowPassOn, 1},
		{PortSidechainLowPassFreq, 5000},
		{PortSidechainLowPassQ, 0.9},
		{PortSidechainHighPassOn, 0.4},
		{PortSidechainHighPassFreq, 120},
		{PortSidechainHighPassQ, 1.2},
	}

	for _, w := range writes {
		if err := p.SetControl(w.port, w.value); err != nil {
			t.Fatalf("SetControl(%s) error = %v", w.port, err)
		}
	}

	switch {
	case p.PeakReduction != 0.25, p.Gain != 0.75:
		t.Fatalf("levels = %g, %g", p.PeakReduction, p.Gain)
	case !p.Bypass, p.MidSide:
		t.Fatalf("toggles bypass=%v ms=%v", p.Bypass, p.MidSide)
	case p.RatioMode != dynamics.Ratio9:
		t.Fatalf("RatioMode = %v", p.RatioMode)
	case !p.SidechainLowPass.Enabled, p.SidechainLowPass.FreqHz != 5000, p.SidechainLowPass.Q != 0.9:
		t.Fatalf("low-pass = %+v", p.SidechainLowPass)
	case p.SidechainHighPass.Enabled, p.SidechainHighPass.FreqHz != 120, p.SidechainHighPass.Q != 1.2:
		t.Fatalf("high-pass = %+v", p.SidechainHighPass)
	}

	got, err := p.Control(PortBypass)
	if err != nil || got != 1 {
		t.Fatalf("Control(bypass) = %g, %v", got, err)
	}

	got, err = p.Control(PortSidechainLowPassFreq)
	if err != nil || got != 5000 {
		t.Fatalf("Control(sc_lp_freq) = %g, %v", got, err)
	}
}

func TestSetControlRatioModeClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want dynamics.RatioMode
	}{
		{-3, dynamics.Ratio3},
		{0.99, dynamics.Ratio3},
		{1, dynamics.Ratio6},
		{3.5, dynamics.RatioLimit},
		{1e12, dynamics.RatioLimit},
		{math.Inf(-1), dynamics.Ratio3},
		{math.NaN(), dynamics.Ratio3},
	}

	for _, tc := range cases {
		var p Params
		if err := p.SetControl(PortRatioMode, tc.in); err != nil {
			t.Fatalf("SetControl(%g) error = %v", tc.in, err)
		}

		if p.RatioMode != tc.want {
			t.Fatalf("SetControl(%g) mode = %v, want %v", tc.in, p.RatioMode, tc.want)
		}
	}
}

func TestSetControlRejectsNonControlPorts(t *testing.T) {
	var p Params

	for _, port := range []Port{PortMeter, PortOutputRMS, PortGainReductionMeter, PortAudioInL, PortAudioOutR, Port(-1)} {
		if err := p.SetControl(port, 1); !errors.Is(err, ErrNotControlPort) {
			t.Fatalf("SetControl(%s) error = %v, want ErrNotControlPort", port, err)
		}

		if _, err := p.Control(port); !errors.Is(err, ErrNotControlPort) {
			t.Fatalf("Control(%s) error = %v, want ErrNotControlPort", port, err)
		}
	}
}

func TestMetersValue(t *testing.T) {
	m := Meters{OutputRMSDB: -12.5, GainReductionDB: 4}

	cases := []struct {
		port Port
		want float64
	}{
		{PortMeter, 4},
		{PortGainReductionMeter, 4},
		{PortOutputRMS, -12.5},
	}

	for _, tc := range cases {
		got, err := m.Value(tc.port)
		if err != nil || got != tc.want {
			t.Fatalf("Value(%s) = %g, %v", tc.port, got, err)
		}
	}

	if _, err := m.Value(PortGain); !errors.Is(err, ErrNotMeterPort) {
		t.Fatalf("Value(gain) error = %v", err)
	}
}
