package thd

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-opto/dsp/window"
)

const eps = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestAnalyzePowerRatios(t *testing.T) {
	cfg := Config{
		SampleRate:      48000,
		FFTSize:         48000,
		FundamentalFreq: 1000,
		RangeUpperFreq:  10000,
		CaptureBins:     1,
		MaxHarmonics:    2,
	}

	power := make([]float64, cfg.FFTSize/2+1)
	power[1000] = 1
	power[2000] = 0.1 * 0.1
	power[3000] = 0.05 * 0.05
	power[4500] = 0.02 * 0.02

	res := AnalyzePower(power, cfg)

	if !near(res.FundamentalFreq, 1000) || !near(res.FundamentalLevel, 1) {
		t.Fatalf("fundamental = %g Hz level %g", res.FundamentalFreq, res.FundamentalLevel)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"THD", res.THD, math.Sqrt(0.0125)},
		{"THDN", res.THDN, math.Sqrt(0.0129)},
		{"Alias", res.Alias, 0.02},
		{"SINAD", res.SINAD, -20 * math.Log10(math.Sqrt(0.0129))},
		{"THD_dB", res.THD_dB, 20 * math.Log10(math.Sqrt(0.0125))},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %.12f, want %.12f", tt.name, tt.got, tt.want)
		}
	}

	if len(res.Harmonics) != 2 || !near(res.Harmonics[0], 0.1) || !near(res.Harmonics[1], 0.05) {
		t.Fatalf("Harmonics = %v, want [0.1 0.05]", res.Harmonics)
	}
}

func TestAnalyzePowerPicksStrongestBin(t *testing.T) {
	power := make([]float64, 24001)
	power[1000] = 0.8 * 0.8
	power[1200] = 1.2 * 1.2
	power[2400] = 0.1 * 0.1

	res := AnalyzePower(power, Config{SampleRate: 48000, RangeUpperFreq: 5000, CaptureBins: 1})

	if !near(res.FundamentalFreq, 1200) {
		t.Fatalf("FundamentalFreq = %g, want 1200", res.FundamentalFreq)
	}

	if len(res.Harmonics) == 0 || math.Abs(res.Harmonics[0]-0.1/1.2) > 1e-12 {
		t.Fatalf("Harmonics = %v", res.Harmonics)
	}
}

func TestAnalyzePowerCaptureWindow(t *testing.T) {
	power := make([]float64, 24001)
	power[999] = 0.2 * 0.2
	power[1000] = 1
	power[1001] = 0.2 * 0.2
	power[1999] = 0.1 * 0.1
	power[2001] = 0.05 * 0.05

	res := AnalyzePower(power, Config{
		SampleRate:      48000,
		FundamentalFreq: 1000,
		RangeUpperFreq:  5000,
		CaptureBins:     1,
	})

	if !near(res.FundamentalLevel, math.Sqrt(1.08)) {
		t.Fatalf("FundamentalLevel = %.12f, want sqrt(1.08)", res.FundamentalLevel)
	}

	if !near(res.THD, math.Sqrt(0.0125/1.08)) {
		t.Fatalf("THD = %.12f, want %.12f", res.THD, math.Sqrt(0.0125/1.08))
	}

	if res.Alias != 0 || !math.IsInf(res.Alias_dB, -1) {
		t.Fatalf("Alias = %g (%g dB), want 0", res.Alias, res.Alias_dB)
	}
}

func TestAnalyzePowerSecondToneIsNotHarmonic(t *testing.T) {
	power := make([]float64, 24001)
	power[1000] = 1
	power[2000] = 0.10 * 0.10
	power[3000] = 0.05 * 0.05
	power[1300] = 0.80 * 0.80
	power[2600] = 0.20 * 0.20
	power[3900] = 0.10 * 0.10

	res := AnalyzePower(power, Config{
		SampleRate:      48000,
		FundamentalFreq: 1000,
		RangeUpperFreq:  10000,
		CaptureBins:     1,
	})

	if !near(res.THD, math.Sqrt(0.0125)) {
		t.Fatalf("THD = %.12f, want %.12f", res.THD, math.Sqrt(0.0125))
	}

	if !near(res.Alias, math.Sqrt(0.69)) {
		t.Fatalf("Alias = %.12f, want %.12f", res.Alias, math.Sqrt(0.69))
	}

	if !near(res.THDN, math.Sqrt(0.7025)) {
		t.Fatalf("THDN = %.12f, want %.12f", res.THDN, math.Sqrt(0.7025))
	}
}

func TestAnalyzePowerAliasSkipsDCAndHarmonics(t *testing.T) {
	power := make([]float64, 24001)
	power[0] = 0.5 * 0.5
	power[1000] = 1
	power[3000] = 0.2 * 0.2
	power[5000] = 0.1 * 0.1
	power[4300] = 0.03 * 0.03
	power[7700] = 0.04 * 0.04

	res := AnalyzePower(power, Config{SampleRate: 48000, FundamentalFreq: 1000, CaptureBins: 1})

	if !near(res.Alias, 0.05) {
		t.Fatalf("Alias = %.12f, want 0.05", res.Alias)
	}

	if math.Abs(res.Alias_dB-20*math.Log10(0.05)) > 1e-9 {
		t.Fatalf("Alias_dB = %f", res.Alias_dB)
	}
}

func TestAnalyzeSignalPureTone(t *testing.T) {
	const (
		sr = 48000.0
		n  = 4096
	)
	freq := 64 * sr / n

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * freq * float64(i) / sr)
	}

	res := AnalyzeSignal(sig, Config{SampleRate: sr, FundamentalFreq: freq})

	if res.FundamentalLevel <= 0 {
		t.Fatal("expected a positive fundamental level")
	}

	if res.THD > 1e-6 || res.THDN > 1e-6 {
		t.Fatalf("THD = %g, THDN = %g, want near zero", res.THD, res.THDN)
	}
}

func TestAnalyzeSignalDetectsFoldedTone(t *testing.T) {
	const (
		sr = 48000.0
		n  = 8192
	)
	binHz := sr / n
	freq := 128 * binHz
	folded := 301 * binHz

	clean := make([]float64, n)
	dirty := make([]float64, n)
	for i := range clean {
		ph := 2 * math.Pi * float64(i) / sr
		clean[i] = math.Sin(freq * ph)
		dirty[i] = clean[i] + 0.01*math.Sin(folded*ph)
	}

	cfg := Config{
		SampleRate:      sr,
		FFTSize:         n,
		FundamentalFreq: freq,
		WindowType:      window.TypeBlackmanHarris4Term,
	}

	cleanRes := AnalyzeSignal(clean, cfg)
	dirtyRes := AnalyzeSignal(dirty, cfg)

	if cleanRes.Alias_dB > -70 {
		t.Fatalf("clean alias = %.1f dB, want < -70", cleanRes.Alias_dB)
	}

	if math.Abs(dirtyRes.Alias_dB+40) > 1 {
		t.Fatalf("dirty alias = %.1f dB, want about -40", dirtyRes.Alias_dB)
	}
}

func TestAnalyzerReuse(t *testing.T) {
	const n = 2048

	a, err := NewAnalyzer(Config{SampleRate: 48000, FFTSize: n})
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	sig := make([]float64, n)
	for i := range sig {
		ph := 2 * math.Pi * 32 * float64(i) / n
		sig[i] = math.Sin(ph) + 0.1*math.Sin(3*ph)
	}

	first, err := a.Analyze(sig)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	second, err := a.Analyze(sig)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.THD != second.THD || first.Alias != second.Alias {
		t.Fatalf("repeated analysis differs: %+v vs %+v", first, second)
	}

	if math.Abs(first.THD-0.1) > 1e-9 {
		t.Fatalf("THD = %.12f, want 0.1", first.THD)
	}
}

func TestAnalyzerRejectsTinyFrames(t *testing.T) {
	for _, size := range []int{0, 1} {
		_, err := NewAnalyzer(Config{FFTSize: size})
		if !errors.Is(err, ErrFFTSize) {
			t.Errorf("NewAnalyzer(FFTSize=%d) error = %v, want ErrFFTSize", size, err)
		}
	}

	if res := AnalyzeSignal(nil, Config{}); res.FundamentalLevel != 0 || res.Harmonics != nil {
		t.Fatalf("AnalyzeSignal(nil) = %+v, want zero", res)
	}
}
