package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/effects"
	"github.com/cwbudde/algo-opto/dsp/resample"
	"github.com/cwbudde/algo-opto/dsp/signal"
	"github.com/cwbudde/algo-opto/dsp/window"
	"github.com/cwbudde/algo-opto/measure/thd"
)

const saturationFFTSize = 8192

// SaturationCmd measures the J-FET stage at base rate and oversampled.
type SaturationCmd struct {
	Freq         float64 `default:"5600" help:"Test tone frequency in Hz (snapped to an FFT bin)"`
	Level        float64 `default:"0.9" help:"Test tone peak amplitude"`
	SampleRate   float64 `default:"48000" help:"Sample rate in Hz"`
	Oversampling int     `default:"4" enum:"2,4,8" help:"Oversampling factor compared against base rate"`
	Hardness     float64 `default:"2" help:"J-FET hardness"`
	Mix          float64 `default:"1" help:"J-FET dry/wet mix"`
}

// Run prints the saturation report.
func (c *SaturationCmd) Run(cli *CLI) error {
	jfet, err := effects.NewJFET(
		effects.WithSaturationHardness(c.Hardness),
		effects.WithSaturationMix(c.Mix),
	)
	if err != nil {
		return err
	}

	binHz := c.SampleRate / saturationFFTSize
	freq := math.Round(c.Freq/binHz) * binHz

	if !(freq > 0) || freq >= c.SampleRate/2 {
		return fmt.Errorf("frequency must be in (0, %g): %g", c.SampleRate/2, c.Freq)
	}

	fmt.Println(TitleStyle.Render("J-FET saturation"))

	var b strings.Builder

	b.WriteString(keyValue("tone", fmt.Sprintf("%.2f Hz at %.2f", freq, c.Level)))
	b.WriteString("\n")
	b.WriteString(keyValue("J-FET", fmt.Sprintf("T=%.2f k=%.2f mix=%.2f", jfet.Threshold(), jfet.Hardness(), jfet.Mix())))
	b.WriteString("\n\n")
	b.WriteString(KeyStyle.Render(fmt.Sprintf("%-8s %10s %12s", "factor", "THD dB", "alias dB")))

	for _, factor := range []int{1, c.Oversampling} {
		res, err := measureSaturation(jfet, c.SampleRate, factor, freq, c.Level)
		if err != nil {
			return err
		}

		b.WriteString("\n")
		b.WriteString(ValueStyle.Render(fmt.Sprintf("%-8s %10.1f %12.1f", fmt.Sprintf("%dx", factor), res.THD_dB, res.Alias_dB)))
	}

	fmt.Println(BoxStyle.Render(b.String()))

	return nil
}

// measureSaturation shapes a settled tone through the oversampler and
// analyzes the last FFT frame.
func measureSaturation(shaper resample.Shaper, sampleRate float64, factor int, freq, level float64) (thd.Result, error) {
	o, err := resample.New(sampleRate, factor, resample.WithMaxBlockSize(saturationFFTSize))
	if err != nil {
		return thd.Result{}, err
	}

	tone, err := signal.NewTone(freq, level, core.WithSampleRate(sampleRate))
	if err != nil {
		return thd.Result{}, err
	}

	buf := make([]float64, saturationFFTSize)

	for range 2 {
		tone.Fill(buf)

		err = o.Process(buf, shaper)
		if err != nil {
			return thd.Result{}, err
		}
	}

	return thd.AnalyzeSignal(buf, thd.Config{
		SampleRate:      sampleRate,
		FFTSize:         saturationFFTSize,
		FundamentalFreq: freq,
		WindowType:      window.TypeBlackmanHarris4Term,
	}), nil
}
