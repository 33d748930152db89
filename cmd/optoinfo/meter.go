package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
	"github.com/cwbudde/algo-opto/dsp/opto"
	"github.com/cwbudde/algo-opto/dsp/signal"
)

// MeterCmd runs a synthetic sine through a processor block by block.
type MeterCmd struct {
	Freq          float64 `default:"1000" help:"Sine frequency in Hz"`
	LevelDB       float64 `name:"level-db" default:"0" help:"Sine peak level in dBFS"`
	Seconds       float64 `default:"1" help:"Signal duration in seconds"`
	SampleRate    float64 `default:"48000" help:"Sample rate in Hz"`
	BlockSize     int     `default:"512" help:"Host block size"`
	Mode          string  `default:"9" enum:"3,6,9,limit" help:"Ratio mode (3, 6, 9 or limit)"`
	PeakReduction float64 `default:"0.5" help:"Peak reduction control in [0,1]"`
	Gain          float64 `default:"0" help:"Makeup gain control in [0,1]"`
	MS            bool    `name:"ms" help:"Enable mid/side processing"`
	Bypass        bool    `help:"Bypass the processor"`
	Oversampling  int     `default:"4" enum:"1,2,4,8" help:"Saturation oversampling factor"`
}

// Run prints the meter report.
func (c *MeterCmd) Run(cli *CLI) error {
	if !(c.Seconds > 0) || c.BlockSize <= 0 {
		return fmt.Errorf("seconds and block size must be > 0")
	}

	modes, err := parseModes(c.Mode)
	if err != nil {
		return err
	}

	p, err := opto.New(c.SampleRate,
		opto.WithMaxBlockSize(c.BlockSize),
		opto.WithOversampling(c.Oversampling),
		opto.WithLogger(newLogger(cli.Verbose)),
	)
	if err != nil {
		return err
	}
	defer p.Shutdown()

	params := opto.DefaultParams()
	params.PeakReduction = c.PeakReduction
	params.Gain = c.Gain
	params.RatioMode = modes[0]
	params.MidSide = c.MS
	params.Bypass = c.Bypass

	m, peak, err := runSine(p, params, c.Freq, core.DBToLinear(c.LevelDB), c.Seconds, c.BlockSize)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Opto meters"))
	fmt.Println(renderMeters(c, params.RatioMode, m, peak))

	return nil
}

// runSine processes a sine of the given amplitude on the left channel and
// the same sine 6 dB lower on the right, and returns the final meters and
// the output peak.
func runSine(p *opto.Processor, params opto.Params, freq, amp, seconds float64, blockSize int) (opto.Meters, float64, error) {
	tone, err := signal.NewTone(freq, amp, core.WithSampleRate(p.SampleRate()))
	if err != nil {
		return opto.Meters{}, 0, err
	}

	total := int(seconds * p.SampleRate())

	inL := make([]float64, blockSize)
	inR := make([]float64, blockSize)
	outL := make([]float64, blockSize)
	outR := make([]float64, blockSize)

	var (
		m    opto.Meters
		peak float64
	)

	for pos := 0; pos < total; pos += blockSize {
		n := min(blockSize, total-pos)

		tone.Fill(inL[:n])
		vecmath.ScaleBlock(inR[:n], inL[:n], 0.5)

		m = p.Process(opto.Block{InL: inL[:n], InR: inR[:n], OutL: outL[:n], OutR: outR[:n]}, params)
		peak = max(peak, vecmath.MaxAbs(outL[:n]), vecmath.MaxAbs(outR[:n]))
	}

	return m, peak, nil
}

func renderMeters(c *MeterCmd, mode dynamics.RatioMode, m opto.Meters, peak float64) string {
	var b strings.Builder

	lines := []string{
		keyValue("signal", fmt.Sprintf("%.0f Hz at %.1f dBFS (right at -6 dB) for %.2f s", c.Freq, c.LevelDB, c.Seconds)),
		keyValue("ratio", mode.String()),
		keyValue("threshold", fmt.Sprintf("%.1f dB", dynamics.ThresholdFromPeakReduction(c.PeakReduction))),
		keyValue("mid/side", fmt.Sprintf("%v", c.MS)),
		keyValue("bypass", fmt.Sprintf("%v", c.Bypass)),
		"",
		keyValue("output RMS", fmt.Sprintf("%.2f dB", m.OutputRMSDB)),
		keyValue("output peak", fmt.Sprintf("%.2f dBFS", core.LinearToDB(peak))),
		keyValue("gain reduction", fmt.Sprintf("%.2f dB", m.GainReductionDB)),
		KeyStyle.Render("GR ") + GoodStyle.Render(renderBar(m.GainReductionDB/40, 40)),
	}

	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(line)
	}

	return BoxStyle.Render(b.String())
}

func newLogger(verbose bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
