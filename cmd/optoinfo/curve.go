package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
)

// CurveCmd prints input level, reduction and output level per ratio mode.
type CurveCmd struct {
	PeakReduction float64 `default:"0.5" help:"Peak reduction control in [0,1]"`
	Gain          float64 `default:"0" help:"Makeup gain control in [0,1]"`
	Mode          string  `default:"all" enum:"3,6,9,limit,all" help:"Ratio mode (3, 6, 9, limit or all)"`
	From          float64 `default:"-60" help:"First input level in dB"`
	Step          float64 `default:"6" help:"Input level step in dB"`
}

// Run prints the curve report.
func (c *CurveCmd) Run(cli *CLI) error {
	if !(c.Step > 0) {
		return fmt.Errorf("step must be > 0: %g", c.Step)
	}

	modes, err := parseModes(c.Mode)
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Opto transfer curve"))

	for _, mode := range modes {
		fmt.Println(renderCurve(mode, c.PeakReduction, c.Gain, c.From, c.Step))
	}

	return nil
}

func renderCurve(mode dynamics.RatioMode, peakReduction, gain, from, step float64) string {
	gc := dynamics.NewGainComputer(peakReduction, mode)
	makeupDB := dynamics.MaxMakeupDB * max(0, min(gain, 1))

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("ratio %s  threshold %.1f dB  knee %.0f dB  makeup %.1f dB",
		mode, gc.ThresholdDB, gc.KneeDB, makeupDB)))
	b.WriteString("\n")
	b.WriteString(KeyStyle.Render(fmt.Sprintf("%8s %10s %10s", "in dB", "GR dB", "out dB")))

	for level := from; level <= 0; level += step {
		red := gc.ReductionDB(level)
		row := fmt.Sprintf("%8.1f %10.2f %10.2f", level, red, gc.OutputDB(level)+makeupDB)

		b.WriteString("\n")

		if red > 0 {
			b.WriteString(ValueStyle.Render(row))
		} else {
			b.WriteString(row)
		}
	}

	return BoxStyle.Render(b.String())
}

func parseModes(s string) ([]dynamics.RatioMode, error) {
	switch s {
	case "all":
		return dynamics.RatioModes(), nil
	case "3":
		return []dynamics.RatioMode{dynamics.Ratio3}, nil
	case "6":
		return []dynamics.RatioMode{dynamics.Ratio6}, nil
	case "9":
		return []dynamics.RatioMode{dynamics.Ratio9}, nil
	case "limit":
		return []dynamics.RatioMode{dynamics.RatioLimit}, nil
	default:
		return nil, fmt.Errorf("unknown ratio mode %q", s)
	}
}
