package opto_test

import (
	"fmt"

	"github.com/cwbudde/algo-opto/dsp/opto"
	"github.com/cwbudde/algo-opto/internal/testutil"
)

func ExampleProcessor() {
	p, err := opto.New(48000, opto.WithMaxBlockSize(512))
	if err != nil {
		panic(err)
	}
	defer p.Shutdown()

	params := opto.DefaultParams()
	params.Bypass = true

	in := testutil.DeterministicSine(1000, 48000, 0.5, 480)
	out := make([]float64, len(in))

	var m opto.Meters
	for range 100 {
		m = p.Process(opto.Block{InL: in, InR: in, OutL: out, OutR: out}, params)
	}

	fmt.Printf("rms=%.2f dB gr=%.2f dB\n", m.OutputRMSDB, m.GainReductionDB)
	// Output:
	// rms=-9.03 dB gr=0.00 dB
}

func ExampleParams_SetControl() {
	params := opto.DefaultParams()

	_ = params.SetControl(opto.PortRatioMode, 2)
	_ = params.SetControl(opto.PortMidSide, 1)

	err := params.SetControl(opto.PortOutputRMS, 0)

	fmt.Println(params.RatioMode, params.MidSide)
	fmt.Println(err)
	// Output:
	// 9:1 true
	// opto: not a control port: output_rms
}
