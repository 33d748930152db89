package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-opto/dsp/effects"
)

func ExampleJFET() {
	j, err := effects.NewJFET()
	if err != nil {
		panic(err)
	}

	for _, x := range []float64{0.25, 0.75, 1} {
		fmt.Printf("%.4f -> %.4f\n", x, j.ProcessSample(x))
	}
	// Output:
	// 0.2500 -> 0.2500
	// 0.7500 -> 0.7125
	// 1.0000 -> 0.9000
}

func ExampleSoftClipper() {
	c, err := effects.NewSoftClipper()
	if err != nil {
		panic(err)
	}

	fmt.Printf("threshold=%.4f\n", c.Threshold())
	fmt.Printf("%.4f\n", c.ProcessSample(0.5))
	fmt.Printf("%.4f\n", c.ProcessSample(1.0))
	// Output:
	// threshold=0.8913
	// 0.5000
	// 0.9340
}
