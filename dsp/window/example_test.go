package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-opto/dsp/window"
)

func ExampleGenerate() {
	sym := window.Generate(window.TypeHann, 5)
	per := window.Generate(window.TypeHann, 4, window.WithPeriodic())
	fmt.Printf("%.2f\n%.2f\n", sym, per)
	// Output:
	// [0.00 0.50 1.00 0.50 0.00]
	// [0.00 0.50 1.00 0.50]
}

func ExampleInfo() {
	for _, typ := range []window.Type{window.TypeHann, window.TypeBlackmanHarris4Term} {
		m := window.Info(typ)
		fmt.Printf("%s: ENBW %.2f bins, main lobe +-%d bins\n", m.Name, m.ENBW, m.FirstMinimumBins)
	}
	// Output:
	// Hann: ENBW 1.50 bins, main lobe +-2 bins
	// Blackman-Harris: ENBW 2.00 bins, main lobe +-4 bins
}
