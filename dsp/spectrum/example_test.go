package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-fart/dsp/spectrum"
)

func ExamplePower() {
	bins := []complex128{3 + 4i, 1i, 0}
	fmt.Println(spectrum.Power(bins))
	// Output: [25 1 0]
}

func ExampleCentroid() {
	c, _ := spectrum.Centroid([]float64{0, 3, 1}, 100)
	fmt.Printf("%.0f Hz\n", c)
	// Output: 125 Hz
}
