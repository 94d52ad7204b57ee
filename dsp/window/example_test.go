package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-fart/dsp/window"
)

func ExampleFadeOut() {
	buf := []float64{1, 1, 1, 1, 1}
	window.FadeOut(buf, 4)
	fmt.Println(buf)
	// Output: [1 1 0.75 0.5 0.25]
}
