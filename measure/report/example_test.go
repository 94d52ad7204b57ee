package report_test

import (
	"fmt"

	"github.com/cwbudde/algo-fart/measure/report"
)

func ExampleAnalyze() {
	rep, err := report.Analyze([]float64{0.5, -0.5, 0.5, -0.5}, 8000, report.WithFrameSize(16))
	if err != nil {
		panic(err)
	}

	fmt.Printf("peak %.2f dBFS, crest %.2f, zero crossings %d\n",
		rep.PeakDBFS, rep.Levels.CrestFactor, rep.Levels.ZeroCrossings)
	// Output: peak -6.02 dBFS, crest 1.00, zero crossings 3
}
