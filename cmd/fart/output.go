package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-fart/fart"
	"github.com/cwbudde/algo-fart/measure/report"
)

var presetInfo = []struct {
	kind fart.PresetKind
	desc string
}{
	{fart.Quick, "0.3-0.7 s, mostly brown, 1-3 bubbles, sharp attack"},
	{fart.Long, "1.5-3.0 s, mixed noise, 8-15 bubbles"},
	{fart.Wet, "0.7-1.5 s, mostly white, 4-7 bubbles"},
	{fart.Squeaky, "0.5-1.2 s, brown, 350-700 Hz, 3-5 bubbles"},
}

func printPresets(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Preset\tRange\n")
	fmt.Fprintf(tw, "------\t-----\n")
	for _, p := range presetInfo {
		fmt.Fprintf(tw, "%s\t%s\n", p.kind, p.desc)
	}
	_ = tw.Flush()
}

func printAnalysis(w io.Writer, sounds []rendered) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "File\tPreset\tDur [s]\tPeak [dBFS]\tRMS [dBFS]\tCrest [dB]\tLoudness [LUFS]\tCentroid [Hz]\tZC\tBase [dB]\n"); err != nil {
		return fmt.Errorf("write analysis header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t------\t-------\t-----------\t----------\t----------\t---------------\t-------------\t--\t---------\n"); err != nil {
		return fmt.Errorf("write analysis header: %w", err)
	}

	for _, r := range sounds {
		rep, err := report.Analyze(r.samples, r.sound.SampleRate, report.WithToneLevel(r.sound.Params.Frequency))
		if err != nil {
			return fmt.Errorf("analyze %s: %w", r.path, err)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\t%d\t%.2f\n",
			r.path,
			r.sound.Preset,
			rep.Duration,
			rep.PeakDBFS,
			rep.RMSDBFS,
			rep.CrestFactorDB,
			rep.LoudnessLUFS,
			rep.SpectralCentroid,
			rep.Levels.ZeroCrossings,
			rep.ToneDB,
		); err != nil {
			return fmt.Errorf("write analysis row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush analysis: %w", err)
	}
	return nil
}
