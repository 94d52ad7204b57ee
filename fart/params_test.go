package fart_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fart/fart"
)

func TestDefaultParams(t *testing.T) {
	p := fart.DefaultParams()
	require.Equal(t, 1.0, p.Duration)
	require.Equal(t, 0.5, p.Wetness)
	require.Equal(t, 0.8, p.Intensity)
	require.Equal(t, 220.0, p.Frequency)
	require.Equal(t, 4.0, p.Bubbliness)
	require.Equal(t, 0.1, p.Suddenness)
	require.NoError(t, p.Validate())
}

func TestNewParamsOverridesOnlyGivenFields(t *testing.T) {
	p := fart.NewParams(fart.WithDuration(2), fart.WithFrequency(440))

	want := fart.DefaultParams()
	want.Duration = 2
	want.Frequency = 440
	require.Equal(t, want, p)
}

func TestBubblesCoercion(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{4, 4},
		{4.9, 4},
		{1, 1},
		{0.5, 1},
		{0, 1},
		{-3, 1},
		{math.NaN(), 1},
		{1e18, fart.MaxBubbliness},
	}
	for _, tc := range tests {
		p := fart.NewParams(fart.WithBubbliness(tc.in))
		require.Equal(t, tc.want, p.Bubbles(), "bubbliness %v", tc.in)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		opt  fart.ParamOption
	}{
		{"zero duration", fart.WithDuration(0)},
		{"negative duration", fart.WithDuration(-1)},
		{"infinite duration", fart.WithDuration(math.Inf(1))},
		{"wetness above one", fart.WithWetness(1.2)},
		{"negative wetness", fart.WithWetness(-0.1)},
		{"NaN wetness", fart.WithWetness(math.NaN())},
		{"intensity above one", fart.WithIntensity(1.5)},
		{"zero frequency", fart.WithFrequency(0)},
		{"negative frequency", fart.WithFrequency(-220)},
		{"infinite bubbliness", fart.WithBubbliness(math.Inf(1))},
		{"huge bubbliness", fart.WithBubbliness(1e18)},
		{"bubbliness past max", fart.WithBubbliness(fart.MaxBubbliness + 1)},
		{"duration past max", fart.WithDuration(1e5)},
		{"negative suddenness", fart.WithSuddenness(-0.1)},
		{"suddenness equals duration", fart.WithSuddenness(1)},
		{"suddenness exceeds duration", fart.WithSuddenness(2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := fart.NewParams(tc.opt).Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, fart.ErrInvalidParameter)
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	for _, p := range []fart.Params{
		fart.NewParams(fart.WithWetness(0), fart.WithIntensity(0)),
		fart.NewParams(fart.WithWetness(1), fart.WithIntensity(1)),
		fart.NewParams(fart.WithSuddenness(0)),
		fart.NewParams(fart.WithSuddenness(0.999)),
		fart.NewParams(fart.WithBubbliness(0)),
		fart.NewParams(fart.WithBubbliness(fart.MaxBubbliness + 0.5)),
		fart.NewParams(fart.WithDuration(fart.MaxDuration)),
	} {
		require.NoError(t, p.Validate(), "%+v", p)
	}
}

func TestValidateJoinsAllViolations(t *testing.T) {
	p := fart.NewParams(fart.WithWetness(2), fart.WithIntensity(-1), fart.WithFrequency(0))
	err := p.Validate()
	require.ErrorIs(t, err, fart.ErrInvalidParameter)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	require.Len(t, joined.Unwrap(), 3)
	require.Contains(t, err.Error(), "wetness")
	require.Contains(t, err.Error(), "intensity")
	require.Contains(t, err.Error(), "frequency")
}

func TestEnvelopeSpec(t *testing.T) {
	spec := fart.NewParams(fart.WithBubbliness(2.7)).Envelope()
	require.Equal(t, 1.0, spec.Duration)
	require.Equal(t, 0.1, spec.Suddenness)
	require.Equal(t, 0.8, spec.Intensity)
	require.Equal(t, 220.0, spec.Frequency)
	require.Equal(t, 2, spec.Bubbles)
}

func TestParamOptionFor(t *testing.T) {
	p := fart.DefaultParams()
	for i, name := range fart.ParamNames() {
		opt, err := fart.ParamOptionFor(name, float64(i)+0.5)
		require.NoError(t, err, name)
		opt(&p)
	}
	require.Equal(t, fart.Params{
		Duration:   0.5,
		Wetness:    1.5,
		Intensity:  2.5,
		Frequency:  3.5,
		Bubbliness: 4.5,
		Suddenness: 5.5,
	}, p)

	_, err := fart.ParamOptionFor("loudness", 1)
	require.ErrorIs(t, err, fart.ErrInvalidParameter)
}
