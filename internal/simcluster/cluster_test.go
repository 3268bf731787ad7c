package simcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

var bimodalRow = []float64{1, 1, 1, 1, 1, 10, 10, 10, 10, 10}

func TestClusterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		row         []float64
		bandwidth   float64
		sampleCount int
	}{
		{"single-element row", []float64{1}, 0.5, 128},
		{"empty row", nil, 0.5, 128},
		{"zero bandwidth", bimodalRow, 0, 128},
		{"negative bandwidth", bimodalRow, -1, 128},
		{"sample count too small", bimodalRow, 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Cluster(tt.row, tt.bandwidth, tt.sampleCount)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}

func TestDensityCurveShape(t *testing.T) {
	tests := []struct {
		name        string
		row         []float64
		bandwidth   float64
		sampleCount int
	}{
		{"bimodal", bimodalRow, 0.5, 128},
		{"two points", []float64{0, 1}, 0.25, 64},
		{"constant row", []float64{3, 3, 3}, 1.0, 16},
		{"minimal sample count", []float64{0, 5}, 2.0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve := densityCurve(tt.row, tt.bandwidth, tt.sampleCount)
			require.Len(t, curve, tt.sampleCount)
			for i := 1; i < len(curve); i++ {
				assert.Greater(t, curve[i].X, curve[i-1].X)
			}
			for _, p := range curve {
				assert.GreaterOrEqual(t, p.Y, 0.0)
			}
		})
	}
}

func TestClusterBimodalRow(t *testing.T) {
	result, err := Cluster(bimodalRow, 0.5, 128)
	require.NoError(t, err)

	require.Len(t, result.Boundaries, 1)
	assert.InDelta(t, 5.5, result.Boundaries[0], 0.2)

	require.Len(t, result.Labels, 128)
	var left, right int
	for i, label := range result.Labels {
		switch label {
		case 0:
			left++
			assert.LessOrEqual(t, result.Curve[i].X, result.Boundaries[0])
		case 1:
			right++
			assert.Greater(t, result.Curve[i].X, result.Boundaries[0])
		default:
			t.Fatalf("unexpected label %d at index %d", label, i)
		}
	}
	assert.Positive(t, left)
	assert.Positive(t, right)
}

func TestClusterBimodalExtrema(t *testing.T) {
	curve := densityCurve(bimodalRow, 0.5, 128)
	derivs := finiteDifferences(curve)
	extrema, err := pairExtrema(derivs, flagRoots(derivs))
	require.NoError(t, err)

	var maxima, minima []float64
	for _, e := range extrema {
		if e.kind == localMax {
			maxima = append(maxima, e.x)
		} else {
			minima = append(minima, e.x)
		}
	}

	require.Len(t, maxima, 2)
	assert.InDelta(t, 1.0, maxima[0], 0.25)
	assert.InDelta(t, 10.0, maxima[1], 0.25)
	require.Len(t, minima, 1)
	assert.InDelta(t, 5.5, minima[0], 0.2)
}

func TestClusterUnimodalRowHasNoBoundaries(t *testing.T) {
	result, err := Cluster([]float64{4.8, 5.0, 5.1, 5.2, 4.9, 5.0}, 0.5, 64)
	require.NoError(t, err)

	assert.Empty(t, result.Boundaries)
	for _, label := range result.Labels {
		assert.Zero(t, label)
	}
}

func TestClusterIsDeterministic(t *testing.T) {
	first, err := Cluster(bimodalRow, 0.5, 128)
	require.NoError(t, err)
	second, err := Cluster(bimodalRow, 0.5, 128)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBoundariesLieBetweenFlankingSamples(t *testing.T) {
	curve := densityCurve(bimodalRow, 0.5, 128)
	derivs := finiteDifferences(curve)
	flagged := flagRoots(derivs)
	extrema, err := pairExtrema(derivs, flagged)
	require.NoError(t, err)

	for _, e := range extrema {
		if e.kind != localMin {
			continue
		}
		// The estimated critical x is the mean of an adjacent flagged pair,
		// so it must fall strictly between some pair of derivative samples.
		var bracketed bool
		for i := 1; i < len(derivs); i++ {
			if derivs[i-1].x < e.x && e.x < derivs[i].x {
				bracketed = true
				break
			}
		}
		assert.True(t, bracketed, "boundary %v not bracketed by derivative samples", e.x)
	}
}

func TestFiniteDifferences(t *testing.T) {
	curve := []Point{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 1}}

	derivs := finiteDifferences(curve)
	require.Len(t, derivs, 2)
	assert.Equal(t, derivSample{x: 1, slope: 2}, derivs[0])
	assert.Equal(t, derivSample{x: 2, slope: -1}, derivs[1])
}

func TestFlagRootsTieRule(t *testing.T) {
	mk := func(slopes ...float64) []derivSample {
		out := make([]derivSample, len(slopes))
		for i, s := range slopes {
			out[i] = derivSample{x: float64(i), slope: s}
		}
		return out
	}

	tests := []struct {
		name    string
		slopes  []float64
		flagged []int
	}{
		{"plain sign change", []float64{1, 1, -1, -1}, []int{1, 2}},
		{"no change", []float64{1, 1, 1, 1}, nil},
		{"ends never flagged", []float64{-1, 1, 1, 1, -1}, []int{1, 3}},
		// A zero matches neither strict sign: the flat sample and both of
		// its nonzero neighbors get flagged, flat runs do not.
		{"zero plateau", []float64{1, 1, 0, -1, -1}, []int{1, 2, 3}},
		{"flat run interior", []float64{1, 0, 0, 0, -1}, []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.flagged, flagRoots(mk(tt.slopes...)))
		})
	}
}

func TestPairExtremaClassification(t *testing.T) {
	derivs := []derivSample{
		{x: 0, slope: 1}, {x: 1, slope: -1}, // local max at 0.5
		{x: 2, slope: -1}, {x: 3, slope: 1}, // local min at 2.5
	}

	extrema, err := pairExtrema(derivs, []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, extrema, 2)
	assert.Equal(t, extremum{x: 0.5, kind: localMax}, extrema[0])
	assert.Equal(t, extremum{x: 2.5, kind: localMin}, extrema[1])
}

func TestPairExtremaOddLeftoverDiscarded(t *testing.T) {
	derivs := []derivSample{{x: 0, slope: 1}, {x: 1, slope: -1}, {x: 2, slope: -1}}

	extrema, err := pairExtrema(derivs, []int{0, 1, 2})
	require.NoError(t, err)
	require.Len(t, extrema, 1)
	assert.Equal(t, localMax, extrema[0].kind)
}

func TestPairExtremaInconsistentSigns(t *testing.T) {
	tests := []struct {
		name   string
		first  float64
		second float64
	}{
		{"both positive", 1, 1},
		{"both negative", -1, -1},
		{"zero first", 0, -1},
		{"zero second", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derivs := []derivSample{{x: 0, slope: tt.first}, {x: 1, slope: tt.second}}
			extrema, err := pairExtrema(derivs, []int{0, 1})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInconsistentDerivative)
			assert.Nil(t, extrema)
		})
	}
}

func TestLabelPoints(t *testing.T) {
	curve := []Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}
	boundaries := []float64{1, 3}

	labels := labelPoints(curve, boundaries)

	// Points equal to a boundary take the left interval's label.
	assert.Equal(t, []int{0, 0, 1, 1, 2}, labels)
}

func TestLabelPointsManyBoundaries(t *testing.T) {
	boundaries := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	curve := []Point{{X: 0.5}, {X: 5.5}, {X: 11.5}}

	labels := labelPoints(curve, boundaries)
	assert.Equal(t, []int{0, 5, 11}, labels)
}
