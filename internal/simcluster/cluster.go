// Package simcluster partitions one row of a similarity matrix into
// contiguous clusters. It discretizes a kernel density estimate of the row,
// locates critical points via sign changes in a finite-difference derivative,
// and uses the local minima as cluster boundaries.
package simcluster

import (
	"fmt"
	"sort"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// Result is the full clustering output for one similarity row.
//
// Boundaries are strictly increasing. Labels holds one entry per curve point:
// 0 for points left of the first boundary, len(Boundaries) for points right
// of the last, interval index otherwise. A point exactly on a boundary takes
// the left interval's label.
type Result struct {
	Curve      []Point   `json:"curve"`
	Boundaries []float64 `json:"boundaries"`
	Labels     []int     `json:"labels"`
}

// derivSample is one finite-difference slope, attached to the later of the
// two x-values it spans.
type derivSample struct {
	x     float64
	slope float64
}

type extremumKind int

const (
	localMax extremumKind = iota
	localMin
)

type extremum struct {
	x    float64
	kind extremumKind
}

// Cluster runs the full pipeline: validation, density estimation, derivative,
// critical-point pairing, boundary selection, labeling. Failures are
// deterministic functions of the input; there is nothing transient to retry.
func Cluster(row []float64, bandwidth float64, sampleCount int) (*Result, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("%w: row has %d samples, need at least 2", domain.ErrInvalidInput, len(row))
	}
	if bandwidth <= 0 {
		return nil, fmt.Errorf("%w: bandwidth %v must be positive", domain.ErrInvalidInput, bandwidth)
	}
	if sampleCount < 3 {
		return nil, fmt.Errorf("%w: sample count %d must be at least 3", domain.ErrInvalidInput, sampleCount)
	}

	curve := densityCurve(row, bandwidth, sampleCount)
	derivs := finiteDifferences(curve)
	extrema, err := pairExtrema(derivs, flagRoots(derivs))
	if err != nil {
		return nil, err
	}

	var boundaries []float64
	for _, e := range extrema {
		if e.kind == localMin {
			boundaries = append(boundaries, e.x)
		}
	}

	return &Result{
		Curve:      curve,
		Boundaries: boundaries,
		Labels:     labelPoints(curve, boundaries),
	}, nil
}

// finiteDifferences computes slope (y[i-1]-y[i])/(x[i-1]-x[i]) for each
// consecutive pair of curve points. The first curve point has no derivative
// and is dropped, leaving len(curve)-1 samples.
func finiteDifferences(curve []Point) []derivSample {
	derivs := make([]derivSample, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		slope := (curve[i-1].Y - curve[i].Y) / (curve[i-1].X - curve[i].X)
		derivs = append(derivs, derivSample{x: curve[i].X, slope: slope})
	}
	return derivs
}

// sign returns -1, 0, or 1. A zero slope matches neither strict sign, so a
// flat sample adjacent to any nonzero slope is flagged while flat runs do not
// flag among themselves.
func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// flagRoots returns the indices of derivative samples whose sign differs from
// either neighbor's. Both samples flanking an actual sign change get flagged,
// so roots arrive in adjacent pairs. Boundary positions lack a neighbor on
// one side and are never flagged.
func flagRoots(derivs []derivSample) []int {
	var flagged []int
	for i := 1; i < len(derivs)-1; i++ {
		s := sign(derivs[i].slope)
		if s != sign(derivs[i-1].slope) || s != sign(derivs[i+1].slope) {
			flagged = append(flagged, i)
		}
	}
	return flagged
}

// pairExtrema consumes flagged roots in consecutive non-overlapping pairs and
// classifies each pair by its derivative signs: falling through zero is a
// local max, rising through zero a local min. An odd leftover flag is
// discarded, not extrapolated. Any other sign combination means the pairing
// broke down (duplicate x-values, zero-variance input) and is an error, never
// a silently mislabeled extremum.
func pairExtrema(derivs []derivSample, flagged []int) ([]extremum, error) {
	extrema := make([]extremum, 0, len(flagged)/2)
	for p := 0; p+1 < len(flagged); p += 2 {
		first, second := derivs[flagged[p]], derivs[flagged[p+1]]
		x := (first.x + second.x) / 2

		switch {
		case sign(first.slope) > 0 && sign(second.slope) < 0:
			extrema = append(extrema, extremum{x: x, kind: localMax})
		case sign(first.slope) < 0 && sign(second.slope) > 0:
			extrema = append(extrema, extremum{x: x, kind: localMin})
		default:
			return nil, fmt.Errorf("%w: pair at x=%v has slope signs (%d, %d)",
				domain.ErrInconsistentDerivative, x, sign(first.slope), sign(second.slope))
		}
	}
	return extrema, nil
}

// labelPoints assigns each curve point the index of the boundary interval
// bracketing its x. Binary search over the sorted boundaries generalizes to
// any boundary count. SearchFloat64s returns the first boundary >= x, so a
// point exactly on a boundary lands in the interval to its left.
func labelPoints(curve []Point, boundaries []float64) []int {
	labels := make([]int, len(curve))
	for i, p := range curve {
		labels[i] = sort.SearchFloat64s(boundaries, p.X)
	}
	return labels
}
