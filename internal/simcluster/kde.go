package simcluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is one sample of the discretized density curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// densityCurve evaluates a Gaussian kernel density estimate of row on an
// evenly spaced grid of sampleCount points spanning the row's range padded by
// one bandwidth on each side. The padding keeps the curve's tails inside the
// grid and guarantees strictly increasing x even for a constant row.
// Deterministic for identical (row, bandwidth, sampleCount).
func densityCurve(row []float64, bandwidth float64, sampleCount int) []Point {
	lo := floats.Min(row) - bandwidth
	hi := floats.Max(row) + bandwidth

	xs := make([]float64, sampleCount)
	floats.Span(xs, lo, hi)

	norm := 1 / (float64(len(row)) * bandwidth * math.Sqrt(2*math.Pi))
	curve := make([]Point, sampleCount)
	for i, x := range xs {
		var sum float64
		for _, v := range row {
			z := (x - v) / bandwidth
			sum += math.Exp(-0.5 * z * z)
		}
		curve[i] = Point{X: x, Y: sum * norm}
	}
	return curve
}
