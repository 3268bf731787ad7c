package domain

import "context"

// Bigram is one ordered adjacent-token pair.
type Bigram struct {
	First  string
	Second string
}

// WordGraph is a weighted directed graph over one record's tokens: nodes are
// distinct tokens, edges are ordered adjacent-token pairs weighted by their
// occurrence count within the record. A graph with zero nodes and zero edges
// is valid and must be treated as neutral downstream, not as an error.
type WordGraph struct {
	Nodes map[string]struct{}
	Edges map[Bigram]int
}

// Empty reports whether the graph has no nodes.
func (g WordGraph) Empty() bool {
	return len(g.Nodes) == 0
}

// SimilarityKernel computes a square pairwise similarity matrix over a set of
// word graphs. The computation is an external collaborator and scales with
// the square of the input size, so calls are made behind a cancellable,
// timeout-bounded context.
type SimilarityKernel interface {
	Similarity(ctx context.Context, graphs []WordGraph) ([][]float64, error)
}
