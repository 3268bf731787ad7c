// Package wordgraph converts one record's text into a small weighted directed
// graph over adjacent-token pairs, the input shape consumed by the external
// similarity kernel.
package wordgraph

import (
	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
	"github.com/Levi-Nicklas/CovidTweets/internal/sentiment"
)

// Build tokenizes the record text into overlapping ordered 2-grams and
// collapses each distinct ordered pair into a single edge whose weight is the
// pair's occurrence count within the record. Nodes are the distinct tokens
// appearing in a surviving pair. A record with fewer than two tokens yields
// an empty graph; callers treat that as neutral, not as an error.
func Build(rec domain.Record) domain.WordGraph {
	graph := domain.WordGraph{
		Nodes: make(map[string]struct{}),
		Edges: make(map[domain.Bigram]int),
	}

	tokens := sentiment.Tokenize(rec.Text)
	for i := 1; i < len(tokens); i++ {
		first, second := tokens[i-1], tokens[i]
		if first == "" || second == "" {
			continue
		}
		graph.Edges[domain.Bigram{First: first, Second: second}]++
		graph.Nodes[first] = struct{}{}
		graph.Nodes[second] = struct{}{}
	}
	return graph
}
