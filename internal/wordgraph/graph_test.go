package wordgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

func TestBuildCollapsesRepeatedPairs(t *testing.T) {
	rec := domain.Record{ID: 1, Text: "stay home stay home stay safe"}

	graph := Build(rec)

	require.Len(t, graph.Nodes, 3)
	assert.Contains(t, graph.Nodes, "stay")
	assert.Contains(t, graph.Nodes, "home")
	assert.Contains(t, graph.Nodes, "safe")

	assert.Equal(t, 2, graph.Edges[domain.Bigram{First: "stay", Second: "home"}])
	assert.Equal(t, 2, graph.Edges[domain.Bigram{First: "home", Second: "stay"}])
	assert.Equal(t, 1, graph.Edges[domain.Bigram{First: "stay", Second: "safe"}])
	assert.Len(t, graph.Edges, 3)
}

func TestBuildDirectionMatters(t *testing.T) {
	graph := Build(domain.Record{Text: "up down"})

	assert.Equal(t, 1, graph.Edges[domain.Bigram{First: "up", Second: "down"}])
	assert.Zero(t, graph.Edges[domain.Bigram{First: "down", Second: "up"}])
}

func TestBuildEmptyCases(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"single token", "alone"},
		{"punctuation only", "... !!! ???"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := Build(domain.Record{Text: tt.text})
			assert.True(t, graph.Empty())
			assert.Empty(t, graph.Edges)
		})
	}
}

func TestBuildPunctuationBetweenTokens(t *testing.T) {
	// Punctuation-only spans vanish during tokenization, so the surviving
	// tokens still pair up in order.
	graph := Build(domain.Record{Text: "good --- news"})

	assert.Equal(t, 1, graph.Edges[domain.Bigram{First: "good", Second: "news"}])
}
