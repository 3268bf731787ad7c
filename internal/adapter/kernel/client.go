// Package kernel is the HTTP client for the external graph-similarity
// service. The kernel computation itself is a black box; this adapter only
// ships word graphs out and validates the matrix that comes back.
package kernel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// Client implements domain.SimilarityKernel against a remote endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a kernel client. The per-request deadline comes from the
// caller's context, so the underlying http.Client carries no timeout itself.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

type wireEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

type wireGraph struct {
	Edges []wireEdge `json:"edges"`
}

type similarityRequest struct {
	Graphs []wireGraph `json:"graphs"`
}

type similarityResponse struct {
	Matrix [][]float64 `json:"matrix"`
}

func toWireGraph(g domain.WordGraph) wireGraph {
	edges := make([]wireEdge, 0, len(g.Edges))
	for bigram, weight := range g.Edges {
		edges = append(edges, wireEdge{From: bigram.First, To: bigram.Second, Weight: weight})
	}
	// Map iteration order is random; keep the payload deterministic.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return wireGraph{Edges: edges}
}

// Similarity posts the graphs and returns the full pairwise matrix.
func (c *Client) Similarity(ctx context.Context, graphs []domain.WordGraph) ([][]float64, error) {
	wire := make([]wireGraph, len(graphs))
	for i, g := range graphs {
		wire[i] = toWireGraph(g)
	}

	payload, err := json.Marshal(similarityRequest{Graphs: wire})
	if err != nil {
		return nil, fmt.Errorf("failed to encode similarity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build similarity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("similarity kernel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("similarity kernel returned status %d: %s", resp.StatusCode, body)
	}

	var result similarityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode similarity response: %w", err)
	}

	if err := validateMatrix(result.Matrix, len(graphs)); err != nil {
		return nil, err
	}
	return result.Matrix, nil
}

func validateMatrix(matrix [][]float64, n int) error {
	if len(matrix) != n {
		return fmt.Errorf("similarity matrix has %d rows, expected %d", len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return fmt.Errorf("similarity matrix row %d has %d columns, expected %d", i, len(row), n)
		}
	}
	return nil
}
