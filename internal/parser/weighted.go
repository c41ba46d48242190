package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/synergraph/core/internal/models"
)

// ParseWeightedGraph decodes the synergy graph document. Every key and
// neighbour must already be a canonical vertex id and every neighbour must
// itself be a key of the adjacency.
func ParseWeightedGraph(data []byte) (*models.WeightedGraph, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty graph data")
	}

	var graph models.WeightedGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	if graph.Adjacency == nil {
		return nil, fmt.Errorf("invalid graph: missing adj field")
	}
	if graph.Weights == nil {
		return nil, fmt.Errorf("invalid graph: missing wgt field")
	}

	if err := validateAdjacency(graph.Adjacency); err != nil {
		return nil, err
	}

	return &graph, nil
}

func validateAdjacency(adj map[models.VertexID][]models.VertexID) error {
	vertices := make([]models.VertexID, 0, len(adj))
	for id := range adj {
		vertices = append(vertices, id)
	}
	// sorted so the reported vertex is stable across runs
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	for _, id := range vertices {
		if !IsCanonical(string(id)) {
			return fmt.Errorf("invalid graph: vertex %q is not a normalized card name", id)
		}
		for _, n := range adj[id] {
			if _, ok := adj[n]; !ok {
				return fmt.Errorf("invalid graph: neighbour %q of %q is not a vertex", n, id)
			}
		}
	}
	return nil
}
