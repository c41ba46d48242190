package parser

import (
	"fmt"
	"sort"

	"github.com/synergraph/core/internal/models"
)

// CardResolver maps a vertex id to its card.
type CardResolver interface {
	ResolveVertex(id models.VertexID) (models.CardInfo, error)
}

// BuildGraph converts an adjacency list into the renderer payload. Weights
// are looked up in the full weight table and edge widths are scaled against
// its heaviest entry, so an ego network keeps the same stroke widths as the
// full graph.
func BuildGraph(adjacency map[models.VertexID][]models.VertexID, weights map[string]float64, resolver CardResolver, layout models.Layout) (*models.Graph, error) {
	graph := &models.Graph{
		Nodes:  []models.Node{},
		Edges:  []models.Edge{},
		Layout: &layout,
	}

	vertices := sortedVertices(adjacency)
	maxWeight := maxWeightOf(weights)

	for _, id := range vertices {
		card, err := resolver.ResolveVertex(id)
		if err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
		graph.Nodes = append(graph.Nodes, models.Node{
			ID:      id,
			Name:    card.Name,
			IconURL: card.IconURL,
			Group:   1,
		})
	}

	for _, source := range vertices {
		for _, target := range adjacency[source] {
			weight := weights[models.WeightKey(source, target)]
			graph.Edges = append(graph.Edges, models.Edge{
				Source: source,
				Target: target,
				Weight: weight,
				Width:  edgeWidth(weight, maxWeight),
			})
		}
	}

	graph.Stats = &models.Stats{
		TotalNodes: len(graph.Nodes),
		TotalEdges: len(graph.Edges),
		MaxWeight:  maxWeight,
	}

	return graph, nil
}

func sortedVertices(adjacency map[models.VertexID][]models.VertexID) []models.VertexID {
	vertices := make([]models.VertexID, 0, len(adjacency))
	for id := range adjacency {
		vertices = append(vertices, id)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })
	return vertices
}

func maxWeightOf(weights map[string]float64) float64 {
	var maxWeight float64
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	return maxWeight
}

func edgeWidth(weight, maxWeight float64) float64 {
	if maxWeight <= 0 {
		return 0
	}
	return weight / maxWeight * models.MaxEdgeWidth
}
