package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/synergraph/core/internal/models"
)

// ParseInteractions reads "card1:card2" interaction terms, one per line, and
// builds the undirected synergy graph. Each line appends both directions and
// adds 1 to both directed weights, so repeated pairs keep their repeats.
func ParseInteractions(r io.Reader) (*models.WeightedGraph, error) {
	graph := &models.WeightedGraph{
		Adjacency: map[models.VertexID][]models.VertexID{},
		Weights:   map[string]float64{},
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		left, right, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected card1:card2, got %q", lineNo, line)
		}

		a, b := Normalize(left), Normalize(right)
		if a == "" || b == "" {
			return nil, fmt.Errorf("line %d: empty card name in %q", lineNo, line)
		}

		if _, ok := graph.Adjacency[a]; !ok {
			graph.Adjacency[a] = []models.VertexID{}
		}
		if _, ok := graph.Adjacency[b]; !ok {
			graph.Adjacency[b] = []models.VertexID{}
		}

		graph.Adjacency[a] = append(graph.Adjacency[a], b)
		graph.Adjacency[b] = append(graph.Adjacency[b], a)
		graph.Weights[models.WeightKey(a, b)]++
		graph.Weights[models.WeightKey(b, a)]++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interactions: %w", err)
	}

	return graph, nil
}
