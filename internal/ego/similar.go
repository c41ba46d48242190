package ego

import (
	"fmt"
	"sort"

	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/models"
)

// DefaultThreshold keeps cards sharing at least half of the focus card's
// neighbours.
const DefaultThreshold = 0.5

// Resolver maps a vertex id to its card.
type Resolver interface {
	ResolveVertex(id models.VertexID) (models.CardInfo, error)
}

// Overlap is the fraction of focus's neighbours, counted with multiplicity,
// that also appear in v's neighbour list. It is 0 when focus has no
// neighbours.
func Overlap(graph *models.WeightedGraph, focus, v models.VertexID, opts ...Option) (float64, error) {
	o := applyOptions(opts)

	a, ok := graph.Neighbors(focus)
	if !ok {
		return 0, fmt.Errorf("%w: %q", catalog.ErrUnknownVertex, focus)
	}
	b, ok := graph.Neighbors(v)
	if !ok {
		return 0, fmt.Errorf("%w: %q", catalog.ErrUnknownVertex, v)
	}
	if o.dedupe {
		a, b = dedupe(a), dedupe(b)
	}
	return overlap(a, setOf(b)), nil
}

func overlap(a []models.VertexID, b map[models.VertexID]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	shared := 0
	for _, x := range a {
		if b[x] {
			shared++
		}
	}
	return float64(shared) / float64(len(a))
}

// FindSimilar returns the vertices of allVertices whose overlap with focus
// is at least threshold. Focus is always part of the result, so a focus
// without neighbours yields exactly [focus]. The order of the result is not
// meaningful; use RankByName for display.
func FindSimilar(graph *models.WeightedGraph, allVertices []models.VertexID, focus models.VertexID, threshold float64, opts ...Option) ([]models.VertexID, error) {
	o := applyOptions(opts)

	a, ok := graph.Neighbors(focus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownVertex, focus)
	}
	if o.dedupe {
		a = dedupe(a)
	}

	result := []models.VertexID{focus}
	seen := map[models.VertexID]bool{focus: true}

	for _, v := range allVertices {
		if seen[v] {
			continue
		}
		seen[v] = true

		b, ok := graph.Neighbors(v)
		if !ok {
			return nil, fmt.Errorf("%w: candidate %q", catalog.ErrUnknownVertex, v)
		}
		if overlap(a, setOf(b)) >= threshold {
			result = append(result, v)
		}
	}

	return result, nil
}

// RankByName resolves every id and orders the cards by display name using
// plain byte comparison, falling back to the id for equal names.
func RankByName(resolver Resolver, ids []models.VertexID) ([]models.SimilarCard, error) {
	ranked := make([]models.SimilarCard, 0, len(ids))
	for _, id := range ids {
		card, err := resolver.ResolveVertex(id)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, models.SimilarCard{ID: id, Card: card})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Card.Name != ranked[j].Card.Name {
			return ranked[i].Card.Name < ranked[j].Card.Name
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, nil
}
