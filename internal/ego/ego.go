// Package ego derives ego networks from the synergy graph and finds cards
// whose neighbourhood overlaps a focus card's neighbourhood.
//
// Neighbour lists may contain duplicates. They are preserved by default
// because deduplicating would change similarity denominators; pass
// WithDeduplication to opt out.
package ego

import (
	"fmt"

	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/models"
)

type options struct {
	dedupe bool
}

// Option tweaks Build and FindSimilar.
type Option func(*options)

// WithDeduplication removes repeated neighbours, keeping the first
// occurrence, before any set arithmetic.
func WithDeduplication() Option {
	return func(o *options) { o.dedupe = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Build returns the ego network of focus: focus mapped to its neighbour list,
// and every distinct neighbour v mapped to the neighbours of focus that are
// also neighbours of v, followed by focus itself. The result shares no
// memory with graph.
func Build(graph *models.WeightedGraph, focus models.VertexID, opts ...Option) (*models.EgoNetwork, error) {
	o := applyOptions(opts)

	neighbors, ok := graph.Neighbors(focus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownVertex, focus)
	}
	if o.dedupe {
		neighbors = dedupe(neighbors)
	}

	adjacency := make(map[models.VertexID][]models.VertexID, len(neighbors)+1)
	adjacency[focus] = append(make([]models.VertexID, 0, len(neighbors)), neighbors...)

	for _, v := range neighbors {
		if _, done := adjacency[v]; done {
			continue
		}
		vAdj, ok := graph.Neighbors(v)
		if !ok {
			return nil, fmt.Errorf("%w: neighbour %q of %q", catalog.ErrUnknownVertex, v, focus)
		}

		members := setOf(vAdj)
		shared := make([]models.VertexID, 0, len(neighbors)+1)
		for _, x := range neighbors {
			if members[x] {
				shared = append(shared, x)
			}
		}
		adjacency[v] = append(shared, focus)
	}

	return &models.EgoNetwork{Focus: focus, Adjacency: adjacency}, nil
}

func setOf(ids []models.VertexID) map[models.VertexID]bool {
	set := make(map[models.VertexID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func dedupe(ids []models.VertexID) []models.VertexID {
	seen := make(map[models.VertexID]bool, len(ids))
	out := make([]models.VertexID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
