// Package catalog loads the card catalog and the synergy graph once and
// answers name and vertex lookups against them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/synergraph/core/internal/models"
	"github.com/synergraph/core/internal/parser"
)

var (
	// ErrDataUnavailable means a source could not be fetched or decoded.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrUnknownVertex means no card or vertex exists for the requested id.
	ErrUnknownVertex = errors.New("unknown vertex")
)

// Catalog is immutable once Load returns it and safe for concurrent readers.
type Catalog struct {
	graph *models.WeightedGraph
	cards map[models.VertexID]models.CardInfo
}

// Loader fetches both documents of a catalog.
type Loader struct {
	cards Source
	graph Source
}

func NewLoader(cards, graph Source) *Loader {
	return &Loader{cards: cards, graph: graph}
}

// Load fetches the card catalog and the graph concurrently. Any failure is
// reported as ErrDataUnavailable and no catalog is returned.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var (
		cards map[models.VertexID]models.CardInfo
		graph *models.WeightedGraph
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		data, err := l.cards.Fetch(egCtx)
		if err != nil {
			return fmt.Errorf("%w: card catalog %s: %w", ErrDataUnavailable, l.cards, err)
		}
		cards, err = parser.ParseCards(data)
		if err != nil {
			return fmt.Errorf("%w: card catalog %s: %w", ErrDataUnavailable, l.cards, err)
		}
		return nil
	})

	eg.Go(func() error {
		data, err := l.graph.Fetch(egCtx)
		if err != nil {
			return fmt.Errorf("%w: graph %s: %w", ErrDataUnavailable, l.graph, err)
		}
		graph, err = parser.ParseWeightedGraph(data)
		if err != nil {
			return fmt.Errorf("%w: graph %s: %w", ErrDataUnavailable, l.graph, err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return New(graph, cards), nil
}

// New builds a catalog from already decoded documents.
func New(graph *models.WeightedGraph, cards map[models.VertexID]models.CardInfo) *Catalog {
	return &Catalog{graph: graph, cards: cards}
}

// Normalize maps a display name or selection to its vertex id.
func (c *Catalog) Normalize(name string) models.VertexID {
	return parser.Normalize(name)
}

// ResolveVertex returns the card for id.
func (c *Catalog) ResolveVertex(id models.VertexID) (models.CardInfo, error) {
	card, ok := c.cards[id]
	if !ok {
		return models.CardInfo{}, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	return card, nil
}

// Lookup normalizes a selection event and requires it to name a vertex of
// the graph that also has a card.
func (c *Catalog) Lookup(input string) (models.VertexID, error) {
	id := c.Normalize(input)
	if id == "" {
		return "", fmt.Errorf("%w: %q normalizes to an empty id", ErrUnknownVertex, input)
	}
	if _, ok := c.graph.Neighbors(id); !ok {
		return "", fmt.Errorf("%w: %q is not in the graph", ErrUnknownVertex, input)
	}
	if _, err := c.ResolveVertex(id); err != nil {
		return "", err
	}
	return id, nil
}

func (c *Catalog) Graph() *models.WeightedGraph {
	return c.graph
}

// Vertices lists every graph vertex in ascending id order.
func (c *Catalog) Vertices() []models.VertexID {
	vertices := make([]models.VertexID, 0, len(c.graph.Adjacency))
	for id := range c.graph.Adjacency {
		vertices = append(vertices, id)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })
	return vertices
}

// Cards lists the catalog sorted by display name, then id.
func (c *Catalog) Cards() []models.SimilarCard {
	out := make([]models.SimilarCard, 0, len(c.cards))
	for id, card := range c.cards {
		out = append(out, models.SimilarCard{ID: id, Card: card})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Card.Name != out[j].Card.Name {
			return out[i].Card.Name < out[j].Card.Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Validate returns the graph vertices that have no card, sorted. An empty
// result means every similarity result can be resolved.
func (c *Catalog) Validate() []models.VertexID {
	var missing []models.VertexID
	for _, id := range c.Vertices() {
		if _, ok := c.cards[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
