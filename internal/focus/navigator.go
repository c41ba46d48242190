// Package focus holds the one piece of mutable state: which card the user
// is looking at.
package focus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/ego"
	"github.com/synergraph/core/internal/models"
)

// ErrNotSimilar is returned by Jump for a card outside the similar list.
var ErrNotSimilar = errors.New("card is not in the similar list")

// Transition is the state after a successful focus change.
type Transition struct {
	// Main anchors the similar list.
	Main models.VertexID `json:"main"`
	// Displayed is the focus of Network; it differs from Main after a Jump.
	Displayed models.VertexID      `json:"displayed"`
	Network   *models.EgoNetwork   `json:"network"`
	Similar   []models.SimilarCard `json:"similar"`
}

// Navigator applies focus changes against an immutable catalog. A failed
// change leaves the previous transition in place.
type Navigator struct {
	catalog   *catalog.Catalog
	threshold float64
	opts      []ego.Option

	mu      sync.Mutex
	current *Transition
}

func NewNavigator(c *catalog.Catalog, threshold float64, opts ...ego.Option) *Navigator {
	return &Navigator{catalog: c, threshold: threshold, opts: opts}
}

// FocusChanged selects a new main card. Both the ego network and the similar
// list are rebuilt around it.
func (n *Navigator) FocusChanged(input string) (Transition, error) {
	id, err := n.catalog.Lookup(input)
	if err != nil {
		return Transition{}, err
	}

	similar, err := n.similarTo(id)
	if err != nil {
		return Transition{}, err
	}
	network, err := ego.Build(n.catalog.Graph(), id, n.opts...)
	if err != nil {
		return Transition{}, err
	}

	t := Transition{Main: id, Displayed: id, Network: network, Similar: similar}
	n.commit(t)
	return t, nil
}

// Jump displays the ego network of a card from the current similar list
// while the list itself stays anchored to the main card.
func (n *Navigator) Jump(input string) (Transition, error) {
	prev, ok := n.Current()
	if !ok {
		return n.FocusChanged(input)
	}

	id, err := n.catalog.Lookup(input)
	if err != nil {
		return Transition{}, err
	}
	if !contains(prev.Similar, id) {
		return Transition{}, fmt.Errorf("%w: %q", ErrNotSimilar, id)
	}

	network, err := ego.Build(n.catalog.Graph(), id, n.opts...)
	if err != nil {
		return Transition{}, err
	}

	t := Transition{Main: prev.Main, Displayed: id, Network: network, Similar: prev.Similar}
	n.commit(t)
	return t, nil
}

// Current returns the last committed transition.
func (n *Navigator) Current() (Transition, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Transition{}, false
	}
	return *n.current, true
}

func (n *Navigator) similarTo(id models.VertexID) ([]models.SimilarCard, error) {
	ids, err := ego.FindSimilar(n.catalog.Graph(), n.catalog.Vertices(), id, n.threshold, n.opts...)
	if err != nil {
		return nil, err
	}
	return ego.RankByName(n.catalog, ids)
}

func (n *Navigator) commit(t Transition) {
	n.mu.Lock()
	n.current = &t
	n.mu.Unlock()
}

func contains(cards []models.SimilarCard, id models.VertexID) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
