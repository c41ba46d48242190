package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/synergraph/core/internal/ego"
	"github.com/synergraph/core/internal/focus"
	"github.com/synergraph/core/internal/models"
	"github.com/synergraph/core/internal/parser"
)

type EgoResponse struct {
	Main    models.VertexID      `json:"main"`
	Focus   models.VertexID      `json:"focus"`
	Graph   *models.Graph        `json:"graph"`
	Similar []models.SimilarCard `json:"similar"`
}

type SimilarResponse struct {
	Focus     models.VertexID      `json:"focus"`
	Threshold float64              `json:"threshold"`
	Similar   []models.SimilarCard `json:"similar"`
}

func (a *API) CardsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	a.writeJSON(w, r, a.catalog.Cards())
}

// GraphHandler renders the full synergy graph.
func (a *API) GraphHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	g := a.catalog.Graph()
	graph, err := parser.BuildGraph(g.Adjacency, g.Weights, a.catalog, models.FullGraphLayout)
	if err != nil {
		a.writeInternalError(w, r, err)
		return
	}
	a.writeJSON(w, r, graph)
}

// EgoHandler renders the ego network of ?card= together with its similar
// cards. With ?main= the similar list is computed for main and card must be
// one of them, mirroring a jump from the similar-card menu.
func (a *API) EgoHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	card, ok := cardParam(w, r)
	if !ok {
		return
	}
	threshold, err := a.thresholdFrom(r)
	if err != nil {
		http.Error(w, "Invalid threshold: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := a.catalog.Lookup(card)
	if err != nil {
		a.writeLookupError(w, r, err)
		return
	}
	mainID := id
	if mainCard := strings.TrimSpace(r.URL.Query().Get("main")); mainCard != "" {
		if mainID, err = a.catalog.Lookup(mainCard); err != nil {
			a.writeLookupError(w, r, err)
			return
		}
	}

	nav := focus.NewNavigator(a.catalog, threshold, a.opts...)
	t, err := nav.FocusChanged(string(mainID))
	if err == nil && mainID != id {
		t, err = nav.Jump(string(id))
	}
	if errors.Is(err, focus.ErrNotSimilar) {
		http.Error(w, "Card is not similar to main: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		a.writeInternalError(w, r, err)
		return
	}

	graph, err := parser.BuildGraph(t.Network.Adjacency, a.catalog.Graph().Weights, a.catalog, models.EgoLayout)
	if err != nil {
		a.writeInternalError(w, r, err)
		return
	}

	a.log.Debug("ego network", "main", t.Main, "focus", t.Displayed, "nodes", len(graph.Nodes), "similar", len(t.Similar))
	a.writeJSON(w, r, EgoResponse{
		Main:    t.Main,
		Focus:   t.Displayed,
		Graph:   graph,
		Similar: t.Similar,
	})
}

func (a *API) SimilarHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	card, ok := cardParam(w, r)
	if !ok {
		return
	}
	threshold, err := a.thresholdFrom(r)
	if err != nil {
		http.Error(w, "Invalid threshold: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := a.catalog.Lookup(card)
	if err != nil {
		a.writeLookupError(w, r, err)
		return
	}
	ids, err := ego.FindSimilar(a.catalog.Graph(), a.catalog.Vertices(), id, threshold, a.opts...)
	if err != nil {
		a.writeInternalError(w, r, err)
		return
	}
	ranked, err := ego.RankByName(a.catalog, ids)
	if err != nil {
		a.writeInternalError(w, r, err)
		return
	}

	a.writeJSON(w, r, SimilarResponse{Focus: id, Threshold: threshold, Similar: ranked})
}
