// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/ego"
	"github.com/synergraph/core/internal/logger"
)

// API serves read-only views of a loaded catalog. Every request recomputes
// its ego network and similar list.
type API struct {
	catalog   *catalog.Catalog
	log       *logger.Logger
	threshold float64
	opts      []ego.Option
}

func NewAPI(c *catalog.Catalog, log *logger.Logger, threshold float64, opts ...ego.Option) *API {
	return &API{catalog: c, log: log, threshold: threshold, opts: opts}
}

// Routes registers every endpoint on mux.
func (a *API) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.HealthHandler)
	mux.HandleFunc("/cards", a.CardsHandler)
	mux.HandleFunc("/graph", a.GraphHandler)
	mux.HandleFunc("/ego", a.EgoHandler)
	mux.HandleFunc("/similar", a.SimilarHandler)
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		a.log.Error("encode response", "path", r.URL.Path, "error", err)
	}
}

// writeLookupError answers a failed card selection. Only an unknown card is
// the caller's fault.
func (a *API) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrUnknownVertex) {
		a.log.Warn("unknown card", "path", r.URL.Path, "query", r.URL.RawQuery, "error", err)
		http.Error(w, "Unknown card: "+err.Error(), http.StatusNotFound)
		return
	}
	a.writeInternalError(w, r, err)
}

// writeInternalError is used once the selection is valid: an unresolvable
// vertex at that point is a gap in the loaded data.
func (a *API) writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	a.log.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (a *API) thresholdFrom(r *http.Request) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("threshold"))
	if raw == "" {
		return a.threshold, nil
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("threshold %q is not a number", raw)
	}
	if t <= 0 || t > 1 {
		return 0, fmt.Errorf("threshold %v must be in (0, 1]", t)
	}
	return t, nil
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func cardParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	card := strings.TrimSpace(r.URL.Query().Get("card"))
	if card == "" {
		http.Error(w, "Missing card parameter", http.StatusBadRequest)
		return "", false
	}
	return card, true
}
