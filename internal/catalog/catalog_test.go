package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/synergraph/core/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const cardsJSON = `{
	"items": [
		{"name": "Giant", "iconUrls": {"medium": "https://cdn.example/giant.png"}},
		{"name": "Witch", "iconUrls": {"medium": "https://cdn.example/witch.png"}},
		{"name": "Mini P.E.K.K.A", "iconUrls": {"medium": "https://cdn.example/mp.png"}},
		{"name": "Mirror", "iconUrls": {"medium": "https://cdn.example/mirror.png"}}
	]
}`

const graphJSON = `{
	"adj": {
		"giant": ["witch", "minipekka"],
		"witch": ["giant", "minipekka"],
		"minipekka": ["giant", "witch"]
	},
	"wgt": {
		"giant:witch": 0.5, "witch:giant": 0.5,
		"giant:minipekka": 0.25, "minipekka:giant": 0.25,
		"witch:minipekka": 0.1, "minipekka:witch": 0.1
	}
}`

type staticSource struct {
	data []byte
	err  error
}

func (s staticSource) Fetch(ctx context.Context) ([]byte, error) { return s.data, s.err }
func (s staticSource) String() string { return "static" }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewLoader(staticSource{data: []byte(cardsJSON)}, staticSource{data: []byte(graphJSON)}).Load(context.Background())
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	t.Run("loads both documents from files", func(t *testing.T) {
		loader := NewLoader(
			FileSource{Path: writeFile(t, "cards.json", cardsJSON)},
			FileSource{Path: writeFile(t, "graph.json", graphJSON)},
		)

		c, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, c.Vertices(), 3)
		assert.Len(t, c.Cards(), 4)
		assert.Equal(t, 0.5, c.Graph().Weight("giant", "witch"))
	})

	t.Run("missing file is data unavailable", func(t *testing.T) {
		loader := NewLoader(
			FileSource{Path: filepath.Join(t.TempDir(), "absent.json")},
			staticSource{data: []byte(graphJSON)},
		)

		c, err := loader.Load(context.Background())

		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed graph is data unavailable", func(t *testing.T) {
		loader := NewLoader(staticSource{data: []byte(cardsJSON)}, staticSource{data: []byte(`{"wgt": {}}`)})

		c, err := loader.Load(context.Background())

		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.Contains(t, err.Error(), "missing adj")
	})

	t.Run("card without name is data unavailable", func(t *testing.T) {
		loader := NewLoader(staticSource{data: []byte(`{"items": [{"iconUrls": {}}]}`)}, staticSource{data: []byte(graphJSON)})

		_, err := loader.Load(context.Background())

		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("fetch error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		loader := NewLoader(staticSource{data: []byte(cardsJSON)}, staticSource{err: boom})

		_, err := loader.Load(context.Background())

		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context fails file fetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		loader := NewLoader(
			FileSource{Path: writeFile(t, "cards.json", cardsJSON)},
			FileSource{Path: writeFile(t, "graph.json", graphJSON)},
		)

		_, err := loader.Load(ctx)

		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPSource(t *testing.T) {
	t.Run("fetches document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(graphJSON))
		}))
		defer srv.Close()

		data, err := HTTPSource{URL: srv.URL, Client: srv.Client()}.Fetch(context.Background())

		require.NoError(t, err)
		assert.JSONEq(t, graphJSON, string(data))
	})

	t.Run("non 2xx status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := HTTPSource{URL: srv.URL, Client: srv.Client()}.Fetch(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
	})

	t.Run("load through http", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/cards.json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(cardsJSON)) })
		mux.HandleFunc("/graph.json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(graphJSON)) })
		srv := httptest.NewServer(mux)
		defer srv.Close()

		loader := NewLoader(
			HTTPSource{URL: srv.URL + "/cards.json", Client: srv.Client()},
			HTTPSource{URL: srv.URL + "/graph.json", Client: srv.Client()},
		)
		c, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, c.Vertices(), 3)
	})
}

func TestSourceFor(t *testing.T) {
	assert.Equal(t, HTTPSource{URL: "https://cdn.example/graph.json"}, SourceFor("https://cdn.example/graph.json"))
	assert.Equal(t, HTTPSource{URL: "HTTP://cdn.example/graph.json"}, SourceFor("HTTP://cdn.example/graph.json"))
	assert.Equal(t, FileSource{Path: "data/graph.json"}, SourceFor("data/graph.json"))
}

func TestNormalize(t *testing.T) {
	c := loadTestCatalog(t)

	want := c.Normalize("Giant Skeleton")
	assert.Equal(t, want, c.Normalize("giant-skeleton"))
	assert.Equal(t, want, c.Normalize("GIANT SKELETON"))
	assert.Equal(t, want, c.Normalize(string(want)))
}

func TestResolveVertex(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("known vertex", func(t *testing.T) {
		card, err := c.ResolveVertex("minipekka")
		require.NoError(t, err)
		assert.Equal(t, models.CardInfo{Name: "Mini P.E.K.K.A", IconURL: "https://cdn.example/mp.png"}, card)
	})

	t.Run("unknown vertex", func(t *testing.T) {
		_, err := c.ResolveVertex("golem")
		assert.ErrorIs(t, err, ErrUnknownVertex)
	})
}

func TestLookup(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name    string
		input   string
		want    models.VertexID
		wantErr bool
	}{
		{name: "display name", input: "Mini P.E.K.K.A", want: "minipekka"},
		{name: "vertex id", input: "witch", want: "witch"},
		{name: "card not in graph", input: "Mirror", wantErr: true},
		{name: "unknown card", input: "Golem", wantErr: true},
		{name: "blank", input: " - ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVertex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardsSortedByName(t *testing.T) {
	c := loadTestCatalog(t)

	var names []string
	for _, card := range c.Cards() {
		names = append(names, card.Card.Name)
	}

	if diff := cmp.Diff([]string{"Giant", "Mini P.E.K.K.A", "Mirror", "Witch"}, names); diff != "" {
		t.Errorf("Cards() order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	t.Run("consistent sources", func(t *testing.T) {
		assert.Empty(t, loadTestCatalog(t).Validate())
	})

	t.Run("vertex without card", func(t *testing.T) {
		graph := &models.WeightedGraph{
			Adjacency: map[models.VertexID][]models.VertexID{"giant": {"golem"}, "golem": {"giant"}},
			Weights:   map[string]float64{},
		}
		c := New(graph, map[models.VertexID]models.CardInfo{"giant": {Name: "Giant"}})

		assert.Equal(t, []models.VertexID{"golem"}, c.Validate())
	})
}
