package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/synergraph/core/internal/logger"
)

func TestCors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("handles OPTIONS preflight request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ego", nil)
		rec := httptest.NewRecorder()

		Cors("*")(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("passes GET request to next handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graph", nil)
		rec := httptest.NewRecorder()

		Cors("http://localhost:5173")(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty origin falls back to wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		Cors("")(handler).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("sets CORS headers on all requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		Cors("*")(handler).ServeHTTP(rec, req)

		for _, header := range []string{
			"Access-Control-Allow-Origin",
			"Access-Control-Allow-Methods",
			"Access-Control-Allow-Headers",
			"Access-Control-Expose-Headers",
			"Access-Control-Max-Age",
		} {
			assert.NotEmpty(t, rec.Header().Get(header), header)
		}
	})
}

func TestRequestLog(t *testing.T) {
	t.Run("generates request id and logs status", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		})

		req := httptest.NewRequest(http.MethodGet, "/ego?card=golem", nil)
		rec := httptest.NewRecorder()
		RequestLog(logger.FromZap(zap.New(core)))(handler).ServeHTTP(rec, req)

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, id, entry.ContextMap()["request_id"])
		assert.EqualValues(t, http.StatusNotFound, entry.ContextMap()["status"])
		assert.Equal(t, "card=golem", entry.ContextMap()["query"])
	})

	t.Run("reuses caller request id", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		RequestLog(logger.FromZap(zap.New(core)))(handler).ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		entry := logs.All()[0]
		assert.EqualValues(t, http.StatusOK, entry.ContextMap()["status"])
		assert.EqualValues(t, 2, entry.ContextMap()["bytes"])
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		RequestLog(logger.FromZap(zap.New(core)))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/graph", nil))

		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})
}
