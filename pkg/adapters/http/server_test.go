package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/parley/internal/testutils"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	m := session.NewManager(session.FromDocument(testutils.Crossroads(t)), session.WithIDGenerator(func() string { return "s1" }))
	return NewHandler(m, opts...), m
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) session.View {
	t.Helper()
	var v session.View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestSessionFlow(t *testing.T) {
	h, m := newTestServer(t)

	w := do(t, h, http.MethodPost, "/sessions")
	require.Equal(t, http.StatusCreated, w.Code)
	v := decodeView(t, w)
	assert.Equal(t, "s1", v.ID)
	assert.Equal(t, "a1", v.Node)

	w = do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeView(t, w)
	assert.Equal(t, "a2", v.Node)
	require.Len(t, v.Choices, 3)
	assert.False(t, v.Choices[1].Available)

	w = do(t, h, http.MethodGet, "/sessions/s1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You arrive at the crossroads.", decodeView(t, w).Content)

	w = do(t, h, http.MethodGet, "/sessions/s1/graph")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class n1 current;")

	w = do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeView(t, w).Completed)

	w = do(t, h, http.MethodPost, "/sessions/s1/reset")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", decodeView(t, w).Node)

	w = do(t, h, http.MethodGet, "/sessions")
	assert.JSONEq(t, `{"sessions":["s1"]}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/sessions/s1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, m.Len())
}

func TestErrorMapping(t *testing.T) {
	h, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/s1/choices/0").Code)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"Unknown Session", http.MethodGet, "/sessions/nope", http.StatusNotFound},
		{"Unknown Session Delete", http.MethodDelete, "/sessions/nope", http.StatusNotFound},
		{"Bad Index", http.MethodPost, "/sessions/s1/choices/x", http.StatusBadRequest},
		{"Out Of Range", http.MethodPost, "/sessions/s1/choices/5", http.StatusBadRequest},
		{"Negative Index", http.MethodPost, "/sessions/s1/choices/-1", http.StatusBadRequest},
		{"Condition Not Met", http.MethodPost, "/sessions/s1/choices/1", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	// A rejected choice leaves the session where it was.
	assert.Equal(t, "a2", decodeView(t, do(t, h, http.MethodGet, "/sessions/s1")).Node)
}

func TestAlreadyTerminal(t *testing.T) {
	h, _ := newTestServer(t)
	do(t, h, http.MethodPost, "/sessions")
	do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/s1/choices/0").Code)

	w := do(t, h, http.MethodPost, "/sessions/s1/choices/0")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already")
}

func TestHealthGraphMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	metrics.Completions.Inc()

	h, _ := newTestServer(t,
		WithGraph("graph TD\n"),
		WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	w := do(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/graph")
	assert.Equal(t, "graph TD\n", w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "parley_completions_total 1"))
}

func TestCORS(t *testing.T) {
	h, _ := newTestServer(t)
	w := do(t, h, http.MethodOptions, "/sessions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptionalRoutesAbsent(t *testing.T) {
	h, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/graph").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics").Code)
}
