package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrogranizo/tractusx-sdk/internal/config"
)

// TestServerWiring tests that routes, middleware and the ops provider
// are wired together. The server is built once: metric collectors
// register globally.
func TestServerWiring(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"

	srv, err := New(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// The ops provider is registered.
	_, ok := srv.Registry().Get("op")
	assert.True(t, ok)

	// One tool call through the full stack.
	path := filepath.Join(t.TempDir(), "doc.json")
	body, err := json.Marshal(map[string]interface{}{
		"tool_id": "op.write_json",
		"params":  map[string]interface{}{"path": path, "value": map[string]interface{}{"ok": true}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/services/execute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Prometheus exposition is mounted.
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, srv.Close())
}
