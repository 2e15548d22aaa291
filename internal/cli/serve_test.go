package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/pictograph/internal/config"
	"github.com/aretw0/pictograph/internal/logging"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	b, err := OpenStore(ctx, cfg)
	require.NoError(t, err)

	svc := NewService(cfg, logging.NewNop(), b)
	require.NoError(t, svc.Restore(ctx, cfg.HTTP.Graph, logging.NewNop()), "an unsaved graph starts empty")
	assert.Equal(t, 0, svc.Engine.Len())

	req := httptest.NewRequest("POST", "/nodes", bytes.NewBufferString(`{"type":"NumberNode"}`))
	w := httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, err := svc.Engine.AddNode("AdditionNode")
	require.NoError(t, err)
	require.NoError(t, svc.Engine.ConnectInput(id, "arg1", domain.NodeID(1)))
	require.NoError(t, svc.Engine.ConnectInput(id, "arg2", domain.NodeID(1)))
	require.NoError(t, svc.Engine.Process(id))

	w = httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `pictograph_node_processed_total{variant="AdditionNode"} 1`)
	assert.Contains(t, body, "pictograph_links 2")
	assert.Contains(t, body, "go_goroutines")

	require.NoError(t, svc.Engine.Save(ctx, cfg.HTTP.Graph))
	restored := NewService(cfg, logging.NewNop(), b)
	require.NoError(t, restored.Restore(ctx, cfg.HTTP.Graph, logging.NewNop()))
	assert.Equal(t, 2, restored.Engine.Len())
}

func TestService_MetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Metrics = false
	svc := NewService(cfg, logging.NewNop(), nil)

	w := httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	svc.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), logging.NewNop())
	}()
	cancel()
	assert.NoError(t, <-done)
}
