package semantic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	m.Run()
}

func TestNoopSuggest(t *testing.T) {
	t.Parallel()

	got, err := Noop{}.Suggest(context.Background(), "paneer cubes", []string{"paneer"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func embeddingServer(t *testing.T, vectors map[string][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type item struct {
			Embedding []float64 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i, in := range req.Input {
			vec, ok := vectors[in]
			require.True(t, ok, "no vector configured for %q", in)
			data[i] = item{Embedding: vec}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
}

func TestRemoteSuggest(t *testing.T) {
	t.Parallel()

	srv := embeddingServer(t, map[string][]float64{
		"cottage cheese": {1, 0},
		"paneer":         {0.9, 0.1},
		"pasta":          {0, 1},
	})
	defer srv.Close()

	r := NewRemote(config.SemanticConfig{
		Enabled: true,
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})

	got, err := r.Suggest(context.Background(), "cottage cheese", []string{"paneer", "pasta"})
	require.NoError(t, err)
	assert.Equal(t, "paneer", got)
}

func TestRemoteSuggestBelowFloor(t *testing.T) {
	t.Parallel()

	// Orthogonal vectors score zero, under the similarity floor.
	srv := embeddingServer(t, map[string][]float64{
		"mystery item": {1, 0},
		"paneer":       {0, 1},
	})
	defer srv.Close()

	r := NewRemote(config.SemanticConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	got, err := r.Suggest(context.Background(), "mystery item", []string{"paneer"})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRemoteSuggestBackendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRemote(config.SemanticConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	_, err := r.Suggest(context.Background(), "paneer", []string{"paneer"})
	assert.Error(t, err)
}

func TestRemoteSuggestEmptyInput(t *testing.T) {
	t.Parallel()

	r := NewRemote(config.SemanticConfig{})

	got, err := r.Suggest(context.Background(), "", []string{"paneer"})
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = r.Suggest(context.Background(), "paneer", nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
