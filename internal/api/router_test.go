package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Env:     "test",
			Version: "test",
		},
		Server: config.ServerConfig{Port: 8080},
		Matching: config.MatchingConfig{
			MaxFuzzyDistance:  2,
			MinTokenLength:    3,
			MinSubstringRatio: 0.6,
			Workers:           3,
			DefaultLimit:      6,
		},
		Cache: config.CacheConfig{Enabled: false},
		RateLimit: config.RateLimitConfig{
			Enabled:  true,
			Requests: 1000,
			Window:   time.Minute,
		},
	}

	router, err := SetupRouter(cfg, nil)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := doJSON(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := doJSON(t, router, http.MethodGet, "/health", "")
	var body struct {
		Status     string `json:"status"`
		Vocabulary *struct {
			Canonicals int `json:"canonicals"`
		} `json:"vocabulary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.NotNil(t, body.Vocabulary)
	assert.Greater(t, body.Vocabulary.Canonicals, 0)
}

func TestNormalizeEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ingredient/normalize",
		`{"items": ["Tata Salt", "tomatto", "xyzzy"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			Input        string `json:"input"`
			Canonical    string `json:"canonical"`
			InVocabulary bool   `json:"in_vocabulary"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 3)

	assert.Equal(t, "salt", body.Items[0].Canonical)
	assert.True(t, body.Items[0].InVocabulary)
	assert.Equal(t, "tomato", body.Items[1].Canonical)
	assert.True(t, body.Items[1].InVocabulary)
	assert.Equal(t, "xyzzy", body.Items[2].Canonical)
	assert.False(t, body.Items[2].InVocabulary)
}

func TestNormalizeEndpointRejectsBadBody(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ingredient/normalize", `{"items": "not a list"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailableEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/pantry/available",
		`{"records": [
			{"product_name": "Everest Pav Bhaji Masala 100g", "days_until_expiry": 90},
			{"product_name": "Britannia Pav", "days_until_expiry": 1}
		]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Available       []string `json:"available"`
		CanonicalExpiry []struct {
			Canonical       string `json:"canonical"`
			DaysUntilExpiry int    `json:"days_until_expiry"`
		} `json:"canonical_expiry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Contains(t, body.Available, "pav bhaji masala")
	assert.Contains(t, body.Available, "pav")
	require.Len(t, body.CanonicalExpiry, 2)
	assert.Equal(t, "pav bhaji masala", body.CanonicalExpiry[0].Canonical)
}

func TestTagsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/pantry/tags",
		`{"records": [
			{"product_name": "Tata Salt", "tags": ["pantry"]},
			{"product_name": "Paneer", "tags": ["canonical:paneer"]}
		]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Records []common.InventoryRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Records, 2)

	assert.Equal(t, []string{"pantry", "canonical:salt"}, body.Records[0].Tags)
	assert.Equal(t, []string{"canonical:paneer"}, body.Records[1].Tags, "existing tag must not be duplicated")
}

func TestMatchEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipe/match",
		`{"ingredients": ["Chilli", "paneer"], "available": ["chili"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result common.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, []string{"chilli"}, result.Matched)
	assert.Equal(t, []string{"paneer"}, result.Missing)
	assert.False(t, result.IsExactNow)
}

func TestSuggestEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipe/suggest",
		`{
			"records": [
				{"product_name": "Tomato", "days_until_expiry": 2},
				{"product_name": "Onion", "days_until_expiry": 10},
				{"product_name": "Tata Salt", "days_until_expiry": 180}
			],
			"recipes": [
				{"name": "Tomato Onion Curry", "ingredients": ["tomato", "onion", "salt"]},
				{"name": "Creamy Pasta", "ingredients": ["pasta", "cream"]}
			],
			"limit": 1
		}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Suggestions []common.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Suggestions, 1)

	top := body.Suggestions[0]
	assert.Equal(t, "Tomato Onion Curry", top.Recipe.Name)
	assert.Equal(t, 1.0, top.Ratio)
	assert.True(t, top.Match.IsExactNow)
	assert.Equal(t, "Indian", top.Cuisine)
	assert.Contains(t, top.UsesExpiring, "tomato")
}
