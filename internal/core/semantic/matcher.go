package semantic

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// minScore is the cosine similarity below which a suggestion is discarded
// as noise rather than returned.
const minScore = 0.5

// Noop is the default matcher: it never suggests anything. Installing it
// keeps semantic mode a harmless no-op when no embedding backend is
// configured.
type Noop struct{}

// Suggest always reports no suggestion.
func (Noop) Suggest(ctx context.Context, text string, candidates []string) (string, error) {
	return "", nil
}

// Remote suggests canonical ingredients by embedding the input and every
// candidate through an OpenAI-compatible /embeddings endpoint and picking
// the cosine-nearest candidate. The HTTP client is built lazily on first
// use and exactly once; the embedding backend is heavy enough that
// concurrent first loads must be avoided.
type Remote struct {
	config config.SemanticConfig

	initOnce sync.Once
	client   *resty.Client
}

// NewRemote creates a Remote matcher. No connection is made until the
// first Suggest call.
func NewRemote(cfg config.SemanticConfig) *Remote {
	return &Remote{config: cfg}
}

func (r *Remote) init() {
	r.initOnce.Do(func() {
		r.client = resty.New().
			SetBaseURL(r.config.BaseURL).
			SetTimeout(r.config.Timeout).
			SetHeader("Authorization", fmt.Sprintf("Bearer %s", r.config.APIKey)).
			SetHeader("Content-Type", "application/json")
	})
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Suggest returns the candidate closest to text in embedding space, or an
// empty string when nothing clears the similarity floor. Every failure
// mode surfaces as an error for the caller to swallow; the normalizer
// treats errors as "semantic unavailable" and falls through.
func (r *Remote) Suggest(ctx context.Context, text string, candidates []string) (string, error) {
	if text == "" || len(candidates) == 0 {
		return "", nil
	}
	r.init()

	input := make([]string, 0, len(candidates)+1)
	input = append(input, text)
	input = append(input, candidates...)

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(embeddingRequest{
			Model: r.config.Model,
			Input: input,
		}).
		Post("/embeddings")
	if err != nil {
		return "", fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("embedding backend returned status %d", resp.StatusCode())
	}

	var parsed embeddingResponse
	if err := common.ParseJSONBytes(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse embedding response: %w", err)
	}
	if len(parsed.Data) != len(input) {
		return "", fmt.Errorf("embedding backend returned %d vectors for %d inputs", len(parsed.Data), len(input))
	}

	query := parsed.Data[0].Embedding
	best := ""
	bestScore := minScore
	for i, candidate := range candidates {
		score := cosine(query, parsed.Data[i+1].Embedding)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if best != "" {
		common.LogDebug("semantic suggestion",
			zap.String("input", text),
			zap.String("suggestion", best),
			zap.Float64("score", bestScore),
		)
	}
	return best, nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
