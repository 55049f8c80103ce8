package pantry

import (
	"net/http"

	"noshnurture/internal/core/ingredient"
	pantryService "noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NormalizeRequest canonicalizes a batch of free-text ingredient names.
type NormalizeRequest struct {
	Items []string `json:"items" binding:"required"`
	// Prefer selects the resolution mode: "fuzzy" (default) or "semantic".
	Prefer string `json:"prefer,omitempty"`
}

// NormalizedItem is one resolved entry of a normalize batch.
type NormalizedItem struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
	// InVocabulary reports whether Canonical is a known vocabulary member
	// rather than a cleaned fallback of the input.
	InVocabulary bool `json:"in_vocabulary"`
}

// AvailableRequest builds the available-ingredient set from inventory.
type AvailableRequest struct {
	Records []common.InventoryRecord `json:"records" binding:"required"`
	Prefer  string                   `json:"prefer,omitempty"`
}

// TagsRequest annotates inventory records with canonical: tags.
type TagsRequest struct {
	Records []common.InventoryRecord `json:"records" binding:"required"`
	Prefer  string                   `json:"prefer,omitempty"`
}

// Handler serves pantry normalization and canonicalization endpoints.
type Handler struct {
	normalizer    *ingredient.Normalizer
	canonicalizer *pantryService.Canonicalizer
}

// NewHandler creates a pantry Handler.
func NewHandler(n *ingredient.Normalizer, c *pantryService.Canonicalizer) *Handler {
	return &Handler{
		normalizer:    n,
		canonicalizer: c,
	}
}

// HandleNormalize resolves each input string to its canonical ingredient.
func (h *Handler) HandleNormalize(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid normalize request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "invalid request format",
			Details: err.Error(),
		})
		return
	}

	mode := ingredient.ParseMode(req.Prefer)
	items := make([]NormalizedItem, 0, len(req.Items))
	for _, raw := range req.Items {
		canonical, inVocab := h.normalizer.Resolve(c.Request.Context(), raw, mode)
		items = append(items, NormalizedItem{
			Input:        raw,
			Canonical:    canonical,
			InVocabulary: inVocab,
		})
	}

	common.LogInfo("normalized ingredient batch",
		zap.String("request_id", requestID),
		zap.Int("items", len(items)),
		zap.String("mode", string(mode)),
	)

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// HandleAvailable resolves inventory records into the available set and
// the canonical expiry entries.
func (h *Handler) HandleAvailable(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req AvailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid available request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "invalid request format",
			Details: err.Error(),
		})
		return
	}

	mode := ingredient.ParseMode(req.Prefer)
	available, expiry := h.canonicalizer.BuildAvailableSet(c.Request.Context(), req.Records, mode)

	common.LogInfo("built available set",
		zap.String("request_id", requestID),
		zap.Int("records", len(req.Records)),
		zap.Int("available", available.Len()),
	)

	c.JSON(http.StatusOK, gin.H{
		"available":        available,
		"canonical_expiry": expiry,
	})
}

// HandleTags returns each record with a canonical: tag appended, so the
// caller can persist the resolution and skip normalization next time.
func (h *Handler) HandleTags(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid tags request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "invalid request format",
			Details: err.Error(),
		})
		return
	}

	mode := ingredient.ParseMode(req.Prefer)
	records := make([]common.InventoryRecord, len(req.Records))
	for i, rec := range req.Records {
		if !pantryService.HasCanonicalTag(rec.Tags) && rec.ProductName != "" {
			canonical := h.normalizer.NormalizeContext(c.Request.Context(), rec.ProductName, mode)
			rec.Tags = pantryService.EnsureCanonicalTag(rec.Tags, canonical)
		}
		records[i] = rec
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
