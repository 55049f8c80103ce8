package recipe

import (
	"net/http"

	"noshnurture/internal/core/ingredient"
	recipeService "noshnurture/internal/core/recipe"
	"noshnurture/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchRequest classifies one ingredient list against an explicit
// available set.
type MatchRequest struct {
	Ingredients []common.RecipeIngredient `json:"ingredients" binding:"required"`
	Available   []string                  `json:"available" binding:"required"`
	Prefer      string                    `json:"prefer,omitempty"`
}

// SuggestRequest ranks candidate recipes against raw inventory.
type SuggestRequest struct {
	Records []common.InventoryRecord `json:"records" binding:"required"`
	Recipes []common.Recipe          `json:"recipes" binding:"required"`
	// Limit caps the returned suggestions; zero means the server default.
	Limit int `json:"limit,omitempty"`
	// ExpiringWithinDays widens or narrows the uses-expiring window.
	ExpiringWithinDays int    `json:"expiring_within_days,omitempty"`
	Prefer             string `json:"prefer,omitempty"`
}

// Handler serves recipe matching and suggestion endpoints.
type Handler struct {
	suggestionService *recipeService.SuggestionService
}

// NewHandler creates a recipe Handler.
func NewHandler(s *recipeService.SuggestionService) *Handler {
	return &Handler{suggestionService: s}
}

// HandleMatch classifies the request's ingredients against the given
// available strings.
func (h *Handler) HandleMatch(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid match request",
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
	result := h.suggestionService.MatchAgainst(c.Request.Context(), req.Ingredients, req.Available, mode)

	common.LogInfo("matched ingredient list",
		zap.String("request_id", requestID),
		zap.Int("total", result.TotalCount),
		zap.Int("matched", result.MatchedCount),
		zap.Bool("is_exact_now", result.IsExactNow),
	)

	c.JSON(http.StatusOK, result)
}

// HandleSuggest canonicalizes the inventory, ranks the candidate recipes
// by availability and returns the top suggestions.
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("invalid suggest request",
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

	suggestions := h.suggestionService.GenerateSuggestions(c.Request.Context(), req.Records, req.Recipes, recipeService.SuggestOptions{
		Limit:              req.Limit,
		Mode:               ingredient.ParseMode(req.Prefer),
		ExpiringWithinDays: req.ExpiringWithinDays,
	})

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
