package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	healthHandler "noshnurture/internal/api/handlers/health"
	pantryHandler "noshnurture/internal/api/handlers/pantry"
	recipeHandler "noshnurture/internal/api/handlers/recipe"
	"noshnurture/internal/api/middleware"
	"noshnurture/internal/core/cache"
	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/core/recipe"
	"noshnurture/internal/core/semantic"
	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	timeoutDuration = 30 * time.Second
	// Request body limit (4MB); inventory and recipe batches are JSON text.
	maxBodySize = 4 << 20
)

// SetupRouter builds the service graph and registers all routes.
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("semantic_enabled", cfg.Semantic.Enabled),
		zap.Int("matching_workers", cfg.Matching.Workers),
		zap.Duration("timeout", timeoutDuration),
	)

	vocab, err := ingredient.Load(cfg.Vocabulary.CanonicalPath, cfg.Vocabulary.SynonymPath)
	if err != nil {
		if common.IsValidationError(err) {
			common.LogError("Vocabulary data is structurally invalid", zap.Error(err))
		} else {
			common.LogError("Failed to read vocabulary files", zap.Error(err))
		}
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	var matcher ingredient.SemanticMatcher = semantic.Noop{}
	if cfg.Semantic.Enabled {
		matcher = semantic.NewRemote(cfg.Semantic)
	}

	normalizer := ingredient.NewNormalizer(vocab, matcher, store, cfg.Matching.MaxFuzzyDistance)
	canonicalizer := pantry.NewCanonicalizer(normalizer, cfg.Matching.MinTokenLength)
	recipeMatcher := recipe.NewMatcher(normalizer, cfg.Matching.MinSubstringRatio)
	suggestionSvc := recipe.NewSuggestionService(canonicalizer, recipeMatcher, cfg.Matching.Workers, cfg.Matching.DefaultLimit)

	common.LogInfo("Services initialized successfully",
		zap.Int("vocabulary_size", vocab.Len()),
		zap.String("environment", cfg.App.Env),
	)

	// Per-request timeout plus context injection for the health handler.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("vocabulary_size", vocab.Len())

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	{
		pantryH := pantryHandler.NewHandler(normalizer, canonicalizer)
		recipeH := recipeHandler.NewHandler(suggestionSvc)

		ingredientGroup := api.Group("/ingredient")
		{
			ingredientGroup.POST("/normalize", pantryH.HandleNormalize)
		}

		pantryGroup := api.Group("/pantry")
		{
			pantryGroup.POST("/available", pantryH.HandleAvailable)
			pantryGroup.POST("/tags", pantryH.HandleTags)
		}

		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/match", recipeH.HandleMatch)
			recipeGroup.POST("/suggest", recipeH.HandleSuggest)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int("vocabulary_size", vocab.Len()),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
