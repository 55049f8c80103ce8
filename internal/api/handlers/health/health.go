package health

import (
	"net/http"
	"runtime"
	"time"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Runtime    map[string]interface{} `json:"runtime"`
	Vocabulary *VocabularyStatus      `json:"vocabulary,omitempty"`
}

// VocabularyStatus reports the loaded matching vocabulary.
type VocabularyStatus struct {
	Canonicals      int  `json:"canonicals"`
	SemanticEnabled bool `json:"semantic_enabled"`
	CacheEnabled    bool `json:"cache_enabled"`
}

// HealthCheck reports service status, runtime stats and the vocabulary
// size.
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if size, exists := c.Get("vocabulary_size"); exists {
		if n, ok := size.(int); ok {
			response.Vocabulary = &VocabularyStatus{
				Canonicals:      n,
				SemanticEnabled: config.Semantic.Enabled,
				CacheEnabled:    config.Cache.Enabled,
			}
		}
	}

	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck reports whether the service can take traffic.
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck reports whether the process is alive.
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
