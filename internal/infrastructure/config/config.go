package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Semantic   SemanticConfig   `mapstructure:"semantic"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	LogLevel   string           `mapstructure:"log_level"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// MatchingConfig tunes the normalization and ranking engine.
type MatchingConfig struct {
	// MaxFuzzyDistance is the largest edit distance the normalizer accepts
	// when snapping a candidate onto the vocabulary.
	MaxFuzzyDistance int `mapstructure:"max_fuzzy_distance"`
	// MinTokenLength is the shortest product-name token added to the
	// available set by the token fallback.
	MinTokenLength int `mapstructure:"min_token_length"`
	// MinSubstringRatio is the length-ratio gate for the substring match
	// fallback. Lowering it admits false positives ("powder" matching
	// "garlic powder"); raising it drops legitimate substring matches.
	MinSubstringRatio float64 `mapstructure:"min_substring_ratio"`
	// Workers bounds concurrent per-recipe matching during batch ranking.
	Workers int `mapstructure:"workers"`
	// DefaultLimit truncates ranked output for compact views.
	DefaultLimit int `mapstructure:"default_limit"`
}

// SemanticConfig configures the optional embedding-based fallback.
type SemanticConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// VocabularyConfig points at vocabulary/synonym data files. Empty paths
// fall back to the embedded defaults.
type VocabularyConfig struct {
	CanonicalPath string `mapstructure:"canonical_path"`
	SynonymPath   string `mapstructure:"synonym_path"`
}

// CacheConfig configures the normalization result cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig configures request rate limiting.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig loads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine in production; env vars still apply.
		_ = err
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("semantic.enabled", "SEMANTIC_ENABLED")
	viper.BindEnv("semantic.base_url", "SEMANTIC_BASE_URL")
	viper.BindEnv("semantic.api_key", "SEMANTIC_API_KEY")
	viper.BindEnv("semantic.model", "SEMANTIC_MODEL")
	viper.BindEnv("vocabulary.canonical_path", "VOCABULARY_CANONICAL_PATH")
	viper.BindEnv("vocabulary.synonym_path", "VOCABULARY_SYNONYM_PATH")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "noshnurture")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("matching.max_fuzzy_distance", 2)
	viper.SetDefault("matching.min_token_length", 3)
	viper.SetDefault("matching.min_substring_ratio", 0.6)
	viper.SetDefault("matching.workers", 5)
	viper.SetDefault("matching.default_limit", 6)

	viper.SetDefault("semantic.enabled", false)
	viper.SetDefault("semantic.base_url", "https://api.openai.com/v1")
	viper.SetDefault("semantic.model", "text-embedding-3-small")
	viper.SetDefault("semantic.timeout", "10s")

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Matching.MaxFuzzyDistance < 0 {
		return fmt.Errorf("invalid max fuzzy distance")
	}
	if config.Matching.MinSubstringRatio <= 0 || config.Matching.MinSubstringRatio > 1 {
		return fmt.Errorf("invalid min substring ratio")
	}
	if config.Matching.Workers <= 0 {
		return fmt.Errorf("invalid matching workers")
	}
	if config.Matching.DefaultLimit <= 0 {
		return fmt.Errorf("invalid default limit")
	}

	if config.Semantic.Enabled {
		if config.Semantic.BaseURL == "" {
			return fmt.Errorf("semantic base url is required when semantic matching is enabled")
		}
		if config.Semantic.Timeout <= 0 {
			return fmt.Errorf("invalid semantic timeout")
		}
	}

	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("invalid cache backend: %s", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	return nil
}
