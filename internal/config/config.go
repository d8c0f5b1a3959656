package config

import (
	"os"
	"strconv"
	"time"

	"ideaforge/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	AI       AIConfig       `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Engine   EngineConfig   `validate:"required"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string `validate:"required"`
	SSLMode string
}

// AIConfig holds generative and embedding service settings
type AIConfig struct {
	OpenAIKey      string `validate:"required"`
	ChatModel      string `validate:"required"`
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	Timeout        time.Duration
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Port string `validate:"required"`
}

// EngineConfig holds the iteration-loop settings
type EngineConfig struct {
	Iterations       int
	PerStrategy      int     // drafts requested per strategy
	MinNovelty       float64 // frontier admission threshold
	MinUtility       float64
	MaxFrontierSize  int
	ScoreConcurrency int64 // semaphore bound for batch scoring
	CorpusFile       string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	config.Server = *loadServerConfig()
	config.Engine = *loadEngineConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func loadAIConfig() (*AIConfig, error) {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		return nil, errors.ConfigInvalid("OPENAI_API_KEY is required")
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4.1-mini" // default
	}

	return &AIConfig{
		OpenAIKey:      openaiKey,
		ChatModel:      model,
		EmbeddingModel: getEnvOrDefault("EMBEDDING_MODEL", "text-embedding-3-small"),
		Temperature:    getEnvFloatOrDefault("TEMPERATURE", 0.7),
		MaxTokens:      getEnvIntOrDefault("MAX_TOKENS", 2000),
		Timeout:        getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadEngineConfig() *EngineConfig {
	return &EngineConfig{
		Iterations:       getEnvIntOrDefault("ENGINE_ITERATIONS", 3),
		PerStrategy:      getEnvIntOrDefault("ENGINE_PER_STRATEGY", 2),
		MinNovelty:       getEnvFloatOrDefault("ENGINE_MIN_NOVELTY", 0.2),
		MinUtility:       getEnvFloatOrDefault("ENGINE_MIN_UTILITY", 0.2),
		MaxFrontierSize:  getEnvIntOrDefault("ENGINE_MAX_FRONTIER", 10),
		ScoreConcurrency: int64(getEnvIntOrDefault("ENGINE_SCORE_CONCURRENCY", 4)),
		CorpusFile:       getEnvOrDefault("CORPUS_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.AI.OpenAIKey == "" {
		return errors.ConfigInvalid("OpenAI API key is required")
	}
	if config.Engine.MinNovelty < 0 || config.Engine.MinNovelty > 1 {
		return errors.ConfigInvalid("ENGINE_MIN_NOVELTY must be in [0,1]")
	}
	if config.Engine.MinUtility < 0 || config.Engine.MinUtility > 1 {
		return errors.ConfigInvalid("ENGINE_MIN_UTILITY must be in [0,1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
