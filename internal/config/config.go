package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	YouTube YouTubeConfig
	Models  ModelsConfig
	Redis   RedisConfig
	Server  ServerConfig
	Logging LoggingConfig
}

type YouTubeConfig struct {
	APIKey string
}

type ModelsConfig struct {
	LinearModelPath      string
	VectorizerPath       string
	TokenizerPath        string
	TransformerModelPath string
	Threshold            float64
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Models: ModelsConfig{
			LinearModelPath:      getEnv("LINEAR_MODEL_PATH", "models/lr_threshold_optimized.json"),
			VectorizerPath:       getEnv("VECTORIZER_PATH", "models/tfidf_vectorizer.json"),
			TokenizerPath:        getEnv("TOKENIZER_PATH", "models/tokenizer.json"),
			TransformerModelPath: getEnv("TRANSFORMER_MODEL_PATH", "models/sequence_classifier.json"),
			Threshold:            getEnvFloat("CLASSIFIER_THRESHOLD", 0.3),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8001),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Models.LinearModelPath == "" {
		return fmt.Errorf("LINEAR_MODEL_PATH is required")
	}
	if c.Models.VectorizerPath == "" {
		return fmt.Errorf("VECTORIZER_PATH is required")
	}
	if c.Models.TokenizerPath == "" {
		return fmt.Errorf("TOKENIZER_PATH is required")
	}
	if c.Models.TransformerModelPath == "" {
		return fmt.Errorf("TRANSFORMER_MODEL_PATH is required")
	}
	if c.Models.Threshold <= 0 || c.Models.Threshold >= 1 {
		return fmt.Errorf("CLASSIFIER_THRESHOLD must be in (0, 1), got %v", c.Models.Threshold)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port, got %d", c.Server.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
