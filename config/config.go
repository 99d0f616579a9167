package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppPort      int
	QdrantHost   string
	QdrantPort   int
	GeminiAPIKey string
	BoltDBPath   string
	TunablesPath string
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(getEnv("APP_PORT"))
	if err != nil {
		return nil, err
	}
	qdrantPort, err := strconv.Atoi(getEnv("QDRANT_PORT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:      appPort,
		QdrantHost:   getEnv("QDRANT_HOST"),
		QdrantPort:   qdrantPort,
		GeminiAPIKey: getEnv("GEMINI_API_KEY"),
		BoltDBPath:   getEnvDefault("BOLT_DB_PATH", "data/projects.db"),
		TunablesPath: os.Getenv("TUNABLES_PATH"),
	}, nil
}

func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func getEnvDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
