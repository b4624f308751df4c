package config

import (
	"log"
	"os"
)

type Config struct {
	Env      string
	Port     string
	MongoURI string
	DBName   string
	// JWTSecret signs every issued token. Loaded once here, never rotated
	// within a run.
	JWTSecret string
}

func Load() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		MongoURI:  mustGetEnv("MONGODB_URI"),
		DBName:    getEnv("DB_NAME", "TodoApp"),
		JWTSecret: mustGetEnv("JWT_SECRET"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}
