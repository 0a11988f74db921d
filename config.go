package main

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, read once from the environment in
// main. A .env file is loaded first via godotenv when present.
type Config struct {
	Port        string
	Environment string

	DBURL    string
	RedisURL string

	JWTSecret string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMModel      string
	LLMTimeout    time.Duration

	// Hour of day (server-local) the daily report job fires.
	ReportHour int
}

func loadConfig() Config {
	return Config{
		Port:        envOr("PORT", "8000"),
		Environment: envOr("APP_ENV", "development"),

		DBURL:    os.Getenv("DB_URL"),
		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		LLMModel:      envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:    time.Duration(envOrInt("LLM_TIMEOUT_SEC", 30)) * time.Second,

		ReportHour: envOrInt("REPORT_HOUR", 21),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
