package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
)

type Config struct {
	// Server
	Host string
	Port string

	// Backend API
	APIBaseURL         string
	HTTPTimeoutSeconds int

	// Session persistence
	SessionFile string

	// CORS
	CORSOrigins []string

	// Dashboard
	DashboardRefreshSeconds int
}

func Load() *Config {
	cfg := &Config{
		Host: getEnv("CONSOLE_HOST", "0.0.0.0"),
		Port: getEnv("CONSOLE_PORT", "8090"),

		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8000/api"),
		HTTPTimeoutSeconds: getEnvAsInt("HTTP_TIMEOUT_SECONDS", 10),

		SessionFile: getEnv("SESSION_FILE", ".session.json"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DashboardRefreshSeconds: getEnvAsInt("DASHBOARD_REFRESH_SECONDS", 30),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("Cannot parse %s as int", key)
		}
		return intValue
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
