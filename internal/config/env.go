package config

import (
	"os"
	"strconv"
	"time"
)

// ProxyConfig configures the story proxy. Everything comes from the
// environment; GeminiAPIKey is the only secret in the system.
type ProxyConfig struct {
	Port            string
	Environment     string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiVersion   string
	GeminiBaseURL   string
	Temperature     float64
	UpstreamTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	AdvertiseMDNS   bool
}

// LoadProxy reads the proxy configuration from the environment.
func LoadProxy() *ProxyConfig {
	return &ProxyConfig{
		Port:            getEnv("PORT", "8888"),
		Environment:     getEnv("ENV", "development"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		GeminiVersion:   getEnv("GEMINI_API_VERSION", "v1"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		Temperature:     getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),
		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT", 30)) * time.Second,
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 10)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 60)) * time.Second,
		AdvertiseMDNS:   getEnvAsBool("MDNS_ADVERTISE", true),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
