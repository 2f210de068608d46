// Package config loads runtime settings for the server and the terminal
// client from the environment, with an optional .env file.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for both the server and the client.
type Config struct {
	Host    string
	Port    int
	LogFile string
	Debug   bool

	// HistoryDir is where finished matches are recorded. Empty disables
	// recording.
	HistoryDir string

	// ServerURL is the websocket endpoint the client connects to.
	ServerURL string

	NgrokEnabled   bool
	NgrokAuthToken string
	NgrokDomain    string
}

// Load reads .env (when present) and the environment, applying defaults.
// Command-line flags may override individual fields afterwards.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	return &Config{
		Host:    getEnv("HOST", "localhost"),
		Port:    getEnvInt("PORT", 8080),
		LogFile: os.Getenv("LOG_FILE"),
		Debug:   getEnvBool("DEBUG", false),

		HistoryDir: getEnv("HISTORY_DIR", "matches"),

		ServerURL: getEnv("SERVER_URL", "ws://localhost:8080/connect"),

		NgrokEnabled:   getEnvBool("NGROK_ENABLED", false),
		NgrokAuthToken: firstEnv("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		NgrokDomain:    os.Getenv("NGROK_DOMAIN"),
	}
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %v", key, err)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return fallback
	}
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
