// Package config loads the server configuration from the environment,
// with an optional .env file for development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs to start.
type Config struct {
	ListenAddr string

	// Database. Driver is "sqlite" or "postgres"; DSN is driver specific.
	DBDriver string
	DBDSN    string

	// Market-data provider.
	MarketDataKey     string
	MarketDataBaseURL string

	// LLM summarization.
	GeminiKey   string
	GeminiModel string

	// Optional services.
	RedisURL    string
	SendgridKey string
	InviteFrom  string // From address on family invite mails.

	// Session cookie.
	CookieName   string
	CookieSecure bool
	SessionDays  int

	// Signing secret for family invite tokens.
	InviteSecret string

	// Shared secret the mail provider sends on inbound-email posts.
	// Empty disables the check.
	HookToken string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not read .env: %v", err)
	}

	return &Config{
		ListenAddr:        getenv("LISTEN_ADDR", ":8080"),
		DBDriver:          getenv("DB_DRIVER", "sqlite"),
		DBDSN:             getenv("DB_DSN", "finview.db"),
		MarketDataKey:     os.Getenv("MARKETDATA_API_KEY"),
		MarketDataBaseURL: getenv("MARKETDATA_BASE_URL", ""),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getenv("GEMINI_MODEL", ""),
		RedisURL:          os.Getenv("REDIS_URL"),
		SendgridKey:       os.Getenv("SENDGRID_API_KEY"),
		InviteFrom:        getenv("INVITE_FROM", "no-reply@finview.app"),
		CookieName:        getenv("SESSION_COOKIE", "finview_session"),
		CookieSecure:      getenvBool("COOKIE_SECURE", false),
		SessionDays:       getenvInt("SESSION_DAYS", 30),
		InviteSecret:      getenv("INVITE_SECRET", "dev-only-insecure-secret"),
		HookToken:         os.Getenv("HOOK_TOKEN"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("warning: %s=%q is not a boolean, using %v", key, v, fallback)
		return fallback
	}
	return b
}
