// Package config loads all service configuration from the environment once at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Alpaca holds configuration for the Alpaca market-data provider.
type Alpaca struct {
	KeyID     string        // API key id, sent as APCA-API-KEY-ID
	SecretKey string        // API secret, sent as APCA-API-SECRET-KEY
	DataBase  string        // Base URL of the market-data API (e.g. "https://data.alpaca.markets")
	TradeBase string        // Base URL of the trading/reference API (e.g. "https://paper-api.alpaca.markets")
	Feed      string        // Data feed/licensing tier, part of every cache key
	Timeout   time.Duration // HTTP request timeout
}

// Config is the full service configuration. It is read once in main and passed
// down by value; nothing reads the environment after startup.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	CORSOrigins []string
	Alpaca      Alpaca
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present (it never overrides real env vars).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
		Alpaca: Alpaca{
			KeyID:     os.Getenv("ALPACA_KEY_ID"),
			SecretKey: os.Getenv("ALPACA_SECRET_KEY"),
			DataBase:  getenv("ALPACA_DATA_BASE", "https://data.alpaca.markets"),
			TradeBase: getenv("ALPACA_TRADE_BASE", "https://paper-api.alpaca.markets"),
			Feed:      getenv("ALPACA_FEED", "delayed_sip"),
			Timeout:   10 * time.Second,
		},
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// getenv returns the value of key, or fallback when unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated value, trimming whitespace and dropping empties.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
