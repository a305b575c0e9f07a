package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	Port              string
	DeckPath          string
	BoardRows         int
	BoardCols         int
	MaxPlayersPerRoom int
	AllowedOrigins    []string
	DatabaseURL       string
	LogLevel          string
	LogFormat         string
	WSRateLimit       float64
	WSRateBurst       int
}

const (
	defaultPort          = "3000"
	defaultBoardSize     = 4
	defaultAllowedOrigin = "*"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultWSRateLimit   = 10
	defaultWSRateBurst   = 20
)

// Load reads .env files (if any) and then the process environment.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("[config.Load] could not read .env")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	return Config{
		Port:              getEnv("PORT", defaultPort),
		DeckPath:          os.Getenv("DECK_PATH"),
		BoardRows:         getInt("BOARD_ROWS", defaultBoardSize, 1),
		BoardCols:         getInt("BOARD_COLS", defaultBoardSize, 1),
		MaxPlayersPerRoom: getInt("MAX_PLAYERS_PER_ROOM", 0, 0),
		AllowedOrigins:    parseAllowedOrigins(getEnv("ALLOWED_ORIGINS", defaultAllowedOrigin)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		WSRateLimit:       getFloat("WS_RATE_LIMIT", defaultWSRateLimit),
		WSRateBurst:       getInt("WS_RATE_BURST", defaultWSRateBurst, 1),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// getInt falls back on missing, unparsable or below-min values.
func getInt(key string, fallback, min int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		log.Warn().Str("key", key).Str("value", raw).Int("default", fallback).Msg("[config.Load] ignoring bad value")
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Warn().Str("key", key).Str("value", raw).Float64("default", fallback).Msg("[config.Load] ignoring bad value")
		return fallback
	}
	return v
}

func parseAllowedOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{defaultAllowedOrigin}
	}
	return origins
}
