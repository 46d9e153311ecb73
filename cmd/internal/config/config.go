package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

var defaultOrigins = []string{
	"http://localhost:8000",
	"http://127.0.0.1:8000",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// DefaultSecretKey is only meant for local runs. Tokens signed with it can be
// forged by anyone who has read this file.
const DefaultSecretKey = "sua_chave_secreta_super_segura_aqui"

type Config struct {
	DatabaseURL string
	Port        string
	LogLevel    log.Lvl
	CORSOrigins []string
	// TrustedProxies lists the networks allowed to set X-Forwarded-For.
	// Empty means the client IP is always the peer address.
	TrustedProxies []*net.IPNet
	Auth           AuthConfig
	RateLimit      RateLimitConfig
}

type AuthConfig struct {
	SecretKey        string
	Algorithm        string
	TokenExpireHours int
}

// RateLimitConfig applies per client IP to the credential endpoints.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config out of a lookup function, so tests don't need to
// touch the real environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL: getenv("DATABASE_URL"),
		Port:        valueOr(getenv("PORT"), "6060"),
		LogLevel:    parseLevel(getenv("LOG_LEVEL")),
		CORSOrigins: defaultOrigins,
		Auth: AuthConfig{
			SecretKey:        valueOr(getenv("SECRET_KEY"), DefaultSecretKey),
			Algorithm:        valueOr(getenv("ALGORITHM"), "HS256"),
			TokenExpireHours: 24,
		},
		RateLimit: RateLimitConfig{PerSecond: 5, Burst: 10},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	if cfg.Auth.SecretKey == DefaultSecretKey {
		log.Warn("SECRET_KEY is not set, signing tokens with the built-in development key")
	}

	if raw := getenv("ACCESS_TOKEN_EXPIRE_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_HOURS must be a positive integer, got %q", raw)
		}
		cfg.Auth.TokenExpireHours = hours
	}

	if raw := getenv("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = splitList(raw)
	}

	for _, cidr := range splitList(getenv("TRUSTED_PROXIES")) {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES entry %q is not a CIDR: %w", cidr, err)
		}
		cfg.TrustedProxies = append(cfg.TrustedProxies, ipnet)
	}

	if raw := getenv("LOGIN_RATE_LIMIT"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return nil, fmt.Errorf("LOGIN_RATE_LIMIT must be a positive number, got %q", raw)
		}
		cfg.RateLimit.PerSecond = rps
	}

	if raw := getenv("LOGIN_RATE_BURST"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("LOGIN_RATE_BURST must be a positive integer, got %q", raw)
		}
		cfg.RateLimit.Burst = burst
	}

	return cfg, nil
}

func parseLevel(raw string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
