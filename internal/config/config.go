// Package config carries all tunable settings for the API. Values come
// from the environment (a .env.local file is honored when present) on top
// of per-profile defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

type Config struct {
	Env  string
	Addr string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	BooksFile   string
	AuthorsFile string
	UsersFile   string

	DefaultBooksFile   string
	DefaultAuthorsFile string
	DefaultUsersFile   string

	BackupDir string

	MaxTitleLength       int
	MaxAuthorLength      int
	MaxGenreLength       int
	MaxDescriptionLength int
	MinYear              int

	MinUsernameLength int
	MaxUsernameLength int
	MinPasswordLength int
	MaxPasswordLength int
	MaxEmailLength    int

	DefaultPageSize int
	MaxPageSize     int

	MinSearchQueryLength int
	MaxSearchQueryLength int

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	BcryptCost int

	AllowedOrigins []string
}

// New builds the configuration for the given profile. Unknown profiles
// get the development defaults.
func New(env string) Config {
	cfg := Config{
		Env:  env,
		Addr: getEnv("APP_ADDR", ":8080"),

		JWTSecret:       getEnv("JWT_SECRET", "jwt-secret-key-change-in-production"),
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 30 * 24 * time.Hour,

		BooksFile:   getEnv("BOOKS_FILE", "books.json"),
		AuthorsFile: getEnv("AUTHORS_FILE", "authors.json"),
		UsersFile:   getEnv("USERS_FILE", "users.json"),

		DefaultBooksFile:   getEnv("DEFAULT_BOOKS_FILE", "data/default_books.json"),
		DefaultAuthorsFile: getEnv("DEFAULT_AUTHORS_FILE", "data/default_authors.json"),
		DefaultUsersFile:   getEnv("DEFAULT_USERS_FILE", "data/default_users.json"),

		BackupDir: getEnv("BACKUP_DIR", "backups"),

		MaxTitleLength:       200,
		MaxAuthorLength:      100,
		MaxGenreLength:       50,
		MaxDescriptionLength: 1000,
		MinYear:              1800,

		MinUsernameLength: 3,
		MaxUsernameLength: 50,
		MinPasswordLength: 8,
		MaxPasswordLength: 128,
		MaxEmailLength:    255,

		DefaultPageSize: 10,
		MaxPageSize:     100,

		MinSearchQueryLength: 2,
		MaxSearchQueryLength: 100,

		RateLimitEnabled: getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 100.0/3600.0), // 100 requests per hour
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 20),

		BcryptCost: bcrypt.DefaultCost,

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	switch env {
	case EnvDevelopment:
		// Longer tokens for development.
		cfg.AccessTokenTTL = 24 * time.Hour
	case EnvProduction:
		// Secret must come from the environment in production.
	case EnvTesting:
		cfg.AccessTokenTTL = 5 * time.Minute
		cfg.BooksFile = "test_books.json"
		cfg.AuthorsFile = "test_authors.json"
		cfg.UsersFile = "test_users.json"
		cfg.BcryptCost = bcrypt.MinCost
		cfg.RateLimitEnabled = false
	}

	return cfg
}

// MaxYear is computed, not stored: publication years up to next year are
// accepted.
func (c Config) MaxYear() int {
	return time.Now().Year() + 1
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
