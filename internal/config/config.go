// Package config handles runtime configuration for the API server:
// defaults first, then environment variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings for the device manager API.
type Config struct {
	// Addr is the HTTP bind address.
	Addr string
	// DatabaseDSN is the PostgreSQL DSN (pgx).
	DatabaseDSN string

	// JWT settings. Key is the HMAC secret for HS512 signing; Issuer and
	// Audience must match on validation; TokenLifetime bounds the validity
	// window of issued session tokens.
	JWTKey        string
	JWTIssuer     string
	JWTAudience   string
	TokenLifetime time.Duration

	ShutdownTimeout time.Duration
}

const (
	envAddr        = "DEVMAN_ADDR"
	envDSN         = "DEVMAN_PG_DSN"
	envJWTKey      = "DEVMAN_JWT_KEY"
	envJWTIssuer   = "DEVMAN_JWT_ISSUER"
	envJWTAudience = "DEVMAN_JWT_AUDIENCE"
	envTokenTTL    = "DEVMAN_TOKEN_TTL"
)

func defaults() Config {
	return Config{
		Addr:            ":8080",
		JWTIssuer:       "devicemanager",
		JWTAudience:     "devicemanager-api",
		TokenLifetime:   30 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config from defaults, environment and flags.
func Load(args []string) (Config, error) {
	cfg := defaults()
	cfg.applyEnv()
	if err := cfg.applyFlags(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(envAddr)); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(envDSN)); v != "" {
		c.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv(envJWTKey)); v != "" {
		c.JWTKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envJWTIssuer)); v != "" {
		c.JWTIssuer = v
	}
	if v := strings.TrimSpace(os.Getenv(envJWTAudience)); v != "" {
		c.JWTAudience = v
	}
	if v := strings.TrimSpace(os.Getenv(envTokenTTL)); v != "" {
		if d, err := parseTTL(v); err == nil {
			c.TokenLifetime = d
		}
	}
}

func (c *Config) applyFlags(args []string) error {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP bind address")
	fs.StringVar(&c.DatabaseDSN, "dsn", c.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&c.JWTIssuer, "jwt-issuer", c.JWTIssuer, "JWT issuer claim")
	fs.StringVar(&c.JWTAudience, "jwt-audience", c.JWTAudience, "JWT audience claim")
	fs.DurationVar(&c.TokenLifetime, "token-ttl", c.TokenLifetime, "session token lifetime")
	return fs.Parse(args)
}

// Validate checks settings the server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return errors.New("config: database DSN is required (set " + envDSN + ")")
	}
	if strings.TrimSpace(c.JWTKey) == "" {
		return errors.New("config: JWT signing key is required (set " + envJWTKey + ")")
	}
	if c.TokenLifetime <= 0 {
		return errors.New("config: token lifetime must be positive")
	}
	return nil
}

// parseTTL accepts either a Go duration string or a bare number of minutes,
// matching how deployments historically configured ExpiresInMinutes.
func parseTTL(v string) (time.Duration, error) {
	if mins, err := strconv.Atoi(v); err == nil {
		if mins <= 0 {
			return 0, errors.New("ttl must be positive")
		}
		return time.Duration(mins) * time.Minute, nil
	}
	return time.ParseDuration(v)
}
