// Package config handles configuration for the bookshelf server: defaults,
// an optional JSON file, a dotenv file plus the process environment, and
// finally command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds runtime settings for the bookshelf server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (modernc) or "pgx" (PostgreSQL) and its DSN.
//   - SecretKey / Algorithm: HMAC secret and JWT signing algorithm. The secret is never logged.
//   - AccessTokenValidityDuration: lifetime of tokens issued by /login.
//   - PasswordHashCost: bcrypt cost factor.
//   - LogLevel, GinMode, CORSAllowedOrigins, ShutdownTimeout: process plumbing.
type Config struct {
	EndpointAddr                string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	Algorithm                   string
	AccessTokenValidityDuration time.Duration
	PasswordHashCost            int
	LogLevel                    string
	GinMode                     string
	CORSAllowedOrigins          string
	ShutdownTimeout             time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "file:books.db"
	c.SecretKey = "secretKey"
	c.Algorithm = "HS256"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.PasswordHashCost = bcrypt.DefaultCost
	c.LogLevel = "info"
	c.GinMode = "release"
	c.CORSAllowedOrigins = ""
	c.ShutdownTimeout = 10 * time.Second
}

// Origins splits CORSAllowedOrigins on commas, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.EndpointAddr == "" {
		errs = append(errs, errors.New("endpoint address is empty"))
	}
	if c.DatabaseDriver != DriverSQLite && c.DatabaseDriver != DriverPostgres {
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("unsupported signing algorithm %q", c.Algorithm))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unsupported gin mode %q", c.GinMode))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("password hash cost %d out of range [%d, %d]",
			c.PasswordHashCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	files := flagx.ConfigFileFlags(args)

	if err := parseJson(cfg, files.JSON); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, files.Env); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
