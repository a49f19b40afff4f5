package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// envConfig lists the environment variables the server understands.
type envConfig struct {
	EndpointAddr             string `env:"ENDPOINT_ADDR" env-description:"HTTP bind address"`
	DatabaseDriver           string `env:"DATABASE_DRIVER" env-description:"sqlite or pgx"`
	DatabaseDSN              string `env:"DATABASE_DSN" env-description:"database DSN"`
	SecretKey                string `env:"SECRET_KEY" env-description:"JWT signing secret"`
	Algorithm                string `env:"ALGORITHM" env-description:"JWT signing algorithm (HS256, HS384, HS512)"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-description:"access token lifetime in minutes"`
	PasswordHashCost         int    `env:"PASSWORD_HASH_COST" env-description:"bcrypt cost"`
	LogLevel                 string `env:"LOG_LEVEL" env-description:"debug, info, warn or error"`
	GinMode                  string `env:"GIN_MODE" env-description:"debug, release or test"`
	CORSAllowedOrigins       string `env:"CORS_ALLOWED_ORIGINS" env-description:"comma-separated allowed origins"`
}

// parseEnv loads the dotenv file (envFile, or ./.env when present) into the
// process environment and overlays every set variable onto config.
// Variables already present in the environment win over the file.
func parseEnv(config *Config, envFile string) error {
	if err := loadDotenv(envFile); err != nil {
		return err
	}

	var e envConfig
	if err := cleanenv.ReadEnv(&e); err != nil {
		return err
	}

	setString(&config.EndpointAddr, e.EndpointAddr)
	setString(&config.DatabaseDriver, e.DatabaseDriver)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.Algorithm, e.Algorithm)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.GinMode, e.GinMode)
	setString(&config.CORSAllowedOrigins, e.CORSAllowedOrigins)
	if e.AccessTokenExpireMinutes != 0 {
		config.AccessTokenValidityDuration = time.Duration(e.AccessTokenExpireMinutes) * time.Minute
	}
	if e.PasswordHashCost != 0 {
		config.PasswordHashCost = e.PasswordHashCost
	}

	return nil
}

func loadDotenv(envFile string) error {
	if envFile != "" {
		return godotenv.Load(envFile)
	}
	if _, err := os.Stat(defaultEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(defaultEnvFile)
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	help, _ := cleanenv.GetDescription(&envConfig{}, nil)
	return help
}
