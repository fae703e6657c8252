package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds the Postgres connection settings. Namespace is the
// schema that per-organization document collections live in.
type DatabaseConfig struct {
	URL       string
	Namespace string
}

// TokenConfig holds the signing parameters for issued access tokens.
type TokenConfig struct {
	SecretKey string
	Algorithm string
	TTL       time.Duration
}

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Token       TokenConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from the environment, with an optional .env file
// for local development. It fails fast, reporting all missing variables at
// once.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	require := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	databaseURL := require("DATABASE_URL")
	secretKey := require("JWT_SECRET_KEY")

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	namespace := os.Getenv("STORAGE_NAMESPACE")
	if namespace == "" {
		namespace = "tenants"
	}

	algorithm := os.Getenv("JWT_ALGORITHM")
	if algorithm == "" {
		algorithm = "HS256"
	}
	if algorithm != "HS256" && algorithm != "HS384" && algorithm != "HS512" {
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", algorithm)
	}

	ttlMinutes := 30
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", v)
		}
		ttlMinutes = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Port:        port,
		Environment: env,
		Database: DatabaseConfig{
			URL:       databaseURL,
			Namespace: namespace,
		},
		Token: TokenConfig{
			SecretKey: secretKey,
			Algorithm: algorithm,
			TTL:       time.Duration(ttlMinutes) * time.Minute,
		},
	}, nil
}
