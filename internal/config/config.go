package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr     string  `envconfig:"LISTEN_ADDR" default:":443"`
	TLSCert        string  `envconfig:"TLS_CERT" default:"server.crt"`
	TLSKey         string  `envconfig:"TLS_KEY" default:"server.key"`
	DatabaseURL    string  `envconfig:"DATABASE_URL" default:"user=postgres dbname=postgres password=password sslmode=disable"`
	TokenKey       string  `envconfig:"TOKEN_KEY" required:"true"`
	MaterialFile   string  `envconfig:"MATERIAL_FILE" default:"inputs/material.yaml"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool    `envconfig:"LOG_DEVELOPMENT" default:"false"`
	RateLimit      float64 `envconfig:"RATE_LIMIT" default:"5"`
	RateBurst      int     `envconfig:"RATE_BURST" default:"10"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("rate limit and burst must be positive")
	}
	return &cfg, nil
}
