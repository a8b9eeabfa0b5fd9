package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is read from the environment. PricingXLSX is ignored when
// PricingDatabaseURL is set.
type Config struct {
	HTTPAddr           string
	PricingXLSX        string
	PricingDatabaseURL string
	WaivedCity         string
	PDFFontDir         string
	LogLevel           logrus.Level
}

// Load reads the environment, after filling it from .env when that file
// exists. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	level, err := logrus.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return Config{
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		PricingXLSX:        env("PRICING_XLSX", "Planilha de preços.xlsx"),
		PricingDatabaseURL: env("PRICING_DATABASE_URL", ""),
		WaivedCity:         env("WAIVED_CITY", "Parelhas"),
		PDFFontDir:         env("PDF_FONT_DIR", ""),
		LogLevel:           level,
	}, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
