package config

import (
	"os"
	"strconv"
)

// DefaultTaxRate applies when TAX_RATE is unset.
const DefaultTaxRate = 0.0825

type Config struct {
	Port           string
	DBDriver       string // mysql or sqlite
	DBDSN          string
	TaxRate        float64
	JWTSecret      string
	PrintBrokerURL string // optional AMQP url; empty disables the broker
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "pos.db"),
		TaxRate:        DefaultTaxRate,
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		PrintBrokerURL: os.Getenv("PRINT_BROKER_URL"),
	}
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate >= 0 {
			cfg.TaxRate = rate
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
