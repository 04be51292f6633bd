package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. Credential acquisition is deliberately this simple: the
// password arrives through the environment, injected by whatever secret
// manager runs the process.
type Config struct {
	DBHostname string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string
	DBSSLMode  string

	PriceTable string

	MetricsAddr string

	TeslaBaseURL  string
	RivianBaseURL string
	LucidBaseURL  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DBHostname: getEnv("DB_HOSTNAME", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUsername: getEnv("DB_USERNAME", "evprice"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBDatabase: getEnv("DB_DATABASE", "evprice"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		PriceTable: getEnv("DB_PRICE_TABLE", "ev_prices"),

		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),

		TeslaBaseURL:  getEnv("TESLA_BASE_URL", "https://www.tesla.com"),
		RivianBaseURL: getEnv("RIVIAN_BASE_URL", "https://www.rivian.com"),
		LucidBaseURL:  getEnv("LUCID_BASE_URL", "https://www.lucidmotors.com"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHostname +
		" port=" + c.DBPort +
		" user=" + c.DBUsername +
		" password=" + c.DBPassword +
		" dbname=" + c.DBDatabase +
		" sslmode=" + c.DBSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
