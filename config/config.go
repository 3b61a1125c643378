package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	DefaultCSVURL = "https://raw.githubusercontent.com/antoniusawe/folium/main/request-pak-anto-agt%20to%20sep.csv"
)

type Config struct {
	Environment string
	ServerPort  string

	DataSource   string
	CSVURL       string
	FetchTimeout time.Duration

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBTable    string

	JWTSecret        string
	AuthUsername     string
	AuthPasswordHash string
	TokenTTL         time.Duration

	AllowedOrigins []string
}

// AuthEnabled reports whether the dashboard sits behind a login.
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*Config, error) {
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := getEnvDuration("FETCH_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		ServerPort:       getEnv("PORT", "8080"),
		DataSource:       strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		CSVURL:           getEnv("CSV_URL", DefaultCSVURL),
		FetchTimeout:     fetchTimeout,
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           dbPort,
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", "absen"),
		DBTable:          getEnv("DB_TABLE", "absen_records"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AuthUsername:     getEnv("AUTH_USERNAME", "admin"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		TokenTTL:         tokenTTL,
		AllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.DataSource {
	case SourceCSV:
		if cfg.CSVURL == "" {
			return nil, fmt.Errorf("CSV_URL must not be empty")
		}
	case SourcePostgres:
		if cfg.DBPassword == "" {
			return nil, fmt.Errorf("DB_PASSWORD environment variable is required for the postgres source")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}

	if cfg.AuthEnabled() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required when AUTH_PASSWORD_HASH is set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
