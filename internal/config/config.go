package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Dashboard DashboardConfig
}

// ServerConfig holds local HTTP server configuration.
type ServerConfig struct {
	Host     string
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds the embedded SQLite store configuration.
type DatabaseConfig struct {
	Path          string
	BusyTimeoutMS int
	JournalMode   string
	MaxOpenConns  int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// DashboardConfig holds the category lists tallied on the dashboard.
type DashboardConfig struct {
	LandUses []string
}

// DefaultLandUses are the land-use categories the dashboard reports when none are configured.
var DefaultLandUses = []string{
	"Residential",
	"Commercial",
	"Public Institution",
	"Industrial",
	"Agricultural",
}

var validJournalModes = map[string]bool{
	"DELETE":   true,
	"TRUNCATE": true,
	"PERSIST":  true,
	"MEMORY":   true,
	"WAL":      true,
	"OFF":      true,
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) and
// environment variables, with environment values taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PATH", "kadgis_enumeration.db")
	v.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)
	v.SetDefault("DB_JOURNAL_MODE", "WAL")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006")
	v.SetDefault("DASHBOARD_LAND_USES", strings.Join(DefaultLandUses, ","))

	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("HOST"),
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Path:          v.GetString("DB_PATH"),
			BusyTimeoutMS: v.GetInt("DB_BUSY_TIMEOUT_MS"),
			JournalMode:   strings.ToUpper(v.GetString("DB_JOURNAL_MODE")),
			MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		CORS: CORSConfig{
			Origins: parseList(v.GetString("CORS_ORIGINS")),
		},
		Dashboard: DashboardConfig{
			LandUses: parseList(v.GetString("DASHBOARD_LAND_USES")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("DB_BUSY_TIMEOUT_MS must be non-negative")
	}
	if !validJournalModes[c.Database.JournalMode] {
		return fmt.Errorf("DB_JOURNAL_MODE %q is not a SQLite journal mode", c.Database.JournalMode)
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if len(c.Dashboard.LandUses) == 0 {
		return fmt.Errorf("DASHBOARD_LAND_USES must list at least one category")
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// parseList splits a comma-separated string into a trimmed slice, dropping empty entries.
func parseList(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
