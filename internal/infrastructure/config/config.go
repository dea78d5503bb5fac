// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	threshold := cfg.Reconcile.FuzzyThreshold
//	uploadDir := cfg.Storage.UploadDir
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Reconcile     ReconcileConfig     `yaml:"reconcile"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	APIOrigin      string   `yaml:"api_origin"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ExtractionConfig holds document extraction API settings.
// Mode is "ADE" for the real extraction API or "STUB" for canned data.
type ExtractionConfig struct {
	Mode    string `yaml:"mode"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// ReconcileConfig holds reconciliation engine settings
type ReconcileConfig struct {
	FuzzyThreshold     int     `yaml:"fuzzy_threshold"`
	AllowedVariancePct float64 `yaml:"allowed_variance_pct"`
}

// StorageConfig holds database and upload storage configuration
type StorageConfig struct {
	DatabasePath    string `yaml:"database_path"`
	UploadDir       string `yaml:"upload_dir"`
	MaxUploadSizeMB int    `yaml:"max_upload_size_mb"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${ADE_API_KEY})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvInt("PORT", 8000),
			APIOrigin: getEnv("API_ORIGIN", "http://localhost:8000"),
		},
		Extraction: ExtractionConfig{
			Mode:    getEnv("APP_MODE", "ADE"),
			APIKey:  os.Getenv("VISION_AGENT_API_KEY"),
			BaseURL: getEnv("ADE_BASE_URL", "https://api.va.landing.ai/v1/tools"),
		},
		Reconcile: ReconcileConfig{
			FuzzyThreshold:     getEnvInt("FUZZY_MATCH_THRESHOLD", 85),
			AllowedVariancePct: getEnvFloat("ALLOWED_VARIANCE_PCT", 2.0),
		},
		Storage: StorageConfig{
			DatabasePath:    getEnv("PACTPROOF_DB_PATH", "pactproof.db"),
			UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 50),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills unset fields with working defaults so a partial
// YAML file still yields a runnable configuration.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.APIOrigin == "" {
		c.Server.APIOrigin = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Extraction.Mode == "" {
		c.Extraction.Mode = "ADE"
	}
	if c.Extraction.BaseURL == "" {
		c.Extraction.BaseURL = "https://api.va.landing.ai/v1/tools"
	}
	if c.Reconcile.FuzzyThreshold == 0 {
		c.Reconcile.FuzzyThreshold = 85
	}
	if c.Reconcile.AllowedVariancePct == 0 {
		c.Reconcile.AllowedVariancePct = 2.0
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "pactproof.db"
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.MaxUploadSizeMB == 0 {
		c.Storage.MaxUploadSizeMB = 50
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if result, err := strconv.Atoi(val); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if result, err := strconv.ParseFloat(val, 64); err == nil {
			return result
		}
	}
	return fallback
}
