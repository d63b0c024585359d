// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	Storage   StorageConfig   `mapstructure:"storage"`
	AI        AIConfig        `mapstructure:"ai"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableMetrics   bool          `mapstructure:"enable_metrics"`
}

// FirestoreConfig contains document store configuration
type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	Collection      string `mapstructure:"collection"`
	CredentialsFile string `mapstructure:"credentials_file"`
	// UseMemory swaps the Firestore adapter for the in-memory repository,
	// for local development without a cloud project.
	UseMemory bool `mapstructure:"use_memory"`
}

// StorageConfig contains blob store configuration
type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	CredentialsFile string `mapstructure:"credentials_file"`
	UseMemory       bool   `mapstructure:"use_memory"`
}

// AIConfig contains completion service configuration
type AIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	TopP        float64       `mapstructure:"top_p"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/aisle")
	}

	// Enable environment variable override, e.g. AISLE_AI_API_KEY
	v.SetEnvPrefix("AISLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "AIsle Pantry")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_metrics", true)

	v.SetDefault("firestore.collection", "inventory")
	v.SetDefault("firestore.use_memory", true)

	v.SetDefault("storage.use_memory", true)

	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.model", "meta-llama/llama-3.1-8b-instruct:free")
	v.SetDefault("ai.top_p", 0.5)
	v.SetDefault("ai.temperature", 0.5)
	v.SetDefault("ai.timeout", "60s")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if !c.Firestore.UseMemory && c.Firestore.ProjectID == "" {
		return fmt.Errorf("firestore.project_id is required when not using the in-memory store")
	}

	if !c.Storage.UseMemory && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when not using in-memory storage")
	}

	if c.AI.APIKey == "" && c.IsProduction() {
		return fmt.Errorf("ai.api_key is required in production")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
