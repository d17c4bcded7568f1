// Package config loads application configuration from file, environment and
// defaults via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"decathlonminds/internal/logger"
)

// Config is the resolved application configuration tree.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Feeds    FeedsConfig    `mapstructure:"feeds"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Assembly AssemblyConfig `mapstructure:"assembly"`
}

// AppConfig holds top-level application settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Debug bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// AIConfig holds generation settings.
type AIConfig struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Gemini API settings. The key itself is normally taken
// from the environment; see llm.NewClient.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// FeedsConfig holds RSS source settings.
type FeedsConfig struct {
	URLs    []string      `mapstructure:"urls"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds feed cache settings.
type CacheConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// AssemblyConfig holds feed assembly settings.
type AssemblyConfig struct {
	DefaultCount   int           `mapstructure:"default_count"`
	MaxCount       int           `mapstructure:"max_count"`
	ItemTimeout    time.Duration `mapstructure:"item_timeout"`
	LaunchInterval time.Duration `mapstructure:"launch_interval"`
}

// Load reads configuration from an optional .env file, the named config file
// (or the default search path) and the environment, in ascending precedence.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env file")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.decathlonminds")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		logger.Info("config loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "decathlonminds")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 45*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")

	viper.SetDefault("feeds.urls", []string{})
	viper.SetDefault("feeds.timeout", 30*time.Second)

	viper.SetDefault("cache.ttl", 30*time.Minute)
	viper.SetDefault("cache.sweep_interval", 5*time.Minute)

	viper.SetDefault("assembly.default_count", 8)
	viper.SetDefault("assembly.max_count", 20)
	viper.SetDefault("assembly.item_timeout", 12*time.Second)
	viper.SetDefault("assembly.launch_interval", 150*time.Millisecond)
}

// Addr returns the host:port the server should bind to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
