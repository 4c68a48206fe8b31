package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	List      ListConfig      `yaml:"list"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HABITS_SERVER_HOST"`
	Port int    `yaml:"port" env:"HABITS_SERVER_PORT"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"HABITS_DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"HABITS_LOG_LEVEL"`
	Path  string `yaml:"path" env:"HABITS_LOG_PATH"`
}

type TransportConfig struct {
	// Mode is "http" or "stdio".
	Mode string `yaml:"mode" env:"HABITS_TRANSPORT_MODE"`
}

type AuthConfig struct {
	Enabled     bool   `yaml:"enabled" env:"HABITS_AUTH_ENABLED"`
	DefaultUser string `yaml:"default_user" env:"HABITS_DEFAULT_USER"`
}

type ListConfig struct {
	// Locale drives title collation and labels when a request names none.
	Locale   string        `yaml:"locale" env:"HABITS_LOCALE"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"HABITS_LIST_CACHE_TTL"`
}

type SchedulerConfig struct {
	ResetInterval time.Duration `yaml:"reset_interval" env:"HABITS_RESET_INTERVAL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "habits.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled:     true,
			DefaultUser: "default",
		},
		List: ListConfig{
			Locale:   "de",
			CacheTTL: time.Minute,
		},
		Scheduler: SchedulerConfig{
			ResetInterval: time.Hour,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// Environment variables win over the file, which wins over the defaults.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("HABITS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q: want http or stdio", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Scheduler.ResetInterval < 0 {
		return fmt.Errorf("invalid reset interval %s", c.Scheduler.ResetInterval)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
