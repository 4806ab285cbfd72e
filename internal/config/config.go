package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // zone database for images without /usr/share/zoneinfo
)

const (
	DefaultPort     = 4000
	DefaultEnv      = "development"
	DefaultLogLevel = "info"
)

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `yaml:"port" validate:"gt=0,lte=65535"`
	Env  string `yaml:"env" validate:"oneof=development staging production testing"`
}

// LaneSource points at one city's bike-lane GeoJSON file.
type LaneSource struct {
	City   string `yaml:"city" validate:"required,alphanum"`
	Source string `yaml:"source" validate:"required"`
}

// DataConfig lists the dataset inputs. Each source is a local path or an
// http(s) URL.
type DataConfig struct {
	Stations string       `yaml:"stations" validate:"required"`
	Trips    string       `yaml:"trips" validate:"required"`
	Lanes    []LaneSource `yaml:"lanes" validate:"dive"`
}

// Config holds all the configuration settings for our application.
type Config struct {
	Server    ServerConfig `yaml:"server"`
	LogLevel  string       `yaml:"log_level" validate:"oneof=debug info warn error"`
	Timezone  string       `yaml:"timezone"`
	CacheSize int          `yaml:"cache_size" validate:"gte=-1"`
	SentryDSN string       `yaml:"sentry_dsn"`
	Data      DataConfig   `yaml:"data"`
}

// NewConfig creates a new instance of a Config struct with defaults applied.
func NewConfig(port int, env string, data DataConfig) *Config {
	cfg := &Config{
		Server: ServerConfig{Port: port, Env: env},
		Data:   data,
	}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = DefaultEnv
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
}

// Location returns the zone trip timestamps are interpreted in.
// An empty Timezone means the process local zone.
func (cfg *Config) Location() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to Info.
func (cfg *Config) SlogLevel() slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
