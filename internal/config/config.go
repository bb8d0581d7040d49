// Package config loads cubesim settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// EnvPrefix is prepended to every environment override, e.g. CUBESIM_DIM.
const EnvPrefix = "CUBESIM"

// Keys understood by Load.
const (
	KeyDim   = "dim"
	KeySpeed = "speed"
	KeyFPS   = "fps"
	KeyDB    = "db"
	KeyAddr  = "addr"
	KeyLoop  = "loop"
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the CLI and server settings.
type Config struct {
	Dim   int     `mapstructure:"dim" yaml:"dim"`
	Speed float64 `mapstructure:"speed" yaml:"speed"`
	FPS   int     `mapstructure:"fps" yaml:"fps"`
	DB    string  `mapstructure:"db" yaml:"db"`
	Addr  string  `mapstructure:"addr" yaml:"addr"`
	Loop  bool    `mapstructure:"loop" yaml:"loop"`
}

// Dir returns ~/.cubesim.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesim"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Defaults returns the built-in settings.
func Defaults() Config {
	db, err := storage.DefaultDBPath()
	if err != nil {
		db = "journal.db"
	}
	return Config{
		Dim:   3,
		Speed: math.Pi,
		FPS:   60,
		DB:    db,
		Addr:  "127.0.0.1:8080",
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyDim, d.Dim)
	v.SetDefault(KeySpeed, d.Speed)
	v.SetDefault(KeyFPS, d.FPS)
	v.SetDefault(KeyDB, d.DB)
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeyLoop, d.Loop)
}

// Load resolves settings on v. An explicit path must exist; with an empty
// path the default file is read when present. Flags bound to v before
// calling Load take precedence over file and environment.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if def, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(def); statErr == nil {
			v.SetConfigFile(def)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", def, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the animator cannot run with.
func (c Config) Validate() error {
	if c.Dim < 1 {
		return fmt.Errorf("%w: dim %d", ErrInvalidConfig, c.Dim)
	}
	if c.Speed <= 0 || math.IsInf(c.Speed, 0) || math.IsNaN(c.Speed) {
		return fmt.Errorf("%w: speed %v", ErrInvalidConfig, c.Speed)
	}
	if c.FPS < 1 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	return nil
}

// FrameInterval is the wall time between frames at the configured rate.
func (c Config) FrameInterval() time.Duration {
	if c.FPS < 1 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Write saves c as YAML, creating parent directories.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
