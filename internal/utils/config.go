package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	PersistenceAOF  = "aof"
	PersistenceNone = "none"
)

// Config struct holds application configuration
type Config struct {
	Port              int    `yaml:"port" json:"port"`
	GrpcPort          int    `yaml:"grpc_port" json:"grpc_port"`
	DefaultCapacity   int    `yaml:"default_capacity" json:"default_capacity"`
	Persistence       string `yaml:"persistence" json:"persistence"`
	DataDir           string `yaml:"data_dir" json:"data_dir"`
	CleanupIntervalMs int    `yaml:"cleanup_interval_ms" json:"cleanup_interval_ms"`
	Debug             bool   `yaml:"debug" json:"debug"`
}

// ReadConfig parses a YAML config file (JSON if the name ends in .json).
// A missing file yields the defaults.
func ReadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	config := &Config{}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	applyDefaults(config)
	return config, nil
}

// DefaultConfig returns default config values
func DefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// CleanupInterval returns the expiry sweep period.
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMs) * time.Millisecond
}

// applyDefaults ensures missing values get defaults
func applyDefaults(config *Config) {
	if config.Port == 0 {
		config.Port = 6379
	}
	if config.GrpcPort == 0 {
		config.GrpcPort = 7379
	}
	if config.DefaultCapacity <= 0 {
		config.DefaultCapacity = 10
	}
	if config.Persistence != PersistenceAOF && config.Persistence != PersistenceNone {
		config.Persistence = PersistenceAOF
	}
	if config.DataDir == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			config.DataDir = filepath.Join(homeDir, ".playbook")
		} else {
			config.DataDir = ".playbook"
		}
	}
	if config.CleanupIntervalMs <= 0 {
		config.CleanupIntervalMs = 100
	}
}
