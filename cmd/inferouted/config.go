package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// appConfig describes the inferouted YAML configuration.
type appConfig struct {
	Server struct {
		ListenAddr        string `yaml:"listen_addr"`
		ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
	} `yaml:"server"`
	Endpoints struct {
		Path string `yaml:"path"`
	} `yaml:"endpoints"`
}

// loadConfig reads and validates the configuration file.
func loadConfig(path string) (appConfig, error) {
	var cfg appConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Endpoints.Path == "" {
		return cfg, fmt.Errorf("endpoints.path is required")
	}
	return cfg, nil
}

// shutdownTimeout converts millisecond config to a duration.
func shutdownTimeout(cfg appConfig) time.Duration {
	if cfg.Server.ShutdownTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.Server.ShutdownTimeoutMs) * time.Millisecond
}
