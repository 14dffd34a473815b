package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultInterpreter     = "node"
	defaultScript          = "../services/backend-server.js"
	defaultSidecar         = "backend"
	defaultLogDir          = "logs"
	defaultShutdownTimeout = 5 * time.Second
	defaultTitle           = "Desktop"
)

// LauncherConfig represents the settings read from launcher.yaml
type LauncherConfig struct {
	Interpreter     string            `yaml:"interpreter,omitempty"` // Development only, may carry extra arguments
	Script          string            `yaml:"script,omitempty"`      // Development only, relative to the working directory
	Sidecar         string            `yaml:"sidecar,omitempty"`     // Production only
	Env             map[string]string `yaml:"env,omitempty"`
	LogDir          string            `yaml:"log_dir,omitempty"`
	ShutdownTimeout string            `yaml:"shutdown_timeout,omitempty"`
	Title           string            `yaml:"title,omitempty"`
}

// DefaultLauncherConfig returns the configuration used when launcher.yaml is absent
func DefaultLauncherConfig() LauncherConfig {
	return LauncherConfig{
		Interpreter:     defaultInterpreter,
		Script:          defaultScript,
		Sidecar:         defaultSidecar,
		LogDir:          defaultLogDir,
		ShutdownTimeout: defaultShutdownTimeout.String(),
		Title:           defaultTitle,
	}
}

// LoadLauncherConfig loads the launcher configuration from path
func LoadLauncherConfig(path string) (LauncherConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultLauncherConfig(), nil
		}
		return LauncherConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg LauncherConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LauncherConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if cfg.Interpreter == "" {
		cfg.Interpreter = defaultInterpreter
	}
	if cfg.Script == "" {
		cfg.Script = defaultScript
	}
	if cfg.Sidecar == "" {
		cfg.Sidecar = defaultSidecar
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	if cfg.ShutdownTimeout == "" {
		cfg.ShutdownTimeout = defaultShutdownTimeout.String()
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}

	if _, err := time.ParseDuration(cfg.ShutdownTimeout); err != nil {
		return LauncherConfig{}, fmt.Errorf("invalid shutdown_timeout %q: %w", cfg.ShutdownTimeout, err)
	}

	return cfg, nil
}

// ShutdownGrace returns how long the backend gets to exit after being asked to
func (c LauncherConfig) ShutdownGrace() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d <= 0 {
		return defaultShutdownTimeout
	}
	return d
}
