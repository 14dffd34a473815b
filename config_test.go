package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func createTempYAML(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "launcher.yaml")

	if content != "" {
		if err := os.WriteFile(yamlPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create temp YAML: %v", err)
		}
	}

	return yamlPath
}

func TestLoadLauncherConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadLauncherConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for non-existent file, got: %v", err)
	}

	if cfg.Interpreter != "node" {
		t.Errorf("Expected default interpreter node, got: %s", cfg.Interpreter)
	}
	if cfg.Script != "../services/backend-server.js" {
		t.Errorf("Expected default script, got: %s", cfg.Script)
	}
	if cfg.Sidecar != "backend" {
		t.Errorf("Expected default sidecar backend, got: %s", cfg.Sidecar)
	}
	if cfg.LogDir != "logs" {
		t.Errorf("Expected default log dir logs, got: %s", cfg.LogDir)
	}
	if cfg.ShutdownGrace() != 5*time.Second {
		t.Errorf("Expected default shutdown grace 5s, got: %v", cfg.ShutdownGrace())
	}
}

func TestLoadLauncherConfig_ValidFile(t *testing.T) {
	content := `interpreter: node --enable-source-maps
script: ./server/index.js
sidecar: api
log_dir: /var/log/desktop
shutdown_timeout: 2s
title: My App
env:
  PORT: "8080"
  NODE_ENV: development
`
	cfg, err := LoadLauncherConfig(createTempYAML(t, content))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Interpreter != "node --enable-source-maps" {
		t.Errorf("Expected interpreter with flags, got: %s", cfg.Interpreter)
	}
	if cfg.Script != "./server/index.js" {
		t.Errorf("Expected script ./server/index.js, got: %s", cfg.Script)
	}
	if cfg.Sidecar != "api" {
		t.Errorf("Expected sidecar api, got: %s", cfg.Sidecar)
	}
	if cfg.LogDir != "/var/log/desktop" {
		t.Errorf("Expected log dir /var/log/desktop, got: %s", cfg.LogDir)
	}
	if cfg.ShutdownGrace() != 2*time.Second {
		t.Errorf("Expected shutdown grace 2s, got: %v", cfg.ShutdownGrace())
	}
	if cfg.Title != "My App" {
		t.Errorf("Expected title My App, got: %s", cfg.Title)
	}
	if cfg.Env["PORT"] != "8080" || cfg.Env["NODE_ENV"] != "development" {
		t.Errorf("Unexpected env: %v", cfg.Env)
	}
}

func TestLoadLauncherConfig_PartialFileGetsDefaults(t *testing.T) {
	cfg, err := LoadLauncherConfig(createTempYAML(t, "sidecar: api\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Sidecar != "api" {
		t.Errorf("Expected sidecar api, got: %s", cfg.Sidecar)
	}
	if cfg.Interpreter != "node" {
		t.Errorf("Expected default interpreter node, got: %s", cfg.Interpreter)
	}
	if cfg.Script != "../services/backend-server.js" {
		t.Errorf("Expected default script, got: %s", cfg.Script)
	}
}

func TestLoadLauncherConfig_InvalidYAML(t *testing.T) {
	_, err := LoadLauncherConfig(createTempYAML(t, "interpreter: [unclosed\n"))
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadLauncherConfig_InvalidShutdownTimeout(t *testing.T) {
	_, err := LoadLauncherConfig(createTempYAML(t, "shutdown_timeout: soon\n"))
	if err == nil {
		t.Fatal("Expected error for invalid shutdown_timeout")
	}
}
