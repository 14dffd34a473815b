package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// returningLoop ends without quitting, as a broken event loop would
type returningLoop struct {
	ran bool
}

func (l *returningLoop) Run(ctx context.Context, quit func(err error)) error {
	l.ran = true
	return nil
}

func writeLauncherConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launcher.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestRun_ReportsUnexpectedLoopExit(t *testing.T) {
	script := filepath.Join(t.TempDir(), "backend-server.js")
	configPath := writeLauncherConfig(t, "interpreter: definitely-not-an-interpreter\nscript: "+script+"\n")

	var stdout bytes.Buffer
	loop := &returningLoop{}
	err := run(runOptions{
		ConfigPath: configPath,
		Mode:       Development,
		Stdout:     &stdout,
		NewLoop:    func(LauncherConfig, *StatusBuffer) EventLoop { return loop },
	})
	if err != nil {
		t.Fatalf("Expected a failed development spawn to leave startup running, got %v", err)
	}
	if !loop.ran {
		t.Fatal("Expected the event loop to run")
	}

	output := stdout.String()
	if !strings.Contains(output, "❌ Failed to spawn backend definitely-not-an-interpreter process") {
		t.Errorf("Expected the spawn failure line, got:\n%s", output)
	}
	if !strings.HasSuffix(output, "❌ App loop exited unexpectedly!\n") {
		t.Errorf("Expected the loop exit line last, got:\n%s", output)
	}
}

func TestRun_ProductionSetupFailureNeverReachesLoop(t *testing.T) {
	configPath := writeLauncherConfig(t, "sidecar: no-such-sidecar-for-tests\nlog_dir: "+t.TempDir()+"\n")

	var stdout bytes.Buffer
	loop := &returningLoop{}
	err := run(runOptions{
		ConfigPath: configPath,
		Mode:       Production,
		Stdout:     &stdout,
		NewLoop:    func(LauncherConfig, *StatusBuffer) EventLoop { return loop },
	})
	if !errors.Is(err, ErrSidecarNotFound) {
		t.Fatalf("Expected startup to fail with ErrSidecarNotFound, got %v", err)
	}
	if loop.ran {
		t.Error("Event loop must not run after a fatal setup error")
	}
	if strings.Contains(stdout.String(), "App loop exited unexpectedly") {
		t.Errorf("Loop exit line printed on the fatal path:\n%s", stdout.String())
	}
	if strings.Contains(stdout.String(), "spawned successfully") {
		t.Errorf("Production mode must not print the success line:\n%s", stdout.String())
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := writeLauncherConfig(t, "shutdown_timeout: later\n")

	err := run(runOptions{
		ConfigPath: configPath,
		Mode:       Development,
		Stdout:     &bytes.Buffer{},
		NewLoop:    func(LauncherConfig, *StatusBuffer) EventLoop { return &returningLoop{} },
	})
	if err == nil || !strings.Contains(err.Error(), "failed to load launcher config") {
		t.Fatalf("Expected config error, got %v", err)
	}
}
