package main

import (
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// SidecarLauncher starts the bundled backend binary. Resolution and spawn
// errors are returned so that startup aborts.
type SidecarLauncher struct {
	Name   string
	LogDir string

	resolve func(name string) (string, error)
	log     logrus.FieldLogger
}

// NewSidecarLauncher creates a production launcher from cfg
func NewSidecarLauncher(cfg LauncherConfig, log logrus.FieldLogger) *SidecarLauncher {
	return &SidecarLauncher{
		Name:    cfg.Sidecar,
		LogDir:  cfg.LogDir,
		resolve: ResolveSidecar,
		log:     log,
	}
}

// Launch implements BackendLauncher
func (l *SidecarLauncher) Launch(app *AppContext) error {
	path, err := l.resolve(l.Name)
	if err != nil {
		return fmt.Errorf("failed to setup sidecar: %w", err)
	}

	p := newBackendProcess(l.Name, exec.Command(path), l.log)
	hideConsoleWindow(p)
	// Output logging is best-effort; a read-only working directory must not
	// keep a valid sidecar from starting
	if l.LogDir != "" {
		if err := p.appendOutputTo(l.LogDir); err != nil {
			l.log.Warnf("Sidecar %s output will not be logged: %v", l.Name, err)
		}
	}

	if err := p.start(); err != nil {
		return fmt.Errorf("failed to spawn sidecar: %w", err)
	}
	l.log.Infof("Started sidecar %s (PID: %d)", path, p.Pid())

	if err := app.ManageBackend(p); err != nil {
		p.Stop(0)
		return err
	}
	return nil
}
