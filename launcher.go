package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

// BackendLauncher starts the backend once during application setup.
// Each variant decides whether a failure is fatal: DevLauncher reports
// and swallows spawn errors, SidecarLauncher returns them.
type BackendLauncher interface {
	Launch(app *AppContext) error
}

// NewBackendLauncher returns the launcher variant for mode. Diagnostic
// lines are written to out.
func NewBackendLauncher(mode BuildMode, cfg LauncherConfig, out io.Writer, log logrus.FieldLogger) BackendLauncher {
	if mode == Production {
		return NewSidecarLauncher(cfg, log)
	}
	return NewDevLauncher(cfg, out, log)
}
