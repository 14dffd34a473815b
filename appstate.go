package main

import (
	"errors"
	"sync"
	"time"
)

// ErrBackendAlreadyManaged is returned when a second backend handle is stored
var ErrBackendAlreadyManaged = errors.New("backend process already managed")

// AppContext is the application-wide state created once at startup and
// handed to setup hooks. It owns the backend process handle.
type AppContext struct {
	Mode BuildMode

	backend *BackendProcess
	mu      sync.Mutex
}

// NewAppContext creates the state container for one application run
func NewAppContext(mode BuildMode) *AppContext {
	return &AppContext{Mode: mode}
}

// ManageBackend stores the backend handle. At most one handle is kept per run.
func (c *AppContext) ManageBackend(p *BackendProcess) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return ErrBackendAlreadyManaged
	}
	c.backend = p
	return nil
}

// Backend returns the stored backend handle, or nil if none was stored
func (c *AppContext) Backend() *BackendProcess {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backend
}

// Shutdown stops the managed backend, if any, giving it timeout to exit
func (c *AppContext) Shutdown(timeout time.Duration) error {
	p := c.Backend()
	if p == nil {
		return nil
	}
	return p.Stop(timeout)
}
