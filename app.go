package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned when Run is called more than once
var ErrAlreadyRunning = errors.New("application already running")

// SetupHook runs once before the event loop starts. A returned error
// aborts startup.
type SetupHook func(state *AppContext) error

// EventLoop blocks until the user shuts the application down, then calls
// quit. quit normally does not return.
type EventLoop interface {
	Run(ctx context.Context, quit func(err error)) error
}

// App is the application shell: it owns the AppContext, runs setup hooks
// and hands control to the event loop.
type App struct {
	ShutdownTimeout time.Duration

	state   *AppContext
	hooks   []SetupHook
	loop    EventLoop
	exit    func(code int)
	started bool

	log logrus.FieldLogger
	mu  sync.Mutex
}

// NewApp creates an application shell for mode driven by loop
func NewApp(mode BuildMode, loop EventLoop, log logrus.FieldLogger) *App {
	return &App{
		ShutdownTimeout: defaultShutdownTimeout,
		state:           NewAppContext(mode),
		loop:            loop,
		exit:            os.Exit,
		log:             log,
	}
}

// Setup registers a hook to run once at startup
func (a *App) Setup(hook SetupHook) *App {
	a.hooks = append(a.hooks, hook)
	return a
}

// State returns the application-wide state
func (a *App) State() *AppContext {
	return a.state
}

// Run executes the setup hooks and then the event loop. It returns an error
// if a hook fails, in which case the loop never starts. When the loop ends
// the backend is stopped and the process exits, so Run only returns after
// the loop if exit has been replaced.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.started = true
	a.mu.Unlock()

	for _, hook := range a.hooks {
		if err := hook(a.state); err != nil {
			// Don't leave a half-started backend behind
			a.stopBackend()
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	return a.loop.Run(ctx, a.quit)
}

// quit stops the backend and exits with 0, or 1 if the loop failed
func (a *App) quit(err error) {
	a.stopBackend()

	if err != nil {
		a.log.Errorf("Event loop failed: %v", err)
		a.exit(1)
		return
	}
	a.log.Info("Application shut down")
	a.exit(0)
}

func (a *App) stopBackend() {
	if err := a.state.Shutdown(a.ShutdownTimeout); err != nil {
		a.log.Warnf("Failed to stop backend: %v", err)
	}
}
