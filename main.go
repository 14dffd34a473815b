package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:          "desktop-launcher",
		Short:        "Start the desktop shell and its backend server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			err = run(runOptions{
				ConfigPath: configPath,
				Mode:       buildMode,
				Stdout:     os.Stdout,
				NewLoop:    newEventLoop,
			})
			if err != nil {
				log.Fatal(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launcher.yaml", "path to the launcher configuration")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

// runOptions carries what run needs from main, so tests can swap the
// build mode, stdout and event loop.
type runOptions struct {
	ConfigPath string
	Mode       BuildMode
	Stdout     io.Writer
	NewLoop    func(cfg LauncherConfig, status *StatusBuffer) EventLoop
}

// run returns an error only if startup fails. On a normal shutdown the
// event loop exits the process, so run returning nil means the loop ended
// unexpectedly.
func run(opts runOptions) error {
	cfg, err := LoadLauncherConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load launcher config: %w", err)
	}
	log.WithField("mode", opts.Mode).Debugf("Loaded launcher config from %s", opts.ConfigPath)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Diagnostics go to stdout and to the window, if there is one
	status := NewStatusBuffer(statusBufferSize)
	out := io.MultiWriter(opts.Stdout, status)

	launcher := NewBackendLauncher(opts.Mode, cfg, out, log.WithField("component", "launcher"))

	app := NewApp(opts.Mode, opts.NewLoop(cfg, status), log.WithField("component", "app"))
	app.ShutdownTimeout = cfg.ShutdownGrace()
	app.Setup(func(state *AppContext) error {
		return launcher.Launch(state)
	})

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("error while running application: %w", err)
	}

	reportLoopExit(opts.Stdout)
	return nil
}

func reportLoopExit(w io.Writer) {
	fmt.Fprintln(w, "❌ App loop exited unexpectedly!")
}
