//go:build !gui

package main

import (
	"context"
)

// headlessLoop waits for the context to be cancelled, which main ties to
// SIGINT and SIGTERM. Build with -tags gui for a window.
type headlessLoop struct{}

func newEventLoop(cfg LauncherConfig, status *StatusBuffer) EventLoop {
	return headlessLoop{}
}

func (headlessLoop) Run(ctx context.Context, quit func(err error)) error {
	<-ctx.Done()
	quit(nil)
	return nil
}
