//go:build gui

package main

import (
	"context"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// windowLoop shows the launcher status in a gio window. Closing the window
// or cancelling the context shuts the application down.
type windowLoop struct {
	title  string
	status *StatusBuffer
}

func newEventLoop(cfg LauncherConfig, status *StatusBuffer) EventLoop {
	return &windowLoop{title: cfg.Title, status: status}
}

func (l *windowLoop) Run(ctx context.Context, quit func(err error)) error {
	go func() {
		w := app.NewWindow(app.Title(l.title), app.Size(unit.Dp(640), unit.Dp(360)))
		quit(l.loop(ctx, w))
	}()
	app.Main()
	return nil
}

func (l *windowLoop) loop(ctx context.Context, w *app.Window) error {
	th := material.NewTheme()
	var ops op.Ops
	var sel widget.Selectable
	done := ctx.Done()

	for {
		select {
		case <-done:
			done = nil
			w.Perform(system.ActionClose)
		case <-l.status.Changed():
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				inset := layout.UniformInset(8)
				layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Label(th, 14, l.status.String())
						lbl.Font.Typeface = font.Typeface("Go Mono")
						lbl.State = &sel
						return inset.Layout(gtx, lbl.Layout)
					}),
				)
				e.Frame(gtx.Ops)
			}
		}
	}
}
