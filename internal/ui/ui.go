// Package ui renders the resident input window.
//
// The window is a single multi-line editor. Ctrl+Enter hands the text
// off through the submit callback; the window stays open so the next
// prompt can be typed immediately. The window title doubles as the
// discovery key the hook engine finds the helper window by, so it must
// stay unique per terminal.
package ui

import (
	"fmt"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"promptbridge/internal/logging"
)

// Options configures the resident window.
type Options struct {
	// Title is the exact window title. It carries the terminal handle
	// and must not change after creation.
	Title string

	// Width and Height are the initial size in dp.
	Width  int
	Height int

	// Label is an optional session label shown above the editor.
	Label string

	// Submit delivers the edited text. A non-nil error is shown in the
	// status line; the editor content is preserved for another attempt.
	Submit func(text string) error
}

// WindowTitle builds the discovery title for a terminal handle.
func WindowTitle(prefix string, terminalHWND uintptr) string {
	return fmt.Sprintf("%s-%d", prefix, terminalHWND)
}

// App is the resident window state.
type App struct {
	opts   Options
	theme  *material.Theme
	editor widget.Editor
	status string
	isErr  bool
}

// New creates the resident window state.
func New(opts Options) *App {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	return &App{opts: opts, theme: th}
}

// Run drives the window event loop until the window is closed.
func (a *App) Run(w *app.Window) error {
	w.Option(
		app.Title(a.opts.Title),
		app.Size(unit.Dp(a.opts.Width), unit.Dp(a.opts.Height)),
	)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.handleKeys(gtx)
			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(key.Filter{
			Focus:    &a.editor,
			Name:     key.NameReturn,
			Required: key.ModCtrl,
		})
		if !ok {
			break
		}
		// The editor consumes the press for Enter, so act on release.
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Release {
			continue
		}
		a.submit()
	}
}

func (a *App) submit() {
	text := a.editor.Text()
	if err := a.opts.Submit(text); err != nil {
		a.status = err.Error()
		a.isErr = true
		logging.Warn("submit failed", "error", err)
		return
	}
	a.editor.SetText("")
	a.status = "Sent"
	a.isErr = false
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	inset := layout.UniformInset(unit.Dp(8))
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.opts.Label == "" {
					return layout.Dimensions{}
				}
				return material.Caption(a.theme, a.opts.Label).Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(a.theme, &a.editor, "Ctrl+I: Toggle | Ctrl+Enter: Send")
				return ed.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.status == "" {
					return layout.Dimensions{}
				}
				st := material.Caption(a.theme, a.status)
				if a.isErr {
					st.Color = errorColor
				}
				return st.Layout(gtx)
			}),
		)
	})
}
