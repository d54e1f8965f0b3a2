// Package viewer is the interactive scene window: it draws a plot every
// frame and handles keys for toggling normals, the grid and the view.
package viewer

import (
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/facing/internal/render"
	"chosenoffset.com/facing/internal/render/plot"
)

const (
	// Delta time for timers (assuming 60 FPS)
	dt = 1.0 / 60.0

	panStep  = 0.01 // Fraction of the window per frame
	zoomStep = 1.25
)

// Viewer holds the figure and UI state.
type Viewer struct {
	Figure   *plot.Figure
	Renderer render.Renderer
	InputMgr render.InputManager

	// home is the viewport restored by the reset key
	home plot.Viewport

	// UI state
	Messages   []Message
	FrameCount int

	logger logrus.FieldLogger
}

// New creates a viewer for fig.
func New(fig *plot.Figure, r render.Renderer, input render.InputManager, logger logrus.FieldLogger) *Viewer {
	return &Viewer{
		Figure:   fig,
		Renderer: r,
		InputMgr: input,
		home:     fig.View,
		logger:   logger,
	}
}

// Update handles input. Escape returns render.ErrQuit.
func (v *Viewer) Update() error {
	v.FrameCount++
	v.updateMessages(dt)

	in := v.InputMgr
	if in.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	// Toggle normals with N key
	if in.IsKeyJustPressed(render.KeyN) {
		v.Figure.ShowNormals = !v.Figure.ShowNormals
		if v.Figure.ShowNormals {
			v.ShowMessage("Normals shown")
		} else {
			v.ShowMessage("Normals hidden")
		}
	}

	if in.IsKeyJustPressed(render.KeyG) {
		v.Figure.Grid = !v.Figure.Grid
	}

	if in.IsKeyJustPressed(render.KeyR) {
		v.Figure.View = v.home
		v.ShowMessage("View reset")
	}

	// Pan with arrows, held keys scroll continuously
	view := v.Figure.View
	if in.IsKeyPressed(render.KeyLeft) {
		view = view.Pan(-panStep, 0)
	}
	if in.IsKeyPressed(render.KeyRight) {
		view = view.Pan(panStep, 0)
	}
	if in.IsKeyPressed(render.KeyUp) {
		view = view.Pan(0, panStep)
	}
	if in.IsKeyPressed(render.KeyDown) {
		view = view.Pan(0, -panStep)
	}
	if in.IsKeyJustPressed(render.KeyEqual) {
		view = view.Zoom(1 / zoomStep)
	}
	if in.IsKeyJustPressed(render.KeyMinus) {
		view = view.Zoom(zoomStep)
	}
	v.Figure.View = view

	return nil
}

// Draw draws the figure, the cursor position and any live messages.
func (v *Viewer) Draw(screen render.Image) {
	plot.Draw(v.Renderer, screen, v.Figure)

	fg := v.Figure.Palette.Text
	cx, cy := v.InputMgr.GetCursorPosition()
	p := v.Figure.View.ToWorld(cx, cy)
	coords := fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
	w, h := v.Renderer.MeasureText(coords, 1)
	v.Renderer.DrawText(screen, coords, v.Figure.View.Width-w-8, v.Figure.View.Height-h-8, fg, 1)

	y := 30
	for _, msg := range v.Messages {
		alpha := uint8(255 * msg.TimeLeft / msg.MaxTime)
		r, g, b, _ := fg.RGBA()
		clr := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
		v.Renderer.DrawText(screen, msg.Text, 8, y, clr, 1)
		_, mh := v.Renderer.MeasureText(msg.Text, 1)
		y += mh + 4
	}
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.Figure.View.Width, v.Figure.View.Height
}

func (v *Viewer) updateMessages(dt float64) {
	var active []Message
	for _, msg := range v.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	v.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (v *Viewer) ShowMessage(text string) {
	v.Messages = append(v.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})

	v.logger.WithField("action", "viewer_message").Debug(text)
}
