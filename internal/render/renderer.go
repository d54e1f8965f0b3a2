// Package render defines the drawing surface shared by the PNG and window
// backends, so one figure can be sent to either.
package render

import (
	"image"
	"image/color"
)

// Renderer draws primitives in screen pixels.
type Renderer interface {
	NewImage(width, height int) Image

	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)

	// DrawText places the top-left corner of text at (x, y).
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image is a drawing target owned by a Renderer.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)
	Fill(clr color.Color)
	Clear()
	Dispose()
}

// InputManager reports keyboard and cursor state for the current tick.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
}

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyN Key = iota // toggle normals
	KeyG            // toggle grid
	KeyR            // reset view
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEqual // zoom in
	KeyMinus // zoom out
	KeyEscape
)

// Game is driven by an Engine once per tick.
type Game interface {
	// Update advances one tick. Returning ErrQuit ends the loop cleanly.
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and runs a Game until it stops.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	RunGame(game Game) error
}
