// Package ebiten draws figures into a desktop window.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"chosenoffset.com/facing/internal/render"
)

// face matches the raster backend so plots look the same in both.
var face = text.NewGoXFace(basicfont.Face7x13)

// Renderer draws onto ebiten images with anti-aliased vector paths.
type Renderer struct{}

// NewRenderer creates a Renderer backed by ebiten.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage allocates an offscreen image of the given size.
func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// StrokeLine draws an anti-aliased line from (x0, y0) to (x1, y1).
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(target(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// FillCircle draws a filled circle centred on (x, y).
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(target(dst), x, y, radius, clr, true)
}

// StrokeCircle draws a circle outline centred on (x, y).
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(target(dst), x, y, radius, strokeWidth, clr, true)
}

// DrawText places the top-left corner of str at (x, y).
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(target(dst), str, face, op)
}

// MeasureText returns the size of str drawn at scale.
func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	if scale <= 0 {
		scale = 1
	}
	m := face.Metrics()
	w, h := text.Measure(str, face, m.HLineGap+m.HAscent+m.HDescent)
	return int(w*scale + 0.5), int(h*scale + 0.5)
}

// target unwraps an image created by this package.
func target(dst render.Image) *ebiten.Image {
	return dst.(*Image).img
}

// Image is a render.Image backed by GPU memory.
type Image struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Fill fills the whole image with clr.
func (i *Image) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear resets the image to transparent.
func (i *Image) Clear() {
	i.img.Clear()
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Dispose releases the GPU memory held by the image.
func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// keys maps viewer keys onto the keyboard.
var keys = map[render.Key]ebiten.Key{
	render.KeyN:      ebiten.KeyN,
	render.KeyG:      ebiten.KeyG,
	render.KeyR:      ebiten.KeyR,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeyEqual:  ebiten.KeyEqual,
	render.KeyMinus:  ebiten.KeyMinus,
	render.KeyEscape: ebiten.KeyEscape,
}

// Input reads the keyboard and cursor state for the current tick.
type Input struct{}

// NewInputManager creates an InputManager reading ebiten's input state.
func NewInputManager() render.InputManager {
	return &Input{}
}

// IsKeyPressed reports whether key is held down.
func (Input) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed reports whether key went down during this tick.
func (Input) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// GetCursorPosition returns the cursor position in screen pixels.
func (Input) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// Engine owns the window and the update loop.
type Engine struct{}

// NewEngine creates an Engine driving ebiten's game loop.
func NewEngine() render.Engine {
	return &Engine{}
}

// SetWindowSize sets the window size in pixels.
func (Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

// RunGame blocks until the window closes. A game that stops with
// render.ErrQuit ends without error.
func (Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(loop{game})
}

// loop adapts a render.Game to ebiten.Game.
type loop struct {
	game render.Game
}

// Update implements ebiten.Game.
func (l loop) Update() error {
	if err := l.game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (l loop) Draw(screen *ebiten.Image) {
	l.game.Draw(&Image{img: screen})
}

// Layout implements ebiten.Game.
func (l loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return l.game.Layout(outsideWidth, outsideHeight)
}
