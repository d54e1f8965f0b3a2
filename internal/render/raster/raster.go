// Package raster implements the render interfaces on in-memory RGBA images,
// for writing plots to PNG without a window.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"chosenoffset.com/facing/internal/render"
)

// face is the only font; text scale is applied by resampling.
var face = basicfont.Face7x13

// Renderer implements render.Renderer with golang.org/x/image.
type Renderer struct{}

// NewRenderer creates a new raster renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage creates a transparent image with the given dimensions.
func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// StrokeLine draws a line of the given width as a filled quad.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	l := math.Hypot(dx, dy)
	if l == 0 {
		r.FillCircle(dst, x0, y0, strokeWidth/2, clr)
		return
	}
	// half-width offset perpendicular to the line
	ox := float32(-dy / l * float64(strokeWidth) / 2)
	oy := float32(dx / l * float64(strokeWidth) / 2)

	img := dst.(*Image).rgba
	z := rasterizer(img)
	z.MoveTo(x0+ox, y0+oy)
	z.LineTo(x1+ox, y1+oy)
	z.LineTo(x1-ox, y1-oy)
	z.LineTo(x0-ox, y0-oy)
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(clr), image.Point{})
}

// FillCircle draws a filled circle on the destination image.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	img := dst.(*Image).rgba
	z := rasterizer(img)
	circle(z, x, y, radius, false)
	z.Draw(img, img.Bounds(), image.NewUniform(clr), image.Point{})
}

// StrokeCircle draws a circle outline on the destination image.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	img := dst.(*Image).rgba
	z := rasterizer(img)
	circle(z, x, y, radius+strokeWidth/2, false)
	if inner := radius - strokeWidth/2; inner > 0 {
		// wound the other way to cut the hole
		circle(z, x, y, inner, true)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(clr), image.Point{})
}

// DrawText draws text with its top-left corner at (x, y).
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	img := dst.(*Image).rgba
	if scale <= 0 || scale == 1 {
		drawString(img, str, x, y, clr)
		return
	}

	w, h := r.MeasureText(str, 1)
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	drawString(tmp, str, 0, 0, clr)

	sw, sh := r.MeasureText(str, scale)
	xdraw.NearestNeighbor.Scale(img, image.Rect(x, y, x+sw, y+sh), tmp, tmp.Bounds(), xdraw.Over, nil)
}

// MeasureText measures the width and height of text with the given scale.
func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	if scale <= 0 {
		scale = 1
	}
	w := font.MeasureString(face, str).Ceil()
	h := face.Metrics().Height.Ceil()
	return int(math.Ceil(float64(w) * scale)), int(math.Ceil(float64(h) * scale))
}

// Image wraps an image.RGBA to implement the render.Image interface.
type Image struct {
	rgba *image.RGBA
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return i.rgba.Bounds()
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	return i.rgba.Bounds().Dx(), i.rgba.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *Image) Fill(clr color.Color) {
	xdraw.Draw(i.rgba, i.rgba.Bounds(), image.NewUniform(clr), image.Point{}, xdraw.Src)
}

// Clear clears the image to transparent.
func (i *Image) Clear() {
	i.Fill(color.Transparent)
}

// Dispose is a no-op; the memory belongs to the garbage collector.
func (i *Image) Dispose() {}

// RGBA returns the underlying image.
func (i *Image) RGBA() *image.RGBA {
	return i.rgba
}

// WritePNG encodes img as PNG. img must come from this package.
func WritePNG(w io.Writer, img render.Image) error {
	ri, ok := img.(*Image)
	if !ok {
		return errors.Errorf("cannot encode %T as PNG", img)
	}
	return errors.Wrap(png.Encode(w, ri.rgba), "failed to encode PNG")
}

// SavePNG writes img to path.
func SavePNG(path string, img render.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create image file")
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close image file")
}

func rasterizer(img *image.RGBA) *vector.Rasterizer {
	b := img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

// circle adds a closed polygon approximating a circle to z.
func circle(z *vector.Rasterizer, cx, cy, radius float32, reverse bool) {
	n := int(math.Max(16, math.Ceil(float64(radius)*2*math.Pi/2)))
	for k := 0; k <= n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		if reverse {
			a = -a
		}
		px := cx + radius*float32(math.Cos(a))
		py := cy + radius*float32(math.Sin(a))
		if k == 0 {
			z.MoveTo(px, py)
			continue
		}
		z.LineTo(px, py)
	}
	z.ClosePath()
}

func drawString(dst *image.RGBA, str string, x, y int, clr color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(str)
}
