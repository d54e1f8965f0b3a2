// Package plot turns an analysed scene into backend-neutral draw calls.
package plot

import (
	"math"

	"chosenoffset.com/facing/internal/config"
	"chosenoffset.com/facing/internal/core/geom"
)

// Viewport maps a world window onto a Width x Height pixel surface, with y
// pointing up in world space and down on screen.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
	Width      int
	Height     int
}

// NewViewport builds the viewport described by cfg.
func NewViewport(cfg config.PlotConfig) Viewport {
	return Viewport{
		XMin:   cfg.XMin,
		XMax:   cfg.XMax,
		YMin:   cfg.YMin,
		YMax:   cfg.YMax,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// ToScreen converts a world point to pixel coordinates.
func (v Viewport) ToScreen(p geom.Point) (x, y float32) {
	sx := (p.X - v.XMin) / (v.XMax - v.XMin) * float64(v.Width)
	sy := (v.YMax - p.Y) / (v.YMax - v.YMin) * float64(v.Height)
	return float32(sx), float32(sy)
}

// ToWorld converts pixel coordinates to a world point.
func (v Viewport) ToWorld(x, y int) geom.Point {
	return geom.Point{
		X: v.XMin + float64(x)/float64(v.Width)*(v.XMax-v.XMin),
		Y: v.YMax - float64(y)/float64(v.Height)*(v.YMax-v.YMin),
	}
}

// Contains reports whether p is inside the world window.
func (v Viewport) Contains(p geom.Point) bool {
	return p.X >= v.XMin && p.X <= v.XMax && p.Y >= v.YMin && p.Y <= v.YMax
}

// Pan shifts the window by fractions of its width and height.
func (v Viewport) Pan(fx, fy float64) Viewport {
	dx := fx * (v.XMax - v.XMin)
	dy := fy * (v.YMax - v.YMin)
	v.XMin, v.XMax = v.XMin+dx, v.XMax+dx
	v.YMin, v.YMax = v.YMin+dy, v.YMax+dy
	return v
}

// Zoom scales the window around its centre. f < 1 zooms in.
func (v Viewport) Zoom(f float64) Viewport {
	cx, cy := (v.XMin+v.XMax)/2, (v.YMin+v.YMax)/2
	hw, hh := (v.XMax-v.XMin)/2*f, (v.YMax-v.YMin)/2*f
	v.XMin, v.XMax = cx-hw, cx+hw
	v.YMin, v.YMax = cy-hh, cy+hh
	return v
}

// Fit returns a viewport of the same pixel size whose window covers b plus a
// margin given as a fraction of the larger side.
func (v Viewport) Fit(b geom.Bounds, margin float64) Viewport {
	w, h := b.Size()
	pad := math.Max(math.Max(w, h)*margin, 1)
	v.XMin, v.XMax = b.Min.X-pad, b.Max.X+pad
	v.YMin, v.YMax = b.Min.Y-pad, b.Max.Y+pad
	return v
}

// gridStep picks a power-of-ten spacing giving roughly five to fifty lines
// over span.
func gridStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(span/5)))
}
