package plot

import (
	"math"

	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/render"
)

const (
	arrowHead  = 8.0
	arrowAngle = math.Pi / 7
	textMargin = 8
)

// Draw renders f onto dst.
func Draw(r render.Renderer, dst render.Image, f *Figure) {
	dst.Fill(f.Palette.Background)

	if f.Grid {
		drawGrid(r, dst, f)
	}

	for _, l := range f.Lines {
		x0, y0 := f.View.ToScreen(l.A)
		x1, y1 := f.View.ToScreen(l.B)
		r.StrokeLine(dst, x0, y0, x1, y1, l.Width, l.Color)
	}

	if f.ShowNormals {
		for _, a := range f.Normals {
			drawArrow(r, dst, f.View, a)
		}
	}

	for _, m := range f.Markers {
		if m.Tip && !f.ShowNormals {
			continue
		}
		x, y := f.View.ToScreen(m.At)
		if m.Hollow {
			r.StrokeCircle(dst, x, y, m.Radius, 1.5, m.Color)
			continue
		}
		r.FillCircle(dst, x, y, m.Radius, m.Color)
	}

	if f.Title != "" {
		w, _ := r.MeasureText(f.Title, 1)
		r.DrawText(dst, f.Title, (f.View.Width-w)/2, textMargin, f.Palette.Text, 1)
	}
	if f.Status != "" {
		_, h := r.MeasureText(f.Status, 1)
		r.DrawText(dst, f.Status, textMargin, f.View.Height-h-textMargin, f.Palette.Text, 1)
	}
}

func drawGrid(r render.Renderer, dst render.Image, f *Figure) {
	v := f.View
	w, h := float32(v.Width), float32(v.Height)

	step := gridStep(v.XMax - v.XMin)
	for x := math.Ceil(v.XMin/step) * step; x <= v.XMax; x += step {
		sx, _ := v.ToScreen(geom.Pt(x, v.YMin))
		r.StrokeLine(dst, sx, 0, sx, h, 1, f.Palette.Grid)
	}

	step = gridStep(v.YMax - v.YMin)
	for y := math.Ceil(v.YMin/step) * step; y <= v.YMax; y += step {
		_, sy := v.ToScreen(geom.Pt(v.XMin, y))
		r.StrokeLine(dst, 0, sy, w, sy, 1, f.Palette.Grid)
	}
}

func drawArrow(r render.Renderer, dst render.Image, v Viewport, a Arrow) {
	x0, y0 := v.ToScreen(a.From)
	x1, y1 := v.ToScreen(a.To)
	r.StrokeLine(dst, x0, y0, x1, y1, a.Width, a.Color)

	dx, dy := float64(x1-x0), float64(y1-y0)
	if math.Hypot(dx, dy) < 1 {
		return
	}
	back := math.Atan2(-dy, -dx)
	for _, side := range []float64{-arrowAngle, arrowAngle} {
		hx := x1 + float32(arrowHead*math.Cos(back+side))
		hy := y1 + float32(arrowHead*math.Sin(back+side))
		r.StrokeLine(dst, x1, y1, hx, hy, a.Width, a.Color)
	}
}
