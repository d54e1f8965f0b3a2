package plot

import (
	"image/color"

	"chosenoffset.com/facing/internal/config"
	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/core/scene"
)

// Line is a segment drawn in world coordinates.
type Line struct {
	A, B  geom.Point
	Color color.Color
	Width float32
}

// Arrow is a normal vector drawn from its base to its tip.
type Arrow struct {
	From, To geom.Point
	Color    color.Color
	Width    float32
	// Facing marks the normals chosen by the facing pair matcher.
	Facing bool
}

// Marker is a dot at a world position.
type Marker struct {
	At     geom.Point
	Color  color.Color
	Radius float32
	Hollow bool
	// Tip marks the end of a normal; hidden along with the normals.
	Tip bool
}

// Figure is everything needed to draw one plot.
type Figure struct {
	Title       string
	Status      string
	View        Viewport
	Palette     config.Palette
	Grid        bool
	ShowNormals bool

	Lines   []Line
	Normals []Arrow
	// Markers are drawn after lines and normals.
	Markers []Marker
}

// NewFigure lays out a report: each segment with its endpoints, both normals
// anchored at the midpoint with a dot at the tip, a ring at every crossing and
// a dot at the origin. Normal colours cycle per normal, so with the default
// palette the first segment's normals are red and green and the second's
// blue and yellow.
func NewFigure(report *scene.Report, cfg config.PlotConfig) *Figure {
	pal := cfg.Colors()
	f := &Figure{
		Title:       cfg.Title,
		Status:      report.Status(),
		View:        NewViewport(cfg),
		Palette:     pal,
		Grid:        cfg.Grid,
		ShowNormals: cfg.ShowNormals,
	}

	facing := facingNormals(report)
	for i, sh := range report.Shapes {
		c := pal.Segment(i)
		f.Lines = append(f.Lines, Line{A: sh.Segment.A, B: sh.Segment.B, Color: c, Width: 2})
		f.Markers = append(f.Markers,
			Marker{At: sh.Segment.A, Color: c, Radius: 3},
			Marker{At: sh.Segment.B, Color: c, Radius: 3},
		)

		for k, n := range sh.Normals {
			nc := pal.Normal(2*i + k)
			tip := sh.Midpoint.Add(n)
			a := Arrow{From: sh.Midpoint, To: tip, Color: nc, Width: 1}
			if facing[normalKey{sh.Name, k}] {
				a.Facing = true
				a.Width = 3
			}
			f.Normals = append(f.Normals, a)
			f.Markers = append(f.Markers, Marker{At: tip, Color: nc, Radius: 4, Tip: true})
		}
	}

	for _, c := range report.Crossings {
		f.Markers = append(f.Markers, Marker{At: c.Point, Color: pal.Text, Radius: 6, Hollow: true})
	}
	f.Markers = append(f.Markers, Marker{At: geom.Point{}, Color: pal.Text, Radius: 3})

	return f
}

type normalKey struct {
	shape string
	index int
}

func facingNormals(report *scene.Report) map[normalKey]bool {
	out := make(map[normalKey]bool, 2*len(report.Facing))
	for _, fp := range report.Facing {
		out[normalKey{fp.A, fp.Pair.IndexA}] = true
		out[normalKey{fp.B, fp.Pair.IndexB}] = true
	}
	return out
}
