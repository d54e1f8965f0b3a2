// Package scene loads named segments from JSON or YAML files and analyses
// every pair for crossings and facing normals.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"chosenoffset.com/facing/internal/core/geom"
)

// Format selects the decoder for a scene file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks a format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Shape is a named segment.
type Shape struct {
	Name    string
	Segment geom.Segment
}

// Scene is an ordered set of shapes.
type Scene struct {
	Name   string
	Shapes []Shape
}

// Segments returns the bare segments in scene order.
func (s *Scene) Segments() []geom.Segment {
	segs := make([]geom.Segment, len(s.Shapes))
	for i, sh := range s.Shapes {
		segs[i] = sh.Segment
	}
	return segs
}

// Centroid returns the mean of all shape midpoints.
func (s *Scene) Centroid() geom.Point {
	mids := make([]geom.Point, len(s.Shapes))
	for i, sh := range s.Shapes {
		mids[i] = sh.Segment.Midpoint()
	}
	return geom.Centroid(mids...)
}

// Bounds returns the box around every shape.
func (s *Scene) Bounds() geom.Bounds {
	var b geom.Bounds
	for i, sh := range s.Shapes {
		if i == 0 {
			b = sh.Segment.Bounds()
			continue
		}
		b = b.Union(sh.Segment.Bounds())
	}
	return b
}

// Sample returns the two-segment demo scene.
func Sample() *Scene {
	return &Scene{
		Name: "sample",
		Shapes: []Shape{
			{Name: "first", Segment: geom.Seg(1, 2, 3, 4)},
			{Name: "second", Segment: geom.Seg(-2, 7, -2, 4)},
		},
	}
}

// fileSegment is one segment entry in a scene file
type fileSegment struct {
	Name string    `json:"name" yaml:"name"`
	A    []float64 `json:"a" yaml:"a"`
	B    []float64 `json:"b" yaml:"b"`
}

// file is the on-disk layout. Segments can be listed one by one, or as
// grouped columns where xs[i] and ys[i] hold the two x and y values of
// segment i.
type file struct {
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	Segments []fileSegment `json:"segments,omitempty" yaml:"segments,omitempty"`
	XS       [][]float64   `json:"xs,omitempty" yaml:"xs,omitempty"`
	YS       [][]float64   `json:"ys,omitempty" yaml:"ys,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scene")
	}
	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates scene data. Every problem found is reported,
// not only the first.
func Parse(data []byte, format Format) (*Scene, error) {
	var f file
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse scene")
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse scene")
		}
	}
	return f.build()
}

func (f file) build() (*Scene, error) {
	var result *multierror.Error
	s := &Scene{Name: f.Name}

	for i, fs := range f.Segments {
		name := fs.Name
		if name == "" {
			name = fmt.Sprintf("segment-%d", len(s.Shapes)+1)
		}
		if len(fs.A) != 2 || len(fs.B) != 2 {
			result = multierror.Append(result, errors.Wrapf(geom.ErrMismatchedLengths,
				"segments[%d] %q: endpoints need 2 coordinates, got %d and %d", i, name, len(fs.A), len(fs.B)))
			continue
		}
		s.Shapes = append(s.Shapes, Shape{Name: name, Segment: geom.Seg(fs.A[0], fs.A[1], fs.B[0], fs.B[1])})
	}

	if len(f.XS) != len(f.YS) {
		result = multierror.Append(result, errors.Wrapf(geom.ErrMismatchedLengths,
			"%d x groups but %d y groups", len(f.XS), len(f.YS)))
	} else {
		for i := range f.XS {
			if len(f.XS[i]) != 2 || len(f.YS[i]) != 2 {
				result = multierror.Append(result, errors.Wrapf(geom.ErrMismatchedLengths,
					"group %d: want 2 x and 2 y values, got %d and %d", i, len(f.XS[i]), len(f.YS[i])))
				continue
			}
			s.Shapes = append(s.Shapes, Shape{
				Name:    fmt.Sprintf("segment-%d", len(s.Shapes)+1),
				Segment: geom.Seg(f.XS[i][0], f.YS[i][0], f.XS[i][1], f.YS[i][1]),
			})
		}
	}

	if err := s.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every shape and reports all problems at once.
func (s *Scene) Validate() error {
	var result *multierror.Error
	if len(s.Shapes) == 0 {
		result = multierror.Append(result, errors.New("scene has no segments"))
	}

	seen := make(map[string]bool, len(s.Shapes))
	for i, sh := range s.Shapes {
		if sh.Name == "" {
			result = multierror.Append(result, errors.Errorf("segment %d has no name", i+1))
		}
		if seen[sh.Name] {
			result = multierror.Append(result, errors.Errorf("duplicate segment name %q", sh.Name))
		}
		seen[sh.Name] = true

		if err := geom.Validate(sh.Segment); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "segment %q", sh.Name))
		}
	}
	return result.ErrorOrNil()
}

// Merged returns a copy of s in which collinear segments that touch end to
// end are joined. Each joined shape keeps the name of its earliest member.
func (s *Scene) Merged() *Scene {
	merged, groups := geom.MergeColinearGroups(s.Segments())
	out := &Scene{Name: s.Name, Shapes: make([]Shape, 0, len(merged))}
	for i, seg := range merged {
		out.Shapes = append(out.Shapes, Shape{Name: s.Shapes[groups[i][0]].Name, Segment: seg})
	}
	return out
}
