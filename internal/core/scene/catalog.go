package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"chosenoffset.com/facing/internal/core/geom"
)

// Entry is a scene file found in a directory.
type Entry struct {
	Name   string // File name without extension
	Path   string
	Format Format
}

// Scan lists the scene files in dir, sorted by name. Subdirectories and
// hidden files are skipped.
func Scan(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scene directory")
	}

	var scenes []Entry
	for _, entry := range entries {
		// Skip directories
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".json", ".yaml", ".yml":
			path := filepath.Join(dir, name)
			scenes = append(scenes, Entry{
				Name:   strings.TrimSuffix(name, filepath.Ext(name)),
				Path:   path,
				Format: FormatOf(path),
			})
		}
	}

	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Name < scenes[j].Name })
	return scenes, nil
}

// Demos returns the built-in example scenes.
func Demos() []*Scene {
	return []*Scene{
		Sample(),
		{Name: "parallel-strips", Shapes: []Shape{
			{Name: "left", Segment: geom.Seg(0, -5, 0, 5)},
			{Name: "right", Segment: geom.Seg(2, -5, 2, 5)},
		}},
		{Name: "adjacent-strips", Shapes: []Shape{
			{Name: "floor", Segment: geom.Seg(0, 0, 5, 0)},
			{Name: "wall", Segment: geom.Seg(0, 0, 0, 5)},
		}},
		{Name: "crossing", Shapes: []Shape{
			{Name: "rising", Segment: geom.Seg(0, 0, 4, 4)},
			{Name: "falling", Segment: geom.Seg(0, 4, 4, 0)},
			{Name: "post", Segment: geom.Seg(3, 0, 3, 5)},
		}},
	}
}

// Marshal encodes s in the segment list layout.
func (s *Scene) Marshal(format Format) ([]byte, error) {
	f := file{Name: s.Name}
	for _, sh := range s.Shapes {
		f.Segments = append(f.Segments, fileSegment{
			Name: sh.Name,
			A:    []float64{sh.Segment.A.X, sh.Segment.A.Y},
			B:    []float64{sh.Segment.B.X, sh.Segment.B.Y},
		})
	}

	if format == FormatJSON {
		return json.MarshalIndent(f, "", "  ")
	}
	return yaml.Marshal(f)
}

// Save writes s to path in the format its extension selects.
func (s *Scene) Save(path string) error {
	data, err := s.Marshal(FormatOf(path))
	if err != nil {
		return errors.Wrap(err, "failed to encode scene")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write scene")
}
