// Package config provides application configuration for the facing tools.
// Values are loaded from a JSON or YAML file layered over the defaults.
package config

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds all application settings
type Config struct {
	// Logging output
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Monte Carlo view factor runs
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Plot rendering
	Plot PlotConfig `json:"plot" yaml:"plot"`
}

// LoggingConfig selects the log level and output format
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // logrus level name (e.g., "info")
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// SimulationConfig defines the view factor estimator
type SimulationConfig struct {
	Emissions int    `json:"emissions" yaml:"emissions"` // Rays per emitting shape
	Batches   int    `json:"batches" yaml:"batches"`     // Batches used for the standard error
	Seed      uint64 `json:"seed" yaml:"seed"`           // Random seed
}

// PlotConfig defines the figure window and colours
type PlotConfig struct {
	Width  int    `json:"width" yaml:"width"`   // Image width in pixels
	Height int    `json:"height" yaml:"height"` // Image height in pixels
	Title  string `json:"title" yaml:"title"`

	// World window shown in the figure
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max"`

	Grid        bool `json:"grid" yaml:"grid"`
	ShowNormals bool `json:"show_normals" yaml:"show_normals"`

	// Colours as "#rrggbb" or "#rrggbbaa"
	Background    string   `json:"background" yaml:"background"`
	GridColor     string   `json:"grid_color" yaml:"grid_color"`
	TextColor     string   `json:"text_color" yaml:"text_color"`
	SegmentColors []string `json:"segment_colors" yaml:"segment_colors"` // Cycled per segment
	NormalColors  []string `json:"normal_colors" yaml:"normal_colors"`   // Cycled per normal
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Simulation: SimulationConfig{
			Emissions: 5000,
			Batches:   10,
			Seed:      0,
		},
		Plot: PlotConfig{
			Width:         800,
			Height:        600,
			Title:         "2D Line Segments",
			XMin:          -10,
			XMax:          10,
			YMin:          0,
			YMax:          10,
			Grid:          true,
			ShowNormals:   true,
			Background:    "#ffffff",
			GridColor:     "#dddddd",
			TextColor:     "#000000",
			SegmentColors: []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#9467bd"},
			NormalColors:  []string{"#ff0000", "#008000", "#0000ff", "#ffff00"},
		},
	}
}

// LoadConfig loads config from a JSON or YAML file, chosen by extension
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	config := DefaultConfig() // Start with defaults
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, config)
	default:
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return config, nil
}

// Validate checks ranges and colours
func (c *Config) Validate() error {
	if c.Simulation.Emissions <= 0 {
		return errors.Errorf("simulation.emissions must be positive, got %d", c.Simulation.Emissions)
	}
	if c.Simulation.Batches <= 0 {
		return errors.Errorf("simulation.batches must be positive, got %d", c.Simulation.Batches)
	}

	p := c.Plot
	if p.Width <= 0 || p.Height <= 0 {
		return errors.Errorf("plot size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.XMin >= p.XMax || p.YMin >= p.YMax {
		return errors.Errorf("plot window is empty: x [%g, %g], y [%g, %g]", p.XMin, p.XMax, p.YMin, p.YMax)
	}
	if len(p.SegmentColors) == 0 || len(p.NormalColors) == 0 {
		return errors.New("plot needs at least one segment colour and one normal colour")
	}

	colours := append([]string{p.Background, p.GridColor, p.TextColor}, p.SegmentColors...)
	for _, s := range append(colours, p.NormalColors...) {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, errors.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Colors resolves the plot colour strings. Call Validate first.
func (p PlotConfig) Colors() Palette {
	must := func(s string) color.NRGBA {
		c, _ := ParseColor(s)
		return c
	}
	pal := Palette{
		Background: must(p.Background),
		Grid:       must(p.GridColor),
		Text:       must(p.TextColor),
	}
	for _, s := range p.SegmentColors {
		pal.Segments = append(pal.Segments, must(s))
	}
	for _, s := range p.NormalColors {
		pal.Normals = append(pal.Normals, must(s))
	}
	return pal
}

// Palette is PlotConfig's colours in parsed form
type Palette struct {
	Background color.Color
	Grid       color.Color
	Text       color.Color
	Segments   []color.Color
	Normals    []color.Color
}

// Segment returns the colour for the i-th segment
func (p Palette) Segment(i int) color.Color {
	return p.Segments[i%len(p.Segments)]
}

// Normal returns the colour for the i-th normal
func (p Palette) Normal(i int) color.Color {
	return p.Normals[i%len(p.Normals)]
}
