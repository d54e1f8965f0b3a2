package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/core/scene"
	"chosenoffset.com/facing/internal/render/ebiten"
	"chosenoffset.com/facing/internal/render/plot"
	"chosenoffset.com/facing/internal/render/raster"
	"chosenoffset.com/facing/internal/viewer"
	"chosenoffset.com/facing/internal/viewfactor"
)

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "scene",
			Aliases: []string{"s"},
			Usage:   "scene file (JSON or YAML)",
		},
		&cli.StringFlag{
			Name:  "a",
			Usage: "first segment as x1,y1,x2,y2",
		},
		&cli.StringFlag{
			Name:  "b",
			Usage: "second segment as x1,y1,x2,y2",
		},
		&cli.BoolFlag{
			Name:  "merge",
			Usage: "join collinear segments that touch end to end",
		},
	}
}

// loadScene reads --scene, or builds a two-segment scene from --a and --b,
// or falls back to the built-in sample.
func loadScene(c *cli.Context) (*scene.Scene, error) {
	var s *scene.Scene
	switch {
	case c.IsSet("scene"):
		loaded, err := scene.Load(c.String("scene"))
		if err != nil {
			return nil, err
		}
		s = loaded
	case c.IsSet("a") || c.IsSet("b"):
		if !c.IsSet("a") || !c.IsSet("b") {
			return nil, errors.New("--a and --b must be given together")
		}
		a, err := parseSegment(c.String("a"))
		if err != nil {
			return nil, errors.Wrap(err, "--a")
		}
		b, err := parseSegment(c.String("b"))
		if err != nil {
			return nil, errors.Wrap(err, "--b")
		}
		s = &scene.Scene{Name: "flags", Shapes: []scene.Shape{
			{Name: "a", Segment: a},
			{Name: "b", Segment: b},
		}}
	default:
		s = scene.Sample()
	}

	if c.Bool("merge") {
		s = s.Merged()
	}
	return s, nil
}

// parseSegment parses "x1,y1,x2,y2".
func parseSegment(v string) (geom.Segment, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return geom.Segment{}, errors.Wrapf(geom.ErrMismatchedLengths, "want 4 comma separated numbers, got %q", v)
	}
	var n [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Segment{}, errors.Wrapf(err, "invalid coordinate %q", p)
		}
		n[i] = f
	}
	return geom.Seg(n[0], n[1], n[2], n[3]), nil
}

func checkCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "report crossings, normals and facing pairs",
		Flags: append(sceneFlags(), &cli.BoolFlag{
			Name:  "dump",
			Usage: "dump the full report",
		}),
		Action: func(c *cli.Context) error {
			s, err := loadScene(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			report, err := scene.NewAnalyzer(e.logger).Analyze(s)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			w := c.App.Writer
			printReport(w, report, e.color)
			if c.Bool("dump") {
				spew.Fdump(w, report)
			}
			return nil
		},
	}
}

func fitFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "fit",
		Usage: "fit the view to the scene instead of the configured window",
	}
}

func figure(e *env, c *cli.Context) (*plot.Figure, error) {
	s, err := loadScene(c)
	if err != nil {
		return nil, err
	}
	report, err := scene.NewAnalyzer(e.logger).Analyze(s)
	if err != nil {
		return nil, err
	}
	fig := plot.NewFigure(report, e.cfg.Plot)
	if c.Bool("fit") {
		fig.View = fig.View.Fit(s.Bounds(), 0.1)
	}
	return fig, nil
}

func renderCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "draw the scene, its normals and the status to a PNG file",
		Flags: append(sceneFlags(), fitFlag(), &cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   "plot.png",
			Usage:   "output PNG path",
		}),
		Action: func(c *cli.Context) error {
			fig, err := figure(e, c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			r := raster.NewRenderer()
			img := r.NewImage(fig.View.Width, fig.View.Height)
			plot.Draw(r, img, fig)
			if err := raster.SavePNG(c.String("out"), img); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			e.logger.WithFields(logrus.Fields{
				"action": "render",
				"out":    c.String("out"),
				"status": fig.Status,
			}).Info("plot written")
			return nil
		},
	}
}

func viewCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "open the scene in a window (N normals, G grid, arrows pan, +/- zoom, R reset, Esc quit)",
		Flags: append(sceneFlags(), fitFlag()),
		Action: func(c *cli.Context) error {
			fig, err := figure(e, c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			engine := ebiten.NewEngine()
			engine.SetWindowSize(fig.View.Width, fig.View.Height)
			engine.SetWindowTitle(fig.Title)
			engine.SetWindowResizable(true)

			v := viewer.New(fig, ebiten.NewRenderer(), ebiten.NewInputManager(), e.logger)
			e.logger.WithField("action", "view").Debug("starting viewer")
			return engine.RunGame(v)
		},
	}
}

func viewFactorCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "viewfactor",
		Usage: "estimate view factors between every pair of segments by ray tracing",
		Flags: append(sceneFlags(),
			&cli.IntFlag{
				Name:  "emissions",
				Usage: "rays per segment (overrides the config)",
			},
			&cli.IntFlag{
				Name:  "batches",
				Usage: "batches for the standard error (overrides the config)",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "random seed (overrides the config)",
			},
		),
		Action: func(c *cli.Context) error {
			s, err := loadScene(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			sc := e.cfg.Simulation
			if c.IsSet("emissions") {
				sc.Emissions = c.Int("emissions")
			}
			if c.IsSet("batches") {
				sc.Batches = c.Int("batches")
			}
			if c.IsSet("seed") {
				sc.Seed = c.Uint64("seed")
			}

			res, err := viewfactor.NewSimulation(sc.Emissions, sc.Batches, sc.Seed, e.logger).Run(s)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			printViewFactors(c.App.Writer, s, res)
			return nil
		},
	}
}

func samplesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "samples",
		Usage: "write the built-in demo scenes to a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: "scenes",
				Usage: "output directory",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "file format (yaml or json)",
			},
		},
		Action: func(c *cli.Context) error {
			format := scene.Format(strings.ToLower(c.String("format")))
			if format != scene.FormatYAML && format != scene.FormatJSON {
				return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 1)
			}

			dir := c.String("out")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return cli.Exit(errors.Wrap(err, "failed to create output directory").Error(), 1)
			}

			for _, s := range scene.Demos() {
				path := filepath.Join(dir, s.Name+"."+string(format))
				if err := s.Save(path); err != nil {
					return cli.Exit(err.Error(), 1)
				}
				e.logger.WithFields(logrus.Fields{
					"action": "samples",
					"path":   path,
				}).Info("scene written")
			}
			return nil
		},
	}
}

func listCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the scene files in a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "scenes",
				Usage: "directory to scan",
			},
		},
		Action: func(c *cli.Context) error {
			entries, err := scene.Scan(c.String("dir"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			printCatalog(c.App.Writer, entries, e.logger)
			return nil
		},
	}
}
