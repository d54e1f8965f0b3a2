package main

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"chosenoffset.com/facing/internal/config"
	"chosenoffset.com/facing/internal/logging"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// env is the state shared by every command once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	color  bool
}

func newApp(out, errOut io.Writer) *cli.App {
	e := &env{}
	return &cli.App{
		Name:      "facing",
		Usage:     "check segment intersections, pick facing normals and estimate view factors",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "facing.yaml",
				Usage:   "config file (JSON or YAML); defaults apply when it does not exist",
				EnvVars: []string{"FACING_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "override the configured log level",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "override the configured log format (text or json)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured status lines",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if c.IsSet("log-level") {
				cfg.Logging.Level = c.String("log-level")
			}
			if c.IsSet("log-format") {
				cfg.Logging.Format = c.String("log-format")
			}

			logger, err := logging.New(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			e.cfg = cfg
			e.logger = logger
			e.color = !c.Bool("no-color")
			return nil
		},
		Commands: []*cli.Command{
			checkCommand(e),
			renderCommand(e),
			viewCommand(e),
			viewFactorCommand(e),
			samplesCommand(e),
			listCommand(e),
		},
	}
}
