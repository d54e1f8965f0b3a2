package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/ttacon/chalk"

	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/core/scene"
	"chosenoffset.com/facing/internal/viewfactor"
)

func printReport(w io.Writer, r *scene.Report, color bool) {
	fmt.Fprintf(w, "Scene: %s\n", r.Scene)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSEGMENT\tMIDPOINT\tNORMALS\tINWARD")
	for _, sh := range r.Shapes {
		inward := "-"
		if sh.Inward >= 0 {
			inward = sh.Normals[sh.Inward].String()
		}
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v %v\t%s\n",
			sh.Name, sh.Segment, sh.Midpoint, sh.Normals[0], sh.Normals[1], inward)
	}
	tw.Flush()

	if len(r.Facing) > 0 {
		fmt.Fprintln(w, "Facing:")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range r.Facing {
			fmt.Fprintf(tw, "  %s %v\t%s %v\tdot=%g\tdistance=%.4f\n",
				f.A, f.Pair.A, f.B, f.Pair.B, f.Pair.Dot, f.Pair.Distance)
		}
		tw.Flush()
	}

	if len(r.Ambiguous) > 0 {
		fmt.Fprintln(w, "No facing normals:")
		for _, p := range r.Ambiguous {
			fmt.Fprintf(w, "  %s / %s\n", p[0], p[1])
		}
	}

	if len(r.Crossings) > 0 {
		fmt.Fprintln(w, "Crossings:")
		for _, c := range r.Crossings {
			fmt.Fprintf(w, "  %s x %s at %v\n", c.A, c.B, c.Point)
		}
	}

	status := r.Status()
	if !color {
		fmt.Fprintln(w, status)
		return
	}
	clr := chalk.Green
	if r.AnyIntersection() {
		clr = chalk.Red
	}
	fmt.Fprint(w, clr, status, chalk.Reset, "\n")
}

func printViewFactors(w io.Writer, s *scene.Scene, res *viewfactor.Result) {
	segments := make(map[string]geom.Segment, len(s.Shapes))
	for _, sh := range s.Shapes {
		segments[sh.Name] = sh.Segment
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tF\tSTDERR\tHITS\tCROSSED-STRINGS")
	for _, src := range res.Sources {
		for _, est := range src.Targets {
			analytic := "-"
			if f, err := viewfactor.CrossedStrings(segments[src.Source], segments[est.Target]); err == nil {
				analytic = fmt.Sprintf("%.4f", f)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%d\t%s\n",
				src.Source, est.Target, est.ViewFactor, est.StdErr, est.Hits, analytic)
		}
	}
	tw.Flush()

	for _, src := range res.Sources {
		fmt.Fprintf(w, "%s: %d of %d rays escaped\n", src.Source, src.Escaped, src.Emitted)
	}
	for _, name := range res.Skipped {
		fmt.Fprintf(w, "%s: skipped, no side faces the scene centre\n", name)
	}
}

func printCatalog(w io.Writer, entries []scene.Entry, logger logrus.FieldLogger) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFORMAT\tSEGMENTS\tPATH")
	for _, entry := range entries {
		count := "invalid"
		s, err := scene.Load(entry.Path)
		if err != nil {
			logger.WithError(err).WithField("path", entry.Path).Warn("unreadable scene")
		} else {
			count = fmt.Sprint(len(s.Shapes))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.Name, entry.Format, count, entry.Path)
	}
	tw.Flush()
}
