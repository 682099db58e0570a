package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/mandel/internal/analysis"
	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/export"
	"github.com/san-kum/mandel/internal/render"
	"github.com/san-kum/mandel/internal/storage"
	"github.com/san-kum/mandel/internal/viz"
)

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return withExit(exitBadArgs, err)
	}
	if err := cfg.Validate(); err != nil {
		return withExit(exitBadArgs, err)
	}

	values := analysis.Escapes(cfg.View(), cfg.Kind(), cfg.Color.MaxIterations)
	hist := analysis.NewHistogram(values, cfg.Color.MaxIterations, histBins)
	st := analysis.Summarize(values)

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	p.Fprintf(out, "view: %s, center %s, zoom %g\n", cfg.Kind(), cfg.Center, cfg.Zoom)
	p.Fprintf(out, "pixels: %d (%dx%d)\n", st.Pixels, cfg.Width, cfg.Height)
	p.Fprintf(out, "interior: %d (%.2f%%)\n", st.Interior, st.InteriorFraction*100)
	if st.Pixels > st.Interior {
		p.Fprintf(out, "escape: mean %.1f, range [%d, %d] of %d\n", st.MeanEscape, st.MinEscape, st.MaxEscape, cfg.Color.MaxIterations)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, hist.Plot(80, 15))

	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.HistogramToSVG(hist, 800, 300, "#00ccff")); err != nil {
			return withExit(exitOutput, err)
		}
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return withExit(exitBadArgs, err)
	}

	cols, rows := viz.TerminalSize()
	rows -= 2
	if rows < 1 {
		rows = 1
	}

	var sink interface {
		render.Sink
		String() string
	}
	dots := viz.NewDots()
	if interiorOut || svgPath != "" {
		cfg.Width, cfg.Height = cols*2, rows*4
		sink = dots
	} else {
		cfg.Width, cfg.Height = cols, rows*2
		sink = viz.NewTerminal()
	}
	if err := cfg.Validate(); err != nil {
		return withExit(exitBadArgs, err)
	}

	if err := render.Streaming(cfg.RenderConfig(sink, nil)); err != nil {
		return withExit(exitAllocation, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), sink.String())

	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.CanvasToSVG(dots.Canvas(), 2, "#000000")); err != nil {
			return withExit(exitOutput, err)
		}
	}
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return withExit(exitBadArgs, err)
	}
	if err := cfg.Validate(); err != nil {
		return withExit(exitBadArgs, err)
	}
	if !viz.IsTerminal() {
		return withExit(exitBadArgs, errors.New("explore needs an interactive terminal"))
	}
	return viz.RunExplorer(cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSIZE\tZOOM\tITER\tSTRATEGY\tELAPSED\tINTERIOR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%g\t%d\t%s\t%dms\t%.1f%%\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Zoom,
			run.Color.MaxIterations,
			run.Strategy,
			run.ElapsedMillis,
			run.Stats.InteriorFraction*100,
		)
	}

	return w.Flush()
}

const descWidth = 56

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		kind := "mandelbrot"
		if p.Julia {
			kind = "julia"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, kind, viz.Truncate(p.Description, descWidth))
	}
	return w.Flush()
}
