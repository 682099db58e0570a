package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/mandel/internal/analysis"
	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/imgfmt"
	"github.com/san-kum/mandel/internal/render"
	"github.com/san-kum/mandel/internal/storage"
	"github.com/san-kum/mandel/internal/viz"
)

var errResolution = errors.New("resolution is missing one or more arguments")

// buildConfig layers defaults, preset, config file, explicitly set flags and
// finally the positional resolution.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("zoom") {
		cfg.Zoom = zoom
	}
	if changed("real") {
		cfg.Center.Real = centerReal
	}
	if changed("imag") {
		cfg.Center.Imag = centerImag
	}
	if changed("iterations") {
		cfg.Color.MaxIterations = abs(iterations)
	}
	if changed("hue-offset") {
		cfg.Color.HueOffset = hueOffset
	}
	if changed("hue-limiter") {
		cfg.Color.HueLimiter = hueLimiter
	}
	if changed("constant-light") {
		cfg.Color.ConstantLightness = constLight
	}
	if changed("max-light") {
		cfg.Color.MaxLightness = maxLight
	}
	if changed("light-distribution") {
		cfg.Color.LightDistribution = lightDist
	}
	if changed("julia") {
		cfg.Julia = julia
	}
	if changed("julia-real") {
		cfg.JuliaConstant.Real = juliaReal
	}
	if changed("julia-imag") {
		cfg.JuliaConstant.Imag = juliaImag
	}
	if changed("low-memory") {
		cfg.LowMemory = lowMemory
	}
	if changed("threads") {
		cfg.Workers = abs(threads)
	}
	if changed("max-memory") {
		cfg.MaxMemory = maxMemory
	}
	if changed("out") {
		cfg.Output.Path = outPath
	}
	if changed("format") {
		cfg.Output.Format = format
	}
	if changed("thumbnail") {
		cfg.Output.Thumbnail = thumbnail
	}

	if err := applyResolution(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyResolution reads "width height"; negative values are taken as their
// magnitude.
func applyResolution(cfg *config.Config, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return errResolution
	}

	w, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("width %q: %w", args[0], err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("height %q: %w", args[1], err)
	}
	cfg.Width, cfg.Height = abs(w), abs(h)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func outputFormat(cfg *config.Config) (imgfmt.Format, error) {
	if cfg.Output.Format != "" {
		return imgfmt.ParseFormat(cfg.Output.Format)
	}
	return imgfmt.FormatFromPath(cfg.Output.Path)
}

func thumbnailPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.png"
}

// renderResult describes a finished image.
type renderResult struct {
	format   imgfmt.Format
	strategy render.Strategy
	elapsed  time.Duration
}

// renderFile renders cfg to its output path, plus the thumbnail when asked.
// Errors carry the process exit status.
func renderFile(cfg *config.Config) (renderResult, error) {
	var res renderResult
	if err := cfg.Validate(); err != nil {
		return res, withExit(exitBadArgs, err)
	}

	f, err := outputFormat(cfg)
	if err != nil {
		return res, withExit(exitBadArgs, err)
	}
	if err := imgfmt.CheckSize(f, cfg.Width, cfg.Height); err != nil {
		return res, withExit(exitBadArgs, err)
	}
	res.format = f

	file, err := os.Create(cfg.Output.Path)
	if err != nil {
		return res, withExit(exitOutput, err)
	}
	defer file.Close()

	enc, err := imgfmt.New(file, f)
	if err != nil {
		return res, withExit(exitBadArgs, err)
	}

	var sink imgfmt.Encoder = enc
	var thumb *imgfmt.Image
	if cfg.Output.Thumbnail > 0 {
		if img, ok := enc.(*imgfmt.Image); ok {
			thumb = img
		} else {
			thumb = imgfmt.NewImage(nil, imgfmt.FormatPNG)
			sink = imgfmt.Tee(enc, thumb)
		}
	}

	var alloc render.Allocator
	if cfg.MaxMemory > 0 {
		alloc = render.NewPoolAllocator(cfg.MaxMemory)
	}

	res.strategy = cfg.Strategy()
	start := time.Now()
	renderErr := render.Render(cfg.RenderConfig(sink, alloc), res.strategy)
	res.elapsed = time.Since(start)

	if renderErr != nil {
		return res, renderFailure(cfg, res.strategy, renderErr)
	}
	if err := sink.Flush(); err != nil {
		return res, withExit(exitOutput, fmt.Errorf("write %s: %w", cfg.Output.Path, err))
	}
	if err := file.Close(); err != nil {
		return res, withExit(exitOutput, fmt.Errorf("close %s: %w", cfg.Output.Path, err))
	}

	if thumb != nil {
		path := thumbnailPath(cfg.Output.Path)
		if err := imgfmt.Thumbnail(thumb.Image(), cfg.Output.Thumbnail, path); err != nil {
			return res, withExit(exitOutput, fmt.Errorf("thumbnail: %w", err))
		}
	}
	return res, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return withExit(exitBadArgs, err)
	}

	res, err := renderFile(cfg)
	if err != nil {
		return err
	}

	runID := ""
	if saveRun {
		runID, err = recordRun(cfg, res)
		if err != nil {
			return err
		}
	}

	printSummary(cmd, cfg, res, runID)
	return nil
}

func renderFailure(cfg *config.Config, strategy render.Strategy, err error) error {
	if errors.Is(err, render.ErrAllocation) {
		p := message.NewPrinter(language.English)
		return withExit(exitAllocation, fmt.Errorf("%s\n%w",
			p.Sprintf("could not allocate memory for image (approx. %d bytes)", cfg.ImageBytes()), err))
	}
	if strategy == render.StrategyStreaming {
		err = fmt.Errorf("abnormal exit from low-memory rendering: %w", err)
	}
	return withExit(exitOutput, err)
}

func recordRun(cfg *config.Config, res renderResult) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}

	values := analysis.Escapes(cfg.View(), cfg.Kind(), cfg.Color.MaxIterations)
	return st.Save(storage.Run{
		View:      cfg.View(),
		Kind:      cfg.Kind(),
		Color:     cfg.Color,
		Strategy:  res.strategy.String(),
		Output:    cfg.Output.Path,
		Format:    res.format.String(),
		Elapsed:   res.elapsed,
		Histogram: analysis.NewHistogram(values, cfg.Color.MaxIterations, defaultBins),
		Stats:     analysis.Summarize(values),
	})
}

func printSummary(cmd *cobra.Command, cfg *config.Config, res renderResult, runID string) {
	p := message.NewPrinter(language.English)

	var s strings.Builder
	s.WriteString(viz.Metric("Output", cfg.Output.Path) + "\n")
	s.WriteString(viz.Metric("Format", res.format.String()) + "\n")
	s.WriteString(viz.Metric("Size", p.Sprintf("%dx%d (%d bytes)", cfg.Width, cfg.Height, cfg.ImageBytes())) + "\n")
	s.WriteString(viz.Metric("Fractal", cfg.Kind().String()) + "\n")
	s.WriteString(viz.Metric("Strategy", fmt.Sprintf("%s, %d worker(s)", res.strategy, cfg.Workers)) + "\n")
	s.WriteString(viz.Metric("Elapsed", res.elapsed.Round(time.Millisecond).String()))
	if runID != "" {
		s.WriteString("\n" + viz.Metric("Run", runID))
	}
	if res.strategy == render.StrategyParallel && cfg.Height%cfg.Workers != 0 {
		kept := cfg.Height / cfg.Workers * cfg.Workers
		s.WriteString("\n" + viz.StatusBusy.Render(fmt.Sprintf("only %d of %d rows rendered", kept, cfg.Height)))
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.GlassPanel.Render(s.String()))
}
