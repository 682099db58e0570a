package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/render"
)

const (
	versionNumber = 18
	versionDate   = "2017-05-06"

	defaultBins = 60
)

// Exit statuses.
const (
	exitOK         = 0
	exitBadArgs    = 1
	exitAllocation = 2
	exitOutput     = 3
)

var (
	dataDir string
	verbose bool

	zoom        float64
	centerReal  float64
	centerImag  float64
	iterations  int
	hueOffset   float64
	hueLimiter  float64
	lowMemory   bool
	threads     int
	constLight  float64
	maxLight    float64
	lightDist   float64
	julia       bool
	juliaReal   float64
	juliaImag   float64
	outPath     string
	format      string
	thumbnail   int
	maxMemory   int64
	configFile  string
	preset      string
	saveRun     bool
	histBins    int
	interiorOut bool
	svgPath     string

	samples int
	seed    int64
)

// exitError carries the process exit status alongside the cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, render.ErrAllocation) {
		return exitAllocation
	}
	return exitBadArgs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(os.Stderr, "Error: %s\n", line)
		}
		if exitCode(err) == exitBadArgs {
			fmt.Fprintln(os.Stderr, "Use -h for additional help.")
		}
	}
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mandel",
		Short:         "mandelbrot and julia set renderer",
		Version:       fmt.Sprintf("%d, %s", versionNumber, versionDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}
	rootCmd.SetVersionTemplate("mandel {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mandel", "data directory for saved runs")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log render progress")

	renderCmd := &cobra.Command{
		Use:   "render [width] [height]",
		Short: "render an image",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runRender,
	}
	addViewFlags(renderCmd)
	addOutputFlags(renderCmd)
	renderCmd.Flags().StringVar(&outPath, "out", config.DefaultOutput, "output file")
	renderCmd.Flags().BoolVar(&saveRun, "save-run", false, "record the run and its histogram in the data directory")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml] [width] [height]",
		Short: "render every step of a scenario file",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  runBatch,
	}
	addViewFlags(batchCmd)
	addOutputFlags(batchCmd)

	areaCmd := &cobra.Command{
		Use:   "area",
		Short: "estimate the area of the set by random sampling",
		Args:  cobra.NoArgs,
		RunE:  runArea,
	}
	addViewFlags(areaCmd)
	areaCmd.Flags().IntVar(&samples, "samples", 1000000, "number of random points")
	areaCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	statsCmd := &cobra.Command{
		Use:   "stats [width] [height]",
		Short: "plot the escape value histogram of a view",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runStats,
	}
	addViewFlags(statsCmd)
	statsCmd.Flags().IntVar(&histBins, "bins", defaultBins, "histogram bins")
	statsCmd.Flags().StringVar(&svgPath, "svg", "", "also write the histogram as an SVG bar chart")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "draw a view in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	addViewFlags(previewCmd)
	previewCmd.Flags().BoolVar(&interiorOut, "interior", false, "draw only the set interior in braille")
	previewCmd.Flags().StringVar(&svgPath, "svg", "", "also write the interior as SVG (implies --interior)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "explore interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addViewFlags(exploreCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mandel %d, %s\n", versionNumber, versionDate)
		},
	}

	rootCmd.AddCommand(renderCmd, batchCmd, areaCmd, statsCmd, previewCmd, exploreCmd, listCmd, presetsCmd, versionCmd)
	return rootCmd
}

// addViewFlags registers the flags shared by every command that renders.
func addViewFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64VarP(&zoom, "zoom", "z", config.DefaultZoom, "zoom level")
	f.Float64VarP(&centerReal, "real", "x", 0, "real part of the graph center")
	f.Float64VarP(&centerImag, "imag", "y", 0, "imaginary part of the graph center")
	f.IntVarP(&iterations, "iterations", "i", config.DefaultMaxIterations, "max iteration count")
	f.Float64VarP(&hueOffset, "hue-offset", "o", 0, "hue offset")
	f.Float64VarP(&hueLimiter, "hue-limiter", "l", config.DefaultHueLimiter, "hue limiter")
	f.Float64VarP(&constLight, "constant-light", "c", config.DefaultConstantLight, "constant lightness; 0 enables -b and -d")
	f.Float64VarP(&maxLight, "max-light", "b", config.DefaultMaxLight, "maximum lightness (0 to 1)")
	f.Float64VarP(&lightDist, "light-distribution", "d", config.DefaultLightDistribution, "light distribution (higher is more spread out)")
	f.BoolVarP(&julia, "julia", "j", false, "render a Julia set")
	f.Float64Var(&juliaReal, "julia-real", config.DefaultJuliaReal, "real part of the Julia constant")
	f.Float64Var(&juliaImag, "julia-imag", config.DefaultJuliaImag, "imaginary part of the Julia constant")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use a named view (see presets)")
}

// addOutputFlags registers the flags that control how an image is produced.
func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&lowMemory, "low-memory", "m", false, "low memory mode (write straight to disk)")
	f.IntVarP(&threads, "threads", "t", config.DefaultWorkers, "thread count (overrides low memory)")
	f.Int64Var(&maxMemory, "max-memory", 0, "cap on pixel grid bytes (0 is unlimited; the OS then decides)")
	f.StringVar(&format, "format", "", "output format: tga, png, bmp, tiff (default from extension)")
	f.IntVar(&thumbnail, "thumbnail", 0, "also write a PNG thumbnail fitting NxN")
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	render.SetLogger(slog.New(h))
}
