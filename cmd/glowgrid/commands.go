package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glowgrid/internal/animator"
	"github.com/san-kum/glowgrid/internal/config"
	"github.com/san-kum/glowgrid/internal/export"
	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
	"github.com/san-kum/glowgrid/internal/tui"
	"github.com/spf13/cobra"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(10)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func newLogger() (*log.Logger, error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "glowgrid",
		ReportTimestamp: true,
		Level:           lvl,
	})
	return logger, nil
}

// loadConfig resolves defaults, then the preset, then the config file, then
// explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func startTime() time.Time {
	if at != 0 {
		return time.UnixMilli(at)
	}
	return time.Now()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, cfg, logger)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	palette, err := cfg.GetPalette()
	if err != nil {
		return err
	}
	initial, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return err
	}

	snap := initial.Next(cfg.GetWave(), startTime().UnixMilli())
	e := export.NewSVG(palette)
	e.Title = title

	if svgOut == "" {
		return e.Render(cmd.OutOrStdout(), snap)
	}
	return writeFileAtomic(svgOut, func(w io.Writer) error { return e.Render(w, snap) })
}

func watchSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	palette, err := cfg.GetPalette()
	if err != nil {
		return err
	}
	initial, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return err
	}

	a, err := animator.New(initial, cfg.GetAnimatorConfig())
	if err != nil {
		return err
	}
	a.SetLogger(logger)

	e := export.NewSVG(palette)
	a.AddPublisher(animator.PublisherFunc(func(s *grid.Snapshot) {
		if err := writeFileAtomic(watchOut, func(w io.Writer) error { return e.Render(w, s) }); err != nil {
			logger.Error("write snapshot", "path", watchOut, "err", err)
		}
	}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	if err := a.Start(ctx); err != nil {
		return err
	}
	logger.Info("watching", "path", watchOut, "rows", cfg.Rows, "cols", cfg.Cols, "interval", cfg.Interval())

	<-ctx.Done()
	a.Stop()
	logger.Info("stopped", "ticks", a.Ticks())
	return nil
}

func record(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	if frameCount <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frameCount)
	}
	palette, err := cfg.GetPalette()
	if err != nil {
		return err
	}
	initial, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return err
	}

	frames := export.Frames(initial, cfg.GetWave(), startTime(), cfg.Interval(), frameCount)
	r := render.NewRasterizer(palette, scale)

	start := time.Now()
	switch ext := strings.ToLower(filepath.Ext(recordOut)); ext {
	case ".gif":
		err = writeFileAtomic(recordOut, func(w io.Writer) error {
			return export.WriteGIF(w, r, frames, cfg.Interval())
		})
	case ".avi":
		err = export.WriteMJPEG(recordOut, r, frames, cfg.Interval())
	default:
		return fmt.Errorf("unsupported output format %q (use .gif or .avi)", ext)
	}
	if err != nil {
		return err
	}

	logger.Info("recorded", "path", recordOut, "frames", len(frames), "elapsed", time.Since(start))
	return nil
}

func trace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if traceRow < 0 || traceRow >= cfg.Rows || traceCol < 0 || traceCol >= cfg.Cols {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", traceRow, traceCol, cfg.Rows, cfg.Cols)
	}
	if traceWidth < 2 {
		return fmt.Errorf("width must be at least 2, got %d", traceWidth)
	}

	r, g, b := sampleCell(cfg.GetWave(), cfg.Rows, cfg.Cols, traceRow, traceCol, startTime(), traceWindow, traceWidth)
	chart := asciigraph.PlotMany([][]float64{r, g, b},
		asciigraph.Height(traceHeight),
		asciigraph.Width(traceWidth),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption(fmt.Sprintf("cell (%d,%d) over %s", traceRow, traceCol, traceWindow)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), chart)
	return nil
}

// sampleCell evaluates the channels of one cell at n evenly spaced instants.
func sampleCell(w grid.Wave, rows, cols, i, j int, start time.Time, window time.Duration, n int) (r, g, b []float64) {
	r, g, b = make([]float64, n), make([]float64, n), make([]float64, n)
	step := window / time.Duration(n-1)
	for k := 0; k < n; k++ {
		t := start.Add(time.Duration(k) * step).UnixMilli()
		r[k], g[k], b[k] = w.Color(i, j, rows, cols, float64(t))
	}
	return r, g, b
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("presets:"))
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(out, "  %s%s\n", nameStyle.Render(name), dimStyle.Render(fmt.Sprintf(
			"%dx%d  %s/%s  %dms  div %.0f/%.0f/%.0f",
			p.Rows, p.Cols, p.Background, p.Stroke, p.IntervalMs, p.Wave.RDiv, p.Wave.GDiv, p.Wave.BDiv)))
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "glowgrid.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// writeFileAtomic writes through a temp file in the target directory so
// readers never observe a partial file.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
