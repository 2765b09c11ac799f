package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	rows       int
	cols       int
	// shared by svg, record and trace
	at int64
	// svg
	svgOut string
	title  string
	// watch
	watchOut string
	watchFor time.Duration
	// record
	recordOut  string
	frameCount int
	scale      int
	// trace
	traceRow    int
	traceCol    int
	traceWindow time.Duration
	traceHeight int
	traceWidth  int
)

// main registers the glowgrid commands and runs the live view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "glowgrid",
		Short:         "animated radial color grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", 0, "grid rows (overrides config)")
	rootCmd.PersistentFlags().IntVar(&cols, "cols", 0, "grid cols (overrides config)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the grid in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render one snapshot as svg",
		Args:  cobra.NoArgs,
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().Int64Var(&at, "at", 0, "unix milliseconds to render at (default now)")
	svgCmd.Flags().StringVar(&title, "title", "", "document title")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "rewrite an svg file on every tick",
		Args:  cobra.NoArgs,
		RunE:  watchSVG,
	}
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "glowgrid.svg", "output file")
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "stop after this long (default until interrupted)")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record frames to an animated gif or mjpeg avi",
		Args:  cobra.NoArgs,
		RunE:  record,
	}
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "glowgrid.gif", "output file (.gif or .avi)")
	recordCmd.Flags().IntVar(&frameCount, "frames", 100, "number of frames")
	recordCmd.Flags().IntVar(&scale, "scale", 1, "pixels per surface unit")
	recordCmd.Flags().Int64Var(&at, "at", 0, "unix milliseconds of the first frame (default now)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot one cell's channels over time",
		Args:  cobra.NoArgs,
		RunE:  trace,
	}
	traceCmd.Flags().IntVar(&traceRow, "row", 0, "cell row")
	traceCmd.Flags().IntVar(&traceCol, "col", 0, "cell column")
	traceCmd.Flags().DurationVar(&traceWindow, "window", time.Minute, "time window to sample")
	traceCmd.Flags().Int64Var(&at, "at", 0, "unix milliseconds of the window start (default now)")
	traceCmd.Flags().IntVar(&traceHeight, "height", 10, "plot height")
	traceCmd.Flags().IntVar(&traceWidth, "width", 60, "plot width")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, svgCmd, watchCmd, recordCmd, traceCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
