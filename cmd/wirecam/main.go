// wirecam - Terminal Wireframe Camera
// Fly a virtual camera through a line-mesh scene in your terminal, or render
// it headless to PNG frames.
//
// Controls (view):
//
//	W/S         - Move forward/back
//	A/D         - Move left/right
//	Up/Down     - Rise/fall
//	Q/E         - Zoom in/out
//	Space       - Reset zoom
//	I/K         - Look up/down
//	J/L         - Look left/right
//	U/O         - Tilt left/right
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/wirecam/pkg/config"
	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/logging"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	debug      bool
	logFile    string
	clip       string
	workers    int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "wirecam",
		Short: "Terminal wireframe camera",
		Long: "wirecam projects line meshes (built-in cubes, OBJ, glTF/GLB) through a\n" +
			"free-flying perspective camera and draws them back to front.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.StringVar(&opts.clip, "clip", "", "Clip policy override (planar or spherical)")
	pf.IntVar(&opts.workers, "workers", 0, "View transform goroutines (0 keeps the config value)")

	root.AddCommand(newViewCmd(opts), newSnapshotCmd(opts), newSegmentsCmd(opts))
	return root
}

// setup installs the logger and loads the config and scene. Model paths
// given on the command line replace the configured scene. The returned
// closer releases the log file, if any.
func (o *options) setup(ctx context.Context, models []string, stderrOK bool) (config.Config, geom.Scene, io.Closer, error) {
	closer, err := o.initLogging(stderrOK)
	if err != nil {
		return config.Config{}, geom.Scene{}, nil, err
	}

	cfg := config.Default()
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
		if err != nil {
			closer.Close()
			return config.Config{}, geom.Scene{}, nil, err
		}
	}
	if o.clip != "" {
		cfg.Clip.Policy = o.clip
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if len(models) > 0 {
		cfg.Scene = modelEntries(models)
	}
	if err := cfg.Validate(); err != nil {
		closer.Close()
		return config.Config{}, geom.Scene{}, nil, err
	}

	scene, err := cfg.BuildScene(ctx)
	if err != nil {
		closer.Close()
		return config.Config{}, geom.Scene{}, nil, err
	}
	logging.Logger().Debug("scene built", "primitives", scene.Len(), "clip", cfg.Clip.Policy)
	return cfg, scene, closer, nil
}

// modelEntries places each model, fitted to a 40-unit box, in a row along
// X at the center of the default grid.
func modelEntries(paths []string) []config.SceneEntry {
	entries := make([]config.SceneEntry, len(paths))
	for i, p := range paths {
		entries[i] = config.SceneEntry{
			Kind:      config.KindFile,
			Path:      p,
			Normalize: 40,
			Translate: config.Vec3{55 + float64(i)*60, 55, 30},
		}
	}
	return entries
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// initLogging installs a debug text handler when --debug is set. Without
// --log-file it logs to stderr, unless the caller owns the terminal.
func (o *options) initLogging(stderrOK bool) (io.Closer, error) {
	if !o.debug {
		return nopCloser{}, nil
	}

	var w io.Writer
	var closer io.Closer = nopCloser{}
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case stderrOK:
		w = os.Stderr
	default:
		return closer, nil
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return closer, nil
}
