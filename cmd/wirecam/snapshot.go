package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

func newSnapshotCmd(opts *options) *cobra.Command {
	var (
		out    string
		frames int
		orbit  float64
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "snapshot [model.obj|model.glb ...]",
		Short: "Render the scene to PNG frames",
		Long: "snapshot renders the scene headless. With --frames > 1 and --orbit the\n" +
			"camera circles the scene center, turning --orbit degrees per frame.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, scene, closer, err := opts.setup(ctx, args, true)
			if err != nil {
				return err
			}
			defer closer.Close()

			if width > 0 {
				cfg.Viewport.Width = width
			}
			if height > 0 {
				cfg.Viewport.Height = height
			}
			w, h := cfg.Viewport.Width, cfg.Viewport.Height
			if frames < 1 {
				return fmt.Errorf("frames must be at least 1, got %d", frames)
			}

			cam := cfg.NewCamera()
			cam.SetAspectRatio(float64(w) / float64(h))
			pipeline, err := cfg.Pipeline(w, h)
			if err != nil {
				return err
			}
			tint := cfg.Tint()
			fb := render.NewFramebuffer(w, h)

			var bar *progressbar.ProgressBar
			if frames > 1 && term.IsTerminal(int(os.Stdout.Fd())) {
				bar = progressbar.Default(int64(frames), "rendering")
			}

			center := sceneCenter(scene)
			start := cam.Position
			for i := range frames {
				if orbit != 0 {
					orbitCamera(cam, start, center, math3d.Radians(orbit*float64(i)))
				}
				frame, err := pipeline.Frame(ctx, scene, cam)
				if err != nil {
					return fmt.Errorf("render frame %d: %w", i, err)
				}
				fb.Clear(cfg.Colors.Background.RGBA())
				fb.DrawFrame(frame, tint)

				path := framePath(out, i, frames)
				if err := fb.SavePNG(path); err != nil {
					return err
				}
				if bar != nil {
					_ = bar.Add(1)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d segments\n", path, frame.Stats.Segments)
				}
			}
			if bar != nil {
				_ = bar.Finish()
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "wirecam.png", "Output file; frame numbers are inserted before the extension")
	f.IntVarP(&frames, "frames", "n", 1, "Number of frames")
	f.Float64Var(&orbit, "orbit", 0, "Degrees to orbit the scene center per frame")
	f.IntVar(&width, "width", 0, "Image width (0 keeps the config value)")
	f.IntVar(&height, "height", 0, "Image height (0 keeps the config value)")
	return cmd
}

// framePath inserts a zero-padded frame number before the extension when
// more than one frame is rendered.
func framePath(out string, i, frames int) string {
	if frames == 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", out[:len(out)-len(ext)], i, ext)
}

// sceneCenter returns the center of the scene's bounding box.
func sceneCenter(s geom.Scene) math3d.Vec3 {
	if s.Len() == 0 {
		return math3d.Zero3()
	}
	lo, hi := s.At(0).Bounds()
	for _, p := range s.Primitives()[1:] {
		plo, phi := p.Bounds()
		lo, hi = lo.Min(plo), hi.Max(phi)
	}
	return lo.Add(hi).Scale(0.5)
}

// orbitCamera places cam at start rotated by angle about the vertical axis
// through center, looking at center.
func orbitCamera(cam *render.Camera, start, center math3d.Vec3, angle float64) {
	offset := math3d.RotateY(angle).MulDir(start.Sub(center))
	cam.SetPosition(center.Add(offset))
	cam.SetOrientation(center.Sub(cam.Position), math3d.Up())
}
