package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSegmentsCmd(opts *options) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "segments [model.obj|model.glb ...]",
		Short: "Print the frame's screen-space segments, back to front",
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
			cam := cfg.NewCamera()
			cam.SetAspectRatio(float64(w) / float64(h))

			pipeline, err := cfg.Pipeline(w, h)
			if err != nil {
				return err
			}
			frame, err := pipeline.Frame(ctx, scene, cam)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range frame.Strokes {
				fmt.Fprintf(out, "%.3f %.3f %.3f %.3f %.2f\n", s.P0.X, s.P0.Y, s.P1.X, s.P1.Y, s.Depth)
			}
			st := frame.Stats
			fmt.Fprintf(cmd.ErrOrStderr(), "%d primitives, %d culled, %d dropped, %d segments\n",
				st.Primitives, st.Culled, st.Dropped, st.Segments)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Viewport width (0 keeps the config value)")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height (0 keeps the config value)")
	return cmd
}
