package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/wirecam/pkg/config"
	"github.com/taigrr/wirecam/pkg/control"
	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

func newViewCmd(opts *options) *cobra.Command {
	var fps int
	var smooth bool
	cmd := &cobra.Command{
		Use:   "view [model.obj|model.glb ...]",
		Short: "Fly through the scene in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, scene, closer, err := opts.setup(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			defer closer.Close()

			if cmd.Flags().Changed("fps") {
				cfg.Viewport.FPS = fps
			}
			if cmd.Flags().Changed("smooth") {
				cfg.Smooth = smooth
			}
			title := "cube grid"
			if len(args) > 0 {
				names := make([]string, len(args))
				for i, a := range args {
					names[i] = filepath.Base(a)
				}
				title = strings.Join(names, ", ")
			}
			return runView(cmd.Context(), cfg, scene, title)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Target FPS")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "Spring-damped camera motion")
	return cmd
}

// HUD renders an overlay with camera state
type HUD struct {
	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	show      bool
}

// NewHUD creates a new HUD
func NewHUD(title string) *HUD {
	return &HUD{title: title, fpsTime: time.Now(), show: true}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, cam *render.Camera, stats render.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !h.show {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.title, reset)

	segs := fmt.Sprintf(" %d/%d drawn, %d segs ", stats.Drawn, stats.Primitives, stats.Segments)
	fmt.Printf("%s%s%s%s%s", moveTo(1, max(width-len(segs), 1)), bgBlack, fgCyan, segs, reset)

	p := cam.Position
	pose := fmt.Sprintf(" pos %.0f,%.0f,%.0f  fov %.0f°  ?: hud  esc: quit ",
		p.X, p.Y, p.Z, math3d.Degrees(cam.FOV))
	fmt.Printf("%s%s%s%s%s", moveTo(height, 1), bgBlack, fgWhite, pose, reset)
}

// input is what the event goroutine hands to the frame loop.
type input struct {
	cmd       control.Command
	toggleHUD bool
	resize    bool
	width     int
	height    int
}

func runView(ctx context.Context, cfg config.Config, scene geom.Scene, title string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	presenter := render.NewTerminalPresenter(term, width, height)
	fbWidth, fbHeight := presenter.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	cam := cfg.NewCamera()
	cam.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	fps := max(cfg.Viewport.FPS, 1)
	rig := control.NewRig(cam, cfg.ControlSteps(), fps, cfg.Smooth)
	pipeline, err := cfg.Pipeline(fbWidth, fbHeight)
	if err != nil {
		return err
	}
	tint := cfg.Tint()
	bg := cfg.Colors.Background.RGBA()

	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	hud := NewHUD(title)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The event goroutine never touches the camera; it only forwards
	// commands to the frame loop.
	inputs := make(chan input, 64)
	go func() {
		for ev := range term.Events() {
			var in input
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				in = input{resize: true, width: ev.Width, height: ev.Height}
			case uv.KeyPressEvent:
				if ev.MatchString("?", "shift+/") {
					in = input{toggleHUD: true}
					break
				}
				cmd, ok := keys.Match(ev)
				if !ok {
					continue
				}
				in = input{cmd: cmd}
			default:
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	targetDuration := time.Second / time.Duration(fps)
	var stats render.FrameStats

	for {
		now := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case in := <-inputs:
				switch {
				case in.resize:
					width, height = in.width, in.height
					term.Erase()
					term.Resize(width, height)
					presenter = render.NewTerminalPresenter(term, width, height)
					fbWidth, fbHeight = presenter.FramebufferSize()
					fb.Resize(fbWidth, fbHeight)
					cam.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
					pipeline.Viewport = render.Viewport{Width: fbWidth, Height: fbHeight}
				case in.toggleHUD:
					hud.show = !hud.show
				default:
					if rig.Apply(in.cmd) {
						return nil
					}
				}
			default:
				break drain
			}
		}

		rig.Update()

		frame, err := pipeline.Frame(ctx, scene, cam)
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		stats = frame.Stats

		fb.Clear(bg)
		fb.DrawFrame(frame, tint)
		if err := presenter.Present(fb); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, cam, stats)

		if elapsed := time.Since(now); elapsed < targetDuration {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(targetDuration - elapsed):
			}
		}
	}
}
