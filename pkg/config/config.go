// Package config loads wirecam's YAML configuration and builds the scene
// it describes.
package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/wirecam/pkg/control"
	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

// Config is the top-level configuration file. Angles are in degrees.
type Config struct {
	Viewport ViewportConfig      `yaml:"viewport"`
	Camera   CameraConfig        `yaml:"camera"`
	Clip     ClipConfig          `yaml:"clip"`
	Steps    StepsConfig         `yaml:"steps"`
	Colors   ColorConfig         `yaml:"colors"`
	Smooth   bool                `yaml:"smooth"`  // Spring-damped camera motion
	Workers  int                 `yaml:"workers"` // View transform goroutines
	Keys     map[string][]string `yaml:"keys,omitempty"`
	Scene    []SceneEntry        `yaml:"scene"`
}

// ViewportConfig sizes the snapshot image and the frame rate.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

// CameraConfig is the initial camera pose and lens.
type CameraConfig struct {
	Position Vec3    `yaml:"position"`
	Forward  Vec3    `yaml:"forward"`
	Up       Vec3    `yaml:"up"`
	FOV      float64 `yaml:"fov"`
	FOVMin   float64 `yaml:"fov_min"`
	FOVMax   float64 `yaml:"fov_max"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
}

// ClipConfig selects the clip policy and screen margin.
type ClipConfig struct {
	Policy string  `yaml:"policy"` // planar or spherical
	Margin float64 `yaml:"margin"`
}

// StepsConfig is the amount one key press moves the camera.
type StepsConfig struct {
	Move float64 `yaml:"move"`
	Look float64 `yaml:"look"`
	Tilt float64 `yaml:"tilt"`
	Zoom float64 `yaml:"zoom"`
}

// ColorConfig sets the frame colors.
type ColorConfig struct {
	Background Color `yaml:"background"`
	Near       Color `yaml:"near"` // Strokes without their own color
	Far        Color `yaml:"far"`  // Depth tint target, transparent to disable
}

// Vec3 is a point or direction written as a three-element sequence.
type Vec3 [3]float64

// Vec returns v as a math3d vector.
func (v Vec3) Vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Color is an RGBA color written as a "#rrggbb" hex string.
type Color color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" || s == "none" {
		*c = Color{}
		return nil
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	*c = Color{R: r, G: g, B: b, A: 255}
	return nil
}

// MarshalYAML implements yaml.Marshaler for Color.
func (c Color) MarshalYAML() (any, error) {
	if c.A == 0 {
		return "none", nil
	}
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex(), nil
}

// RGBA returns c as a color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}

// Default returns the built-in configuration: an 800x600 view of the cube
// grid with a 60° lens, near 30 and far 300.
func Default() Config {
	return Config{
		Viewport: ViewportConfig{Width: 800, Height: 600, FPS: 30},
		Camera: CameraConfig{
			Position: Vec3{55, 55, -150},
			Forward:  Vec3{0, 0, 1},
			Up:       Vec3{0, 1, 0},
			FOV:      60,
			FOVMin:   30,
			FOVMax:   90,
			Near:     30,
			Far:      300,
		},
		Clip:  ClipConfig{Policy: geom.ClipPlanar.String(), Margin: 1},
		Steps: StepsConfig{Move: 10, Look: 2.5, Tilt: 5, Zoom: 5},
		Colors: ColorConfig{
			Background: Color{30, 30, 40, 255},
			Near:       Color{0, 255, 128, 255},
			Far:        Color{40, 70, 90, 255},
		},
		Workers: 1,
		Scene:   []SceneEntry{{Kind: KindCubeGrid}},
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("need 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOVMin <= 0 || c.Camera.FOVMax >= 180 || c.Camera.FOVMin > c.Camera.FOVMax {
		return fmt.Errorf("need 0 < fov_min <= fov_max < 180, got %v..%v", c.Camera.FOVMin, c.Camera.FOVMax)
	}
	f, u := c.Camera.Forward.Vec().Normalize(), c.Camera.Up.Vec().Normalize()
	if f.Cross(u).LenSq() < 1e-12 {
		return fmt.Errorf("camera forward %v must be non-zero and not parallel to up %v", c.Camera.Forward, c.Camera.Up)
	}
	if c.Clip.Margin < 0 {
		return fmt.Errorf("clip margin must not be negative, got %v", c.Clip.Margin)
	}
	if _, err := geom.ParseClipPolicy(c.Clip.Policy); err != nil {
		return err
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	for i, e := range c.Scene {
		if err := e.validate(); err != nil {
			return fmt.Errorf("scene entry %d: %w", i, err)
		}
	}
	return nil
}

// NewCamera returns a camera in the configured pose.
func (c Config) NewCamera() *render.Camera {
	cam := render.NewCamera()
	cc := c.Camera
	cam.FOVMin = math3d.Radians(cc.FOVMin)
	cam.FOVMax = math3d.Radians(cc.FOVMax)
	cam.FOVDefault = math3d.Radians(cc.FOV)
	cam.SetFOV(cam.FOVDefault)
	cam.SetClipPlanes(cc.Near, cc.Far)
	cam.SetAspectRatio(float64(c.Viewport.Width) / float64(c.Viewport.Height))
	cam.SetPosition(cc.Position.Vec())
	cam.SetOrientation(cc.Forward.Vec(), cc.Up.Vec())
	return cam
}

// Pipeline returns a pipeline for a width x height viewport.
func (c Config) Pipeline(width, height int) (render.Pipeline, error) {
	policy, err := geom.ParseClipPolicy(c.Clip.Policy)
	if err != nil {
		return render.Pipeline{}, err
	}
	return render.Pipeline{
		Viewport: render.Viewport{Width: width, Height: height},
		Policy:   policy,
		Margin:   c.Clip.Margin,
		Workers:  c.Workers,
	}, nil
}

// ControlSteps converts the configured steps to radians where needed.
func (c Config) ControlSteps() control.Steps {
	return control.Steps{
		Move: c.Steps.Move,
		Look: math3d.Radians(c.Steps.Look),
		Tilt: math3d.Radians(c.Steps.Tilt),
		Zoom: math3d.Radians(c.Steps.Zoom),
	}
}

// KeyMap returns the default bindings with the configured overrides.
func (c Config) KeyMap() (control.KeyMap, error) {
	return control.DefaultKeyMap().Bind(c.Keys)
}

// Tint returns the depth tint for the configured colors.
func (c Config) Tint() render.DepthTint {
	return render.DepthTint{Near: c.Colors.Near.RGBA(), Far: c.Colors.Far.RGBA()}
}
