package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/models"
)

// Scene entry kinds.
const (
	KindCube      = "cube"       // Single 8-vertex, 12-edge cube
	KindCubeFaces = "cube_faces" // Six colored quad rings
	KindCubeGrid  = "cube_grid"  // The four-cube grid
	KindFile      = "file"       // OBJ, glTF or GLB mesh
	KindAxes      = "axes"       // X, Y and Z axis lines of length size
	KindGrid      = "grid"       // XZ-plane grid of width size
)

// SceneEntry places one source of primitives in the world. The transform
// applies scale, then rotation about X, Y and Z in that order, then
// translation.
type SceneEntry struct {
	Kind      string  `yaml:"kind"`
	Path      string  `yaml:"path,omitempty"`      // For KindFile
	Normalize float64 `yaml:"normalize,omitempty"` // Fit a file mesh to this size
	Center    Vec3    `yaml:"center,omitempty"`    // For cubes
	Size      float64 `yaml:"size,omitempty"`      // For cubes, axes and grids, default 40
	Step      float64 `yaml:"step,omitempty"`      // Grid spacing, default size/10
	Translate Vec3    `yaml:"translate,omitempty"`
	Rotate    Vec3    `yaml:"rotate,omitempty"` // Degrees
	Scale     float64 `yaml:"scale,omitempty"`  // Uniform, default 1
	Color     Color   `yaml:"color,omitempty"`
}

func (e SceneEntry) validate() error {
	switch e.Kind {
	case KindCube, KindCubeFaces, KindCubeGrid, KindAxes, KindGrid:
	case KindFile:
		if e.Path == "" {
			return errors.New("file entry needs a path")
		}
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	if e.Size < 0 || e.Step < 0 || e.Scale < 0 || e.Normalize < 0 {
		return errors.New("size, step, scale and normalize must not be negative")
	}
	return nil
}

// Transform returns the entry's model matrix.
func (e SceneEntry) Transform() math3d.Mat4 {
	scale := e.Scale
	if scale == 0 {
		scale = 1
	}
	r := e.Rotate
	return math3d.Translate(e.Translate.Vec()).
		Mul(math3d.RotateZ(math3d.Radians(r[2]))).
		Mul(math3d.RotateY(math3d.Radians(r[1]))).
		Mul(math3d.RotateX(math3d.Radians(r[0]))).
		Mul(math3d.ScaleUniform(scale))
}

// BuildScene assembles the configured scene. File entries are loaded
// concurrently; primitives keep entry order.
func (c Config) BuildScene(ctx context.Context) (geom.Scene, error) {
	var paths []string
	for _, e := range c.Scene {
		if e.Kind == KindFile {
			paths = append(paths, e.Path)
		}
	}
	meshes, err := models.LoadAll(ctx, paths, 4)
	if err != nil {
		return geom.Scene{}, err
	}

	var prims []geom.Primitive
	next := 0
	for _, e := range c.Scene {
		var src []geom.Primitive
		switch e.Kind {
		case KindCube:
			src = []geom.Primitive{models.Cube(e.Center.Vec(), e.size())}
		case KindCubeFaces:
			src = models.CubeFaces(e.Center.Vec(), e.size())
		case KindCubeGrid:
			src = models.CubeGrid()
		case KindAxes:
			src = models.Axes(e.size())
		case KindGrid:
			step := e.Step
			if step == 0 {
				step = e.size() / 10
			}
			src = models.Grid(e.size(), step, models.GridColor)
		case KindFile:
			src = meshes[next].Primitives
			next++
			if e.Normalize > 0 {
				src = models.Normalize(src, e.Normalize)
			}
		default:
			return geom.Scene{}, fmt.Errorf("unknown scene kind %q", e.Kind)
		}

		m := e.Transform()
		for _, p := range src {
			p = p.Transform(m)
			if e.Color.A != 0 {
				p = p.WithColor(e.Color.RGBA())
			}
			prims = append(prims, p)
		}
	}
	return geom.NewScene(prims...), nil
}

func (e SceneEntry) size() float64 {
	if e.Size == 0 {
		return 40
	}
	return e.Size
}
