// Package geom implements the wireframe geometry pipeline: vertices, edges,
// primitives and scenes, each transformed by value.
//
// A value lives in whichever space the pipeline stage put it in (model,
// world, view, clip or screen); the space is not tagged on the type.
package geom

import (
	"errors"
	"math"

	"github.com/taigrr/wirecam/pkg/math3d"
)

var (
	// ErrDegenerate is returned when a primitive has fewer than two
	// vertices or an edge that connects a vertex to itself.
	ErrDegenerate = errors.New("degenerate primitive")

	// ErrEdgeIndex is returned when an edge references a vertex outside
	// the primitive's vertex buffer.
	ErrEdgeIndex = errors.New("edge index out of range")

	// ErrNonFiniteDepth is returned by Scene.Sorted when a primitive's
	// distance to the camera is NaN or infinite. It signals a defect
	// upstream (a primitive with broken coordinates survived culling).
	ErrNonFiniteDepth = errors.New("non-finite depth")
)

// Vertex is a point in the current pipeline space.
type Vertex struct {
	Position math3d.Vec3
}

// V creates a vertex at (x, y, z).
func V(x, y, z float64) Vertex {
	return Vertex{Position: math3d.V3(x, y, z)}
}

// Transform applies m to the vertex with w=1 and divides by the resulting
// w. For affine matrices the divide is a no-op. A point on the
// projection's singular plane comes back non-finite; this is not an error.
func (v Vertex) Transform(m math3d.Mat4) Vertex {
	return Vertex{Position: m.MulPoint(v.Position)}
}

// IsFinite reports whether every coordinate is finite. Non-finite
// vertices are "at infinity" and never reach the drawing surface.
func (v Vertex) IsFinite() bool {
	return v.Position.IsFinite()
}

// IsVisible reports whether the vertex lies inside the clip volume.
func (v Vertex) IsVisible(clip ClipVolume) bool {
	return clip.Contains(v.Position)
}

// ScreenCoords maps normalized device coordinates in [-1, 1] to pixels:
//
//	x' = (x+1) * 0.5 * width
//	y' = (y+1) * 0.5 * height
//	z' = 0
//
// The pixel origin is the bottom-left corner; (-1,-1) maps to (0,0) and
// (1,1) to (width, height). Depth is discarded.
//
// ok is false when the input is non-finite. When margin is positive, ok is
// also false for pixels more than margin*width (or margin*height) outside
// the viewport. The margin is deliberately loose so edges that leave the
// screen are kept.
func (v Vertex) ScreenCoords(width, height int, margin float64) (Vertex, bool) {
	if !v.IsFinite() {
		return Vertex{}, false
	}

	w, h := float64(width), float64(height)
	x := (v.Position.X + 1) * 0.5 * w
	y := (v.Position.Y + 1) * 0.5 * h

	if margin > 0 {
		mx, my := margin*w, margin*h
		if x < -mx || x > w+mx || y < -my || y > h+my {
			return Vertex{}, false
		}
	}
	return Vertex{Position: math3d.V3(x, y, 0)}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
