package geom

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/wirecam/pkg/logging"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// Scene is an insertion-ordered collection of primitives. Every operation
// returns a new Scene, so a frame can be derived from the same scene and
// camera state any number of times with the same result.
type Scene struct {
	prims []Primitive
}

// NewScene creates a scene holding prims in order.
func NewScene(prims ...Primitive) Scene {
	return Scene{prims: slices.Clone(prims)}
}

// Len returns the number of primitives.
func (s Scene) Len() int {
	return len(s.prims)
}

// At returns the i-th primitive.
func (s Scene) At(i int) Primitive {
	return s.prims[i]
}

// Primitives returns a copy of the primitive list.
func (s Scene) Primitives() []Primitive {
	return slices.Clone(s.prims)
}

// Append returns a scene with prims added at the end.
func (s Scene) Append(prims ...Primitive) Scene {
	out := make([]Primitive, 0, len(s.prims)+len(prims))
	out = append(out, s.prims...)
	out = append(out, prims...)
	return Scene{prims: out}
}

// Transform maps every primitive through m.
func (s Scene) Transform(m math3d.Mat4) Scene {
	out := make([]Primitive, len(s.prims))
	for i, p := range s.prims {
		out[i] = p.Transform(m)
	}
	return Scene{prims: out}
}

// TransformParallel is Transform fanned out over up to workers goroutines.
// Primitives are independent, so the result is identical to Transform.
func (s Scene) TransformParallel(ctx context.Context, m math3d.Mat4, workers int) (Scene, error) {
	if workers <= 1 || len(s.prims) < 2 {
		return s.Transform(m), nil
	}

	out := make([]Primitive, len(s.prims))
	chunk := (len(s.prims) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(s.prims); start += chunk {
		end := min(start+chunk, len(s.prims))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = s.prims[i].Transform(m)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Scene{}, fmt.Errorf("transform scene: %w", err)
	}
	return Scene{prims: out}, nil
}

// Clip keeps the primitives that are fully inside the clip volume. It runs
// in world space, before the view transform, since near and far are
// measured from the camera pose.
func (s Scene) Clip(clip ClipVolume) Scene {
	out := make([]Primitive, 0, len(s.prims))
	for _, p := range s.prims {
		if p.IsVisible(clip) {
			out = append(out, p)
		}
	}
	return Scene{prims: out}
}

// ScreenCoords maps every primitive to pixels, dropping those with an
// invalid vertex.
func (s Scene) ScreenCoords(width, height int, margin float64) Scene {
	out := make([]Primitive, 0, len(s.prims))
	for _, p := range s.prims {
		sp, ok := p.ScreenCoords(width, height, margin)
		if !ok {
			logging.Logger().Debug("primitive dropped at screen mapping", "name", p.Name)
			continue
		}
		out = append(out, sp)
	}
	return Scene{prims: out}
}

// Sorted orders primitives back to front for the painter's algorithm:
// farthest centroid first, nearest last, so nearer geometry is drawn over
// farther geometry. Equal distances keep insertion order.
//
// A NaN or infinite distance returns ErrNonFiniteDepth.
func (s Scene) Sorted(eye math3d.Vec3) (Scene, error) {
	type keyed struct {
		p    Primitive
		dist float64
	}

	ks := make([]keyed, len(s.prims))
	for i, p := range s.prims {
		d := p.DistanceTo(eye)
		if !finite(d) {
			return Scene{}, fmt.Errorf("%w: primitive %d (%q) at distance %v", ErrNonFiniteDepth, i, p.Name, d)
		}
		ks[i] = keyed{p: p, dist: d}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		return cmp.Compare(b.dist, a.dist)
	})

	out := make([]Primitive, len(ks))
	for i, k := range ks {
		out[i] = k.p
	}
	return Scene{prims: out}, nil
}

// Segments returns every primitive's segments in scene order.
func (s Scene) Segments() []Segment {
	var segs []Segment
	for _, p := range s.prims {
		segs = append(segs, p.Segments()...)
	}
	return segs
}
