package render

import (
	"context"
	"testing"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
)

func unitCube(t testing.TB) geom.Primitive {
	t.Helper()
	const h = 0.5
	vs := []geom.Vertex{
		geom.V(-h, -h, -h), geom.V(h, -h, -h), geom.V(h, h, -h), geom.V(-h, h, -h),
		geom.V(-h, -h, h), geom.V(h, -h, h), geom.V(h, h, h), geom.V(-h, h, h),
	}
	edges := []geom.Edge{
		{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 0},
		{A: 4, B: 5}, {A: 5, B: 6}, {A: 6, B: 7}, {A: 7, B: 4},
		{A: 0, B: 4}, {A: 1, B: 5}, {A: 2, B: 6}, {A: 3, B: 7},
	}
	p, err := geom.FromEdges(vs, edges)
	if err != nil {
		t.Fatal(err)
	}
	return p.WithName("cube")
}

func cubeCamera() *Camera {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, -5))
	cam.SetFOV(math3d.Radians(60))
	cam.SetAspectRatio(800.0 / 600.0)
	cam.SetClipPlanes(0.1, 100)
	return cam
}

func TestPipelineCube(t *testing.T) {
	p := Pipeline{Viewport: Viewport{Width: 800, Height: 600}}
	frame, err := p.Frame(context.Background(), geom.NewScene(unitCube(t)), cubeCamera())
	if err != nil {
		t.Fatal(err)
	}

	segs := frame.Segments()
	if len(segs) != 12 {
		t.Fatalf("got %d segments, want 12", len(segs))
	}

	seen := make(map[geom.Segment]bool)
	for i, s := range segs {
		if !s.IsFinite() {
			t.Errorf("segment %d is not finite: %v", i, s)
		}
		for _, pt := range []math3d.Vec2{s.P0, s.P1} {
			if pt.X < -50 || pt.X > 850 || pt.Y < -50 || pt.Y > 650 {
				t.Errorf("segment %d endpoint %v outside the viewport", i, pt)
			}
		}
		if seen[s] {
			t.Errorf("segment %d duplicated: %v", i, s)
		}
		seen[s] = true
	}

	if frame.Stats.Drawn != 1 || frame.Stats.Culled != 0 || frame.Stats.Segments != 12 {
		t.Errorf("stats = %+v", frame.Stats)
	}
}

func TestPipelineBackToFront(t *testing.T) {
	square := func(name string, z float64) geom.Primitive {
		return geom.MustFromVertices(
			geom.V(-1, -1, z), geom.V(1, -1, z), geom.V(1, 1, z), geom.V(-1, 1, z),
		).WithName(name)
	}
	cam := NewCamera()
	scene := geom.NewScene(square("near", 10), square("far", 50))

	p := Pipeline{Viewport: Viewport{Width: 640, Height: 480}, Workers: 4}
	frame, err := p.Frame(context.Background(), scene, cam)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Strokes) != 8 {
		t.Fatalf("got %d strokes, want 8", len(frame.Strokes))
	}

	// The far square is smaller on screen and comes first.
	first, last := frame.Strokes[0], frame.Strokes[7]
	if first.Depth != 0 || last.Depth != 1 {
		t.Errorf("depth ranks = %v, %v; want 0 then 1", first.Depth, last.Depth)
	}
	farWidth := abs(round(frame.Strokes[0].P1.X - frame.Strokes[0].P0.X))
	nearWidth := abs(round(frame.Strokes[4].P1.X - frame.Strokes[4].P0.X))
	if farWidth >= nearWidth {
		t.Errorf("far edge %dpx not smaller than near edge %dpx", farWidth, nearWidth)
	}
}

func TestPipelineCulledScene(t *testing.T) {
	cam := cubeCamera()
	cam.SetPosition(math3d.V3(0, 0, 5)) // cube is now behind the camera

	p := Pipeline{Viewport: Viewport{Width: 800, Height: 600}}
	frame, err := p.Frame(context.Background(), geom.NewScene(unitCube(t)), cam)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Strokes) != 0 || frame.Stats.Culled != 1 {
		t.Errorf("strokes = %d, stats = %+v; want everything culled", len(frame.Strokes), frame.Stats)
	}
}

func TestPipelineSphericalBehindCamera(t *testing.T) {
	cam := NewCamera()
	cam.SetClipPlanes(1, 100)
	tri := geom.MustFromVertices(geom.V(-1, 0, -10), geom.V(1, 0, -10), geom.V(0, 1, -10))

	p := Pipeline{Viewport: Viewport{Width: 800, Height: 600}, Policy: geom.ClipSpherical}
	frame, err := p.Frame(context.Background(), geom.NewScene(tri), cam)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Strokes) != 0 || frame.Stats.Culled != 1 {
		t.Errorf("strokes = %d, stats = %+v; want the triangle behind the camera culled", len(frame.Strokes), frame.Stats)
	}

	cam.SetPosition(math3d.V3(0, 0, -20))
	frame, err = p.Frame(context.Background(), geom.NewScene(tri), cam)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Strokes) != 3 {
		t.Errorf("strokes = %d, want 3 once the triangle is in front", len(frame.Strokes))
	}
}

func TestPipelineDeterministic(t *testing.T) {
	scene := geom.NewScene(unitCube(t))
	cam := cubeCamera()
	p := Pipeline{Viewport: Viewport{Width: 800, Height: 600}}

	a, err := p.Frame(context.Background(), scene, cam)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Frame(context.Background(), scene, cam)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Strokes {
		if a.Strokes[i] != b.Strokes[i] {
			t.Fatalf("stroke %d differs between runs: %v vs %v", i, a.Strokes[i], b.Strokes[i])
		}
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scene := geom.NewScene(unitCube(t), unitCube(t), unitCube(t))
	p := Pipeline{Viewport: Viewport{Width: 800, Height: 600}, Workers: 2}
	if _, err := p.Frame(ctx, scene, cubeCamera()); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestViewportAspect(t *testing.T) {
	if a := (Viewport{Width: 800, Height: 600}).Aspect(); a != 800.0/600.0 {
		t.Errorf("aspect = %v", a)
	}
	if a := (Viewport{}).Aspect(); a != 1 {
		t.Errorf("empty viewport aspect = %v, want 1", a)
	}
}
