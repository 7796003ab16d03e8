package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSegmentsDefaultScene(t *testing.T) {
	out, err := execute(t, "segments")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 48 {
		t.Fatalf("got %d segments, want 48 (4 cubes x 12 edges)", len(lines))
	}
	if f := strings.Fields(lines[0]); len(f) != 5 || f[4] != "0.00" {
		t.Errorf("first line = %q, want the farthest cube first", lines[0])
	}
	if f := strings.Fields(lines[47]); f[4] != "1.00" {
		t.Errorf("last line = %q, want the nearest cube last", lines[47])
	}
}

func TestSegmentsModelFile(t *testing.T) {
	obj := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(obj, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "segments", "--clip", "spherical", obj)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(out), "\n")); n != 3 {
		t.Errorf("got %d segments, want 3", n)
	}
}

func TestSegmentsBadClip(t *testing.T) {
	if _, err := execute(t, "segments", "--clip", "cubic"); err == nil {
		t.Error("expected error for unknown clip policy")
	}
}

func TestSnapshotOrbit(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	if _, err := execute(t, "snapshot", "-o", out, "-n", "3", "--orbit", "10", "--width", "160", "--height", "120"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"frame-000.png", "frame-001.png", "frame-002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestFramePath(t *testing.T) {
	if got := framePath("out.png", 0, 1); got != "out.png" {
		t.Errorf("single frame path = %q", got)
	}
	if got := framePath("shots/out.png", 7, 10); got != "shots/out-007.png" {
		t.Errorf("frame path = %q", got)
	}
}

func TestSceneCenter(t *testing.T) {
	s := geom.NewScene(
		geom.MustFromVertices(geom.V(0, 0, 0), geom.V(2, 0, 0)),
		geom.MustFromVertices(geom.V(0, 4, 0), geom.V(0, 0, 6)),
	)
	if c := sceneCenter(s); c != math3d.V3(1, 2, 3) {
		t.Errorf("center = %v", c)
	}
	if c := sceneCenter(geom.NewScene()); c != math3d.Zero3() {
		t.Errorf("empty scene center = %v", c)
	}
}

func TestOrbitCamera(t *testing.T) {
	cam := render.NewCamera()
	start := math3d.V3(0, 0, -10)
	orbitCamera(cam, start, math3d.Zero3(), math3d.Radians(90))

	if !cam.Position.ApproxEqual(math3d.V3(-10, 0, 0), 1e-9) {
		t.Errorf("position = %v", cam.Position)
	}
	if !cam.Forward().ApproxEqual(math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("forward = %v, want facing the center", cam.Forward())
	}
}
