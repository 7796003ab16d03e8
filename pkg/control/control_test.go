package control

import (
	"math"
	"testing"

	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

func TestCommandStringRoundTrip(t *testing.T) {
	for c := MoveForward; c <= Quit; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("none"); err == nil {
		t.Error("none should not parse as a bindable command")
	}
	if _, err := ParseCommand("jump"); err == nil {
		t.Error("expected error for unknown command")
	}
	if s := Command(99).String(); s != "command(99)" {
		t.Errorf("out of range String() = %q", s)
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	tests := map[string]Command{
		"w":      MoveForward,
		"A":      MoveLeft,
		"up":     MoveUp,
		"q":      ZoomIn,
		"space":  ZoomReset,
		"j":      LookLeft,
		"o":      TiltRight,
		"escape": Quit,
	}
	for key, want := range tests {
		if got, ok := km.Lookup(key); !ok || got != want {
			t.Errorf("Lookup(%q) = %v, %v; want %v", key, got, ok, want)
		}
	}
	if _, ok := km.Lookup("z"); ok {
		t.Error("unbound key matched")
	}
}

func TestKeyMapBind(t *testing.T) {
	km, err := DefaultKeyMap().Bind(map[string][]string{
		"move_forward": {"z", "W"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := km.Lookup("z"); !ok || c != MoveForward {
		t.Errorf("z = %v, %v", c, ok)
	}
	if c, ok := km.Lookup("w"); !ok || c != MoveForward {
		t.Errorf("w = %v, %v", c, ok)
	}
	if DefaultKeyMap()["z"] != None {
		t.Error("Bind mutated the source map")
	}

	if _, err := DefaultKeyMap().Bind(map[string][]string{"fly": {"f"}}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestKeyMapKeysSorted(t *testing.T) {
	keys := KeyMap{"b": MoveBack, "a": MoveLeft, "c": Quit}.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("keys = %v", keys)
	}
}

func newTestRig(smooth bool) (*Rig, *render.Camera) {
	cam := render.NewCamera()
	return NewRig(cam, DefaultSteps(), 60, smooth), cam
}

func TestRigImmediate(t *testing.T) {
	rig, cam := newTestRig(false)

	rig.Apply(MoveForward)
	rig.Apply(MoveForward)
	rig.Apply(MoveUp)
	if !cam.Position.ApproxEqual(math3d.V3(0, 10, 20), 1e-9) {
		t.Errorf("position = %v, want (0, 10, 20)", cam.Position)
	}

	rig.Apply(ZoomIn)
	if want := render.DefaultFOV - math3d.Radians(5); math.Abs(cam.FOV-want) > 1e-12 {
		t.Errorf("fov = %v, want %v", cam.FOV, want)
	}
	rig.Apply(ZoomReset)
	if cam.FOV != cam.FOVDefault {
		t.Errorf("fov = %v after reset", cam.FOV)
	}

	for range 36 {
		rig.Apply(LookLeft)
	}
	// 36 × 2.5° = 90° to the left of +Z is +X.
	if !cam.Forward().ApproxEqual(math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("forward = %v", cam.Forward())
	}

	if !rig.Settled() {
		t.Error("immediate rig should always be settled")
	}
}

func TestRigZoomLimits(t *testing.T) {
	rig, cam := newTestRig(false)
	for range 20 {
		rig.Apply(ZoomIn)
	}
	if cam.FOV != cam.FOVMin {
		t.Errorf("fov = %v, want min %v", cam.FOV, cam.FOVMin)
	}
	for range 20 {
		rig.Apply(ZoomOut)
	}
	if cam.FOV != cam.FOVMax {
		t.Errorf("fov = %v, want max %v", cam.FOV, cam.FOVMax)
	}
}

func TestRigQuit(t *testing.T) {
	rig, _ := newTestRig(false)
	if rig.Apply(MoveBack) {
		t.Error("MoveBack reported quit")
	}
	if !rig.Apply(Quit) {
		t.Error("Quit not reported")
	}
}

func TestRigSmoothMove(t *testing.T) {
	rig, cam := newTestRig(true)
	rig.Apply(MoveForward)

	if cam.Position != math3d.Zero3() {
		t.Fatal("smooth rig moved before Update")
	}
	rig.Update()
	first := cam.Position.Z
	if first <= 0 {
		t.Fatalf("no forward motion after one frame: %v", cam.Position)
	}

	for range 600 {
		rig.Update()
	}
	// The spring spreads one step over many frames; the total is close to
	// a single immediate step.
	if z := cam.Position.Z; math.Abs(z-10) > 0.5 {
		t.Errorf("settled at z = %v, want about 10", z)
	}
	if !rig.Settled() {
		t.Error("rig not settled after 10 seconds")
	}
}

func TestRigSmoothZoom(t *testing.T) {
	rig, cam := newTestRig(true)
	rig.Apply(ZoomOut)
	target := render.DefaultFOV + math3d.Radians(5)

	rig.Update()
	if cam.FOV <= render.DefaultFOV || cam.FOV >= target {
		t.Errorf("fov after one frame = %v, want between start and target", cam.FOV)
	}
	for range 600 {
		rig.Update()
	}
	if cam.FOV != target {
		t.Errorf("fov = %v, want %v", cam.FOV, target)
	}
}
