package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestTranslateRoundTrip(t *testing.T) {
	v := V3(3, -7, 12.5)
	m := Translate(v).Mul(Translate(v.Negate()))

	points := []Vec3{V3(0, 0, 0), V3(1, 2, 3), V3(-40, 0.25, 99)}
	for _, p := range points {
		if got := m.MulPoint(p); !got.ApproxEqual(p, eps) {
			t.Errorf("translate round trip of %v = %v", p, got)
		}
	}
}

func TestScaleUniformIdentity(t *testing.T) {
	m := ScaleUniform(1.0)
	if m != Identity() {
		t.Fatalf("ScaleUniform(1) = %v, want identity", m)
	}
	p := V3(4, 5, 6)
	if got := m.MulPoint(p); got != p {
		t.Errorf("ScaleUniform(1) moved %v to %v", p, got)
	}
}

func TestRotationClosure(t *testing.T) {
	builders := []struct {
		name string
		rot  func(float64) Mat4
	}{
		{"x", RotateX},
		{"y", RotateY},
		{"z", RotateZ},
		{"axis", func(a float64) Mat4 { return Rotate(V3(1, 2, 3), a) }},
	}
	p := V3(1.5, -2, 0.75)

	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			for _, theta := range []float64{0.1, math.Pi / 3, 2.5, -1.2} {
				got := b.rot(-theta).Mul(b.rot(theta)).MulPoint(p)
				if !got.ApproxEqual(p, 1e-9) {
					t.Errorf("theta=%v: got %v, want %v", theta, got, p)
				}
			}
		})
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	got := RotateZ(math.Pi / 2).MulPoint(V3(1, 0, 0))
	if !got.ApproxEqual(V3(0, 1, 0), 1e-12) {
		t.Errorf("RotateZ(90°)·X = %v, want (0, 1, 0)", got)
	}
}

func TestMulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(V3(10, 0, 0)).Mul(ScaleUniform(2))
	got := m.MulPoint(V3(1, 1, 1))
	if !got.ApproxEqual(V3(12, 2, 2), eps) {
		t.Errorf("T·S applied to (1,1,1) = %v, want (12, 2, 2)", got)
	}
}

func TestPerspectiveCanonicalForm(t *testing.T) {
	fov, ar, near, far := Radians(60), 4.0/3.0, 0.1, 100.0
	m := Perspective(fov, ar, near, far)
	tanHalf := math.Tan(fov / 2)

	tests := []struct {
		row, col int
		want     float64
	}{
		{0, 0, 1 / (tanHalf * ar)},
		{1, 1, 1 / tanHalf},
		{2, 2, (far + near) / (near - far)},
		{2, 3, 2 * far * near / (near - far)},
		{3, 2, -1},
		{3, 3, 0},
	}
	for _, tc := range tests {
		if got := m.Get(tc.row, tc.col); math.Abs(got-tc.want) > eps {
			t.Errorf("m[%d][%d] = %v, want %v", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.5, 50.0
	m := Perspective(Radians(60), 1, near, far)

	zNear := m.MulPoint(V3(0, 0, -near)).Z
	zFar := m.MulPoint(V3(0, 0, -far)).Z
	if math.Abs(zNear+1) > 1e-9 {
		t.Errorf("near plane maps to z=%v, want -1", zNear)
	}
	if math.Abs(zFar-1) > 1e-9 {
		t.Errorf("far plane maps to z=%v, want 1", zFar)
	}

	clip := m.MulVec4(Point(V3(0, 0, -10)))
	if math.Abs(clip.W-10) > eps {
		t.Errorf("w = %v, want -z_view = 10", clip.W)
	}
}

func TestPerspectiveSingularPlane(t *testing.T) {
	m := Perspective(Radians(60), 1, 0.1, 100)
	got := m.MulPoint(V3(1, 1, 0))
	if got.IsFinite() {
		t.Errorf("point on the camera plane projected to finite %v", got)
	}
}

func TestLookToBasis(t *testing.T) {
	eye := V3(0, 0, -5)
	view := LookTo(eye, V3(0, 0, 2), Up())

	tests := []struct {
		name  string
		world Vec3
		want  Vec3
	}{
		{"eye to origin", eye, V3(0, 0, 0)},
		{"straight ahead", V3(0, 0, 0), V3(0, 0, -5)},
		{"above", V3(0, 1, -5), V3(0, 1, 0)},
		// Facing +Z with +Y up, world +X lies to the camera's left.
		{"world +x", V3(1, 0, -5), V3(-1, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := view.MulPoint(tc.world); !got.ApproxEqual(tc.want, eps) {
				t.Errorf("view(%v) = %v, want %v", tc.world, got, tc.want)
			}
		})
	}
}

func TestLookAtMatchesLookTo(t *testing.T) {
	eye, target := V3(3, 4, 5), V3(-1, 0, 2)
	a := LookAt(eye, target, Up())
	b := LookTo(eye, target.Sub(eye), Up())
	if a != b {
		t.Errorf("LookAt and LookTo disagree:\n%v\n%v", a, b)
	}
}

func TestLookToIsRigid(t *testing.T) {
	eye := V3(2, -1, 7)
	view := LookTo(eye, V3(0.3, 0.2, -1), Up())
	if o := view.MulPoint(eye); !o.ApproxEqual(Zero3(), 1e-9) {
		t.Errorf("eye maps to %v, want the origin", o)
	}
	p, q := V3(1, 2, 3), V3(-4, 0.5, 9)
	before := p.Distance(q)
	after := view.MulPoint(p).Distance(view.MulPoint(q))
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("view transform changed distance %v -> %v", before, after)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	tr := m.Transpose()
	if tr.Get(3, 0) != 1 || tr.Get(3, 1) != 2 || tr.Get(3, 2) != 3 {
		t.Errorf("transpose did not move translation into the bottom row: %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("double transpose is not the identity")
	}
}

func TestRadiansDegrees(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > eps {
		t.Errorf("Radians(180) = %v", got)
	}
	if got := Degrees(Radians(37.5)); math.Abs(got-37.5) > eps {
		t.Errorf("Degrees(Radians(37.5)) = %v", got)
	}
}
