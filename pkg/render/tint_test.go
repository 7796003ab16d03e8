package render

import (
	"image/color"
	"testing"
)

func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff <= tol && diff >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestDepthTintDisabled(t *testing.T) {
	s := Stroke{Color: RGB(10, 20, 30), Depth: 0.2}
	if got := (DepthTint{}).Color(s); got != s.Color {
		t.Errorf("zero tint changed color to %v", got)
	}
}

func TestDepthTintEnds(t *testing.T) {
	tint := DepthTint{Near: ColorGreen, Far: ColorSlate}

	if got := tint.Color(Stroke{Depth: 1}); !near(got, ColorGreen, 1) {
		t.Errorf("nearest = %v, want %v", got, ColorGreen)
	}
	if got := tint.Color(Stroke{Depth: 0}); !near(got, ColorSlate, 1) {
		t.Errorf("farthest = %v, want %v", got, ColorSlate)
	}

	own := RGB(255, 0, 0)
	if got := tint.Color(Stroke{Color: own, Depth: 1}); !near(got, own, 1) {
		t.Errorf("stroke color not kept at depth 1: %v", got)
	}
}

func TestDepthTintMidpoint(t *testing.T) {
	tint := DepthTint{Near: ColorWhite, Far: ColorBlack}
	mid := tint.Color(Stroke{Depth: 0.5})
	if mid.R == 0 || mid.R == 255 || mid.A != 255 {
		t.Errorf("midpoint = %v, want a gray between the ends", mid)
	}
}
