package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DepthTint fades strokes from their own color toward Far as they recede.
// The zero value disables tinting.
type DepthTint struct {
	Near color.RGBA // Used for strokes without a color
	Far  color.RGBA
}

// Color returns the draw color for s.
func (t DepthTint) Color(s Stroke) color.RGBA {
	base := s.Color
	if base.A == 0 {
		base = t.Near
	}
	if t.Far.A == 0 || base.A == 0 {
		return base
	}

	near, _ := colorful.MakeColor(base)
	far, _ := colorful.MakeColor(t.Far)
	r, g, b := far.BlendLab(near, s.Depth).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
