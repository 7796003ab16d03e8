package geom

import (
	"fmt"

	"github.com/taigrr/wirecam/pkg/math3d"
)

// ClipPolicy selects how near/far distances are measured.
type ClipPolicy int

const (
	// ClipPlanar measures depth along the camera's view axis, the same
	// convention the perspective matrix uses for its near and far planes.
	ClipPlanar ClipPolicy = iota

	// ClipSpherical measures straight-line distance from the camera. The
	// visible region is the forward half of a spherical shell, so geometry
	// at the screen edges is clipped earlier than geometry at the center.
	// Points on or behind the camera plane are never contained: the
	// projection would mirror them into view.
	ClipSpherical
)

// String returns the policy name used in config files.
func (p ClipPolicy) String() string {
	switch p {
	case ClipPlanar:
		return "planar"
	case ClipSpherical:
		return "spherical"
	default:
		return fmt.Sprintf("ClipPolicy(%d)", int(p))
	}
}

// ParseClipPolicy parses "planar" or "spherical". The empty string means
// planar.
func ParseClipPolicy(s string) (ClipPolicy, error) {
	switch s {
	case "", "planar":
		return ClipPlanar, nil
	case "spherical":
		return ClipSpherical, nil
	default:
		return 0, fmt.Errorf("unknown clip policy %q", s)
	}
}

// ClipVolume is the camera-relative region a vertex must lie in to be
// drawn. A volume carries exactly one policy, so a frame never mixes the
// two.
type ClipVolume struct {
	Eye     math3d.Vec3
	Forward math3d.Vec3 // unit length
	Near    float64
	Far     float64
	Policy  ClipPolicy
}

// NewClipVolume builds a clip volume, normalizing forward.
func NewClipVolume(eye, forward math3d.Vec3, near, far float64, policy ClipPolicy) ClipVolume {
	return ClipVolume{
		Eye:     eye,
		Forward: forward.Normalize(),
		Near:    near,
		Far:     far,
		Policy:  policy,
	}
}

// Depth returns the distance of p from the camera under the volume's
// policy.
func (c ClipVolume) Depth(p math3d.Vec3) float64 {
	rel := p.Sub(c.Eye)
	if c.Policy == ClipSpherical {
		return rel.Len()
	}
	return rel.Dot(c.Forward)
}

// Contains reports whether p lies within [Near, Far]. Non-finite points
// are never contained.
func (c ClipVolume) Contains(p math3d.Vec3) bool {
	if !p.IsFinite() {
		return false
	}
	if c.Policy == ClipSpherical {
		// Compare squared to skip the sqrt.
		if p.Sub(c.Eye).Dot(c.Forward) <= 0 {
			return false
		}
		d := p.DistanceSq(c.Eye)
		return d >= c.Near*c.Near && d <= c.Far*c.Far
	}
	d := c.Depth(p)
	return d >= c.Near && d <= c.Far
}
