package render

import (
	"math"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// Default camera limits, in radians.
var (
	DefaultFOV    = math3d.Radians(60)
	DefaultFOVMin = math3d.Radians(30)
	DefaultFOVMax = math3d.Radians(90)
)

// Camera is a free-flying camera described by a position and an
// orthonormal forward/up basis.
//
// The camera is owned by the frame driver: input handling mutates it and
// the pipeline reads it once per frame. It is not safe for concurrent use.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	forward math3d.Vec3
	up      math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	FOVMin      float64 // Zoom-in limit
	FOVMax      float64 // Zoom-out limit
	FOVDefault  float64 // Value restored by ResetZoom
	AspectRatio float64 // Width / Height
	Near        float64 // Near clip distance
	Far         float64 // Far clip distance

	// Cached matrices (computed on demand)
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at the origin looking down +Z with +Y up.
func NewCamera() *Camera {
	return &Camera{
		forward:     math3d.V3(0, 0, 1),
		up:          math3d.Up(),
		FOV:         DefaultFOV,
		FOVMin:      DefaultFOVMin,
		FOVMax:      DefaultFOVMax,
		FOVDefault:  DefaultFOV,
		AspectRatio: 4.0 / 3.0,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetOrientation sets the viewing direction and up hint. Up is
// re-orthogonalized against forward. A zero forward, or an up parallel to
// it, is ignored.
func (c *Camera) SetOrientation(forward, up math3d.Vec3) {
	f := forward.Normalize()
	r := f.Cross(up).Normalize()
	if r.LenSq() == 0 {
		return
	}
	c.forward = f
	c.up = r.Cross(f)
	c.viewDirty = true
}

// LookAt points the camera at target, keeping the current up hint.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.SetOrientation(target.Sub(c.Position), c.up)
}

// SetFOV sets the field of view (in radians), clamped to [FOVMin, FOVMax].
func (c *Camera) SetFOV(fov float64) {
	c.FOV = math.Max(c.FOVMin, math.Min(c.FOVMax, fov))
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.forward
}

// Up returns the unit up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.up
}

// Right returns the unit right direction, forward × up.
func (c *Camera) Right() math3d.Vec3 {
	return c.forward.Cross(c.up).Normalize()
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookTo(c.Position, c.forward, c.up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ClipVolume returns the camera's near/far clip volume under policy.
func (c *Camera) ClipVolume(policy geom.ClipPolicy) geom.ClipVolume {
	return geom.NewClipVolume(c.Position, c.forward, c.Near, c.Far, policy)
}

// Move translates the camera along its own axes.
func (c *Camera) Move(forward, right, up float64) {
	delta := c.forward.Scale(forward).
		Add(c.Right().Scale(right)).
		Add(c.up.Scale(up))
	c.Position = c.Position.Add(delta)
	c.viewDirty = true
}

// Look turns the camera. Positive yaw turns left, positive pitch looks up.
// Pitch rotates both forward and up so the basis stays orthonormal and
// the camera can loop over the top.
func (c *Camera) Look(yaw, pitch float64) {
	if yaw != 0 {
		c.forward = math3d.Rotate(c.up, yaw).MulDir(c.forward)
	}
	if pitch != 0 {
		rot := math3d.Rotate(c.Right(), pitch)
		c.forward = rot.MulDir(c.forward)
		c.up = rot.MulDir(c.up)
	}
	c.orthonormalize()
}

// Tilt rolls the camera around its viewing axis. Positive angles lean the
// up vector to the left.
func (c *Camera) Tilt(angle float64) {
	c.up = math3d.Rotate(c.forward.Negate(), angle).MulDir(c.up)
	c.orthonormalize()
}

// Zoom changes the field of view by delta radians. Negative deltas zoom in.
func (c *Camera) Zoom(delta float64) {
	c.SetFOV(c.FOV + delta)
}

// ResetZoom restores FOVDefault.
func (c *Camera) ResetZoom() {
	c.SetFOV(c.FOVDefault)
}

// orthonormalize removes drift accumulated by repeated rotations.
func (c *Camera) orthonormalize() {
	c.forward = c.forward.Normalize()
	r := c.forward.Cross(c.up).Normalize()
	c.up = r.Cross(c.forward)
	c.viewDirty = true
}
