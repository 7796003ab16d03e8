package control

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/wirecam/pkg/math3d"
	"github.com/taigrr/wirecam/pkg/render"
)

// Steps is how far one command moves the camera. Angles are in radians.
type Steps struct {
	Move float64
	Look float64
	Tilt float64
	Zoom float64
}

// DefaultSteps returns 10 units per move, 2.5° per look, 5° per tilt and
// 5° per zoom.
func DefaultSteps() Steps {
	return Steps{
		Move: 10,
		Look: math3d.Radians(2.5),
		Tilt: math3d.Radians(5),
		Zoom: math3d.Radians(5),
	}
}

// Spring parameters shared by every smoothed axis. Frequency 4 with
// damping 1 is critically damped: no overshoot.
const (
	springFrequency = 4.0
	springDamping   = 1.0
)

// axis carries a velocity that a spring decays toward zero.
type axis struct {
	Velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newAxis(fps int) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)}
}

// advance returns the distance to travel this frame and decays the
// velocity.
func (a *axis) advance() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

func (a *axis) settled() bool {
	return math.Abs(a.Velocity) < 1e-6 && math.Abs(a.accel) < 1e-6
}

// Rig applies commands to a camera.
//
// Without smoothing every command is applied immediately as one step.
// With smoothing a command becomes an impulse that a spring spreads over
// the following frames, and zoom eases toward its target; Update must
// then be called once per frame.
type Rig struct {
	cam    *render.Camera
	steps  Steps
	smooth bool

	// impulse converts a step into an initial velocity whose decayed
	// sum over all frames is about one step.
	impulse float64

	forward, right, up axis
	yaw, pitch, tilt   axis

	fovSpring harmonica.Spring
	fovVel    float64
	fovTarget float64
}

// NewRig creates a rig for cam. fps is the frame rate Update is called
// at; it is only used when smooth is set.
func NewRig(cam *render.Camera, steps Steps, fps int, smooth bool) *Rig {
	if fps <= 0 {
		fps = 60
	}
	r := &Rig{
		cam:       cam,
		steps:     steps,
		smooth:    smooth,
		impulse:   springFrequency / float64(fps) / 2,
		fovSpring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency*2, springDamping),
		fovTarget: cam.FOV,
	}
	for _, a := range []*axis{&r.forward, &r.right, &r.up, &r.yaw, &r.pitch, &r.tilt} {
		*a = newAxis(fps)
	}
	return r
}

// Camera returns the camera the rig drives.
func (r *Rig) Camera() *render.Camera {
	return r.cam
}

// Apply performs cmd and reports whether it asks to quit.
func (r *Rig) Apply(cmd Command) (quit bool) {
	s := r.steps
	switch cmd {
	case MoveForward:
		r.nudge(&r.forward, s.Move)
	case MoveBack:
		r.nudge(&r.forward, -s.Move)
	case MoveRight:
		r.nudge(&r.right, s.Move)
	case MoveLeft:
		r.nudge(&r.right, -s.Move)
	case MoveUp:
		r.nudge(&r.up, s.Move)
	case MoveDown:
		r.nudge(&r.up, -s.Move)
	case LookLeft:
		r.nudge(&r.yaw, s.Look)
	case LookRight:
		r.nudge(&r.yaw, -s.Look)
	case LookUp:
		r.nudge(&r.pitch, s.Look)
	case LookDown:
		r.nudge(&r.pitch, -s.Look)
	case TiltLeft:
		r.nudge(&r.tilt, s.Tilt)
	case TiltRight:
		r.nudge(&r.tilt, -s.Tilt)
	case ZoomIn:
		r.zoomTo(r.fovTarget - s.Zoom)
	case ZoomOut:
		r.zoomTo(r.fovTarget + s.Zoom)
	case ZoomReset:
		r.zoomTo(r.cam.FOVDefault)
	case Quit:
		return true
	}
	return false
}

// nudge moves an axis by step, directly or through its spring.
func (r *Rig) nudge(a *axis, step float64) {
	if r.smooth {
		a.Velocity += step * r.impulse
		return
	}
	r.move(a, step)
}

// move applies amount along the camera motion that a stands for.
func (r *Rig) move(a *axis, amount float64) {
	switch a {
	case &r.forward:
		r.cam.Move(amount, 0, 0)
	case &r.right:
		r.cam.Move(0, amount, 0)
	case &r.up:
		r.cam.Move(0, 0, amount)
	case &r.yaw:
		r.cam.Look(amount, 0)
	case &r.pitch:
		r.cam.Look(0, amount)
	case &r.tilt:
		r.cam.Tilt(amount)
	}
}

func (r *Rig) zoomTo(fov float64) {
	r.fovTarget = math.Max(r.cam.FOVMin, math.Min(r.cam.FOVMax, fov))
	if !r.smooth {
		r.cam.SetFOV(r.fovTarget)
	}
}

// Update advances the springs by one frame. It does nothing without
// smoothing.
func (r *Rig) Update() {
	if !r.smooth {
		return
	}
	for _, a := range []*axis{&r.forward, &r.right, &r.up, &r.yaw, &r.pitch, &r.tilt} {
		if d := a.advance(); d != 0 {
			r.move(a, d)
		}
	}
	if r.cam.FOV != r.fovTarget {
		fov, vel := r.fovSpring.Update(r.cam.FOV, r.fovVel, r.fovTarget)
		if math.Abs(fov-r.fovTarget) < 1e-6 && math.Abs(vel) < 1e-6 {
			fov, vel = r.fovTarget, 0
		}
		r.fovVel = vel
		r.cam.SetFOV(fov)
	}
}

// Settled reports whether all motion has come to rest.
func (r *Rig) Settled() bool {
	for _, a := range []*axis{&r.forward, &r.right, &r.up, &r.yaw, &r.pitch, &r.tilt} {
		if !a.settled() {
			return false
		}
	}
	return r.cam.FOV == r.fovTarget
}
