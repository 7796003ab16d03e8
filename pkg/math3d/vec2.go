package math3d

// Vec2 is a 2D point, used for screen-space segment endpoints.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// IsFinite reports whether both components are finite.
func (a Vec2) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y)
}

// XY drops the Z component of v.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}
