package geom

import "github.com/taigrr/wirecam/pkg/math3d"

// Edge connects two vertices of a primitive by index. It has no lifecycle
// of its own: after a transform the same indices are resolved against the
// new vertex buffer.
type Edge struct {
	A, B int
}

// IsVisible reports whether both endpoints are inside the clip volume.
func (e Edge) IsVisible(vs []Vertex, clip ClipVolume) bool {
	return vs[e.A].IsVisible(clip) && vs[e.B].IsVisible(clip)
}

// Segment resolves the edge to a 2D segment, dropping Z.
func (e Edge) Segment(vs []Vertex) Segment {
	return Segment{
		P0: vs[e.A].Position.XY(),
		P1: vs[e.B].Position.XY(),
	}
}

// Segment is a 2D line in screen pixels, drawn from P0 to P1.
type Segment struct {
	P0, P1 math3d.Vec2
}

// IsFinite reports whether both endpoints are finite.
func (s Segment) IsFinite() bool {
	return s.P0.IsFinite() && s.P1.IsFinite()
}

// ringEdges returns the closed ring over n vertices: i -> (i+1) mod n.
func ringEdges(n int) []Edge {
	edges := make([]Edge, n)
	for i := range n {
		edges[i] = Edge{A: i, B: (i + 1) % n}
	}
	return edges
}
