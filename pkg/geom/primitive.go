package geom

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/taigrr/wirecam/pkg/math3d"
)

// Primitive is a line mesh piece: an indexed vertex buffer plus the edges
// drawn between its vertices.
//
// Primitives are values. Transforms return a new primitive with its own
// vertex buffer; the edge list is never modified after construction and
// is shared between a primitive and everything derived from it.
type Primitive struct {
	// Name identifies the primitive in logs (mesh or object name).
	Name string
	// Color is the stroke color. The zero value leaves the choice to the
	// drawing surface.
	Color color.RGBA

	vertices []Vertex
	edges    []Edge
}

// FromVertices builds a closed ring: edge i joins vertex i and vertex
// (i+1) mod N, so the primitive has as many edges as vertices. Fewer than
// two vertices is rejected with ErrDegenerate.
func FromVertices(vs []Vertex) (Primitive, error) {
	if len(vs) < 2 {
		return Primitive{}, fmt.Errorf("%w: ring of %d vertices", ErrDegenerate, len(vs))
	}
	return Primitive{
		vertices: slices.Clone(vs),
		edges:    ringEdges(len(vs)),
	}, nil
}

// MustFromVertices is FromVertices for built-in templates; it panics on
// degenerate input.
func MustFromVertices(vs ...Vertex) Primitive {
	p, err := FromVertices(vs)
	if err != nil {
		panic(err)
	}
	return p
}

// FromEdges builds a primitive with an explicit edge list, e.g. a cube
// outline with 8 vertices and 12 edges.
func FromEdges(vs []Vertex, edges []Edge) (Primitive, error) {
	if len(vs) < 2 {
		return Primitive{}, fmt.Errorf("%w: %d vertices", ErrDegenerate, len(vs))
	}
	if len(edges) == 0 {
		return Primitive{}, fmt.Errorf("%w: no edges", ErrDegenerate)
	}
	for i, e := range edges {
		if e.A < 0 || e.A >= len(vs) || e.B < 0 || e.B >= len(vs) {
			return Primitive{}, fmt.Errorf("%w: edge %d (%d, %d) with %d vertices", ErrEdgeIndex, i, e.A, e.B, len(vs))
		}
		if e.A == e.B {
			return Primitive{}, fmt.Errorf("%w: edge %d is a loop on vertex %d", ErrDegenerate, i, e.A)
		}
	}
	return Primitive{
		vertices: slices.Clone(vs),
		edges:    slices.Clone(edges),
	}, nil
}

// WithColor returns a copy of p stroked in c.
func (p Primitive) WithColor(c color.RGBA) Primitive {
	p.Color = c
	return p
}

// WithName returns a copy of p with the given name.
func (p Primitive) WithName(name string) Primitive {
	p.Name = name
	return p
}

// Vertices returns a copy of the vertex buffer.
func (p Primitive) Vertices() []Vertex {
	return slices.Clone(p.vertices)
}

// Edges returns a copy of the edge list.
func (p Primitive) Edges() []Edge {
	return slices.Clone(p.edges)
}

// VertexCount returns the number of vertices.
func (p Primitive) VertexCount() int {
	return len(p.vertices)
}

// EdgeCount returns the number of edges.
func (p Primitive) EdgeCount() int {
	return len(p.edges)
}

// Transform maps every vertex through m.
func (p Primitive) Transform(m math3d.Mat4) Primitive {
	vs := make([]Vertex, len(p.vertices))
	for i, v := range p.vertices {
		vs[i] = v.Transform(m)
	}
	p.vertices = vs
	return p
}

// IsVisible reports whether every edge is inside the clip volume.
//
// Culling is all-or-nothing: a primitive crossing the near or far boundary
// is dropped whole rather than split, so large primitives pop in and out
// as the camera moves.
func (p Primitive) IsVisible(clip ClipVolume) bool {
	for _, e := range p.edges {
		if !e.IsVisible(p.vertices, clip) {
			return false
		}
	}
	return true
}

// ScreenCoords maps every vertex to pixels (see Vertex.ScreenCoords). If
// any vertex is invalid the whole primitive is dropped and ok is false.
func (p Primitive) ScreenCoords(width, height int, margin float64) (Primitive, bool) {
	vs := make([]Vertex, len(p.vertices))
	for i, v := range p.vertices {
		sv, ok := v.ScreenCoords(width, height, margin)
		if !ok {
			return Primitive{}, false
		}
		vs[i] = sv
	}
	p.vertices = vs
	return p, true
}

// Centroid returns the mean of the vertex positions. This is the depth
// sorting reference point. For irregular polygons it differs from the
// bounding-box center returned by Bounds.
func (p Primitive) Centroid() math3d.Vec3 {
	var sum math3d.Vec3
	for _, v := range p.vertices {
		sum = sum.Add(v.Position)
	}
	return sum.Scale(1 / float64(len(p.vertices)))
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p Primitive) Bounds() (min, max math3d.Vec3) {
	if len(p.vertices) == 0 {
		return math3d.Vec3{}, math3d.Vec3{}
	}
	min = p.vertices[0].Position
	max = min
	for _, v := range p.vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return min, max
}

// DistanceTo returns the Euclidean distance from eye to the centroid. It
// is a sort key only and plays no part in clipping.
func (p Primitive) DistanceTo(eye math3d.Vec3) float64 {
	return p.Centroid().Distance(eye)
}

// Segments resolves every edge to a 2D segment, in edge order.
func (p Primitive) Segments() []Segment {
	segs := make([]Segment, len(p.edges))
	for i, e := range p.edges {
		segs[i] = e.Segment(p.vertices)
	}
	return segs
}
