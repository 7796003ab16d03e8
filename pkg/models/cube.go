package models

import (
	"image/color"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// cubeEdges joins the bottom ring, the top ring, and the four pillars of
// the vertex order used by cubeVertices.
var cubeEdges = []geom.Edge{
	{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 0},
	{A: 4, B: 5}, {A: 5, B: 6}, {A: 6, B: 7}, {A: 7, B: 4},
	{A: 0, B: 4}, {A: 1, B: 5}, {A: 2, B: 6}, {A: 3, B: 7},
}

// cubeFaces lists each face as a ring over the cubeVertices order.
var cubeFaces = [6][4]int{
	{0, 1, 2, 3}, // front (-Z)
	{5, 4, 7, 6}, // back (+Z)
	{4, 0, 3, 7}, // left (-X)
	{1, 5, 6, 2}, // right (+X)
	{3, 2, 6, 7}, // top (+Y)
	{4, 5, 1, 0}, // bottom (-Y)
}

// FaceColors is the palette used by CubeFaces, one per face.
var FaceColors = [6]color.RGBA{
	{230, 80, 80, 255},
	{80, 200, 120, 255},
	{90, 140, 240, 255},
	{240, 200, 80, 255},
	{200, 110, 230, 255},
	{80, 210, 220, 255},
}

func cubeVertices(center math3d.Vec3, size float64) []geom.Vertex {
	h := size / 2
	lo, hi := center.Sub(math3d.V3(h, h, h)), center.Add(math3d.V3(h, h, h))
	return []geom.Vertex{
		geom.V(lo.X, lo.Y, lo.Z),
		geom.V(hi.X, lo.Y, lo.Z),
		geom.V(hi.X, hi.Y, lo.Z),
		geom.V(lo.X, hi.Y, lo.Z),
		geom.V(lo.X, lo.Y, hi.Z),
		geom.V(hi.X, lo.Y, hi.Z),
		geom.V(hi.X, hi.Y, hi.Z),
		geom.V(lo.X, hi.Y, hi.Z),
	}
}

// Cube returns an axis-aligned cube as a single primitive with 8 vertices
// and 12 edges.
func Cube(center math3d.Vec3, size float64) geom.Primitive {
	p, err := geom.FromEdges(cubeVertices(center, size), cubeEdges)
	if err != nil {
		panic(err) // static edge table
	}
	return p.WithName("cube")
}

// CubeFaces returns an axis-aligned cube as six quad rings, each colored
// from FaceColors.
func CubeFaces(center math3d.Vec3, size float64) []geom.Primitive {
	vs := cubeVertices(center, size)
	faces := make([]geom.Primitive, len(cubeFaces))
	for i, f := range cubeFaces {
		faces[i] = geom.MustFromVertices(vs[f[0]], vs[f[1]], vs[f[2]], vs[f[3]]).
			WithName("face").
			WithColor(FaceColors[i])
	}
	return faces
}

// GridOffsets are the translations of the cubes in CubeGrid.
var GridOffsets = []math3d.Vec3{
	math3d.V3(0, 0, 0),
	math3d.V3(60, 0, 0),
	math3d.V3(0, 60, 0),
	math3d.V3(60, 60, 0),
}

// CubeGrid returns four 40-unit cubes spanning 10..50 on each axis,
// translated by GridOffsets.
func CubeGrid() []geom.Primitive {
	template := Cube(math3d.V3(30, 30, 30), 40)
	cubes := make([]geom.Primitive, len(GridOffsets))
	for i, off := range GridOffsets {
		cubes[i] = template.Transform(math3d.Translate(off))
	}
	return cubes
}
