package models

import (
	"image/color"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// Guide colors
var (
	GridColor = color.RGBA{70, 70, 90, 255}
	AxisX     = color.RGBA{230, 60, 60, 255}
	AxisY     = color.RGBA{60, 230, 60, 255}
	AxisZ     = color.RGBA{60, 60, 230, 255}
)

// line returns a single-edge primitive from a to b.
func line(a, b math3d.Vec3, c color.RGBA) geom.Primitive {
	p, err := geom.FromEdges([]geom.Vertex{{Position: a}, {Position: b}}, []geom.Edge{{A: 0, B: 1}})
	if err != nil {
		panic(err) // two vertices, one edge
	}
	return p.WithColor(c)
}

// Axes returns the coordinate axes at the origin, one line per axis.
func Axes(length float64) []geom.Primitive {
	origin := math3d.Zero3()
	return []geom.Primitive{
		line(origin, math3d.V3(length, 0, 0), AxisX).WithName("x"),
		line(origin, math3d.V3(0, length, 0), AxisY).WithName("y"),
		line(origin, math3d.V3(0, 0, length), AxisZ).WithName("z"),
	}
}

// Grid returns a square grid on the XZ plane at y=0, centered on the
// origin. Each line is its own primitive so lines are clipped and sorted
// individually.
func Grid(size, step float64, c color.RGBA) []geom.Primitive {
	if step <= 0 || size <= 0 {
		return nil
	}
	half := size / 2
	n := int(size/step) + 1
	prims := make([]geom.Primitive, 0, 2*n)
	for i := range n {
		x := -half + float64(i)*step
		prims = append(prims, line(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), c).WithName("grid"))
	}
	for i := range n {
		z := -half + float64(i)*step
		prims = append(prims, line(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), c).WithName("grid"))
	}
	return prims
}

// Marker returns a small three-axis cross centered on pos.
func Marker(pos math3d.Vec3, size float64, c color.RGBA) geom.Primitive {
	h := size / 2
	vs := []geom.Vertex{
		{Position: pos.Add(math3d.V3(-h, 0, 0))}, {Position: pos.Add(math3d.V3(h, 0, 0))},
		{Position: pos.Add(math3d.V3(0, -h, 0))}, {Position: pos.Add(math3d.V3(0, h, 0))},
		{Position: pos.Add(math3d.V3(0, 0, -h))}, {Position: pos.Add(math3d.V3(0, 0, h))},
	}
	p, err := geom.FromEdges(vs, []geom.Edge{{A: 0, B: 1}, {A: 2, B: 3}, {A: 4, B: 5}})
	if err != nil {
		panic(err)
	}
	return p.WithName("marker").WithColor(c)
}
