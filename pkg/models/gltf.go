package models

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/logging"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file.
//
// Triangle primitives (lists, strips and fans) become one closed ring per
// triangle. Line primitives become a single primitive with one edge per
// line segment. Points are skipped. A material's base color factor colors
// the primitives made from it.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := FromGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromGLTF converts every mesh in doc.
func FromGLTF(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			prims, err := convertPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
			for _, p := range prims {
				mesh.Add(p.WithName(m.Name))
			}
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func convertPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]geom.Primitive, error) {
	if prim.Mode == gltf.PrimitivePoints {
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	raw, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	positions := make([]geom.Vertex, len(raw))
	for i, p := range raw {
		positions[i] = geom.Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
	}

	var indices []int
	if prim.Indices != nil {
		raw, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		indices = make([]int, len(raw))
		for i, x := range raw {
			if int(x) >= len(positions) {
				return nil, fmt.Errorf("%w: index %d of %d vertices", geom.ErrEdgeIndex, x, len(positions))
			}
			indices[i] = int(x)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	c, hasColor := materialColor(doc, prim.Material)
	tag := func(p geom.Primitive) geom.Primitive {
		if hasColor {
			return p.WithColor(c)
		}
		return p
	}

	switch prim.Mode {
	case gltf.PrimitiveLines, gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		if prim.Mode == gltf.PrimitiveLines {
			indices = indices[:len(indices)-len(indices)%2]
		}
		edges := lineEdges(prim.Mode, len(indices))
		if len(edges) == 0 {
			return nil, nil
		}
		// Edges index into indices; resolve them to a compact vertex list.
		vs := make([]geom.Vertex, len(indices))
		for i, j := range indices {
			vs[i] = positions[j]
		}
		p, err := geom.FromEdges(vs, edges)
		if errors.Is(err, geom.ErrDegenerate) {
			logging.Logger().Debug("degenerate line primitive skipped", "err", err)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []geom.Primitive{tag(p)}, nil

	default:
		tris := triangles(prim.Mode, indices)
		out := make([]geom.Primitive, 0, len(tris))
		for _, t := range tris {
			p := geom.MustFromVertices(positions[t[0]], positions[t[1]], positions[t[2]])
			out = append(out, tag(p))
		}
		return out, nil
	}
}

// lineEdges returns the edges of n line vertices for the given mode.
func lineEdges(mode gltf.PrimitiveMode, n int) []geom.Edge {
	var edges []geom.Edge
	switch mode {
	case gltf.PrimitiveLines:
		for i := 0; i+1 < n; i += 2 {
			edges = append(edges, geom.Edge{A: i, B: i + 1})
		}
	case gltf.PrimitiveLineStrip:
		edges = chainEdges(n)
	case gltf.PrimitiveLineLoop:
		edges = chainEdges(n)
		if n > 2 {
			edges = append(edges, geom.Edge{A: n - 1, B: 0})
		}
	}
	return edges
}

// triangles expands triangle lists, strips and fans into index triples.
func triangles(mode gltf.PrimitiveMode, idx []int) [][3]int {
	var tris [][3]int
	switch mode {
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]int{idx[i], idx[i+1], idx[i+2]})
			} else {
				tris = append(tris, [3]int{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(idx); i++ {
			tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
		}
	default:
		for i := 0; i+2 < len(idx); i += 3 {
			tris = append(tris, [3]int{idx[i], idx[i+1], idx[i+2]})
		}
	}
	return tris
}

// materialColor returns the base color factor of material idx.
func materialColor(doc *gltf.Document, idx *int) (color.RGBA, bool) {
	if idx == nil || *idx < 0 || *idx >= len(doc.Materials) {
		return color.RGBA{}, false
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color.RGBA{}, false
	}
	f := pbr.BaseColorFactor
	return color.RGBA{
		R: unit8(f[0]),
		G: unit8(f[1]),
		B: unit8(f[2]),
		A: 255,
	}, true
}

func unit8(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}
