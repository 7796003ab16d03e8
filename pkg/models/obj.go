package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/logging"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ReadOBJ parses OBJ geometry. Faces ("f") become closed rings and
// polylines ("l") become open chains; texture coordinates, normals and
// materials are ignored. Object and group names ("o", "g") name the
// primitives that follow. Degenerate records, such as a face with one
// distinct vertex, are skipped; bad references fail the whole read.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	var positions []math3d.Vec3
	group := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				xyz[i] = v
			}
			positions = append(positions, math3d.V3(xyz[0], xyz[1], xyz[2]))

		case "f", "l":
			idx, err := parseRefs(fields[1:], len(positions))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			idx = dedupeRefs(idx, fields[0] == "f")
			vs := make([]geom.Vertex, len(idx))
			for i, j := range idx {
				vs[i] = geom.Vertex{Position: positions[j]}
			}

			var p geom.Primitive
			if fields[0] == "f" {
				p, err = geom.FromVertices(vs)
			} else {
				p, err = geom.FromEdges(vs, chainEdges(len(vs)))
			}
			if errors.Is(err, geom.ErrDegenerate) {
				logging.Logger().Debug("degenerate face skipped", "line", lineNo, "record", line, "err", err)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			mesh.Add(p.WithName(group))

		case "o", "g":
			group = strings.Join(fields[1:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// dedupeRefs drops references that repeat the previous one, and for
// closed rings a last reference equal to the first.
func dedupeRefs(idx []int, closed bool) []int {
	out := idx[:0]
	for i, j := range idx {
		if i > 0 && j == out[len(out)-1] {
			continue
		}
		out = append(out, j)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// parseRefs resolves vertex references such as "3", "3/1", "3//2" or
// "-1" to zero-based indices into n positions.
func parseRefs(refs []string, n int) ([]int, error) {
	idx := make([]int, len(refs))
	for i, ref := range refs {
		head, _, _ := strings.Cut(ref, "/")
		v, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("bad vertex reference %q", ref)
		}
		switch {
		case v > 0:
			v--
		case v < 0:
			v += n
		default:
			return nil, fmt.Errorf("%w: vertex reference 0", geom.ErrEdgeIndex)
		}
		if v < 0 || v >= n {
			return nil, fmt.Errorf("%w: vertex %s of %d", geom.ErrEdgeIndex, head, n)
		}
		idx[i] = v
	}
	return idx, nil
}

// chainEdges returns the open chain 0-1, 1-2, ..., (n-2)-(n-1).
func chainEdges(n int) []geom.Edge {
	if n < 2 {
		return nil
	}
	edges := make([]geom.Edge, n-1)
	for i := range edges {
		edges[i] = geom.Edge{A: i, B: i + 1}
	}
	return edges
}
