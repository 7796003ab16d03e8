package models

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/logging"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Load loads a mesh, choosing the reader by file extension.
func Load(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: %s (use .obj, .gltf or .glb)", ErrUnsupportedFormat, ext)
	}
}

// LoadAll loads paths concurrently, at most limit at a time. Meshes are
// returned in path order. The first failure cancels the rest.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*Mesh, error) {
	meshes := make([]*Mesh, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Load(path)
			if err != nil {
				return err
			}
			logging.Logger().Debug("mesh loaded",
				"path", path,
				"primitives", m.PrimitiveCount(),
				"edges", m.EdgeCount(),
			)
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load meshes: %w", err)
	}
	return meshes, nil
}

// Normalize returns prims centered on the origin and scaled uniformly so
// the largest dimension of their combined bounds is size.
func Normalize(prims []geom.Primitive, size float64) []geom.Primitive {
	m := &Mesh{Primitives: append([]geom.Primitive(nil), prims...)}
	m.Normalize(size)
	return m.Primitives
}
