package render

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/logging"
)

// Viewport is the output area in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns Width / Height.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}

// Pipeline turns a scene and a camera into screen-space segments.
//
// The stage order is fixed: clip, sort, view, projection, screen. Clipping
// and sorting both happen in world space, where near/far and centroid
// distances are measured from the camera position. The later stages keep
// primitive order, so the emitted strokes are back to front.
type Pipeline struct {
	Viewport Viewport
	Policy   geom.ClipPolicy
	// Margin rejects screen points further than Margin viewport sizes
	// outside the viewport. Zero disables the check.
	Margin float64
	// Workers bounds the goroutines used for the view transform. Zero or
	// one transforms on the calling goroutine.
	Workers int
}

// Stroke is one screen-space segment ready to draw.
type Stroke struct {
	geom.Segment
	Color color.RGBA
	// Depth is the primitive's rank in draw order, 0 for the farthest
	// and 1 for the nearest.
	Depth float64
}

// FrameStats counts primitives through the stages of one frame.
type FrameStats struct {
	Primitives int // In the input scene
	Culled     int // Rejected by the clip volume
	Dropped    int // Rejected at screen mapping
	Drawn      int // Emitted
	Segments   int
	Elapsed    time.Duration
}

// Frame is the result of one pipeline run.
type Frame struct {
	Strokes []Stroke
	Stats   FrameStats
}

// Segments returns the strokes without color or depth.
func (f Frame) Segments() []geom.Segment {
	segs := make([]geom.Segment, len(f.Strokes))
	for i, s := range f.Strokes {
		segs[i] = s.Segment
	}
	return segs
}

// Frame runs the pipeline once. The scene and camera are not modified.
func (p Pipeline) Frame(ctx context.Context, scene geom.Scene, cam *Camera) (Frame, error) {
	start := time.Now()
	stats := FrameStats{Primitives: scene.Len()}

	visible := scene.Clip(cam.ClipVolume(p.Policy))
	stats.Culled = scene.Len() - visible.Len()

	sorted, err := visible.Sorted(cam.Position)
	if err != nil {
		return Frame{}, fmt.Errorf("sort scene: %w", err)
	}

	view, err := sorted.TransformParallel(ctx, cam.ViewMatrix(), p.Workers)
	if err != nil {
		return Frame{}, err
	}
	projected := view.Transform(cam.ProjectionMatrix())

	screen := projected.ScreenCoords(p.Viewport.Width, p.Viewport.Height, p.Margin)
	stats.Dropped = projected.Len() - screen.Len()
	stats.Drawn = screen.Len()

	strokes := make([]Stroke, 0, screen.Len()*4)
	for i, prim := range screen.Primitives() {
		depth := 1.0
		if screen.Len() > 1 {
			depth = float64(i) / float64(screen.Len()-1)
		}
		for _, seg := range prim.Segments() {
			strokes = append(strokes, Stroke{Segment: seg, Color: prim.Color, Depth: depth})
		}
	}
	stats.Segments = len(strokes)
	stats.Elapsed = time.Since(start)

	logging.Logger().Debug("frame",
		"primitives", stats.Primitives,
		"culled", stats.Culled,
		"dropped", stats.Dropped,
		"segments", stats.Segments,
		"elapsed", stats.Elapsed,
	)

	return Frame{Strokes: strokes, Stats: stats}, nil
}
