// Package render draws the session's render buffer with OpenGL.
//
// Each frame it:
// 1. Uploads vertices appended to the render buffer since the last frame.
// 2. Issues one triangle-list draw call covering every vertex.
package render

import (
	"fmt"
	"time"

	"github.com/irfansharif/polyfan/internal/fan"
	"github.com/irfansharif/polyfan/internal/memory"
)

// VertexSource is the read side of the render buffer.
type VertexSource interface {
	Len() int
	Floats(from int) []float32
}

var _ VertexSource = (*fan.Buffer)(nil)

// Uploader is GPU-side vertex storage.
type Uploader interface {
	Uploaded() int
	Append(vertices []float32) error
	Draw() error
}

var _ Uploader = (*memory.Controller)(nil)

type Renderer struct {
	memController Uploader
	shaderManager *ShaderManager
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
}

// NewRenderer compiles shaders and returns a renderer drawing from the given
// GPU storage. It requires a current GL context.
func NewRenderer(memController Uploader) (*Renderer, error) {
	sm, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		memController: memController,
		shaderManager: sm,
	}, nil
}

// Prepare uploads the part of src not yet in GPU memory.
func (r *Renderer) Prepare(src VertexSource) error {
	startTime := time.Now()
	if err := syncBuffer(r.memController, src); err != nil {
		return err
	}
	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	return nil
}

// syncBuffer appends the vertices of src beyond those already uploaded.
func syncBuffer(dst Uploader, src VertexSource) error {
	uploaded := dst.Uploaded()
	if uploaded > src.Len() {
		return fmt.Errorf("GPU holds %d vertices but the render buffer only %d", uploaded, src.Len())
	}
	if uploaded == src.Len() {
		return nil // up to date
	}
	if err := dst.Append(src.Floats(uploaded)); err != nil {
		return fmt.Errorf("failed to upload vertices %d..%d: %w", uploaded, src.Len(), err)
	}
	return nil
}

func (r *Renderer) Draw() error {
	startTime := time.Now()

	r.shaderManager.Use()
	if err := r.memController.Draw(); err != nil {
		return fmt.Errorf("memory controller draw failed: %w", err)
	}

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
	return nil
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Cleanup releases the shader program.
func (r *Renderer) Cleanup() {
	r.shaderManager.Delete()
}
