// Package memory mirrors the append-only render buffer into GPU memory.
//
// Vertices live in a single VBO+VAO. Since the render buffer only ever grows,
// each sync uploads just the vertices appended since the previous one. When
// the VBO is full its capacity is doubled and the existing contents are
// copied across.
package memory

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var memoryLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("POLYFAN_DEBUG_MEMORY") == "1" {
		memoryLogger = log.New(os.Stdout, "[memory] ", log.Ltime|log.Lmsgprefix)
	}
}

// Configuration constants for the vertex buffer.
const (
	// FloatsPerVertex is the interleaved vertex layout: position (x, y, z)
	// followed by color (r, g, b).
	FloatsPerVertex = 6
	bytesPerFloat   = 4
	bytesPerVertex  = FloatsPerVertex * bytesPerFloat

	// Growth configuration. The VBO starts with room for InitialVertexCapacity
	// vertices (~341 triangles) and doubles whenever an upload does not fit,
	// up to MaxBufferBytes.
	InitialVertexCapacity = 1024
	MaxBufferBytes        = 256 * 1024 * 1024 // 256 MiB
)

// Controller owns the GPU vertex buffer.
type Controller struct {
	vao, vbo       uint32
	vertexCapacity int // vertices the VBO can hold
	vertexCount    int // vertices uploaded so far
	stats          Stats
}

// Stats tracks metrics for the vertex buffer.
type Stats struct {
	TotalVertices      int64
	CapacityVertices   int64
	TotalGPUBytes      int64
	GrowthEvents       int
	LastGrowthTimeUs   float64
	LastUploadVertices int
	DrawCallsPerFrame  int
}

// NewController creates a controller. GL objects are created lazily on the
// first upload, so a current GL context is only needed from then on.
func NewController() *Controller {
	return &Controller{}
}

// planCapacity returns the smallest capacity, doubling from current (or
// InitialVertexCapacity if nothing is allocated yet), that holds needed
// vertices.
func planCapacity(current, needed int) (int, error) {
	capacity := current
	if capacity <= 0 {
		capacity = InitialVertexCapacity
	}
	for capacity < needed {
		capacity *= 2
	}
	if capacity*bytesPerVertex > MaxBufferBytes {
		return 0, fmt.Errorf("%d vertices exceed the maximum buffer size (%s bytes)", needed, formatNumber(MaxBufferBytes))
	}
	return capacity, nil
}

// validateVertices checks that data is a whole number of interleaved vertices.
func validateVertices(vertices []float32) error {
	if len(vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("vertex data must be multiple of %d floats (x,y,z,r,g,b), got %d", FloatsPerVertex, len(vertices))
	}
	return nil
}

// Uploaded returns the number of vertices currently in GPU memory.
func (mc *Controller) Uploaded() int { return mc.vertexCount }

// Append uploads vertices after those already in GPU memory, growing the VBO
// if needed.
func (mc *Controller) Append(vertices []float32) error {
	if err := validateVertices(vertices); err != nil {
		return err
	}
	if len(vertices) == 0 {
		return nil // nothing to do
	}

	newCount := len(vertices) / FloatsPerVertex
	needed := mc.vertexCount + newCount
	if mc.vbo == 0 || needed > mc.vertexCapacity {
		capacity, err := planCapacity(mc.vertexCapacity, needed)
		if err != nil {
			return err
		}
		if err := mc.grow(capacity); err != nil {
			return fmt.Errorf("failed to grow vertex buffer: %w", err)
		}
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, mc.vbo)
	byteOffset := mc.vertexCount * bytesPerVertex
	byteSize := len(vertices) * bytesPerFloat
	gl.BufferSubData(gl.ARRAY_BUFFER, byteOffset, byteSize, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	mc.vertexCount = needed
	mc.stats.LastUploadVertices = newCount
	memoryLogger.Printf("uploaded %d vertices (%d/%d in use)", newCount, mc.vertexCount, mc.vertexCapacity)
	return nil
}

// grow allocates a VBO with room for capacity vertices and moves the
// uploaded vertices into it.
func (mc *Controller) grow(capacity int) error {
	startTime := time.Now()

	if mc.vao == 0 {
		gl.GenVertexArrays(1, &mc.vao)
	}

	// CPU-side copy of existing data; glCopyBufferSubData is unavailable on
	// OpenGL 4.1.
	var existing []float32
	if mc.vbo != 0 && mc.vertexCount > 0 {
		existing = make([]float32, mc.vertexCount*FloatsPerVertex)
		gl.BindBuffer(gl.ARRAY_BUFFER, mc.vbo)
		gl.GetBufferSubData(gl.ARRAY_BUFFER, 0, len(existing)*bytesPerFloat, gl.Ptr(existing))
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(mc.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*bytesPerVertex, nil, gl.DYNAMIC_DRAW)
	if len(existing) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(existing)*bytesPerFloat, gl.Ptr(existing))
	}

	// Configure vertex attributes
	// - Attribute 0: position (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
	// - Attribute 1: color (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(3*bytesPerFloat))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if mc.vbo != 0 {
		gl.DeleteBuffers(1, &mc.vbo)
		mc.stats.GrowthEvents++
		mc.stats.LastGrowthTimeUs = float64(time.Since(startTime).Microseconds())
	}
	memoryLogger.Printf("vertex buffer resized %s -> %s vertices", formatNumber(int64(mc.vertexCapacity)), formatNumber(int64(capacity)))

	mc.vbo = vbo
	mc.vertexCapacity = capacity
	return nil
}

// Draw renders every uploaded vertex as a triangle list.
func (mc *Controller) Draw() error {
	if mc.vertexCount == 0 {
		mc.stats.DrawCallsPerFrame = 0
		return nil
	}
	if mc.vertexCount%3 != 0 {
		return fmt.Errorf("vertex count %d is not a whole number of triangles", mc.vertexCount)
	}

	gl.BindVertexArray(mc.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(mc.vertexCount))
	gl.BindVertexArray(0)
	mc.stats.DrawCallsPerFrame = 1
	return nil
}

// Cleanup releases all OpenGL resources.
func (mc *Controller) Cleanup() {
	if mc.vao != 0 {
		gl.DeleteVertexArrays(1, &mc.vao)
		mc.vao = 0
	}
	if mc.vbo != 0 {
		gl.DeleteBuffers(1, &mc.vbo)
		mc.vbo = 0
	}
	mc.vertexCapacity, mc.vertexCount = 0, 0
}

// Stats returns current memory statistics.
func (mc *Controller) Stats() Stats {
	mc.stats.TotalVertices = int64(mc.vertexCount)
	mc.stats.CapacityVertices = int64(mc.vertexCapacity)
	mc.stats.TotalGPUBytes = int64(mc.vertexCapacity * bytesPerVertex)
	return mc.stats
}

// PrintStats outputs memory statistics with a utilization bar.
func (mc *Controller) PrintStats() {
	stats := mc.Stats()

	util := 0.0
	if stats.CapacityVertices > 0 {
		util = float64(stats.TotalVertices) / float64(stats.CapacityVertices)
	}

	memoryLogger.Println("===== Memory Controller Stats =====")
	memoryLogger.Printf("%s %.1f%% in use (%s/%s vertices, %s triangles), %s GPU",
		makeUtilizationBar(util, 12),
		util*100,
		formatNumber(stats.TotalVertices),
		formatNumber(stats.CapacityVertices),
		formatNumber(stats.TotalVertices/3),
		formatNumber(stats.TotalGPUBytes),
	)
	memoryLogger.Printf("%d growth events (%.2fμs last), %d vertices in last upload",
		stats.GrowthEvents, stats.LastGrowthTimeUs, stats.LastUploadVertices)
	memoryLogger.Println("===================================")
}

// makeUtilizationBar creates a visual bar for utilization percentage.
func makeUtilizationBar(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 1 {
		utilization = 1
	}

	filled := int(utilization * float64(width))
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// formatNumber formats large numbers with K/M suffixes for readability.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000.0)
}
