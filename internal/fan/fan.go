// Package fan triangulates clicked polygons into GPU-ready vertex data.
//
// A polygon is triangulated by connecting every edge to its centroid. The
// fan only covers the polygon when its points are already in angular order
// around the centroid (convex, clicked sequentially). Points are never sorted
// or reordered, and concave or self-intersecting input produces overlapping
// triangles.
package fan

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/irfansharif/polyfan/internal/geom"
)

// FloatsPerVertex is the stride of flattened vertex data: x, y, z, r, g, b.
const FloatsPerVertex = 6

// Vertex is a single vertex record: an NDC position (z = 0) and an RGB color.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Buffer is the append-only sequence of vertices accumulated across every
// completed polygon. Every three consecutive vertices form one triangle. It
// is never cleared or compacted.
type Buffer struct {
	vertices []Vertex
}

// Len returns the number of vertices in the buffer.
func (b *Buffer) Len() int { return len(b.vertices) }

// Triangles returns the number of triangles in the buffer.
func (b *Buffer) Triangles() int { return len(b.vertices) / 3 }

// Vertex returns the i-th vertex.
func (b *Buffer) Vertex(i int) Vertex { return b.vertices[i] }

func (b *Buffer) append(vs ...Vertex) { b.vertices = append(b.vertices, vs...) }

// Floats flattens the vertices in [from, Len()) into interleaved
// (x, y, z, r, g, b) float32 data.
func (b *Buffer) Floats(from int) []float32 {
	if from < 0 {
		from = 0
	}
	if from >= len(b.vertices) {
		return nil
	}
	out := make([]float32, 0, (len(b.vertices)-from)*FloatsPerVertex)
	for _, v := range b.vertices[from:] {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2], // position
			v.Color[0], v.Color[1], v.Color[2],          // color
		)
	}
	return out
}

// Triangulator turns closed point sequences in window pixel space into fan
// triangles appended to a Buffer.
type Triangulator struct {
	toNDC geom.Affine
	color mgl32.Vec3
	out   *Buffer
}

// NewTriangulator returns a triangulator for a w×h window that appends to
// out, coloring every vertex with color.
func NewTriangulator(w, h int, color mgl32.Vec3, out *Buffer) *Triangulator {
	return &Triangulator{
		toNDC: geom.ScreenToNDC(float64(w), float64(h)),
		color: color,
		out:   out,
	}
}

// Triangulate appends one triangle (centroid, points[i], points[i+1 mod n])
// per point, and returns the number of triangles appended. Fewer than three
// points is a no-op.
func (t *Triangulator) Triangulate(points []geom.Point) int {
	n := len(points)
	if n < 3 {
		return 0
	}

	center := t.vertex(geom.Centroid(points))
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		t.out.append(center, t.vertex(points[i]), t.vertex(points[next]))
	}
	return n
}

// vertex maps a pixel-space point to a colored NDC vertex.
func (t *Triangulator) vertex(p geom.Point) Vertex {
	ndc := t.toNDC.MulPoint(p)
	return Vertex{
		Position: mgl32.Vec2{float32(ndc.X), float32(ndc.Y)}.Vec3(0),
		Color:    t.color,
	}
}
