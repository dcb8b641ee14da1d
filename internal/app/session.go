package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/irfansharif/polyfan/internal/fan"
	"github.com/irfansharif/polyfan/internal/geom"
)

// Session holds all polygon state for one window: the pending clicks, the
// triangulator and the render buffer it appends to. It is not safe for
// concurrent use; clicks and rendering happen on the same thread.
type Session struct {
	Width, Height int

	accumulator *Accumulator
	buffer      *fan.Buffer
	polygons    int
}

// NewSession creates a session for a fixed w×h window whose polygons are
// filled with color.
func NewSession(w, h int, color mgl32.Vec3) *Session {
	s := &Session{
		Width:  w,
		Height: h,
		buffer: &fan.Buffer{},
	}
	s.accumulator = NewAccumulator(countingTriangulator{
		Triangulator: fan.NewTriangulator(w, h, color, s.buffer),
		polygons:     &s.polygons,
	})
	return s
}

// Click records a click at the given window pixel position.
func (s *Session) Click(p geom.Point) { s.accumulator.OnClick(p) }

// Pending returns the points placed towards the next polygon.
func (s *Session) Pending() []geom.Point { return s.accumulator.Pending() }

// Buffer returns the render buffer. Callers must only read from it.
func (s *Session) Buffer() *fan.Buffer { return s.buffer }

// Polygons returns the number of polygons committed so far.
func (s *Session) Polygons() int { return s.polygons }

// countingTriangulator counts the polygons that produced triangles.
type countingTriangulator struct {
	*fan.Triangulator
	polygons *int
}

func (c countingTriangulator) Triangulate(points []geom.Point) int {
	n := c.Triangulator.Triangulate(points)
	if n > 0 {
		*c.polygons++
	}
	return n
}
