package app

import (
	"io"
	"log"
	"os"

	"github.com/irfansharif/polyfan/internal/geom"
)

// polygonSize is the number of pending points that completes a polygon.
const polygonSize = 3

var inputLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("POLYFAN_DEBUG_INPUT") == "1" {
		inputLogger = log.New(os.Stdout, "[input] ", log.Ltime|log.Lmsgprefix)
	}
}

// Triangulator consumes completed polygons.
type Triangulator interface {
	Triangulate(points []geom.Point) int
}

// Accumulator collects clicked points and hands them off as a polygon once
// enough have been placed. There is no preview, confirm or cancel step.
type Accumulator struct {
	pending      []geom.Point
	triangulator Triangulator
}

// NewAccumulator returns an accumulator that hands completed polygons to t.
func NewAccumulator(t Triangulator) *Accumulator {
	return &Accumulator{
		pending:      make([]geom.Point, 0, polygonSize),
		triangulator: t,
	}
}

// OnClick appends the clicked position to the pending set. Once the set holds
// three or more points it is triangulated and cleared. Duplicate positions
// are accepted as is.
func (a *Accumulator) OnClick(position geom.Point) {
	a.pending = append(a.pending, position)
	inputLogger.Printf("point %d at (%.1f, %.1f)", len(a.pending), position.X, position.Y)
	if len(a.pending) < polygonSize {
		return // polygon not ready
	}

	triangles := a.triangulator.Triangulate(a.pending)
	inputLogger.Printf("polygon of %d points committed (%d triangles)", len(a.pending), triangles)
	a.pending = a.pending[:0]
}

// Pending returns a copy of the points placed since the last polygon.
func (a *Accumulator) Pending() []geom.Point {
	out := make([]geom.Point, len(a.pending))
	copy(out, a.pending)
	return out
}
