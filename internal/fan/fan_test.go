package fan

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rclancey/earcut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/polyfan/internal/geom"
)

const testW, testH = 800, 600

var orange = mgl32.Vec3{1, 0.5, 0}

func newTestTriangulator() (*Triangulator, *Buffer) {
	buf := &Buffer{}
	return NewTriangulator(testW, testH, orange, buf), buf
}

// triangleArea returns the unsigned area of the i-th triangle in buf.
func triangleArea(buf *Buffer, i int) float64 {
	a, b, c := buf.Vertex(3*i).Position, buf.Vertex(3*i+1).Position, buf.Vertex(3*i+2).Position
	ab, ac := b.Sub(a), c.Sub(a)
	return math.Abs(float64(ab.Cross(ac).Z())) / 2
}

func TestTriangulate_EmitsOneTrianglePerPoint(t *testing.T) {
	for n := 3; n <= 12; n++ {
		tri, buf := newTestTriangulator()
		points := make([]geom.Point, n)
		for i := range points {
			angle := 2 * math.Pi * float64(i) / float64(n)
			points[i] = geom.MakePoint(400+100*math.Cos(angle), 300+100*math.Sin(angle))
		}

		assert.Equal(t, n, tri.Triangulate(points))
		assert.Equal(t, 3*n, buf.Len(), "n=%d", n)
		assert.Equal(t, n, buf.Triangles(), "n=%d", n)
	}
}

func TestTriangulate_FanLayout(t *testing.T) {
	tri, buf := newTestTriangulator()
	points := []geom.Point{
		{X: 0, Y: 0},
		{X: 0, Y: 10},
		{X: 10, Y: 10},
		{X: 10, Y: 0},
	}
	tri.Triangulate(points)
	require.Equal(t, 12, buf.Len())

	toNDC := geom.ScreenToNDC(testW, testH)
	ndc := func(p geom.Point) mgl32.Vec3 {
		q := toNDC.MulPoint(p)
		return mgl32.Vec3{float32(q.X), float32(q.Y), 0}
	}
	center := ndc(geom.MakePoint(5, 5))

	for i := range points {
		next := (i + 1) % len(points)
		assert.True(t, center.ApproxEqual(buf.Vertex(3*i).Position), "triangle %d centroid", i)
		assert.True(t, ndc(points[i]).ApproxEqual(buf.Vertex(3*i+1).Position), "triangle %d current", i)
		assert.True(t, ndc(points[next]).ApproxEqual(buf.Vertex(3*i+2).Position), "triangle %d next", i)
	}
}

func TestTriangulate_Normalization(t *testing.T) {
	tri, buf := newTestTriangulator()
	tri.Triangulate([]geom.Point{
		{X: 0, Y: 0},
		{X: testW, Y: 0},
		{X: testW, Y: testH},
	})

	// Second and third vertices of the first triangle are points[0] and
	// points[1].
	assert.Equal(t, mgl32.Vec3{-1, 1, 0}, buf.Vertex(1).Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, buf.Vertex(2).Position)
	// Last triangle closes the fan back to points[0].
	assert.Equal(t, mgl32.Vec3{1, -1, 0}, buf.Vertex(7).Position)
	assert.Equal(t, mgl32.Vec3{-1, 1, 0}, buf.Vertex(8).Position)
}

func TestTriangulate_FixedColor(t *testing.T) {
	tri, buf := newTestTriangulator()
	tri.Triangulate([]geom.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40}})
	tri.Triangulate([]geom.Point{{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 130, Y: 140}, {X: 90, Y: 130}})
	for i := 0; i < buf.Len(); i++ {
		assert.Equal(t, orange, buf.Vertex(i).Color)
	}
}

func TestTriangulate_TooFewPoints(t *testing.T) {
	tri, buf := newTestTriangulator()
	assert.Equal(t, 0, tri.Triangulate(nil))
	assert.Equal(t, 0, tri.Triangulate([]geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}))
	assert.Equal(t, 0, buf.Len())
}

func TestTriangulate_Collinear(t *testing.T) {
	tri, buf := newTestTriangulator()
	assert.Equal(t, 3, tri.Triangulate([]geom.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}}))
	require.Equal(t, 9, buf.Len())
	for i := 0; i < buf.Triangles(); i++ {
		assert.InDelta(t, 0, triangleArea(buf, i), 1e-6)
	}
}

func TestTriangulate_IdenticalPoints(t *testing.T) {
	tri, buf := newTestTriangulator()
	assert.Equal(t, 3, tri.Triangulate([]geom.Point{{X: 7, Y: 7}, {X: 7, Y: 7}, {X: 7, Y: 7}}))
	assert.Equal(t, 9, buf.Len())
}

func TestTriangulate_AppendsAcrossPolygons(t *testing.T) {
	tri, buf := newTestTriangulator()
	tri.Triangulate([]geom.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40}})
	first := buf.Vertex(0)
	tri.Triangulate([]geom.Point{{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 130, Y: 140}})

	assert.Equal(t, 18, buf.Len())
	assert.Equal(t, first, buf.Vertex(0))
}

// The fan over a convex polygon clicked in angular order covers exactly the
// polygon, so its area matches an ear-clipping triangulation of the same
// outline.
func TestTriangulate_ConvexAreaMatchesEarcut(t *testing.T) {
	tri, buf := newTestTriangulator()
	points := []geom.Point{
		{X: 400, Y: 100},
		{X: 580, Y: 200},
		{X: 560, Y: 420},
		{X: 380, Y: 500},
		{X: 220, Y: 380},
		{X: 240, Y: 180},
	}
	tri.Triangulate(points)

	var fanArea float64
	for i := 0; i < buf.Triangles(); i++ {
		fanArea += triangleArea(buf, i)
	}

	toNDC := geom.ScreenToNDC(testW, testH)
	coords := make([]float64, 0, 2*len(points))
	for _, p := range points {
		q := toNDC.MulPoint(p)
		coords = append(coords, q.X, q.Y)
	}
	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	require.NoError(t, err)
	require.Len(t, indices, 3*(len(points)-2))

	var earArea float64
	for i := 0; i < len(indices); i += 3 {
		ax, ay := coords[indices[i]*2], coords[indices[i]*2+1]
		bx, by := coords[indices[i+1]*2], coords[indices[i+1]*2+1]
		cx, cy := coords[indices[i+2]*2], coords[indices[i+2]*2+1]
		earArea += math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2
	}

	assert.InDelta(t, earArea, fanArea, 1e-4)
}

func TestBufferFloats(t *testing.T) {
	tri, buf := newTestTriangulator()
	tri.Triangulate([]geom.Point{{X: 0, Y: 0}, {X: testW, Y: 0}, {X: testW, Y: testH}})

	all := buf.Floats(0)
	require.Len(t, all, 9*FloatsPerVertex)
	// Second vertex: points[0] at the top-left corner.
	assert.Equal(t, []float32{-1, 1, 0, 1, 0.5, 0}, all[FloatsPerVertex:2*FloatsPerVertex])

	tail := buf.Floats(6)
	assert.Equal(t, all[6*FloatsPerVertex:], tail)

	assert.Nil(t, buf.Floats(9))
	assert.Nil(t, buf.Floats(100))
}
