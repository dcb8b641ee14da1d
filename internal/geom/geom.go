// Package geom provides the 2D primitives used to turn clicks into polygons:
// - Points in window pixel space and point arithmetic
// - Centroids of point sets
// - Affine transforms, including the pixel-to-NDC mapping and its inverse
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point in window pixel coordinates (origin top-left,
// x right, y down).
type Point struct {
	X float64
	Y float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Centroid returns the component-wise arithmetic mean of the given points.
// The centroid of an empty set is the origin.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// ScreenToNDC returns the transform from window pixel coordinates in a w×h
// window to OpenGL normalized device coordinates:
//
//	nx =  (px/w)*2 - 1
//	ny = -(py/h)*2 + 1
//
// The vertical axis is flipped: pixel y grows downward, NDC y grows upward.
func ScreenToNDC(w, h float64) Affine {
	return MakeAffine(
		2.0/w, 0, -1,
		0, -2.0/h, 1,
	)
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(w, h float64) (Affine, error) {
	return ScreenToNDC(w, h).Inv()
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}
