// Package raster draws line primitives into 1-bit canvases.
//
// Lines are computed with proportional stepping along the longer axis: for
// each step the short axis offset is derived from the right triangle formed
// by the remaining distance and the segment's hypotenuse. The result matches
// Bresenham visually while keeping the arithmetic in floating point.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/moskalva/I2CScreen/image1bit"
)

// ErrTooFewPoints is returned by DrawPolyline for chains shorter than a segment.
var ErrTooFewPoints = errors.New("raster: at least 2 points are required")

// Canvas is a pixel target. image1bit.VerticalLSB implements it.
type Canvas interface {
	SetPixel(x, y int, on bool) error
	Bounds() image.Rectangle
}

var _ Canvas = (*image1bit.VerticalLSB)(nil)

// Line returns the pixels of the segment p1-p2, both ends included, ordered
// from p1 to p2.
func Line(p1, p2 image.Point) []image.Point {
	a := abs(p1.X - p2.X)
	b := abs(p1.Y - p2.Y)
	if a == 0 && b == 0 {
		return []image.Point{p1}
	}

	c := math.Hypot(float64(a), float64(b))
	xSign := sign(p1.X - p2.X)
	ySign := sign(p1.Y - p2.Y)
	longer := max(a, b)

	points := make([]image.Point, 0, longer+1)
	for i := 0; i <= longer; i++ {
		rem := float64(longer - i)
		var dx, dy float64
		if a >= b {
			dx = rem
			dy = shortOffset(rem, float64(a)/c, b)
		} else {
			dy = rem
			dx = shortOffset(rem, float64(b)/c, a)
		}
		points = append(points, image.Point{
			X: trunc(float64(p2.X) + xSign*dx),
			Y: trunc(float64(p2.Y) + ySign*dy),
		})
	}
	return points
}

// shortOffset returns the short axis leg of the triangle whose long leg is
// rem and whose long leg to hypotenuse ratio is ratio.
func shortOffset(rem, ratio float64, short int) float64 {
	if short == 0 {
		return 0
	}
	h := rem / ratio
	return math.Sqrt(math.Max(h*h-rem*rem, 0))
}

// DrawLine lights every pixel of the segment p1-p2.
//
// All points are checked against dst's bounds first; if any falls outside,
// ErrOutOfBounds is returned and dst is left untouched.
func DrawLine(dst Canvas, p1, p2 image.Point) error {
	points := Line(p1, p2)
	r := dst.Bounds()
	for _, p := range points {
		if !p.In(r) {
			return fmt.Errorf("%w: line point (%d, %d) outside %v", image1bit.ErrOutOfBounds, p.X, p.Y, r)
		}
	}
	for _, p := range points {
		if err := dst.SetPixel(p.X, p.Y, true); err != nil {
			return err
		}
	}
	return nil
}

// DrawPolyline draws the chain of segments connecting points in order.
func DrawPolyline(dst Canvas, points ...image.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i := 1; i < len(points); i++ {
		if err := DrawLine(dst, points[i-1], points[i]); err != nil {
			return err
		}
	}
	return nil
}

// DrawBorder outlines the canvas with a one pixel frame.
func DrawBorder(dst Canvas) error {
	r := dst.Bounds()
	if r.Empty() {
		return nil
	}
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	return DrawPolyline(dst,
		image.Pt(x0, y0),
		image.Pt(x1, y0),
		image.Pt(x1, y1),
		image.Pt(x0, y1),
		image.Pt(x0, y0),
	)
}

// DrawDiagonals draws a cross from corner to corner, stepping both axes in
// proportion to the canvas aspect ratio.
func DrawDiagonals(dst Canvas) error {
	r := dst.Bounds()
	w, h := r.Dx(), r.Dy()
	n := min(w, h)
	if n <= 0 {
		return nil
	}
	xStep := float64(w) / float64(n)
	yStep := float64(h) / float64(n)
	for i := 0; i < n; i++ {
		x := int(float64(i) * xStep)
		y := int(float64(i) * yStep)
		if err := dst.SetPixel(r.Min.X+x, r.Min.Y+y, true); err != nil {
			return err
		}
		if err := dst.SetPixel(r.Min.X+x, r.Max.Y-y-1, true); err != nil {
			return err
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// trunc rounds toward zero, absorbing the error sqrt leaves on exact values.
func trunc(v float64) int {
	return int(math.Trunc(v + math.Copysign(1e-9, v)))
}
