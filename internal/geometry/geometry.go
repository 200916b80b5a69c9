// pattern: Functional Core

// Package geometry holds the pure arithmetic shared by the layout model and
// the pointer controllers: rectangles, percent/pixel conversion, minimum
// clamps and proximity tests.
package geometry

import "math"

// Point is a screen coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box in screen units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Sub returns p translated by the negated top-left corner of r.
func (r Rect) Sub(p Point) Point {
	return Point{X: p.X - r.X, Y: p.Y - r.Y}
}

// Inset shrinks r by top from above and by left from the left. The result
// never has a negative size.
func (r Rect) Inset(top, left float64) Rect {
	out := Rect{X: r.X + left, Y: r.Y + top, Width: r.Width - left, Height: r.Height - top}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Epsilon is the tolerance used for percentage comparisons.
const Epsilon = 0.001

// PercentToPixels converts a percentage of total into pixels.
func PercentToPixels(pct, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return pct * total / 100
}

// PixelsToPercent converts a pixel width into a percentage of total.
func PixelsToPercent(px, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return px / total * 100
}

// MinPercent is the percentage of total taken by a minimum pixel width.
func MinPercent(minPx, total float64) float64 {
	if minPx <= 0 {
		return 0
	}
	return PixelsToPercent(minPx, total)
}

// ClampMin returns v raised to min when it falls below it.
func ClampMin(v, min float64) float64 {
	return math.Max(v, min)
}

// NearLeftEdge reports whether p is within threshold of the container's left edge.
func NearLeftEdge(p Point, container Rect, threshold float64) bool {
	return p.X-container.X <= threshold
}

// NearRightEdge reports whether p is within threshold of the container's right edge.
func NearRightEdge(p Point, container Rect, threshold float64) bool {
	return container.Right()-p.X <= threshold
}

// NearX reports whether x is within proximity of target.
func NearX(x, target, proximity float64) bool {
	return math.Abs(x-target) <= proximity
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
