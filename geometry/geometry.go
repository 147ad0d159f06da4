// seehuhn.de/go/convolve - exact filtered rasterization
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package geometry provides the float32 pixel-space primitives used by the
// rasterizer: points, vectors, rectangles and clippable curves.
//
// Coordinates follow the device convention of the rasterizer: x grows to
// the right, y grows downwards, and pixel (i, j) covers the unit square
// with top-left corner (i, j).
package geometry

import (
	"github.com/chewxy/math32"
)

// Point is a position in pixel space.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Origin returns the point (0, 0).
func Origin() Point {
	return Point{}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Offset returns p displaced by (dx, dy).
func (p Point) Offset(dx, dy float32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Scale multiplies both coordinates by s.
func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Vec returns the displacement of p from the origin.
func (p Point) Vec() Vector {
	return Vector{X: p.X, Y: p.Y}
}

// Vector is a displacement in pixel space.
type Vector struct {
	X float32
	Y float32
}

// Add returns v+w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v-w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul scales v by s.
func (v Vector) Mul(s float32) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Div divides v by s.
func (v Vector) Div(s float32) Vector {
	return Vector{X: v.X / s, Y: v.Y / s}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Orth returns v rotated by a quarter turn, (y, -x).
func (v Vector) Orth() Vector {
	return Vector{X: v.Y, Y: -v.X}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Size is the extent of a rectangle. Components may be negative
// until the rectangle is normalized.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect returns the rectangle with origin (x, y) and the given size.
func NewRect(x, y, width, height float32) Rect {
	return Rect{
		Origin: Point{X: x, Y: y},
		Size:   Size{Width: width, Height: height},
	}
}

// Normalize returns an equivalent rectangle with non-negative width and
// height. The origin of a normalized rectangle is its top-left corner.
func (r Rect) Normalize() Rect {
	if r.Size.Width < 0 {
		r.Origin.X += r.Size.Width
		r.Size.Width = -r.Size.Width
	}
	if r.Size.Height < 0 {
		r.Origin.Y += r.Size.Height
		r.Size.Height = -r.Size.Height
	}
	return r
}

// MaxX returns the largest x coordinate of the rectangle.
func (r Rect) MaxX() float32 {
	r = r.Normalize()
	return r.Origin.X + r.Size.Width
}

// MaxY returns the largest y coordinate of the rectangle.
func (r Rect) MaxY() float32 {
	r = r.Normalize()
	return r.Origin.Y + r.Size.Height
}

// TopLeft returns the corner with the smallest coordinates.
func (r Rect) TopLeft() Point {
	return r.Normalize().Origin
}

// TopRight returns the corner with the largest x and the smallest y
// coordinate.
func (r Rect) TopRight() Point {
	r = r.Normalize()
	return r.Origin.Offset(r.Size.Width, 0)
}

// BottomLeft returns the corner with the smallest x and the largest y
// coordinate.
func (r Rect) BottomLeft() Point {
	r = r.Normalize()
	return r.Origin.Offset(0, r.Size.Height)
}

// BottomRight returns the corner with the largest coordinates.
func (r Rect) BottomRight() Point {
	r = r.Normalize()
	return r.Origin.Offset(r.Size.Width, r.Size.Height)
}

// IsFinite reports whether all corners of r have finite coordinates.
func (r Rect) IsFinite() bool {
	for _, v := range []float32{r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return !math32.IsInf(r.MaxX(), 0) && !math32.IsInf(r.MaxY(), 0)
}

// Contains reports whether p lies in the closed rectangle.
func (r Rect) Contains(p Point) bool {
	r = r.Normalize()
	return p.X >= r.Origin.X && p.X <= r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y <= r.Origin.Y+r.Size.Height
}

// Intersects reports whether the closed rectangles r and other overlap.
// Rectangles which only touch along an edge intersect.
func (r Rect) Intersects(other Rect) bool {
	r = r.Normalize()
	other = other.Normalize()
	return r.Origin.X <= other.Origin.X+other.Size.Width &&
		other.Origin.X <= r.Origin.X+r.Size.Width &&
		r.Origin.Y <= other.Origin.Y+other.Size.Height &&
		other.Origin.Y <= r.Origin.Y+r.Size.Height
}

// IntersectsPixel reports whether r overlaps the unit cell of pixel (x, y).
func (r Rect) IntersectsPixel(x, y int) bool {
	return r.Intersects(NewRect(float32(x), float32(y), 1, 1))
}

// ImageSize returns the pixel dimensions of the normalized rectangle.
// Fractional sizes are truncated.
func (r Rect) ImageSize() ImageSize {
	r = r.Normalize()
	return ImageSize{
		Width:  int(r.Size.Width),
		Height: int(r.Size.Height),
	}
}

// ImageSize is the size of a raster in whole pixels.
type ImageSize struct {
	Width  int
	Height int
}

// Pixels returns the number of pixels, Width*Height.
func (s ImageSize) Pixels() int {
	return s.Width * s.Height
}
