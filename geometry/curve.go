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

package geometry

import (
	"math"
	"slices"
)

// Curve is implemented by the segment types which can be rasterized.
// The type parameter is the implementing type itself.
type Curve[C any] interface {
	// BoundingBox returns a rectangle enclosing the curve.
	// The rectangle is not necessarily normalized.
	BoundingBox() Rect

	// AppendClipped appends the parts of the curve which lie inside r to
	// dst and returns the extended slice. The rectangle is treated as
	// half-open: pieces running exactly along its right or bottom edge
	// belong to the neighbouring cell and are dropped.
	AppendClipped(dst []C, r Rect) []C

	// Offset returns a copy of the curve translated by v.
	Offset(v Vector) C
}

// Line is a directed straight segment. The direction determines the sign
// of the area the segment contributes.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewLine returns the line from start to end.
func NewLine(start, end Point) Line {
	return Line{Start: start, End: end}
}

// BoundingBox returns the rectangle spanned by the two end points. Its
// size is negative along an axis where the line runs backwards.
func (l Line) BoundingBox() Rect {
	return NewRect(l.Start.X, l.Start.Y, l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

// Offset returns the line translated by v.
func (l Line) Offset(v Vector) Line {
	return Line{Start: l.Start.Add(v), End: l.End.Add(v)}
}

// AppendClipped implements [Curve].
func (l Line) AppendClipped(dst []Line, r Rect) []Line {
	if c, ok := l.ClipToRect(r); ok {
		dst = append(dst, c)
	}
	return dst
}

// Edge identifiers used while clipping. The order matches the (p, q)
// pairs of the Liang-Barsky algorithm.
const (
	edgeNone = iota - 1
	edgeLeft
	edgeRight
	edgeTop
	edgeBottom
)

// ClipToRect restricts l to the rectangle r, using the Liang-Barsky
// algorithm. Since lines are straight and rectangles convex, at most one
// segment remains; ok is false if nothing does.
//
// A result lying exactly on the right or on the bottom edge of r is
// rejected, so that a segment on the boundary between two adjacent cells
// is only reported for one of them. Clipped end points are placed exactly
// on the edge which cut them.
func (l Line) ClipToRect(r Rect) (clipped Line, ok bool) {
	r = r.Normalize()
	xMin, xMax := r.Origin.X, r.Origin.X+r.Size.Width
	yMin, yMax := r.Origin.Y, r.Origin.Y+r.Size.Height

	d := l.End.Sub(l.Start)
	p := [4]float32{-d.X, d.X, -d.Y, d.Y}
	q := [4]float32{l.Start.X - xMin, xMax - l.Start.X, l.Start.Y - yMin, yMax - l.Start.Y}

	t1, t2 := float32(0), float32(1)
	e1, e2 := edgeNone, edgeNone
	for i := range 4 {
		switch {
		case p[i] < 0: // moving towards the inside of edge i
			if t := q[i] / p[i]; t > t1 {
				t1, e1 = t, i
			}
		case p[i] > 0: // moving towards the outside of edge i
			if t := q[i] / p[i]; t < t2 {
				t2, e2 = t, i
			}
		case q[i] < 0: // parallel to edge i and outside
			return Line{}, false
		}
	}
	if t1 > t2 {
		return Line{}, false
	}

	clipped = l
	if e1 != edgeNone {
		clipped.Start = snapToEdge(l.Start.Add(d.Mul(t1)), e1, r)
	}
	if e2 != edgeNone {
		clipped.End = snapToEdge(l.Start.Add(d.Mul(t2)), e2, r)
	}

	if clipped.Start.X == xMax && clipped.End.X == xMax ||
		clipped.Start.Y == yMax && clipped.End.Y == yMax {
		return Line{}, false
	}
	return clipped, true
}

// snapToEdge moves a point computed by interpolation exactly onto the
// given edge of r and clamps the other coordinate into r.
func snapToEdge(pt Point, edge int, r Rect) Point {
	xMin, xMax := r.Origin.X, r.Origin.X+r.Size.Width
	yMin, yMax := r.Origin.Y, r.Origin.Y+r.Size.Height
	switch edge {
	case edgeLeft:
		pt.X = xMin
	case edgeRight:
		pt.X = xMax
	case edgeTop:
		pt.Y = yMin
	case edgeBottom:
		pt.Y = yMax
	}
	pt.X = min(max(pt.X, xMin), xMax)
	pt.Y = min(max(pt.Y, yMin), yMax)
	return pt
}

// QuadraticBezier is a directed quadratic Bézier segment.
type QuadraticBezier struct {
	Start   Point `json:"start"`
	Control Point `json:"control"`
	End     Point `json:"end"`
}

// NewQuadraticBezier returns the quadratic Bézier curve with the given
// control points.
func NewQuadraticBezier(start, control, end Point) QuadraticBezier {
	return QuadraticBezier{Start: start, Control: control, End: end}
}

// At evaluates the curve at parameter t.
func (q QuadraticBezier) At(t float32) Point {
	return q.blossom(t, t)
}

// blossom evaluates the polar form of the curve. blossom(t, t) is the
// point at t, and blossom(a, b) is the middle control point of the
// piece between a and b.
func (q QuadraticBezier) blossom(a, b float32) Point {
	w0 := (1 - a) * (1 - b)
	w1 := (1-a)*b + a*(1-b)
	w2 := a * b
	return Point{
		X: w0*q.Start.X + w1*q.Control.X + w2*q.End.X,
		Y: w0*q.Start.Y + w1*q.Control.Y + w2*q.End.Y,
	}
}

// BoundingBox returns the normalized bounding box of the control points,
// which encloses the curve.
func (q QuadraticBezier) BoundingBox() Rect {
	xMin := min(q.Start.X, q.Control.X, q.End.X)
	xMax := max(q.Start.X, q.Control.X, q.End.X)
	yMin := min(q.Start.Y, q.Control.Y, q.End.Y)
	yMax := max(q.Start.Y, q.Control.Y, q.End.Y)
	return NewRect(xMin, yMin, xMax-xMin, yMax-yMin)
}

// Offset returns the curve translated by v.
func (q QuadraticBezier) Offset(v Vector) QuadraticBezier {
	return QuadraticBezier{
		Start:   q.Start.Add(v),
		Control: q.Control.Add(v),
		End:     q.End.Add(v),
	}
}

// cut is a curve parameter where a piece starts or ends, together with
// the rectangle edge the curve crosses there.
type cut struct {
	t    float32
	edge int
}

// AppendClipped implements [Curve]. The curve is split at all parameters
// where it crosses one of the lines bounding r; the pieces between
// consecutive splits lie either inside or outside r, and the inside
// pieces are appended to dst.
func (q QuadraticBezier) AppendClipped(dst []QuadraticBezier, r Rect) []QuadraticBezier {
	r = r.Normalize()
	xMin, xMax := r.Origin.X, r.Origin.X+r.Size.Width
	yMin, yMax := r.Origin.Y, r.Origin.Y+r.Size.Height

	if !q.BoundingBox().Intersects(r) {
		return dst
	}
	if q.Start.X == xMax && q.Control.X == xMax && q.End.X == xMax ||
		q.Start.Y == yMax && q.Control.Y == yMax && q.End.Y == yMax {
		return dst
	}

	var buf [10]cut
	cuts := append(buf[:0], cut{0, edgeNone}, cut{1, edgeNone})
	cuts = appendCrossings(cuts, q.Start.X, q.Control.X, q.End.X, xMin, edgeLeft)
	cuts = appendCrossings(cuts, q.Start.X, q.Control.X, q.End.X, xMax, edgeRight)
	cuts = appendCrossings(cuts, q.Start.Y, q.Control.Y, q.End.Y, yMin, edgeTop)
	cuts = appendCrossings(cuts, q.Start.Y, q.Control.Y, q.End.Y, yMax, edgeBottom)
	slices.SortFunc(cuts, func(a, b cut) int {
		switch {
		case a.t < b.t:
			return -1
		case a.t > b.t:
			return 1
		}
		return 0
	})

	for i := 1; i < len(cuts); i++ {
		a, b := cuts[i-1], cuts[i]
		if b.t <= a.t {
			continue
		}
		if !r.Contains(q.At((a.t + b.t) / 2)) {
			continue
		}
		piece := QuadraticBezier{
			Start:   q.blossom(a.t, a.t),
			Control: q.blossom(a.t, b.t),
			End:     q.blossom(b.t, b.t),
		}
		if a.t == 0 {
			piece.Start = q.Start
		} else {
			piece.Start = snapToEdge(piece.Start, a.edge, r)
		}
		if b.t == 1 {
			piece.End = q.End
		} else {
			piece.End = snapToEdge(piece.End, b.edge, r)
		}
		dst = append(dst, piece)
	}
	return dst
}

// appendCrossings appends the parameters in (0, 1) where the quadratic
// Bézier polynomial with control values c0, c1, c2 attains the value v.
func appendCrossings(cuts []cut, c0, c1, c2, v float32, edge int) []cut {
	a := float64(c0) - 2*float64(c1) + float64(c2)
	b := 2 * (float64(c1) - float64(c0))
	c := float64(c0) - float64(v)

	add := func(t float64) {
		if t > 0 && t < 1 {
			cuts = append(cuts, cut{float32(t), edge})
		}
	}

	if a == 0 {
		if b != 0 {
			add(-c / b)
		}
		return cuts
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return cuts
	}
	sq := math.Sqrt(disc)
	var h float64
	if b >= 0 {
		h = -0.5 * (b + sq)
	} else {
		h = -0.5 * (b - sq)
	}
	if h == 0 {
		// b == 0 and c == 0: a double root at t = 0
		return cuts
	}
	add(h / a)
	if disc > 0 {
		add(c / h)
	}
	return cuts
}
