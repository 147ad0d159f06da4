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

package convolve

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/convolve/geometry"
)

// defaultFlatness is the default curve flattening tolerance in device
// pixels.
const defaultFlatness = 0.25

// Flattener converts paths into the segments consumed by [Rasterize].
// Every subpath is closed, since only closed outlines enclose an area.
type Flattener struct {
	// CTM maps path coordinates to device pixels.
	// Must be a non-singular matrix.
	CTM matrix.Matrix

	// Flatness is the maximal distance in device pixels between a curve
	// and the segments replacing it. Must be > 0.
	Flatness float64
}

// NewFlattener returns a Flattener with the identity transformation and
// the default flatness.
func NewFlattener() *Flattener {
	return &Flattener{
		CTM:      matrix.Identity,
		Flatness: defaultFlatness,
	}
}

// Lines flattens p into straight segments in device space.
// Zero-length segments are omitted.
func (f *Flattener) Lines(p *path.Data) []geometry.Line {
	var lines []geometry.Line
	emit := func(a, b vec.Vec2) {
		l := geometry.NewLine(f.device(a), f.device(b))
		if l.Start != l.End {
			lines = append(lines, l)
		}
	}
	f.walk(p, emit, func(p0, p1, p2 vec.Vec2) {
		f.flattenQuadratic(p0, p1, p2, emit)
	}, func(p0, p1, p2, p3 vec.Vec2) {
		f.flattenCubic(p0, p1, p2, p3, emit)
	})
	return lines
}

// Quadratics converts p into quadratic Bézier segments in device space.
// Straight segments become quadratics with the control point at their
// midpoint, quadratic segments are kept, and cubic segments are
// approximated within Flatness.
func (f *Flattener) Quadratics(p *path.Data) []geometry.QuadraticBezier {
	var curves []geometry.QuadraticBezier
	emit := func(p0, p1, p2 vec.Vec2) {
		q := geometry.NewQuadraticBezier(f.device(p0), f.device(p1), f.device(p2))
		if q.Start != q.End || q.Start != q.Control {
			curves = append(curves, q)
		}
	}
	f.walk(p, func(a, b vec.Vec2) {
		emit(a, a.Add(b).Mul(0.5), b)
	}, emit, func(p0, p1, p2, p3 vec.Vec2) {
		f.cubicToQuadratics(p0, p1, p2, p3, emit)
	})
	return curves
}

// walk visits the segments of p in path coordinates, adding a closing
// segment at the end of every subpath which does not end at its start.
func (f *Flattener) walk(p *path.Data,
	line func(p0, p1 vec.Vec2),
	quad func(p0, p1, p2 vec.Vec2),
	cube func(p0, p1, p2, p3 vec.Vec2)) {
	if p == nil {
		return
	}

	var current, subpath vec.Vec2
	open := false
	closeSubpath := func() {
		if open && current != subpath {
			line(current, subpath)
		}
		current = subpath
		open = false
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			closeSubpath()
			current = p.Coords[coordIdx]
			subpath = current
			coordIdx++

		case path.CmdLineTo:
			line(current, p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			open = true
			coordIdx++

		case path.CmdQuadTo:
			quad(current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			open = true
			coordIdx += 2

		case path.CmdCubeTo:
			cube(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			open = true
			coordIdx += 3

		case path.CmdClose:
			closeSubpath()
		}
	}
	closeSubpath()
}

func (f *Flattener) device(v vec.Vec2) geometry.Point {
	m := f.CTM
	return geometry.PointFromVec(vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	})
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
// Used for tolerance checks where translation is irrelevant.
func (f *Flattener) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: f.CTM[0]*v.X + f.CTM[2]*v.Y,
		Y: f.CTM[1]*v.X + f.CTM[3]*v.Y,
	}
}

func (f *Flattener) flatness() float64 {
	if f.Flatness > 0 {
		return f.Flatness
	}
	return defaultFlatness
}

// flattenQuadratic splits a quadratic Bézier into segments.
// The deviation of the curve from its chord is |P0 - 2*P1 + P2|/4.
func (f *Flattener) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := f.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))

	n := 1
	if dev := e.Length(); dev > f.flatness() {
		n = int(math.Ceil(math.Sqrt(dev / f.flatness())))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		if i == n {
			pt = p2
		}
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic splits a cubic Bézier into segments, with the segment
// count from Wang's formula.
func (f *Flattener) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := f.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := f.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		n = max(int(math.Ceil(math.Sqrt(3*m/(4*f.flatness())))), 1)
	}

	prev := p0
	for i := 1; i <= n; i++ {
		pt := cubicAt(p0, p1, p2, p3, float64(i)/float64(n))
		if i == n {
			pt = p3
		}
		emit(prev, pt)
		prev = pt
	}
}

// cubicToQuadratics splits a cubic Bézier into n pieces and replaces each
// piece by the quadratic which agrees with it at both end points and in
// the midpoint tangent direction. For a piece of a cubic with third
// difference D the error is at most sqrt(3)/36*|D|/n³.
func (f *Flattener) cubicToQuadratics(p0, p1, p2, p3 vec.Vec2, emit func(p0, p1, p2 vec.Vec2)) {
	d := f.transformLinear(p3.Sub(p2.Mul(3)).Add(p1.Mul(3)).Sub(p0))

	n := 1
	if bound := math.Sqrt(3) / 36 * d.Length(); bound > f.flatness() {
		n = int(math.Ceil(math.Cbrt(bound / f.flatness())))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t0 := float64(i-1) / float64(n)
		t1 := float64(i) / float64(n)
		q0, q1, q2, q3 := cubicPiece(p0, p1, p2, p3, t0, t1)
		if i == n {
			q3 = p3
		}
		ctrl := q1.Add(q2).Mul(3).Sub(q0).Sub(q3).Mul(0.25)
		emit(prev, ctrl, q3)
		prev = q3
	}
}

func cubicAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	omt := 1 - t
	omt2 := omt * omt
	t2 := t * t
	return p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
}

// cubicPiece returns the control points of the part of a cubic Bézier
// between t0 and t1, using the polar form of the curve.
func cubicPiece(p0, p1, p2, p3 vec.Vec2, t0, t1 float64) (q0, q1, q2, q3 vec.Vec2) {
	blossom := func(a, b, c float64) vec.Vec2 {
		// de Casteljau with a different parameter at each level
		l0 := lerp(p0, p1, a)
		l1 := lerp(p1, p2, a)
		l2 := lerp(p2, p3, a)
		m0 := lerp(l0, l1, b)
		m1 := lerp(l1, l2, b)
		return lerp(m0, m1, c)
	}
	return blossom(t0, t0, t0), blossom(t0, t0, t1), blossom(t0, t1, t1), blossom(t1, t1, t1)
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
