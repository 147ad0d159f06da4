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

package filter

import (
	"seehuhn.de/go/convolve/geometry"
)

// BoxFilter is the constant kernel on a width x height rectangle centred
// on the pixel. With width and height 1 this gives exact area coverage.
type BoxFilter struct {
	width  float32
	height float32
	area   float32
}

// NewBoxFilter returns a box filter of the given size. For use with the
// rasterizer, width and height must be whole numbers.
func NewBoxFilter(width, height float32) BoxFilter {
	return BoxFilter{
		width:  width,
		height: height,
		area:   width * height,
	}
}

// Support implements [Filter].
func (f BoxFilter) Support() Support {
	return Support{
		X: Range{Min: -f.width / 2, Max: f.width / 2},
		Y: Range{Min: -f.height / 2, Max: f.height / 2},
	}
}

// Eval implements [Evaluator] for straight lines.
// The kernel is constant, so the result does not depend on the piece.
func (f BoxFilter) Eval(l geometry.Line, _ Piece) (pixel, acc float32, err error) {
	if l.Start == l.End {
		return 0, 0, nil
	}
	dy := l.End.Y - l.Start.Y
	acc = dy / f.area
	pixel = 0.5 * dy * (l.End.X + l.Start.X) / f.area
	return pixel, acc, nil
}

// Quadratic returns the evaluator of f for quadratic Bézier curves.
func (f BoxFilter) Quadratic() Evaluator[geometry.QuadraticBezier] {
	return boxQuadratic{f}
}

type boxQuadratic struct {
	BoxFilter
}

// Eval integrates x dy along the curve in closed form.
func (f boxQuadratic) Eval(q geometry.QuadraticBezier, _ Piece) (pixel, acc float32, err error) {
	if q.Start == q.End && q.Control == q.Start {
		return 0, 0, nil
	}
	d0 := q.Control.Y - q.Start.Y
	d1 := q.End.Y - q.Control.Y
	x0, x1, x2 := q.Start.X, q.Control.X, q.End.X

	area := x0*(d0/2+d1/6) + x1*(d0+d1)/3 + x2*(d0/6+d1/2)
	pixel = area / f.area
	acc = (q.End.Y - q.Start.Y) / f.area
	return pixel, acc, nil
}
