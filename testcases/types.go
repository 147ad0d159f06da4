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

// Package testcases provides named reference scenes for the rasterizer.
//
// Each scene is a path on a small canvas which is either filled, using
// the nonzero winding rule, or stroked. Coordinates are device pixels,
// with y growing downwards, after the optional transformation CTM has
// been applied.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

type TestCase struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   *path.Data    // the geometry to render
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	CTM    matrix.Matrix // transformation matrix (zero-value means no transform)
	Stroke *Stroke       // if set, the path is stroked instead of filled
}

// Stroke describes the line style of a stroked test case.
// Lengths are in path coordinates.
type Stroke struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Transform returns the transformation from path coordinates to device
// pixels.
func (tc *TestCase) Transform() matrix.Matrix {
	if tc.CTM == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return tc.CTM
}

// Find returns the test case with the given name. Names can be given
// with or without the category prefix, for example "fill_star" or
// "star".
func Find(name string) (TestCase, bool) {
	for category, cases := range All {
		for _, tc := range cases {
			if tc.Name == name || category+"_"+tc.Name == name {
				return tc, true
			}
		}
	}
	return TestCase{}, false
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// polygon builds a closed polygon through the given points.
func polygon(p *path.Data, pts ...vec.Vec2) *path.Data {
	p = p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p.Close()
}
