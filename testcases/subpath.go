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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

var subpathCases = []TestCase{
	{
		Name:   "two_triangles",
		Path:   twoTriangles(16, 32, 48, 32, 12),
		Width:  64,
		Height: 64,
	},
	{
		// the overlap has winding number two
		Name:   "overlapping_rect",
		Path:   overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "ring_shape",
		Path:   ringShape(32, 32, 25, 12),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "multiple_rings",
		Path:   multipleRings(64, 64),
		Width:  128,
		Height: 128,
	},
	{
		Name:   "many_small_shapes",
		Path:   manySmallShapes(8, 8),
		Width:  128,
		Height: 128,
	},
	{
		// an open subpath is closed implicitly when filling
		Name:   "open_subpath",
		Path:   (&path.Data{}).MoveTo(pt(8, 8)).LineTo(pt(56, 8)).LineTo(pt(32, 56)),
		Width:  64,
		Height: 64,
	},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	p := &path.Data{}
	p = polygon(p, pt(cx1, cy1-size), pt(cx1+size, cy1+size), pt(cx1-size, cy1+size))
	p = polygon(p, pt(cx2, cy2-size), pt(cx2+size, cy2+size), pt(cx2-size, cy2+size))
	return p
}

// overlappingRectangles builds two overlapping rectangles with the same
// orientation.
func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) *path.Data {
	p := &path.Data{}
	p = polygon(p, pt(x1a, y1a), pt(x2a, y1a), pt(x2a, y2a), pt(x1a, y2a))
	p = polygon(p, pt(x1b, y1b), pt(x2b, y1b), pt(x2b, y2b), pt(x1b, y2b))
	return p
}

// ringShape builds a square ring. The inner square has the opposite
// orientation, so that it forms a hole under the nonzero rule.
func ringShape(cx, cy, outerSize, innerSize float64) *path.Data {
	p := &path.Data{}
	return ring(p, cx, cy, outerSize, innerSize)
}

func ring(p *path.Data, cx, cy, outer, inner float64) *path.Data {
	p = polygon(p,
		pt(cx-outer, cy-outer), pt(cx+outer, cy-outer),
		pt(cx+outer, cy+outer), pt(cx-outer, cy+outer))
	p = polygon(p,
		pt(cx-inner, cy-inner), pt(cx-inner, cy+inner),
		pt(cx+inner, cy+inner), pt(cx+inner, cy-inner))
	return p
}

// multipleRings builds three square rings around (cx, cy).
func multipleRings(cx, cy float64) *path.Data {
	p := &path.Data{}
	p = ring(p, cx-30, cy-30, 20, 10)
	p = ring(p, cx+30, cy-30, 20, 10)
	p = ring(p, cx, cy+30, 20, 10)
	return p
}

// manySmallShapes builds a grid of small triangles (stress test).
func manySmallShapes(rows, cols int) *path.Data {
	const size = 5.0
	const spacing = 14.0

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			cx := 10.0 + float64(col)*spacing
			cy := 10.0 + float64(row)*spacing
			p = polygon(p, pt(cx, cy-size), pt(cx+size, cy+size), pt(cx-size, cy+size))
		}
	}
	return p
}
