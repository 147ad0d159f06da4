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

// cellsCases exercise the cutting of outlines into pixel cells: shapes
// which leave the canvas, and edges running along or through the
// boundaries between cells.
var cellsCases = []TestCase{
	{
		Name:   "past_right_edge",
		Path:   rectangle(8, 8, 100, 24),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "wedge_past_right_edge",
		Path:   triangle(10, 4, 90, 16, 10, 28),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "past_left_edge",
		Path:   rectangle(-20, 6.5, 20.5, 25),
		Width:  64,
		Height: 32,
	},
	{
		// the second square lies entirely right of the canvas
		Name:   "outside_right",
		Path:   polygon(rectangle(4, 4, 20, 28), pt(70, 4), pt(90, 4), pt(90, 28), pt(70, 28)),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "comb",
		Path:   comb(4, 4, 60, 28, 4),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "diagonal_through_corners",
		Path:   diamond(32, 16, 12),
		Width:  64,
		Height: 32,
	},
	{
		// the apex touches the seam y = 8 at the cell corner (32, 8)
		Name:   "quadratic_on_seam",
		Path:   quadraticCurve(8, 24, 32, -8, 56, 24),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "quadratic_past_right_edge",
		Path:   quadraticCurve(16, 28, 130, 16, 16, 4),
		Width:  64,
		Height: 32,
	},
}

// comb builds vertical bars of the given width between x1 and x2, with
// gaps of the same width. All edges lie on cell boundaries if the
// arguments are integers.
func comb(x1, y1, x2, y2, width float64) *path.Data {
	p := &path.Data{}
	for x := x1; x+width <= x2; x += 2 * width {
		p = polygon(p, pt(x, y1), pt(x+width, y1), pt(x+width, y2), pt(x, y2))
	}
	return p
}
