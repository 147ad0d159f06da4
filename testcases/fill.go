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
	"math"

	"seehuhn.de/go/geom/path"
)

var fillCases = []TestCase{
	{
		Name:   "triangle",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "triangle_reversed",
		Path:   triangle(54, 50, 32, 10, 10, 50),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "star",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 54, 54),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "rectangle_pixel_aligned",
		Path:   rectangle(16, 8, 48, 24),
		Width:  64,
		Height: 32,
	},
	{
		Name:   "thin_sliver",
		Path:   triangle(4, 30, 60, 31, 60, 30.25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "empty",
		Path:   &path.Data{},
		Width:  16,
		Height: 16,
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return polygon(&path.Data{}, pt(x1, y1), pt(x2, y2), pt(x3, y3))
}

// fivePointStar builds a five-pointed star (self-intersecting).
// The central pentagon has winding number two.
func fivePointStar(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	for k, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		v := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if k == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return polygon(&path.Data{}, pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2))
}
