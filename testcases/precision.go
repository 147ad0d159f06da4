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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// precisionCases probe the float32 pixel space of the rasterizer: subpixel
// positions, and outlines given far away from the canvas which the
// transformation moves back into view.
var precisionCases = []TestCase{
	{
		Name:   "subpixel_offset_00",
		Path:   offsetSquare(20, 20, 24, 0),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subpixel_offset_25",
		Path:   offsetSquare(20, 20, 24, 0.25),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subpixel_offset_50",
		Path:   offsetSquare(20, 20, 24, 0.5),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "subpixel_offset_75",
		Path:   offsetSquare(20, 20, 24, 0.75),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "large_coord_centered",
		Path:   offsetSquare(990, 990, 20, 0),
		Width:  64,
		Height: 64,
		CTM:    matrix.Identity.Translate(-968, -968),
	},
	{
		Name:   "small_shape_large_offset",
		Path:   offsetSquare(9999, 9999, 2, 0),
		Width:  64,
		Height: 64,
		CTM:    matrix.Identity.Translate(-9968, -9968),
	},
	{
		// the corners differ only in the low bits of a float64
		Name:   "float64_precision",
		Path:   float64PrecisionShape(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "sliver_quarter_pixel",
		Path:   rectangle(8, 31.25, 56, 31.5),
		Width:  64,
		Height: 64,
	},
}

// offsetSquare builds a square with top-left corner (x+offset, y+offset).
func offsetSquare(x, y, size, offset float64) *path.Data {
	x += offset
	y += offset
	return polygon(&path.Data{}, pt(x, y), pt(x+size, y), pt(x+size, y+size), pt(x, y+size))
}

func float64PrecisionShape() *path.Data {
	const (
		base   = 32.0
		delta1 = 0.123456789012345
		delta2 = 0.123456789012346
	)
	return rectangle(base-10+delta1, base-10+delta1, base+10+delta2, base+10+delta2)
}
