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

// largeCases contains scenes covering many thousands of pixels, so that
// the cut and accumulation stages run with many rows in parallel.
var largeCases = []TestCase{
	{
		Name:   "large_rectangle",
		Path:   rectangle(50, 50, 462, 462),
		Width:  512,
		Height: 512,
	},

	// the inner rectangle has the same orientation: winding number two
	{
		Name:   "large_concentric",
		Path:   concentricRectangles(256, 256, 200, 100),
		Width:  512,
		Height: 512,
	},

	{
		Name:   "large_diamond",
		Path:   diamond(256, 256, 180),
		Width:  512,
		Height: 512,
	},

	{
		Name:   "large_grid",
		Path:   rectangleGrid(8, 8, 512, 512, 4),
		Width:  512,
		Height: 512,
	},

	// extends past the left and right edges of the image
	{
		Name:   "large_clipped",
		Path:   rectangle(-100, 100, 612, 400),
		Width:  512,
		Height: 512,
	},
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			p = polygon(p, pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2))
		}
	}
	return p
}

// concentricRectangles builds two nested squares around (cx, cy), both
// traversed in the same direction.
func concentricRectangles(cx, cy, outer, inner float64) *path.Data {
	p := &path.Data{}
	p = polygon(p,
		pt(cx-outer, cy-outer), pt(cx+outer, cy-outer),
		pt(cx+outer, cy+outer), pt(cx-outer, cy+outer))
	p = polygon(p,
		pt(cx-inner, cy-inner), pt(cx+inner, cy-inner),
		pt(cx+inner, cy+inner), pt(cx-inner, cy+inner))
	return p
}

// diamond builds a square rotated by 45 degrees with the given half
// diagonal.
func diamond(cx, cy, r float64) *path.Data {
	return polygon(&path.Data{}, pt(cx, cy-r), pt(cx+r, cy), pt(cx, cy+r), pt(cx-r, cy))
}
