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

var complexCases = []TestCase{
	{
		Name:   "mixed_lines_curves",
		Path:   mixedLinesCurves(),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "glyph_like",
		Path:   glyphLikeShape(),
		Width:  64,
		Height: 64,
	},
	{
		// the two lobes are traversed in opposite directions
		Name:   "figure_eight",
		Path:   figureEight(32, 32, 20),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "spiral_closed",
		Path:   spiralPath(32, 32, 5, 25, 3),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "zigzag_band",
		Path:   zigzagBand(10, 32, 54, 12, 4),
		Width:  64,
		Height: 64,
	},
}

// mixedLinesCurves builds a path combining line segments and Bezier curves.
func mixedLinesCurves() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 50)).
		LineTo(pt(20, 30)).
		QuadTo(pt(32, 10), pt(44, 30)).
		LineTo(pt(54, 50)).
		CubeTo(pt(48, 60), pt(16, 60), pt(10, 50)).
		Close()
}

// glyphLikeShape builds a complex shape similar to a typographic glyph.
// This resembles a simplified lowercase 'a'.
func glyphLikeShape() *path.Data {
	cx, cy := 32.0, 38.0
	r := 18.0
	k := r * kappa
	ir := 8.0
	ik := ir * kappa

	return (&path.Data{}).
		// outer bowl
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		// stem
		LineTo(pt(cx+r, 10)).
		LineTo(pt(cx+r-6, 10)).
		LineTo(pt(cx+r-6, cy)).
		// inner counter, in reverse direction
		LineTo(pt(cx+ir, cy)).
		CubeTo(pt(cx+ir, cy+ik), pt(cx+ik, cy+ir), pt(cx, cy+ir)).
		CubeTo(pt(cx-ik, cy+ir), pt(cx-ir, cy+ik), pt(cx-ir, cy)).
		CubeTo(pt(cx-ir, cy-ik), pt(cx-ik, cy-ir), pt(cx, cy-ir)).
		CubeTo(pt(cx+ik, cy-ir), pt(cx+ir, cy-ik), pt(cx+ir, cy)).
		Close()
}

// figureEight builds a closed figure-eight from two circular loops.
func figureEight(cx, cy, size float64) *path.Data {
	r := size / 2
	k := r * kappa
	topCy := cy - r/2
	botCy := cy + r/2

	return (&path.Data{}).
		MoveTo(pt(cx, cy)).
		// upper loop
		CubeTo(pt(cx+k, cy-r/4), pt(cx+r, topCy-k/2), pt(cx+r, topCy)).
		CubeTo(pt(cx+r, topCy-k), pt(cx+k, topCy-r), pt(cx, topCy-r)).
		CubeTo(pt(cx-k, topCy-r), pt(cx-r, topCy-k), pt(cx-r, topCy)).
		CubeTo(pt(cx-r, topCy+k/2), pt(cx-k, cy-r/4), pt(cx, cy)).
		// lower loop
		CubeTo(pt(cx-k, cy+r/4), pt(cx-r, botCy-k/2), pt(cx-r, botCy)).
		CubeTo(pt(cx-r, botCy+k), pt(cx-k, botCy+r), pt(cx, botCy+r)).
		CubeTo(pt(cx+k, botCy+r), pt(cx+r, botCy+k), pt(cx+r, botCy)).
		CubeTo(pt(cx+r, botCy-k/2), pt(cx+k, cy+r/4), pt(cx, cy)).
		Close()
}

// spiralPath builds an Archimedean spiral, closed by a straight line back
// to its start. The closing line crosses the turns of the spiral.
func spiralPath(cx, cy, rMin, rMax float64, turns float64) *path.Data {
	steps := max(int(turns*32), 8) // 32 segments per turn
	totalAngle := turns * 2 * math.Pi
	rGrowth := (rMax - rMin) / totalAngle

	p := (&path.Data{}).MoveTo(pt(cx+rMin, cy))
	for i := 1; i <= steps; i++ {
		angle := float64(i) / float64(steps) * totalAngle
		r := rMin + rGrowth*angle
		p = p.LineTo(pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return p.Close()
}

// zigzagBand builds a zigzag band of the given thickness.
func zigzagBand(x1, cy, x2, amplitude, thickness float64) *path.Data {
	const segments = 5
	segWidth := (x2 - x1) / segments

	y := func(i int) float64 {
		switch {
		case i == 0 || i == segments:
			return cy
		case i%2 == 1:
			return cy - amplitude
		default:
			return cy + amplitude
		}
	}

	p := (&path.Data{}).MoveTo(pt(x1, y(0)))
	for i := 1; i <= segments; i++ {
		p = p.LineTo(pt(x1+float64(i)*segWidth, y(i)))
	}
	for i := segments; i >= 0; i-- {
		p = p.LineTo(pt(x1+float64(i)*segWidth, y(i)+thickness))
	}
	return p.Close()
}
