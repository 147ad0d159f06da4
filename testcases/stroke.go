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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Path:   openPath(pt(10, 32), pt(54, 32)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 8, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "line_round",
		Path:   openPath(pt(10, 32), pt(54, 32)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 8, Cap: graphics.LineCapRound, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "line_square",
		Path:   openPath(pt(10, 32), pt(54, 32)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 8, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "line_diagonal_thin",
		Path:   openPath(pt(4, 60), pt(60, 7.5)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 0.5, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "corner_miter",
		Path:   openPath(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "corner_round",
		Path:   openPath(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "corner_bevel",
		Path:   openPath(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel, MiterLimit: 10},
	},
	{
		// the miter at this sharp corner exceeds the limit and is beveled
		Name:   "corner_miter_limit",
		Path:   openPath(pt(8, 56), pt(32, 8), pt(40, 56)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 2},
	},
	{
		Name:   "cusp",
		Path:   openPath(pt(10, 32), pt(50, 32), pt(20, 32.01)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "closed_square",
		Path:   rectangle(16, 16, 48, 48),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name:   "circle_outline",
		Path:   circle(32, 32, 24),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 3, Cap: graphics.LineCapButt, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "curve_open",
		Path:   (&path.Data{}).MoveTo(pt(8, 52)).CubeTo(pt(20, -10), pt(44, 74), pt(56, 12)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 4, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "dot_round",
		Path:   openPath(pt(32, 32), pt(32, 32)),
		Width:  64,
		Height: 64,
		Stroke: &Stroke{Width: 20, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name:   "zigzag_ctm",
		Path:   openPath(pt(2, 20), pt(8, 4), pt(14, 20), pt(20, 4), pt(26, 20)),
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{2, 0.25, 0, 2, 4, 6},
		Stroke: &Stroke{Width: 1.5, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter, MiterLimit: 4},
	},
}

var dashCases = []TestCase{
	{
		Name:   "single_element",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 10),
	},
	{
		Name:   "three_element",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 5, 3, 8),
	},
	{
		Name:   "many_elements",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 2, 2, 6, 2, 2, 10),
	},
	{
		Name:   "phase",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 7.5, 10, 5),
	},
	{
		Name:   "phase_negative",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, -22, 10, 5),
	},
	{
		Name:   "zero_round",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(6, graphics.LineCapRound, 0, 0, 8),
	},
	{
		Name:   "zero_square",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(6, graphics.LineCapSquare, 0, 0, 8),
	},
	{
		Name:   "round_caps",
		Path:   openPath(pt(4, 32), pt(60, 32)),
		Width:  64,
		Height: 64,
		Stroke: dashed(6, graphics.LineCapRound, 0, 8, 8),
	},
	{
		Name:   "corner_in_dash",
		Path:   openPath(pt(8, 52), pt(32, 12), pt(56, 52)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 40, 5),
	},
	{
		Name:   "corner_in_gap",
		Path:   openPath(pt(8, 52), pt(32, 12), pt(56, 52)),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 5, 40),
	},
	{
		Name:   "closed_square",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapButt, 0, 10, 5),
	},
	{
		// the dash over the starting corner is joined, not capped
		Name:   "closed_join",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Stroke: dashed(4, graphics.LineCapSquare, 6, 12, 8),
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Stroke: dashed(3, graphics.LineCapRound, 0, 2*math.Pi*22/24, 2*math.Pi*22/24),
	},
}

// openPath builds a polyline which is not closed.
func openPath(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p = p.LineTo(q)
	}
	return p
}

func dashed(width float64, lineCap graphics.LineCapStyle, phase float64, dash ...float64) *Stroke {
	return &Stroke{
		Width:      width,
		Cap:        lineCap,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       dash,
		DashPhase:  phase,
	}
}
