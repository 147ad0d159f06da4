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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
)

func horizontalLine() *path.Data {
	return (&path.Data{}).MoveTo(v(2, 5)).LineTo(v(12, 5))
}

func closedSquare() *path.Data {
	return (&path.Data{}).
		MoveTo(v(5, 5)).
		LineTo(v(15, 5)).
		LineTo(v(15, 15)).
		LineTo(v(5, 15)).
		Close()
}

// strokeArea rasterizes the outline with the box filter and returns the
// total coverage.
func strokeArea(t *testing.T, lines []geometry.Line) float64 {
	t.Helper()
	buf, err := Rasterize(geometry.NewRect(0, 0, 20, 20), filter.NewBoxFilter(1, 1), lines)
	require.NoError(t, err)
	return sum(buf)
}

func TestStrokeCaps(t *testing.T) {
	cases := []struct {
		name string
		cap  graphics.LineCapStyle
		area float64
	}{
		{"butt", graphics.LineCapButt, 20},
		{"square", graphics.LineCapSquare, 24},
		{"round", graphics.LineCapRound, 20 + math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStroker(2)
			s.Cap = tc.cap
			s.Flatness = 0.001
			lines := s.Lines(horizontalLine())
			assert.InDelta(t, tc.area, shoelace(lines), 0.01)
			assert.InDelta(t, tc.area, strokeArea(t, lines), 0.01)
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	cases := []struct {
		name       string
		join       graphics.LineJoinStyle
		miterLimit float64
		area       float64
	}{
		{"miter", graphics.LineJoinMiter, 10, 80},
		{"miter_limited", graphics.LineJoinMiter, 1.2, 78},
		{"bevel", graphics.LineJoinBevel, 10, 78},
		{"round", graphics.LineJoinRound, 10, 76 + math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStroker(2)
			s.Join = tc.join
			s.MiterLimit = tc.miterLimit
			s.Flatness = 0.001
			lines := s.Lines(closedSquare())
			assert.InDelta(t, tc.area, shoelace(lines), 0.01)
			assert.InDelta(t, tc.area, strokeArea(t, lines), 0.01)
		})
	}
}

func TestStrokeOrientation(t *testing.T) {
	// the stroke has positive coverage, whether or not the CTM flips
	for _, m := range []matrix.Matrix{
		matrix.Identity,
		{1, 0, 0, -1, 0, 20},
		{-2, 0, 0, 1, 20, 0},
	} {
		s := NewStroker(2)
		s.CTM = m
		det := math.Abs(m[0]*m[3] - m[1]*m[2])
		assert.InDelta(t, 20*det, shoelace(s.Lines(horizontalLine())), 1e-3)
	}
}

func TestStrokeWidth(t *testing.T) {
	assert.Empty(t, NewStroker(0).Lines(horizontalLine()))
	assert.Empty(t, NewStroker(2).Lines(nil))
}

func TestStrokeDots(t *testing.T) {
	// a subpath of a single point is only visible with round caps
	p := (&path.Data{}).MoveTo(v(5, 5)).LineTo(v(5, 5))
	p2 := (&path.Data{}).MoveTo(v(10, 10)).Close()

	s := NewStroker(2)
	assert.Empty(t, s.Lines(p))

	s.Cap = graphics.LineCapRound
	s.Flatness = 0.001
	assert.InDelta(t, math.Pi, shoelace(s.Lines(p)), 0.01)
	assert.InDelta(t, math.Pi, shoelace(s.Lines(p2)), 0.01)

	subpaths, dots := s.flattenSubpaths((&path.Data{}).MoveTo(v(1, 1)).MoveTo(v(2, 2)).LineTo(v(3, 3)))
	assert.Len(t, subpaths, 1)
	assert.Empty(t, dots)
}

func TestStrokeDash(t *testing.T) {
	s := NewStroker(2)
	s.Dash = []float64{2, 2}
	lines := s.Lines(horizontalLine())
	assert.Len(t, lines, 12)
	assert.InDelta(t, 12, shoelace(lines), 1e-3)

	// dashes [0, 1], [3, 5] and [7, 9]
	s.DashPhase = 1
	assert.InDelta(t, 10, shoelace(s.Lines(horizontalLine())), 1e-3)

	// an odd pattern is repeated with dashes and gaps swapped
	s.Dash = []float64{3}
	s.DashPhase = 0
	assert.InDelta(t, 12, shoelace(s.Lines(horizontalLine())), 1e-3)

	// unusable patterns draw solid lines
	for _, dash := range [][]float64{{0, 0}, {2, -1}} {
		s.Dash = dash
		assert.InDelta(t, 20, shoelace(s.Lines(horizontalLine())), 1e-3)
	}
}

func TestStrokeDashClosed(t *testing.T) {
	s := NewStroker(2)
	s.Dash = []float64{5, 5}
	s.DashPhase = 2

	subpaths, _ := s.flattenSubpaths(closedSquare())
	require.Len(t, subpaths, 1)
	require.True(t, subpaths[0].closed)

	// The dash [38, 43] runs over the starting point and is merged with
	// the first dash.
	dashes := s.applyDash(subpaths)
	require.Len(t, dashes, 4)
	for _, d := range dashes {
		assert.False(t, d.closed)
		assert.Len(t, d.spans, 2)
	}

	// every dash has length 5 and crosses one corner
	assert.InDelta(t, 40, strokeArea(t, s.Lines(closedSquare())), 1e-3)
}

func TestStrokeZeroDash(t *testing.T) {
	// Dashes of length zero become dots with round or square caps. Here
	// they sit at x = 2 and x = 7.
	s := NewStroker(2)
	s.Dash = []float64{0, 5}
	s.Cap = graphics.LineCapSquare
	assert.InDelta(t, 2*4, shoelace(s.Lines(horizontalLine())), 1e-3)

	s.Cap = graphics.LineCapButt
	assert.Empty(t, s.Lines(horizontalLine()))
}

func TestRenderStroke(t *testing.T) {
	s := NewStroker(2)
	img, err := Render(nil, s, horizontalLine(), 16, 10, filter.NewBoxFilter(1, 1))
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.AlphaAt(5, 4).A)
	assert.Equal(t, uint8(255), img.AlphaAt(5, 5).A)
	assert.Equal(t, uint8(0), img.AlphaAt(5, 6).A)
	assert.Equal(t, uint8(0), img.AlphaAt(1, 4).A)
}
