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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/convolve/filter"
)

func TestToAlpha(t *testing.T) {
	buf := []float32{
		-1, 0.5, 2,
		0, 0.25, -0.3,
	}
	img := ToAlpha(buf, 3, 2)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, []uint8{255, 128, 255, 0, 64, 76}, img.Pix)
}

func TestRender(t *testing.T) {
	// a bar covering the two middle columns of a 4x4 image
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 0}).
		LineTo(vec.Vec2{X: 3, Y: 0}).
		LineTo(vec.Vec2{X: 3, Y: 4}).
		LineTo(vec.Vec2{X: 1, Y: 4}).
		Close()

	img, err := Render(nil, nil, p, 4, 4, filter.NewBoxFilter(1, 1))
	require.NoError(t, err)
	for y := range 4 {
		row := img.Pix[y*img.Stride : y*img.Stride+4]
		assert.Equal(t, []uint8{0, 255, 255, 0}, row, "row %d", y)
	}

	// the same bar, drawn in the opposite direction and scaled down
	fl := NewFlattener()
	fl.CTM = [6]float64{0.5, 0, 0, 0.5, 0, 0}
	q := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 0}).
		LineTo(vec.Vec2{X: 2, Y: 8}).
		LineTo(vec.Vec2{X: 6, Y: 8}).
		LineTo(vec.Vec2{X: 6, Y: 0}).
		Close()
	img2, err := Render(&Config{Workers: 2}, fl, q, 4, 4, filter.NewBoxFilter(1, 1))
	require.NoError(t, err)
	assert.Equal(t, img.Pix, img2.Pix)
}

func TestRenderUnsupported(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 3, Y: 1}).
		LineTo(vec.Vec2{X: 2, Y: 3}).
		Close()
	d := &filter.Description{
		Name:    "quadratic-only",
		Support: [2][2]float32{{-0.5, 0.5}, {-0.5, 0.5}},
		QuadraticTiles: [][]filter.Tile[filter.QuadraticPowers]{{{
			Coefficients: []float32{1},
			Powers:       []filter.QuadraticPowers{{0, 0, 0, 1, 0, 0}},
			MaxPow:       1,
		}}},
		Normalization: 1,
	}
	f, err := filter.New(d)
	require.NoError(t, err)

	img, err := Render(nil, nil, p, 4, 4, f)
	assert.ErrorIs(t, err, filter.ErrUnsupportedCurve)
	assert.Nil(t, img)
}
