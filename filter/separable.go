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

package filter

import (
	"fmt"
	"math"
	"slices"
)

// Polynomial is a polynomial in one variable, given by its coefficients
// in order of increasing degree.
type Polynomial []float64

// Eval evaluates p at x.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Integral returns the integral of p over [0, 1].
func (p Polynomial) Integral() float64 {
	var s float64
	for i, c := range p {
		s += c / float64(i+1)
	}
	return s
}

// Antiderivative returns the antiderivative of p which vanishes at 0.
func (p Polynomial) Antiderivative() Polynomial {
	res := make(Polynomial, len(p)+1)
	for i, c := range p {
		res[i+1] = c / float64(i+1)
	}
	return res
}

// NewSeparable returns the filter with kernel k(x, y) = a(x)*b(y), where
// a and b are piecewise polynomial. The pieces of a and b are unit
// intervals, given from left to right and from top to bottom; each
// polynomial is written in the local coordinate of its piece, running
// from 0 to 1. The support is centred on the pixel and the kernel is
// normalized to integrate to one.
//
// The line tiles are exact: for a segment with origin (ox, oy) and vector
// (vx, vy) the tile of piece (px, py) evaluates
//
//	∫₀¹ A(ox + t·vx) · b(oy + t·vy) · vy dt
//
// where A is the antiderivative of the x factor on piece px and b is the
// y factor on piece py.
func NewSeparable(name string, xPieces, yPieces []Polynomial) (*DynamicFilter, error) {
	nx, ny := len(xPieces), len(yPieces)
	if nx == 0 || ny == 0 {
		return nil, &ConfigError{Filter: name, Reason: "kernel has no pieces"}
	}

	var ix, iy float64
	for _, p := range xPieces {
		ix += p.Integral()
	}
	for _, p := range yPieces {
		iy += p.Integral()
	}
	total := ix * iy
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, &ConfigError{
			Filter: name,
			Reason: fmt.Sprintf("kernel integral %g cannot be normalized", total),
		}
	}

	tiles := make([][]Tile[LinePowers], ny)
	for py, b := range yPieces {
		tiles[py] = make([]Tile[LinePowers], nx)
		for px, a := range xPieces {
			tiles[py][px] = separableTile(a.Antiderivative(), b)
		}
	}

	d := &Description{
		Name: name,
		Support: [2][2]float32{
			{-float32(nx) / 2, float32(nx) / 2},
			{-float32(ny) / 2, float32(ny) / 2},
		},
		Normalization: float32(1 / total),
		LineTiles:     tiles,
	}
	return New(d)
}

// separableTile returns the tile of the kernel A'(x)·b(y), where alpha are
// the coefficients of A and beta those of b.
func separableTile(alpha, beta Polynomial) Tile[LinePowers] {
	terms := make(map[LinePowers]float64)
	for i, ai := range alpha {
		if ai == 0 {
			continue
		}
		for j, bj := range beta {
			if bj == 0 {
				continue
			}
			for k := 0; k <= i; k++ {
				for l := 0; l <= j; l++ {
					c := ai * bj * binomial(i, k) * binomial(j, l) / float64(k+l+1)
					key := LinePowers{uint8(i - k), uint8(j - l), uint8(k), uint8(l + 1)}
					terms[key] += c
				}
			}
		}
	}

	keys := make([]LinePowers, 0, len(terms))
	for key := range terms {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b LinePowers) int {
		return slices.Compare(a[:], b[:])
	})

	tile := Tile[LinePowers]{
		Coefficients: make([]float32, len(keys)),
		Powers:       keys,
	}
	for i, key := range keys {
		tile.Coefficients[i] = float32(terms[key])
		tile.MaxPow = max(tile.MaxPow, slices.Max(key[:]))
	}
	return tile
}

func binomial(n, k int) float64 {
	res := 1.0
	for i := 1; i <= k; i++ {
		res = res * float64(n-k+i) / float64(i)
	}
	return res
}
