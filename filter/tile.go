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

// LinePowers gives the exponents of the line channels
// (origin x, origin y, vector x, vector y) in one monomial.
type LinePowers = [4]uint8

// QuadraticPowers gives the exponents of the quadratic Bézier channels
// (x0, y0, x1, y1, x2, y2) in one monomial.
type QuadraticPowers = [6]uint8

// Tile is the polynomial a filter uses for one piece of its support.
// The polynomial is the sum of Coefficients[i] times the monomial with
// exponents Powers[i].
type Tile[E any] struct {
	Coefficients []float32 `json:"coefficients" toml:"coefficients"`
	Powers       []E       `json:"powers" toml:"powers"`
	MaxPow       uint8     `json:"max_pow" toml:"max_pow"`
}

// Channels is implemented by the vectors of channel values a tile is
// evaluated on. T is the implementing type, E the exponent vector of a
// monomial and G the per-channel gather of four monomials.
type Channels[T, E any, G Folder] interface {
	// Identity returns the vector with all channels equal to one.
	Identity() T

	// Mul multiplies channel-wise.
	Mul(T) T

	// Lookup4 gathers table[exps[lane][ch]][ch] for four monomials.
	Lookup4(table []T, exps *[4]E) G
}

// Folder is the result of [Channels.Lookup4].
type Folder interface {
	// Fold multiplies the coefficients of four monomials by the channel
	// powers, giving the values of the four monomials.
	Fold(coeffs Lanes) Lanes
}

// PowersLookupTable holds all powers 0, ..., maxPow of a channel vector.
// Row i is the channel-wise i-th power.
type PowersLookupTable[T any] []T

// NewPowersLookupTable computes the powers of values up to maxPow.
func NewPowersLookupTable[T Channels[T, E, G], E any, G Folder](values T, maxPow uint8) PowersLookupTable[T] {
	table := make(PowersLookupTable[T], int(maxPow)+1)
	table[0] = values.Identity()
	for i := 1; i < len(table); i++ {
		table[i] = table[i-1].Mul(values)
	}
	return table
}

// evalTile evaluates the polynomial of tile for the channel values whose
// powers are in table.
func evalTile[T Channels[T, E, G], E any, G Folder](tile *Tile[E], table PowersLookupTable[T]) float32 {
	var zero T
	var sum Lanes
	var exps [4]E
	for i := 0; i < len(tile.Powers); i += 4 {
		n := copy(exps[:], tile.Powers[i:])
		clear(exps[n:])
		var coeffs Lanes
		copy(coeffs[:], tile.Coefficients[i:i+n])

		g := zero.Lookup4(table, &exps)
		sum = sum.Add(g.Fold(coeffs))
	}
	return sum.Sum()
}

// lineChannels holds (origin x, origin y, vector x, vector y).
type lineChannels [4]float32

func (lineChannels) Identity() lineChannels {
	return lineChannels{1, 1, 1, 1}
}

func (c lineChannels) Mul(d lineChannels) lineChannels {
	return lineChannels{c[0] * d[0], c[1] * d[1], c[2] * d[2], c[3] * d[3]}
}

func (lineChannels) Lookup4(table []lineChannels, exps *[4]LinePowers) lineGather {
	var g lineGather
	for lane, e := range exps {
		for ch := range g {
			g[ch][lane] = table[e[ch]][ch]
		}
	}
	return g
}

// lineGather holds four powers for each of the line channels.
type lineGather [4]Lanes

func (g lineGather) Fold(coeffs Lanes) Lanes {
	for _, ch := range g {
		coeffs = coeffs.Mul(ch)
	}
	return coeffs
}

// quadChannels holds the coordinates (x0, y0, x1, y1, x2, y2) of the
// control points of a quadratic Bézier curve.
type quadChannels [6]float32

func (quadChannels) Identity() quadChannels {
	return quadChannels{1, 1, 1, 1, 1, 1}
}

func (c quadChannels) Mul(d quadChannels) quadChannels {
	var res quadChannels
	for i := range c {
		res[i] = c[i] * d[i]
	}
	return res
}

func (quadChannels) Lookup4(table []quadChannels, exps *[4]QuadraticPowers) quadGather {
	var g quadGather
	for lane, e := range exps {
		for ch := range g {
			g[ch][lane] = table[e[ch]][ch]
		}
	}
	return g
}

type quadGather [6]Lanes

func (g quadGather) Fold(coeffs Lanes) Lanes {
	for _, ch := range g {
		coeffs = coeffs.Mul(ch)
	}
	return coeffs
}

func evalLineTile(tile *Tile[LinePowers], values lineChannels) float32 {
	table := NewPowersLookupTable[lineChannels, LinePowers, lineGather](values, tile.MaxPow)
	return evalTile[lineChannels, LinePowers, lineGather](tile, table)
}

func evalQuadTile(tile *Tile[QuadraticPowers], values quadChannels) float32 {
	table := NewPowersLookupTable[quadChannels, QuadraticPowers, quadGather](values, tile.MaxPow)
	return evalTile[quadChannels, QuadraticPowers, quadGather](tile, table)
}
