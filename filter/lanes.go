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

// Lanes is a group of four float32 values which are processed together.
// Tile evaluation works on batches of four monomials at a time.
type Lanes [4]float32

// Add returns the lane-wise sum of l and m.
func (l Lanes) Add(m Lanes) Lanes {
	return Lanes{l[0] + m[0], l[1] + m[1], l[2] + m[2], l[3] + m[3]}
}

// Mul returns the lane-wise product of l and m.
func (l Lanes) Mul(m Lanes) Lanes {
	return Lanes{l[0] * m[0], l[1] * m[1], l[2] * m[2], l[3] * m[3]}
}

// Sum adds up the four lanes.
func (l Lanes) Sum() float32 {
	return (l[0] + l[1]) + (l[2] + l[3])
}
