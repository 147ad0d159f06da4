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

// Package filter describes antialiasing kernels and computes the exact
// contribution of a curve segment to a pixel under such a kernel.
//
// The support of a kernel is split into unit pieces. The rasterizer cuts
// all geometry into unit cells, and for every cell and every piece it asks
// the filter for two numbers: the value the fragment contributes to the
// pixel whose kernel piece covers the cell, and the accumulator which the
// fragment contributes to all pixels further to the left in the same row.
package filter

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrUnsupportedCurve is returned by Eval if a filter has no data for the
// type of curve it is asked to evaluate.
var ErrUnsupportedCurve = errors.New("filter: curve type not supported")

// ConfigError reports an invalid filter description.
type ConfigError struct {
	Filter string // name of the filter, if known
	Reason string
	Err    error // underlying error, or nil
}

func (e *ConfigError) Error() string {
	msg := "filter"
	if e.Filter != "" {
		msg += " " + fmt.Sprintf("%q", e.Filter)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Range is a closed interval of kernel coordinates.
type Range struct {
	Min float32
	Max float32
}

// Len returns the length of the interval.
func (r Range) Len() float32 {
	return r.Max - r.Min
}

// Support is the rectangle outside of which a kernel vanishes, relative to
// the pixel centre.
type Support struct {
	X Range
	Y Range
}

// Pieces returns the number of unit pieces the support is divided into
// along each axis. The extents must be positive whole numbers.
func (s Support) Pieces() (nx, ny int, err error) {
	nx, err = pieceCount(s.X)
	if err != nil {
		return 0, 0, err
	}
	ny, err = pieceCount(s.Y)
	if err != nil {
		return 0, 0, err
	}
	return nx, ny, nil
}

func pieceCount(r Range) (int, error) {
	l := r.Len()
	if math32.IsNaN(l) || math32.IsInf(l, 0) || l <= 0 || l != math32.Round(l) {
		return 0, &ConfigError{
			Reason: fmt.Sprintf("support [%g, %g] is not a positive whole number of pixels", r.Min, r.Max),
		}
	}
	return int(l), nil
}

// Piece identifies one unit piece of the support. Piece (0, 0) is the
// top-left one.
type Piece struct {
	X int
	Y int
}

// Filter is an antialiasing kernel.
type Filter interface {
	Support() Support
}

// Evaluator is a filter which can integrate curves of type C.
//
// The curve passed to Eval is given in the local coordinates of a unit
// cell, so that both coordinates are in [0, 1]. The pixel value is the
// kernel piece integrated over the part of the cell which lies to the left
// of the curve, with the sign given by the curve direction. The
// accumulator is the same integral taken over the full width of the
// piece. The rasterizer adds it to every pixel in the row to the left of
// the one which receives the pixel value.
type Evaluator[C any] interface {
	Filter
	Eval(curve C, piece Piece) (pixel, acc float32, err error)
}

func checkPiece(nx, ny int, piece Piece) error {
	if piece.X < 0 || piece.X >= nx || piece.Y < 0 || piece.Y >= ny {
		return fmt.Errorf("filter: piece %v outside support of %dx%d pieces", piece, nx, ny)
	}
	return nil
}
