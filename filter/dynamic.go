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
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"seehuhn.de/go/convolve/geometry"
)

// Description is the serialized form of a [DynamicFilter].
//
// Support holds the x and y extents of the kernel as [min, max] pairs.
// The tile grids are indexed as [py][px]. QuadraticTiles may be omitted,
// in which case the filter only supports straight lines.
type Description struct {
	Name           string                    `json:"name" toml:"name"`
	Support        [2][2]float32             `json:"support" toml:"support"`
	Normalization  float32                   `json:"normalization" toml:"normalization"`
	LineTiles      [][]Tile[LinePowers]      `json:"line_tiles" toml:"line_tiles"`
	QuadraticTiles [][]Tile[QuadraticPowers] `json:"quadratic_tiles,omitempty" toml:"quadratic_tiles,omitempty"`
}

// DynamicFilter is a kernel given by polynomial tiles, one per piece of
// its support. DynamicFilter values are immutable and can be used
// concurrently.
type DynamicFilter struct {
	name          string
	support       Support
	nx, ny        int
	normalization float32
	lineTiles     [][]Tile[LinePowers]
	quadTiles     [][]Tile[QuadraticPowers]
}

// New checks the description d and returns the filter it describes.
// The tile data is used directly and must not be modified afterwards.
func New(d *Description) (*DynamicFilter, error) {
	support := Support{
		X: Range{Min: d.Support[0][0], Max: d.Support[0][1]},
		Y: Range{Min: d.Support[1][0], Max: d.Support[1][1]},
	}
	nx, ny, err := support.Pieces()
	if err != nil {
		var e *ConfigError
		if errors.As(err, &e) {
			e.Filter = d.Name
		}
		return nil, err
	}

	if math32.IsNaN(d.Normalization) || math32.IsInf(d.Normalization, 0) || d.Normalization == 0 {
		return nil, &ConfigError{
			Filter: d.Name,
			Reason: fmt.Sprintf("invalid normalization %g", d.Normalization),
		}
	}

	if d.LineTiles == nil && d.QuadraticTiles == nil {
		return nil, &ConfigError{Filter: d.Name, Reason: "no tile data"}
	}
	if d.LineTiles != nil {
		err = checkTiles(d.LineTiles, nx, ny, func(p *LinePowers) []uint8 { return p[:] })
		if err != nil {
			return nil, &ConfigError{Filter: d.Name, Reason: "line tiles", Err: err}
		}
	}
	if d.QuadraticTiles != nil {
		err = checkTiles(d.QuadraticTiles, nx, ny, func(p *QuadraticPowers) []uint8 { return p[:] })
		if err != nil {
			return nil, &ConfigError{Filter: d.Name, Reason: "quadratic tiles", Err: err}
		}
	}

	f := &DynamicFilter{
		name:          d.Name,
		support:       support,
		nx:            nx,
		ny:            ny,
		normalization: d.Normalization,
		lineTiles:     d.LineTiles,
		quadTiles:     d.QuadraticTiles,
	}
	return f, nil
}

// checkTiles verifies the shape of a tile grid. exponents returns the
// exponents of one monomial.
func checkTiles[E any](tiles [][]Tile[E], nx, ny int, exponents func(*E) []uint8) error {
	if len(tiles) != ny {
		return fmt.Errorf("%d tile rows for %d pieces", len(tiles), ny)
	}
	for py, row := range tiles {
		if len(row) != nx {
			return fmt.Errorf("row %d: %d tiles for %d pieces", py, len(row), nx)
		}
		for px := range row {
			t := &row[px]
			if len(t.Coefficients) != len(t.Powers) {
				return fmt.Errorf("tile (%d, %d): %d coefficients but %d powers",
					px, py, len(t.Coefficients), len(t.Powers))
			}
			for i := range t.Powers {
				for _, e := range exponents(&t.Powers[i]) {
					if e > t.MaxPow {
						return fmt.Errorf("tile (%d, %d), monomial %d: exponent %d exceeds max_pow %d",
							px, py, i, e, t.MaxPow)
					}
				}
			}
		}
	}
	return nil
}

// Name returns the name of the filter.
func (f *DynamicFilter) Name() string {
	return f.name
}

// Support implements [Filter].
func (f *DynamicFilter) Support() Support {
	return f.support
}

// Eval implements [Evaluator] for straight lines.
func (f *DynamicFilter) Eval(l geometry.Line, piece Piece) (pixel, acc float32, err error) {
	if f.lineTiles == nil {
		return 0, 0, fmt.Errorf("%s: lines: %w", f.name, ErrUnsupportedCurve)
	}
	if err := checkPiece(f.nx, f.ny, piece); err != nil {
		return 0, 0, err
	}
	if l.Start == l.End {
		return 0, 0, nil
	}

	tile := &f.lineTiles[piece.Y][piece.X]
	d := l.End.Sub(l.Start)
	pixel = evalLineTile(tile, lineChannels{l.Start.X, l.Start.Y, d.X, d.Y})
	acc = evalLineTile(tile, lineChannels{1, l.Start.Y, 0, d.Y})
	return pixel * f.normalization, acc * f.normalization, nil
}

// Quadratic returns the evaluator of f for quadratic Bézier curves.
// If f has no quadratic tiles, the evaluator fails with
// [ErrUnsupportedCurve].
func (f *DynamicFilter) Quadratic() Evaluator[geometry.QuadraticBezier] {
	return dynamicQuadratic{f}
}

type dynamicQuadratic struct {
	*DynamicFilter
}

func (f dynamicQuadratic) Eval(q geometry.QuadraticBezier, piece Piece) (pixel, acc float32, err error) {
	if f.quadTiles == nil {
		return 0, 0, fmt.Errorf("%s: quadratic Bézier curves: %w", f.name, ErrUnsupportedCurve)
	}
	if err := checkPiece(f.nx, f.ny, piece); err != nil {
		return 0, 0, err
	}
	if q.Start == q.End && q.Control == q.Start {
		return 0, 0, nil
	}

	tile := &f.quadTiles[piece.Y][piece.X]
	pixel = evalQuadTile(tile, quadChannels{
		q.Start.X, q.Start.Y, q.Control.X, q.Control.Y, q.End.X, q.End.Y,
	})
	acc = evalQuadTile(tile, quadChannels{
		1, q.Start.Y, 1, q.Control.Y, 1, q.End.Y,
	})
	return pixel * f.normalization, acc * f.normalization, nil
}
