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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Supported serialization formats for filter descriptions.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatOf returns the description format implied by the extension of a
// file name, or the empty string if the extension is not recognised.
func FormatOf(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return ""
}

// Decode reads a filter description in the given format from r and
// returns the corresponding filter. Unknown fields are rejected.
func Decode(r io.Reader, format string) (*DynamicFilter, error) {
	d := &Description{}
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(d)
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(d)
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown format %q", format)}
	}
	if err != nil {
		return nil, &ConfigError{Reason: "malformed " + format + " data", Err: err}
	}
	return New(d)
}

// Load reads a filter description from a file. The format is chosen by
// the file name extension, ".json" or ".toml".
func Load(fname string) (*DynamicFilter, error) {
	format := FormatOf(fname)
	if format == "" {
		return nil, &ConfigError{Reason: fmt.Sprintf("%s: unknown file type", fname)}
	}

	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	f, err := Decode(fd, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// Encode writes the description d to w in the given format.
func Encode(w io.Writer, d *Description, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	default:
		return fmt.Errorf("filter: unknown format %q", format)
	}
}

// Description returns the serializable form of f.
// The tile data is shared with f and must not be modified.
func (f *DynamicFilter) Description() *Description {
	return &Description{
		Name: f.name,
		Support: [2][2]float32{
			{f.support.X.Min, f.support.X.Max},
			{f.support.Y.Min, f.support.Y.Max},
		},
		Normalization:  f.normalization,
		LineTiles:      f.lineTiles,
		QuadraticTiles: f.quadTiles,
	}
}
