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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/convolve/geometry"
)

const boxJSON = `{
  "name": "box",
  "support": [[-0.5, 0.5], [-0.5, 0.5]],
  "normalization": 1,
  "line_tiles": [[{"coefficients": [0.5, 1], "powers": [[0, 0, 1, 1], [1, 0, 0, 1]], "max_pow": 1}]]
}`

const boxTOML = `name = "box"
support = [[-0.5, 0.5], [-0.5, 0.5]]
normalization = 1.0
line_tiles = [[{coefficients = [0.5, 1.0], powers = [[0, 0, 1, 1], [1, 0, 0, 1]], max_pow = 1}]]
`

func TestDecodeFormats(t *testing.T) {
	fj, err := Decode(strings.NewReader(boxJSON), FormatJSON)
	require.NoError(t, err)
	ft, err := Decode(strings.NewReader(boxTOML), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, fj.Description(), ft.Description())

	ref, err := Named("box")
	require.NoError(t, err)
	assert.Equal(t, ref.Description(), fj.Description())

	_, err = Decode(strings.NewReader(boxJSON), "yaml")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":      `{"name": "box", `,
		"unknown field":  strings.Replace(boxJSON, `"normalization"`, `"scale": 2, "normalization"`, 1),
		"fractional":     strings.Replace(boxJSON, `[[-0.5, 0.5], [-0.5, 0.5]]`, `[[-0.5, 0.75], [-0.5, 0.5]]`, 1),
		"grid rows":      strings.Replace(boxJSON, `[[-0.5, 0.5], [-0.5, 0.5]]`, `[[-0.5, 0.5], [-1, 1]]`, 1),
		"grid columns":   strings.Replace(boxJSON, `[[-0.5, 0.5], [-0.5, 0.5]]`, `[[-1, 1], [-0.5, 0.5]]`, 1),
		"lengths":        strings.Replace(boxJSON, `[0.5, 1]`, `[0.5, 1, 2]`, 1),
		"exponent":       strings.Replace(boxJSON, `"max_pow": 1`, `"max_pow": 0`, 1),
		"normalization":  strings.Replace(boxJSON, `"normalization": 1`, `"normalization": 0`, 1),
		"no tiles":       `{"name": "box", "support": [[-0.5, 0.5], [-0.5, 0.5]], "normalization": 1}`,
		"large exponent": strings.Replace(boxJSON, `[1, 0, 0, 1]`, `[1, 0, 0, 300]`, 1),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(data), FormatJSON)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			if name != "malformed" && name != "unknown field" && name != "large exponent" {
				assert.Equal(t, "box", cfgErr.Filter)
			}
		})
	}
}

func TestEncodeTOML(t *testing.T) {
	ref, err := Lanczos()
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, ref.Description(), FormatTOML))
	f, err := Decode(buf, FormatTOML)
	require.NoError(t, err)

	l := geometry.NewLine(geometry.Point{X: 0.1, Y: 0.2}, geometry.Point{X: 0.7, Y: 0.9})
	for py := range 4 {
		for px := range 4 {
			p1, a1, err := ref.Eval(l, Piece{X: px, Y: py})
			require.NoError(t, err)
			p2, a2, err := f.Eval(l, Piece{X: px, Y: py})
			require.NoError(t, err)
			assert.Equal(t, p1, p2)
			assert.Equal(t, a1, a2)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "box.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(boxJSON), 0o644))
	tomlFile := filepath.Join(dir, "box.TOML")
	require.NoError(t, os.WriteFile(tomlFile, []byte(boxTOML), 0o644))

	f, err := Load(jsonFile)
	require.NoError(t, err)
	assert.Equal(t, "box", f.Name())
	_, err = Load(tomlFile)
	require.NoError(t, err)

	_, err = Load(filepath.Join(dir, "box.yaml"))
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "box"}`), 0o644))
	_, err = Load(bad)
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), bad)
}
