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
	_ "embed"
	"sync"
)

//go:generate python3 ../tools/generate_lanczos.py lanczos.json

//go:embed lanczos.json
var lanczosData []byte

var lanczos = sync.OnceValues(func() (*DynamicFilter, error) {
	return Decode(bytes.NewReader(lanczosData), FormatJSON)
})

// Lanczos returns the default filter, a two-lobed Lanczos kernel
// approximated by piecewise cubics. The filter is decoded on first use
// and shared afterwards.
func Lanczos() (*DynamicFilter, error) {
	return lanczos()
}
