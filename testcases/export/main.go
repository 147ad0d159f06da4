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

// Command export writes every test case as a flattened scene in JSON
// format, for use with "convolve render" and external tools. Stroked
// test cases are written as the outline of their stroke.
// Run from the module root directory.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/convolve"
	"seehuhn.de/go/convolve/testcases"
)

const outDir = "testdata/scenes"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := export(name, tc); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func export(name string, tc testcases.TestCase) (err error) {
	fl := convolve.NewFlattener()
	fl.CTM = tc.Transform()
	var ol convolve.Outliner = fl
	if st := tc.Stroke; st != nil {
		ol = &convolve.Stroker{
			Flattener:  *fl,
			Width:      st.Width,
			Cap:        st.Cap,
			Join:       st.Join,
			MiterLimit: st.MiterLimit,
			Dash:       st.Dash,
			DashPhase:  st.DashPhase,
		}
	}
	scene := &convolve.Scene{
		Name:   name,
		Width:  tc.Width,
		Height: tc.Height,
		Lines:  ol.Lines(tc.Path),
	}

	f, err := os.Create(filepath.Join(outDir, name+".json"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return scene.Write(f)
}
