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
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
	"seehuhn.de/go/convolve/testcases"
)

// TestAgainstVector compares the box-filtered coverage of every test case
// with the exact area coverage computed by golang.org/x/image/vector.
// Both rasterizers are given the same flattened outline, so that stroked
// test cases are compared as the fill of their stroke outline.
func TestAgainstVector(t *testing.T) {
	box := filter.NewBoxFilter(1, 1)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				w, h := tc.Width, tc.Height
				lines := outliner(tc).Lines(tc.Path)

				ref := renderVector(lines, w, h)

				buf, err := Rasterize(geometry.NewRect(0, 0, float32(w), float32(h)), box, lines)
				if err != nil {
					t.Fatal(err)
				}
				actual := ToAlpha(buf, w, h)

				if err := compareImages(name, ref.Pix, actual.Pix, w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// outliner returns the Flattener or Stroker for a test case.
func outliner(tc testcases.TestCase) Outliner {
	fl := Flattener{CTM: tc.Transform(), Flatness: defaultFlatness}
	st := tc.Stroke
	if st == nil {
		return &fl
	}
	return &Stroker{
		Flattener:  fl,
		Width:      st.Width,
		Cap:        st.Cap,
		Join:       st.Join,
		MiterLimit: st.MiterLimit,
		Dash:       st.Dash,
		DashPhase:  st.DashPhase,
	}
}

// renderVector fills the outline using x/image/vector.
func renderVector(lines []geometry.Line, width, height int) *image.Alpha {
	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Src
	var pen geometry.Point
	for i, l := range lines {
		if i == 0 || l.Start != pen {
			if i > 0 {
				r.ClosePath()
			}
			r.MoveTo(l.Start.X, l.Start.Y)
		}
		r.LineTo(l.End.X, l.End.Y)
		pen = l.End
	}
	r.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

// compareImages checks that two coverage images agree up to rounding.
// Both rasterizers compute exact areas, so only the quantisation of
// coordinates and coverage values may differ.
func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h

	diffs := make([]int, total)
	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}
	sort.Ints(diffs)

	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	worst := diffs[total-1]

	var failures []string
	if p95 > 1 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <=1)", p95))
	}
	if worst > 3 {
		failures = append(failures, fmt.Sprintf("maximal diff is %d (want <=3)", worst))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	// 3 panels: actual, diff (green=under, red=over), expected
	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := int(expected[i]) - int(actual[i])
			c := color.RGBA{A: 255}
			if diff > 0 {
				c.G = uint8(min(255, 32*diff))
			} else if diff < 0 {
				c.R = uint8(min(255, -32*diff))
			}
			img.Set(x+w, y, c)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// TestDiffImage checks that a failing comparison leaves an image which
// can be read back.
func TestDiffImage(t *testing.T) {
	t.Chdir(t.TempDir())

	expected := []byte{0, 255, 128, 64}
	actual := []byte{0, 250, 128, 70}
	if err := compareImages("probe", expected, actual, 2, 2); err == nil {
		t.Fatal("expected an error")
	}

	gray, err := loadGray(filepath.Join("debug", "probe.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(gray) != 12 {
		t.Fatalf("diff image has %d pixels, want 12", len(gray))
	}
	if gray[1] != 250 || gray[2*2+1] != 255 {
		t.Errorf("unexpected panels: %v", gray)
	}
}

// BenchmarkRasterizeAll renders every test case with the default filter.
func BenchmarkRasterizeAll(b *testing.B) {
	type scene struct {
		viewport geometry.Rect
		lines    []geometry.Line
	}
	var scenes []scene
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			scenes = append(scenes, scene{
				viewport: geometry.NewRect(0, 0, float32(tc.Width), float32(tc.Height)),
				lines:    outliner(tc).Lines(tc.Path),
			})
		}
	}

	f, err := filter.Lanczos()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for b.Loop() {
		for _, s := range scenes {
			if _, err := Rasterize(s.viewport, f, s.lines); err != nil {
				b.Fatal(err)
			}
		}
	}
}
