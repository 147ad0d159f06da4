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
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
)

var benchSizes = []int{20, 200, 2000}

// BenchmarkRasterizeO renders an "O" shape with the box filter and with
// the default filter.
func BenchmarkRasterizeO(b *testing.B) {
	lanczos, err := filter.Lanczos()
	if err != nil {
		b.Fatal(err)
	}
	filters := []struct {
		name string
		f    filter.Evaluator[geometry.Line]
	}{
		{"box", filter.NewBoxFilter(1, 1)},
		{"lanczos", lanczos},
	}

	for _, fi := range filters {
		for _, size := range benchSizes {
			b.Run(fmt.Sprintf("%s/%dx%d", fi.name, size, size), func(b *testing.B) {
				center := float64(size) / 2
				lines := NewFlattener().Lines(makeOPath(center, center, float64(size)*0.45, float64(size)*0.30))
				viewport := geometry.NewRect(0, 0, float32(size), float32(size))

				b.ResetTimer()
				b.ReportAllocs()

				for b.Loop() {
					buf, err := Rasterize(viewport, fi.f, lines)
					if err != nil {
						b.Fatal(err)
					}
					_ = ToAlpha(buf, size, size)
				}
			})
		}
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing an "O" shape.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// makeOPath creates an "O" shape: the outer circle is counter-clockwise
// on screen, the inner one clockwise, so that the inner disc is a hole.
func makeOPath(cx, cy, outerR, innerR float64) *path.Data {
	p := &path.Data{}
	p = addCircleToPath(p, cx, cy, outerR, false)
	p = addCircleToPath(p, cx, cy, innerR, true)
	return p
}

// addCircleToPath adds a circle made of four cubic Bézier curves.
func addCircleToPath(p *path.Data, cx, cy, r float64, clockwise bool) *path.Data {
	const k = 0.5522847498
	kr := k * r
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

	p = p.MoveTo(v(cx, cy-r))
	if clockwise {
		p = p.CubeTo(v(cx-kr, cy-r), v(cx-r, cy-kr), v(cx-r, cy)).
			CubeTo(v(cx-r, cy+kr), v(cx-kr, cy+r), v(cx, cy+r)).
			CubeTo(v(cx+kr, cy+r), v(cx+r, cy+kr), v(cx+r, cy)).
			CubeTo(v(cx+r, cy-kr), v(cx+kr, cy-r), v(cx, cy-r))
	} else {
		p = p.CubeTo(v(cx+kr, cy-r), v(cx+r, cy-kr), v(cx+r, cy)).
			CubeTo(v(cx+r, cy+kr), v(cx+kr, cy+r), v(cx, cy+r)).
			CubeTo(v(cx-kr, cy+r), v(cx-r, cy+kr), v(cx-r, cy)).
			CubeTo(v(cx-r, cy-kr), v(cx-kr, cy-r), v(cx, cy-r))
	}
	return p.Close()
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	if clockwise {
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
