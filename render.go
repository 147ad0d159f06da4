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
	"image"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
)

// ToAlpha converts a coverage buffer, as returned by [Rasterize], into an
// 8-bit image. Values are taken by absolute value, so that shapes of
// either orientation appear opaque, and clamped to [0, 1].
func ToAlpha(buf []float32, width, height int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, width, height))
	for y := range height {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		for x, c := range buf[y*width : (y+1)*width] {
			row[x] = quantize(c)
		}
	}
	return img
}

func quantize(c float32) uint8 {
	if c < 0 {
		c = -c
	}
	return uint8(max(0, min(255, int(c*256))))
}

// Outliner converts a path into closed outlines in device space.
// It is implemented by [Flattener], which fills the path, and by
// [Stroker], which strokes it.
type Outliner interface {
	Lines(p *path.Data) []geometry.Line
}

// Render paints p and returns the filtered coverage as an image of the
// given size. The outliner determines whether p is filled or stroked and
// maps it to device pixels; ol and cfg may be nil for the defaults,
// which fill p using the nonzero winding rule.
func Render(cfg *Config, ol Outliner, p *path.Data, width, height int, f filter.Evaluator[geometry.Line]) (*image.Alpha, error) {
	if ol == nil {
		ol = NewFlattener()
	}
	viewport := geometry.NewRect(0, 0, float32(width), float32(height))
	buf, err := RasterizeConfig(cfg, viewport, f, ol.Lines(p))
	if err != nil {
		return nil, err
	}
	return ToAlpha(buf, width, height), nil
}
