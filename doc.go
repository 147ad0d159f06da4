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

// Package convolve renders vector outlines into continuous-tone coverage
// rasters by exact convolution with an antialiasing filter.
//
// The value of a pixel is the integral of the filter kernel, centred on
// the pixel, over the area enclosed by the outline. Regions are weighted
// by their winding number. With the 1x1 box filter this is the exact area
// of the shape inside the pixel; wider kernels such as the default
// Lanczos filter ([filter.Lanczos]) give sharper results without
// aliasing.
//
// The outline is given as a list of directed segments in pixel space,
// either straight lines or quadratic Bézier curves. [Flattener] converts
// [seehuhn.de/go/geom/path.Data] values into such lists:
//
//	lines := convolve.NewFlattener().Lines(p)
//	f, _ := filter.Lanczos()
//	buf, err := convolve.Rasterize(geometry.NewRect(0, 0, 64, 64), f, lines)
//
// [Stroker] produces the outline of the stroke of a path instead, and
// [Render] combines both steps with the conversion to an image.
//
// The work is split between goroutines; see [Config].
package convolve
