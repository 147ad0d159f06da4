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

package geometry

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// PointFromVec converts a float64 device-space vector to a Point.
func PointFromVec(v vec.Vec2) Point {
	return Point{X: float32(v.X), Y: float32(v.Y)}
}

// Vec2 converts p to a float64 vector.
func (p Point) Vec2() vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// RectFromGeom converts a device-space rectangle to a Rect. The
// lower-left corner of r becomes the origin, so that the result is
// normalized whenever r is.
func RectFromGeom(r rect.Rect) Rect {
	return NewRect(
		float32(r.LLx), float32(r.LLy),
		float32(r.URx-r.LLx), float32(r.URy-r.LLy),
	)
}
