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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/chewxy/math32"

	"seehuhn.de/go/convolve/geometry"
)

// ErrInvalidScene is returned by [ReadScene] for scenes which cannot be
// rasterized.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is a flattened outline together with the size of the image it is
// drawn on. Coordinates are device pixels, with y growing downwards.
type Scene struct {
	Name   string          `json:"name,omitempty"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Lines  []geometry.Line `json:"lines"`
}

// Viewport returns the rectangle covered by the image.
func (s *Scene) Viewport() geometry.Rect {
	return geometry.NewRect(0, 0, float32(s.Width), float32(s.Height))
}

// Scale returns a copy of the scene enlarged by the factor k. The image
// size is rounded up to whole pixels.
func (s *Scene) Scale(k float32) *Scene {
	res := &Scene{
		Name:   s.Name,
		Width:  int(math32.Ceil(float32(s.Width) * k)),
		Height: int(math32.Ceil(float32(s.Height) * k)),
		Lines:  make([]geometry.Line, len(s.Lines)),
	}
	for i, l := range s.Lines {
		res.Lines[i] = geometry.NewLine(l.Start.Scale(k), l.End.Scale(k))
	}
	return res
}

// Check verifies that the image size is positive and that all
// coordinates are finite.
func (s *Scene) Check() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	for i, l := range s.Lines {
		for _, v := range [...]float32{l.Start.X, l.Start.Y, l.End.X, l.End.Y} {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				return fmt.Errorf("%w: line %d has non-finite coordinates", ErrInvalidScene, i)
			}
		}
	}
	return nil
}

// ReadScene decodes a scene in JSON format.
func ReadScene(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	s := &Scene{}
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

// Write encodes the scene in JSON format.
func (s *Scene) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
