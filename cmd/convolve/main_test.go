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

package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/convolve/filter"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readPNG(t *testing.T, fname string) image.Image {
	t.Helper()
	fd, err := os.Open(fname)
	require.NoError(t, err)
	defer fd.Close()
	img, err := png.Decode(fd)
	require.NoError(t, err)
	return img
}

func TestRenderTestCase(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rect.png")
	_, err := execute(t, "render", "-f", "box", "fill_rectangle_pixel_aligned", out)
	require.NoError(t, err)

	img := readPNG(t, out).(*image.Gray)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(20, 12).Y)
	assert.Equal(t, uint8(0), img.GrayAt(48, 12).Y)
}

func TestRenderScaled(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rect.png")
	_, err := execute(t, "render", "--scale", "2", "--workers", "3",
		"fill_rectangle_pixel_aligned", out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 64), readPNG(t, out).Bounds())
}

func TestRenderQuadratic(t *testing.T) {
	dir := t.TempDir()
	quad := filepath.Join(dir, "quad.png")
	lines := filepath.Join(dir, "lines.png")
	_, err := execute(t, "render", "-f", "box", "--quadratic", "curve_circle", quad)
	require.NoError(t, err)
	_, err = execute(t, "render", "-f", "box", "curve_circle", lines)
	require.NoError(t, err)

	a := readPNG(t, quad).(*image.Gray)
	b := readPNG(t, lines).(*image.Gray)
	assert.Equal(t, a.GrayAt(32, 32), b.GrayAt(32, 32))
	assert.Equal(t, uint8(255), a.GrayAt(32, 32).Y)

	// the default filter has no data for quadratic curves
	_, err = execute(t, "render", "--quadratic", "curve_circle", quad)
	assert.ErrorIs(t, err, filter.ErrUnsupportedCurve)
}

func TestRenderScene(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.json")
	body := `{
  "width": 2,
  "height": 1,
  "lines": [
    {"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}},
    {"start": {"x": 1, "y": 0}, "end": {"x": 1, "y": 1}},
    {"start": {"x": 1, "y": 1}, "end": {"x": 0, "y": 1}},
    {"start": {"x": 0, "y": 1}, "end": {"x": 0, "y": 0}}
  ]
}`
	require.NoError(t, os.WriteFile(scene, []byte(body), 0644))

	out := filepath.Join(dir, "out.png")
	_, err := execute(t, "render", "-f", "box", scene, out)
	require.NoError(t, err)
	img := readPNG(t, out).(*image.Gray)
	assert.Equal(t, []uint8{255, 0}, img.Pix[:2])
}

func TestRenderStroke(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stroke.png")
	_, err := execute(t, "render", "-f", "box", "--stroke-width", "2",
		"--join", "round", "fill_rectangle_pixel_aligned", out)
	require.NoError(t, err)

	// the outline of the rectangle at x = 16 covers the columns 15 and 16
	img := readPNG(t, out).(*image.Gray)
	assert.Equal(t, uint8(0), img.GrayAt(14, 12).Y)
	assert.Equal(t, uint8(255), img.GrayAt(15, 12).Y)
	assert.Equal(t, uint8(255), img.GrayAt(16, 12).Y)
	assert.Equal(t, uint8(0), img.GrayAt(20, 12).Y)
}

func TestRenderStrokedTestCase(t *testing.T) {
	// a horizontal line at y = 32 with width 8
	out := filepath.Join(t.TempDir(), "line.png")
	_, err := execute(t, "render", "-f", "box", "stroke_line_butt", out)
	require.NoError(t, err)

	img := readPNG(t, out).(*image.Gray)
	assert.Equal(t, uint8(0), img.GrayAt(32, 27).Y)
	assert.Equal(t, uint8(255), img.GrayAt(32, 28).Y)
	assert.Equal(t, uint8(255), img.GrayAt(32, 35).Y)
	assert.Equal(t, uint8(0), img.GrayAt(32, 36).Y)
	assert.Equal(t, uint8(0), img.GrayAt(8, 32).Y)
}

func TestRenderStrokeErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	var usage *usageError

	_, err := execute(t, "render", "--stroke-width", "2", "--cap", "pointed", "fill_star", out)
	assert.ErrorAs(t, err, &usage)

	_, err = execute(t, "render", "--stroke-width", "2", "--join", "mitre", "fill_star", out)
	assert.ErrorAs(t, err, &usage)

	_, err = execute(t, "render", "--stroke-width", "-1", "fill_star", out)
	assert.ErrorAs(t, err, &usage)

	_, err = execute(t, "render", "--stroke-width", "1", "--quadratic", "fill_star", out)
	assert.Error(t, err)

	scene := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scene, []byte(`{"width": 4, "height": 4, "lines": []}`), 0o644))
	_, err = execute(t, "render", "--stroke-width", "1", scene, out)
	assert.ErrorAs(t, err, &usage)
}

func TestRenderErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")

	_, err := execute(t, "render", "--scale", "0", "fill_star", out)
	var usage *usageError
	assert.ErrorAs(t, err, &usage)

	_, err = execute(t, "render", "no_such_scene.json", out)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "render", "-f", "gaussian", "fill_star", out)
	var cfgErr *filter.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = execute(t, "render", "-f", "box", "-c", "x.toml", "fill_star", out)
	assert.Error(t, err)

}

func TestUsageErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	cases := [][]string{
		{"render", "fill_star"},
		{"render", "fill_star", out, "extra"},
		{"render", "--no-such-flag", "fill_star", out},
		{"render", "-f", "box", "-c", "x.toml", "fill_star", out},
		{"render", "--quadratic", "--stroke-width", "2", "fill_star", out},
		{"dump"},
		{"filters", "box"},
		{"testcases", "--workers", "2"},
	}
	for _, args := range cases {
		_, err := execute(t, args...)
		var usage *usageError
		assert.ErrorAs(t, err, &usage, "%v", args)
	}
	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilters(t *testing.T) {
	out, err := execute(t, "filters")
	require.NoError(t, err)
	for _, name := range filter.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "lanczos      [-2, 2] x [-2, 2] (default)")
}

func TestDump(t *testing.T) {
	for _, format := range []string{filter.FormatJSON, filter.FormatTOML} {
		out, err := execute(t, "dump", "--format", format, "mitchell")
		require.NoError(t, err)

		f, err := filter.Decode(strings.NewReader(out), format)
		require.NoError(t, err)
		assert.Equal(t, "mitchell", f.Name())
	}

	_, err := execute(t, "dump", "--format", "yaml", "box")
	var usage *usageError
	assert.ErrorAs(t, err, &usage)
}

func TestListTestCases(t *testing.T) {
	out, err := execute(t, "testcases")
	require.NoError(t, err)
	assert.Contains(t, out, "fill_star\t64x64\n")
	assert.Contains(t, out, "large_large_rectangle\t512x512\n")
	assert.Contains(t, out, "stroke_line_round\t64x64\tstroke\n")
	assert.Contains(t, out, "cells_past_right_edge\t64x32\n")
}
