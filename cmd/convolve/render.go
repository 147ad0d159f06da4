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
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/convolve"
	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
	"seehuhn.de/go/convolve/testcases"
)

type renderOptions struct {
	filterName string
	filterFile string
	scale      float32
	workers    int
	flatness   float64
	quadratic  bool
	debug      bool

	strokeWidth float64
	lineCap     string
	lineJoin    string
	dash        []float64
}

func renderCmd() *cobra.Command {
	opt := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [flags] <scene.json|testcase> <out.png>",
		Short: "Render a scene or a built-in test case to a PNG file",
		Long: `Render a scene or a built-in test case to a PNG file.

The input is either a scene in JSON format, as written by the export
command, or the name of a test case (see "convolve testcases").
The output is an 8-bit grey image showing the coverage of every pixel.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opt, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opt.filterName, "filter", "f", filter.DefaultName,
		"built-in filter ("+strings.Join(filter.Names(), ", ")+")")
	flags.StringVarP(&opt.filterFile, "filter-file", "c", "",
		"read the filter from a JSON or TOML description")
	flags.Float32Var(&opt.scale, "scale", 1, "scale the scene by this factor")
	flags.IntVar(&opt.workers, "workers", 0, "number of goroutines (0 means all CPUs)")
	flags.Float64Var(&opt.flatness, "flatness", 0.25, "curve flattening tolerance in device pixels")
	flags.BoolVar(&opt.quadratic, "quadratic", false,
		"keep curves of test cases as quadratic Bézier segments (box filter only)")
	flags.BoolVar(&opt.debug, "debug", false, "log the rasterization stages to stderr")
	flags.Float64Var(&opt.strokeWidth, "stroke-width", 0,
		"stroke test cases with this line width instead of filling them")
	flags.StringVar(&opt.lineCap, "cap", "butt", "line cap for strokes (butt, round, square)")
	flags.StringVar(&opt.lineJoin, "join", "miter", "line join for strokes (miter, round, bevel)")
	flags.Float64SliceVar(&opt.dash, "dash", nil, "dash pattern for strokes, as comma-separated lengths")
	cmd.MarkFlagsMutuallyExclusive("filter", "filter-file")
	cmd.MarkFlagsMutuallyExclusive("quadratic", "stroke-width")
	return cmd
}

func runRender(opt *renderOptions, input, output string) error {
	if opt.scale <= 0 {
		return &usageError{msg: fmt.Sprintf("invalid scale %g", opt.scale)}
	}
	if opt.strokeWidth < 0 {
		return &usageError{msg: fmt.Sprintf("invalid stroke width %g", opt.strokeWidth)}
	}
	if opt.debug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		convolve.SetLogger(slog.New(h))
	}
	cfg := &convolve.Config{Workers: opt.workers}

	var (
		buf           []float32
		width, height int
		err           error
	)
	if opt.quadratic {
		buf, width, height, err = renderQuadratic(cfg, opt, input)
	} else {
		buf, width, height, err = renderLines(cfg, opt, input)
	}
	if err != nil {
		return err
	}

	return writePNG(output, convolve.ToAlpha(buf, width, height))
}

func renderLines(cfg *convolve.Config, opt *renderOptions, input string) ([]float32, int, int, error) {
	f, err := loadFilter(opt)
	if err != nil {
		return nil, 0, 0, err
	}
	scene, err := loadScene(input, opt)
	if err != nil {
		return nil, 0, 0, err
	}
	scene = scene.Scale(opt.scale)

	buf, err := convolve.RasterizeConfig(cfg, scene.Viewport(), f, scene.Lines)
	if err != nil {
		return nil, 0, 0, err
	}
	return buf, scene.Width, scene.Height, nil
}

func renderQuadratic(cfg *convolve.Config, opt *renderOptions, input string) ([]float32, int, int, error) {
	var f filter.Evaluator[geometry.QuadraticBezier]
	switch {
	case opt.filterFile != "":
		dyn, err := filter.Load(opt.filterFile)
		if err != nil {
			return nil, 0, 0, err
		}
		f = dyn.Quadratic()
	case opt.filterName == "box":
		f = filter.NewBoxFilter(1, 1).Quadratic()
	default:
		dyn, err := filter.Named(opt.filterName)
		if err != nil {
			return nil, 0, 0, err
		}
		f = dyn.Quadratic()
	}

	tc, ok := testcases.Find(input)
	if !ok {
		return nil, 0, 0, &usageError{msg: fmt.Sprintf("%s: not a test case", input)}
	}
	fl := convolve.NewFlattener()
	fl.CTM = tc.Transform()
	fl.Flatness = opt.flatness / float64(opt.scale)
	curves := fl.Quadratics(tc.Path)

	s := opt.scale
	for i, q := range curves {
		curves[i] = geometry.NewQuadraticBezier(q.Start.Scale(s), q.Control.Scale(s), q.End.Scale(s))
	}
	scene := &convolve.Scene{Width: tc.Width, Height: tc.Height}
	scene = scene.Scale(s)

	buf, err := convolve.RasterizeConfig(cfg, scene.Viewport(), f, curves)
	if err != nil {
		return nil, 0, 0, err
	}
	return buf, scene.Width, scene.Height, nil
}

// loadFilter returns the filter selected on the command line. The box
// filter uses the closed form instead of tile data.
func loadFilter(opt *renderOptions) (filter.Evaluator[geometry.Line], error) {
	if opt.filterFile != "" {
		return filter.Load(opt.filterFile)
	}
	if opt.filterName == "box" {
		return filter.NewBoxFilter(1, 1), nil
	}
	return filter.Named(opt.filterName)
}

// loadScene reads a scene file or converts a built-in test case into
// lines, either by filling or by stroking its path.
func loadScene(input string, opt *renderOptions) (*convolve.Scene, error) {
	if tc, ok := testcases.Find(input); ok {
		ol, err := outliner(opt, tc)
		if err != nil {
			return nil, err
		}
		return &convolve.Scene{
			Name:   input,
			Width:  tc.Width,
			Height: tc.Height,
			Lines:  ol.Lines(tc.Path),
		}, nil
	}
	if opt.strokeWidth > 0 {
		return nil, &usageError{msg: input + ": only test cases can be stroked"}
	}

	fd, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	scene, err := convolve.ReadScene(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return scene, nil
}

// outliner returns how a test case is turned into lines. The stroke
// flags take precedence over the line style of stroked test cases.
func outliner(opt *renderOptions, tc testcases.TestCase) (convolve.Outliner, error) {
	fl := convolve.NewFlattener()
	fl.CTM = tc.Transform()
	fl.Flatness = opt.flatness / float64(opt.scale)
	if opt.strokeWidth == 0 {
		if st := tc.Stroke; st != nil {
			return &convolve.Stroker{
				Flattener:  *fl,
				Width:      st.Width,
				Cap:        st.Cap,
				Join:       st.Join,
				MiterLimit: st.MiterLimit,
				Dash:       st.Dash,
				DashPhase:  st.DashPhase,
			}, nil
		}
		return fl, nil
	}

	s := convolve.NewStroker(opt.strokeWidth)
	s.Flattener = *fl
	s.Dash = opt.dash
	switch opt.lineCap {
	case "butt":
		s.Cap = graphics.LineCapButt
	case "round":
		s.Cap = graphics.LineCapRound
	case "square":
		s.Cap = graphics.LineCapSquare
	default:
		return nil, &usageError{msg: fmt.Sprintf("unknown line cap %q", opt.lineCap)}
	}
	switch opt.lineJoin {
	case "miter":
		s.Join = graphics.LineJoinMiter
	case "round":
		s.Join = graphics.LineJoinRound
	case "bevel":
		s.Join = graphics.LineJoinBevel
	default:
		return nil, &usageError{msg: fmt.Sprintf("unknown line join %q", opt.lineJoin)}
	}
	return s, nil
}

// writePNG stores the coverage as a grey image, white where the shape is.
func writePNG(fname string, img *image.Alpha) (err error) {
	grey := &image.Gray{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(fd, grey)
}
