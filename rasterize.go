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
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/geometry"
)

// Config holds the settings of the rasterizer.
type Config struct {
	// Workers is the maximal number of goroutines used for rasterization.
	// Zero or negative values mean runtime.GOMAXPROCS(0).
	Workers int
}

func (cfg *Config) workers() int {
	if cfg == nil || cfg.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return cfg.Workers
}

// Rasterize convolves the area enclosed by curves with the filter kernel
// and samples the result at the pixel centres of viewport, using the
// default configuration. See [RasterizeConfig].
func Rasterize[C geometry.Curve[C]](viewport geometry.Rect, f filter.Evaluator[C], curves []C) ([]float32, error) {
	return RasterizeConfig(nil, viewport, f, curves)
}

// RasterizeConfig convolves the area enclosed by curves with the filter
// kernel and samples the result at the pixel centres of viewport.
//
// The result holds one value per pixel, row by row, where pixel (x, y)
// has its centre at viewport.Origin + (x+0.5, y+0.5). The area is
// weighted by its winding number: regions enclosed in positive direction
// (counter-clockwise when the y axis points up) count as +1. With a box
// filter of size 1x1 the value of a pixel is the signed area of the
// shape inside the pixel.
//
// Curves with NaN or infinite coordinates, or whose bounding box
// overflows float32, are ignored.
//
// If any filter evaluation fails, the whole operation fails and no
// buffer is returned. cfg may be nil.
func RasterizeConfig[C geometry.Curve[C]](cfg *Config, viewport geometry.Rect, f filter.Evaluator[C], curves []C) ([]float32, error) {
	viewport = viewport.Normalize()
	size := viewport.ImageSize()

	support := f.Support()
	nx, ny, err := support.Pieces()
	if err != nil {
		return nil, err
	}

	buf := make([]float32, size.Pixels())
	if size.Pixels() == 0 {
		return buf, nil
	}

	// Cell (i, j) of the cut region is seen by pixel (i-px, j-py) through
	// piece (px, py) of the filter.
	region := geometry.Rect{
		Origin: viewport.Origin.Offset(support.X.Min+0.5, support.Y.Min+0.5),
		Size: geometry.Size{
			Width:  float32(size.Width + nx - 1),
			Height: float32(size.Height + ny - 1),
		},
	}

	log := Logger()
	workers := cfg.workers()

	start := time.Now()
	rows, err := cutCurves(workers, region, curves)
	if err != nil {
		return nil, err
	}
	log.Debug("curves cut",
		"curves", len(curves),
		"cells", len(rows)*(size.Width+nx-1),
		"duration", time.Since(start))

	start = time.Now()
	err = accumulate(workers, size, nx, ny, f, rows, buf)
	if err != nil {
		return nil, err
	}
	log.Debug("pixels accumulated",
		"width", size.Width,
		"height", size.Height,
		"pieces", nx*ny,
		"duration", time.Since(start))

	return buf, nil
}

// cutRow holds the fragments of the curves in one row of the cut region,
// in the local coordinates of their cells.
type cutRow[C any] struct {
	// start[k] is the index of the first fragment of cell k in frags.
	start []int32
	frags []C

	// overflow holds the parts of the curves to the right of the cut
	// region. Only their accumulator contributes to the pixels.
	overflow []C
}

func (r *cutRow[C]) cell(k int) []C {
	return r.frags[r.start[k]:r.start[k+1]]
}

// cutCurves splits the curves into fragments, one list per unit cell of
// region. Rows are processed concurrently.
func cutCurves[C geometry.Curve[C]](workers int, region geometry.Rect, curves []C) ([]cutRow[C], error) {
	cutW := int(region.Size.Width)
	cutH := int(region.Size.Height)

	// Move the curves into the frame of the cut region and sort them into
	// buckets by the rows they touch.
	toRegion := region.Origin.Vec().Neg()
	local := make([]C, len(curves))
	buckets := make([][]int32, cutH)
	maxRight := float32(cutW)
	skipped := 0
	for i, c := range curves {
		c = c.Offset(toRegion)
		local[i] = c

		box := c.BoundingBox().Normalize()
		if !box.IsFinite() {
			skipped++
			continue
		}
		if box.MaxX() < 0 || box.MaxY() < 0 || box.Origin.Y > float32(cutH) {
			continue
		}
		maxRight = max(maxRight, box.MaxX())
		j0 := int(math32.Floor(max(box.Origin.Y, 0)))
		j1 := int(math32.Floor(min(box.MaxY(), float32(cutH-1))))
		for j := j0; j <= j1; j++ {
			buckets[j] = append(buckets[j], int32(i))
		}
	}

	if skipped > 0 {
		Logger().Warn("curves with non-finite coordinates ignored", "count", skipped)
	}

	// The strip extends past the right-most curve, so that nothing can
	// lie on its far edge.  For large coordinates adding 1 is lost to
	// rounding.
	stripW := math32.Nextafter(math32.Floor(maxRight)+1, math32.Inf(1))
	overflowRect := geometry.NewRect(float32(cutW), 0, stripW-float32(cutW), 1)

	rows := make([]cutRow[C], cutH)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for j := range rows {
		if len(buckets[j]) == 0 {
			rows[j].start = make([]int32, cutW+1)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[j] = cutRowOf(local, buckets[j], j, cutW, stripW, overflowRect)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// cutRowOf clips the curves with the given indices to row j of the cut
// region and then to the cells of the row.
func cutRowOf[C geometry.Curve[C]](local []C, idx []int32, j, cutW int, stripW float32, overflowRect geometry.Rect) cutRow[C] {
	var row cutRow[C]

	strip := geometry.NewRect(0, float32(j), stripW, 1)
	toRow := geometry.Vector{Y: -float32(j)}

	var inStrip, frags []C
	var cells []int32
	for _, i := range idx {
		inStrip = local[i].AppendClipped(inStrip[:0], strip)
		for _, c := range inStrip {
			c = c.Offset(toRow)
			box := c.BoundingBox().Normalize()

			k0 := int(math32.Floor(min(max(box.Origin.X, 0), float32(cutW))))
			k1 := int(math32.Floor(min(box.MaxX(), float32(cutW-1))))
			for k := k0; k <= k1; k++ {
				n := len(frags)
				frags = c.AppendClipped(frags, geometry.NewRect(float32(k), 0, 1, 1))
				toCell := geometry.Vector{X: -float32(k)}
				for l := n; l < len(frags); l++ {
					frags[l] = frags[l].Offset(toCell)
					cells = append(cells, int32(k))
				}
			}

			if box.MaxX() >= float32(cutW) {
				row.overflow = c.AppendClipped(row.overflow, overflowRect)
			}
		}
	}

	// counting sort by cell
	row.start = make([]int32, cutW+1)
	for _, k := range cells {
		row.start[k+1]++
	}
	for k := 1; k <= cutW; k++ {
		row.start[k] += row.start[k-1]
	}
	row.frags = make([]C, len(frags))
	next := make([]int32, cutW)
	copy(next, row.start[:cutW])
	for l, k := range cells {
		row.frags[next[k]] = frags[l]
		next[k]++
	}
	return row
}

// scanline is one row of the output buffer, together with the partial
// results of the filter pieces which are still being added up.
type scanline struct {
	mu      sync.Mutex
	out     []float32
	partial []*[]float32
	pending int
}

// scanlines splits buf into rows of the given width. The rows do not
// overlap and cover buf exactly.
func scanlines(buf []float32, width, pieces int) []*scanline {
	height := len(buf) / width
	res := make([]*scanline, height)
	for y := range res {
		res[y] = &scanline{
			out:     buf[y*width : (y+1)*width : (y+1)*width],
			partial: make([]*[]float32, pieces),
			pending: pieces,
		}
	}
	return res
}

// add hands in the contribution of one filter piece. Once all pieces are
// in, they are summed in piece order, so that the result does not depend
// on the order in which the pieces finish.
func (s *scanline) add(piece int, row *[]float32, pool *sync.Pool) {
	s.mu.Lock()
	s.partial[piece] = row
	s.pending--
	done := s.pending == 0
	s.mu.Unlock()

	if !done {
		return
	}
	copy(s.out, *s.partial[0])
	for _, p := range s.partial[1:] {
		for x, v := range *p {
			s.out[x] += v
		}
	}
	for i, p := range s.partial {
		pool.Put(p)
		s.partial[i] = nil
	}
}

// accumulate sweeps every row of the image once for every filter piece.
func accumulate[C any](workers int, size geometry.ImageSize, nx, ny int, f filter.Evaluator[C], rows []cutRow[C], buf []float32) error {
	width := size.Width
	cutW := width + nx - 1
	lines := scanlines(buf, width, nx*ny)

	pool := &sync.Pool{
		New: func() any {
			row := make([]float32, width)
			return &row
		},
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for y := range lines {
		for py := range ny {
			for px := range nx {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					piece := filter.Piece{X: px, Y: py}
					row := pool.Get().(*[]float32)
					err := sweep(f, piece, &rows[y+py], cutW, *row)
					if err != nil {
						return err
					}
					lines[y].add(py*nx+px, row, pool)
					return nil
				})
			}
		}
	}
	return g.Wait()
}

// sweep computes the contribution of one filter piece to one row of
// pixels, from right to left. Each pixel receives the pixel values of the
// fragments in the cell it sees through the piece, plus the accumulators
// of all fragments further to the right.
func sweep[C any](f filter.Evaluator[C], piece filter.Piece, row *cutRow[C], cutW int, out []float32) error {
	width := len(out)

	var acc float32
	for _, c := range row.overflow {
		_, a, err := f.Eval(c, piece)
		if err != nil {
			return err
		}
		acc += a
	}

	for k := cutW - 1; k >= piece.X; k-- {
		value := acc
		for _, c := range row.cell(k) {
			pv, a, err := f.Eval(c, piece)
			if err != nil {
				return err
			}
			value += pv
			acc += a
		}
		if col := k - piece.X; col < width {
			out[col] = value
		}
	}
	return nil
}
