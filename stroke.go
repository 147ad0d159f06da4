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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/convolve/geometry"
)

const (
	// defaultMiterLimit is the PDF default for the miter limit.
	defaultMiterLimit = 10.0

	// minSpanLength is the length below which a segment has no direction.
	minSpanLength = 1e-10

	// collinear bounds |sin θ| for corners which are drawn without a join.
	collinear = 1e-6

	// cuspCosine is the cosine of the turning angle above which a corner
	// is treated as a cusp and gets two caps instead of a join.
	cuspCosine = -0.9999
)

// Stroker converts paths into the outline of their stroke, for use with
// [Rasterize] or [Render].
//
// The outline consists of closed polygons in device space. All polygons
// are oriented so that the stroked area has positive coverage, and
// overlapping parts of the stroke add up. The embedded Flattener supplies
// the transformation and the flatness; its own methods fill the path.
type Stroker struct {
	Flattener

	// Width is the line width in path coordinates.
	// A non-positive width strokes nothing.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit bounds the ratio between the length of a miter and the
	// line width. Corners exceeding the limit are beveled.
	MiterLimit float64

	// Dash alternates between the lengths of dashes and gaps, in path
	// coordinates. The pattern is repeated along every subpath, starting
	// DashPhase units into the pattern. A pattern with negative entries
	// or without positive length draws solid lines.
	Dash      []float64
	DashPhase float64
}

// NewStroker returns a Stroker for lines of the given width, with butt
// caps, miter joins and the default flattener.
func NewStroker(width float64) *Stroker {
	return &Stroker{
		Flattener:  *NewFlattener(),
		Width:      width,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
	}
}

// Lines returns the stroke outline of p as line segments in device space.
func (s *Stroker) Lines(p *path.Data) []geometry.Line {
	if s.Width <= 0 {
		return nil
	}
	subpaths, dots := s.flattenSubpaths(p)

	m := s.CTM
	o := &outline{
		Stroker: s,
		reverse: m[0]*m[3]-m[1]*m[2] > 0,
	}
	d := s.Width / 2

	// Subpaths without any extent only show up with round caps.
	if s.Cap == graphics.LineCapRound {
		for _, pt := range dots {
			o.addArc(pt, d, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
			o.flush()
		}
	}

	if s.dashed() {
		subpaths = s.applyDash(subpaths)
	}
	for _, sp := range subpaths {
		if len(sp.spans) == 1 && sp.spans[0].A == sp.spans[0].B {
			o.addDot(sp.spans[0], d)
		} else {
			o.addSubpath(sp, d)
		}
		o.flush()
	}
	return o.lines
}

// span is a straight piece of a flattened subpath, with unit tangent T
// and unit normal N, a quarter turn counter-clockwise from T.
type span struct {
	A, B vec.Vec2
	T, N vec.Vec2
}

func newSpan(a, b vec.Vec2) (span, bool) {
	dir := b.Sub(a)
	length := dir.Length()
	if length < minSpanLength {
		return span{}, false
	}
	t := dir.Mul(1 / length)
	return span{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}}, true
}

// polyline is a flattened subpath. Dashes are always open.
type polyline struct {
	spans  []span
	closed bool
}

// flattenSubpaths splits p into flattened subpaths in path coordinates.
// Subpaths which consist of a single point are returned separately.
func (s *Stroker) flattenSubpaths(p *path.Data) (subpaths []polyline, dots []vec.Vec2) {
	if p == nil {
		return nil, nil
	}

	var cur polyline
	var current, start vec.Vec2
	haveCurrent, inSubpath, drawn := false, false, false

	add := func(a, b vec.Vec2) {
		if sp, ok := newSpan(a, b); ok {
			cur.spans = append(cur.spans, sp)
		}
	}
	finish := func(closed bool) {
		switch {
		case len(cur.spans) > 0:
			cur.closed = closed
			subpaths = append(subpaths, cur)
		case drawn:
			dots = append(dots, start)
		}
		cur = polyline{}
		inSubpath, drawn = false, false
	}
	// begin starts an implicit subpath for a drawing command which does
	// not follow a MoveTo, as after ClosePath.
	begin := func() bool {
		if !inSubpath && haveCurrent {
			start = current
			inSubpath = true
		}
		return inSubpath
	}

	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath {
				finish(false)
			}
			current, start = p.Coords[i], p.Coords[i]
			haveCurrent, inSubpath = true, true
			i++

		case path.CmdLineTo:
			pt := p.Coords[i]
			i++
			if begin() {
				add(current, pt)
				current, drawn = pt, true
			}

		case path.CmdQuadTo:
			c, pt := p.Coords[i], p.Coords[i+1]
			i += 2
			if begin() {
				s.flattenQuadratic(current, c, pt, add)
				current, drawn = pt, true
			}

		case path.CmdCubeTo:
			c1, c2, pt := p.Coords[i], p.Coords[i+1], p.Coords[i+2]
			i += 3
			if begin() {
				s.flattenCubic(current, c1, c2, pt, add)
				current, drawn = pt, true
			}

		case path.CmdClose:
			if inSubpath {
				if current != start {
					add(current, start)
				}
				drawn = true
				finish(true)
				current = start
			}
		}
	}
	if inSubpath {
		finish(false)
	}
	return subpaths, dots
}

// outline accumulates the stroke polygons of one path. Polygons are
// built in path coordinates and converted to device space by flush.
type outline struct {
	*Stroker

	poly  []vec.Vec2
	lines []geometry.Line

	// reverse is set when the CTM preserves orientation. Polygons are
	// built clockwise, so they must be reversed to give positive coverage.
	reverse bool
}

func (o *outline) emit(pts ...vec.Vec2) {
	o.poly = append(o.poly, pts...)
}

// flush closes the current polygon and appends its edges to o.lines,
// as a chain of lines where every line starts at the end of the previous.
func (o *outline) flush() {
	poly := o.poly
	o.poly = o.poly[:0]
	if len(poly) < 3 {
		return
	}
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		if o.reverse {
			a, b = poly[n-1-i], poly[(2*n-2-i)%n]
		}
		l := geometry.NewLine(o.device(a), o.device(b))
		if l.Start != l.End {
			o.lines = append(o.lines, l)
		}
	}
}

// addSubpath outlines a subpath with half width d. Open subpaths become
// one polygon which runs forward along the +N side and back along the -N
// side. Closed subpaths become two polygons, one for each side.
func (o *outline) addSubpath(sp polyline, d float64) {
	spans := sp.spans
	n := len(spans)
	if n == 0 {
		return
	}
	first, last := spans[0], spans[n-1]

	if sp.closed {
		for i := range n {
			o.corner(spans[i], spans[(i+1)%n], d, true)
		}
		o.flush()
		for i := n; i > 0; i-- {
			o.corner(spans[i-1], spans[i%n], d, false)
		}
		return
	}

	o.addCap(first.A, first.T.Mul(-1), d)
	o.emit(first.A.Add(first.N.Mul(d)))
	for i := 0; i+1 < n; i++ {
		o.corner(spans[i], spans[i+1], d, true)
	}
	o.emit(last.B.Add(last.N.Mul(d)))
	o.addCap(last.B, last.T, d)
	o.emit(last.B.Sub(last.N.Mul(d)))
	for i := n - 1; i > 0; i-- {
		o.corner(spans[i-1], spans[i], d, false)
	}
	o.emit(first.A.Sub(first.N.Mul(d)))
}

// addDot outlines a dash of length zero. Only round and square caps
// make such a dash visible.
func (o *outline) addDot(sp span, d float64) {
	switch o.Cap {
	case graphics.LineCapRound:
		o.addArc(sp.A, d, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
	case graphics.LineCapSquare:
		c, t, n := sp.A, sp.T.Mul(d), sp.N.Mul(d)
		o.emit(c.Add(t).Add(n), c.Add(t).Sub(n), c.Sub(t).Sub(n), c.Sub(t).Add(n))
	}
}

// corner emits the outline points at the corner where span a ends and
// span b starts. On the +N side (plus) the corner is passed from a to b,
// on the -N side from b to a. Joins are only drawn on the outer side;
// on the inner side the two offset lines are cut at their intersection.
func (o *outline) corner(a, b span, d float64, plus bool) {
	p := b.A
	sinTheta := a.T.X*b.T.Y - a.T.Y*b.T.X

	sign := 1.0
	if !plus {
		sign = -1
	}
	offA := p.Add(a.N.Mul(sign * d))
	offB := p.Add(b.N.Mul(sign * d))
	from, to := offA, offB
	if !plus {
		from, to = offB, offA
	}

	switch {
	case math.Abs(sinTheta) < collinear:
		o.emit(from, to)
	case (sinTheta > 0) == plus:
		if x, ok := innerIntersection(p, a.T, b.T, d, plus); ok {
			o.emit(x)
		} else {
			o.emit(from, to)
		}
	default:
		o.emit(from)
		o.addJoin(p, a.T, b.T, d, plus)
		o.emit(to)
	}
}

// innerIntersection returns the point where the two offset lines on the
// inner side of a corner meet.
func innerIntersection(p, t1, t2 vec.Vec2, d float64, plus bool) (vec.Vec2, bool) {
	cosTheta := t1.Dot(t2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	cosHalf := math.Sqrt((1 + cosTheta) / 2)
	if cosHalf < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -t1.Y - t2.Y, Y: t1.X + t2.X} // n1 + n2
	if !plus {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return p.Add(dir.Mul(d / (cosHalf * l))), true
}

// addCap emits the cap at p, where t points away from the line.
// The offset points on either side of p are emitted by the caller.
func (o *outline) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch o.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		o.emit(ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		o.addArc(p, d, n, -math.Pi, true)
	}
}

// addJoin emits the outer part of the join at p, between the incoming
// tangent t1 and the outgoing tangent t2.
func (o *outline) addJoin(p, t1, t2 vec.Vec2, d float64, plus bool) {
	cosTheta := t1.Dot(t2)
	sinTheta := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(sinTheta) < collinear {
		return
	}
	if cosTheta < cuspCosine {
		o.addCap(p, t1, d)
		o.addCap(p, t2.Mul(-1), d)
		return
	}

	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}

	switch o.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/cos(θ/2),
		// where θ is the turning angle.
		cosHalf := math.Sqrt((1 + cosTheta) / 2)
		if cosHalf > 0 && 1/cosHalf <= o.miterLimit()+1e-10 {
			bisector := n1.Add(n2)
			if !plus {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > minSpanLength {
				o.emit(p.Add(bisector.Mul(d / (cosHalf * l))))
			}
		}

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta < 0 {
			angle = -angle
		}
		if plus {
			o.addArc(p, d, n1, angle, false)
		} else {
			o.addArc(p, d, n2.Mul(-1), -angle, false)
		}
	}
}

func (o *outline) miterLimit() float64 {
	if o.MiterLimit > 0 {
		return o.MiterLimit
	}
	return defaultMiterLimit
}

// addArc emits points on the circle of radius r around center, starting
// in direction dir and turning by sweep radians. The number of points is
// chosen so that the chords stay within the flatness in device space.
func (o *outline) addArc(center vec.Vec2, r float64, dir vec.Vec2, sweep float64, includeStart bool) {
	devR := max(
		o.transformLinear(vec.Vec2{X: r}).Length(),
		o.transformLinear(vec.Vec2{Y: r}).Length())

	n := 1
	if eps := o.flatness(); devR > eps {
		// a chord over the angle φ deviates from the arc by r(1-cos(φ/2))
		step := 2 * math.Acos(1-eps/devR)
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		o.emit(center.Add(vec.Vec2{
			X: dir.X*cos - dir.Y*sin,
			Y: dir.X*sin + dir.Y*cos,
		}.Mul(r)))
	}
}

// dashed reports whether the dash pattern is usable.
func (s *Stroker) dashed() bool {
	total := 0.0
	for _, l := range s.Dash {
		if l < 0 {
			return false
		}
		total += l
	}
	return total > 0
}

// applyDash cuts the subpaths into dashes. A dash of length zero is
// returned as a single span with A == B, keeping the direction of the
// path at that point.
func (s *Stroker) applyDash(subpaths []polyline) []polyline {
	pattern := s.Dash
	k := len(pattern)
	period := 0.0
	for _, l := range pattern {
		period += l
	}
	if k%2 == 1 {
		period *= 2
	}
	phase := math.Mod(s.DashPhase, period)
	if phase < 0 {
		phase += period
	}

	var out []polyline
	for _, sp := range subpaths {
		if len(sp.spans) == 0 {
			continue
		}

		idx, skip := 0, phase
		for skip > 0 && skip >= pattern[idx%k] {
			skip -= pattern[idx%k]
			idx++
		}
		left := pattern[idx%k] - skip
		on := idx%2 == 0
		next := func() {
			idx++
			left = pattern[idx%k]
			on = idx%2 == 0
		}

		if on && left == 0 {
			seg := sp.spans[0]
			out = append(out, polyline{spans: []span{{A: seg.A, B: seg.A, T: seg.T, N: seg.N}}})
			next()
		}

		var dash []span
		firstDash := -1 // index into out of the first dash of sp
		startsOn := on
		endDash := func() {
			if len(dash) > 0 {
				if firstDash < 0 {
					firstDash = len(out)
				}
				out = append(out, polyline{spans: dash})
				dash = nil
			}
		}

		for _, seg := range sp.spans {
			length := seg.B.Sub(seg.A).Length()
			pos := 0.0
			for length-pos > left {
				end := pos + left
				if on {
					a := lerp(seg.A, seg.B, pos/length)
					b := lerp(seg.A, seg.B, end/length)
					if piece, ok := newSpan(a, b); ok {
						dash = append(dash, piece)
					} else if len(dash) == 0 {
						dash = append(dash, span{A: a, B: a, T: seg.T, N: seg.N})
					}
					endDash()
				}
				pos = end
				next()
			}
			left -= length - pos
			if on {
				if pos > 0 {
					seg.A = lerp(seg.A, seg.B, pos/length)
				}
				dash = append(dash, seg)
			}
		}

		// On a closed subpath, a dash running over the starting point
		// is joined to the first dash.
		if len(dash) > 0 && sp.closed && startsOn && firstDash >= 0 {
			out[firstDash].spans = append(dash, out[firstDash].spans...)
			dash = nil
		}
		endDash()
	}
	return out
}
