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

package filter

import (
	"slices"
)

// DefaultName is the name of the filter used when none is given.
const DefaultName = "lanczos"

var named = map[string]func() (*DynamicFilter, error){
	"box": func() (*DynamicFilter, error) {
		return NewSeparable("box", []Polynomial{{1}}, []Polynomial{{1}})
	},
	"tent": func() (*DynamicFilter, error) {
		return radial("tent", Polynomial{1, -1})
	},
	"bspline": func() (*DynamicFilter, error) {
		return mitchellNetravali("bspline", 1, 0)
	},
	"mitchell": func() (*DynamicFilter, error) {
		return mitchellNetravali("mitchell", 1.0/3, 1.0/3)
	},
	"catmull-rom": func() (*DynamicFilter, error) {
		return mitchellNetravali("catmull-rom", 0, 0.5)
	},
	"lanczos": Lanczos,
}

// Names lists the filters available through [Named], in alphabetical
// order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Named returns one of the built-in filters.
func Named(name string) (*DynamicFilter, error) {
	mk, ok := named[name]
	if !ok {
		return nil, &ConfigError{Filter: name, Reason: "unknown filter"}
	}
	return mk()
}

// mitchellNetravali returns the cubic filter from the family of
// Mitchell and Netravali (1988) with parameters b and c.
func mitchellNetravali(name string, b, c float64) (*DynamicFilter, error) {
	return radial(name, mitchellNetravaliRings(b, c)...)
}

// mitchellNetravaliRings returns the kernel on 0 <= |x| < 1 and on
// 1 <= |x| < 2, each in the local coordinate |x|-k.
func mitchellNetravaliRings(b, c float64) []Polynomial {
	inner := Polynomial{
		(6 - 2*b) / 6,
		0,
		(-18 + 12*b + 6*c) / 6,
		(12 - 9*b - 6*c) / 6,
	}
	// in terms of |x|
	outer := Polynomial{
		(8*b + 24*c) / 6,
		(-12*b - 48*c) / 6,
		(6*b + 30*c) / 6,
		(-b - 6*c) / 6,
	}
	return []Polynomial{inner, compose(outer, 1, 1)}
}

// radial returns the separable filter whose factors are the even function
// given by rings[k](|x|-k) for k <= |x| < k+1.
func radial(name string, rings ...Polynomial) (*DynamicFilter, error) {
	r := len(rings)
	pieces := make([]Polynomial, 2*r)
	for k, p := range rings {
		// right of the centre, |x| = k + t
		pieces[r+k] = p
		// left of the centre, |x| = k + 1 - t
		pieces[r-1-k] = compose(p, -1, 1)
	}
	return NewSeparable(name, pieces, pieces)
}

// compose returns the polynomial t ↦ p(a·t + b).
func compose(p Polynomial, a, b float64) Polynomial {
	res := make(Polynomial, len(p))
	// Horner's scheme on polynomials
	for i := len(p) - 1; i >= 0; i-- {
		next := make(Polynomial, len(p))
		for j, c := range res {
			if c == 0 {
				continue
			}
			next[j] += c * b
			if j+1 < len(next) {
				next[j+1] += c * a
			}
		}
		next[0] += p[i]
		res = next
	}
	return res
}
