/*
Copyright © 2019 the glprofile authors.
This file is part of glprofile.

glprofile is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

glprofile is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with glprofile.  If not, see <http://www.gnu.org/licenses/>.
*/

package glprofile

import (
	"math"

	"github.com/ctessum/sparse"
)

// Fields holds raw model output arrays by variable name. Arrays have
// rank 1 (x), rank 2 (y, x) or rank 3 (time, y, x).
type Fields map[string]*sparse.DenseArray

// ProfileFields are the variables needed to build a profile.
var ProfileFields = []string{"x", "thk", "usurf", "topg", "mask"}

// ProfileConfig specifies how a profile is cut out of the model output.
type ProfileConfig struct {
	// TimeIndex is the time record used for rank-3 fields. Negative
	// values count back from the last record, so -1 is the last one.
	TimeIndex int

	// Row is the transverse (y) index of the profile.
	Row int

	// FloatingMask and IceFreeOceanMask are the mask values of floating
	// ice and of ice-free ocean.
	FloatingMask, IceFreeOceanMask int
}

// DefaultProfileConfig returns the slicing used for the MISMIP flow-line
// setup: the last time record of the second row.
func DefaultProfileConfig() *ProfileConfig {
	return &ProfileConfig{
		TimeIndex:        -1,
		Row:              1,
		FloatingMask:     MaskFloating,
		IceFreeOceanMask: MaskIceFreeOcean,
	}
}

// Masked is a series where Mask[i] == true marks Data[i] as undefined,
// for example the ice surface over open ocean.
type Masked struct {
	Data []float64
	Mask []bool
}

func newMasked(data []float64) Masked {
	return Masked{Data: data, Mask: make([]bool, len(data))}
}

// Len returns the number of points in the series.
func (m Masked) Len() int { return len(m.Data) }

// Valid returns whether point i is defined.
func (m Masked) Valid(i int) bool { return !m.Mask[i] }

// At returns the value at point i and whether it is defined.
func (m Masked) At(i int) (float64, bool) { return m.Data[i], !m.Mask[i] }

// Profile is a one-dimensional along-flow cross section of the model
// output. All slices have the same length as X.
type Profile struct {
	X    []float64 // distance along the flow line
	Thk  []float64 // ice thickness
	Topg []float64 // bed elevation
	Mask []int     // mask class

	Usurf Masked // upper surface elevation, undefined over open ocean
	Lsrf  Masked // lower surface elevation, undefined over open ocean
}

// Len returns the number of points in the profile.
func (p *Profile) Len() int { return len(p.X) }

// Extract reduces fields to the profile selected by c. The lower
// surface of floating ice is placed at its flotation depth
// -(rho_ice/rho_water)*thk; elsewhere it follows the bed.
func (c *ProfileConfig) Extract(fields Fields, d Densities) (*Profile, error) {
	ratio, err := d.Ratio()
	if err != nil {
		return nil, err
	}
	for _, name := range ProfileFields {
		if fields[name] == nil {
			return nil, shapeErrorf(name, "missing")
		}
	}

	xa := fields["x"]
	if err := checkArray("x", xa); err != nil {
		return nil, err
	}
	if len(xa.Shape) != 1 {
		return nil, shapeErrorf("x", "want rank 1 but have rank %d", len(xa.Shape))
	}
	p := &Profile{X: append([]float64(nil), xa.Elements...)}
	n := len(p.X)

	sliced := make(map[string][]float64)
	for _, name := range ProfileFields[1:] {
		s, err := c.slice(name, fields[name])
		if err != nil {
			return nil, err
		}
		if len(s) != n {
			return nil, shapeErrorf(name, "length %d does not match length %d of x", len(s), n)
		}
		sliced[name] = s
	}
	p.Thk = sliced["thk"]
	p.Topg = sliced["topg"]
	p.Mask = make([]int, n)
	for i, v := range sliced["mask"] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, shapeErrorf("mask", "undefined value at index %d", i)
		}
		p.Mask[i] = int(math.Round(v))
	}

	p.Usurf = newMasked(sliced["usurf"])
	p.Lsrf = newMasked(append([]float64(nil), p.Topg...))
	for i, m := range p.Mask {
		if m == c.FloatingMask {
			p.Lsrf.Data[i] = -ratio * p.Thk[i]
		}
		if m == c.IceFreeOceanMask {
			p.Usurf.Mask[i] = true
			p.Lsrf.Mask[i] = true
		}
		if math.IsNaN(p.Usurf.Data[i]) {
			p.Usurf.Mask[i] = true
		}
		if math.IsNaN(p.Lsrf.Data[i]) {
			p.Lsrf.Mask[i] = true
		}
	}
	return p, nil
}

// slice returns the rank-1 profile of a, taking record c.TimeIndex and
// row c.Row as needed.
func (c *ProfileConfig) slice(name string, a *sparse.DenseArray) ([]float64, error) {
	if err := checkArray(name, a); err != nil {
		return nil, err
	}
	var t, row, nt, ny, nx int
	switch len(a.Shape) {
	case 1:
		return append([]float64(nil), a.Elements...), nil
	case 2:
		ny, nx = a.Shape[0], a.Shape[1]
	case 3:
		nt, ny, nx = a.Shape[0], a.Shape[1], a.Shape[2]
		t = c.TimeIndex
		if t < 0 {
			t += nt
		}
		if t < 0 || t >= nt {
			return nil, shapeErrorf(name, "time index %d out of range for %d records", c.TimeIndex, nt)
		}
	default:
		return nil, shapeErrorf(name, "rank %d is not 1, 2 or 3", len(a.Shape))
	}
	row = c.Row
	if row < 0 || row >= ny {
		return nil, shapeErrorf(name, "row %d out of range for %d rows", c.Row, ny)
	}
	start := (t*ny + row) * nx
	return append([]float64(nil), a.Elements[start:start+nx]...), nil
}

// checkArray makes sure that the elements of a match its shape.
func checkArray(name string, a *sparse.DenseArray) error {
	n := 1
	for _, l := range a.Shape {
		if l < 0 {
			return shapeErrorf(name, "negative dimension length %d", l)
		}
		n *= l
	}
	if len(a.Shape) == 0 {
		n = 0
	}
	if len(a.Elements) != n {
		return shapeErrorf(name, "shape %v needs %d elements but array has %d", a.Shape, n, len(a.Elements))
	}
	return nil
}
