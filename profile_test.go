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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

const testTolerance = 1.e-10

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func testDensities() Densities {
	return Densities{
		Ice:   unit.New(900, unit.KilogramPerMeter3),
		Water: unit.New(1000, unit.KilogramPerMeter3),
	}
}

func dense(vals ...float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(vals))
	copy(a.Elements, vals)
	return a
}

// fivePoint returns a five-point profile whose flotation signal
// changes sign between x = 1 and x = 2.
func fivePoint() Fields {
	return Fields{
		"x":     dense(0, 1, 2, 3, 4),
		"topg":  dense(-100, -150, -200, -250, -300),
		"thk":   dense(500, 400, 200, 150, 0),
		"usurf": dense(400, 250, 20, 15, 999),
		"mask": dense(MaskGrounded, MaskGrounded, MaskFloating, MaskFloating,
			MaskIceFreeOcean),
	}
}

func TestExtract(t *testing.T) {
	p, err := DefaultProfileConfig().Extract(fivePoint(), testDensities())
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 5 {
		t.Fatalf("length: have %d, want 5", p.Len())
	}
	t.Run("masking", func(t *testing.T) {
		for i, m := range p.Mask {
			if m != MaskIceFreeOcean {
				continue
			}
			if p.Usurf.Valid(i) || p.Lsrf.Valid(i) {
				t.Errorf("point %d is ice-free ocean but surfaces are defined", i)
			}
		}
		if p.Usurf.Valid(4) || p.Lsrf.Valid(4) {
			t.Error("usurf[4] and lsrf[4] should be undefined")
		}
	})
	t.Run("flotation depth", func(t *testing.T) {
		for i, m := range p.Mask {
			if m != MaskFloating {
				continue
			}
			v, ok := p.Lsrf.At(i)
			if !ok {
				t.Errorf("lsrf[%d] should be defined", i)
			}
			if different(v, -0.9*p.Thk[i], testTolerance) {
				t.Errorf("lsrf[%d]: have %g, want %g", i, v, -0.9*p.Thk[i])
			}
		}
	})
	t.Run("grounded", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if v, _ := p.Lsrf.At(i); v != p.Topg[i] {
				t.Errorf("lsrf[%d]: have %g, want bed %g", i, v, p.Topg[i])
			}
			if v, _ := p.Usurf.At(i); v != fivePoint()["usurf"].Elements[i] {
				t.Errorf("usurf[%d] = %g", i, v)
			}
		}
	})
}

func TestExtractShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(Fields)
		field  string
	}{
		{
			name:   "length mismatch",
			modify: func(f Fields) { f["thk"] = dense(1, 2, 3, 4) },
			field:  "thk",
		},
		{
			name:   "missing",
			modify: func(f Fields) { delete(f, "topg") },
			field:  "topg",
		},
		{
			name:   "x rank",
			modify: func(f Fields) { f["x"] = sparse.ZerosDense(1, 5) },
			field:  "x",
		},
		{
			name:   "rank 4",
			modify: func(f Fields) { f["usurf"] = sparse.ZerosDense(1, 1, 1, 5) },
			field:  "usurf",
		},
		{
			name: "bad elements",
			modify: func(f Fields) {
				f["topg"] = &sparse.DenseArray{Elements: make([]float64, 3), Shape: []int{5}}
			},
			field: "topg",
		},
		{
			name:   "undefined mask",
			modify: func(f Fields) { f["mask"].Elements[2] = math.NaN() },
			field:  "mask",
		},
		{
			name:   "row",
			modify: func(f Fields) { f["thk"] = sparse.ZerosDense(1, 5) },
			field:  "thk",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := fivePoint()
			test.modify(f)
			p, err := DefaultProfileConfig().Extract(f, testDensities())
			if p != nil {
				t.Error("profile should be nil")
			}
			var shapeErr *DataShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("want DataShapeError, have %v", err)
			}
			if shapeErr.Field != test.field {
				t.Errorf("field: have %s, want %s", shapeErr.Field, test.field)
			}
		})
	}
}

func TestExtractSlicing(t *testing.T) {
	const nt, ny, nx = 3, 2, 4
	fields := Fields{"x": dense(0, 1, 2, 3)}
	for _, name := range []string{"thk", "usurf", "topg", "mask"} {
		a := sparse.ZerosDense(nt, ny, nx)
		for k := 0; k < nt; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					a.Set(float64(100*k+10*j+i), k, j, i)
				}
			}
		}
		fields[name] = a
	}
	// Keep the mask away from the floating and ocean classes.
	fields["mask"] = sparse.ZerosDense(nt, ny, nx)

	tests := []struct {
		timeIndex, row int
		want           float64
	}{
		{timeIndex: -1, row: 1, want: 210},
		{timeIndex: 0, row: 0, want: 0},
		{timeIndex: 1, row: 1, want: 110},
		{timeIndex: -3, row: 0, want: 0},
	}
	for _, test := range tests {
		c := DefaultProfileConfig()
		c.TimeIndex, c.Row = test.timeIndex, test.row
		p, err := c.Extract(fields, testDensities())
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < nx; i++ {
			if p.Thk[i] != test.want+float64(i) {
				t.Errorf("time %d, row %d: thk[%d] = %g, want %g",
					test.timeIndex, test.row, i, p.Thk[i], test.want+float64(i))
			}
		}
	}

	for _, ti := range []int{3, -4} {
		c := DefaultProfileConfig()
		c.TimeIndex = ti
		if _, err := c.Extract(fields, testDensities()); err == nil {
			t.Errorf("time index %d should be out of range", ti)
		}
	}
}

func TestExtractFillValue(t *testing.T) {
	f := fivePoint()
	f["usurf"].Elements[1] = math.NaN()
	p, err := DefaultProfileConfig().Extract(f, testDensities())
	if err != nil {
		t.Fatal(err)
	}
	if p.Usurf.Valid(1) {
		t.Error("usurf[1] should be undefined")
	}
	if !p.Lsrf.Valid(1) {
		t.Error("lsrf[1] should be defined")
	}
}

func TestDensities(t *testing.T) {
	r, err := testDensities().Ratio()
	if err != nil {
		t.Fatal(err)
	}
	if different(r, 0.9, testTolerance) {
		t.Errorf("ratio: have %g, want 0.9", r)
	}

	bad := []Densities{
		{Water: unit.New(1000, unit.KilogramPerMeter3)},
		{Ice: unit.New(900, unit.MeterPerSecond), Water: unit.New(1000, unit.KilogramPerMeter3)},
		{Ice: unit.New(900, unit.KilogramPerMeter3), Water: unit.New(-1, unit.KilogramPerMeter3)},
	}
	for i, d := range bad {
		var cfgErr *ConfigurationError
		if _, err := d.Ratio(); !errors.As(err, &cfgErr) {
			t.Errorf("%d: want ConfigurationError, have %v", i, err)
		}
		if _, err := DefaultProfileConfig().Extract(fivePoint(), d); err == nil {
			t.Errorf("%d: extraction should fail", i)
		}
	}
}

func TestSeries(t *testing.T) {
	f := fivePoint()
	f["x"] = dense(0, 1000, 2000, 3000, 4000)
	p, err := DefaultProfileConfig().Extract(f, testDensities())
	if err != nil {
		t.Fatal(err)
	}
	s := p.Series(1000)
	if s.MaxX() != 4 {
		t.Errorf("max x: have %g, want 4", s.MaxX())
	}
	if p.X[4] != 4000 {
		t.Error("scaling should not modify the profile")
	}
	xs, ys := s.Usurf.Points(s.X)
	if len(xs) != 4 || len(ys) != 4 {
		t.Fatalf("have %d points, want 4", len(xs))
	}
	if xs[3] != 3 || ys[3] != 15 {
		t.Errorf("last point: have (%g, %g), want (3, 15)", xs[3], ys[3])
	}
}
