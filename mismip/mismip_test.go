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
package mismip

import (
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/glprofile"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestParseExperiment(t *testing.T) {
	for _, s := range []string{"1a", "1b", "2a", "2b", "3a", "3b"} {
		e, err := ParseExperiment(s)
		if err != nil {
			t.Fatal(err)
		}
		if string(e) != s {
			t.Errorf("have %s, want %s", e, s)
		}
	}
	for _, s := range []string{"", "4a", "1A", "1"} {
		_, err := ParseExperiment(s)
		var cfgErr *glprofile.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%q: want ConfigurationError, have %v", s, err)
		}
	}
}

func TestSteps(t *testing.T) {
	want := map[Experiment]int{Exp1a: 9, Exp1b: 8, Exp2a: 9, Exp2b: 8, Exp3a: 13, Exp3b: 15}
	for e, n := range want {
		if e.Steps() != n {
			t.Errorf("%s: have %d steps, want %d", e, e.Steps(), n)
		}
		for _, s := range []int{0, n + 1, -1} {
			var cfgErr *glprofile.ConfigurationError
			if err := e.CheckStep(s); !errors.As(err, &cfgErr) {
				t.Errorf("%s step %d: want ConfigurationError, have %v", e, s, err)
			}
			if _, err := GroundingLine(e, s); err == nil {
				t.Errorf("%s step %d: GroundingLine should fail", e, s)
			}
		}
	}
	if err := Experiment("9z").CheckStep(1); err == nil {
		t.Error("unknown experiment should fail")
	}
}

func TestRateFactor(t *testing.T) {
	for s := 1; s <= Exp1b.Steps(); s++ {
		a, err := Exp1b.RateFactor(s)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Exp1a.RateFactor(9 - s)
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("step %d: 1b rate factor %g != 1a step %d rate factor %g", s, a, 9-s, b)
		}
	}
	if a, _ := Exp3a.RateFactor(7); a != 2.5e-26 {
		t.Errorf("3a step 7: %g", a)
	}
}

func TestAdvancing(t *testing.T) {
	tests := []struct {
		e    Experiment
		step int
		want bool
	}{
		{Exp1a, 1, true},
		{Exp1a, 9, true},
		{Exp1b, 1, false},
		{Exp2b, 8, false},
		{Exp3a, 7, true},
		{Exp3a, 8, false},
		{Exp3b, 8, true},
		{Exp3b, 9, false},
	}
	for _, test := range tests {
		have, err := test.e.Advancing(test.step)
		if err != nil {
			t.Fatal(err)
		}
		if have != test.want {
			t.Errorf("%s step %d: have %v, want %v", test.e, test.step, have, test.want)
		}
	}
}

func TestGroundingLine(t *testing.T) {
	tests := []struct {
		e    Experiment
		step int
		want float64 // km
	}{
		{Exp1a, 1, 1052.5},
		{Exp1a, 9, 1746.2},
		{Exp2a, 1, 1193.4},
		{Exp2a, 7, 1774.3},
		{Exp3a, 1, 721.9},
		{Exp3a, 6, 926.1},  // advancing: smallest stable position
		{Exp3a, 8, 1412.4}, // retreating: largest stable position
		{Exp3b, 8, 745.7},
	}
	for _, test := range tests {
		xg, err := GroundingLine(test.e, test.step)
		if err != nil {
			t.Fatalf("%s step %d: %v", test.e, test.step, err)
		}
		if math.Abs(xg/1000-test.want) > 1 {
			t.Errorf("%s step %d: have %.1f km, want %.1f km", test.e, test.step, xg/1000, test.want)
		}
		f, _ := test.e.fluxBalance(test.step)
		if r := f(xg) / (AccumulationRate.Value() * xg); math.Abs(r) > 1.e-9 {
			t.Errorf("%s step %d: relative flux imbalance %g", test.e, test.step, r)
		}
	}
}

func TestGroundingLineAdvance(t *testing.T) {
	prev := 0.
	for s := 1; s <= Exp1a.Steps(); s++ {
		xg, err := GroundingLine(Exp1a, s)
		if err != nil {
			t.Fatal(err)
		}
		if xg <= prev {
			t.Errorf("step %d: %g is not beyond %g", s, xg, prev)
		}
		prev = xg

		if s == Exp1a.Steps() {
			continue
		}
		// Retreat step 9-s runs with the same ice softness.
		back, err := GroundingLine(Exp1b, 9-s)
		if err != nil {
			t.Fatal(err)
		}
		if different(back, xg, 1.e-12) {
			t.Errorf("1b step %d: %g != 1a step %d: %g", 9-s, back, s, xg)
		}
	}
}

func TestGroundingLineOutOfDomain(t *testing.T) {
	for _, test := range []struct {
		e    Experiment
		step int
	}{{Exp2a, 8}, {Exp2a, 9}, {Exp2b, 1}} {
		_, err := GroundingLine(test.e, test.step)
		var cfgErr *glprofile.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s step %d: want ConfigurationError, have %v", test.e, test.step, err)
		}
	}
}

func TestBed(t *testing.T) {
	if b := Exp1a.Bed(0); b != 720 {
		t.Errorf("1a divide: %g", b)
	}
	if b := Exp1a.Bed(750e3); different(b, -58.5, 1.e-12) {
		t.Errorf("1a at 750 km: %g", b)
	}
	if b := Exp3a.Bed(0); b != 729 {
		t.Errorf("3a divide: %g", b)
	}
	if h := Exp1a.FlotationThickness(0); h != 0 {
		t.Errorf("flotation thickness above sea level: %g", h)
	}
	if h := Exp1a.FlotationThickness(750e3); different(h, 65, 1.e-12) {
		t.Errorf("flotation thickness at 750 km: %g", h)
	}
}

func TestDensities(t *testing.T) {
	r, err := Densities().Ratio()
	if err != nil {
		t.Fatal(err)
	}
	if different(r, 0.9, 1.e-15) {
		t.Errorf("ratio %g", r)
	}
}
