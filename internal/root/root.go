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

// Package root finds zeros of continuous scalar functions.
package root

import (
	"errors"
	"math"
)

var (
	// ErrNotBracketed is returned when f has the same sign at both ends
	// of the search interval.
	ErrNotBracketed = errors.New("root: interval does not bracket a sign change")

	// ErrMaxIterations is returned when the tolerance is not reached
	// within the iteration budget.
	ErrMaxIterations = errors.New("root: maximum number of iterations reached")

	// ErrNaN is returned when f evaluates to NaN.
	ErrNaN = errors.New("root: function value is NaN")
)

// Settings control the iteration.
type Settings struct {
	// Tolerance is the largest |f(x)| accepted as a root.
	Tolerance float64

	// MaxIterations is the maximum number of function evaluations
	// after the two end points.
	MaxIterations int
}

// Result holds the final iterate of a solve.
type Result struct {
	X, F       float64
	Iterations int
}

// Illinois finds a zero of f in [a, b] using the Illinois variant of
// the regula falsi method. f(a) and f(b) must differ in sign. On error
// the returned Result holds the last iterate.
func Illinois(f func(float64) float64, a, b float64, s Settings) (Result, error) {
	fa, fb := f(a), f(b)
	switch {
	case math.IsNaN(fa):
		return Result{X: a, F: fa}, ErrNaN
	case math.IsNaN(fb):
		return Result{X: b, F: fb}, ErrNaN
	case math.Abs(fa) <= s.Tolerance:
		return Result{X: a, F: fa}, nil
	case math.Abs(fb) <= s.Tolerance:
		return Result{X: b, F: fb}, nil
	case math.Signbit(fa) == math.Signbit(fb):
		return Result{X: a, F: fa}, ErrNotBracketed
	}

	r := Result{X: a, F: fa}
	side := 0
	for r.Iterations < s.MaxIterations {
		r.Iterations++
		r.X = (a*fb - b*fa) / (fb - fa)
		r.F = f(r.X)
		if math.IsNaN(r.F) {
			return r, ErrNaN
		}
		if math.Abs(r.F) <= s.Tolerance {
			return r, nil
		}
		if math.Signbit(r.F) == math.Signbit(fb) {
			b, fb = r.X, r.F
			if side == -1 {
				fa /= 2
			}
			side = -1
		} else {
			a, fa = r.X, r.F
			if side == 1 {
				fb /= 2
			}
			side = 1
		}
		if a == b {
			break
		}
	}
	return r, ErrMaxIterations
}

// SignChanges returns every index i for which fs[i] and fs[i+1] bracket
// a zero. NaN values never bracket.
func SignChanges(fs []float64) []int {
	var o []int
	for i := 0; i+1 < len(fs); i++ {
		if math.IsNaN(fs[i]) || math.IsNaN(fs[i+1]) {
			continue
		}
		if fs[i] == 0 || fs[i+1] == 0 || math.Signbit(fs[i]) != math.Signbit(fs[i+1]) {
			o = append(o, i)
		}
	}
	return o
}

// Secant returns the zero of the straight line through (x0, f0) and
// (x1, f1).
func Secant(x0, x1, f0, f1 float64) float64 {
	switch {
	case f0 == 0:
		return x0
	case f1 == 0 || f0 == f1:
		return x1
	}
	return x0 - f0*(x1-x0)/(f1-f0)
}

// Nearest returns the index i from brackets whose secant zero between
// (xs[i], fs[i]) and (xs[i+1], fs[i+1]) is closest to x. Ties go to the
// lower index. ok is false if brackets is empty or x is NaN.
func Nearest(xs, fs []float64, brackets []int, x float64) (i int, ok bool) {
	if math.IsNaN(x) {
		return 0, false
	}
	best := math.Inf(1)
	for _, j := range brackets {
		d := math.Abs(Secant(xs[j], xs[j+1], fs[j], fs[j+1]) - x)
		if d < best || !ok {
			best, i, ok = d, j, true
		}
	}
	return i, ok
}
