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

	"github.com/spatialmodel/glprofile/internal/root"
	"gonum.org/v1/gonum/interp"
)

// SolverConfig controls the grounding-line solve.
type SolverConfig struct {
	// Tolerance is the largest |f(x)| accepted at the grounding line.
	Tolerance float64

	// MaxIterations is the iteration budget of the solver.
	MaxIterations int
}

// DefaultSolverConfig returns the default solver settings.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{Tolerance: 1.49012e-08, MaxIterations: 100}
}

// FlotationSignal returns the flotation signal
// f = 1 - (-topg) / (thk * rho_ice / rho_water) at every point of p
// that carries ice. Points with zero or undefined thickness are left out,
// so xs may be shorter than p.X.
func FlotationSignal(p *Profile, d Densities) (xs, f []float64, err error) {
	ratio, err := d.Ratio()
	if err != nil {
		return nil, nil, err
	}
	if len(p.Thk) != len(p.X) || len(p.Topg) != len(p.X) {
		return nil, nil, shapeErrorf("", "profile arrays have lengths x=%d, thk=%d, topg=%d",
			len(p.X), len(p.Thk), len(p.Topg))
	}
	for i, x := range p.X {
		thk, topg := p.Thk[i], p.Topg[i]
		if !(thk > 0) || math.IsInf(thk, 0) || math.IsNaN(topg) || math.IsNaN(x) {
			continue
		}
		if len(xs) > 0 && x <= xs[len(xs)-1] {
			return nil, nil, shapeErrorf("x", "not strictly increasing at index %d", i)
		}
		xs = append(xs, x)
		f = append(f, 1-(-topg)/(thk*ratio))
	}
	if len(xs) < 2 {
		return nil, nil, shapeErrorf("thk", "%d ice-covered points; need at least 2", len(xs))
	}
	return xs, f, nil
}

// Locate returns the grounding-line position of p: the zero of the
// piecewise-linear interpolated flotation signal nearest seed. seed is
// usually the analytic grounding-line position. A *ConvergenceError is
// returned if the signal has no zero or the solve does not reach
// s.Tolerance within s.MaxIterations. A non-finite seed is a
// *ConfigurationError.
func Locate(p *Profile, seed float64, d Densities, s SolverConfig) (float64, error) {
	if math.IsNaN(seed) || math.IsInf(seed, 0) {
		return math.NaN(), ConfigErrorf("seed", "must be finite; got %g", seed)
	}
	xs, f, err := FlotationSignal(p, d)
	if err != nil {
		return math.NaN(), err
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, f); err != nil {
		return math.NaN(), shapeErrorf("x", "%v", err)
	}

	i, ok := root.Nearest(xs, f, root.SignChanges(f), seed)
	if !ok {
		return math.NaN(), &ConvergenceError{
			Seed:     seed,
			Last:     seed,
			Residual: pl.Predict(seed),
			Msg:      "flotation signal does not change sign within the profile",
		}
	}
	r, err := root.Illinois(pl.Predict, xs[i], xs[i+1], root.Settings{
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	})
	if err != nil {
		return math.NaN(), &ConvergenceError{
			Seed:       seed,
			Last:       r.X,
			Residual:   r.F,
			Iterations: r.Iterations,
			Msg:        err.Error(),
		}
	}
	return r.X, nil
}
