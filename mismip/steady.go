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
	"math"

	"github.com/spatialmodel/glprofile"
)

// Shape parameters of the synthetic steady profile.
const (
	divideExcess = 2500.0 // thickness above flotation at the divide [m]
	shelfDecay   = 200e3  // e-folding length of shelf thinning [m]
	shelfLength  = 300e3  // distance from grounding line to calving front [m]
)

// SteadyProfile returns a synthetic profile sampled at x (in meters,
// increasing) whose flotation signal is exactly zero at the analytic
// grounding line of e at the given step. Ice is grounded up to the
// grounding line, floats for shelfLength beyond it, and the ocean past
// the calving front is ice free. It is meant for exercising the
// grounding-line locator, not as a solution of the ice flow equations.
func SteadyProfile(e Experiment, step int, x []float64) (*glprofile.Profile, error) {
	xg, err := GroundingLine(e, step)
	if err != nil {
		return nil, err
	}
	r := RhoIce / RhoWater
	hg := e.FlotationThickness(xg)
	n := len(x)
	p := &glprofile.Profile{
		X:     append([]float64(nil), x...),
		Thk:   make([]float64, n),
		Topg:  make([]float64, n),
		Mask:  make([]int, n),
		Usurf: glprofile.Masked{Data: make([]float64, n), Mask: make([]bool, n)},
		Lsrf:  glprofile.Masked{Data: make([]float64, n), Mask: make([]bool, n)},
	}
	for i, xi := range x {
		b := e.Bed(xi)
		hf := e.FlotationThickness(xi)
		p.Topg[i] = b
		p.Lsrf.Data[i] = b
		switch {
		case xi <= xg:
			p.Mask[i] = glprofile.MaskGrounded
			p.Thk[i] = hf + divideExcess*math.Sqrt(1-xi/xg)
			p.Usurf.Data[i] = b + p.Thk[i]
		case xi <= xg+shelfLength:
			p.Mask[i] = glprofile.MaskFloating
			p.Thk[i] = math.Min(hg*math.Exp(-(xi-xg)/shelfDecay), 0.9*hf)
			p.Usurf.Data[i] = (1 - r) * p.Thk[i]
			p.Lsrf.Data[i] = -r * p.Thk[i]
		default:
			p.Mask[i] = glprofile.MaskIceFreeOcean
			p.Usurf.Mask[i] = true
			p.Lsrf.Mask[i] = true
		}
	}
	return p, nil
}
