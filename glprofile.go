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

// Package glprofile extracts along-flow ice-sheet profiles from gridded
// ice-sheet model output and locates the simulated grounding line, the
// point where grounded ice starts to float.
//
// The grounding line is found as the zero crossing of the flotation signal
//
//	f(x) = 1 - (-topg) / (thk * rho_ice / rho_water)
//
// which is positive where the ice is thicker than needed to stay grounded
// and negative where it floats.
package glprofile

import (
	"fmt"

	"github.com/ctessum/unit"
)

// Version gives the version number.
const Version = "1.0.0"

// Mask classes written by PISM-style ice-sheet models.
const (
	MaskIceFreeBedrock = 0
	MaskGrounded       = 2
	MaskFloating       = 3
	MaskIceFreeOcean   = 4
)

// Densities holds the ice and sea water densities used for the
// flotation criterion. Both must have units of kg m⁻³.
type Densities struct {
	Ice, Water *unit.Unit
}

// Ratio returns rho_ice / rho_water.
func (d Densities) Ratio() (float64, error) {
	for _, v := range []struct {
		name string
		u    *unit.Unit
	}{{"ice density", d.Ice}, {"water density", d.Water}} {
		if v.u == nil {
			return 0, ConfigErrorf(v.name, "not set")
		}
		if err := v.u.Check(unit.KilogramPerMeter3); err != nil {
			return 0, ConfigErrorf(v.name, "%v", err)
		}
		if v.u.Value() <= 0 {
			return 0, ConfigErrorf(v.name, "must be positive but is %g", v.u.Value())
		}
	}
	return d.Ice.Value() / d.Water.Value(), nil
}

// String returns a human-readable description of d.
func (d Densities) String() string {
	return fmt.Sprintf("rho_ice=%v, rho_water=%v", d.Ice, d.Water)
}
