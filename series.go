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

import "gonum.org/v1/gonum/floats"

// ProfileSeries holds the arrays needed to draw a profile, with
// distances divided by a display scale.
type ProfileSeries struct {
	X     []float64
	Topg  []float64
	Usurf Masked
	Lsrf  Masked
}

// Series returns the plot-ready arrays of p with distances divided by
// scale, e.g. 1000 for kilometers. Masks are shared with p.
func (p *Profile) Series(scale float64) ProfileSeries {
	x := append([]float64(nil), p.X...)
	floats.Scale(1/scale, x)
	return ProfileSeries{
		X:     x,
		Topg:  append([]float64(nil), p.Topg...),
		Usurf: p.Usurf,
		Lsrf:  p.Lsrf,
	}
}

// Points returns the defined points of m paired with the coordinates x.
func (m Masked) Points(x []float64) (xs, ys []float64) {
	for i, v := range m.Data {
		if m.Mask[i] {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, v)
	}
	return xs, ys
}

// MaxX returns the largest distance in s, or 0 if s is empty.
func (s ProfileSeries) MaxX() float64 {
	if len(s.X) == 0 {
		return 0
	}
	return floats.Max(s.X)
}
