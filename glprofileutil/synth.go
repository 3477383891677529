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

package glprofileutil

import (
	"fmt"
	"os"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/glprofile"
	"github.com/spatialmodel/glprofile/mismip"
)

// synthRows is the number of transverse rows in a synthetic file,
// matching flow-line runs of PISM.
const synthRows = 3

// Synth writes a synthetic model output file for experiment exp at step
// to path. The file has dimensions (time, y, x) with the given number
// of records and points; only the last record holds ice.
func Synth(path, exp string, step, points, records int) error {
	e, err := mismip.ParseExperiment(exp)
	if err != nil {
		return err
	}
	if err = e.CheckStep(step); err != nil {
		return err
	}
	if points < 2 {
		return glprofile.ConfigErrorf("Synth.Points", "need at least 2 points; got %d", points)
	}
	if records < 1 {
		return glprofile.ConfigErrorf("Synth.Records", "need at least 1 record; got %d", records)
	}

	fields, err := SynthFields(e, step, points, records)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("glprofile: creating synthetic file: %v", err)
	}
	dims := []string{"time", "y", "x"}
	lengths := []int{0, synthRows, points}
	varDims := map[string][]string{
		"x":     {"x"},
		"y":     {"y"},
		"thk":   dims,
		"usurf": dims,
		"topg":  dims,
		"mask":  dims,
	}
	if err := glprofile.WriteFields(f, dims, lengths, varDims, fields); err != nil {
		f.Close()
		return err
	}
	Log.WithField("output", path).Info("wrote synthetic model output")
	return f.Close()
}

// SynthFields returns the fields written by Synth.
func SynthFields(e mismip.Experiment, step, points, records int) (glprofile.Fields, error) {
	dx := mismip.L / float64(points-1)
	x := make([]float64, points)
	for i := range x {
		x[i] = dx * float64(i)
	}
	p, err := mismip.SteadyProfile(e, step, x)
	if err != nil {
		return nil, err
	}

	fields := glprofile.Fields{
		"x":     sparse.ZerosDense(points),
		"y":     sparse.ZerosDense(synthRows),
		"thk":   sparse.ZerosDense(records, synthRows, points),
		"usurf": sparse.ZerosDense(records, synthRows, points),
		"topg":  sparse.ZerosDense(records, synthRows, points),
		"mask":  sparse.ZerosDense(records, synthRows, points),
	}
	copy(fields["x"].Elements, x)
	for j := 0; j < synthRows; j++ {
		fields["y"].Elements[j] = dx * float64(j-1)
	}
	for t := 0; t < records; t++ {
		for j := 0; j < synthRows; j++ {
			for i := range x {
				fields["topg"].Set(p.Topg[i], t, j, i)
				if t != records-1 {
					if p.Topg[i] < 0 {
						fields["mask"].Set(glprofile.MaskIceFreeOcean, t, j, i)
					} else {
						fields["mask"].Set(glprofile.MaskIceFreeBedrock, t, j, i)
					}
					continue
				}
				fields["thk"].Set(p.Thk[i], t, j, i)
				fields["mask"].Set(float64(p.Mask[i]), t, j, i)
				if p.Usurf.Valid(i) {
					fields["usurf"].Set(p.Usurf.Data[i], t, j, i)
				}
			}
		}
	}
	return fields, nil
}
