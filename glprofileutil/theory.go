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
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spatialmodel/glprofile"
	"github.com/spatialmodel/glprofile/mismip"
)

// Theory writes the theoretical grounding-line position of experiment
// exp at step to w, or a table of all steps if step is 0.
func Theory(w io.Writer, exp string, step int) error {
	e, err := mismip.ParseExperiment(exp)
	if err != nil {
		return err
	}
	if step != 0 {
		xg, err := mismip.GroundingLine(e, step)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "x_g (theory) = %.0f m\n", xg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "step\tA [Pa-3 s-1]\tdirection\tx_g [km]\t")
	for s := 1; s <= e.Steps(); s++ {
		A, err := e.RateFactor(s)
		if err != nil {
			return err
		}
		dir := "retreat"
		if adv, _ := e.Advancing(s); adv {
			dir = "advance"
		}
		pos := "-"
		xg, err := mismip.GroundingLine(e, s)
		var cfgErr *glprofile.ConfigurationError
		switch {
		case err == nil:
			pos = fmt.Sprintf("%.1f", xg/1000)
		case !errors.As(err, &cfgErr):
			return err
		}
		fmt.Fprintf(tw, "%d\t%.4g\t%s\t%s\t\n", s, A, dir, pos)
	}
	return tw.Flush()
}
