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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/glprofile"
	"github.com/spatialmodel/glprofile/internal/hash"
	"github.com/spatialmodel/glprofile/mismip"
)

// Result holds the outcome of a plot run.
type Result struct {
	TheoryPosition float64 // analytic grounding line [m]
	ModelPosition  float64 // modeled grounding line [m]
	Profile        *glprofile.Profile

	// Fingerprint identifies the extracted profile and the settings
	// used to process it.
	Fingerprint string
}

// Run computes the theoretical grounding line for c, extracts the
// profile from c.Input, locates the modeled grounding line and saves
// the figure and, if requested, the summary.
func Run(c *PlotConfig) (*Result, error) {
	log := Log.WithFields(logrus.Fields{
		"file":       c.Input,
		"experiment": c.Experiment,
		"step":       c.Step,
	})

	xgTheory, err := mismip.GroundingLine(c.Experiment, c.Step)
	if err != nil {
		return nil, err
	}
	d := mismip.Densities()
	log.WithField("xg_theory", xgTheory).Debug("computed theoretical grounding line")

	log.Info("reading model output")
	fields, err := glprofile.ReadFields(c.Input)
	if err != nil {
		return nil, err
	}
	p, err := c.Profile.Extract(fields, d)
	if err != nil {
		return nil, fmt.Errorf("glprofile: extracting profile from %s: %w", c.Input, err)
	}
	xgModel, err := glprofile.Locate(p, xgTheory, d, c.Solver)
	if err != nil {
		return nil, fmt.Errorf("glprofile: locating grounding line in %s: %w", c.Input, err)
	}
	log.WithFields(logrus.Fields{
		"xg_theory": xgTheory,
		"xg_model":  xgModel,
	}).Info("located grounding line")

	res := &Result{
		TheoryPosition: xgTheory,
		ModelPosition:  xgModel,
		Profile:        p,
		Fingerprint:    hash.Fingerprint(p, c.Profile, c.Solver),
	}
	log.WithField("fingerprint", res.Fingerprint).Debug("fingerprinted profile")

	title := fmt.Sprintf("MISMIP experiment %s, step %d", c.Experiment, c.Step)
	if err := SavePlot(c.Output, title, res, c.DistanceScale, c.DistanceUnits); err != nil {
		return nil, err
	}
	log.WithField("output", c.Output).Info("saved figure")

	if c.Summary != "" {
		if err := WriteSummary(c.Summary, c, res); err != nil {
			return nil, err
		}
		log.WithField("summary", c.Summary).Info("saved summary")
	}
	return res, nil
}
