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

	"github.com/BurntSushi/toml"
)

// Summary is the record written by WriteSummary.
type Summary struct {
	Input      string
	Experiment string
	Step       int

	// Grounding-line positions and their difference, in meters.
	TheoryPosition float64
	ModelPosition  float64
	Difference     float64

	Units string

	Fingerprint string
}

// WriteSummary writes the grounding-line positions of r to path in
// TOML format.
func WriteSummary(path string, c *PlotConfig, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("glprofile: creating summary file: %v", err)
	}
	s := Summary{
		Input:          c.Input,
		Experiment:     string(c.Experiment),
		Step:           c.Step,
		TheoryPosition: r.TheoryPosition,
		ModelPosition:  r.ModelPosition,
		Difference:     r.ModelPosition - r.TheoryPosition,
		Units:          "m",
		Fingerprint:    r.Fingerprint,
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("glprofile: writing summary file: %v", err)
	}
	return f.Close()
}

// ReadSummary reads a summary written by WriteSummary.
func ReadSummary(path string) (*Summary, error) {
	s := new(Summary)
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("glprofile: reading summary file: %v", err)
	}
	return s, nil
}
