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
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/glprofile"
	"github.com/spatialmodel/glprofile/mismip"
	"github.com/spf13/cast"
)

// distanceScales gives the number of meters in each display unit.
var distanceScales = map[string]float64{
	"m":  1,
	"km": 1000,
}

// PlotConfig holds the settings of the plot command.
type PlotConfig struct {
	Input   string // model output file
	Output  string // figure file
	Summary string // optional TOML summary file

	Experiment mismip.Experiment
	Step       int

	Profile *glprofile.ProfileConfig
	Solver  glprofile.SolverConfig

	DistanceUnits string
	DistanceScale float64 // meters per display unit
}

// PlotConfigFromViper reads and checks the plot settings in cfg for
// the model output file input. All problems are reported as
// *glprofile.ConfigurationError before any file is read.
func PlotConfigFromViper(cfg *viper.Viper, input string) (*PlotConfig, error) {
	c := &PlotConfig{
		Input:   os.ExpandEnv(input),
		Profile: glprofile.DefaultProfileConfig(),
		Solver:  glprofile.DefaultSolverConfig(),
	}
	var err error
	if c.Experiment, err = mismip.ParseExperiment(cfg.GetString("experiment")); err != nil {
		return nil, err
	}
	if c.Step, err = getInt(cfg, "step"); err != nil {
		return nil, err
	}
	if err = c.Experiment.CheckStep(c.Step); err != nil {
		return nil, err
	}

	for _, v := range []struct {
		name string
		dst  *int
	}{
		{"Profile.TimeIndex", &c.Profile.TimeIndex},
		{"Profile.Row", &c.Profile.Row},
		{"Profile.FloatingMask", &c.Profile.FloatingMask},
		{"Profile.IceFreeOceanMask", &c.Profile.IceFreeOceanMask},
		{"Solver.MaxIterations", &c.Solver.MaxIterations},
	} {
		if *v.dst, err = getInt(cfg, v.name); err != nil {
			return nil, err
		}
	}
	if c.Profile.Row < 0 {
		return nil, glprofile.ConfigErrorf("Profile.Row", "must not be negative; got %d", c.Profile.Row)
	}
	if c.Solver.MaxIterations < 1 {
		return nil, glprofile.ConfigErrorf("Solver.MaxIterations", "must be positive; got %d", c.Solver.MaxIterations)
	}
	if c.Solver.Tolerance, err = cast.ToFloat64E(cfg.Get("Solver.Tolerance")); err != nil {
		return nil, glprofile.ConfigErrorf("Solver.Tolerance", "%v", err)
	}
	if !(c.Solver.Tolerance > 0) {
		return nil, glprofile.ConfigErrorf("Solver.Tolerance", "must be positive; got %g", c.Solver.Tolerance)
	}

	c.DistanceUnits = cfg.GetString("Plot.DistanceUnits")
	scale, ok := distanceScales[c.DistanceUnits]
	if !ok {
		return nil, glprofile.ConfigErrorf("Plot.DistanceUnits", "must be m or km; got %q", c.DistanceUnits)
	}
	c.DistanceScale = scale

	if c.Output, err = checkOutputFile("output", cfg.GetString("output"), c.Input); err != nil {
		return nil, err
	}
	if s := cfg.GetString("summary"); s != "" {
		if c.Summary, err = checkOutputFile("summary", s, c.Input); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// getInt returns the integer configuration variable name.
func getInt(cfg *viper.Viper, name string) (int, error) {
	v, err := cast.ToIntE(cfg.Get(name))
	if err != nil {
		return 0, glprofile.ConfigErrorf(name, "%v", err)
	}
	return v, nil
}

// checkOutputFile fills in the default figure path for the given input
// file if f is empty, expands environment variables and makes sure that
// the output directory exists. param names the setting f came from.
func checkOutputFile(param, f, input string) (string, error) {
	if f == "" {
		f = strings.TrimSuffix(input, filepath.Ext(input)) + "-profile.pdf"
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, glprofile.ConfigErrorf(param, "the output directory doesn't exist: %v", err)
	}
	return f, nil
}
