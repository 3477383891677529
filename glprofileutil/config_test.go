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
	"path/filepath"
	"testing"

	"github.com/kr/pretty"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/glprofile"
)

// testConfig returns a configuration holding the default value of
// every option.
func testConfig(experiment string, step int) *viper.Viper {
	cfg := viper.New()
	for _, o := range options {
		cfg.Set(o.name, o.defaultVal)
	}
	cfg.Set("experiment", experiment)
	cfg.Set("step", step)
	return cfg
}

func TestPlotConfigFromViper(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.nc")
	c, err := PlotConfigFromViper(testConfig("3a", 5), input)
	if err != nil {
		t.Fatal(err)
	}
	if c.Output != filepath.Join(dir, "run-profile.pdf") {
		t.Errorf("output: %s", c.Output)
	}
	if c.Summary != "" {
		t.Errorf("summary: %s", c.Summary)
	}
	if c.Step != 5 || c.Experiment != "3a" {
		t.Errorf("experiment %s step %d", c.Experiment, c.Step)
	}
	if c.DistanceScale != 1000 || c.DistanceUnits != "km" {
		t.Errorf("distance %g %s", c.DistanceScale, c.DistanceUnits)
	}
	if diff := pretty.Diff(c.Profile, glprofile.DefaultProfileConfig()); len(diff) != 0 {
		t.Errorf("profile config: %v", diff)
	}
	if diff := pretty.Diff(c.Solver, glprofile.DefaultSolverConfig()); len(diff) != 0 {
		t.Errorf("solver config: %v", diff)
	}
}

func TestPlotConfigErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "run.nc")
	tests := []struct {
		param string
		value interface{}
	}{
		{"experiment", "5c"},
		{"step", 0},
		{"step", 10},
		{"step", "first"},
		{"Profile.Row", -1},
		{"Profile.TimeIndex", "last"},
		{"Solver.Tolerance", -1.},
		{"Solver.Tolerance", "small"},
		{"Solver.MaxIterations", 0},
		{"Plot.DistanceUnits", "mi"},
		{"output", filepath.Join(dir, "missing", "fig.png")},
		{"summary", filepath.Join(dir, "missing", "summary.toml")},
	}
	for _, test := range tests {
		t.Run(test.param, func(t *testing.T) {
			cfg := testConfig("1a", 1)
			cfg.Set(test.param, test.value)
			_, err := PlotConfigFromViper(cfg, input)
			var cfgErr *glprofile.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("want ConfigurationError, have %v", err)
			}
			if cfgErr.Param != test.param {
				t.Errorf("param: have %s, want %s", cfgErr.Param, test.param)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	for _, l := range []string{"debug", "info", "warning", "error"} {
		if err := setLogLevel(l); err != nil {
			t.Errorf("%s: %v", l, err)
		}
	}
	var cfgErr *glprofile.ConfigurationError
	if err := setLogLevel("loud"); !errors.As(err, &cfgErr) {
		t.Errorf("want ConfigurationError, have %v", err)
	}
	setLogLevel("info")
}

func TestConfigFile(t *testing.T) {
	cfg := viper.New()
	cfg.Set("config", "../cmd/glprofile/configExample.toml")
	if err := readConfig(cfg); err != nil {
		t.Fatal(err)
	}
	c, err := PlotConfigFromViper(cfg, filepath.Join(t.TempDir(), "run.nc"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Experiment != "1a" || c.Step != 3 {
		t.Errorf("experiment %s step %d", c.Experiment, c.Step)
	}
	if c.Profile.Row != 1 || c.Profile.TimeIndex != -1 || c.Solver.MaxIterations != 100 {
		t.Errorf("profile %+v, solver %+v", c.Profile, c.Solver)
	}
	if cfg.GetString("LogLevel") != "info" {
		t.Errorf("log level %q", cfg.GetString("LogLevel"))
	}

	bad := viper.New()
	bad.Set("config", filepath.Join(t.TempDir(), "missing.toml"))
	if err := readConfig(bad); err == nil {
		t.Error("missing configuration file should fail")
	}
}
