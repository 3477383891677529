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

// Package glprofileutil holds the command-line interface of glprofile.
package glprofileutil

import (
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/glprofile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to glprofile.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages that are
              printed: debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "experiment",
			usage: `
              experiment is the MISMIP experiment: 1a, 1b, 2a, 2b, 3a or 3b.`,
			shorthand:  "e",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), theoryCmd.Flags(), synthCmd.Flags()},
		},
		{
			name: "step",
			usage: `
              step is the MISMIP step: 1, 2, 3, ... For the theory command,
              0 prints every step of the experiment.`,
			shorthand:  "s",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), theoryCmd.Flags(), synthCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path of the figure. The format follows the file
              extension (pdf, png, svg, eps, ...). The default is the input
              path with its extension replaced by '-profile.pdf'.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "summary",
			usage: `
              summary is an optional path where the theoretical and modeled
              grounding-line positions are written in TOML format.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Profile.TimeIndex",
			usage: `
              Profile.TimeIndex is the time record used for fields with a
              time dimension. Negative values count back from the last
              record, so -1 selects the last one.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Profile.Row",
			usage: `
              Profile.Row is the transverse (y) index of the profile.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Profile.FloatingMask",
			usage: `
              Profile.FloatingMask is the mask value of floating ice.`,
			defaultVal: glprofile.MaskFloating,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Profile.IceFreeOceanMask",
			usage: `
              Profile.IceFreeOceanMask is the mask value of ice-free ocean.`,
			defaultVal: glprofile.MaskIceFreeOcean,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Solver.Tolerance",
			usage: `
              Solver.Tolerance is the largest absolute value of the flotation
              signal accepted at the grounding line.`,
			defaultVal: glprofile.DefaultSolverConfig().Tolerance,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Solver.MaxIterations",
			usage: `
              Solver.MaxIterations is the iteration budget of the
              grounding-line solver.`,
			defaultVal: glprofile.DefaultSolverConfig().MaxIterations,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Plot.DistanceUnits",
			usage: `
              Plot.DistanceUnits is the unit of the horizontal axis: m or km.`,
			defaultVal: "km",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "Synth.Points",
			usage: `
              Synth.Points is the number of grid points along the flow line
              of a synthetic output file.`,
			defaultVal: 181,
			flagsets:   []*pflag.FlagSet{synthCmd.Flags()},
		},
		{
			name: "Synth.Records",
			usage: `
              Synth.Records is the number of time records of a synthetic
              output file. Only the last record holds the steady profile.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{synthCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GLPROFILE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(theoryCmd)
	Root.AddCommand(synthCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if err := readConfig(Cfg); err != nil {
		return err
	}
	return setLogLevel(Cfg.GetString("LogLevel"))
}

// readConfig reads the configuration file named by the "config" option
// of cfg into cfg.
func readConfig(cfg *viper.Viper) error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("glprofile: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "glprofile",
	Short: "Grounding-line profiles of MISMIP ice-sheet simulations.",
	Long: `glprofile extracts a flow-line profile from ice-sheet model output,
locates the modeled grounding line, compares it with the boundary-layer
theory of the MISMIP experiments and plots the result.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GLPROFILE_var' where 'var'
is the name of the variable to be set, with dots replaced by underscores.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of glprofile.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("glprofile v%s\n", glprofile.Version)
	},
	DisableAutoGenTag: true,
}

// plotCmd extracts a profile, locates the grounding line and plots it.
var plotCmd = &cobra.Command{
	Use:   "plot <input file>",
	Short: "Plot the profile and grounding line of a model output file.",
	Long: `plot reads x, thk, usurf, topg and mask from a NetCDF model output file,
cuts out the flow-line profile, solves for the modeled grounding line starting
from the theoretical position of the given MISMIP experiment and step, and
saves a figure of the bed, the ice surfaces and both grounding-line positions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := PlotConfigFromViper(Cfg, args[0])
		if err != nil {
			return err
		}
		res, err := Run(cfg)
		if err != nil {
			return err
		}
		cmd.Printf("x_g (model) = %.0f %s, x_g (theory) = %.0f %s\n",
			res.ModelPosition/cfg.DistanceScale, cfg.DistanceUnits,
			res.TheoryPosition/cfg.DistanceScale, cfg.DistanceUnits)
		return nil
	},
	DisableAutoGenTag: true,
}

// theoryCmd prints analytic grounding-line positions.
var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Print the theoretical grounding-line position.",
	Long: `theory prints the steady grounding-line position predicted by
boundary-layer theory for the given MISMIP experiment and step. If step is 0,
the positions of all steps of the experiment are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Theory(cmd.OutOrStdout(), Cfg.GetString("experiment"), Cfg.GetInt("step"))
	},
	DisableAutoGenTag: true,
}

// synthCmd writes a synthetic model output file.
var synthCmd = &cobra.Command{
	Use:   "synth <output file>",
	Short: "Write a synthetic MISMIP model output file.",
	Long: `synth writes a NetCDF file in the layout of flow-line ice-sheet model
output (time, y, x) holding a synthetic profile whose grounding line is at the
theoretical position of the given MISMIP experiment and step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Synth(args[0], Cfg.GetString("experiment"), Cfg.GetInt("step"),
			Cfg.GetInt("Synth.Points"), Cfg.GetInt("Synth.Records"))
	},
	DisableAutoGenTag: true,
}
