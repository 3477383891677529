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

// Package mismip holds the setup of the Marine Ice Sheet Model
// Intercomparison Project (MISMIP) flow-line experiments and the
// boundary-layer theory of Schoof (2007) for their steady grounding-line
// positions.
package mismip

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/glprofile"
	"github.com/spatialmodel/glprofile/internal/root"
)

// Physical constants of the MISMIP setup.
const (
	SecondsPerYear = 3.15569259747e7 // s
	L              = 1.8e6           // domain length [m]
	G              = 9.8             // gravitational acceleration [m s⁻²]
	N              = 3.0             // Glen exponent
	RhoIce         = 900.0           // kg m⁻³
	RhoWater       = 1000.0          // kg m⁻³
)

// AccumulationRate is the surface mass balance, 0.3 m/year.
var AccumulationRate = unit.New(0.3/SecondsPerYear, unit.MeterPerSecond)

// Densities returns the ice and sea water densities of the MISMIP setup.
func Densities() glprofile.Densities {
	return glprofile.Densities{
		Ice:   unit.New(RhoIce, unit.KilogramPerMeter3),
		Water: unit.New(RhoWater, unit.KilogramPerMeter3),
	}
}

// Experiment is a MISMIP experiment identifier.
type Experiment string

// The MISMIP experiments.
const (
	Exp1a Experiment = "1a"
	Exp1b Experiment = "1b"
	Exp2a Experiment = "2a"
	Exp2b Experiment = "2b"
	Exp3a Experiment = "3a"
	Exp3b Experiment = "3b"
)

// Experiments lists all experiments.
var Experiments = []Experiment{Exp1a, Exp1b, Exp2a, Exp2b, Exp3a, Exp3b}

// rate factors A [Pa⁻³ s⁻¹].
var (
	rateFactors12 = []float64{4.6416e-24, 2.1544e-24, 1.0e-24, 4.6416e-25,
		2.1544e-25, 1.0e-25, 4.6416e-26, 2.1544e-26, 1.0e-26}
	rateFactors3a = []float64{3.0e-25, 2.5e-25, 2.0e-25, 1.5e-25, 1.0e-25,
		5.0e-26, 2.5e-26, 5.0e-26, 1.0e-25, 1.5e-25, 2.0e-25, 2.5e-25, 3.0e-25}
	rateFactors3b = []float64{1.6e-24, 1.4e-24, 1.2e-24, 1.0e-24, 8.0e-25,
		6.0e-25, 4.0e-25, 2.0e-25, 4.0e-25, 6.0e-25, 8.0e-25, 1.0e-24,
		1.2e-24, 1.4e-24, 1.6e-24}
)

// ParseExperiment returns the experiment named s.
func ParseExperiment(s string) (Experiment, error) {
	for _, e := range Experiments {
		if string(e) == s {
			return e, nil
		}
	}
	return "", glprofile.ConfigErrorf("experiment", "%q is not one of %v", s, Experiments)
}

// Steps returns the number of steps in experiment e.
func (e Experiment) Steps() int {
	switch e {
	case Exp1a, Exp2a:
		return len(rateFactors12)
	case Exp1b, Exp2b:
		return len(rateFactors12) - 1
	case Exp3a:
		return len(rateFactors3a)
	case Exp3b:
		return len(rateFactors3b)
	}
	return 0
}

// CheckStep returns a *glprofile.ConfigurationError if step is not a
// valid step of e.
func (e Experiment) CheckStep(step int) error {
	if e.Steps() == 0 {
		return glprofile.ConfigErrorf("experiment", "%q is not one of %v", string(e), Experiments)
	}
	if step < 1 || step > e.Steps() {
		return glprofile.ConfigErrorf("step", "experiment %s has steps 1 to %d; got %d", e, e.Steps(), step)
	}
	return nil
}

// RateFactor returns the flow-law rate factor A [Pa⁻³ s⁻¹] of the given step.
// The retreat experiments 1b and 2b run the advance table backwards,
// starting from the state reached at the end of the advance.
func (e Experiment) RateFactor(step int) (float64, error) {
	if err := e.CheckStep(step); err != nil {
		return 0, err
	}
	switch e {
	case Exp1a, Exp2a:
		return rateFactors12[step-1], nil
	case Exp1b, Exp2b:
		return rateFactors12[len(rateFactors12)-1-step], nil
	case Exp3a:
		return rateFactors3a[step-1], nil
	default:
		return rateFactors3b[step-1], nil
	}
}

// Advancing returns whether the grounding line advances during step,
// i.e. whether the ice softens relative to the previous step.
func (e Experiment) Advancing(step int) (bool, error) {
	a, err := e.RateFactor(step)
	if err != nil {
		return false, err
	}
	switch {
	case e == Exp1b || e == Exp2b:
		return false, nil
	case step == 1:
		return true, nil
	}
	prev, _ := e.RateFactor(step - 1)
	return a < prev, nil
}

// SlidingExponent returns the basal sliding exponent m.
func (e Experiment) SlidingExponent() float64 {
	if e == Exp2a || e == Exp2b {
		return 1
	}
	return 1.0 / 3.0
}

// SlidingCoefficient returns the basal sliding coefficient C [Pa m^-m s^m].
func (e Experiment) SlidingCoefficient() float64 {
	if e == Exp2a || e == Exp2b {
		return 7.2082e10
	}
	return 7.624e6
}

// Bed returns the bed elevation [m] at distance x [m] from the divide.
func (e Experiment) Bed(x float64) float64 {
	if e == Exp3a || e == Exp3b {
		xx := x / 750e3
		return 729 - 2184.8*math.Pow(xx, 2) + 1031.72*math.Pow(xx, 4) - 151.72*math.Pow(xx, 6)
	}
	return 720 - 778.5*x/750e3
}

// FlotationThickness returns the ice thickness [m] that exactly floats
// at x, or 0 where the bed is above sea level.
func (e Experiment) FlotationThickness(x float64) float64 {
	b := e.Bed(x)
	if b >= 0 {
		return 0
	}
	return -RhoWater / RhoIce * b
}

// fluxBalance returns a*x - q(x), where q is the grounding-line flux of
// Schoof (2007) for a grounding line at x.
func (e Experiment) fluxBalance(step int) (func(x float64) float64, error) {
	A, err := e.RateFactor(step)
	if err != nil {
		return nil, err
	}
	m, C := e.SlidingExponent(), e.SlidingCoefficient()
	omega := math.Pow(A*math.Pow(RhoIce*G, N+1)*math.Pow(1-RhoIce/RhoWater, N)/
		(math.Pow(4, N)*C), 1/(m+1))
	beta := (m + N + 3) / (m + 1)
	a := AccumulationRate.Value()
	return func(x float64) float64 {
		return a*x - omega*math.Pow(e.FlotationThickness(x), beta)
	}, nil
}

// scanPoints is the number of sample points used to bracket roots
// of the flux balance.
const scanPoints = 1800

// GroundingLine returns the steady grounding-line position [m] of
// experiment e at the given step. Where the bed geometry allows several
// stable positions, an advancing step returns the one closest to the
// divide and a retreating step the one farthest from it.
func GroundingLine(e Experiment, step int) (float64, error) {
	f, err := e.fluxBalance(step)
	if err != nil {
		return 0, err
	}
	advancing, err := e.Advancing(step)
	if err != nil {
		return 0, err
	}

	xs := make([]float64, scanPoints)
	fs := make([]float64, scanPoints)
	for i := range xs {
		xs[i] = L * float64(i+1) / scanPoints
		fs[i] = f(xs[i])
	}
	// Stable positions are where the flux balance goes from positive to negative.
	var stable []int
	for _, i := range root.SignChanges(fs) {
		if fs[i] > 0 && fs[i+1] <= 0 {
			stable = append(stable, i)
		}
	}
	if len(stable) == 0 {
		return 0, glprofile.ConfigErrorf("step", "experiment %s step %d has no steady grounding line "+
			"within %g m of the divide", e, step, L)
	}
	i := stable[len(stable)-1]
	if advancing {
		i = stable[0]
	}
	r, err := root.Illinois(f, xs[i], xs[i+1], root.Settings{
		Tolerance:     1e-12 * AccumulationRate.Value() * L,
		MaxIterations: 200,
	})
	if err != nil {
		return r.X, fmt.Errorf("mismip: experiment %s step %d: %v", e, step, err)
	}
	return r.X, nil
}
