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

import "fmt"

// DataShapeError is returned when an input field is missing or
// has a shape that cannot be reduced to a profile.
type DataShapeError struct {
	Field string // name of the offending field, if any
	Msg   string
}

func (e *DataShapeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("glprofile: data shape: %s", e.Msg)
	}
	return fmt.Sprintf("glprofile: data shape: field %s: %s", e.Field, e.Msg)
}

func shapeErrorf(field, format string, a ...interface{}) error {
	return &DataShapeError{Field: field, Msg: fmt.Sprintf(format, a...)}
}

// ConvergenceError is returned when the grounding-line solve does not
// reach its tolerance. Last holds the final iterate for diagnosis.
type ConvergenceError struct {
	Seed       float64 // initial guess
	Last       float64 // last iterate
	Residual   float64 // signal value at Last
	Iterations int
	Msg        string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("glprofile: solver did not converge after %d iterations "+
		"(seed %g, last iterate %g, residual %g): %s",
		e.Iterations, e.Seed, e.Last, e.Residual, e.Msg)
}

// ConfigurationError is returned for invalid user settings such as an
// unknown experiment or an out-of-range step. It is detected before
// any numerical work is done.
type ConfigurationError struct {
	Param string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("glprofile: configuration: %s: %s", e.Param, e.Msg)
}

// ConfigErrorf returns a *ConfigurationError for parameter param.
func ConfigErrorf(param, format string, a ...interface{}) error {
	return &ConfigurationError{Param: param, Msg: fmt.Sprintf(format, a...)}
}
