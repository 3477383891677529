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

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// ReadFields reads the named variables from the NetCDF (classic format)
// file at path. If no names are given, ProfileFields are read. Record
// variables are read for every record in the file. Floating point values
// equal to the variable's _FillValue are returned as NaN.
// The file is closed before ReadFields returns.
func ReadFields(path string, names ...string) (Fields, error) {
	if len(names) == 0 {
		names = ProfileFields
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glprofile: opening %s: %v", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("glprofile: opening %s: %v", path, err)
	}
	nc, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("glprofile: reading NetCDF header of %s: %v", path, err)
	}
	nrec := int(nc.Header.NumRecs(fi.Size()))

	o := make(Fields)
	for _, name := range names {
		data, err := readVar(nc, name, nrec)
		if err != nil {
			return nil, err
		}
		o[name] = data
	}
	return o, nil
}

// readVar reads variable v from nc. nrec is the number of records
// in the file.
func readVar(nc *cdf.File, v string, nrec int) (*sparse.DenseArray, error) {
	dims := nc.Header.Lengths(v)
	if dims == nil {
		return nil, shapeErrorf(v, "variable not in file")
	}
	shape := append([]int(nil), dims...)
	var begin, end []int
	if nc.Header.IsRecordVariable(v) {
		shape[0] = nrec
		if nrec == 0 {
			return sparse.ZerosDense(shape...), nil
		}
		begin = make([]int, len(shape))
		end = make([]int, len(shape))
		for i, l := range shape {
			end[i] = l - 1
		}
	}
	data := sparse.ZerosDense(shape...)
	if len(data.Elements) == 0 {
		return data, nil
	}

	r := nc.Reader(v, begin, end)
	buf := r.Zero(len(data.Elements))
	n, err := r.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("glprofile: reading variable %s: %v", v, err)
	}
	if n != len(data.Elements) {
		return nil, shapeErrorf(v, "read %d values but shape %v needs %d", n, shape, len(data.Elements))
	}

	switch vals := buf.(type) {
	case []float64:
		copy(data.Elements, vals)
	case []float32:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []int32:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []int16:
		for i, val := range vals {
			data.Elements[i] = float64(val)
		}
	case []uint8:
		// NetCDF bytes are signed.
		for i, val := range vals {
			data.Elements[i] = float64(int8(val))
		}
	default:
		return nil, shapeErrorf(v, "unsupported data type %T", buf)
	}

	if fill, ok := floatFillValue(nc.Header.GetAttribute(v, "_FillValue")); ok {
		for i, val := range data.Elements {
			if val == fill {
				data.Elements[i] = math.NaN()
			}
		}
	}
	return data, nil
}

// floatFillValue returns the floating point fill value stored in the
// _FillValue attribute a, if there is one.
func floatFillValue(a interface{}) (float64, bool) {
	switch v := a.(type) {
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}

// WriteFields writes fields to w as a NetCDF classic file.
// dims and lengths give the dimensions of the file, where a length of
// zero marks the record dimension, and varDims gives the dimensions of each
// field. Values are stored as doubles.
func WriteFields(w *os.File, dims []string, lengths []int, varDims map[string][]string, fields Fields) error {
	names := make([]string, 0, len(fields))
	for n := range fields {
		if _, ok := varDims[n]; !ok {
			return shapeErrorf(n, "no dimensions specified")
		}
		names = append(names, n)
	}
	// Sort the names so they write in the same order every time.
	sort.Strings(names)

	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "source", "glprofile v"+Version)
	for _, n := range names {
		h.AddVariable(n, varDims[n], []float64{0})
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return fmt.Errorf("glprofile: invalid NetCDF header: %v", errs)
	}

	f, err := cdf.Create(w, h)
	if err != nil {
		return err
	}
	for _, n := range names {
		data := fields[n]
		if err := checkArray(n, data); err != nil {
			return err
		}
		var start, end []int
		if !h.IsRecordVariable(n) {
			end = h.Lengths(n)
			start = make([]int, len(end))
		}
		wr := f.Writer(n, start, end)
		if _, err := wr.Write(data.Elements); err != nil {
			return fmt.Errorf("glprofile: writing variable %s to netcdf file: %v", n, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}
