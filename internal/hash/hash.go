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
// Package hash computes fingerprints that identify the inputs and
// results of a run.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// dumper writes values that gob can't encode in a stable text form.
var dumper = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Fingerprint returns a hex digest of values. Equal values give equal
// fingerprints across runs and machines.
func Fingerprint(values ...interface{}) string {
	h := fnv.New128a()
	for _, v := range values {
		if err := gob.NewEncoder(h).Encode(v); err != nil {
			// Nil pointers and unsupported types.
			dumper.Fprintf(h, "%#v", v)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
