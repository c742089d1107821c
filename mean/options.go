/*
 * options.go, part of oxdna-analysis-tools
 *
 * Copyright 2025 The oxdna-analysis-tools developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 */

package mean

import (
	"fmt"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
)

// Options contains the options for the Compute function. Everything the
// computation needs is carried here explicitly; nothing is taken from
// ambient state.
type Options struct {
	//Indexes is the nucleotide subset used for the alignment fit. The
	//full system is always accumulated; only the fit is restricted.
	//nil or empty means every nucleotide.
	Indexes []int
	//Workers is the number of concurrent accumulators. 1 or less runs
	//serially.
	Workers int
	//Reference is the id of the configuration to align everything
	//against. Negative draws one pseudo-randomly from the trajectory.
	Reference int
	//Seed for the pseudo-random reference draw. Negative seeds from the
	//current time.
	Seed int64
	//Intermediates enables the periodic snapshots of the running mean.
	//They are only produced in the single-worker case regardless.
	Intermediates bool
	//Verbose prints a progress line per processed frame.
	Verbose bool
}

// DefaultOptions returns the options matching a plain serial run over
// the whole system: every nucleotide aligned, a random reference and
// intermediate means enabled.
func DefaultOptions(top *oxdna.Topology) *Options {
	o := new(Options)
	o.Indexes = top.Indexes()
	o.Workers = 1
	o.Reference = -1
	o.Seed = -1
	o.Intermediates = true
	o.Verbose = true
	return o
}

// check validates the options against a topology before any frame is
// read.
func (o *Options) check(top *oxdna.Topology) error {
	if len(o.Indexes) == 0 {
		o.Indexes = top.Indexes()
	}
	for _, v := range o.Indexes {
		if v < 0 || v >= top.N {
			return Error{fmt.Sprintf("alignment index %d out of range for %d nucleotides", v, top.N), nil, true}
		}
	}
	return nil
}
