/*
 * options.go, part of goagbnp.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
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
 *
 */

package agbnp

import "runtime"

//Options contains options to control the evaluation of solvation
//energies. Its fields are not exported, and they are set/obtained with
//the corresponding methods, which work as setters when given a value,
//and always work as getters.
type Options struct {
	cpus      int
	verbose   bool
	tableSize int
	tableMax  float64
	maxOrder  int
}

//DefaultOptions returns an Options set to reasonable default values:
//all logical CPUs, quiet, a 500-node descreening table spanning reduced
//distances up to 10, and Gaussian overlaps up to sixth order.
func DefaultOptions() *Options {
	O := new(Options)
	O.cpus = runtime.NumCPU()
	O.verbose = false
	O.tableSize = 500
	O.tableMax = 10.0
	O.maxOrder = 6
	return O
}

//Cpus sets (if given a value) and returns the number of concurrent
//workers used in an evaluation.
func (O *Options) Cpus(cpus ...int) int {
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return O.cpus
}

//Verbose sets (if given a value) and returns whether per-stage
//diagnostics are logged during evaluations.
func (O *Options) Verbose(verbose ...bool) bool {
	if len(verbose) > 0 {
		O.verbose = verbose[0]
	}
	return O.verbose
}

//TableSize sets (if given a value) and returns the number of nodes of
//each descreening spline table.
func (O *Options) TableSize(size ...int) int {
	if len(size) > 0 && size[0] >= 3 {
		O.tableSize = size[0]
	}
	return O.tableSize
}

//TableMax sets (if given a value) and returns the largest reduced
//distance (rij/Rj) covered by the descreening tables. Beyond it the
//descreening integral is taken as zero.
func (O *Options) TableMax(max ...float64) float64 {
	if len(max) > 0 && max[0] > 0 {
		O.tableMax = max[0]
	}
	return O.tableMax
}

//MaxOrder sets (if given a value) and returns the largest order of
//Gaussian overlaps considered in the volume calculations.
func (O *Options) MaxOrder(order ...int) int {
	if len(order) > 0 && order[0] >= 2 {
		O.maxOrder = order[0]
	}
	return O.maxOrder
}
