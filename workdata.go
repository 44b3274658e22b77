/*
 * workdata.go, part of goagbnp.
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

//workData holds everything a worker goroutine writes during an
//evaluation: its slice of the neighbor lists, the descreening cache,
//full-length accumulator arrays that get reduced into the model
//between stages, and scratch buffers for the overlap recursion.
//Each worker owns exactly one workData for the life of the model, so
//no two goroutines ever write to the same buffer.
type workData struct {
	//worker index and atom ranges. h0:h1 indexes into the model's
	//heavy-atom list; a0:a1 is a range of internal atom indices.
	idx    int
	h0, h1 int
	a0, a1 int

	//near and far heavy neighbors (internal indices, j>i only) of
	//each heavy atom in the range, indexed by position-h0. Near
	//lists are sorted by squared distance.
	near [][]int
	far  [][]int

	//descreening integrals and their distance derivatives, cached
	//during the Born radius stage and consumed, in the exact same
	//traversal order, by the derivative stages. Heavy-heavy pairs
	//take four slots (both descreening directions), hydrogen-heavy
	//pairs two.
	q4cache []float64

	//full-length accumulators
	volumep  []float64
	surfarea []float64
	br1      []float64
	dEdb     []float64
	deru     []float64
	derv     []float64
	derh     []float64
	dgbdr    [][3]float64
	dvwdr    [][3]float64
	decav    [][3]float64
	dehb     [][3]float64

	//partial energies
	evdw, ecorrVdw   float64
	ecav, ecorrCav   float64
	egbSelf, egbPair float64
	ehb              float64
	molVol           float64

	//overlap recursion buffers, sized to the maximum overlap order
	gx      [][3]float64
	ga      []float64
	gp      []float64
	gr      []float64
	gparams []gParm
	gnlist  []int
	gatlist []int
	coeff   []float64
	ders    *overlapDers
	noDers  *overlapDers

	//neighbor gathering scratch
	nbidx []int
	nbd2  []float64

	err error
}

func newWorkData(idx, natoms, maxOrder int) *workData {
	wd := &workData{
		idx:      idx,
		volumep:  make([]float64, natoms),
		surfarea: make([]float64, natoms),
		br1:      make([]float64, natoms),
		dEdb:     make([]float64, natoms),
		deru:     make([]float64, natoms),
		derv:     make([]float64, natoms),
		derh:     make([]float64, natoms),
		dgbdr:    make([][3]float64, natoms),
		dvwdr:    make([][3]float64, natoms),
		decav:    make([][3]float64, natoms),
		dehb:     make([][3]float64, natoms),
		gx:       make([][3]float64, maxOrder),
		ga:       make([]float64, maxOrder),
		gp:       make([]float64, maxOrder),
		gr:       make([]float64, maxOrder),
		gparams:  make([]gParm, maxOrder),
		gnlist:   make([]int, maxOrder),
		gatlist:  make([]int, maxOrder),
		coeff:    make([]float64, maxOrder),
		ders:     newOverlapDers(maxOrder, true),
		noDers:   newOverlapDers(maxOrder, false),
		nbidx:    make([]int, 0, 32),
		nbd2:     make([]float64, 0, 32),
	}
	//alternating-sign coefficients of the inclusion-exclusion
	//volume expansion
	sign := 1.0
	for i := 0; i < maxOrder; i++ {
		wd.coeff[i] = sign
		sign = -sign
	}
	return wd
}

//reset zeroes every accumulator touched in an evaluation.
func (wd *workData) reset() {
	for i := range wd.volumep {
		wd.volumep[i] = 0
		wd.surfarea[i] = 0
		wd.br1[i] = 0
		wd.dEdb[i] = 0
		wd.deru[i] = 0
		wd.derv[i] = 0
		wd.derh[i] = 0
		wd.dgbdr[i] = [3]float64{}
		wd.dvwdr[i] = [3]float64{}
		wd.decav[i] = [3]float64{}
		wd.dehb[i] = [3]float64{}
	}
	wd.evdw, wd.ecorrVdw = 0, 0
	wd.ecav, wd.ecorrCav = 0, 0
	wd.egbSelf, wd.egbPair = 0, 0
	wd.ehb = 0
	wd.molVol = 0
	wd.err = nil
}
