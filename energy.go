/*
 * energy.go, part of goagbnp.
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

//energy.go runs an evaluation: a fixed team of workers advances through
//the stages of the model, with a barrier after each stage and the
//cross-worker accumulators reduced into the model between them. Every
//stage writes either per-worker buffers or disjoint ranges of the
//model's arrays, so no locking is needed beyond the barriers.

package agbnp

import (
	"log"
	"sync"

	v3 "github.com/rmera/goagbnp/v3"
)

//Result collects the output of one evaluation. All energies are in
//kcal/mol, all per-atom data in the caller's atom order.
type Result struct {
	//MolVolume is the molecular volume estimate, in Angstrom^3.
	MolVolume float64
	//EGB is the generalized-Born electrostatic energy.
	EGB float64
	//EVdW is the solute-solvent van der Waals energy; ECorrVdW the
	//correction-parameter part of it.
	EVdW     float64
	ECorrVdW float64
	//ECav is the cavity (surface area) energy; ECorrCav its
	//correction part.
	ECav     float64
	ECorrCav float64
	//EHB is the hydrogen-bonding water-site correction.
	EHB float64
	//Per-atom gradients of each component, one row per atom.
	DGB  *v3.Matrix
	DVdW *v3.Matrix
	DCav *v3.Matrix
	DHB  *v3.Matrix
	//Born radii, scaled self-volumes (1.0 for non-heavy atoms) and
	//filtered surface areas.
	BornRadii     []float64
	ScaledVolumes []float64
	SurfaceAreas  []float64
}

//Total is the sum of all the energy components.
func (r *Result) Total() float64 {
	return r.EGB + r.EVdW + r.ECorrVdW + r.ECav + r.ECorrCav + r.EHB
}

//Gradient returns the sum of the component gradients, one row per
//atom, allocating it on first use.
func (r *Result) Gradient() *v3.Matrix {
	g := v3.Zeros(r.DGB.NVecs())
	g.Add(r.DGB, r.DVdW)
	g.Add(g, r.DCav)
	g.Add(g, r.DHB)
	return g
}

//Evaluate computes the solvation energy and gradients of the system h
//at the given coordinates (one row per atom, caller order). When init
//is true, or on the first call, the neighbor lists and the water-site
//neighbor caches are rebuilt; pass init=false only while no atom has
//moved more than the neighbor-list margin since the last init. Atoms
//flagged Frozen at registration must not move at all between init
//calls: their pairwise descreening integrals are reused on init=false
//calls instead of recomputed. The optional Options override the
//context's verbosity for this call.
func (c *Context) Evaluate(h Handle, coords *v3.Matrix, init bool, opts ...*Options) (*Result, error) {
	m, err := c.model(h)
	if err != nil {
		return nil, errDecorate(err, "Evaluate")
	}
	verbose := c.opts.Verbose()
	if len(opts) > 0 && opts[0] != nil {
		verbose = opts[0].Verbose()
	}
	if coords == nil {
		return nil, ErrNilCoordinates
	}
	if r := coords.NVecs(); r != m.natoms {
		return nil, newError("Evaluate: got %d coordinates for %d atoms", r, m.natoms)
	}
	for i := 0; i < m.natoms; i++ {
		e := m.int2ext[i]
		m.x[i] = coords.At(e, 0)
		m.y[i] = coords.At(e, 1)
		m.z[i] = coords.At(e, 2)
	}
	if !m.initialized {
		init = true
	}

	for _, wd := range m.workers {
		wd.reset()
	}
	if init {
		m.runStage(func(wd *workData) { wd.neighborLists(m) })
		m.initialized = true
	}

	//self-volumes and surface areas
	m.runStage(func(wd *workData) { wd.selfVolumes(m) })
	for i := 0; i < m.natoms; i++ {
		m.volumep[i] = m.vols[i]
		m.surfAreaRaw[i] = 0
		if m.isheavy[i] {
			m.surfAreaRaw[i] = 4.0 * pi * m.r[i] * m.r[i]
		}
		for _, wd := range m.workers {
			m.volumep[i] += wd.volumep[i]
			m.surfAreaRaw[i] += wd.surfarea[i]
		}
	}
	m.runStage(func(wd *workData) { wd.scalingFactors(m) })
	//non-heavy atoms keep a scaling factor of 1. Dummies never show
	//up on a neighbor list, so theirs is only ever reported.
	for i := 0; i < m.natoms; i++ {
		if !m.isheavy[i] {
			m.sp[i] = 1.0
			m.spe[i] = 1.0
		}
		m.spPrefac[i] = m.gprefac[i] * m.sp[i]
	}

	//Born radii
	m.runStage(func(wd *workData) { wd.err = wd.inverseBornRadii(m, init) })
	if err := m.workerErr(); err != nil {
		return nil, errDecorate(err, "Evaluate")
	}
	for i := 0; i < m.natoms; i++ {
		b := 0.0
		if !m.isdummy[i] {
			b = 1.0 / m.rvdw[i]
			for _, wd := range m.workers {
				b += wd.br1[i]
			}
		}
		m.beta[i] = b
	}
	m.runStage(func(wd *workData) { wd.bornRadii(m) })

	//GB energy and the Born-radius chain
	m.runStage(func(wd *workData) { wd.gbEnergy(m) })
	m.reduceInto(m.dEdb, func(wd *workData) []float64 { return wd.dEdb })
	m.runStage(func(wd *workData) { wd.gbWeights(m) })

	//water sites
	m.runStage(func(wd *workData) { wd.wsFreeVolumes(m, init) })
	m.reduceInto(m.derh, func(wd *workData) []float64 { return wd.derh })

	//descreening derivatives and the volume channel
	m.runStage(func(wd *workData) { wd.gbDerTraversal(m) })
	m.reduceInto(m.deru, func(wd *workData) []float64 { return wd.deru })
	m.reduceInto(m.derv, func(wd *workData) []float64 { return wd.derv })
	m.runStage(func(wd *workData) { wd.gbVolumeWeights(m) })
	m.runStage(func(wd *workData) { wd.volumeDers(m) })

	res := m.collect()
	if verbose {
		log.Printf("goagbnp: vol=%.3f egb=%.4f evdw=%.4f(%.4f) ecav=%.4f(%.4f) ehb=%.4f",
			res.MolVolume, res.EGB, res.EVdW, res.ECorrVdW, res.ECav, res.ECorrCav, res.EHB)
	}
	return res, nil
}

//runStage runs f once per worker and waits for all of them.
func (m *Model) runStage(f func(wd *workData)) {
	var wg sync.WaitGroup
	for _, wd := range m.workers {
		wg.Add(1)
		go func(wd *workData) {
			defer wg.Done()
			f(wd)
		}(wd)
	}
	wg.Wait()
}

func (m *Model) workerErr() error {
	for _, wd := range m.workers {
		if wd.err != nil {
			return wd.err
		}
	}
	return nil
}

//reduceInto sums the workers' copies of an accumulator into dst.
func (m *Model) reduceInto(dst []float64, get func(wd *workData) []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, wd := range m.workers {
		src := get(wd)
		for i, v := range src {
			dst[i] += v
		}
	}
}

//collect reduces the energies and gradients and maps everything back
//to the caller's atom order. The electrostatic component carries the
//charge-unit conversion.
func (m *Model) collect() *Result {
	res := &Result{
		DGB:           v3.Zeros(m.natoms),
		DVdW:          v3.Zeros(m.natoms),
		DCav:          v3.Zeros(m.natoms),
		DHB:           v3.Zeros(m.natoms),
		BornRadii:     make([]float64, m.natoms),
		ScaledVolumes: make([]float64, m.natoms),
		SurfaceAreas:  make([]float64, m.natoms),
	}
	var egb float64
	for _, wd := range m.workers {
		egb += wd.egbSelf + wd.egbPair
		res.EVdW += wd.evdw
		res.ECorrVdW += wd.ecorrVdw
		res.ECav += wd.ecav
		res.ECorrCav += wd.ecorrCav
		res.EHB += wd.ehb
		res.MolVolume += wd.molVol
	}
	res.EGB = egb * tokcalmol
	for i := 0; i < m.natoms; i++ {
		e := m.int2ext[i]
		res.BornRadii[e] = m.br[i]
		res.ScaledVolumes[e] = m.sp[i]
		res.SurfaceAreas[e] = m.surfArea[i]
		var g, v, cv, hb [3]float64
		for _, wd := range m.workers {
			for k := 0; k < 3; k++ {
				g[k] += wd.dgbdr[i][k]
				v[k] += wd.dvwdr[i][k]
				cv[k] += wd.decav[i][k]
				hb[k] += wd.dehb[i][k]
			}
		}
		for k := 0; k < 3; k++ {
			res.DGB.Set(e, k, g[k]*tokcalmol)
			res.DVdW.Set(e, k, v[k])
			res.DCav.Set(e, k, cv[k])
			res.DHB.Set(e, k, hb[k])
		}
	}
	return res
}
