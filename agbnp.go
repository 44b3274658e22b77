/*
 * agbnp.go, part of goagbnp.
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

import (
	"sync"
)

//Handle identifies a registered system within a Context.
type Handle int

//Context owns the registered systems. A Context can hold any number of
//them; each gets its own Handle and its own internal state, so
//different systems can be evaluated concurrently. Registering and
//unregistering are safe from several goroutines; evaluating the same
//Handle from two goroutines at once is not.
type Context struct {
	mu     sync.Mutex
	opts   *Options
	models map[Handle]*Model
	next   Handle
}

//NewContext returns a Context with the given options. A nil opts means
//DefaultOptions().
func NewContext(opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Context{opts: opts, models: make(map[Handle]*Model), next: 1}
}

//Model is the internal state of one registered system. Atoms are
//reordered on registration so heavy atoms come first; everything in
//here uses the internal order, and the int2ext/ext2int tables map
//results back to the caller's order.
type Model struct {
	natoms int
	nheavy int

	//order maps and classification
	int2ext    []int
	ext2int    []int
	iheavy     []int //internal indices of non-dummy heavy atoms
	ihydrogen  []int //internal indices of non-dummy hydrogens
	isheavy    []bool
	ishydrogen []bool
	isdummy    []bool
	isfrozen   []bool
	conn       [][]int

	//per-atom parameters (internal order)
	rvdw   []float64 //van der Waals radii
	r      []float64 //volume radii (vdW + increment) of heavy atoms
	charge []float64
	igamma []float64
	sgamma []float64
	gamma  []float64 //igamma+sgamma
	ialpha []float64
	salpha []float64
	alpha  []float64 //ialpha+salpha
	idelta []float64
	sdelta []float64
	hbtype []int
	hbcorr []float64

	//Gaussian representation of the heavy atoms
	galpha  []float64 //exponents
	gprefac []float64 //prefactors
	vols    []float64 //hard-sphere volumes at the volume radius

	//electrostatic prefactor: -(1/eps_in - 1/eps_out)/2
	df float64

	q4tbl  *q4Table
	groups []*siteGroup

	//coordinates of the current evaluation (internal order)
	x, y, z []float64

	//per-evaluation master arrays. Workers either read these or
	//write disjoint ranges of them; everything accumulated across
	//workers lives in the workData arrays and is reduced here
	//between stages.
	volumep     []float64
	surfAreaRaw []float64
	surfArea    []float64
	gammap      []float64
	spe         []float64 //scaled volume before the shell subtraction
	sp          []float64 //scaled volume
	psvol       []float64 //shell-subtraction factor of the area channel
	spPrefac    []float64 //Gaussian prefactors scaled by sp
	beta        []float64 //switched inverse Born radii
	betaDer     []float64
	br          []float64 //Born radii
	brw         []float64
	dEdb        []float64
	q2ab        []float64
	abrw        []float64
	deru        []float64
	derv        []float64
	derh        []float64
	wvGB        []float64
	wvVW        []float64
	wvHB        []float64

	cpus    int
	workers []*workData

	//true once neighbor lists and site caches exist
	initialized bool
}

//Register validates sys, builds the internal model (atom reordering,
//Gaussian parameters, descreening tables, water sites, worker state)
//and returns the Handle for it.
func (c *Context) Register(sys *System) (Handle, error) {
	if err := sys.validate(); err != nil {
		return 0, errDecorate(err, "Register")
	}
	m, err := newModel(sys, c.opts)
	if err != nil {
		return 0, errDecorate(err, "Register")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h := c.next
	c.next++
	c.models[h] = m
	return h, nil
}

//Unregister discards the system identified by h.
func (c *Context) Unregister(h Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.models[h]; !ok {
		return newError("Unregister: invalid handle %d", h)
	}
	delete(c.models, h)
	return nil
}

//IsValidHandle reports whether h identifies a registered system.
func (c *Context) IsValidHandle(h Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.models[h]
	return ok
}

func (c *Context) model(h Handle) (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.models[h]
	if !ok {
		return nil, newError("invalid handle %d", h)
	}
	return m, nil
}

func newModel(sys *System, opts *Options) (*Model, error) {
	n := len(sys.Radii)
	m := &Model{natoms: n, cpus: opts.Cpus()}
	if m.cpus < 1 {
		m.cpus = 1
	}
	if m.cpus > n {
		m.cpus = n
	}

	//internal order: non-hydrogens first, hydrogens after, each
	//class keeping the caller's relative order. The overlap
	//machinery then works on a contiguous heavy-atom prefix.
	ishyd := func(i int) bool { return sys.Hydrogens != nil && sys.Hydrogens[i] }
	isdum := func(i int) bool { return sys.Dummies != nil && sys.Dummies[i] }
	m.int2ext = make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !ishyd(i) {
			m.int2ext = append(m.int2ext, i)
		}
	}
	for i := 0; i < n; i++ {
		if ishyd(i) {
			m.int2ext = append(m.int2ext, i)
		}
	}
	m.ext2int = make([]int, n)
	for i, e := range m.int2ext {
		m.ext2int[e] = i
	}

	m.isheavy = make([]bool, n)
	m.ishydrogen = make([]bool, n)
	m.isdummy = make([]bool, n)
	for i := 0; i < n; i++ {
		e := m.int2ext[i]
		m.isdummy[i] = isdum(e)
		m.ishydrogen[i] = ishyd(e)
		m.isheavy[i] = !ishyd(e) && !isdum(e)
		if m.isheavy[i] {
			m.iheavy = append(m.iheavy, i)
		} else if m.ishydrogen[i] {
			m.ihydrogen = append(m.ihydrogen, i)
		}
	}
	m.nheavy = len(m.iheavy)
	if m.nheavy == 0 {
		return nil, newError("newModel: no heavy atoms")
	}
	m.isfrozen = make([]bool, n)
	if sys.Frozen != nil {
		for i := 0; i < n; i++ {
			m.isfrozen[i] = sys.Frozen[m.int2ext[i]]
		}
	}

	//parameters, reordered and combined
	perm := func(s []float64) []float64 {
		out := make([]float64, n)
		src := orZeros(n, s)
		for i := 0; i < n; i++ {
			out[i] = src[m.int2ext[i]]
		}
		return out
	}
	m.rvdw = perm(sys.Radii)
	m.charge = perm(sys.Charges)
	m.igamma = perm(sys.IGamma)
	m.sgamma = perm(sys.SGamma)
	m.ialpha = perm(sys.IAlpha)
	m.salpha = perm(sys.SAlpha)
	m.idelta = perm(sys.IDelta)
	m.sdelta = perm(sys.SDelta)
	m.hbcorr = perm(sys.HBCorr)
	m.gamma = make([]float64, n)
	m.alpha = make([]float64, n)
	for i := 0; i < n; i++ {
		m.gamma[i] = m.igamma[i] + m.sgamma[i]
		m.alpha[i] = m.ialpha[i] + m.salpha[i]
	}
	m.hbtype = make([]int, n)
	if sys.HBType != nil {
		for i := 0; i < n; i++ {
			m.hbtype[i] = sys.HBType[m.int2ext[i]]
		}
	}
	m.conn = make([][]int, n)
	for i := 0; i < n; i++ {
		ext := sys.Connectivity[m.int2ext[i]]
		m.conn[i] = make([]int, len(ext))
		for k, j := range ext {
			m.conn[i][k] = m.ext2int[j]
		}
	}

	//Gaussian parameters. Hydrogens and dummies carry no volume.
	m.r = make([]float64, n)
	m.galpha = make([]float64, n)
	m.gprefac = make([]float64, n)
	m.vols = make([]float64, n)
	for i := 0; i < n; i++ {
		m.r[i] = m.rvdw[i]
		if m.isheavy[i] {
			R := m.rvdw[i] + radiusIncrement
			m.r[i] = R
			m.galpha[i] = kfc / (R * R)
			m.gprefac[i] = pfc
			m.vols[i] = (4.0 / 3.0) * pi * R * R * R
		}
	}

	ein, eout := sys.DielectricIn, sys.DielectricOut
	if ein == 0 {
		ein = 1.0
	}
	if eout == 0 {
		eout = 80.0
	}
	m.df = -0.5 * (1.0/ein - 1.0/eout)

	//descreening tables: every (descreened vdW radius, descreener
	//volume radius) combination that can show up
	ri := make([]float64, 0, n)
	rj := make([]float64, 0, m.nheavy)
	for i := 0; i < n; i++ {
		if m.isdummy[i] {
			continue
		}
		ri = append(ri, m.rvdw[i])
		if m.isheavy[i] {
			rj = append(rj, m.r[i])
		}
	}
	var err error
	m.q4tbl, err = newQ4Table(ri, rj, opts.TableSize(), opts.TableMax())
	if err != nil {
		return nil, errDecorate(err, "newModel")
	}

	m.x = make([]float64, n)
	m.y = make([]float64, n)
	m.z = make([]float64, n)
	for _, s := range []*[]float64{&m.volumep, &m.surfAreaRaw, &m.surfArea,
		&m.gammap, &m.spe, &m.sp, &m.psvol, &m.spPrefac, &m.beta,
		&m.betaDer, &m.br, &m.brw, &m.dEdb, &m.q2ab, &m.abrw,
		&m.deru, &m.derv, &m.derh, &m.wvGB, &m.wvVW, &m.wvHB} {
		*s = make([]float64, n)
	}

	if err := m.createWaterSites(); err != nil {
		return nil, errDecorate(err, "newModel")
	}

	//worker state: contiguous ranges over the heavy list and over
	//all atoms
	m.workers = make([]*workData, m.cpus)
	for w := 0; w < m.cpus; w++ {
		wd := newWorkData(w, n, opts.MaxOrder())
		wd.h0 = w * m.nheavy / m.cpus
		wd.h1 = (w + 1) * m.nheavy / m.cpus
		wd.a0 = w * n / m.cpus
		wd.a1 = (w + 1) * n / m.cpus
		m.workers[w] = wd
	}
	return m, nil
}
