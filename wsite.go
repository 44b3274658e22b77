/*
 * wsite.go, part of goagbnp.
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

//wsite.go implements the hydrogen-bonding correction. Around each
//donor hydrogen and acceptor lone pair a water-sphere site is placed
//by a geometric rule on the parent atoms; the energy rewards sites
//whose volume is not invaded by solute atoms. Site positions are
//analytic functions of the parent coordinates, so each site carries
//the 3x3 derivative tensor of its position with respect to every
//parent, through which the gradient is chained back to the atoms.

package agbnp

import (
	"log"
	"math"
)

//wSat is a water-sphere pseudo-atom.
type wSat struct {
	pos        [3]float64
	r          float64
	volume     float64
	khb        float64
	parents    []int
	dpos       [][3][3]float64 //dpos[p][i][j] = d pos_i / d parent_p_j
	nlist      []int           //cached heavy neighbors
	freeVolume float64
	sp         float64
	dhw        float64
}

//Site placement rules. The input HBType together with the coordination
//of the atom selects one.
const (
	rulePolarH = iota
	ruleTrigonal1
	ruleTrigonal2
	ruleTrigonalS
	ruleTrigonalOOP
	ruleTetrahedral1
	ruleTetrahedral2
	ruleTetrahedral3
)

//siteGroup is the set of water sites generated by one atom. The whole
//group is replaced every time the coordinates change.
type siteGroup struct {
	rule  int
	atom  int //internal index
	sites []*wSat
}

func newSite(khb float64, parents []int) *wSat {
	return &wSat{
		r:       hbRadius,
		volume:  (4.0 / 3.0) * pi * hbRadius * hbRadius * hbRadius,
		khb:     khb,
		parents: parents,
		dpos:    make([][3][3]float64, len(parents)),
	}
}

//Geometry helpers. Vectors are [3]float64, matrices [3][3]float64 with
//m[i][j] = d out_i / d in_j.

func unit3(v [3]float64) (u [3]float64, invn float64) {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	invn = 1.0 / n
	u = [3]float64{v[0] * invn, v[1] * invn, v[2] * invn}
	return u, invn
}

//derUnit is the derivative of the unit vector of v with respect to v:
//(1/|v|)(I - u u).
func derUnit(u [3]float64, invn float64) (der [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			der[i][j] = -invn * u[i] * u[j]
		}
		der[i][i] += invn
	}
	return der
}

//cross3 returns a x b and, via the Levi-Civita symbols, the derivative
//matrices of the product with respect to a and b.
func cross3(a, b [3]float64) (c [3]float64, dera, derb [3][3]float64) {
	c[0] = a[1]*b[2] - a[2]*b[1]
	c[1] = a[2]*b[0] - a[0]*b[2]
	c[2] = a[0]*b[1] - a[1]*b[0]
	dera = [3][3]float64{
		{0, b[2], -b[1]},
		{-b[2], 0, b[0]},
		{b[1], -b[0], 0},
	}
	derb = [3][3]float64{
		{0, -a[2], a[1]},
		{a[2], 0, -a[0]},
		{-a[1], a[0], 0},
	}
	return c, dera, derb
}

func madd(a, b [3][3]float64) (c [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] + b[i][j]
		}
	}
	return c
}

func mscale(s float64, a [3][3]float64) (c [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = s * a[i][j]
		}
	}
	return c
}

func mneg(a [3][3]float64) [3][3]float64 {
	return mscale(-1.0, a)
}

//identityMinus returns I - a.
func identityMinus(a [3][3]float64) (c [3][3]float64) {
	c = mneg(a)
	for i := 0; i < 3; i++ {
		c[i][i] += 1.0
	}
	return c
}

var identity3 = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func (m *Model) atomPos(iat int) [3]float64 {
	return [3]float64{m.x[iat], m.y[iat], m.z[iat]}
}

//createWaterSites classifies every atom by its HBType and coordination
//and builds the site groups. Geometry that does not match the declared
//type is logged and produces no sites, except for the out-of-plane
//rule, where a mismatch almost always means mislabeled input and is
//reported as an error.
func (m *Model) createWaterSites() error {
	m.groups = m.groups[:0]
	for iat := 0; iat < m.natoms; iat++ {
		typ := m.hbtype[iat]
		if typ == NoSite || m.isdummy[iat] {
			continue
		}
		kh := m.hbcorr[iat]
		nne := len(m.conn[iat])
		skip := func(reason string) {
			log.Printf("goagbnp: no water sites for atom %d: %s", m.int2ext[iat], reason)
		}
		g := &siteGroup{atom: iat}
		switch typ {
		case PolarH:
			if !m.ishydrogen[iat] || nne != 1 {
				skip("a polar hydrogen must be a hydrogen with one bound atom")
				continue
			}
			g.rule = rulePolarH
			g.sites = []*wSat{newSite(kh, []int{iat, m.conn[iat][0]})}
		case Trigonal:
			switch nne {
			case 1:
				ir, ir1, ir2, ok := m.trigonalFrame(iat)
				if !ok {
					skip("a terminal sp2 acceptor needs a 3-coordinated parent")
					continue
				}
				g.rule = ruleTrigonal1
				g.sites = []*wSat{
					newSite(kh, []int{iat, ir1, ir}),
					newSite(kh, []int{iat, ir2, ir}),
				}
			case 2:
				g.rule = ruleTrigonal2
				g.sites = []*wSat{newSite(kh, []int{iat, m.conn[iat][0], m.conn[iat][1]})}
			default:
				skip("sp2 acceptors have one or two bound atoms")
				continue
			}
		case TrigonalS:
			ir, ir1, ir2, ok := m.trigonalFrame(iat)
			if !ok {
				skip("a terminal sp2 acceptor needs a 3-coordinated parent")
				continue
			}
			g.rule = ruleTrigonalS
			g.sites = []*wSat{
				newSite(kh, []int{iat, ir1, ir}),
				newSite(kh, []int{iat, ir2, ir}),
				newSite(kh, []int{iat, ir, ir1}),
				newSite(kh, []int{iat, ir, ir1}),
			}
		case TrigonalOOP:
			if nne != 3 {
				return newError("createWaterSites: acceptor atom %d should have three connecting atoms, found %d", m.int2ext[iat], nne)
			}
			p := []int{iat, m.conn[iat][0], m.conn[iat][1], m.conn[iat][2]}
			g.rule = ruleTrigonalOOP
			g.sites = []*wSat{newSite(kh, p), newSite(kh, p)}
		case Tetrahedral:
			switch nne {
			case 2:
				p := []int{iat, m.conn[iat][0], m.conn[iat][1]}
				g.rule = ruleTetrahedral2
				g.sites = []*wSat{newSite(kh, p), newSite(kh, p)}
			case 3:
				p := []int{iat, m.conn[iat][0], m.conn[iat][1], m.conn[iat][2]}
				g.rule = ruleTetrahedral3
				g.sites = []*wSat{newSite(kh, p)}
			case 1:
				ir := m.conn[iat][0]
				if len(m.conn[ir]) != 4 {
					skip("a terminal sp3 acceptor needs a 4-coordinated central atom")
					continue
				}
				g.rule = ruleTetrahedral1
				g.sites = g.sites[:0]
				for _, irr := range m.conn[ir] {
					if irr != iat {
						g.sites = append(g.sites, newSite(kh, []int{iat, ir, irr}))
					}
				}
				if len(g.sites) != 3 {
					skip("could not identify the central atom substituents")
					continue
				}
			default:
				skip("sp3 acceptors have one, two or three bound atoms")
				continue
			}
		default:
			skip("unknown water site type")
			continue
		}
		m.groups = append(m.groups, g)
	}
	return nil
}

//trigonalFrame resolves, for a terminal sp2 acceptor, its parent atom
//and the parent's other two substituents.
func (m *Model) trigonalFrame(iat int) (ir, ir1, ir2 int, ok bool) {
	if len(m.conn[iat]) != 1 {
		return 0, 0, 0, false
	}
	ir = m.conn[iat][0]
	if len(m.conn[ir]) != 3 {
		return 0, 0, 0, false
	}
	ir1, ir2 = -1, -1
	for _, j := range m.conn[ir] {
		if j == iat {
			continue
		}
		if ir1 < 0 {
			ir1 = j
		} else {
			ir2 = j
		}
	}
	if ir1 < 0 || ir2 < 0 {
		return 0, 0, 0, false
	}
	return ir, ir1, ir2, true
}

//placeGroup recomputes the positions and derivative tensors of every
//site of the group from the current coordinates.
func (m *Model) placeGroup(g *siteGroup) {
	switch g.rule {
	case rulePolarH:
		s := g.sites[0]
		h := m.atomPos(s.parents[0])
		r := m.atomPos(s.parents[1])
		u, invn := unit3([3]float64{h[0] - r[0], h[1] - r[1], h[2] - r[2]})
		du := mscale(hbLength, derUnit(u, invn))
		for k := 0; k < 3; k++ {
			s.pos[k] = r[k] + hbLength*u[k]
		}
		s.dpos[0] = du
		s.dpos[1] = identityMinus(du)
	case ruleTrigonal1:
		for _, s := range g.sites {
			m.placeAntiBond(s, hbLength)
		}
	case ruleTrigonal2:
		m.placeBisector(g.sites[0], []int{g.sites[0].parents[1], g.sites[0].parents[2]}, hbLength)
	case ruleTrigonalS:
		m.placeAntiBond(g.sites[0], hbLength)
		m.placeAntiBond(g.sites[1], hbLength)
		m.placeTrigonalSOOP(g.sites[2], g.sites[3])
	case ruleTrigonalOOP:
		m.placeTrigonalOOP(g.sites[0], g.sites[1])
	case ruleTetrahedral1:
		for _, s := range g.sites {
			m.placeTetrahedral1(s)
		}
	case ruleTetrahedral2:
		m.placeTetrahedral2(g.sites[0], g.sites[1])
	case ruleTetrahedral3:
		m.placeBisector(g.sites[0], g.sites[0].parents[1:], hbLength)
	}
}

//placeAntiBond puts the site at distance d from the acceptor A
//(parents[0]), anti-aligned with the bond from parents[2] to
//parents[1]. Used for the in-plane lone pairs of terminal sp2
//acceptors.
func (m *Model) placeAntiBond(s *wSat, d float64) {
	a := m.atomPos(s.parents[0])
	rk := m.atomPos(s.parents[1])
	r := m.atomPos(s.parents[2])
	u, invn := unit3([3]float64{rk[0] - r[0], rk[1] - r[1], rk[2] - r[2]})
	du := mscale(d, derUnit(u, invn))
	for k := 0; k < 3; k++ {
		s.pos[k] = a[k] - d*u[k]
	}
	s.dpos[0] = identity3
	s.dpos[1] = mneg(du)
	s.dpos[2] = du
}

//placeBisector puts the site opposite the (normalized) sum of the bond
//unit vectors from the acceptor to its substituents. Handles both the
//2-coordinated sp2 and the 3-coordinated sp3 acceptor geometries.
func (m *Model) placeBisector(s *wSat, subs []int, d float64) {
	a := m.atomPos(s.parents[0])
	var sum [3]float64
	us := make([][3]float64, len(subs))
	duk := make([][3][3]float64, len(subs))
	for i, iat := range subs {
		p := m.atomPos(iat)
		u, invn := unit3([3]float64{p[0] - a[0], p[1] - a[1], p[2] - a[2]})
		us[i] = u
		duk[i] = derUnit(u, invn)
		for k := 0; k < 3; k++ {
			sum[k] += u[k]
		}
	}
	up, invs := unit3(sum)
	dp := derUnit(up, invs)
	for k := 0; k < 3; k++ {
		s.pos[k] = a[k] - d*up[k]
	}
	var total [3][3]float64
	for i := range subs {
		var chain [3][3]float64
		matmul3(&dp, &duk[i], &chain)
		der := mscale(-d, chain)
		s.dpos[1+i] = der
		total = madd(total, der)
	}
	s.dpos[0] = identityMinus(total)
}

//placeTrigonalSOOP places the two out-of-plane sites of an sp2
//acceptor with extra lone-pair density (e.g. carboxylate oxygens), at
//60 degrees from the in-plane direction on both sides of the plane.
func (m *Model) placeTrigonalSOOP(s1, s2 *wSat) {
	const cos60, sin60 = 0.5, 0.866025
	a := m.atomPos(s1.parents[0])
	r := m.atomPos(s1.parents[1])
	r1 := m.atomPos(s1.parents[2])
	vin := [3]float64{a[0] - r[0], a[1] - r[1], a[2] - r[2]}
	uin, invin := unit3(vin)
	din := derUnit(uin, invin)
	va := [3]float64{r1[0] - r[0], r1[1] - r[1], r1[2] - r[2]}
	vc, dera, derb := cross3(va, vin)
	uout, invout := unit3(vc)
	dout := derUnit(uout, invout)
	var doutA, doutR1 [3][3]float64
	matmul3(&dout, &derb, &doutA)
	matmul3(&dout, &dera, &doutR1)

	wIn := hbLength * cos60
	wOut := hbLength * sin60
	for sgn, s := range []*wSat{s1, s2} {
		sg := 1.0
		if sgn == 1 {
			sg = -1.0
		}
		for k := 0; k < 3; k++ {
			s.pos[k] = a[k] + wIn*uin[k] + sg*wOut*uout[k]
		}
		dA := madd(mscale(wIn, din), mscale(sg*wOut, doutA))
		dR1 := mscale(sg*wOut, doutR1)
		s.dpos[0] = madd(identity3, dA)
		s.dpos[2] = dR1
		//translation invariance fixes the parent between them
		s.dpos[1] = mneg(madd(dA, dR1))
	}
}

//placeTrigonalOOP places the two sites of a pure out-of-plane acceptor
//along the normal of the plane of its three substituents.
func (m *Model) placeTrigonalOOP(s1, s2 *wSat) {
	a := m.atomPos(s1.parents[0])
	p1 := m.atomPos(s1.parents[1])
	p2 := m.atomPos(s1.parents[2])
	p3 := m.atomPos(s1.parents[3])
	v1 := [3]float64{p2[0] - p1[0], p2[1] - p1[1], p2[2] - p1[2]}
	v2 := [3]float64{p3[0] - p1[0], p3[1] - p1[1], p3[2] - p1[2]}
	vc, dera, derb := cross3(v2, v1)
	nu, invn := unit3(vc)
	dn := derUnit(nu, invn)
	var dR2, dR3 [3][3]float64
	matmul3(&dn, &derb, &dR2)
	matmul3(&dn, &dera, &dR3)

	d := hbLength + 0.2
	for sgn, s := range []*wSat{s1, s2} {
		sg := d
		if sgn == 1 {
			sg = -d
		}
		for k := 0; k < 3; k++ {
			s.pos[k] = a[k] + sg*nu[k]
		}
		s.dpos[0] = identity3
		s.dpos[2] = mscale(sg, dR2)
		s.dpos[3] = mscale(sg, dR3)
		s.dpos[1] = mneg(madd(s.dpos[2], s.dpos[3]))
	}
}

//placeTetrahedral1 places one site anti-aligned with the bond from the
//central atom (parents[1]) to one of its substituents (parents[2]),
//centered on the terminal acceptor. Sulphone and sulphate oxygens are
//the typical case.
func (m *Model) placeTetrahedral1(s *wSat) {
	a := m.atomPos(s.parents[0])
	r := m.atomPos(s.parents[1])
	rk := m.atomPos(s.parents[2])
	u, invn := unit3([3]float64{rk[0] - r[0], rk[1] - r[1], rk[2] - r[2]})
	du := mscale(hbLength, derUnit(u, invn))
	for k := 0; k < 3; k++ {
		s.pos[k] = a[k] - hbLength*u[k]
	}
	s.dpos[0] = identity3
	s.dpos[1] = du
	s.dpos[2] = mneg(du)
}

//placeTetrahedral2 places the two lone-pair sites of a 2-coordinated
//sp3 acceptor (e.g. an ether or water oxygen), tetrahedrally arranged
//with respect to the two bonds.
func (m *Model) placeTetrahedral2(s1, s2 *wSat) {
	const costh = -0.577350269 // -1/sqrt(3)
	const sinth = 0.816496581  // sqrt(2/3)
	a := m.atomPos(s1.parents[0])
	p1 := m.atomPos(s1.parents[1])
	p2 := m.atomPos(s1.parents[2])
	r1 := [3]float64{p1[0] - a[0], p1[1] - a[1], p1[2] - a[2]}
	r2 := [3]float64{p2[0] - a[0], p2[1] - a[1], p2[2] - a[2]}
	d1, inv1 := unit3(r1)
	d2, inv2 := unit3(r2)
	sum := [3]float64{d1[0] + d2[0], d1[1] + d2[1], d1[2] + d2[2]}
	dpin, invs := unit3(sum)
	vc, dera, derb := cross3(r2, r1)
	dout, invc := unit3(vc)

	dp := derUnit(dpin, invs)
	du1 := derUnit(d1, inv1)
	du2 := derUnit(d2, inv2)
	var drp1, drp2 [3][3]float64
	matmul3(&dp, &du1, &drp1)
	matmul3(&dp, &du2, &drp2)
	dt := derUnit(dout, invc)
	var dtR1, dtR2 [3][3]float64
	matmul3(&dt, &derb, &dtR1)
	matmul3(&dt, &dera, &dtR2)

	wIn := hbLength * costh
	wOut := hbLength * sinth
	for sgn, s := range []*wSat{s1, s2} {
		sg := 1.0
		if sgn == 1 {
			sg = -1.0
		}
		for k := 0; k < 3; k++ {
			s.pos[k] = a[k] + wIn*dpin[k] + sg*wOut*dout[k]
		}
		dR1 := madd(mscale(wIn, drp1), mscale(sg*wOut, dtR1))
		dR2 := madd(mscale(wIn, drp2), mscale(sg*wOut, dtR2))
		s.dpos[1] = dR1
		s.dpos[2] = dR2
		s.dpos[0] = identityMinus(madd(dR1, dR2))
	}
}

//wsFreeVolumes computes, for the worker's site groups, the free volume
//of each site against the scaled heavy-atom Gaussians, the resulting
//correction energy, and its full gradient: the direct position channel
//(atoms and, through the placement tensors, parents) plus the
//accumulation of the scaled-volume channel consumed later by the
//overlap contraction.
func (wd *workData) wsFreeVolumes(m *Model, init bool) {
	for _, g := range m.groups {
		if g.atom < wd.a0 || g.atom >= wd.a1 {
			continue
		}
		m.placeGroup(g)
		for _, s := range g.sites {
			if init {
				wd.gatherSiteNeighbors(m, s)
			}
			root := gParm{a: kfc / (s.r * s.r), p: pfc, c: s.pos}
			//value pass
			s.freeVolume = s.volume
			wd.overlapTree(m, root, s.r, s.nlist, m.spPrefac, wd.noDers,
				func(order int, volp, raw float64) {
					s.freeVolume += wd.coeff[order-1] * volp
				})
			s.sp = s.freeVolume / s.volume
			sw, swp, _ := polSwitch(s.sp, hbSwA, hbSwB)
			wd.ehb += s.khb * sw
			s.dhw = s.khb * swp / s.volume
			if s.dhw == 0 {
				continue
			}
			//derivative pass
			ders := wd.ders
			wd.overlapTree(m, root, s.r, s.nlist, m.spPrefac, ders,
				func(order int, volp, raw float64) {
					w := s.dhw * wd.coeff[order-1]
					for k := 1; k < order; k++ {
						kat := wd.gatlist[k]
						for c := 0; c < 3; c++ {
							wd.dehb[kat][c] += w * ders.dr[k][c]
						}
						if m.sp[kat] > 1e-10 {
							wd.derh[kat] += w * ders.fp * raw / m.sp[kat]
						}
					}
					//back-propagate the site position derivative to
					//the parents
					v := ders.dr[0]
					for p, pat := range s.parents {
						dp := &s.dpos[p]
						for c := 0; c < 3; c++ {
							wd.dehb[pat][c] += w * (v[0]*dp[0][c] + v[1]*dp[1][c] + v[2]*dp[2][c])
						}
					}
				})
		}
	}
}

//gatherSiteNeighbors caches the heavy atoms whose unscaled Gaussian
//meaningfully overlaps the site sphere, sorted by distance.
func (wd *workData) gatherSiteNeighbors(m *Model, s *wSat) {
	wd.nbidx = wd.nbidx[:0]
	wd.nbd2 = wd.nbd2[:0]
	sa := kfc / (s.r * s.r)
	for _, iat := range m.iheavy {
		dx := m.x[iat] - s.pos[0]
		dy := m.y[iat] - s.pos[1]
		dz := m.z[iat] - s.pos[2]
		d2 := dx*dx + dy*dy + dz*dz
		u := (m.r[iat] + s.r) * nbOffset
		if d2 >= u*u {
			continue
		}
		raw := ogauss2body(s.pos, [3]float64{m.x[iat], m.y[iat], m.z[iat]},
			sa, m.galpha[iat], pfc, m.gprefac[iat])
		if raw > minVolA {
			wd.nbidx = append(wd.nbidx, iat)
			wd.nbd2 = append(wd.nbd2, d2)
		}
	}
	sortByDist(wd.nbidx, wd.nbd2)
	s.nlist = append(s.nlist[:0], wd.nbidx...)
}
