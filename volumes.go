/*
 * volumes.go, part of goagbnp.
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

//volumes.go computes the Gaussian self-volumes and surface areas of the
//heavy atoms by inclusion-exclusion over overlap sets, the scaling
//factors derived from them, and, once the per-atom energy weights are
//known, the contraction of the overlap derivatives into the gradient of
//each energy component.

package agbnp

//overlapTree runs the depth-first inclusion-exclusion recursion rooted
//at the given Gaussian over the (distance-sorted) neighbor list,
//calling visit for every overlap of order two or more that passes the
//volume filter. Branches whose filtered volume vanishes are pruned,
//since adding atoms to an overlap only shrinks it. prefac supplies the
//Gaussian prefactor of each neighbor atom. The atoms of the current
//overlap are left in wd.gatlist[1:order]; slot 0 belongs to the root
//and is set by the caller.
func (wd *workData) overlapTree(m *Model, root gParm, rootR float64,
	nlist []int, prefac []float64, ders *overlapDers,
	visit func(order int, volp, raw float64)) {
	nn := len(nlist)
	maxOrder := len(wd.gx)
	wd.gx[0] = root.c
	wd.ga[0] = root.a
	wd.gp[0] = root.p
	wd.gr[0] = rootR
	wd.gparams[0] = root

	order := 2
	wd.gnlist[1] = 0
	for nn > 0 && order > 1 {
		j := wd.gnlist[order-1]
		jat := nlist[j]
		wd.gatlist[order-1] = jat
		wd.gx[order-1] = [3]float64{m.x[jat], m.y[jat], m.z[jat]}
		wd.ga[order-1] = m.galpha[jat]
		wd.gp[order-1] = prefac[jat]
		wd.gr[order-1] = m.r[jat]

		volp, raw, next := ogaussIncremental(order, wd.gx, wd.ga, wd.gp, wd.gr,
			wd.gparams[order-2], minVolA, minVolB, ders)
		wd.gparams[order-1] = next

		if volp > 0 && order < maxOrder {
			visit(order, volp, raw)
			order++
			wd.gnlist[order-1] = wd.gnlist[order-2] + 1
		} else {
			wd.gnlist[order-1]++
		}
		for order > 1 && wd.gnlist[order-1] >= nn {
			order--
			wd.gnlist[order-1]++
		}
	}
}

//selfVolumes accumulates, for the worker's heavy atoms, the overlap
//contributions to the self-volumes (each overlap split evenly among
//its members) and to the raw surface areas (via the radius derivative
//of each overlap). The order-one terms are seeded by the reduction.
func (wd *workData) selfVolumes(m *Model) {
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		root := gParm{a: m.galpha[iat], p: m.gprefac[iat],
			c: [3]float64{m.x[iat], m.y[iat], m.z[iat]}}
		wd.gatlist[0] = iat
		ders := wd.noDers
		wd.overlapTree(m, root, m.r[iat], wd.near[hi-wd.h0], m.gprefac, ders,
			func(order int, volp, raw float64) {
				c := wd.coeff[order-1]
				for k := 0; k < order; k++ {
					kat := wd.gatlist[k]
					wd.volumep[kat] += c * volp / float64(order)
					wd.surfarea[kat] += c * ders.dR[k]
				}
			})
	}
}

//scalingFactors turns raw self-volumes and areas into the quantities
//of the energy expressions: filtered areas, area-filter derivative
//factors, and the scaled volumes before (spe) and after (sp) removing
//the outer shell between the van der Waals and the volume radius.
//It also accumulates the cavity energies and the molecular volume,
//which depend on nothing further.
func (wd *workData) scalingFactors(m *Model) {
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		araw := m.surfAreaRaw[iat]
		f, fp := swfArea(araw)
		aF := araw * f
		m.surfArea[iat] = aF
		m.gammap[iat] = m.gamma[iat] * (f + araw*fp)
		vp := m.volumep[iat]
		m.spe[iat] = vp / m.vols[iat]
		R := m.r[iat]
		rv := m.rvdw[iat]
		us := R * (1.0 - (rv/R)*(rv/R)*(rv/R)) / 3.0
		m.psvol[iat] = (f + araw*fp) * us
		vp -= aF * us
		m.volumep[iat] = vp
		m.sp[iat] = vp / m.vols[iat]
		wd.ecav += m.igamma[iat] * aF
		wd.ecorrCav += m.sgamma[iat] * aF
		wd.molVol += vp
	}
}

//volumeDers repeats the overlap recursion of selfVolumes, now with the
//full derivative tensors, and contracts them with the per-atom energy
//weights: the self-volume channel (how each energy moves when a scaled
//volume changes) through the position derivative of each overlap, and
//the surface-area channels (cavity energy directly, the others through
//the shell subtraction) through the position derivative of each radius
//derivative.
func (wd *workData) volumeDers(m *Model) {
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		root := gParm{a: m.galpha[iat], p: m.gprefac[iat],
			c: [3]float64{m.x[iat], m.y[iat], m.z[iat]}}
		wd.gatlist[0] = iat
		ders := wd.ders
		wd.overlapTree(m, root, m.r[iat], wd.near[hi-wd.h0], m.gprefac, ders,
			func(order int, volp, raw float64) {
				c := wd.coeff[order-1]
				var wGB, wVW, wHB float64
				for k := 0; k < order; k++ {
					kat := wd.gatlist[k]
					wGB += m.wvGB[kat]
					wVW += m.wvVW[kat]
					wHB += m.wvHB[kat]
				}
				u := c / float64(order)
				wGB *= u
				wVW *= u
				wHB *= u
				for mm := 0; mm < order; mm++ {
					mat := wd.gatlist[mm]
					dr := ders.dr[mm]
					for k := 0; k < 3; k++ {
						wd.dgbdr[mat][k] += wGB * dr[k]
						wd.dvwdr[mat][k] += wVW * dr[k]
						wd.dehb[mat][k] += wHB * dr[k]
					}
					for j := 0; j < order; j++ {
						jat := wd.gatlist[j]
						d2 := ders.d2rR[mm][j]
						gc := c * m.gammap[jat]
						gb := -c * m.wvGB[jat] * m.psvol[jat]
						vw := -c * m.wvVW[jat] * m.psvol[jat]
						hb := -c * m.wvHB[jat] * m.psvol[jat]
						for k := 0; k < 3; k++ {
							wd.decav[mat][k] += gc * d2[k]
							wd.dgbdr[mat][k] += gb * d2[k]
							wd.dvwdr[mat][k] += vw * d2[k]
							wd.dehb[mat][k] += hb * d2[k]
						}
					}
				}
			})
	}
}
