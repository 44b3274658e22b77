/*
 * born.go, part of goagbnp.
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

//born.go computes the pairwise-descreening Born radii. The inverse
//Born radius of an atom starts at the inverse of its van der Waals
//radius and is reduced by the descreening integral of every heavy
//neighbor, weighted by the neighbor's scaled self-volume. The result
//is switched onto a small positive floor so Born radii stay finite.

package agbnp

import "math"

const oneOver4pi = 1.0 / (4.0 * pi)

//inverseBornRadii accumulates the pair contributions to the raw
//inverse Born radii of the worker's atoms, filling the descreening
//cache consumed later by the derivative stages. The traversal order
//(near lists, then far lists, then hydrogens) is the contract between
//this function and gbDerTraversal; they must never diverge.
//
//On init=false calls the cache layout matches the previous call, and
//the integrals of frozen-frozen pairs only depend on their fixed
//geometry, so those slots are read back instead of recomputed. The
//scaled-volume weights are applied fresh either way, since mobile
//atoms can change the self-volume of a frozen one.
func (wd *workData) inverseBornRadii(m *Model, init bool) error {
	cur := 0
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		for _, list := range [2][]int{wd.near[hi-wd.h0], wd.far[hi-wd.h0]} {
			for _, jat := range list {
				var qij, qji float64
				if !init && m.isfrozen[iat] && m.isfrozen[jat] {
					qij = wd.q4cache[cur]
					qji = wd.q4cache[cur+2]
				} else {
					dx := m.x[iat] - m.x[jat]
					dy := m.y[iat] - m.y[jat]
					dz := m.z[iat] - m.z[jat]
					d := math.Sqrt(dx*dx + dy*dy + dz*dz)
					var dqij, dqji float64
					var err error
					qij, dqij, err = m.q4tbl.eval(d, m.rvdw[iat], m.r[jat])
					if err != nil {
						return errDecorate(err, "inverseBornRadii")
					}
					qji, dqji, err = m.q4tbl.eval(d, m.rvdw[jat], m.r[iat])
					if err != nil {
						return errDecorate(err, "inverseBornRadii")
					}
					wd.q4cache[cur] = qij
					wd.q4cache[cur+1] = dqij
					wd.q4cache[cur+2] = qji
					wd.q4cache[cur+3] = dqji
				}
				cur += 4
				wd.br1[iat] -= oneOver4pi * m.sp[jat] * qij
				wd.br1[jat] -= oneOver4pi * m.sp[iat] * qji
			}
		}
		//hydrogens are descreened by heavy atoms but, having no
		//volume, descreen nothing themselves
		for _, hat := range m.ihydrogen {
			var q float64
			if !init && m.isfrozen[iat] && m.isfrozen[hat] {
				q = wd.q4cache[cur]
			} else {
				dx := m.x[hat] - m.x[iat]
				dy := m.y[hat] - m.y[iat]
				dz := m.z[hat] - m.z[iat]
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				var dq float64
				var err error
				q, dq, err = m.q4tbl.eval(d, m.rvdw[hat], m.r[iat])
				if err != nil {
					return errDecorate(err, "inverseBornRadii")
				}
				wd.q4cache[cur] = q
				wd.q4cache[cur+1] = dq
			}
			cur += 2
			wd.br1[hat] -= oneOver4pi * m.sp[iat] * q
		}
	}
	return nil
}

//bornRadii switches the reduced raw inverse Born radii of the atoms in
//the worker's range and derives the quantities the energy stages need:
//the Born radius itself and the auxiliary factor of the van der Waals
//term derivative. It also accumulates the van der Waals energies,
//which only depend on the Born radii.
func (wd *workData) bornRadii(m *Model) {
	for iat := wd.a0; iat < wd.a1; iat++ {
		if m.isdummy[iat] {
			continue
		}
		beta, fp := swfInvBr(m.beta[iat])
		m.beta[iat] = beta
		m.betaDer[iat] = fp
		b := 1.0 / beta
		m.br[iat] = b
		u := b + wRadius
		m.brw[iat] = 3.0 * b * b / (u * u * u * u)
		wd.evdw += m.ialpha[iat]/(u*u*u) + m.idelta[iat]
		wd.ecorrVdw += m.salpha[iat]/(u*u*u) + m.sdelta[iat]
	}
}
