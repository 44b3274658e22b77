/*
 * gb.go, part of goagbnp.
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

//gb.go computes the generalized-Born energy and the parts of the
//gradients that flow through the Born radii. Energies are accumulated
//in charge^2/Angstrom and converted to kcal/mol at the end of the
//evaluation.

package agbnp

import "math"

//gbEnergy accumulates the self and pair generalized-Born energies of
//the worker's atoms, the explicit distance part of the GB gradient,
//and the derivative of the pair energy with respect to each Born
//radius, which the descreening chain consumes later.
func (wd *workData) gbEnergy(m *Model) {
	df := m.df
	for iat := wd.a0; iat < wd.a1; iat++ {
		if m.isdummy[iat] {
			continue
		}
		qi := m.charge[iat]
		wd.egbSelf += df * qi * qi * m.beta[iat]
		for jat := iat + 1; jat < m.natoms; jat++ {
			if m.isdummy[jat] {
				continue
			}
			dx := m.x[iat] - m.x[jat]
			dy := m.y[iat] - m.y[jat]
			dz := m.z[iat] - m.z[jat]
			d2 := dx*dx + dy*dy + dz*dz
			bb := m.br[iat] * m.br[jat]
			u := math.Exp(-d2 / (4.0 * bb))
			fgb2 := d2 + bb*u
			fgb := math.Sqrt(fgb2)
			qq := df * qi * m.charge[jat]
			wd.egbPair += 2.0 * qq / fgb

			w := -qq * (1.0 - 0.25*u) / (fgb2 * fgb)
			wd.dgbdr[iat][0] += 2.0 * w * dx
			wd.dgbdr[iat][1] += 2.0 * w * dy
			wd.dgbdr[iat][2] += 2.0 * w * dz
			wd.dgbdr[jat][0] -= 2.0 * w * dx
			wd.dgbdr[jat][1] -= 2.0 * w * dy
			wd.dgbdr[jat][2] -= 2.0 * w * dz

			t := qq * u / (fgb2 * fgb)
			wd.dEdb[iat] -= t * (m.br[jat] + 0.25*d2/m.br[iat])
			wd.dEdb[jat] -= t * (m.br[iat] + 0.25*d2/m.br[jat])
		}
	}
}

//gbWeights turns the reduced per-atom energy derivatives into the
//weights of the descreening chain: q2ab is the derivative of the GB
//energy with respect to the raw inverse Born radius, abrw the same for
//the van der Waals term.
func (wd *workData) gbWeights(m *Model) {
	for iat := wd.a0; iat < wd.a1; iat++ {
		if m.isdummy[iat] {
			m.q2ab[iat] = 0
			m.abrw[iat] = 0
			continue
		}
		fp := m.betaDer[iat]
		b := m.br[iat]
		m.q2ab[iat] = fp * (m.df*m.charge[iat]*m.charge[iat] - b*b*m.dEdb[iat])
		m.abrw[iat] = fp * m.alpha[iat] * m.brw[iat]
	}
}

//gbDerTraversal walks the cached descreening integrals in the exact
//order inverseBornRadii stored them, and produces (a) the explicit
//distance part of the descreening gradients, at fixed scaled volumes,
//and (b) the volume-channel accumulators deru and derv: how the GB and
//van der Waals energies respond to the scaled volume of each
//descreener.
func (wd *workData) gbDerTraversal(m *Model) {
	cur := 0
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		for _, list := range [2][]int{wd.near[hi-wd.h0], wd.far[hi-wd.h0]} {
			for _, jat := range list {
				dx := m.x[iat] - m.x[jat]
				dy := m.y[iat] - m.y[jat]
				dz := m.z[iat] - m.z[jat]
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				qij := wd.q4cache[cur]
				dqij := wd.q4cache[cur+1]
				qji := wd.q4cache[cur+2]
				dqji := wd.q4cache[cur+3]
				cur += 4

				//iat descreened by jat, then jat descreened by iat;
				//both directions share the same pair vector
				s := oneOver4pi * m.sp[jat] * dqij / d
				gb := -m.q2ab[iat] * s
				vw := -m.abrw[iat] * s
				s = oneOver4pi * m.sp[iat] * dqji / d
				gb -= m.q2ab[jat] * s
				vw -= m.abrw[jat] * s
				wd.dgbdr[iat][0] += gb * dx
				wd.dgbdr[iat][1] += gb * dy
				wd.dgbdr[iat][2] += gb * dz
				wd.dgbdr[jat][0] -= gb * dx
				wd.dgbdr[jat][1] -= gb * dy
				wd.dgbdr[jat][2] -= gb * dz
				wd.dvwdr[iat][0] += vw * dx
				wd.dvwdr[iat][1] += vw * dy
				wd.dvwdr[iat][2] += vw * dz
				wd.dvwdr[jat][0] -= vw * dx
				wd.dvwdr[jat][1] -= vw * dy
				wd.dvwdr[jat][2] -= vw * dz

				wd.deru[jat] += m.q2ab[iat] * qij
				wd.derv[jat] += m.abrw[iat] * qij
				wd.deru[iat] += m.q2ab[jat] * qji
				wd.derv[iat] += m.abrw[jat] * qji
			}
		}
		for _, hat := range m.ihydrogen {
			dx := m.x[hat] - m.x[iat]
			dy := m.y[hat] - m.y[iat]
			dz := m.z[hat] - m.z[iat]
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			q := wd.q4cache[cur]
			dq := wd.q4cache[cur+1]
			cur += 2

			s := oneOver4pi * m.sp[iat] * dq / d
			gb := -m.q2ab[hat] * s
			vw := -m.abrw[hat] * s
			wd.dgbdr[hat][0] += gb * dx
			wd.dgbdr[hat][1] += gb * dy
			wd.dgbdr[hat][2] += gb * dz
			wd.dgbdr[iat][0] -= gb * dx
			wd.dgbdr[iat][1] -= gb * dy
			wd.dgbdr[iat][2] -= gb * dz
			wd.dvwdr[hat][0] += vw * dx
			wd.dvwdr[hat][1] += vw * dy
			wd.dvwdr[hat][2] += vw * dz
			wd.dvwdr[iat][0] -= vw * dx
			wd.dvwdr[iat][1] -= vw * dy
			wd.dvwdr[iat][2] -= vw * dz

			wd.deru[iat] += m.q2ab[hat] * q
			wd.derv[iat] += m.abrw[hat] * q
		}
	}
}

//gbVolumeWeights converts the reduced volume-channel accumulators into
//per-unit-volume weights for the overlap contraction.
func (wd *workData) gbVolumeWeights(m *Model) {
	for iat := wd.a0; iat < wd.a1; iat++ {
		if !m.isheavy[iat] {
			m.wvGB[iat] = 0
			m.wvVW[iat] = 0
			m.wvHB[iat] = 0
			continue
		}
		m.wvGB[iat] = -oneOver4pi * m.deru[iat] / m.vols[iat]
		m.wvVW[iat] = -oneOver4pi * m.derv[iat] / m.vols[iat]
		m.wvHB[iat] = m.derh[iat] / m.vols[iat]
	}
}
