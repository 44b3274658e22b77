/*
 * nlist.go, part of goagbnp.
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

//nlist.go builds the heavy-atom neighbor lists. Each heavy atom gets a
//"near" list (heavy atoms of higher index within overlap range, sorted
//by distance so the overlap recursion prunes early) and a "far" list
//(the rest of the higher-index heavy atoms, which cannot overlap but
//still descreen).

package agbnp

import "sort"

//sortByDist sorts idx in place by the corresponding squared distances,
//breaking ties by index so the order is reproducible.
func sortByDist(idx []int, d2 []float64) {
	perm := make([]int, len(idx))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool {
		pa, pb := perm[a], perm[b]
		if d2[pa] != d2[pb] {
			return d2[pa] < d2[pb]
		}
		return idx[pa] < idx[pb]
	})
	sorted := make([]int, len(idx))
	for i, p := range perm {
		sorted[i] = idx[p]
	}
	copy(idx, sorted)
}

//neighborLists rebuilds the near and far heavy neighbor lists of the
//worker's heavy atoms from the current coordinates.
func (wd *workData) neighborLists(m *Model) {
	n := wd.h1 - wd.h0
	if cap(wd.near) < n {
		wd.near = make([][]int, n)
		wd.far = make([][]int, n)
	}
	wd.near = wd.near[:n]
	wd.far = wd.far[:n]
	for hi := wd.h0; hi < wd.h1; hi++ {
		iat := m.iheavy[hi]
		near := wd.near[hi-wd.h0][:0]
		far := wd.far[hi-wd.h0][:0]
		wd.nbd2 = wd.nbd2[:0]
		for hj := hi + 1; hj < m.nheavy; hj++ {
			jat := m.iheavy[hj]
			dx := m.x[jat] - m.x[iat]
			dy := m.y[jat] - m.y[iat]
			dz := m.z[jat] - m.z[iat]
			d2 := dx*dx + dy*dy + dz*dz
			u := (m.r[iat] + m.r[jat]) * nbOffset
			if d2 < u*u {
				near = append(near, jat)
				wd.nbd2 = append(wd.nbd2, d2)
			} else {
				far = append(far, jat)
			}
		}
		sortByDist(near, wd.nbd2)
		wd.near[hi-wd.h0] = near
		wd.far[hi-wd.h0] = far
	}
	//the descreening cache covers every pair this worker traverses:
	//4 floats per heavy-heavy pair, 2 per hydrogen-heavy pair.
	size := 0
	for i := range wd.near {
		size += 4 * (len(wd.near[i]) + len(wd.far[i]))
	}
	size += 2 * (wd.h1 - wd.h0) * len(m.ihydrogen)
	if cap(wd.q4cache) < size {
		wd.q4cache = make([]float64, size, int(float64(size)*growth))
	}
	wd.q4cache = wd.q4cache[:size]
}
