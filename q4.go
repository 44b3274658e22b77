/*
 * q4.go, part of goagbnp.
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

//q4.go implements the pairwise descreening integral of the Born radius
//calculation: the integral of 1/r^4 over the sphere of the descreening
//atom j, excluding the region closer to atom i than its own radius. The
//closed form has three branches (separated, overlapping and included
//spheres). Since only a small set of radius ratios occurs in a given
//system, the integral is tabulated at registration time on cubic
//splines keyed by the quantized ratio, and the hot path only
//interpolates.

package agbnp

import (
	"math"
	"sort"

	"github.com/rmera/goagbnp/spline"
)

//q4 returns the descreening integral and its derivative with respect
//to the distance, for a descreened atom of radius ri at distance rij
//from a descreening sphere of radius rj. The three branches join with
//continuous value and derivative.
func q4(rij, ri, rj float64) (q, dr float64) {
	u1 := rij + rj
	if rij > ri+rj { //separated
		u2 := rij - rj
		u3 := u1 * u2
		u4 := 0.5 * math.Log(u1/u2)
		q = 2.0 * pi * (rj/u3 - u4/rij)
		dr = 2.0 * pi * ((rj/(rij*u3))*(1.0-2.0*rij*rij/u3) + u4/(rij*rij))
		return q, dr
	}
	if rij*rij > (rj-ri)*(rj-ri) { //overlapping
		u3 := rij*rij - rj*rj
		u4 := 1.0 / u1
		u5 := 1.0 / ri
		u6 := 0.5 * math.Log(u1/ri)
		q = 2.0 * pi * (-(u4 - u5) + (0.25*u3*(u4*u4-u5*u5)-u6)/rij)
		dr = 2.0 * pi * (0.5*(1.0-0.5*u3/(rij*rij))*(u4*u4-u5*u5) + u6/(rij*rij))
		return q, dr
	}
	//one sphere included in the other
	if ri > rj {
		//the descreener is buried inside atom i and does not
		//descreen it at all
		return 0, 0
	}
	u3 := rij*rij - rj*rj
	if rij < 0.001*rj {
		//expansion around rij=0, where the log form loses precision
		a := rij / rj
		q = 2.0 * pi * (2.0/ri + rj/u3 - (1.0+(2.0/3.0)*a*a)/rj)
		dr = -(4.0 * pi * a / (rj * rj)) * (1.0/(a*a-1.0) + 2.0/3.0)
		return q, dr
	}
	u2 := rj - rij
	u6 := 0.5 * math.Log(u1/u2)
	q = 2.0 * pi * (2.0/ri + rj/u3 - u6/rij)
	dr = 2.0 * pi * (-(rj/u3)*(2.0*rij/u3-1.0/rij) + u6/(rij*rij))
	return q, dr
}

//q4Key quantizes a reduced-radius parameter into a table key.
func q4Key(b float64) int {
	return int(b*keyScale + 0.5)
}

//q4Table interpolates the descreening integral for every pair of
//radius types present in a registered system. Tables are stored in
//reduced units (descreener radius 1) and keyed by the quantized ratio
//of descreened to descreener radius.
type q4Table struct {
	tables map[int]*spline.Table
	amax   float64
}

//newQ4Table tabulates the descreening integral for every combination
//of a descreened radius from ri (van der Waals radii) and a descreening
//radius from rj (volume radii). Duplicate radii collapse to a single
//table each.
func newQ4Table(ri, rj []float64, n int, amax float64) (*q4Table, error) {
	ti := radiusTypes(ri)
	tj := radiusTypes(rj)
	t := &q4Table{tables: make(map[int]*spline.Table), amax: amax}
	da := amax / float64(n-1)
	y := make([]float64, n)
	for _, a := range ti {
		for _, b := range tj {
			key := q4Key(a / b)
			if _, ok := t.tables[key]; ok {
				continue
			}
			ratio := a / b
			for i := 0; i < n; i++ {
				y[i], _ = q4(float64(i)*da, ratio, 1.0)
			}
			//the integral decays to zero well before amax
			y[n-1] = 0
			_, yp1 := q4(0, ratio, 1.0)
			tbl, err := spline.NewTable(da, y, yp1, 0)
			if err != nil {
				return nil, errDecorate(err, "newQ4Table")
			}
			t.tables[key] = tbl
		}
	}
	return t, nil
}

//eval interpolates the descreening integral and its distance derivative
//for a descreened atom of radius ri at distance rij from a descreener
//of radius rj. The radius pair must have been seen at table setup.
func (t *q4Table) eval(rij, ri, rj float64) (q, dr float64, err error) {
	tbl, ok := t.tables[q4Key(ri/rj)]
	if !ok {
		return 0, 0, newError("q4Table: unknown radius combination %f %f", ri, rj)
	}
	f, fp := tbl.Interpolate(rij / rj)
	return f / rj, fp / (rj * rj), nil
}

//radiusTypes returns the distinct values in r, sorted.
func radiusTypes(r []float64) []float64 {
	seen := make(map[float64]bool, len(r))
	types := make([]float64, 0, 8)
	for _, v := range r {
		if !seen[v] {
			seen[v] = true
			types = append(types, v)
		}
	}
	sort.Float64s(types)
	return types
}
