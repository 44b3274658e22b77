/*
 * q4_test.go, part of goagbnp.
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
	"fmt"
	"math"
	"testing"
)

func TestQ4BranchContinuity(Te *testing.T) {
	ri, rj := 1.5, 2.2
	eps := 1e-9
	//separated/overlapping boundary
	qa, _ := q4(ri+rj+eps, ri, rj)
	qb, _ := q4(ri+rj-eps, ri, rj)
	if math.Abs(qa-qb) > 1e-6 {
		Te.Errorf("discontinuity at rij=ri+rj: %v vs %v", qa, qb)
	}
	//overlapping/included boundary
	qa, _ = q4(rj-ri+eps, ri, rj)
	qb, _ = q4(rj-ri-eps, ri, rj)
	if math.Abs(qa-qb) > 1e-6 {
		Te.Errorf("discontinuity at rij=rj-ri: %v vs %v", qa, qb)
	}
	//equal radii, rij towards zero: no NaN, finite value
	q, dr := q4(1e-8, 1.8, 1.8)
	if math.IsNaN(q) || math.IsInf(q, 0) || math.IsNaN(dr) {
		Te.Errorf("q4 blows up at rij->0 with equal radii: %v %v", q, dr)
	}
	//a descreener buried inside the atom contributes nothing
	if q, _ := q4(0.1, 2.5, 1.0); q != 0 {
		Te.Errorf("buried descreener should not descreen: %v", q)
	}
	fmt.Println("q4 boundaries OK")
}

func TestQ4Derivative(Te *testing.T) {
	ri, rj := 1.5, 2.2
	h := 1e-7
	for _, rij := range []float64{0.9, 2.0, 4.5, 7.0} {
		_, dr := q4(rij, ri, rj)
		qp, _ := q4(rij+h, ri, rj)
		qm, _ := q4(rij-h, ri, rj)
		fd := (qp - qm) / (2 * h)
		if math.Abs(fd-dr) > 1e-4*(1+math.Abs(fd)) {
			Te.Errorf("dq4/dr at %v: analytic %v, numeric %v", rij, dr, fd)
		}
	}
}

func TestQ4Table(Te *testing.T) {
	ri := []float64{1.2, 1.5}
	rj := []float64{2.0, 2.2}
	o := DefaultOptions()
	tbl, err := newQ4Table(ri, rj, o.TableSize(), o.TableMax())
	if err != nil {
		Te.Fatal(err)
	}
	for _, a := range ri {
		for _, b := range rj {
			for rij := 0.3; rij < 8.0; rij += 0.17 {
				want, _ := q4(rij, a, b)
				got, _, err := tbl.eval(rij, a, b)
				if err != nil {
					Te.Fatal(err)
				}
				if math.Abs(got-want) > 1e-3*(1+math.Abs(want)) {
					Te.Errorf("table eval(%v,%v,%v): got %v want %v", rij, a, b, got, want)
				}
			}
			//beyond the tabulated range the integral is negligible
			got, dr, err := tbl.eval(b*o.TableMax()*1.5, a, b)
			if err != nil || got != 0 || dr != 0 {
				Te.Errorf("beyond-range eval should vanish: %v %v %v", got, dr, err)
			}
		}
	}
	//radius pairs never registered are an error
	if _, _, err := tbl.eval(2.0, 0.77, 2.0); err == nil {
		Te.Error("expected an error for an unknown radius combination")
	}
}
