/*
 * overlap_test.go, part of goagbnp.
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

//overlapChain recomputes a full overlap chain from scratch, so tests
//can displace coordinates or radii and finite-difference the result.
func overlapChain(gx [][3]float64, gr []float64, ders *overlapDers) (volp, raw float64) {
	n := len(gr)
	ga := make([]float64, n)
	gp := make([]float64, n)
	for i := range gr {
		ga[i] = kfc / (gr[i] * gr[i])
		gp[i] = pfc
	}
	prev := gParm{a: ga[0], p: gp[0], c: gx[0]}
	for order := 2; order <= n; order++ {
		volp, raw, prev = ogaussIncremental(order, gx, ga, gp, gr, prev, minVolA, minVolB, ders)
	}
	return volp, raw
}

func TestTwoBodyOverlap(Te *testing.T) {
	c1 := [3]float64{0, 0, 0}
	c2 := [3]float64{1.1, 0.7, -0.5}
	r1, r2 := 2.0, 1.8
	a1 := kfc / (r1 * r1)
	a2 := kfc / (r2 * r2)
	want := ogauss2body(c1, c2, a1, a2, pfc, pfc)
	_, raw := overlapChain([][3]float64{c1, c2}, []float64{r1, r2}, nil)
	if math.Abs(raw-want) > 1e-12*want {
		Te.Errorf("incremental %v, closed form %v", raw, want)
	}
	fmt.Println("two-body overlap", raw)
}

func TestOverlapPositionDerivatives(Te *testing.T) {
	gx := [][3]float64{{0, 0, 0}, {1.2, 0.3, -0.4}, {0.5, 1.1, 0.6}}
	gr := []float64{2.0, 1.9, 2.1}
	ders := newOverlapDers(len(gr), true)
	volp, _ := overlapChain(gx, gr, ders)
	if volp <= 0 {
		Te.Fatal("test geometry should produce a nonzero overlap")
	}
	h := 1e-6
	for i := range gx {
		for k := 0; k < 3; k++ {
			gxp := [][3]float64{gx[0], gx[1], gx[2]}
			gxp[i][k] += h
			vp, _ := overlapChain(gxp, gr, nil)
			gxp[i][k] -= 2 * h
			vm, _ := overlapChain(gxp, gr, nil)
			fd := (vp - vm) / (2 * h)
			if math.Abs(fd-ders.dr[i][k]) > 1e-5*(1+math.Abs(fd)) {
				Te.Errorf("dV/dx[%d][%d]: analytic %v, numeric %v", i, k, ders.dr[i][k], fd)
			}
		}
	}
}

func TestOverlapRadiusDerivatives(Te *testing.T) {
	gx := [][3]float64{{0, 0, 0}, {1.2, 0.3, -0.4}, {0.5, 1.1, 0.6}}
	gr := []float64{2.0, 1.9, 2.1}
	ders := newOverlapDers(len(gr), true)
	overlapChain(gx, gr, ders)
	h := 1e-6
	for i := range gr {
		grp := []float64{gr[0], gr[1], gr[2]}
		grp[i] += h
		vp, _ := overlapChain(gx, grp, nil)
		grp[i] -= 2 * h
		vm, _ := overlapChain(gx, grp, nil)
		fd := (vp - vm) / (2 * h)
		if math.Abs(fd-ders.dR[i]) > 1e-5*(1+math.Abs(fd)) {
			Te.Errorf("dV/dR[%d]: analytic %v, numeric %v", i, ders.dR[i], fd)
		}
	}
	//cross derivatives d(dV/dR_j)/dx_i
	for i := range gx {
		for j := range gr {
			for k := 0; k < 3; k++ {
				d2 := newOverlapDers(len(gr), false)
				gxp := [][3]float64{gx[0], gx[1], gx[2]}
				gxp[i][k] += h
				overlapChain(gxp, gr, d2)
				dp := d2.dR[j]
				gxp[i][k] -= 2 * h
				overlapChain(gxp, gr, d2)
				dm := d2.dR[j]
				fd := (dp - dm) / (2 * h)
				if math.Abs(fd-ders.d2rR[i][j][k]) > 1e-4*(1+math.Abs(fd)) {
					Te.Errorf("d2V/dx[%d][%d]dR[%d]: analytic %v, numeric %v",
						i, k, j, ders.d2rR[i][j][k], fd)
				}
			}
		}
	}
}

func TestSwitchingFunctions(Te *testing.T) {
	//polSwitch joins its branches with two continuous derivatives
	for _, x := range []float64{0.785 + 1e-9, 1.0 - 1e-9} {
		f, fp, _ := polSwitch(x, 0.785, 1.0)
		if f < -1e-9 || f > 1.0+1e-9 {
			Te.Errorf("polSwitch(%v) out of range: %v", x, f)
		}
		if fp < 0 {
			Te.Errorf("polSwitch must not decrease: fp(%v)=%v", x, fp)
		}
	}
	//swfVol3 matches the identity above the window and zero below
	if v, _, _ := swfVol3(2*minVolB, minVolA, minVolB); v != 2*minVolB {
		Te.Errorf("swfVol3 above window: %v", v)
	}
	if v, _, _ := swfVol3(0.5*minVolA, minVolA, minVolB); v != 0 {
		Te.Errorf("swfVol3 below window: %v", v)
	}
	//swfInvBr floors negative raw values and tracks large ones
	b, fp := swfInvBr(-0.5)
	if b != invBrA || fp != 0 {
		Te.Errorf("swfInvBr on a negative value: %v %v", b, fp)
	}
	b, _ = swfInvBr(1.0)
	if math.Abs(b-math.Sqrt(1+invBrA*invBrA)) > 1e-12 {
		Te.Errorf("swfInvBr(1): %v", b)
	}
}
