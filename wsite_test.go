/*
 * wsite_test.go, part of goagbnp.
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

	v3 "github.com/rmera/goagbnp/v3"
)

func modelWithCoords(Te *testing.T, sys *System, pos [][3]float64) *Model {
	m, err := newModel(sys, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < m.natoms; i++ {
		e := m.int2ext[i]
		m.x[i] = pos[e][0]
		m.y[i] = pos[e][1]
		m.z[i] = pos[e][2]
	}
	return m
}

func TestPolarHSitePlacement(Te *testing.T) {
	sys := &System{
		Radii:        []float64{1.5, 1.2},
		Charges:      []float64{-0.4, 0.4},
		HBType:       []int{NoSite, PolarH},
		HBCorr:       []float64{0, -1.0},
		Hydrogens:    []bool{false, true},
		Connectivity: [][]int{{1}, {0}},
	}
	pos := [][3]float64{{0, 0, 0}, {1, 0, 0}}
	m := modelWithCoords(Te, sys, pos)
	if len(m.groups) != 1 {
		Te.Fatalf("expected one site group, got %d", len(m.groups))
	}
	g := m.groups[0]
	if g.rule != rulePolarH || len(g.sites) != 1 {
		Te.Fatalf("wrong group: rule %d, %d sites", g.rule, len(g.sites))
	}
	m.placeGroup(g)
	s := g.sites[0]
	//along the donor-H bond, hbLength away from the donor
	want := [3]float64{hbLength, 0, 0}
	for k := 0; k < 3; k++ {
		if math.Abs(s.pos[k]-want[k]) > 1e-12 {
			Te.Fatalf("site at %v, want %v", s.pos, want)
		}
	}
	fmt.Println("polar H site at", s.pos)
}

//checkSiteTensors finite-differences every site position of the model
//against the analytic parent derivative tensors.
func checkSiteTensors(Te *testing.T, m *Model, label string) {
	h := 1e-6
	coord := [3][]float64{m.x, m.y, m.z}
	for _, g := range m.groups {
		m.placeGroup(g)
		//snapshot of the analytic tensors
		saved := make([][][3][3]float64, len(g.sites))
		for si, s := range g.sites {
			saved[si] = append([][3][3]float64{}, s.dpos...)
		}
		for si, s := range g.sites {
			for p, pat := range s.parents {
				for j := 0; j < 3; j++ {
					orig := coord[j][pat]
					coord[j][pat] = orig + h
					m.placeGroup(g)
					pp := s.pos
					coord[j][pat] = orig - h
					m.placeGroup(g)
					pm := s.pos
					coord[j][pat] = orig
					for i := 0; i < 3; i++ {
						fd := (pp[i] - pm[i]) / (2 * h)
						got := saved[si][p][i][j]
						if math.Abs(fd-got) > 1e-6*(1+math.Abs(fd)) {
							Te.Errorf("%s site %d parent %d dpos[%d][%d]: analytic %v, numeric %v",
								label, si, p, i, j, got, fd)
						}
					}
				}
			}
		}
		m.placeGroup(g)
	}
}

func TestSiteDerivativeTensors(Te *testing.T) {
	//polar hydrogen
	sysH := &System{
		Radii:        []float64{1.5, 1.2},
		Charges:      []float64{-0.4, 0.4},
		HBType:       []int{NoSite, PolarH},
		HBCorr:       []float64{0, -1.0},
		Hydrogens:    []bool{false, true},
		Connectivity: [][]int{{1}, {0}},
	}
	posH := [][3]float64{{0.1, -0.2, 0.3}, {1.0, 0.4, -0.2}}
	checkSiteTensors(Te, modelWithCoords(Te, sysH, posH), "polarH")

	//carbonyl-like oxygen: both the plain sp2 rule (two in-plane
	//sites) and the version with the extra out-of-plane pair
	for _, typ := range []int{Trigonal, TrigonalS} {
		sysO := &System{
			Radii:        []float64{1.5, 1.7, 1.7, 1.7},
			Charges:      []float64{-0.5, 0.5, 0, 0},
			HBType:       []int{typ, NoSite, NoSite, NoSite},
			HBCorr:       []float64{-1.5, 0, 0, 0},
			Connectivity: [][]int{{1}, {0, 2, 3}, {1}, {1}},
		}
		posO := [][3]float64{
			{0.1, 1.3, 0.05},
			{0, 0, 0},
			{1.3, -0.8, -0.1},
			{-1.25, -0.85, 0.1},
		}
		checkSiteTensors(Te, modelWithCoords(Te, sysO, posO), fmt.Sprintf("trigonal type %d", typ))
	}

	//2-coordinated sp2 nitrogen (bisector rule)
	sysN := &System{
		Radii:        []float64{1.55, 1.7, 1.7},
		Charges:      []float64{-0.6, 0.3, 0.3},
		HBType:       []int{Trigonal, NoSite, NoSite},
		HBCorr:       []float64{-2.0, 0, 0},
		Connectivity: [][]int{{1, 2}, {0}, {0}},
	}
	posN := [][3]float64{{0, 0, 0}, {1.35, 0.2, -0.1}, {-0.65, 1.25, 0.15}}
	checkSiteTensors(Te, modelWithCoords(Te, sysN, posN), "trigonal2")

	//3-coordinated in-plane nitrogen, sites along the plane normal
	sysOOP := &System{
		Radii:        []float64{1.55, 1.7, 1.7, 1.7},
		Charges:      []float64{-0.6, 0.2, 0.2, 0.2},
		HBType:       []int{TrigonalOOP, NoSite, NoSite, NoSite},
		HBCorr:       []float64{-1.0, 0, 0, 0},
		Connectivity: [][]int{{1, 2, 3}, {0}, {0}, {0}},
	}
	posOOP := [][3]float64{
		{0, 0, 0},
		{1.4, 0.1, 0.02},
		{-0.7, 1.2, -0.05},
		{-0.72, -1.18, 0.03},
	}
	checkSiteTensors(Te, modelWithCoords(Te, sysOOP, posOOP), "trigonalOOP")

	//sp3 oxygen with two bonds (lone pair fork)
	sysW := &System{
		Radii:        []float64{1.5, 1.2, 1.2},
		Charges:      []float64{-0.8, 0.4, 0.4},
		HBType:       []int{Tetrahedral, NoSite, NoSite},
		HBCorr:       []float64{-2.2, 0, 0},
		Hydrogens:    []bool{false, true, true},
		Connectivity: [][]int{{1, 2}, {0}, {0}},
	}
	posW := [][3]float64{{0, 0, 0}, {0.96, 0.05, -0.03}, {-0.25, 0.93, 0.04}}
	checkSiteTensors(Te, modelWithCoords(Te, sysW, posW), "tetrahedral2")

	//sp3 nitrogen with three bonds (single site opposite the sum)
	sysA := &System{
		Radii:        []float64{1.55, 1.7, 1.7, 1.7},
		Charges:      []float64{-0.9, 0.3, 0.3, 0.3},
		HBType:       []int{Tetrahedral, NoSite, NoSite, NoSite},
		HBCorr:       []float64{-1.8, 0, 0, 0},
		Connectivity: [][]int{{1, 2, 3}, {0}, {0}, {0}},
	}
	posA := [][3]float64{
		{0, 0, 0},
		{1.4, 0.2, 0.5},
		{-0.8, 1.2, 0.45},
		{-0.6, -1.25, 0.5},
	}
	checkSiteTensors(Te, modelWithCoords(Te, sysA, posA), "tetrahedral3")

	//terminal sp3 oxygen on a 4-coordinated center (three staggered
	//sites)
	sysS := &System{
		Radii:        []float64{1.5, 1.8, 1.7, 1.7, 1.5},
		Charges:      []float64{-0.7, 1.0, -0.1, -0.1, -0.7},
		HBType:       []int{Tetrahedral, NoSite, NoSite, NoSite, NoSite},
		HBCorr:       []float64{-1.1, 0, 0, 0, 0},
		Connectivity: [][]int{{1}, {0, 2, 3, 4}, {1}, {1}, {1}},
	}
	posS := [][3]float64{
		{0, 0, 1.5},
		{0, 0, 0},
		{1.4, 0.1, -0.5},
		{-0.75, 1.2, -0.5},
		{-0.7, -1.25, -0.55},
	}
	checkSiteTensors(Te, modelWithCoords(Te, sysS, posS), "tetrahedral1")
}

func TestSiteRuleMismatches(Te *testing.T) {
	//the out-of-plane rule propagates its error
	sys := &System{
		Radii:        []float64{1.55, 1.7, 1.7},
		Charges:      []float64{0, 0, 0},
		HBType:       []int{TrigonalOOP, NoSite, NoSite},
		HBCorr:       []float64{-1.0, 0, 0},
		Connectivity: [][]int{{1, 2}, {0}, {0}},
	}
	if _, err := newModel(sys, DefaultOptions()); err == nil {
		Te.Error("expected an error for a 2-coordinated out-of-plane acceptor")
	}
	//every other rule degrades to zero sites
	sys = &System{
		Radii:        []float64{1.55, 1.7, 1.7, 1.7},
		Charges:      []float64{0, 0, 0, 0},
		HBType:       []int{Trigonal, NoSite, NoSite, NoSite},
		HBCorr:       []float64{-1.0, 0, 0, 0},
		Connectivity: [][]int{{1, 2, 3}, {0}, {0}, {0}},
	}
	m, err := newModel(sys, DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if len(m.groups) != 0 {
		Te.Errorf("a mismatched sp2 acceptor should yield no sites, got %d groups", len(m.groups))
	}
}

func TestHBEnergyClosedForm(Te *testing.T) {
	//a lone donor-hydrogen pair: the only solute Gaussian that can
	//invade the water site is the donor itself, so the correction
	//energy has a two-body closed form
	rvdw := 1.5
	khb := -1.5
	sys := &System{
		Radii:        []float64{rvdw, 1.2},
		Charges:      []float64{-0.4, 0.4},
		HBType:       []int{NoSite, PolarH},
		HBCorr:       []float64{0, khb},
		Hydrogens:    []bool{false, true},
		Connectivity: [][]int{{1}, {0}},
	}
	c := NewContext(nil)
	h, err := c.Register(sys)
	if err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(2)
	coords.Set(1, 0, 1.0) //H along x
	res, err := c.Evaluate(h, coords, true)
	if err != nil {
		Te.Fatal(err)
	}
	//the donor's scaled volume, as for an isolated ion
	R := rvdw + radiusIncrement
	araw := 4.0 * pi * R * R
	f := araw * araw / (25.0 + araw*araw)
	us := R * (1.0 - math.Pow(rvdw/R, 3)) / 3.0
	vols := (4.0 / 3.0) * pi * R * R * R
	spDonor := (vols - araw*f*us) / vols
	//site on the bond axis, hbLength from the donor
	sitePos := [3]float64{hbLength, 0, 0}
	raw := ogauss2body(sitePos, [3]float64{0, 0, 0},
		kfc/(hbRadius*hbRadius), kfc/(R*R), pfc, pfc*spDonor)
	volp, _, _ := swfVol3(raw, minVolA, minVolB)
	volume := (4.0 / 3.0) * pi * hbRadius * hbRadius * hbRadius
	spSite := (volume - volp) / volume
	s, _, _ := polSwitch(spSite, hbSwA, hbSwB)
	want := khb * s
	if math.Abs(res.EHB-want) > 1e-9 {
		Te.Errorf("hydrogen bond energy: got %v want %v", res.EHB, want)
	}
	fmt.Println("EHB", res.EHB, "scaled free volume", spSite)
}
