/*
 * system.go, part of goagbnp.
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

//System describes the solute to be registered: one entry per atom in
//every slice, all in the caller's atom order. Lengths are in Angstrom,
//energies in kcal/mol, charges in electron units.
type System struct {
	//Radii are the van der Waals radii. Required.
	Radii []float64
	//Charges are the partial charges. Required.
	Charges []float64
	//IGamma and SGamma are the surface tension parameters of the
	//cavity energy and of its correction term. Nil means zero.
	IGamma []float64
	SGamma []float64
	//IAlpha and SAlpha are the solute-solvent van der Waals
	//interaction parameters and their correction. Nil means zero.
	IAlpha []float64
	SAlpha []float64
	//IDelta and SDelta are constant offsets added, per atom, to the
	//van der Waals energy and its correction. Nil means zero.
	IDelta []float64
	SDelta []float64
	//HBType selects the water-site geometry rule of each atom
	//(NoSite, PolarH, Trigonal, TrigonalS, TrigonalOOP or
	//Tetrahedral). Nil means no sites anywhere.
	HBType []int
	//HBCorr is the well depth of the hydrogen-bonding correction of
	//each site-carrying atom. Nil means zero.
	HBCorr []float64
	//Hydrogens marks hydrogen atoms: they are descreened but carry
	//no volume and descreen nothing. Nil means no hydrogens.
	Hydrogens []bool
	//Dummies marks atoms that take no part in the model at all.
	//Nil means none.
	Dummies []bool
	//Frozen marks atoms the caller promises not to move between
	//Evaluate calls with init=true. The descreening integrals of
	//frozen-frozen pairs are then reused instead of recomputed on
	//init=false calls. Nil means all atoms are mobile.
	Frozen []bool
	//Connectivity lists, for each atom, the atoms bound to it. It is
	//only used to place water sites, but it is required: an empty
	//inner slice states that an atom has no bonds, a nil outer slice
	//is taken as a mistake.
	Connectivity [][]int
	//DielectricIn and DielectricOut are the solute and solvent
	//dielectric constants. Zero values default to 1 and 80.
	DielectricIn  float64
	DielectricOut float64
}

func sameLen(n int, s []float64) bool {
	return s == nil || len(s) == n
}

//validate checks the system for the errors Register can detect before
//doing any work.
func (sys *System) validate() error {
	if sys.Radii == nil || sys.Charges == nil {
		return newError("System: Radii and Charges are required")
	}
	n := len(sys.Radii)
	if n == 0 {
		return newError("System: empty system")
	}
	if len(sys.Charges) != n {
		return newError("System: got %d charges for %d atoms", len(sys.Charges), n)
	}
	for _, s := range [][]float64{sys.IGamma, sys.SGamma, sys.IAlpha,
		sys.SAlpha, sys.IDelta, sys.SDelta, sys.HBCorr} {
		if !sameLen(n, s) {
			return newError("System: parameter slice of length %d for %d atoms", len(s), n)
		}
	}
	if sys.HBType != nil && len(sys.HBType) != n {
		return newError("System: got %d water site types for %d atoms", len(sys.HBType), n)
	}
	if sys.Hydrogens != nil && len(sys.Hydrogens) != n {
		return newError("System: got %d hydrogen flags for %d atoms", len(sys.Hydrogens), n)
	}
	if sys.Dummies != nil && len(sys.Dummies) != n {
		return newError("System: got %d dummy flags for %d atoms", len(sys.Dummies), n)
	}
	if sys.Frozen != nil && len(sys.Frozen) != n {
		return newError("System: got %d frozen flags for %d atoms", len(sys.Frozen), n)
	}
	if sys.Connectivity == nil {
		return newError("System: nil Connectivity; pass empty bond lists if the topology really has no bonds")
	}
	if len(sys.Connectivity) != n {
		return newError("System: got connectivity for %d atoms out of %d", len(sys.Connectivity), n)
	}
	for i := 0; i < n; i++ {
		if sys.Radii[i] <= 0 {
			return newError("System: non-positive radius %f for atom %d", sys.Radii[i], i)
		}
		if sys.Hydrogens != nil && sys.Dummies != nil && sys.Hydrogens[i] && sys.Dummies[i] {
			return newError("System: hydrogen atom %d cannot be also set as a dummy atom", i)
		}
		for _, j := range sys.Connectivity[i] {
			if j < 0 || j >= n {
				return newError("System: atom %d bound to nonexistent atom %d", i, j)
			}
		}
		if sys.HBType != nil && (sys.HBType[i] < NoSite || sys.HBType[i] > Tetrahedral) {
			return newError("System: unknown water site type %d for atom %d", sys.HBType[i], i)
		}
	}
	return nil
}

func orZeros(n int, s []float64) []float64 {
	if s == nil {
		return make([]float64, n)
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}
