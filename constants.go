/*
 * constants.go, part of goagbnp.
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

//Model constants. Lengths in Angstrom, energies in kcal/mol.
const (
	//kfc and pfc parametrize the atomic Gaussians so that a single
	//Gaussian reproduces the hard-sphere volume and two-body overlaps
	//are well approximated.
	kfc = 2.2269
	pfc = 2.5

	//radiusIncrement is added to the input van der Waals radii to
	//build the volume (descreening) radii; it accounts for the
	//first solvation shell.
	radiusIncrement = 0.5

	//wRadius is the water probe radius used in the solute-solvent
	//van der Waals estimator.
	wRadius = 1.4

	//nbOffset scales the sum of radii that defines the near-neighbor
	//distance for overlap volume calculations.
	nbOffset = 1.0

	//Water-site geometry and switching window on the scaled free
	//volume of a site.
	hbLength = 2.5
	hbRadius = 1.4
	hbSwA    = 0.785
	hbSwB    = 1.0

	//Switching window (in Angstrom^3) that filters marginal overlap
	//volumes out of the self-volume sums.
	minVolA = 0.01
	minVolB = 0.1

	//Floor (in 1/Angstrom) of the switched inverse Born radius.
	invBrA = 0.02

	//tokcalmol converts charge^2/Angstrom to kcal/mol.
	tokcalmol = 332.0

	//keyScale quantizes the reduced-radius parameter of the
	//descreening tables.
	keyScale = 10000

	//growth is the reallocation factor for neighbor-list buffers.
	growth = 1.2
)

//Water-site types, one per acceptor/donor geometry rule.
const (
	//NoSite marks atoms that carry no water site.
	NoSite = iota
	//PolarH marks polar hydrogens (one site along the donor-H bond).
	PolarH
	//Trigonal marks sp2 acceptors; the in-plane rule used depends on
	//the number of bound atoms.
	Trigonal
	//TrigonalS marks sp2 acceptors that also get a pair of
	//out-of-plane sites (e.g. carboxylate oxygens).
	TrigonalS
	//TrigonalOOP marks acceptors with only the two out-of-plane
	//sites (e.g. aromatic nitrogens in a ring plane).
	TrigonalOOP
	//Tetrahedral marks sp3 acceptors; the rule used depends on the
	//number of bound atoms.
	Tetrahedral
)
