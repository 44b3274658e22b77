/*
 * doc.go, part of goagbnp.
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

/*
Package agbnp implements an analytic generalized-Born plus non-polar
implicit-solvent model with hydrogen-bonding corrections, of the AGBNP3
family. For a registered molecular system it evaluates, from cartesian
coordinates alone:

  - the generalized-Born electrostatic solvation energy, from pairwise
    descreening Born radii computed over Gaussian self-volumes,
  - a non-polar term split into a cavity (surface-area) component and a
    solute-solvent van der Waals component,
  - a short-range hydrogen-bonding correction based on the occupancy of
    geometric water sites placed around donors and acceptors,

together with the analytic gradient of each component with respect to
every atomic position.

Systems are registered once (topology, radii, charges, per-atom model
parameters) with a Context, which hands out integer handles; energies
and gradients are then evaluated repeatedly as the coordinates change,
for example along a molecular-dynamics trajectory.

All lengths are in Angstroms, charges in electron charges and energies
in kcal/mol.
*/
package agbnp
