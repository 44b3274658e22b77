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
Package trace records solvation evaluations to a compressed text file,
one frame per Evaluate call: the input coordinates, the total gradient
and the energy components. The files pin reference results for
regression testing and let a simulation be replayed without recomputing
anything.

The format is a zstd-compressed stream of integer-encoded lines, one
atom per line, with a fixed decimal precision declared in the header.
Being text underneath, a frame can be inspected with zstd -d when
something looks off.
*/
package trace
