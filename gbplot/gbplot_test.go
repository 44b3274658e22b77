/*
 * gbplot_test.go, part of goagbnp.
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

package gbplot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestBornRadii(Te *testing.T) {
	vdw := []float64{1.2, 1.5, 1.7, 1.55, 1.2}
	born := []float64{1.3, 2.1, 3.4, 1.9, 1.4}
	name := filepath.Join(Te.TempDir(), "born")
	err := BornRadii(vdw, born, "Born radii", name)
	if err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("plot size", info.Size())
}

func TestEnergies(Te *testing.T) {
	data := [][]float64{
		{-10.2, -10.5, -10.1, -9.8},
		{1.1, 1.2, 1.15, 1.1},
		{3.2, 3.1, 3.3, 3.25},
	}
	labels := []string{"GB", "vdW", "cavity"}
	name := filepath.Join(Te.TempDir(), "ener")
	err := Energies(data, labels, "Components", name)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatal(err)
	}
}
