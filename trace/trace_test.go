/*
 * trace_test.go, part of goagbnp.
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

package trace

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	v3 "github.com/rmera/goagbnp/v3"
)

func TestWriteRead(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "test.stz")
	natoms := 4
	w, err := NewWriter(name, natoms, 3, 5)
	if err != nil {
		Te.Fatal(err)
	}
	frames := make([]*Frame, 0, 3)
	for f := 0; f < 3; f++ {
		fr := &Frame{Coords: v3.Zeros(natoms), Gradient: v3.Zeros(natoms)}
		for i := 0; i < natoms; i++ {
			for k := 0; k < 3; k++ {
				fr.Coords.Set(i, k, float64(f)+0.1*float64(i)+0.01*float64(k))
				fr.Gradient.Set(i, k, -0.5*float64(f)+0.001*float64(i*3+k))
			}
		}
		for e := range fr.Energies {
			fr.Energies[e] = float64(f) - 0.25*float64(e)
		}
		if err := w.WNext(fr); err != nil {
			Te.Fatal(err)
		}
		frames = append(frames, fr)
	}
	w.Close()
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("trace size", info.Size())

	r, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Len() != natoms {
		Te.Fatalf("wrong number of atoms: %d", r.Len())
	}
	got := r.ZeroFrame()
	for f := 0; f < 3; f++ {
		if err := r.Next(got); err != nil {
			Te.Fatal(err)
		}
		want := frames[f]
		for e := range want.Energies {
			if math.Abs(got.Energies[e]-want.Energies[e]) > 1e-5 {
				Te.Errorf("frame %d energy %d: got %f want %f", f, e, got.Energies[e], want.Energies[e])
			}
		}
		for i := 0; i < natoms; i++ {
			for k := 0; k < 3; k++ {
				if math.Abs(got.Coords.At(i, k)-want.Coords.At(i, k)) > 1e-3 {
					Te.Errorf("frame %d atom %d coord %d: got %f want %f", f, i, k, got.Coords.At(i, k), want.Coords.At(i, k))
				}
				if math.Abs(got.Gradient.At(i, k)-want.Gradient.At(i, k)) > 1e-5 {
					Te.Errorf("frame %d atom %d grad %d: got %f want %f", f, i, k, got.Gradient.At(i, k), want.Gradient.At(i, k))
				}
			}
		}
	}
	err = r.Next(got)
	if err == nil {
		Te.Fatal("expected the end of the trace")
	}
	if _, ok := err.(interface{ NormalLastFrameTermination() }); !ok {
		Te.Fatalf("expected a normal termination, got %v", err)
	}
	fmt.Println("trace round trip OK")
}

func TestUninitialized(Te *testing.T) {
	w := new(Writer)
	if err := w.WNext(&Frame{Coords: v3.Zeros(1), Gradient: v3.Zeros(1)}); err == nil {
		Te.Fatal("expected an error from an uninitialized writer")
	}
	r := new(Reader)
	if err := r.Next(nil); err == nil {
		Te.Fatal("expected an error from an uninitialized reader")
	}
}
