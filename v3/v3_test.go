/*
 * v3_test.go, part of goagbnp.
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

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vectors, got %d", A.NVecs())
	}
	b := []float64{1, 2, 3, 4}
	_, err = NewMatrix(b)
	if err == nil {
		Te.Error("NewMatrix should fail on a slice of length 4")
	}
	fmt.Println("NewMatrix works as expected", A)
}

func TestVecView(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	if v.At(0, 2) != 6 {
		Te.Errorf("Wrong view element: %f", v.At(0, 2))
	}
	v.Set(0, 0, 10)
	if A.At(1, 0) != 10 {
		Te.Error("Views should share memory with the viewed matrix")
	}
}

func TestCross(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if math.Abs(z.At(0, 2)-1) > 1e-12 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	fmt.Println("Cross product:", z)
}

func TestNormDot(Te *testing.T) {
	a, _ := NewMatrix([]float64{3, 4, 0})
	if math.Abs(a.Norm()-5) > 1e-12 {
		Te.Errorf("Norm of (3,4,0) should be 5, got %f", a.Norm())
	}
	b, _ := NewMatrix([]float64{1, 1, 1})
	if math.Abs(a.Dot(b)-7) > 1e-12 {
		Te.Errorf("Dot of (3,4,0) and (1,1,1) should be 7, got %f", a.Dot(b))
	}
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	B := Zeros(2)
	B.SomeVecs(A, []int{0, 2})
	if B.At(1, 0) != 7 {
		Te.Errorf("SomeVecs picked the wrong vector: %v", B)
	}
}
