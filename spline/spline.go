/*
 * spline.go, part of goagbnp.
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

//Package spline implements 1-D cubic spline tables on uniform grids,
//with first derivatives. Tables are set up once and evaluated many
//times, so the second-derivative coefficients are precomputed.
package spline

import "fmt"

//Table is a cubic spline on a uniform grid starting at zero.
//Evaluations beyond the last node return the asymptotic value
//(zero for the tables used in this library) and a zero derivative.
type Table struct {
	n    int
	dx   float64
	y    []float64
	y2   []float64
	yinf float64
}

//NewTable sets up a cubic spline through the n values y sampled at
//0, dx, 2dx, ..., with first derivatives yp1 and ypn clamped at the
//first and last node. Boundary values of 1e30 or larger request a
//natural boundary instead.
func NewTable(dx float64, y []float64, yp1, ypn float64) (*Table, error) {
	n := len(y)
	if n < 3 {
		return nil, Error{fmt.Sprintf("A spline table needs at least 3 nodes, got %d", n), []string{"NewTable"}, true}
	}
	if dx <= 0 {
		return nil, Error{fmt.Sprintf("Non-positive grid spacing: %f", dx), []string{"NewTable"}, true}
	}
	t := &Table{
		n:    n,
		dx:   dx,
		y:    make([]float64, n),
		y2:   make([]float64, n),
		yinf: y[n-1],
	}
	copy(t.y, y)
	u := make([]float64, n-1)
	if yp1 >= 0.99e30 {
		t.y2[0] = 0
		u[0] = 0
	} else {
		t.y2[0] = -0.5
		u[0] = (3.0 / dx) * ((y[1]-y[0])/dx - yp1)
	}
	//Tridiagonal decomposition. The grid is uniform, so sig is 1/2
	//at every interior node.
	const sig = 0.5
	for i := 1; i < n-1; i++ {
		p := sig*t.y2[i-1] + 2.0
		t.y2[i] = (sig - 1.0) / p
		u[i] = (3.0*(y[i+1]-2.0*y[i]+y[i-1])/(dx*dx) - sig*u[i-1]) / p
	}
	var qn, un float64
	if ypn >= 0.99e30 {
		qn = 0
		un = 0
	} else {
		qn = 0.5
		un = (3.0 / dx) * (ypn - (y[n-1]-y[n-2])/dx)
	}
	t.y2[n-1] = (un - qn*u[n-2]) / (qn*t.y2[n-2] + 1.0)
	for k := n - 2; k >= 0; k-- {
		t.y2[k] = t.y2[k]*t.y2[k+1] + u[k]
	}
	return t, nil
}

//Max returns the largest abscissa covered by the table.
func (t *Table) Max() float64 {
	return float64(t.n-1) * t.dx
}

//Interpolate returns the spline value and first derivative at x.
//For x at or beyond the last node it returns the asymptotic value
//with a zero derivative. Negative x is evaluated on the first
//interval (callers never pass it in practice).
func (t *Table) Interpolate(x float64) (f, fp float64) {
	k := int(x / t.dx)
	if k >= t.n-1 {
		return t.yinf, 0
	}
	if k < 0 {
		k = 0
	}
	xh := x / t.dx
	a := float64(k+1) - xh
	b := xh - float64(k)
	f = a*t.y[k] + b*t.y[k+1] + ((a*a*a-a)*t.y2[k]+(b*b*b-b)*t.y2[k+1])*t.dx*t.dx/6.0
	fp = (t.y[k+1]-t.y[k])/t.dx - ((3.0*a*a-1.0)*t.y2[k]-(3.0*b*b-1.0)*t.y2[k+1])*t.dx/6.0
	return f, fp
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }
