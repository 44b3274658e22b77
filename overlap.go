/*
 * overlap.go, part of goagbnp.
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

//overlap.go implements Gaussian overlap volumes of arbitrary order and
//the switching functions that filter marginal volumes and areas. Each
//atom is represented by a single Gaussian of exponent kfc/R^2 and
//prefactor pfc; the overlap of a set of Gaussians is again a Gaussian,
//which makes an incremental (one atom at a time) evaluation possible.

package agbnp

import "math"

const pi = math.Pi

//gParm holds the parameters of a (product of) atomic Gaussian(s):
//exponent, prefactor and center.
type gParm struct {
	a float64
	p float64
	c [3]float64
}

//polSwitch is a 5th degree polynomial switching function: 0 below xa,
//1 above xb, with two continuous derivatives everywhere. It returns
//the value and the first two derivatives.
func polSwitch(x, xa, xb float64) (f, fp, fpp float64) {
	if x > xb {
		return 1.0, 0, 0
	}
	if x < xa {
		return 0, 0, 0
	}
	d := 1.0 / (xb - xa)
	u := (x - xa) * d
	f = u * u * u * (10.0 - 15.0*u + 6.0*u*u)
	fp = d * 30.0 * u * u * (1.0 - 2.0*u + u*u)
	fpp = d * d * 60.0 * u * (1.0 - 3.0*u + 2.0*u*u)
	return f, fp, fpp
}

//swfVol3 switches a volume off smoothly between b and a. It returns
//the filtered volume and its first two derivatives with respect to
//the unfiltered one.
func swfVol3(x, a, b float64) (vol, fp, fpp float64) {
	if x > b {
		return x, 1.0, 0
	}
	if x < a {
		return 0, 0, 0
	}
	s, sp, spp := polSwitch(x, a, b)
	vol = s * x
	fp = s + x*sp
	fpp = 2.0*sp + x*spp
	return vol, fp, fpp
}

//swfArea is the filter applied to the raw surface areas; it vanishes
//quadratically at zero and saturates to 1 for large areas. It returns
//the filter value and its derivative with respect to the area.
func swfArea(x float64) (f, fp float64) {
	if x < 0 {
		return 0, 0
	}
	t := x / (25.0 + x*x)
	f = x * t
	fp = 2.0 * t * (1.0 - f)
	return f, fp
}

//swfInvBr keeps the inverse Born radius positive by switching it
//smoothly onto a small floor. It returns the switched value and its
//derivative with respect to the raw value.
func swfInvBr(beta float64) (b, fp float64) {
	if beta < 0 {
		return invBrA, 0
	}
	t := math.Sqrt(invBrA*invBrA + beta*beta)
	return t, beta / t
}

//ogauss2body is the closed-form overlap volume of two Gaussians. It is
//used in tests and as a pre-filter for neighbor candidates.
func ogauss2body(c1, c2 [3]float64, a1, a2, p1, p2 float64) float64 {
	dx := c2[0] - c1[0]
	dy := c2[1] - c1[1]
	dz := c2[2] - c1[2]
	d2 := dx*dx + dy*dy + dz*dz
	a12 := a1 + a2
	return p1 * p2 * math.Exp(-a1*a2*d2/a12) * math.Pow(pi/a12, 1.5)
}

//overlapDers holds the derivative output buffers of ogaussIncremental,
//preallocated to the maximum overlap order.
type overlapDers struct {
	dr   [][3]float64   //dV/dx_i
	dR   []float64      //dV/dR_i
	d2rR [][][3]float64 //d2rR[i][j]: d(dV/dR_j)/dx_i
	fp   float64        //derivative of the volume filter at the last call
}

//newOverlapDers allocates the buffers. The second-derivative tensor is
//only needed by the gradient contraction pass, so the volume pass skips
//its (order^2) cost by allocating without it.
func newOverlapDers(maxOrder int, wantD2 bool) *overlapDers {
	o := &overlapDers{
		dr: make([][3]float64, maxOrder),
		dR: make([]float64, maxOrder),
	}
	if wantD2 {
		o.d2rR = make([][][3]float64, maxOrder)
		for i := range o.d2rR {
			o.d2rR[i] = make([][3]float64, maxOrder)
		}
	}
	return o
}

//ogaussIncremental adds the Gaussian of index order-1 of the gx/ga/gp/gr
//buffers to the already-combined Gaussian prev, and returns the filtered
//overlap volume, the unfiltered one, and the parameters of the combined
//Gaussian (valid regardless of the filter, so the recursion can keep
//descending). If ders is not nil it is filled, for every member of the
//overlap, with the position and radius derivatives of the filtered
//volume, and the position derivatives of the radius derivatives.
func ogaussIncremental(order int, gx [][3]float64, ga, gp, gr []float64,
	prev gParm, volmina, volminb float64, ders *overlapDers) (volp, raw float64, next gParm) {
	n := order - 1
	a := ga[n]
	p := gp[n]
	x := gx[n]

	an := prev.a + a
	deltai := 1.0 / an
	var cn [3]float64
	var d2 float64
	for k := 0; k < 3; k++ {
		cn[k] = deltai * (prev.a*prev.c[k] + a*x[k])
		d := x[k] - prev.c[k]
		d2 += d * d
	}
	kappa := math.Exp(-prev.a * a * d2 * deltai)
	pn := prev.p * p * kappa
	vol := pn * math.Pow(pi*deltai, 1.5)

	next = gParm{a: an, p: pn, c: cn}
	raw = vol

	volp, fp, fpp := swfVol3(vol, volmina, volminb)
	if ders != nil {
		ders.fp = fp
	}
	if volp < math.SmallestNonzeroFloat64 {
		return 0, raw, next
	}
	if ders == nil {
		return volp, raw, next
	}

	//Unfiltered derivatives first; the filter chain rule needs them.
	for i := 0; i < order; i++ {
		var drnorm2 float64
		for k := 0; k < 3; k++ {
			ders.dr[i][k] = -2.0 * ga[i] * vol * (gx[i][k] - cn[k])
			drnorm2 += ders.dr[i][k] * ders.dr[i][k]
		}
		ders.dR[i] = (3.0*ga[i]*vol*deltai + 0.5*drnorm2/(ga[i]*vol)) / gr[i]
	}
	//Second derivatives d(dV/dR_j)/dx_i, filtered.
	if ders.d2rR != nil {
		w := fpp + fp/vol
		for i := 0; i < order; i++ {
			for j := 0; j < order; j++ {
				if i == j {
					u := -2.0*fp*(1.0-ga[i]*deltai)/gr[i] + w*ders.dR[i]
					for k := 0; k < 3; k++ {
						ders.d2rR[i][j][k] = u * ders.dr[i][k]
					}
				} else {
					u1 := 2.0 * fp * deltai * ga[i] / gr[j]
					u2 := w * ders.dR[j]
					for k := 0; k < 3; k++ {
						ders.d2rR[i][j][k] = u1*ders.dr[j][k] + u2*ders.dr[i][k]
					}
				}
			}
		}
	}
	//First derivatives, filtered.
	for i := 0; i < order; i++ {
		for k := 0; k < 3; k++ {
			ders.dr[i][k] *= fp
		}
		ders.dR[i] *= fp
	}
	return volp, raw, next
}

//matmul3 puts the product a*b in c. c must not alias a or b.
func matmul3(a, b, c *[3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
}
