/*
 * gbplot.go, part of goagbnp.
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

//Package gbplot produces diagnostic plots from solvation results:
//Born radii against van der Waals radii, and the evolution of the
//energy components along a trajectory.
package gbplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func colors(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	u := uint8((255 * key) / steps)
	return color.RGBA{R: u, G: 100, B: 255 - u, A: 255}
}

//BornRadii plots, per atom, the Born radius against the van der Waals
//radius. Buried atoms stand out far above the diagonal. The plot is
//saved as plotname.png.
func BornRadii(vdw, born []float64, title, plotname string) error {
	if vdw == nil || born == nil {
		panic("Given nil data")
	}
	if len(vdw) != len(born) {
		return fmt.Errorf("gbplot.BornRadii: %d vdW radii but %d Born radii", len(vdw), len(born))
	}
	p := basicPlot(title, "vdW radius (A)", "Born radius (A)")
	pts := make(plotter.XYs, len(vdw))
	for i := range vdw {
		pts[i].X = vdw[i]
		pts[i].Y = born[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = colors(0, 1)
	p.Add(s)
	diag := plotter.NewFunction(func(x float64) float64 { return x })
	p.Add(diag)
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Energies plots one line per energy component along a series of
//evaluations. data holds one slice per component, all the same length;
//labels names each component in the legend. The plot is saved as
//plotname.png.
func Energies(data [][]float64, labels []string, title, plotname string) error {
	if data == nil {
		panic("Given nil data")
	}
	if labels != nil && len(labels) < len(data) {
		return fmt.Errorf("gbplot.Energies: %d labels for %d components", len(labels), len(data))
	}
	p := basicPlot(title, "Evaluation", "Energy (kcal/mol)")
	for key, comp := range data {
		pts := make(plotter.XYs, len(comp))
		for i, e := range comp {
			pts[i].X = float64(i)
			pts[i].Y = e
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = colors(key, len(data))
		p.Add(l)
		if labels != nil {
			p.Legend.Add(labels[key], l)
		}
	}
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
