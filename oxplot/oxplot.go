/*
 * oxplot.go, part of oxdna-analysis-tools
 *
 * Copyright 2025 The oxdna-analysis-tools developers
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
 */

//Package oxplot renders the distance tool's figures: overlaid, normalized
//distance histograms and distance-against-step line plots, in any format
//the output file's extension selects (png, pdf, svg...).
package oxplot

import (
	"fmt"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bensonbits/oxdna-analysis-tools/histo"
)

func basicPlot(xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//Histogram plots every histogram in S overlaid on shared axes, with
//half-transparent fills so the distributions stay readable where they
//overlap. The bin weights are drawn as they are, so normalize S first if
//frequencies rather than counts are wanted. labels can be nil for no
//legend; otherwise it must contain one entry per histogram in S.
func Histogram(S *histo.Set, labels []string, file string) error {
	if S == nil || S.Len() == 0 {
		panic("oxplot.Histogram: Given nil data")
	}
	if labels != nil && len(labels) < S.Len() {
		panic("oxplot.Histogram: If a non-nil labels slice is provided it must contain an element for each histogram in the set")
	}
	p := basicPlot("Distance (nm)", "Normalized frequency")
	for i := 0; i < S.Len(); i++ {
		d := S.View(i)
		div := d.CopyDividers()
		if len(div) < 2 {
			return fmt.Errorf("oxplot.Histogram: histogram %d has no dividers", i)
		}
		w := d.Copy()
		bins := make([]plotter.HistogramBin, len(w))
		for j, v := range w {
			bins[j] = plotter.HistogramBin{Min: div[j], Max: div[j+1], Weight: v}
		}
		h := &plotter.Histogram{
			Bins:      bins,
			Width:     div[1] - div[0],
			FillColor: seriesColor(i, S.Len()),
			LineStyle: plotter.DefaultLineStyle,
		}
		p.Add(h)
		if labels != nil {
			p.Legend.Add(labels[i], fillThumb{h.FillColor})
		}
	}
	log.Printf("INFO: Writing histogram to file %s", file)
	return p.Save(6.4*vg.Inch, 4.8*vg.Inch, file)
}

//Line plots each series against its sample index (the simulation step
//ordinal) on shared axes. labels can be nil for no legend; otherwise it
//must contain one entry per series.
func Line(series [][]float64, labels []string, file string) error {
	if len(series) == 0 {
		panic("oxplot.Line: Given nil data")
	}
	if labels != nil && len(labels) < len(series) {
		panic("oxplot.Line: If a non-nil labels slice is provided it must contain an element for each series")
	}
	p := basicPlot("Simulation Steps", "Distance (nm)")
	for i, s := range series {
		pts := make(plotter.XYs, len(s))
		for k, v := range s {
			pts[k].X = float64(k)
			pts[k].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = seriesColor(i, len(series))
		p.Add(l)
		if labels != nil {
			p.Legend.Add(labels[i], l)
		}
	}
	log.Printf("INFO: Writing trajectory plot to file %s", file)
	return p.Save(6.4*vg.Inch, 4.8*vg.Inch, file)
}
