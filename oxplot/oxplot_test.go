/*
 * oxplot_test.go, part of oxdna-analysis-tools
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

package oxplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bensonbits/oxdna-analysis-tools/histo"
)

//two synthetic distance series in nm, one oscillating around 3 and one
//drifting from 4 to 5
func testSeries() ([]float64, []float64) {
	s1 := make([]float64, 30)
	s2 := make([]float64, 30)
	for i := range s1 {
		s1[i] = 3 + 0.4*math.Sin(float64(i)/3)
		s2[i] = 4 + float64(i)/30 + 0.1*math.Cos(float64(i)/2)
	}
	return s1, s2
}

func TestHistogramPlot(Te *testing.T) {
	s1, s2 := testSeries()
	div := histo.AutoDividers(s1, s2)
	S := histo.NewSet(2, div)
	S.Fill()
	S.NewHisto(0, nil, s1, 0)
	S.NewHisto(1, nil, s2, 1)
	S.NormalizeAll()
	labels := []string{"trj.dat from 1 to 10", "trj.dat from 3 to 12"}
	file := filepath.Join(Te.TempDir(), "distance.png")
	err := Histogram(S, labels, file)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := os.Stat(file)
	if err != nil {
		Te.Fatal(err)
	}
	if st.Size() == 0 {
		Te.Error("the histogram image came out empty")
	}
	fmt.Println("histogram image written,", st.Size(), "bytes")
}

func TestLinePlot(Te *testing.T) {
	s1, s2 := testSeries()
	labels := []string{"trj.dat from 1 to 10", "trj.dat from 3 to 12"}
	file := filepath.Join(Te.TempDir(), "distance.png")
	err := Line([][]float64{s1, s2}, labels, file)
	if err != nil {
		Te.Fatal(err)
	}
	st, err := os.Stat(file)
	if err != nil {
		Te.Fatal(err)
	}
	if st.Size() == 0 {
		Te.Error("the trajectory plot image came out empty")
	}
	fmt.Println("trajectory plot written,", st.Size(), "bytes")
}

func TestPlotWithoutLegend(Te *testing.T) {
	s1, _ := testSeries()
	file := filepath.Join(Te.TempDir(), "bare.png")
	if err := Line([][]float64{s1}, nil, file); err != nil {
		Te.Error(err)
	}
	S := histo.NewSet(1, histo.AutoDividers(s1))
	S.Fill()
	S.NewHisto(0, nil, s1)
	if err := Histogram(S, nil, filepath.Join(Te.TempDir(), "barehist.png")); err != nil {
		Te.Error(err)
	}
}
