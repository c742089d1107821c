package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestHistoSet(Te *testing.T) {
	s1 := []float64{2.0, 2.2, 2.4, 3.0, 3.1, 3.3, 3.6, 3.9, 2.8, 3.5}
	s2 := []float64{2.5, 2.6, 4.2, 4.4, 1.9}
	div := AutoDividers(s1, s2)
	fmt.Println("dividers:", div)
	if len(div) != 5 {
		Te.Errorf("wanted ceil(10/2)=5 dividers, got %d", len(div))
	}
	if div[0] != 1 || div[len(div)-1] != 5 {
		Te.Errorf("dividers should run from 1 to 5, got %4.2f to %4.2f", div[0], div[len(div)-1])
	}
	S := NewSet(2, div)
	S.Fill()
	S.NewHisto(0, nil, s1, 0)
	S.NewHisto(1, nil, s2, 1)
	//building a histogram must not reorder the caller's series
	if s2[len(s2)-1] != 1.9 {
		Te.Error("raw data series was reordered")
	}
	want0 := []float64{0, 4, 6, 0}
	want1 := []float64{1, 2, 0, 2}
	if !floats.Equal(S.View(0).Copy(), want0) {
		Te.Error("first histogram came out wrong:", S.View(0).String())
	}
	if !floats.Equal(S.View(1).Copy(), want1) {
		Te.Error("second histogram came out wrong:", S.View(1).String())
	}
	S.NormalizeAll()
	for i := 0; i < S.Len(); i++ {
		if s := S.View(i).Sum(); math.Abs(s-1) > 1e-12 {
			Te.Errorf("normalized histogram %d sums to %f, not 1", i, s)
		}
	}
	S.UnNormalizeAll()
	if !floats.Equal(S.View(0).Copy(), want0) {
		Te.Error("un-normalizing did not restore the counts")
	}
	fmt.Println(S.String())
}

func TestHistoOffLimits(Te *testing.T) {
	//points outside the dividers count towards the total but land in no bin,
	//so frequencies stay fractions of the full series
	d := NewData([]float64{0, 1, 2}, nil)
	d.AddData(0.5, 5.0)
	d.Normalize()
	if s := d.Sum(); math.Abs(s-0.5) > 1e-12 {
		Te.Errorf("wanted frequency sum 0.5 with one point off limits, got %f", s)
	}
	d2 := NewData([]float64{0, 1, 2}, []float64{0.5, 5.0})
	if d2.Sum() != 1 || d2.Copy()[0] != 1 {
		Te.Error("rebuilt histogram mishandled an off-limits point:", d2.String())
	}
	d2.Normalize()
	if s := d2.Sum(); math.Abs(s-0.5) > 1e-12 {
		Te.Errorf("rebuilt histogram normalized to %f, wanted 0.5", s)
	}
}

func TestHistoCombine(Te *testing.T) {
	div := []float64{0, 1, 2, 3}
	a := NewSet(1, div)
	a.Fill()
	a.AddData(0, 0.5, 1.5, 1.7)
	b := NewSet(1, div)
	b.Fill()
	b.AddData(0, 2.5, 0.1)
	dest := NewSet(1, div)
	dest.Fill()
	Combine(func(x, y, d *Data) { d.Add(x, y) }, a, b, dest)
	if !floats.Equal(dest.View(0).Copy(), []float64{2, 2, 1}) {
		Te.Error("combined histogram came out wrong:", dest.View(0).String())
	}
	dest.View(0).Normalize()
	if s := dest.View(0).Sum(); math.Abs(s-1) > 1e-12 {
		Te.Errorf("combined histogram normalizes to %f, not 1", s)
	}
}

func TestHistoIO(Te *testing.T) {
	fmt.Println("Histogram JSON output test!")
	S := NewSet(3, []float64{0, 1, 2, 3, 4, 8})
	S.Fill()
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 1, 2, 3, 3, 7, 3, 1, 3, 5, 1}
	S.NewHisto(1, nil, rawdata, 7)
	v := S.View(1)
	fmt.Println(v.String())
	j, err := json.Marshal(S)
	if err != nil {
		Te.Error(err)
	}
	fmt.Println("JSON:", string(j))
	S2 := new(Set)
	err = json.Unmarshal(j, S2)
	if err != nil {
		Te.Error(err)
	}
	if S2.Len() != S.Len() {
		Te.Errorf("set length changed across the JSON round-trip: %d vs %d", S2.Len(), S.Len())
	}
	if !floats.Equal(S2.View(1).View(), v.View()) {
		Te.Error("histogram changed across the JSON round-trip")
	}
	if S2.View(1).ID() != 7 {
		Te.Error("histogram ID changed across the JSON round-trip")
	}
	if !floats.Equal(S2.CopyDividers(), S.CopyDividers()) {
		Te.Error("dividers changed across the JSON round-trip")
	}
}
