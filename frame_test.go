/*
 * frame_test.go, part of oxdna-analysis-tools
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

package oxdna

import (
	"math"
	"testing"
)

func TestInbox(Te *testing.T) {
	f := NewFrame(2)
	f.Box = []float64{5, 5, 5}
	f.Pos.Set(0, 0, 1.5)
	f.Pos.Set(0, 1, -0.3)
	f.Pos.Set(0, 2, 7.2)
	f.Pos.Set(1, 0, 5.0)
	f.Pos.Set(1, 1, -5.0)
	f.Pos.Set(1, 2, 12.5)
	f.Inbox()
	want := [][]float64{
		{1.5, 4.7, 2.2},
		{0, 0, 2.5},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(f.Pos.At(i, j)-want[i][j]) > 1e-9 {
				Te.Errorf("Inbox wrong at %d,%d: got %v want %v", i, j, f.Pos.At(i, j), want[i][j])
			}
		}
	}
	//wrapped positions always end up inside [0,box)
	for i := 0; i < f.Len(); i++ {
		for j := 0; j < 3; j++ {
			p := f.Pos.At(i, j)
			if p < 0 || p >= f.Box[j] {
				Te.Error("position left outside the box after Inbox:", p)
			}
		}
	}
}

func TestFrameCopy(Te *testing.T) {
	a := NewFrame(3)
	a.Time = 42
	a.Box = []float64{10, 10, 10}
	a.Energy = []float64{-1, -2, 1}
	a.Pos.Set(2, 1, 3.25)
	a.A1.Set(0, 0, 1)
	a.A3.Set(1, 2, -1)
	b := NewFrame(3)
	b.Copy(a)
	if b.Time != 42 || b.Box[0] != 10 || b.Energy[1] != -2 {
		Te.Error("header not copied", b)
	}
	if b.Pos.At(2, 1) != 3.25 || b.A1.At(0, 0) != 1 || b.A3.At(1, 2) != -1 {
		Te.Error("coordinates not copied")
	}
	//the copy must not share storage
	a.Pos.Set(2, 1, 0)
	if b.Pos.At(2, 1) != 3.25 {
		Te.Error("Copy shares storage with its source")
	}
}
