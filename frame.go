/*
 * frame.go, part of oxdna-analysis-tools
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

	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// Frame is one configuration of a trajectory: the center-of-mass position
// and the two orientation versors (the base vector a1 and the stacking
// vector a3) of every nucleotide, plus the time stamp, box and energies
// from the configuration header. The three matrices always hold the same
// number of vectors, and nucleotide order is the topology order, identical
// across all frames of one trajectory.
type Frame struct {
	Time   float64
	Box    []float64 //3 elements, box sides
	Energy []float64 //3 elements, total, potential and kinetic
	Pos    *v3.Matrix
	A1     *v3.Matrix
	A3     *v3.Matrix
}

// NewFrame returns a Frame with room for natoms nucleotides.
func NewFrame(natoms int) *Frame {
	return &Frame{
		Box:    make([]float64, 3),
		Energy: make([]float64, 3),
		Pos:    v3.Zeros(natoms),
		A1:     v3.Zeros(natoms),
		A3:     v3.Zeros(natoms),
	}
}

// Len returns the number of nucleotides in the Frame.
func (F *Frame) Len() int {
	return F.Pos.NVecs()
}

// Inbox wraps every position back into the canonical simulation box,
// i.e. into [0,box) on each axis. Orientation vectors are directions and
// are not touched.
func (F *Frame) Inbox() {
	n := F.Len()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			p := F.Pos.At(i, j)
			b := F.Box[j]
			F.Pos.Set(i, j, p-b*math.Floor(p/b))
		}
	}
}

// Copy copies the contents of A into the receiver. Both frames must hold
// the same number of nucleotides.
func (F *Frame) Copy(A *Frame) {
	F.Time = A.Time
	copy(F.Box, A.Box)
	copy(F.Energy, A.Energy)
	F.Pos.Copy(A.Pos)
	F.A1.Copy(A.A1)
	F.A3.Copy(A.A3)
}
