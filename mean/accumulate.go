/*
 * accumulate.go, part of oxdna-analysis-tools
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

package mean

import (
	"fmt"
	"log"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// Accumulator holds the running sums of a mean-structure calculation:
// for every nucleotide, the sum over the frames folded in so far of its
// aligned position and of its two aligned orientation vectors. The same
// type serves the serial and the parallel calculation, a parallel run
// simply gives one Accumulator to each worker and merges them at the
// end. An Accumulator must not be shared between goroutines.
type Accumulator struct {
	PosSum        *v3.Matrix
	A1Sum         *v3.Matrix
	A3Sum         *v3.Matrix
	Frames        int          //frames folded in so far
	Intermediates []*v3.Matrix //periodic running means of the positions
	//scratch space reused across frames
	sub *v3.Matrix
	pos *v3.Matrix
	a1  *v3.Matrix
	a3  *v3.Matrix
}

// NewAccumulator returns a zeroed Accumulator for natoms nucleotides of
// which alignlen are used for the alignment.
func NewAccumulator(natoms, alignlen int) *Accumulator {
	return &Accumulator{
		PosSum: v3.Zeros(natoms),
		A1Sum:  v3.Zeros(natoms),
		A3Sum:  v3.Zeros(natoms),
		sub:    v3.Zeros(alignlen),
		pos:    v3.Zeros(natoms),
		a1:     v3.Zeros(natoms),
		a3:     v3.Zeros(natoms),
	}
}

// fold aligns one frame against the reference and adds it to the
// running sums. The frame is wrapped into the box, the alignment subset
// is superposed on the reference, and the resulting rotation and
// translation are applied to all positions while the orientation
// vectors only get the rotation. Returns the RMSD of the alignment.
func (A *Accumulator) fold(f *oxdna.Frame, ref *Reference, indexes []int) (float64, error) {
	f.Inbox()
	A.sub.SomeVecs(f.Pos, indexes)
	R, rmsd, err := oxdna.Superpose(A.sub, ref.Conf)
	if err != nil {
		return 0, errDecorate(err, "fold")
	}
	R.Apply(A.pos, f.Pos)
	R.Rotate(A.a1, f.A1)
	R.Rotate(A.a3, f.A3)
	//the .Dense receiver-operands mark the additions as in-place for gonum,
	//which panics when the same data reaches it through a different header
	A.PosSum.Add(A.PosSum.Dense, A.pos)
	A.A1Sum.Add(A.A1Sum.Dense, A.a1)
	A.A3Sum.Add(A.A3Sum.Dense, A.a3)
	return rmsd, nil
}

// snapshot records the current running mean of the positions.
func (A *Accumulator) snapshot() {
	natoms, _ := A.PosSum.Dims()
	s := v3.Zeros(natoms)
	s.Scale(1/float64(A.Frames), A.PosSum)
	A.Intermediates = append(A.Intermediates, s)
}

// Accumulate reads up to n frames from traj (all remaining frames if n
// is negative) and folds each into the running sums. A positive every
// records an intermediate mean each time the frame count reaches a
// multiple of it; zero disables the intermediates, which is how the
// parallel workers run since the partial chunks would not produce
// meaningful ones. Closing stop aborts the run before the next frame
// is read; a nil stop never aborts.
func (A *Accumulator) Accumulate(traj oxdna.Traj, ref *Reference, o *Options, n, every int, stop <-chan struct{}) error {
	f := oxdna.NewFrame(traj.Natoms())
	for i := 0; n < 0 || i < n; i++ {
		select {
		case <-stop:
			return abortError{}
		default:
		}
		if err := traj.Next(f); err != nil {
			if _, ok := err.(oxdna.LastFrameError); ok {
				if n < 0 {
					break
				}
				return Error{fmt.Sprintf("trajectory ended after %d of %d frames", i, n), []string{"Accumulate"}, true}
			}
			return errDecorate(err, "Accumulate")
		}
		rmsd, err := A.fold(f, ref, o.Indexes)
		if err != nil {
			return errDecorate(err, "Accumulate")
		}
		if o.Verbose {
			fmt.Println("Frame:", A.Frames, "Time:", f.Time, "RMSF:", rmsd)
		}
		A.Frames++
		if every > 0 && A.Frames%every == 0 {
			A.snapshot()
			if o.Verbose {
				log.Printf("INFO: intermediate mean recorded after %d frames", A.Frames)
			}
		}
	}
	return nil
}

// Merge adds the sums and frame count of B into the receiver and
// appends B's intermediate structures. B is not modified.
func (A *Accumulator) Merge(B *Accumulator) {
	A.PosSum.Add(A.PosSum.Dense, B.PosSum)
	A.A1Sum.Add(A.A1Sum.Dense, B.A1Sum)
	A.A3Sum.Add(A.A3Sum.Dense, B.A3Sum)
	A.Frames += B.Frames
	A.Intermediates = append(A.Intermediates, B.Intermediates...)
}
