/*
 * reduce.go, part of oxdna-analysis-tools
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
	"log"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/traj/oxdat"
)

// chunk is a contiguous run of frames assigned to one worker.
type chunk struct {
	start int //first frame of the chunk
	n     int //frames in the chunk
}

// partition splits frames into at most workers contiguous chunks of
// near-equal size, with earlier chunks taking the remainder. Fewer
// chunks than workers come back when there are not enough frames for
// everyone to get at least one.
func partition(frames, workers int) []chunk {
	if workers > frames {
		workers = frames
	}
	if workers < 1 {
		workers = 1
	}
	size := frames / workers
	rem := frames % workers
	chunks := make([]chunk, workers)
	start := 0
	for i := range chunks {
		n := size
		if i < rem {
			n++
		}
		chunks[i] = chunk{start, n}
		start += n
	}
	return chunks
}

type wresult struct {
	id  int
	err error
}

// runChunk opens its own reader on the trajectory, skips to the start
// of the chunk and accumulates its frames. Every worker has exclusive
// use of its reader and its accumulator, so no locking is needed.
func runChunk(trajfile string, top *oxdna.Topology, A *Accumulator, ref *Reference, o *Options, c chunk, stop <-chan struct{}) error {
	traj, err := oxdat.New(trajfile, top.N)
	if err != nil {
		return errDecorate(err, "runChunk")
	}
	defer traj.Close()
	if err := traj.SkipFrames(c.start); err != nil {
		return errDecorate(err, "runChunk")
	}
	return A.Accumulate(traj, ref, o, c.n, 0, stop)
}

// Compute runs a whole mean-structure calculation on trajfile: it
// counts the frames, picks the alignment reference, folds every frame
// into the sums serially or over o.Workers parallel chunks, and turns
// the merged sums into a Result. If anything fails, no partial result
// comes back: a failure in any worker stops the others and discards
// whatever they had summed.
func Compute(trajfile string, top *oxdna.Topology, o *Options) (*Result, error) {
	if o == nil {
		o = DefaultOptions(top)
	}
	if err := o.check(top); err != nil {
		return nil, errDecorate(err, "Compute")
	}
	frames, err := oxdat.FrameCount(trajfile)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	ref, err := pickReference(trajfile, top, o, frames)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	workers := o.Workers
	if workers > frames {
		workers = frames
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		log.Printf("INFO: computing mean of %d configurations using 1 core", frames)
		A := NewAccumulator(top.N, len(o.Indexes))
		every := 0
		if o.Intermediates {
			every = frames / 10
		}
		traj, err := oxdat.New(trajfile, top.N)
		if err != nil {
			return nil, errDecorate(err, "Compute")
		}
		defer traj.Close()
		if err := A.Accumulate(traj, ref, o, frames, every, nil); err != nil {
			return nil, errDecorate(err, "Compute")
		}
		log.Printf("INFO: processed %d frames total", A.Frames)
		return Finalize(A, ref), nil
	}
	log.Printf("INFO: computing mean of %d configurations using %d cores", frames, workers)
	chunks := partition(frames, workers)
	accs := make([]*Accumulator, len(chunks))
	stop := make(chan struct{})
	results := make(chan wresult, len(chunks))
	for i, c := range chunks {
		accs[i] = NewAccumulator(top.N, len(o.Indexes))
		go func(id int, c chunk, A *Accumulator) {
			results <- wresult{id, runChunk(trajfile, top, A, ref, o, c, stop)}
		}(i, c, accs[i])
	}
	errs := make([]error, len(chunks))
	failed := false
	for range chunks {
		r := <-results
		errs[r.id] = r.err
		if r.err != nil && !aborted(r.err) && !failed {
			failed = true
			close(stop)
		}
	}
	if failed {
		//report the failure of the earliest chunk, the others either
		//also failed or were told to stop because of it
		for _, err := range errs {
			if err != nil && !aborted(err) {
				return nil, errDecorate(err, "Compute")
			}
		}
	}
	A := accs[0]
	for _, B := range accs[1:] {
		A.Merge(B)
	}
	log.Printf("INFO: processed %d frames total", A.Frames)
	return Finalize(A, ref), nil
}
