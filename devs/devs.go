/*
 * devs.go, part of oxdna-analysis-tools
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

package devs

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/mean"
	"github.com/bensonbits/oxdna-analysis-tools/traj/oxdat"
	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

//one oxDNA length unit in nanometers
const nmPerSimUnit = 0.8518

// Options contains the options for the Compute function.
type Options struct {
	//Indexes is the nucleotide subset used for the alignment fit,
	//normally the same subset the mean structure was aligned on.
	//nil or empty means every nucleotide.
	Indexes []int
	//Workers is the number of concurrent accumulators. 1 or less runs
	//serially.
	Workers int
}

// DefaultOptions returns options for a serial run aligned on every
// nucleotide.
func DefaultOptions(top *oxdna.Topology) *Options {
	o := new(Options)
	o.Indexes = top.Indexes()
	o.Workers = 1
	return o
}

func (o *Options) check(top *oxdna.Topology) error {
	if len(o.Indexes) == 0 {
		o.Indexes = top.Indexes()
	}
	for _, v := range o.Indexes {
		if v < 0 || v >= top.N {
			return Error{fmt.Sprintf("alignment index %d out of range for %d nucleotides", v, top.N), nil, true}
		}
	}
	return nil
}

// Profile is a finished deviation analysis: the per-nucleotide
// root-mean-square fluctuation around the mean structure and the
// per-frame RMSD of the fit against it, both in nanometers.
type Profile struct {
	RMSF   []float64 //one per nucleotide
	RMSD   []float64 //one per frame, in trajectory order
	Frames int
}

type jsonProfile struct {
	RMSF []float64 `json:"RMSF (nm)"`
}

// MarshalJSON implements json.Marshaler. Only the RMSF profile is
// serialized; it is the record structure viewers overlay on the mean.
func (p *Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProfile{RMSF: p.RMSF})
}

// WriteJSON writes the RMSF profile to filename.
func (p *Profile) WriteJSON(filename string) error {
	b, err := json.Marshal(p)
	if err != nil {
		return Error{err.Error(), []string{"WriteJSON"}, true}
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return Error{err.Error(), []string{"WriteJSON"}, true}
	}
	return nil
}

// accumulator carries one worker's running sums: per-nucleotide squared
// deviations from the mean and the RMSD of each processed frame.
type accumulator struct {
	sq     []float64
	rmsd   []float64
	frames int
	sub    *v3.Matrix
	pos    *v3.Matrix
}

func newAccumulator(natoms, alignlen int) *accumulator {
	return &accumulator{
		sq:  make([]float64, natoms),
		sub: v3.Zeros(alignlen),
		pos: v3.Zeros(natoms),
	}
}

// fold superimposes one frame on the mean structure and adds its
// squared deviations to the sums. target is the alignment subset of the
// mean positions, meanpos the full set.
func (A *accumulator) fold(f *oxdna.Frame, target, meanpos *v3.Matrix, indexes []int) error {
	f.Inbox()
	A.sub.SomeVecs(f.Pos, indexes)
	R, rmsd, err := oxdna.Superpose(A.sub, target)
	if err != nil {
		return errDecorate(err, "fold")
	}
	R.Apply(A.pos, f.Pos)
	for i := range A.sq {
		dx := A.pos.At(i, 0) - meanpos.At(i, 0)
		dy := A.pos.At(i, 1) - meanpos.At(i, 1)
		dz := A.pos.At(i, 2) - meanpos.At(i, 2)
		A.sq[i] += dx*dx + dy*dy + dz*dz
	}
	A.rmsd = append(A.rmsd, rmsd)
	A.frames++
	return nil
}

// run folds up to n frames from traj (all remaining if n is negative).
// Closing stop aborts before the next frame; a nil stop never aborts.
func (A *accumulator) run(traj oxdna.Traj, target, meanpos *v3.Matrix, indexes []int, n int, stop <-chan struct{}) error {
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
				return Error{fmt.Sprintf("trajectory ended after %d of %d frames", i, n), []string{"run"}, true}
			}
			return errDecorate(err, "run")
		}
		if err := A.fold(f, target, meanpos, indexes); err != nil {
			return errDecorate(err, "run")
		}
	}
	return nil
}

// chunk is a contiguous run of frames assigned to one worker, split the
// same way the mean package splits its trajectory.
type chunk struct {
	start int
	n     int
}

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

func runChunk(trajfile string, top *oxdna.Topology, A *accumulator, target, meanpos *v3.Matrix, indexes []int, c chunk, stop <-chan struct{}) error {
	traj, err := oxdat.New(trajfile, top.N)
	if err != nil {
		return errDecorate(err, "runChunk")
	}
	defer traj.Close()
	if err := traj.SkipFrames(c.start); err != nil {
		return errDecorate(err, "runChunk")
	}
	return A.run(traj, target, meanpos, indexes, c.n, stop)
}

// finalize merges the workers' sums, in chunk order so the RMSD series
// stays in trajectory order, and converts them to nanometers.
func finalize(accs []*accumulator, natoms int) *Profile {
	sq := make([]float64, natoms)
	frames := 0
	var rmsd []float64
	for _, a := range accs {
		floats.Add(sq, a.sq)
		rmsd = append(rmsd, a.rmsd...)
		frames += a.frames
	}
	p := &Profile{RMSF: make([]float64, natoms), RMSD: rmsd, Frames: frames}
	if frames > 0 {
		for i, s := range sq {
			p.RMSF[i] = nmPerSimUnit * math.Sqrt(s/float64(frames))
		}
	}
	floats.Scale(nmPerSimUnit, p.RMSD)
	return p
}

// Compute measures the deviations of every frame of trajfile from the
// mean structure r. Any failure, in any worker, fails the whole run and
// discards the partial sums.
func Compute(r *mean.Result, trajfile string, top *oxdna.Topology, o *Options) (*Profile, error) {
	if o == nil {
		o = DefaultOptions(top)
	}
	if err := o.check(top); err != nil {
		return nil, errDecorate(err, "Compute")
	}
	if r.Mean.NVecs() != top.N {
		return nil, Error{fmt.Sprintf("mean structure has %d nucleotides, topology has %d", r.Mean.NVecs(), top.N), []string{"Compute"}, true}
	}
	frames, err := oxdat.FrameCount(trajfile)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	if frames < 1 {
		return nil, Error{fmt.Sprintf("trajectory %s contains no frames", trajfile), []string{"Compute"}, true}
	}
	target := v3.Zeros(len(o.Indexes))
	target.SomeVecs(r.Mean, o.Indexes)
	workers := o.Workers
	if workers > frames {
		workers = frames
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		log.Printf("INFO: computing deviations over %d configurations using 1 core", frames)
		A := newAccumulator(top.N, len(o.Indexes))
		traj, err := oxdat.New(trajfile, top.N)
		if err != nil {
			return nil, errDecorate(err, "Compute")
		}
		defer traj.Close()
		if err := A.run(traj, target, r.Mean, o.Indexes, frames, nil); err != nil {
			return nil, errDecorate(err, "Compute")
		}
		log.Printf("INFO: processed %d frames total", A.frames)
		return finalize([]*accumulator{A}, top.N), nil
	}
	log.Printf("INFO: computing deviations over %d configurations using %d cores", frames, workers)
	chunks := partition(frames, workers)
	accs := make([]*accumulator, len(chunks))
	stop := make(chan struct{})
	results := make(chan wresult, len(chunks))
	for i, c := range chunks {
		accs[i] = newAccumulator(top.N, len(o.Indexes))
		go func(id int, c chunk, A *accumulator) {
			results <- wresult{id, runChunk(trajfile, top, A, target, r.Mean, o.Indexes, c, stop)}
		}(i, c, accs[i])
	}
	errs := make([]error, len(chunks))
	failed := false
	for range chunks {
		wr := <-results
		errs[wr.id] = wr.err
		if wr.err != nil && !aborted(wr.err) && !failed {
			failed = true
			close(stop)
		}
	}
	if failed {
		for _, err := range errs {
			if err != nil && !aborted(err) {
				return nil, errDecorate(err, "Compute")
			}
		}
	}
	p := finalize(accs, top.N)
	log.Printf("INFO: processed %d frames total", p.Frames)
	return p, nil
}
