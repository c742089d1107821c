/*
 * mean_test.go, part of oxdna-analysis-tools
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
	"math"
	"os"
	"strings"
	"testing"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/traj/oxdat"
	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// testStructure returns a small helix well inside a 20x20x20 box, with
// unit orientation vectors.
func testStructure(natoms int) *oxdna.Frame {
	f := oxdna.NewFrame(natoms)
	f.Box[0], f.Box[1], f.Box[2] = 20, 20, 20
	for i := 0; i < natoms; i++ {
		th := 2 * math.Pi * float64(i) / 10.5
		f.Pos.Set(i, 0, 10+math.Cos(th))
		f.Pos.Set(i, 1, 10+math.Sin(th))
		f.Pos.Set(i, 2, 5+0.39*float64(i))
		f.A1.Set(i, 0, math.Cos(th))
		f.A1.Set(i, 1, math.Sin(th))
		f.A3.Set(i, 2, 1)
	}
	return f
}

func writeTraj(Te *testing.T, name string, frames []*oxdna.Frame) {
	w, err := oxdat.NewWriter(name, frames[0].Len())
	if err != nil {
		Te.Fatal(err)
	}
	for _, f := range frames {
		if err := w.WNext(f); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
}

// writeStill writes nframes copies of the same structure.
func writeStill(Te *testing.T, name string, nframes, natoms int) {
	base := testStructure(natoms)
	frames := make([]*oxdna.Frame, nframes)
	for k := range frames {
		f := oxdna.NewFrame(natoms)
		f.Copy(base)
		f.Time = float64(k) * 100
		frames[k] = f
	}
	writeTraj(Te, name, frames)
}

// writeMoving writes a trajectory where the structure slowly rotates
// about the box center and drifts, staying inside the box throughout.
func writeMoving(Te *testing.T, name string, nframes, natoms int) {
	base := testStructure(natoms)
	frames := make([]*oxdna.Frame, nframes)
	for k := range frames {
		f := oxdna.NewFrame(natoms)
		f.Copy(base)
		f.Time = float64(k) * 100
		ang := 0.05 * float64(k)
		c, s := math.Cos(ang), math.Sin(ang)
		for i := 0; i < natoms; i++ {
			x := base.Pos.At(i, 0) - 10
			y := base.Pos.At(i, 1) - 10
			f.Pos.Set(i, 0, 10+c*x-s*y+0.01*float64(k))
			f.Pos.Set(i, 1, 10+s*x+c*y-0.008*float64(k))
			f.Pos.Set(i, 2, base.Pos.At(i, 2)+0.012*float64(k))
			ax, ay := base.A1.At(i, 0), base.A1.At(i, 1)
			f.A1.Set(i, 0, c*ax-s*ay)
			f.A1.Set(i, 1, s*ax+c*ay)
		}
		frames[k] = f
	}
	writeTraj(Te, name, frames)
}

func maxDiff(a, b *v3.Matrix) float64 {
	r, _ := a.Dims()
	var m float64
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			d := math.Abs(a.At(i, j) - b.At(i, j))
			if d > m {
				m = d
			}
		}
	}
	return m
}

func TestMeanOfStillTrajectory(Te *testing.T) {
	fmt.Println("mean of a motionless trajectory!")
	natoms := 10
	base := testStructure(natoms)
	name := Te.TempDir() + "/still.dat"
	writeStill(Te, name, 10, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 0
	r, err := Compute(name, top, o)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Frames != 10 {
		Te.Error("wanted 10 frames averaged, got", r.Frames)
	}
	//with no motion, the mean is the frame itself moved so the centroid
	//of the alignment subset sits at the origin
	want := v3.Zeros(natoms)
	want.SubVec(base.Pos, v3.Centroid(base.Pos))
	if d := maxDiff(r.Mean, want); d > 1e-9 {
		Te.Error("mean deviates from the single frame by", d)
	}
	if d := maxDiff(r.A1Mean, base.A1); d > 1e-9 {
		Te.Error("mean a1 deviates from the single frame by", d)
	}
	if d := maxDiff(r.A3Mean, base.A3); d > 1e-9 {
		Te.Error("mean a3 deviates from the single frame by", d)
	}
	//10 frames make the intermediate interval 1, so one per frame
	if len(r.Intermediates) != 10 {
		Te.Error("expected 10 intermediate means, got", len(r.Intermediates))
	}
	for k, m := range r.Intermediates {
		if d := maxDiff(m, want); d > 1e-9 {
			Te.Error("intermediate", k, "deviates by", d)
		}
	}
	//aligning a frame against itself is an exact fit
	ref, err := pickReference(name, top, o, 10)
	if err != nil {
		Te.Fatal(err)
	}
	A := NewAccumulator(natoms, len(o.Indexes))
	f := oxdna.NewFrame(natoms)
	f.Copy(base)
	rmsd, err := A.fold(f, ref, o.Indexes)
	if err != nil {
		Te.Fatal(err)
	}
	if rmsd > 1e-9 {
		Te.Error("superposing a frame on itself gave RMSD", rmsd)
	}
}

func TestSerialParallelAgree(Te *testing.T) {
	natoms := 10
	name := Te.TempDir() + "/moving.dat"
	writeMoving(Te, name, 100, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	serial := DefaultOptions(top)
	serial.Reference = 0
	serial.Verbose = false
	rs, err := Compute(name, top, serial)
	if err != nil {
		Te.Fatal(err)
	}
	par := DefaultOptions(top)
	par.Reference = 0
	par.Verbose = false
	par.Workers = 4
	rp, err := Compute(name, top, par)
	if err != nil {
		Te.Fatal(err)
	}
	if rs.Frames != 100 || rp.Frames != 100 {
		Te.Error("wrong processed-frame counts:", rs.Frames, rp.Frames)
	}
	if d := maxDiff(rs.Mean, rp.Mean); d > 1e-9 {
		Te.Error("serial and parallel means differ by", d)
	}
	if d := maxDiff(rs.A1Mean, rp.A1Mean); d > 1e-9 {
		Te.Error("serial and parallel a1 means differ by", d)
	}
	if d := maxDiff(rs.A3Mean, rp.A3Mean); d > 1e-9 {
		Te.Error("serial and parallel a3 means differ by", d)
	}
	//mean orientations come out unit length
	for i := 0; i < natoms; i++ {
		if math.Abs(rp.A1Mean.VecNorm(i)-1) > 1e-9 || math.Abs(rp.A3Mean.VecNorm(i)-1) > 1e-9 {
			Te.Error("orientation mean of nucleotide", i, "is not unit length")
			break
		}
	}
	//100 frames make the intermediate interval 10
	if len(rs.Intermediates) != 10 {
		Te.Error("serial run recorded", len(rs.Intermediates), "intermediates instead of 10")
	}
	if len(rp.Intermediates) != 0 {
		Te.Error("parallel run recorded", len(rp.Intermediates), "intermediates instead of none")
	}
}

func TestIntermediateCounts(Te *testing.T) {
	natoms := 6
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	cases := []struct {
		frames, want int
	}{
		{25, 12}, //interval 2
		{7, 0},   //interval 0, disabled
	}
	for _, c := range cases {
		name := fmt.Sprintf("%s/traj%d.dat", Te.TempDir(), c.frames)
		writeStill(Te, name, c.frames, natoms)
		o := DefaultOptions(top)
		o.Reference = 0
		o.Verbose = false
		r, err := Compute(name, top, o)
		if err != nil {
			Te.Fatal(err)
		}
		if len(r.Intermediates) != c.want {
			Te.Error(c.frames, "frames gave", len(r.Intermediates), "intermediates, wanted", c.want)
		}
	}
}

func TestPickReference(Te *testing.T) {
	natoms := 8
	name := Te.TempDir() + "/traj.dat"
	writeStill(Te, name, 5, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 2
	ref, err := PickReference(name, top, o)
	if err != nil {
		Te.Fatal(err)
	}
	if ref.ID != 2 {
		Te.Error("asked for configuration 2, got", ref.ID)
	}
	if ref.Conf.NVecs() != natoms {
		Te.Error("reference has", ref.Conf.NVecs(), "points instead of", natoms)
	}
	if ref.Box[0] != 20 {
		Te.Error("reference did not keep the box:", ref.Box)
	}
	if c := v3.Centroid(ref.Conf); c.VecNorm(0) > 1e-12 {
		Te.Error("reference centroid is not at the origin:", c)
	}
	//a seeded random pick is reproducible
	o.Reference = -1
	o.Seed = 42
	r1, err := PickReference(name, top, o)
	if err != nil {
		Te.Fatal(err)
	}
	r2, err := PickReference(name, top, o)
	if err != nil {
		Te.Fatal(err)
	}
	if r1.ID != r2.ID {
		Te.Error("the same seed picked different references:", r1.ID, r2.ID)
	}
	if r1.ID < 0 || r1.ID >= 5 {
		Te.Error("random reference out of range:", r1.ID)
	}
}

func TestReferenceOutOfRange(Te *testing.T) {
	natoms := 8
	name := Te.TempDir() + "/traj.dat"
	writeStill(Te, name, 5, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 5
	o.Verbose = false
	if _, err := PickReference(name, top, o); err == nil {
		Te.Fatal("configuration 5 of a 5-frame trajectory must be rejected")
	}
	_, err := Compute(name, top, o)
	if err == nil {
		Te.Fatal("Compute must refuse an out-of-range reference")
	}
	if !strings.Contains(err.Error(), "out of range") {
		Te.Error("unexpected failure:", err)
	}
	fmt.Println("out-of-range reference correctly rejected:", err)
}

func TestDegenerateAlignment(Te *testing.T) {
	natoms := 10
	name := Te.TempDir() + "/still.dat"
	writeStill(Te, name, 3, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Verbose = false
	//a reference of the wrong size must fail the fit, not crash
	ref := &Reference{Conf: v3.Zeros(natoms - 1), ID: 0}
	traj, err := oxdat.New(name, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	A := NewAccumulator(natoms, natoms)
	err = A.Accumulate(traj, ref, o, 3, 0, nil)
	if err == nil {
		Te.Fatal("a mismatched reference must fail the run")
	}
	if !strings.Contains(err.Error(), "mismatched") {
		Te.Error("unexpected failure:", err)
	}
	//too few points for a well-defined fit
	o2 := DefaultOptions(top)
	o2.Verbose = false
	o2.Reference = 0
	o2.Indexes = []int{0, 1}
	if _, err := Compute(name, top, o2); err == nil {
		Te.Error("a 2-point alignment must fail")
	}
}

func TestWorkerFailurePropagates(Te *testing.T) {
	natoms := 10
	name := Te.TempDir() + "/broken.dat"
	writeMoving(Te, name, 8, natoms)
	//append a frame with truncated nucleotide lines
	fh, err := os.OpenFile(name, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Fprintf(fh, "t = 800\nb = 20 20 20\nE = 0 0 0\n")
	for i := 0; i < natoms; i++ {
		fmt.Fprintf(fh, "1 2 3\n")
	}
	fh.Close()
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 0
	o.Verbose = false
	o.Workers = 3
	if _, err := Compute(name, top, o); err == nil {
		Te.Fatal("a malformed chunk must fail the whole parallel run")
	}
	o.Workers = 1
	if _, err := Compute(name, top, o); err == nil {
		Te.Error("the serial run must fail on the same file")
	}
}

func TestAccumulateShortTrajectory(Te *testing.T) {
	natoms := 6
	name := Te.TempDir() + "/short.dat"
	writeStill(Te, name, 3, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 0
	o.Verbose = false
	ref, err := pickReference(name, top, o, 3)
	if err != nil {
		Te.Fatal(err)
	}
	//asking for more frames than the file holds is a failure
	traj, err := oxdat.New(name, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	A := NewAccumulator(natoms, len(o.Indexes))
	err = A.Accumulate(traj, ref, o, 5, 0, nil)
	traj.Close()
	if err == nil || !strings.Contains(err.Error(), "ended after") {
		Te.Error("a short read must be reported, got:", err)
	}
	//a negative count reads whatever is there
	traj, err = oxdat.New(name, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	B := NewAccumulator(natoms, len(o.Indexes))
	if err := B.Accumulate(traj, ref, o, -1, 0, nil); err != nil {
		Te.Fatal(err)
	}
	if B.Frames != 3 {
		Te.Error("open-ended accumulation read", B.Frames, "frames instead of 3")
	}
}

func TestAlignmentSubset(Te *testing.T) {
	natoms := 10
	base := testStructure(natoms)
	name := Te.TempDir() + "/still.dat"
	writeStill(Te, name, 4, natoms)
	top := &oxdna.Topology{N: natoms, NStrands: 1}
	o := DefaultOptions(top)
	o.Reference = 0
	o.Verbose = false
	o.Indexes = []int{0, 1, 2, 3, 4}
	r, err := Compute(name, top, o)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Ref.Conf.NVecs() != 5 {
		Te.Error("reference kept", r.Ref.Conf.NVecs(), "points instead of the 5 selected")
	}
	//all nucleotides are averaged, but the alignment recenters only
	//the selected subset
	sub := v3.Zeros(5)
	sub.SomeVecs(base.Pos, o.Indexes)
	want := v3.Zeros(natoms)
	want.SubVec(base.Pos, v3.Centroid(sub))
	if d := maxDiff(r.Mean, want); d > 1e-9 {
		Te.Error("subset-aligned mean deviates by", d)
	}
}

func TestPartition(Te *testing.T) {
	cases := []struct {
		frames, workers int
		want            []chunk
	}{
		{100, 4, []chunk{{0, 25}, {25, 25}, {50, 25}, {75, 25}}},
		{10, 3, []chunk{{0, 4}, {4, 3}, {7, 3}}},
		{3, 5, []chunk{{0, 1}, {1, 1}, {2, 1}}},
		{5, 1, []chunk{{0, 5}}},
		{7, 2, []chunk{{0, 4}, {4, 3}}},
	}
	for _, c := range cases {
		got := partition(c.frames, c.workers)
		if len(got) != len(c.want) {
			Te.Fatal(c.frames, "frames over", c.workers, "workers gave", len(got), "chunks")
		}
		total := 0
		for i := range got {
			if got[i] != c.want[i] {
				Te.Error(c.frames, "frames over", c.workers, "workers: chunk", i, "is", got[i], "wanted", c.want[i])
			}
			total += got[i].n
		}
		if total != c.frames {
			Te.Error("chunks cover", total, "frames out of", c.frames)
		}
	}
}

func TestFinalizeZeroFrames(Te *testing.T) {
	A := NewAccumulator(4, 4)
	ref := &Reference{Conf: v3.Zeros(4), ID: 0}
	r := Finalize(A, ref)
	if r.Frames != 0 {
		Te.Error("an empty accumulator reports", r.Frames, "frames")
	}
	for i := 0; i < 4; i++ {
		if r.A1Mean.VecNorm(i) != 0 || r.A3Mean.VecNorm(i) != 0 {
			Te.Error("zero orientation sums must stay zero after normalization")
		}
	}
}

func TestResultRoundTrip(Te *testing.T) {
	fmt.Println("result serialization test!")
	dir := Te.TempDir()
	natoms := 4
	base := testStructure(natoms)
	mean := v3.Zeros(natoms)
	mean.Copy(base.Pos)
	a1 := v3.Zeros(natoms)
	a1.Copy(base.A1)
	a3 := v3.Zeros(natoms)
	a3.Copy(base.A3)
	inter := v3.Zeros(natoms)
	inter.Scale(0.5, base.Pos)
	refc := v3.Zeros(natoms)
	refc.SubVec(base.Pos, v3.Centroid(base.Pos))
	r := &Result{
		Mean:          mean,
		A1Mean:        a1,
		A3Mean:        a3,
		Intermediates: []*v3.Matrix{inter},
		Frames:        7,
		Ref:           &Reference{Conf: refc, ID: 3, Box: []float64{20, 20, 20}},
	}
	jsname := dir + "/mean.json"
	if err := r.WriteJSON(jsname); err != nil {
		Te.Fatal(err)
	}
	r2, err := ReadResult(jsname)
	if err != nil {
		Te.Fatal(err)
	}
	if r2.Frames != 7 || r2.Ref.ID != 3 {
		Te.Error("wrong frame count or reference id after the round trip:", r2.Frames, r2.Ref.ID)
	}
	if maxDiff(r2.Mean, r.Mean) != 0 || maxDiff(r2.A1Mean, r.A1Mean) != 0 || maxDiff(r2.A3Mean, r.A3Mean) != 0 {
		Te.Error("coordinates do not round-trip exactly through JSON")
	}
	if len(r2.Intermediates) != 1 || maxDiff(r2.Intermediates[0], inter) != 0 {
		Te.Error("intermediates do not round-trip")
	}
	if maxDiff(r2.Ref.Conf, refc) != 0 {
		Te.Error("reference points do not round-trip")
	}
	//the native flat format round-trips too
	datname := dir + "/mean.dat"
	w, err := oxdat.NewWriter(datname, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(r.Frame()); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	traj, err := oxdat.New(datname, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	defer traj.Close()
	f := oxdna.NewFrame(natoms)
	if err := traj.Next(f); err != nil {
		Te.Fatal(err)
	}
	if maxDiff(f.Pos, r.Mean) != 0 || maxDiff(f.A1, r.A1Mean) != 0 || maxDiff(f.A3, r.A3Mean) != 0 {
		Te.Error("coordinates do not round-trip exactly through the native format")
	}
	if f.Box[0] != 20 {
		Te.Error("the native file lost the box:", f.Box)
	}
}
