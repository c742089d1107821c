/*
 * result.go, part of oxdna-analysis-tools
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
	"encoding/json"
	"fmt"
	"os"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// Result is a finished mean structure: the mean position and the two
// mean orientation versors of every nucleotide, plus the intermediate
// means recorded along the way, the number of frames averaged and the
// reference everything was aligned against.
type Result struct {
	Mean          *v3.Matrix   //per-nucleotide mean positions
	A1Mean        *v3.Matrix   //unit length, or zero where the sum was zero
	A3Mean        *v3.Matrix
	Intermediates []*v3.Matrix //running means of the positions, in order
	Frames        int
	Ref           *Reference
}

// Finalize turns the sums of A into means: positions are divided by the
// frame count, orientation vectors are divided and then normalized back
// to unit length. A zero orientation sum, as left by a run over zero
// frames, stays zero instead of failing the normalization.
func Finalize(A *Accumulator, ref *Reference) *Result {
	natoms, _ := A.PosSum.Dims()
	r := &Result{
		Mean:          v3.Zeros(natoms),
		A1Mean:        v3.Zeros(natoms),
		A3Mean:        v3.Zeros(natoms),
		Intermediates: A.Intermediates,
		Frames:        A.Frames,
		Ref:           ref,
	}
	if A.Frames == 0 {
		return r
	}
	inv := 1 / float64(A.Frames)
	r.Mean.Scale(inv, A.PosSum)
	r.A1Mean.Scale(inv, A.A1Sum)
	r.A1Mean.Unit(r.A1Mean)
	r.A3Mean.Scale(inv, A.A3Sum)
	r.A3Mean.Unit(r.A3Mean)
	return r
}

// The serialized layout: lists of [x,y,z] lists under fixed keys.
type jsonResult struct {
	IMeans  [][][]float64 `json:"i_means"`
	GMean   [][]float64   `json:"g_mean"`
	A1Mean  [][]float64   `json:"a1_mean"`
	A3Mean  [][]float64   `json:"a3_mean"`
	PFrames int           `json:"p_frames"`
	IniConf jsonRef       `json:"ini_conf"`
}

type jsonRef struct {
	Conf [][]float64 `json:"conf"`
	ID   int         `json:"id"`
}

func matToList(M *v3.Matrix) [][]float64 {
	r, _ := M.Dims()
	l := make([][]float64, r)
	for i := 0; i < r; i++ {
		l[i] = []float64{M.At(i, 0), M.At(i, 1), M.At(i, 2)}
	}
	return l
}

func listToMat(l [][]float64) (*v3.Matrix, error) {
	if len(l) == 0 {
		return nil, Error{"empty coordinate list", nil, true}
	}
	data := make([]float64, 0, 3*len(l))
	for _, v := range l {
		if len(v) != 3 {
			return nil, Error{fmt.Sprintf("coordinate with %d components instead of 3", len(v)), nil, true}
		}
		data = append(data, v...)
	}
	return v3.NewMatrix(data)
}

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	j := jsonResult{
		IMeans:  make([][][]float64, 0, len(r.Intermediates)),
		GMean:   matToList(r.Mean),
		A1Mean:  matToList(r.A1Mean),
		A3Mean:  matToList(r.A3Mean),
		PFrames: r.Frames,
		IniConf: jsonRef{Conf: matToList(r.Ref.Conf), ID: r.Ref.ID},
	}
	for _, m := range r.Intermediates {
		j.IMeans = append(j.IMeans, matToList(m))
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler. The box of the reference
// configuration is not part of the serialized layout, so it comes back
// as unknown.
func (r *Result) UnmarshalJSON(b []byte) error {
	var j jsonResult
	if err := json.Unmarshal(b, &j); err != nil {
		return Error{err.Error(), []string{"UnmarshalJSON"}, true}
	}
	var err error
	if r.Mean, err = listToMat(j.GMean); err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	if r.A1Mean, err = listToMat(j.A1Mean); err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	if r.A3Mean, err = listToMat(j.A3Mean); err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	r.Intermediates = nil
	for _, l := range j.IMeans {
		m, err := listToMat(l)
		if err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
		r.Intermediates = append(r.Intermediates, m)
	}
	r.Frames = j.PFrames
	conf, err := listToMat(j.IniConf.Conf)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	r.Ref = &Reference{Conf: conf, ID: j.IniConf.ID}
	return nil
}

// WriteJSON writes r to filename in the structured layout.
func (r *Result) WriteJSON(filename string) error {
	b, err := json.Marshal(r)
	if err != nil {
		return Error{err.Error(), []string{"WriteJSON"}, true}
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return Error{err.Error(), []string{"WriteJSON"}, true}
	}
	return nil
}

// ReadResult reads a Result back from a JSON file written by WriteJSON.
func ReadResult(filename string) (*Result, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, Error{err.Error(), []string{"ReadResult"}, true}
	}
	r := new(Result)
	if err := json.Unmarshal(b, r); err != nil {
		if _, ok := err.(oxdna.Error); ok {
			return nil, errDecorate(err, "ReadResult")
		}
		return nil, Error{err.Error(), []string{"ReadResult"}, true}
	}
	return r, nil
}

// Frame packs the mean structure into a trajectory frame so it can be
// written in the native configuration format. The box comes from the
// reference configuration when known, otherwise it is left as zeros.
func (r *Result) Frame() *oxdna.Frame {
	natoms, _ := r.Mean.Dims()
	f := oxdna.NewFrame(natoms)
	f.Pos.Copy(r.Mean)
	f.A1.Copy(r.A1Mean)
	f.A3.Copy(r.A3Mean)
	if r.Ref != nil && r.Ref.Box != nil {
		copy(f.Box, r.Ref.Box)
	}
	return f
}
