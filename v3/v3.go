/*
 * v3.go, part of oxdna-analysis-tools
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

package v3

import (
	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of 3D vectors, one per row. It wraps a gonum
//dense matrix constrained to 3 columns, so every gonum method
//is available on it.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NewMatrix builds a Matrix from a flat slice laid out row by row.
//The slice is used directly, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	if len(data) < 3 || len(data)%3 != 0 {
		return nil, Error(ErrNotXx3Matrix)
	}
	return &Matrix{mat.NewDense(len(data)/3, 3, data)}, nil
}

//Dense2Matrix wraps an existing gonum matrix, which must have
//3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//VecView returns a view (not a copy) of the ith vector of F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

//View returns a view of F covering rows i to i+r.
func (F *Matrix) View(i, r int) *Matrix {
	return &Matrix{F.Slice(i, i+r, 0, 3).(*mat.Dense)}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//PanicMsg is the type used for the panics raised on shape
//violations. It satisfies the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("oxdna/v3: a Matrix must have 3 columns")
	ErrNotEnoughElements = PanicMsg("oxdna/v3: not enough elements in Matrix")
	ErrShape             = PanicMsg("oxdna/v3: dimension mismatch")
)

//Error is a concrete error for the few v3 functions that return
//errors instead of panicking.
type Error string

func (err Error) Error() string { return string(err) }
