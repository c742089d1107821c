/*
 * coords.go, part of oxdna-analysis-tools
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
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//SomeVecs puts in the receiver the vectors of A with the indexes
//in clist, in the order of clist. The receiver must have
//len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SetVecs sets the vectors of the receiver with the indexes in
//clist to the successive vectors of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr < len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

//AddVec adds the single vector vec to every vector of A, putting
//the result in the receiver. Panics on mismatched shapes.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	B := A
	if A.Dense == F.Dense {
		//gonum rejects an operand that shares data with the receiver
		//through a different header, so an aliased A is summed from a copy
		B = Zeros(ar)
		B.Copy(A.Dense)
	}
	for i := 0; i < ar; i++ {
		a := B.VecView(i)
		f := F.VecView(i)
		f.Add(a, vec)
	}
}

//SubVec subtracts the single vector vec from every vector of A,
//putting the result in the receiver. vec must not alias A.
func (F *Matrix) SubVec(A, vec *Matrix) {
	//vec.Dense, not vec: gonum accepts an in-place operand only as the
	//receiver's own Dense, a second header over the same data panics
	vec.Scale(-1, vec.Dense)
	F.AddVec(A, vec)
	vec.Scale(-1, vec.Dense)
}

//VecNorm returns the Euclidean norm of the ith vector of F.
func (F *Matrix) VecNorm(i int) float64 {
	x := F.At(i, 0)
	y := F.At(i, 1)
	z := F.At(i, 2)
	return math.Sqrt(x*x + y*y + z*z)
}

//Unit normalizes every vector of A to unit length, putting the
//result in the receiver. A zero vector is left as zero.
func (F *Matrix) Unit(A *Matrix) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		norm := A.VecNorm(i)
		if norm == 0 {
			for j := 0; j < 3; j++ {
				F.Set(i, j, 0)
			}
			continue
		}
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)/norm)
		}
	}
}

//Centroid returns the arithmetic mean of the vectors of A as a
//1x3 Matrix.
func Centroid(A *Matrix) *Matrix {
	r, _ := A.Dims()
	if r < 1 {
		panic(ErrNotEnoughElements)
	}
	c := Zeros(1)
	for i := 0; i < r; i++ {
		c.Add(c.Dense, A.VecView(i))
	}
	c.Scale(1/float64(r), c.Dense)
	return c
}

//String returns a neat printable representation of F.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, 3)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		sep := "\n"
		if i == r-1 {
			sep = ""
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f%s", row[0], row[1], row[2], sep)
	}
	return strings.Join(v, "")
}
