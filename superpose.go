/*
 * superpose.go, part of oxdna-analysis-tools
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// RotTran is a rigid-body transformation in the row-vector convention:
// applied to a set of coordinates x it produces x*Rot + Tran.
type RotTran struct {
	Rot  *v3.Matrix //3x3 rotation
	Tran *v3.Matrix //1x3 translation
}

// Superpose computes the rigid-body transformation that optimally
// superimposes the moving set on the target set, in the least-squares
// sense, via SVD of the cross-covariance matrix of the centered sets.
// If the SVD yields a reflection, the smallest singular direction is
// flipped so a proper rotation is always returned. Returns the
// transformation and the RMSD between the transformed moving set and the
// target. It fails if the sets have different lengths or fewer than 3
// points, as the fit is then ill-defined.
func Superpose(moving, target *v3.Matrix) (*RotTran, float64, error) {
	n := moving.NVecs()
	if target.NVecs() != n {
		return nil, 0, CError{fmt.Sprintf("Superpose: mismatched point sets: %d moving vs %d target", n, target.NVecs()), []string{"Superpose"}}
	}
	if n < 3 {
		return nil, 0, CError{fmt.Sprintf("Superpose: need at least 3 points for a well-defined fit, got %d", n), []string{"Superpose"}}
	}
	cmov := v3.Centroid(moving)
	ctar := v3.Centroid(target)
	movc := v3.Zeros(n)
	tarc := v3.Zeros(n)
	movc.SubVec(moving, cmov)
	tarc.SubVec(target, ctar)
	cov := mat.NewDense(3, 3, nil)
	cov.Mul(movc.Dense.T(), tarc.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDFull); !ok {
		return nil, 0, CError{"Superpose: SVD of the cross-covariance matrix failed", []string{"Superpose"}}
	}
	u := new(mat.Dense)
	v := new(mat.Dense)
	svd.UTo(u)
	svd.VTo(v)
	rot := mat.NewDense(3, 3, nil)
	rot.Mul(u, v.T())
	if mat.Det(rot) < 0 {
		for i := 0; i < 3; i++ {
			v.Set(i, 2, -v.At(i, 2))
		}
		rot.Mul(u, v.T())
	}
	R := &RotTran{Rot: v3.Dense2Matrix(rot), Tran: v3.Zeros(1)}
	aux := v3.Zeros(1)
	aux.Mul(cmov, R.Rot)
	R.Tran.Sub(ctar, aux)
	fitted := v3.Zeros(n)
	R.Apply(fitted, moving)
	rmsd, err := RMSD(fitted, target)
	if err != nil {
		return nil, 0, errDecorate(err, "Superpose")
	}
	return R, rmsd, nil
}

// Apply puts in dst the vectors of src transformed by R. dst must have
// the size of src and must not reference the same data.
func (R *RotTran) Apply(dst, src *v3.Matrix) {
	dst.Mul(src, R.Rot)
	dst.AddVec(dst, R.Tran)
}

// Rotate puts in dst the vectors of src rotated by R, without the
// translation. This is the transformation for direction vectors. dst
// must have the size of src and must not reference the same data.
func (R *RotTran) Rotate(dst, src *v3.Matrix) {
	dst.Mul(src, R.Rot)
}

// RMSD returns the root-mean-square deviation between two conformations
// of the same size, with no fitting performed.
func RMSD(a, b *v3.Matrix) (float64, error) {
	n := a.NVecs()
	if b.NVecs() != n {
		return 0, CError{fmt.Sprintf("RMSD: mismatched point sets: %d vs %d", n, b.NVecs()), []string{"RMSD"}}
	}
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d := a.At(i, j) - b.At(i, j)
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(n)), nil
}

// errDecorate adds the caller to the decoration of err, which must
// satisfy the Error interface of this package.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
