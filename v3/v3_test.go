/*
 * v3_test.go, part of electrolens.
 *
 * Copyright 2024 The electrolens authors
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
 *
 */

package v3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vectors, got %d", A.NVecs())
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("A slice not divisible by 3 should give an error")
	}
	if _, err := NewMatrix(nil); err == nil {
		Te.Error("An empty slice should give an error")
	}
}

func TestVecView(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		Te.Fatal(err)
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("Changes in the view should be seen in the matrix: %s", A)
	}
	if v := A.Vec(2); v != [3]float64{7, 8, 9} {
		Te.Errorf("Wrong vector %v", v)
	}
	A.SetVec(0, [3]float64{0, 0, 0})
	if !mat.Equal(A.VecView(0), mat.NewDense(1, 3, nil)) {
		Te.Errorf("SetVec didn't zero the vector: %s", A)
	}
}

func TestUnitVecs(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 2.04, 2.04, 2.04, 0, 2.04, 0, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	norms := A.VecNorms()
	if math.Abs(norms[0]-2.04*math.Sqrt2) > 1e-9 {
		Te.Errorf("Wrong norm %f", norms[0])
	}
	U := Zeros(3)
	U.UnitVecs(A)
	for i, n := range U.VecNorms()[:2] {
		if math.Abs(n-1) > 1e-9 {
			Te.Errorf("Vector %d not unitary: %f", i, n)
		}
	}
	if U.VecNorms()[2] != 0 {
		Te.Error("A zero vector should stay zero")
	}
	if A.At(0, 1) != 2.04 {
		Te.Error("UnitVecs should not modify its argument")
	}
}

func TestUnitVecsInPlace(Te *testing.T) {
	A, err := NewMatrix([]float64{3, 0, 4, 0, 0, 2, 0, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	A.UnitVecs(A)
	if v := A.Vec(0); math.Abs(v[0]-0.6) > 1e-9 || math.Abs(v[2]-0.8) > 1e-9 {
		Te.Errorf("Wrong unit vector %v", v)
	}
	if v := A.Vec(1); v != [3]float64{0, 0, 1} {
		Te.Errorf("Wrong unit vector %v", v)
	}
}
