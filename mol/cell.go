/*
 * cell.go, part of electrolens.
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

package mol

import (
	"fmt"
	"math"

	v3 "github.com/ray38/electrolens/v3"
)

//Cell contains the three lattice vectors of a periodic system, one per row.
type Cell struct {
	vectors *v3.Matrix
}

//NewCell returns a cell with the given lattice vectors.
func NewCell(vectors [3][3]float64) *Cell {
	m := v3.Zeros(3)
	for i, v := range vectors {
		m.SetVec(i, v)
	}
	return &Cell{vectors: m}
}

//CellFromBox returns a cell from the 9 box components that trajectories
//give for each frame. It returns nil if box has fewer than 9 elements or if all of them are zero.
func CellFromBox(box []float64) *Cell {
	if len(box) < 9 {
		return nil
	}
	var vectors [3][3]float64
	zero := true
	for i := 0; i < 9; i++ {
		vectors[i/3][i%3] = box[i]
		if box[i] != 0 {
			zero = false
		}
	}
	if zero {
		return nil
	}
	return NewCell(vectors)
}

//CellFromParameters returns the cell with lattice constants a, b and c (in A) and
//angles alpha, beta and gamma (in degrees). The first vector is put along x and the
//second one in the xy plane, as in the CRYST1 record of PDB files.
func CellFromParameters(a, b, c, alpha, beta, gamma float64) (*Cell, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, CError{message: fmt.Sprintf("Non-positive lattice constants %.3f %.3f %.3f", a, b, c), deco: []string{"CellFromParameters"}, critical: true}
	}
	al := alpha * math.Pi / 180
	be := beta * math.Pi / 180
	ga := gamma * math.Pi / 180
	sg := math.Sin(ga)
	if math.Abs(sg) < 1e-8 {
		return nil, CError{message: fmt.Sprintf("Degenerate gamma angle %.3f", gamma), deco: []string{"CellFromParameters"}, critical: true}
	}
	cx := c * math.Cos(be)
	cy := c * (math.Cos(al) - math.Cos(be)*math.Cos(ga)) / sg
	cz2 := c*c - cx*cx - cy*cy
	if cz2 < 0 {
		return nil, CError{message: fmt.Sprintf("Impossible cell angles %.3f %.3f %.3f", alpha, beta, gamma), deco: []string{"CellFromParameters"}, critical: true}
	}
	return NewCell([3][3]float64{
		{a, 0, 0},
		{b * math.Cos(ga), b * sg, 0},
		{cx, cy, math.Sqrt(cz2)},
	}), nil
}

//Vectors returns a copy of the lattice vectors.
func (C *Cell) Vectors() [3][3]float64 {
	var ret [3][3]float64
	for i := range ret {
		ret[i] = C.vectors.Vec(i)
	}
	return ret
}

//Matrix returns the lattice vectors as a v3.Matrix. Changes to the
//returned matrix are reflected in the cell.
func (C *Cell) Matrix() *v3.Matrix {
	return C.vectors
}

//Lengths returns the lattice constants, i.e. the lengths of the three lattice vectors.
func (C *Cell) Lengths() [3]float64 {
	var ret [3]float64
	copy(ret[:], C.vectors.VecNorms())
	return ret
}

//Normalized returns the lattice vectors scaled to unit length.
func (C *Cell) Normalized() [3][3]float64 {
	u := v3.Zeros(3)
	u.UnitVecs(C.vectors)
	var ret [3][3]float64
	for i := range ret {
		ret[i] = u.Vec(i)
	}
	return ret
}

//Box returns the 9 components of the lattice vectors, in the order
//used by trajectory frames.
func (C *Cell) Box() []float64 {
	ret := make([]float64, 0, 9)
	for _, v := range C.Vectors() {
		ret = append(ret, v[:]...)
	}
	return ret
}
