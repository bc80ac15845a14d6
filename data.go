/*
 * data.go, part of electrolens.
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

package electrolens

import (
	"github.com/ray38/electrolens/mol"
)

type category int

const (
	molecularCategory category = iota
	spatiallyResolvedCategory
)

func (c category) String() string {
	if c == spatiallyResolvedCategory {
		return "spatially resolved"
	}
	return "molecular"
}

//Datum is implemented by MolecularData and SpatiallyResolvedData.
type Datum interface {
	Source() Source
	category() category
	aux() auxiliary
}

//auxiliary is the information that can't be inferred from array sources.
type auxiliary struct {
	atoms       []string
	cell        *mol.Cell
	gridPoints  *[3]int
	gridSpacing *[3]float64
}

//DataOption gives auxiliary information to NewMolecularData and NewSpatiallyResolvedData.
type DataOption func(*auxiliary)

//WithAtoms gives the element symbol of each row of an array source.
func WithAtoms(atoms []string) DataOption {
	return func(a *auxiliary) {
		if atoms != nil {
			a.atoms = copyColumns(atoms)
		}
	}
}

//WithCell gives the lattice of the system, which the renderer needs for array sources.
func WithCell(cell *mol.Cell) DataOption {
	return func(a *auxiliary) {
		a.cell = cell
	}
}

//WithGrid gives the number of grid points and the grid spacing along each axis.
//Only spatially resolved data use it.
func WithGrid(points [3]int, spacing [3]float64) DataOption {
	return func(a *auxiliary) {
		a.gridPoints = &points
		a.gridSpacing = &spacing
	}
}

func newAuxiliary(caller string, src Source, opts []DataOption) (auxiliary, error) {
	var a auxiliary
	if src == nil {
		return a, newError(caller, "nil data source")
	}
	for _, o := range opts {
		o(&a)
	}
	switch s := src.(type) {
	case arraySource:
		if s.m == nil {
			return a, newError(caller, "nil array")
		}
		r, _ := s.m.Dims()
		if a.atoms != nil && len(a.atoms) != r {
			return a, newError(caller, "%d atom names given for an array with %d rows", len(a.atoms), r)
		}
	case structureSource:
		if s.mol == nil {
			return a, newError(caller, "nil molecule")
		}
	case trajectorySource:
		if s.traj == nil || s.top == nil {
			return a, newError(caller, "trajectory sources need both a trajectory and a topology")
		}
		if s.traj.Len() != s.top.Len() {
			return a, newError(caller, "trajectory with %d atoms but topology with %d", s.traj.Len(), s.top.Len())
		}
	}
	return a, nil
}

//MolecularData are per-atom data of a view.
type MolecularData struct {
	src Source
	auxiliary
}

//NewMolecularData returns molecular data read from src.
func NewMolecularData(src Source, opts ...DataOption) (*MolecularData, error) {
	const funcname = "NewMolecularData"
	a, err := newAuxiliary(funcname, src, opts)
	if err != nil {
		return nil, err
	}
	if a.gridPoints != nil {
		return nil, newError(funcname, "grid information only applies to spatially resolved data")
	}
	return &MolecularData{src: src, auxiliary: a}, nil
}

//Source returns the source of the data.
func (D *MolecularData) Source() Source { return D.src }

func (D *MolecularData) category() category { return molecularCategory }
func (D *MolecularData) aux() auxiliary     { return D.auxiliary }

//SpatiallyResolvedData are grid data of a view, such as an electron density.
type SpatiallyResolvedData struct {
	src Source
	auxiliary
}

//NewSpatiallyResolvedData returns spatially resolved data read from src, which can
//only be a file or an array.
func NewSpatiallyResolvedData(src Source, opts ...DataOption) (*SpatiallyResolvedData, error) {
	const funcname = "NewSpatiallyResolvedData"
	a, err := newAuxiliary(funcname, src, opts)
	if err != nil {
		return nil, err
	}
	switch src.(type) {
	case fileSource, arraySource:
	default:
		return nil, newError(funcname, "unsupported data format conversion: %s to spatially resolved data", src.Kind())
	}
	return &SpatiallyResolvedData{src: src, auxiliary: a}, nil
}

//Source returns the source of the data.
func (D *SpatiallyResolvedData) Source() Source { return D.src }

func (D *SpatiallyResolvedData) category() category { return spatiallyResolvedCategory }
func (D *SpatiallyResolvedData) aux() auxiliary     { return D.auxiliary }
