/*
 * converter.go, part of electrolens.
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
	"os"

	"github.com/pkg/errors"
	"github.com/ray38/electrolens/mol"
	v3 "github.com/ray38/electrolens/v3"
)

//geometry collects the system dimensions and lattice vectors of a 3D view.
//Values given by the user are never replaced by those derived from the data.
type geometry struct {
	name        string
	dims        *Vector3
	lattice     *LatticeVectors
	userDims    bool
	userLattice bool
}

//fromCell sets the geometry from the lattice of cell, unless it was already set.
func (G *geometry) fromCell(cell *mol.Cell) {
	if cell == nil {
		return
	}
	if G.userDims {
		warning("%s: System Dimensions are overridden by user provided values", G.name)
	} else if G.dims == nil {
		l := cell.Lengths()
		G.dims = &Vector3{X: l[0], Y: l[1], Z: l[2]}
	}
	if G.userLattice {
		warning("%s: System Lattice Vectors are overridden by user provided values", G.name)
	} else if G.lattice == nil {
		G.lattice = NewLatticeVectors(cell.Normalized())
	}
}

//converter turns one Datum into a DataBlock, given the properties declared for its category.
type converter struct {
	target  category
	columns []string
	framed  *FramedDataProperties
	output  string //companion CSV file, or empty to inline the records
	geo     *geometry
}

func (C *converter) convert(d Datum) (*DataBlock, error) {
	const funcname = "converter.convert"
	var records []Record
	var err error
	aux := d.aux()
	switch s := d.Source().(type) {
	case fileSource:
		return C.fromFile(s.path)
	case arraySource:
		records, err = C.fromArray(s, aux)
	case structureSource:
		records, err = C.fromStructure(s)
	case trajectorySource:
		records, err = C.fromTrajectory(s)
	default:
		return nil, newError(funcname, "unsupported data format")
	}
	if err != nil {
		return nil, errDecorate(err, funcname)
	}
	block := new(DataBlock)
	if C.output == "" {
		block.Data = records
		return block, nil
	}
	if err := writeRecords(C.output, withAtom(C.columns), records); err != nil {
		return nil, err
	}
	block.DataFilename, err = absSlash(C.output)
	if err != nil {
		return nil, errors.Wrap(err, "can't get the absolute path of the data file")
	}
	return block, nil
}

//fromFile references plain CSV files by path, and inlines the records of compressed ones.
func (C *converter) fromFile(path string) (*DataBlock, error) {
	const funcname = "converter.fromFile"
	if compressed(path) {
		records, err := readRecords(path, C.columns)
		if err != nil {
			return nil, errDecorate(err, funcname)
		}
		return &DataBlock{Data: records}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "data file %s", path)
	}
	header, err := readHeader(path)
	if err != nil {
		return nil, err
	}
	if err := checkHeader(funcname, path, header, C.columns); err != nil {
		return nil, err
	}
	name, err := absSlash(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't get the absolute path of the data file")
	}
	return &DataBlock{DataFilename: name}, nil
}

//fromArray reads one record per row of the array. The atom of each row comes from
//the atom column, as an atomic number, or from the atom names given.
func (C *converter) fromArray(s arraySource, aux auxiliary) ([]Record, error) {
	const funcname = "converter.fromArray"
	rows, cols := s.m.Dims()
	if cols != len(C.columns) {
		return nil, newError(funcname, "array with %d columns, but %d %s properties declared %v", cols, len(C.columns), C.target, C.columns)
	}
	hasAtom := isInString(C.columns, AtomColumn)
	if !hasAtom && aux.atoms == nil {
		return nil, newError(funcname, "atom not in provided columns and missing atom names for array input data")
	}
	if aux.cell == nil {
		return nil, newError(funcname, "missing cell configuration for array input data")
	}
	C.geo.fromCell(aux.cell)
	records := make([]Record, rows)
	for i := range records {
		rec := make(Record, len(C.columns)+1)
		for j, col := range C.columns {
			v := s.m.At(i, j)
			if col != AtomColumn {
				rec[col] = v
				continue
			}
			sym, err := mol.SymbolFromNumber(v)
			if err != nil {
				return nil, newError(funcname, "row %d: %s", i, err.Error())
			}
			rec[col] = sym
		}
		if !hasAtom {
			rec[AtomColumn] = aux.atoms[i]
		}
		records[i] = rec
	}
	return records, nil
}

func (C *converter) fromStructure(s structureSource) ([]Record, error) {
	const funcname = "converter.fromStructure"
	if C.target != molecularCategory {
		return nil, newError(funcname, "unsupported data format conversion: structure to %s data", C.target)
	}
	if C.framed != nil {
		return nil, newError(funcname, "structure data does not support frames")
	}
	m := s.mol
	if m.NFrames() == 0 {
		return nil, newError(funcname, "molecule without coordinates")
	}
	C.geo.fromCell(m.Cell)
	coords := m.Coords[0]
	records := make([]Record, m.Len())
	for i := range records {
		var bfac *float64
		if len(m.Bfactors) > 0 && len(m.Bfactors[0]) > i {
			bfac = &m.Bfactors[0][i]
		}
		records[i] = C.atomRecord(m.Atom(i), coords.Vec(i), bfac)
	}
	return records, nil
}

//fromTrajectory returns the records of every frame of the trajectory. The frame index goes in the
//frame column, if the data are framed. The cell comes from the box of the first frame or, if it has
//none, from the source.
func (C *converter) fromTrajectory(s trajectorySource) ([]Record, error) {
	const funcname = "converter.fromTrajectory"
	if C.target != molecularCategory {
		return nil, newError(funcname, "unsupported data format conversion: trajectory to %s data", C.target)
	}
	if err := s.read(); err != nil {
		return nil, errDecorate(err, funcname)
	}
	C.geo.fromCell(s.cache.cell)
	frameColumn := ""
	if C.framed != nil {
		frameColumn = C.framed.FrameColumn
	}
	natoms := s.top.Len()
	records := make([]Record, 0, natoms*len(s.cache.coords))
	for frame, coords := range s.cache.coords {
		for i := 0; i < natoms; i++ {
			rec := C.atomRecord(s.top.Atom(i), coords.Vec(i), nil)
			if frameColumn != "" {
				rec[frameColumn] = float64(frame)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

//read reads all the frames of the trajectory into the cache of s, unless that was already done.
func (s trajectorySource) read() error {
	const funcname = "trajectorySource.read"
	if s.cache == nil {
		return newError(funcname, "trajectory source not created with TrajectorySource")
	}
	if s.cache.coords != nil {
		return nil
	}
	if !s.traj.Readable() {
		return newError(funcname, "trajectory not readable")
	}
	natoms := s.top.Len()
	box := make([]float64, 9)
	var coords []*v3.Matrix
	cell := s.cell
	for frame := 0; ; frame++ {
		for i := range box {
			box[i] = 0
		}
		c := v3.Zeros(natoms)
		err := s.traj.Next(c, box)
		if err != nil {
			if _, ok := err.(mol.LastFrameError); ok {
				break
			}
			return errDecorate(err, funcname)
		}
		if frame == 0 {
			if bc := mol.CellFromBox(box); bc != nil {
				cell = bc
			}
		}
		coords = append(coords, c)
	}
	if len(coords) == 0 {
		return newError(funcname, "trajectory without frames")
	}
	s.cache.coords, s.cache.cell = coords, cell
	return nil
}

//atomRecord returns the record for one atom. Declared columns other than the coordinates
//and the atom are filled from the atom's attributes, or left as empty strings.
func (C *converter) atomRecord(at *mol.Atom, pos [3]float64, bfactor *float64) Record {
	rec := make(Record, len(C.columns)+1)
	for _, col := range C.columns {
		v, ok := atomAttribute(at, bfactor, col)
		if !ok {
			v = ""
		}
		rec[col] = v
	}
	rec[XColumn] = pos[0]
	rec[YColumn] = pos[1]
	rec[ZColumn] = pos[2]
	rec[AtomColumn] = at.Symbol
	return rec
}

//atomAttribute returns the value of the attribute of at named by column, and whether
//such attribute exists.
func atomAttribute(at *mol.Atom, bfactor *float64, column string) (interface{}, bool) {
	switch column {
	case "charge":
		return at.Charge, true
	case "mass":
		return at.Mass, true
	case "vdw":
		return at.Vdw, true
	case "occupancy":
		return at.Occupancy, true
	case "bfactor":
		if bfactor == nil {
			return nil, false
		}
		return *bfactor, true
	case "id":
		return float64(at.ID), true
	case "residue":
		return at.MolName, true
	case "chain":
		return at.Chain, true
	case "name":
		return at.Name, true
	}
	return nil, false
}
