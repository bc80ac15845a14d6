/*
 * source.go, part of electrolens.
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
	v3 "github.com/ray38/electrolens/v3"
	"gonum.org/v1/gonum/mat"
)

//Source is the origin of the data of a MolecularData or SpatiallyResolvedData.
//Sources are obtained with FileSource, ArraySource, StructureSource and TrajectorySource.
type Source interface {
	//Kind returns a short description of the source type.
	Kind() string
	isSource()
}

type fileSource struct {
	path string
}

func (s fileSource) Kind() string { return "file" }
func (s fileSource) isSource()    {}

//FileSource returns a Source that reads a CSV file with a header row. Files
//ending in .gz or .zst are decompressed and their records inlined in the configuration,
//other files are referenced by path.
func FileSource(path string) Source {
	return fileSource{path: path}
}

type arraySource struct {
	m mat.Matrix
}

func (s arraySource) Kind() string { return "array" }
func (s arraySource) isSource()    {}

//ArraySource returns a Source for an in-memory numeric table, one row per point and
//one column per declared property, in the declared order.
func ArraySource(m mat.Matrix) Source {
	return arraySource{m: m}
}

type structureSource struct {
	mol *mol.Molecule
}

func (s structureSource) Kind() string { return "structure" }
func (s structureSource) isSource()    {}

//StructureSource returns a Source with the atoms of the first frame of a molecule.
func StructureSource(m *mol.Molecule) Source {
	return structureSource{mol: m}
}

type trajectorySource struct {
	traj  mol.Traj
	top   mol.Atomer
	cell  *mol.Cell
	cache *frames
}

//frames keeps the coordinates read from a trajectory, so it can be converted
//more than once.
type frames struct {
	coords []*v3.Matrix
	cell   *mol.Cell //from the box of the first frame, or the one given with the source
}

func (s trajectorySource) Kind() string { return "trajectory" }
func (s trajectorySource) isSource()    {}

//TrajectorySource returns a Source with all the frames of traj. top gives the atoms of each
//frame, and cell is used if the frames carry no box information. cell can be nil.
//The trajectory is read the first time a configuration is built, and its frames are kept
//for later ones.
func TrajectorySource(traj mol.Traj, top mol.Atomer, cell *mol.Cell) Source {
	return trajectorySource{traj: traj, top: top, cell: cell, cache: new(frames)}
}
