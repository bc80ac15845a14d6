/*
 * molecule.go, part of electrolens.
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

	v3 "github.com/ray38/electrolens/v3"
)

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//Coordinates and b-factors are stored separately from other atomic info.
//Cell is nil for non-periodic systems.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
	Cell     *Cell
	current  int
}

//NewMolecule makes a molecule with ats atoms, coords coordinates and bfactors b-factors,
//and returns it. It returns error if ats or coords are nil or empty, or if the number of atoms
//doesn't match the number of coordinates in each frame. bfactors can be nil,
//in which case they are set to zero.
func NewMolecule(ats Atomer, coords []*v3.Matrix, bfactors [][]float64) (*Molecule, error) {
	if ats == nil {
		return nil, CError{message: "Supplied a nil topology", deco: []string{"NewMolecule"}, critical: true}
	}
	if len(coords) == 0 {
		return nil, CError{message: "Supplied no coordinates", deco: []string{"NewMolecule"}, critical: true}
	}
	mol := new(Molecule)
	top, ok := ats.(*Topology)
	if ok {
		mol.Topology = top
	} else {
		mol.Topology = NewTopology(make([]*Atom, ats.Len()))
		for i := 0; i < ats.Len(); i++ {
			mol.Atoms[i] = ats.Atom(i)
		}
	}
	for i, c := range coords {
		if c == nil || c.NVecs() != mol.Len() {
			return nil, CError{message: fmt.Sprintf("Frame %d doesn't have coordinates for the %d atoms", i, mol.Len()), deco: []string{"NewMolecule"}, critical: true}
		}
	}
	if bfactors == nil {
		bfactors = make([][]float64, len(coords))
		for i := range bfactors {
			bfactors[i] = make([]float64, mol.Len())
		}
	}
	if len(bfactors) != len(coords) {
		return nil, CError{message: fmt.Sprintf("%d b-factor sets for %d frames", len(bfactors), len(coords)), deco: []string{"NewMolecule"}, critical: true}
	}
	mol.Coords = coords
	mol.Bfactors = bfactors
	return mol, nil
}

//NFrames returns the number of frames in the molecule.
func (M *Molecule) NFrames() int {
	return len(M.Coords)
}

/******************************************
//The following implement the Traj interface
**********************************************/

//Readable returns true if the molecule has frames left to be read with Next.
func (M *Molecule) Readable() bool {
	return M != nil && M.current < len(M.Coords)
}

//Next copies the next frame into output, and the molecule's cell, if any, into
//box. If output is nil, the frame is skipped. When there are no frames left it returns a LastFrameError.
func (M *Molecule) Next(output *v3.Matrix, box ...[]float64) error {
	if !M.Readable() {
		return NewLastFrameError("", "molecule", "Next")
	}
	M.current++
	if output != nil {
		output.Copy(M.Coords[M.current-1])
	}
	if len(box) > 0 && len(box[0]) >= 9 && M.Cell != nil {
		copy(box[0], M.Cell.Box())
	}
	return nil
}

//Rewind makes the molecule readable again from the first frame.
func (M *Molecule) Rewind() {
	M.current = 0
}
