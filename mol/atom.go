/*
 * atom.go, part of electrolens.
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

//Atom contains the information read for one atom except for the coordinates, which
//are kept in a matrix, and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name      string
	ID        int
	MolName   string
	MolName1  byte //the one letter name for residues and nucleotids
	MolID     int
	Chain     string
	Mass      float64
	Occupancy float64
	Vdw       float64
	Charge    float64
	Symbol    string
	Het       bool // is hetatm in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms []*Atom
}

//NewTopology returns a topology with the given atoms. The slice is not copied.
func NewTopology(ats []*Atom) *Topology {
	if ats == nil {
		ats = []*Atom{}
	}
	return &Topology{Atoms: ats}
}

//TopologyFromSymbols returns a topology with one atom per symbol, in order.
//Masses and van der Waals radii are assigned from the symbols.
func TopologyFromSymbols(symbols []string) *Topology {
	ats := make([]*Atom, len(symbols))
	for i, s := range symbols {
		ats[i] = &Atom{Name: s, ID: i + 1, Symbol: s, Mass: symbolMass[s], Vdw: symbolVdwrad[s]}
	}
	return NewTopology(ats)
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//AppendAtom appends an atom at the end of the topology
func (T *Topology) AppendAtom(at *Atom) {
	T.Atoms = append(T.Atoms, at)
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Symbols returns the element symbols of all atoms in ref, in order.
func Symbols(ref Atomer) []string {
	ret := make([]string, ref.Len())
	for i := range ret {
		ret[i] = ref.Atom(i).Symbol
	}
	return ret
}
