/*
 * xyz.go, part of electrolens.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	v3 "github.com/ray38/electrolens/v3"
)

//Lattice="a1 a2 a3 b1 b2 b3 c1 c2 c3" in the comment line of extended XYZ files.
var latticeRe = regexp.MustCompile(`Lattice="([^"]*)"`)

//XYZFileRead reads an xyz file, possibly containing several frames, and returns a Molecule.
func XYZFileRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{message: UnableToOpen, filename: xyzname, format: "xyz", deco: []string{"XYZFileRead"}, critical: true}
	}
	defer xyzfile.Close()
	mol, err := xyzRead(bufio.NewReader(xyzfile), xyzname)
	return mol, errDecorate(err, "XYZFileRead")
}

//XYZRead reads an xyz stream, possibly containing several frames, and returns a Molecule.
//All frames must have the same number of atoms. Only the symbols of the first frame are kept.
//If the comment line of the first frame has a Lattice="..." field (extended XYZ),
//the molecule's Cell is set from it.
func XYZRead(in io.Reader) (*Molecule, error) {
	mol, err := xyzRead(bufio.NewReader(in), "")
	return mol, errDecorate(err, "XYZRead")
}

func xyzRead(xyz *bufio.Reader, name string) (*Molecule, error) {
	var top *Topology
	var cell *Cell
	coords := make([]*v3.Matrix, 0, 1)
	lineno := 0
	fail := func(msg string) error {
		return CError{message: fmt.Sprintf("line %d: %s", lineno, msg), filename: name, format: "xyz", deco: []string{"xyzRead"}, critical: true}
	}
	for frame := 0; ; frame++ {
		line, err := xyz.ReadString('\n')
		lineno++
		if strings.TrimSpace(line) == "" {
			if err != nil {
				break //the file simply ended.
			}
			frame-- //blank lines between frames are tolerated.
			continue
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || natoms < 1 {
			return nil, fail("Ill formatted atom number " + strings.TrimSpace(line))
		}
		if top != nil && natoms != top.Len() {
			return nil, fail(fmt.Sprintf("Frame %d has %d atoms, %d expected", frame, natoms, top.Len()))
		}
		comment, err := xyz.ReadString('\n')
		lineno++
		if err != nil {
			return nil, fail("Missing comment line")
		}
		if frame == 0 {
			cell, err = latticeFromComment(comment)
			if err != nil {
				return nil, fail(err.Error())
			}
		}
		c := v3.Zeros(natoms)
		ats := make([]*Atom, natoms)
		for i := 0; i < natoms; i++ {
			line, err = xyz.ReadString('\n')
			lineno++
			if err != nil && strings.TrimSpace(line) == "" {
				return nil, fail(fmt.Sprintf("Expected %d atoms, found %d", natoms, i))
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, fail("Ill formed atom line")
			}
			var v [3]float64
			for j := range v {
				v[j], err = strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, fail(err.Error())
				}
			}
			c.SetVec(i, v)
			sym := NormalizeSymbol(fields[0])
			ats[i] = &Atom{Name: fields[0], ID: i + 1, Symbol: sym, Mass: symbolMass[sym], Vdw: symbolVdwrad[sym]}
		}
		if top == nil {
			top = NewTopology(ats)
		}
		coords = append(coords, c)
	}
	if top == nil {
		return nil, fail("Empty XYZ file")
	}
	mol, err := NewMolecule(top, coords, nil)
	if err != nil {
		return nil, err
	}
	mol.Cell = cell
	return mol, nil
}

func latticeFromComment(comment string) (*Cell, error) {
	m := latticeRe.FindStringSubmatch(comment)
	if m == nil {
		return nil, nil
	}
	fields := strings.Fields(m[1])
	if len(fields) != 9 {
		return nil, fmt.Errorf("Lattice needs 9 components, got %d", len(fields))
	}
	box := make([]float64, 9)
	var err error
	for i, f := range fields {
		box[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("Can't parse lattice component %s", f)
		}
	}
	return CellFromBox(box), nil
}

//XYZFileWrite writes the frame frame of molecule mol in an XYZ file with name xyzname which will
//be created for that. If the file exist it will be overwritten.
func XYZFileWrite(xyzname string, mol *Molecule, frame int) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{message: err.Error(), filename: xyzname, format: "xyz", deco: []string{"XYZFileWrite"}, critical: true}
	}
	defer out.Close()
	return errDecorate(XYZWrite(out, mol, frame), "XYZFileWrite")
}

//XYZWrite writes the frame frame of mol in XYZ format to out. If the molecule
//has a cell, it is written as an extended XYZ Lattice field.
func XYZWrite(out io.Writer, mol *Molecule, frame int) error {
	if frame >= mol.NFrames() {
		return CError{message: fmt.Sprintf("Frame %d out of range", frame), format: "xyz", deco: []string{"XYZWrite"}, critical: true}
	}
	comment := ""
	if mol.Cell != nil {
		b := mol.Cell.Box()
		s := make([]string, len(b))
		for i, v := range b {
			s[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		comment = fmt.Sprintf("Lattice=\"%s\"", strings.Join(s, " "))
	}
	if _, err := fmt.Fprintf(out, "%-4d\n%s\n", mol.Len(), comment); err != nil {
		return CError{message: err.Error(), format: "xyz", deco: []string{"XYZWrite"}, critical: true}
	}
	c := mol.Coords[frame]
	for i, at := range mol.Atoms {
		v := c.Vec(i)
		if _, err := fmt.Fprintf(out, "%-2s  %12.6f %12.6f %12.6f\n", at.Symbol, v[0], v[1], v[2]); err != nil {
			return CError{message: err.Error(), format: "xyz", deco: []string{"XYZWrite"}, critical: true}
		}
	}
	return nil
}
