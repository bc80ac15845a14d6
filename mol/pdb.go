/*
 * pdb.go, part of electrolens.
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
	"strconv"
	"strings"

	v3 "github.com/ray38/electrolens/v3"
)

//PDBFileRead reads a PDB file and returns a Molecule. Each MODEL in the file
//becomes a frame. A CRYST1 record, if present, sets the molecule's Cell.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, CError{message: UnableToOpen, filename: pdbname, format: "pdb", deco: []string{"PDBFileRead"}, critical: true}
	}
	defer pdbfile.Close()
	mol, err := pdbRead(bufio.NewReader(pdbfile), pdbname)
	return mol, errDecorate(err, "PDBFileRead")
}

//PDBRead reads a PDB stream and returns a Molecule. Each MODEL in the stream
//becomes a frame. A CRYST1 record, if present, sets the molecule's Cell.
func PDBRead(in io.Reader) (*Molecule, error) {
	mol, err := pdbRead(bufio.NewReader(in), "")
	return mol, errDecorate(err, "PDBRead")
}

func pdbRead(pdb *bufio.Reader, name string) (*Molecule, error) {
	var cell *Cell
	var ats []*Atom
	var coords []*v3.Matrix
	var bfactors [][]float64
	var rawcoords []float64
	var bfac []float64
	lineno := 0
	fail := func(msg string) error {
		return CError{message: fmt.Sprintf("line %d: %s", lineno, msg), filename: name, format: "pdb", deco: []string{"pdbRead"}, critical: true}
	}
	closeFrame := func() error {
		if len(rawcoords) == 0 {
			return nil
		}
		if len(coords) > 0 && len(bfac) != len(ats) {
			return fail(fmt.Sprintf("Model %d has %d atoms, %d expected", len(coords)+1, len(bfac), len(ats)))
		}
		c, err := v3.NewMatrix(rawcoords)
		if err != nil {
			return fail(err.Error())
		}
		coords = append(coords, c)
		bfactors = append(bfactors, bfac)
		rawcoords = nil
		bfac = nil
		return nil
	}
	for {
		line, err := pdb.ReadString('\n')
		lineno++
		if line == "" && err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "CRYST1"):
			c, err2 := readCryst1(line)
			if err2 != nil {
				return nil, fail(err2.Error())
			}
			cell = c
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			at, c, b, err2 := readPDBAtomLine(line)
			if err2 != nil {
				return nil, fail(err2.Error())
			}
			if len(coords) == 0 {
				ats = append(ats, at)
			}
			rawcoords = append(rawcoords, c[:]...)
			bfac = append(bfac, b)
		case strings.HasPrefix(line, "ENDMDL"):
			if err2 := closeFrame(); err2 != nil {
				return nil, err2
			}
		}
		if err != nil {
			break
		}
	}
	if err := closeFrame(); err != nil {
		return nil, err
	}
	if len(ats) == 0 {
		return nil, fail("No atoms found")
	}
	mol, err := NewMolecule(NewTopology(ats), coords, bfactors)
	if err != nil {
		return nil, err
	}
	mol.Cell = cell
	return mol, nil
}

//field returns the trimmed contents of line between the from and to columns (0-based, to exclusive),
//or an empty string if the line is too short.
func field(line string, from, to int) string {
	if len(line) <= from {
		return ""
	}
	if len(line) < to {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

func readCryst1(line string) (*Cell, error) {
	var p [6]float64
	limits := [7]int{6, 15, 24, 33, 40, 47, 54}
	var err error
	for i := range p {
		p[i], err = strconv.ParseFloat(field(line, limits[i], limits[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("Ill formed CRYST1 record: %s", line)
		}
	}
	return CellFromParameters(p[0], p[1], p[2], p[3], p[4], p[5])
}

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates and b-factors, which are returned
//separately.
func readPDBAtomLine(line string) (*Atom, [3]float64, float64, error) {
	var coords [3]float64
	var err error
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err = strconv.Atoi(field(line, 6, 11))
	if err != nil {
		return nil, coords, 0, fmt.Errorf("Ill formed atom serial number: %s", err)
	}
	atom.Name = field(line, 12, 16)
	atom.MolName = field(line, 17, 20)
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = field(line, 21, 22)
	if id := field(line, 22, 26); id != "" {
		atom.MolID, err = strconv.Atoi(id)
		if err != nil {
			return nil, coords, 0, fmt.Errorf("Ill formed residue number: %s", err)
		}
	}
	for i := range coords {
		coords[i], err = strconv.ParseFloat(field(line, 30+8*i, 38+8*i), 64)
		if err != nil {
			return nil, coords, 0, fmt.Errorf("Ill formed coordinate: %s", err)
		}
	}
	//Occupancy, b-factor, symbol and charge are optional.
	atom.Occupancy, _ = strconv.ParseFloat(field(line, 54, 60), 64)
	bfactor, _ := strconv.ParseFloat(field(line, 60, 66), 64)
	atom.Symbol = NormalizeSymbol(field(line, 76, 78))
	if ch := field(line, 78, 80); len(ch) == 2 {
		q, err := strconv.ParseFloat(ch[:1], 64)
		if err == nil {
			if ch[1] == '-' {
				q = -q
			}
			atom.Charge = q
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	atom.Mass = symbolMass[atom.Symbol]
	atom.Vdw = symbolVdwrad[atom.Symbol]
	return atom, coords, bfactor, nil
}
