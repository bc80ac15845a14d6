/*
 * view_test.go, part of electrolens.
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
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ray38/electrolens/mol"
	"gonum.org/v1/gonum/mat"
)

const testdata = "testdata"

func cuCell() *mol.Cell {
	return mol.NewCell([3][3]float64{{3.61, 0, 0}, {0, 3.61, 0}, {0, 0, 3.61}})
}

func cuArray() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1.805, 1.805, 0,
		1.805, 0, 1.805,
	})
}

func molecularSet(Te *testing.T, columns ...string) PropertySet {
	var cols []string
	if len(columns) > 0 {
		cols = columns
	}
	p, err := NewMolecularDataProperties(cols)
	if err != nil {
		Te.Fatal(err)
	}
	return PropertySet{Molecular: p}
}

func viewWith(Te *testing.T, d Datum, output string, opts ...ViewOption) *ThreeDView {
	v := NewThreeDView("test", opts...)
	if err := v.AddData(d, output); err != nil {
		Te.Fatal(err)
	}
	return v
}

func TestArrayNeedsAtoms(Te *testing.T) {
	d, err := NewMolecularData(ArraySource(cuArray()), WithCell(cuCell()))
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := viewWith(Te, d, "").Configuration(molecularSet(Te)); err == nil {
		Te.Error("An array without atom names or atom column should not be converted")
	}
	d, _ = NewMolecularData(ArraySource(cuArray()), WithAtoms([]string{"Cu", "Cu", "Cu"}))
	if _, err := viewWith(Te, d, "").Configuration(molecularSet(Te)); err == nil {
		Te.Error("An array without a cell should not be converted")
	}
	if _, err := NewMolecularData(ArraySource(cuArray()), WithAtoms([]string{"Cu"})); err == nil {
		Te.Error("The number of atom names should match the number of rows")
	}
}

func TestArrayInline(Te *testing.T) {
	d, err := NewMolecularData(ArraySource(cuArray()), WithAtoms([]string{"Cu", "Cu", "Au"}), WithCell(cuCell()))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := viewWith(Te, d, "").Configuration(molecularSet(Te))
	if err != nil {
		Te.Fatal(err)
	}
	data := conf.MoleculeData.Data
	if len(data) != 3 {
		Te.Fatalf("Expected 3 records, got %d", len(data))
	}
	if data[1]["x"] != 1.805 || data[2]["atom"] != "Au" {
		Te.Errorf("Wrong records %v", data)
	}
	if conf.SystemDimension.X != 3.61 || conf.SystemLatticeVectors.U22 != 1 {
		Te.Errorf("Geometry not taken from the cell: %+v %+v", conf.SystemDimension, conf.SystemLatticeVectors)
	}
	if conf.MoleculeData.DataFilename != "" {
		Te.Error("Inline data should not have a file name")
	}
}

func TestArrayAtomColumn(Te *testing.T) {
	m := mat.NewDense(2, 4, []float64{
		0, 0, 0, 29,
		1, 1, 1, 8,
	})
	d, err := NewMolecularData(ArraySource(m), WithCell(cuCell()))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := viewWith(Te, d, "").Configuration(molecularSet(Te, "x", "y", "z", "atom"))
	if err != nil {
		Te.Fatal(err)
	}
	if conf.MoleculeData.Data[0]["atom"] != "Cu" || conf.MoleculeData.Data[1]["atom"] != "O" {
		Te.Errorf("Atomic numbers not turned into symbols: %v", conf.MoleculeData.Data)
	}
	bad := mat.NewDense(1, 4, []float64{0, 0, 0, 0.5})
	d, _ = NewMolecularData(ArraySource(bad), WithCell(cuCell()))
	if _, err := viewWith(Te, d, "").Configuration(molecularSet(Te, "x", "y", "z", "atom")); err == nil {
		Te.Error("0.5 should not be accepted as an atomic number")
	}
	d, _ = NewMolecularData(ArraySource(m), WithCell(cuCell()))
	if _, err := viewWith(Te, d, "").Configuration(molecularSet(Te, "x", "y", "z")); err == nil {
		Te.Error("An array with more columns than declared should not be converted")
	}
}

func TestArrayCompanionFile(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "cu_data.csv")
	d, err := NewMolecularData(ArraySource(cuArray()), WithAtoms([]string{"Cu", "Cu", "Cu"}), WithCell(cuCell()))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := viewWith(Te, d, out).Configuration(molecularSet(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if conf.MoleculeData.Data != nil {
		Te.Error("Data written to a file should not be inlined")
	}
	if !strings.HasSuffix(conf.MoleculeData.DataFilename, "/cu_data.csv") || strings.Contains(conf.MoleculeData.DataFilename, "\\") {
		Te.Errorf("Wrong data file name %s", conf.MoleculeData.DataFilename)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		Te.Fatal(err)
	}
	expected := "x,y,z,atom\n0,0,0,Cu\n1.805,1.805,0,Cu\n1.805,0,1.805,Cu\n"
	if string(b) != expected {
		Te.Errorf("Wrong companion file:\n%s\nexpected:\n%s", b, expected)
	}
}

func TestFileSource(Te *testing.T) {
	p, err := NewSpatiallyResolvedDataProperties([]string{"x", "y", "z", "rho", "gamma"})
	if err != nil {
		Te.Fatal(err)
	}
	set := PropertySet{SpatiallyResolved: p}
	d, err := NewSpatiallyResolvedData(FileSource(testdata+"/C6H6_data.csv"), WithGrid([3]int{3, 2, 1}, [3]float64{0.4, 0.3, 0.1}))
	if err != nil {
		Te.Fatal(err)
	}
	v := NewThreeDView("C6H6")
	if err := v.AddData(d, "out.csv"); err == nil {
		Te.Error("A companion file should not be accepted for file sources")
	}
	if err := v.AddData(d, ""); err != nil {
		Te.Fatal(err)
	}
	conf, err := v.Configuration(set)
	if err != nil {
		Te.Fatal(err)
	}
	block := conf.SpatiallyResolvedData
	abs, _ := filepath.Abs(testdata + "/C6H6_data.csv")
	if block.DataFilename != filepath.ToSlash(abs) {
		Te.Errorf("Wrong data file name %s", block.DataFilename)
	}
	if *block.NumGridPoints != (GridPoints{3, 2, 1}) || *block.GridSpacing != (Vector3{0.4, 0.3, 0.1}) {
		Te.Errorf("Wrong grid %+v %+v", block.NumGridPoints, block.GridSpacing)
	}
	if *conf.SystemDimension != defaultDimension || *conf.SystemLatticeVectors != defaultLatticeVectors {
		Te.Errorf("Default geometry expected, got %+v %+v", conf.SystemDimension, conf.SystemLatticeVectors)
	}
	p2, _ := NewSpatiallyResolvedDataProperties([]string{"x", "y", "z", "rho", "sigma"})
	if _, err := v.Configuration(PropertySet{SpatiallyResolved: p2}); err == nil {
		Te.Error("A column missing in the file header should give an error")
	}
	d, _ = NewSpatiallyResolvedData(FileSource(testdata + "/nothere.csv"))
	if _, err := viewWith(Te, d, "").Configuration(set); err == nil {
		Te.Error("A missing file should give an error")
	}
}

func TestCompressedFiles(Te *testing.T) {
	d, err := NewMolecularData(FileSource(testdata + "/cu.csv.gz"))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := viewWith(Te, d, "").Configuration(molecularSet(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if len(conf.MoleculeData.Data) != 3 || conf.MoleculeData.Data[2]["z"] != 1.805 || conf.MoleculeData.Data[0]["atom"] != "Cu" {
		Te.Errorf("Wrong records from gzip file %v", conf.MoleculeData.Data)
	}
	p, _ := NewSpatiallyResolvedDataProperties(nil)
	sd, err := NewSpatiallyResolvedData(FileSource(testdata + "/C6H6_data.csv.zst"))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err = viewWith(Te, sd, "").Configuration(PropertySet{SpatiallyResolved: p})
	if err != nil {
		Te.Fatal(err)
	}
	data := conf.SpatiallyResolvedData.Data
	if len(data) != 5 || data[4]["rho"] != 150.0 {
		Te.Errorf("Wrong records from zstd file %v", data)
	}
	if _, ok := data[0]["gamma"]; ok {
		Te.Error("Undeclared columns should not be inlined")
	}
}

func TestStructure(Te *testing.T) {
	m, err := mol.XYZFileRead(testdata + "/fe2.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	d, err := NewMolecularData(StructureSource(m))
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := viewWith(Te, d, "").Configuration(molecularSet(Te, "x", "y", "z", "mass", "spin"))
	if err != nil {
		Te.Fatal(err)
	}
	data := conf.MoleculeData.Data
	if len(data) != 2 {
		Te.Fatalf("Only the first frame should be converted, got %d records", len(data))
	}
	if data[1]["atom"] != "Fe" || data[0]["x"] != 2.96673 || data[0]["mass"] != m.Atom(0).Mass || data[0]["spin"] != "" {
		Te.Errorf("Wrong records %v", data)
	}
	l := 2.04 * math.Sqrt2
	if math.Abs(conf.SystemDimension.X-l) > 1e-9 || math.Abs(conf.SystemLatticeVectors.U12-1/math.Sqrt2) > 1e-9 {
		Te.Errorf("Wrong geometry %+v %+v", conf.SystemDimension, conf.SystemLatticeVectors)
	}
	framed := molecularSet(Te, "x", "y", "z", "frame")
	framed.Framed = NewFramedDataProperties("")
	if _, err := viewWith(Te, d, "").Configuration(framed); err == nil {
		Te.Error("Structures should not accept framed properties")
	}
	if _, err := NewSpatiallyResolvedData(StructureSource(m)); err == nil {
		Te.Error("Structures can't be spatially resolved data")
	}
}

func TestPDBStructureAttributes(Te *testing.T) {
	m, err := mol.PDBFileRead(testdata + "/gly.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	d, _ := NewMolecularData(StructureSource(m))
	conf, err := viewWith(Te, d, "").Configuration(molecularSet(Te, "x", "y", "z", "bfactor", "occupancy", "residue", "chain"))
	if err != nil {
		Te.Fatal(err)
	}
	rec := conf.MoleculeData.Data[2]
	if rec["bfactor"] != 12.0 || rec["occupancy"] != 0.5 || rec["residue"] != "GLY" || rec["chain"] != "A" || rec["atom"] != "O" {
		Te.Errorf("Wrong attributes %v", rec)
	}
	if conf.SystemDimension.Y != 12 {
		Te.Errorf("Wrong dimensions from CRYST1 %+v", conf.SystemDimension)
	}
}

func TestTrajectory(Te *testing.T) {
	m, err := mol.XYZFileRead(testdata + "/fe2.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	d, err := NewMolecularData(TrajectorySource(m, m.Topology, nil))
	if err != nil {
		Te.Fatal(err)
	}
	set := molecularSet(Te, "x", "y", "z", "step")
	set.Framed = NewFramedDataProperties("step")
	out := filepath.Join(Te.TempDir(), "traj.csv")
	conf, err := viewWith(Te, d, out).Configuration(set)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 5 || lines[0] != "x,y,z,step,atom" || lines[4] != "1.01,2.65,5.64,1,Fe" {
		Te.Errorf("Wrong companion file\n%s", b)
	}
	if conf.SystemDimension.X == 10 {
		Te.Error("The cell of the first frame should set the geometry")
	}
	again, err := viewWith(Te, d, "").Configuration(set)
	if err != nil {
		Te.Fatalf("A trajectory should be convertible more than once: %s", err)
	}
	data := again.MoleculeData.Data
	if len(data) != 4 || data[3]["step"] != 1.0 || data[3]["y"] != 2.65 {
		Te.Errorf("Wrong records on the second conversion %v", data)
	}
	if *again.SystemDimension != *conf.SystemDimension {
		Te.Errorf("The geometry changed between conversions: %+v %+v", again.SystemDimension, conf.SystemDimension)
	}
}

func TestUserGeometryWins(Te *testing.T) {
	var buf bytes.Buffer
	SetMessageOutput(&buf)
	defer SetMessageOutput(os.Stderr)
	d, _ := NewMolecularData(ArraySource(cuArray()), WithAtoms([]string{"Cu", "Cu", "Cu"}), WithCell(cuCell()))
	v := viewWith(Te, d, "", SystemDimensions(1, 2, 3))
	conf, err := v.Configuration(molecularSet(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if *conf.SystemDimension != (Vector3{1, 2, 3}) {
		Te.Errorf("User dimensions should be kept, got %+v", conf.SystemDimension)
	}
	if conf.SystemLatticeVectors.U11 != 1 || conf.SystemLatticeVectors.U12 != 0 {
		Te.Errorf("Wrong lattice vectors %+v", conf.SystemLatticeVectors)
	}
	if !strings.Contains(buf.String(), "test: System Dimensions are overridden by user provided values") {
		Te.Errorf("Expected a warning, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "Lattice Vectors are overridden") {
		Te.Error("No lattice vectors were given, so there should be no warning about them")
	}
	buf.Reset()
	SuppressMessages(true)
	defer SuppressMessages(false)
	if _, err := v.Configuration(molecularSet(Te)); err != nil {
		Te.Fatal(err)
	}
	if buf.Len() != 0 {
		Te.Errorf("Messages should be suppressed, got %q", buf.String())
	}
}

func TestUndeclaredCategory(Te *testing.T) {
	d, _ := NewMolecularData(FileSource(testdata + "/cu.csv"))
	v := viewWith(Te, d, "")
	p, _ := NewSpatiallyResolvedDataProperties(nil)
	conf, err := v.Configuration(PropertySet{SpatiallyResolved: p})
	if err != nil {
		Te.Fatal(err)
	}
	if conf.MoleculeData != nil || conf.SpatiallyResolvedData != nil {
		Te.Errorf("Only declared categories with data should be converted: %+v", conf)
	}
}

func TestHeatmap(Te *testing.T) {
	h := NewTwoDHeatmap("rho", "gamma", "log10", "linear")
	conf, err := h.Configuration(PropertySet{})
	if err != nil {
		Te.Fatal(err)
	}
	if conf.View == nil || conf.View.ViewType != "2DHeatmap" || conf.View.PlotX != "rho" || conf.View.PlotXTransform != "log10" || conf.HeatmapSetup == nil {
		Te.Errorf("Wrong heatmap configuration %+v", conf)
	}
}

func TestReadColumn(Te *testing.T) {
	for _, name := range []string{"C6H6_data.csv", "C6H6_data.csv.zst"} {
		rho, err := ReadColumn(testdata+"/"+name, "rho")
		if err != nil {
			Te.Fatal(err)
		}
		if len(rho) != 5 || rho[1] != 0.00005 || rho[4] != 150 {
			Te.Errorf("Wrong values from %s: %v", name, rho)
		}
	}
	if _, err := ReadColumn(testdata+"/cu.csv", "rho"); err == nil {
		Te.Error("A column not in the file should give an error")
	}
}
