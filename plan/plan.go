/*
 * plan.go, part of electrolens.
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

//Package plan reads and writes YAML plot plans. A plan declares the properties of a plot and
//its views, with the data of each view given by file name, so a complete plot can be built
//without writing Go code.
package plan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ray38/electrolens"
	"github.com/ray38/electrolens/mol"
	"github.com/ray38/electrolens/traj/stf"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

//Plan is a declarative description of a plot.
type Plan struct {
	//ConfigurationFile, if set, is an existing configuration document to show.
	//Nothing else can be set then.
	ConfigurationFile string     `yaml:"configuration_file,omitempty"`
	Properties        Properties `yaml:"properties"`
	Views             []View     `yaml:"views"`

	baseDir string //relative paths are resolved against this directory
}

type Properties struct {
	Molecular         *Molecular         `yaml:"molecular,omitempty"`
	SpatiallyResolved *SpatiallyResolved `yaml:"spatially_resolved,omitempty"`
	Framed            *Framed            `yaml:"framed,omitempty"`
}

type Molecular struct {
	Columns []string `yaml:"columns,omitempty"`
}

type SpatiallyResolved struct {
	Columns           []string `yaml:"columns,omitempty"`
	DensityProperty   string   `yaml:"density_property,omitempty"`
	DensityLowerLimit *float64 `yaml:"density_lower_limit,omitempty"`
	DensityUpperLimit *float64 `yaml:"density_upper_limit,omitempty"`
}

type Framed struct {
	FrameColumn string `yaml:"frame_column,omitempty"`
}

//View is either a 3D view (the default) with its data, or a 2D heatmap.
type View struct {
	Type              string      `yaml:"type,omitempty"`
	Name              string      `yaml:"name,omitempty"`
	SystemDimensions  []float64   `yaml:"system_dimensions,omitempty"`
	LatticeVectors    [][]float64 `yaml:"lattice_vectors,omitempty"`
	Molecular         *Data       `yaml:"molecular,omitempty"`
	SpatiallyResolved *Data       `yaml:"spatially_resolved,omitempty"`
	PlotX             string      `yaml:"plot_x,omitempty"`
	PlotY             string      `yaml:"plot_y,omitempty"`
	PlotXTransform    string      `yaml:"plot_x_transform,omitempty"`
	PlotYTransform    string      `yaml:"plot_y_transform,omitempty"`
}

//Data gives the source of the data of one category. Exactly one of File, Structure,
//Trajectory and Array must be set.
type Data struct {
	File        string      `yaml:"file,omitempty"`
	Structure   string      `yaml:"structure,omitempty"`
	Trajectory  string      `yaml:"trajectory,omitempty"`
	Topology    string      `yaml:"topology,omitempty"`
	Array       [][]float64 `yaml:"array,omitempty"`
	Atoms       []string    `yaml:"atoms,omitempty"`
	Cell        [][]float64 `yaml:"cell,omitempty"`
	GridPoints  []int       `yaml:"grid_points,omitempty"`
	GridSpacing []float64   `yaml:"grid_spacing,omitempty"`
	Output      string      `yaml:"output,omitempty"`
}

//Load reads the plan in the YAML file path. Relative paths in the plan
//are taken as relative to the directory of path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read plan %s", path)
	}
	P, err := Parse(data, filepath.Dir(path))
	return P, errors.Wrapf(err, "plan %s", path)
}

//Parse reads a YAML plan from data. Relative paths in the plan are resolved
//against baseDir.
func Parse(data []byte, baseDir string) (*Plan, error) {
	P := new(Plan)
	if err := yaml.Unmarshal(data, P); err != nil {
		return nil, errors.Wrap(err, "malformed plan")
	}
	for i := range P.Views {
		if P.Views[i].Type == "" {
			P.Views[i].Type = electrolens.ThreeDViewType
		}
	}
	P.baseDir = baseDir
	return P, nil
}

//Save writes the plan P, in YAML, to path.
func Save(path string, P *Plan) error {
	data, err := yaml.Marshal(P)
	if err != nil {
		return errors.Wrap(err, "can't encode plan")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "can't write plan %s", path)
}

func (P *Plan) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(P.baseDir, p)
}

//Build returns the plot described by the plan. Trajectory files are opened here,
//and read when the configuration of the plot is built.
func (P *Plan) Build() (*electrolens.Plot, error) {
	if P.ConfigurationFile != "" {
		if len(P.Views) > 0 {
			return nil, errors.New("views can't be given together with a configuration file")
		}
		if P.Properties.Molecular != nil || P.Properties.SpatiallyResolved != nil || P.Properties.Framed != nil {
			return nil, errors.New("properties can't be given together with a configuration file")
		}
		return electrolens.NewPlot(electrolens.WithConfigurationFile(P.path(P.ConfigurationFile)))
	}
	opts, err := P.Properties.options()
	if err != nil {
		return nil, err
	}
	plot, err := electrolens.NewPlot(opts...)
	if err != nil {
		return nil, err
	}
	for i, v := range P.Views {
		view, err := P.view(v)
		if err != nil {
			return nil, errors.Wrapf(err, "view %d (%s)", i, v.Name)
		}
		if err := plot.AddView(view); err != nil {
			return nil, err
		}
	}
	return plot, nil
}

func (p Properties) options() ([]electrolens.PlotOption, error) {
	var opts []electrolens.PlotOption
	if m := p.Molecular; m != nil {
		props, err := electrolens.NewMolecularDataProperties(m.Columns)
		if err != nil {
			return nil, err
		}
		opts = append(opts, electrolens.WithMolecularProperties(props))
	}
	if s := p.SpatiallyResolved; s != nil {
		var dopts []electrolens.DensityOption
		if s.DensityProperty != "" {
			dopts = append(dopts, electrolens.DensityProperty(s.DensityProperty))
		}
		if s.DensityLowerLimit != nil || s.DensityUpperLimit != nil {
			low, up := electrolens.DefaultDensityLowerLimit, electrolens.DefaultDensityUpperLimit
			if s.DensityLowerLimit != nil {
				low = *s.DensityLowerLimit
			}
			if s.DensityUpperLimit != nil {
				up = *s.DensityUpperLimit
			}
			dopts = append(dopts, electrolens.DensityLimits(low, up))
		}
		props, err := electrolens.NewSpatiallyResolvedDataProperties(s.Columns, dopts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, electrolens.WithSpatiallyResolvedProperties(props))
	}
	if f := p.Framed; f != nil {
		opts = append(opts, electrolens.WithFramedProperties(electrolens.NewFramedDataProperties(f.FrameColumn)))
	}
	return opts, nil
}

func (P *Plan) view(v View) (electrolens.View, error) {
	switch v.Type {
	case electrolens.TwoDHeatmapType:
		return electrolens.NewTwoDHeatmap(v.PlotX, v.PlotY, v.PlotXTransform, v.PlotYTransform), nil
	case electrolens.ThreeDViewType:
	default:
		return nil, errors.Errorf("unknown view type %q", v.Type)
	}
	var opts []electrolens.ViewOption
	if v.SystemDimensions != nil {
		if len(v.SystemDimensions) != 3 {
			return nil, errors.Errorf("system_dimensions needs 3 values, got %d", len(v.SystemDimensions))
		}
		d := v.SystemDimensions
		opts = append(opts, electrolens.SystemDimensions(d[0], d[1], d[2]))
	}
	if v.LatticeVectors != nil {
		l, err := matrix33(v.LatticeVectors)
		if err != nil {
			return nil, errors.Wrap(err, "lattice_vectors")
		}
		opts = append(opts, electrolens.SystemLatticeVectors(l))
	}
	view := electrolens.NewThreeDView(v.Name, opts...)
	if v.SpatiallyResolved != nil {
		src, dopts, err := P.source(v.SpatiallyResolved)
		if err != nil {
			return nil, errors.Wrap(err, "spatially resolved data")
		}
		d, err := electrolens.NewSpatiallyResolvedData(src, dopts...)
		if err != nil {
			return nil, err
		}
		if err := view.AddData(d, P.path(v.SpatiallyResolved.Output)); err != nil {
			return nil, err
		}
	}
	if v.Molecular != nil {
		src, dopts, err := P.source(v.Molecular)
		if err != nil {
			return nil, errors.Wrap(err, "molecular data")
		}
		d, err := electrolens.NewMolecularData(src, dopts...)
		if err != nil {
			return nil, err
		}
		if err := view.AddData(d, P.path(v.Molecular.Output)); err != nil {
			return nil, err
		}
	}
	return view, nil
}

//source returns the data source described by d, and the options for its auxiliary data.
func (P *Plan) source(d *Data) (electrolens.Source, []electrolens.DataOption, error) {
	var opts []electrolens.DataOption
	var cell *mol.Cell
	if d.Cell != nil {
		c, err := matrix33(d.Cell)
		if err != nil {
			return nil, nil, errors.Wrap(err, "cell")
		}
		cell = mol.NewCell(c)
		opts = append(opts, electrolens.WithCell(cell))
	}
	if d.Atoms != nil {
		opts = append(opts, electrolens.WithAtoms(d.Atoms))
	}
	if d.GridPoints != nil || d.GridSpacing != nil {
		if len(d.GridPoints) != 3 || len(d.GridSpacing) != 3 {
			return nil, nil, errors.New("grid_points and grid_spacing need 3 values each")
		}
		opts = append(opts, electrolens.WithGrid(
			[3]int{d.GridPoints[0], d.GridPoints[1], d.GridPoints[2]},
			[3]float64{d.GridSpacing[0], d.GridSpacing[1], d.GridSpacing[2]}))
	}
	set := 0
	for _, s := range []bool{d.File != "", d.Structure != "", d.Trajectory != "", d.Array != nil} {
		if s {
			set++
		}
	}
	if set != 1 {
		return nil, nil, errors.New("exactly one of file, structure, trajectory and array must be given")
	}
	switch {
	case d.File != "":
		return electrolens.FileSource(P.path(d.File)), opts, nil
	case d.Structure != "":
		m, err := ReadStructure(P.path(d.Structure))
		if err != nil {
			return nil, nil, err
		}
		return electrolens.StructureSource(m), opts, nil
	case d.Trajectory != "":
		src, err := P.trajectory(d, cell)
		return src, opts, err
	}
	m, err := array(d.Array)
	if err != nil {
		return nil, nil, err
	}
	return electrolens.ArraySource(m), opts, nil
}

func (P *Plan) trajectory(d *Data, cell *mol.Cell) (electrolens.Source, error) {
	name := P.path(d.Trajectory)
	if !IsSTF(name) {
		//A multi-frame structure file is its own topology.
		m, err := ReadStructure(name)
		if err != nil {
			return nil, err
		}
		return electrolens.TrajectorySource(m, m.Topology, cell), nil
	}
	if d.Topology == "" {
		return nil, errors.Errorf("trajectory %s needs a topology", d.Trajectory)
	}
	top, err := ReadStructure(P.path(d.Topology))
	if err != nil {
		return nil, err
	}
	if cell == nil {
		cell = top.Cell
	}
	traj, _, err := stf.New(name)
	if err != nil {
		return nil, err
	}
	return electrolens.TrajectorySource(traj, top.Topology, cell), nil
}

//ReadStructure reads an XYZ or PDB file, depending on the extension of name.
func ReadStructure(name string) (*mol.Molecule, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xyz":
		return mol.XYZFileRead(name)
	case ".pdb", ".ent":
		return mol.PDBFileRead(name)
	}
	return nil, errors.Errorf("unknown structure format for %s", name)
}

//IsSTF returns true if name has one of the extensions of STF trajectories.
func IsSTF(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stf", ".stz", ".stl", ".str":
		return true
	}
	return false
}

func matrix33(rows [][]float64) ([3][3]float64, error) {
	var ret [3][3]float64
	if len(rows) != 3 {
		return ret, errors.Errorf("3 vectors needed, got %d", len(rows))
	}
	for i, r := range rows {
		if len(r) != 3 {
			return ret, errors.Errorf("vector %d has %d components", i, len(r))
		}
		copy(ret[i][:], r)
	}
	return ret, nil
}

func array(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty array")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.Errorf("array row %d has %d values, %d expected", i, len(r), cols)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
