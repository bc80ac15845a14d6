/*
 * convert.go, part of electrolens.
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

package main

import (
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/ray38/electrolens"
	"github.com/ray38/electrolens/mol"
	"github.com/ray38/electrolens/plan"
	"github.com/ray38/electrolens/traj/stf"
	v3 "github.com/ray38/electrolens/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

//input is a structure or trajectory given on the command line.
type input struct {
	traj   mol.Traj
	top    mol.Atomer
	cell   *mol.Cell
	framed bool
}

func readInput(name string) (*input, error) {
	if !plan.IsSTF(name) {
		m, err := plan.ReadStructure(name)
		if err != nil {
			return nil, err
		}
		return &input{traj: m, top: m.Topology, cell: m.Cell, framed: m.NFrames() > 1}, nil
	}
	if topology == "" {
		return nil, errors.Errorf("STF trajectory %s needs --topology", name)
	}
	top, err := plan.ReadStructure(topology)
	if err != nil {
		return nil, err
	}
	traj, _, err := stf.New(name)
	if err != nil {
		return nil, err
	}
	if traj.Len() != top.Len() {
		traj.Close()
		return nil, errors.Errorf("%s has %d atoms but the topology %s has %d", name, traj.Len(), topology, top.Len())
	}
	return &input{traj: traj, top: top.Topology, cell: top.Cell, framed: true}, nil
}

func convert(cmd *cobra.Command, args []string) error {
	in, err := readInput(args[0])
	if err != nil {
		return err
	}
	out := args[1]
	if plan.IsSTF(out) {
		return toSTF(in, out)
	}
	if strings.ToLower(filepath.Ext(out)) != ".csv" {
		return errors.Errorf("unknown output format for %s", out)
	}
	return toCSV(in, args[0], out)
}

//toCSV writes the atoms of every frame in a renderer CSV file, through a one-view plot.
func toCSV(in *input, name, out string) error {
	cols := append([]string(nil), columns...)
	if len(cols) == 0 {
		cols = []string{electrolens.XColumn, electrolens.YColumn, electrolens.ZColumn}
	}
	framed := electrolens.NewFramedDataProperties(frameCol)
	if in.framed && !slices.Contains(cols, framed.FrameColumn) {
		cols = append(cols, framed.FrameColumn)
	}
	props, err := electrolens.NewMolecularDataProperties(cols)
	if err != nil {
		return err
	}
	opts := []electrolens.PlotOption{electrolens.WithMolecularProperties(props)}
	var src electrolens.Source
	if in.framed {
		opts = append(opts, electrolens.WithFramedProperties(framed))
		src = electrolens.TrajectorySource(in.traj, in.top, in.cell)
	} else {
		src = electrolens.StructureSource(in.traj.(*mol.Molecule))
	}
	plot, err := electrolens.NewPlot(opts...)
	if err != nil {
		return err
	}
	d, err := electrolens.NewMolecularData(src)
	if err != nil {
		return err
	}
	V := electrolens.NewThreeDView(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if err := V.AddData(d, out); err != nil {
		return err
	}
	if err := plot.AddView(V); err != nil {
		return err
	}
	if configFile != "" {
		return plot.SaveConfiguration(configFile)
	}
	_, err = plot.Configuration()
	return err
}

func toSTF(in *input, out string) error {
	header, err := parseHeader(stfHeader)
	if err != nil {
		return err
	}
	natoms := in.top.Len()
	W, err := stf.NewWriter(out, natoms, header)
	if err != nil {
		return err
	}
	coords := v3.Zeros(natoms)
	box := make([]float64, 9)
	frames := 0
	for ; ; frames++ {
		for i := range box {
			box[i] = math.NaN()
		}
		err = in.traj.Next(coords, box)
		if err != nil {
			break
		}
		if math.IsNaN(box[0]) {
			err = W.WNext(coords)
		} else {
			err = W.WNext(coords, box)
		}
		if err != nil {
			break
		}
	}
	if _, ok := err.(mol.LastFrameError); ok {
		err = nil
	}
	if cerr := W.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "converting to %s", out)
	}
	log.WithField("frames", frames).Infof("wrote %s", out)
	return nil
}

func parseHeader(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	header := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("header entry %q is not key=value", p)
		}
		header[k] = v
	}
	return header, nil
}
