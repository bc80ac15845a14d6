/*
 * main_test.go, part of electrolens.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ray38/electrolens"
)

const testPlan = testdata + "/c6h6_plan.yaml"

//run executes the command line args and returns what it printed.
func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	electrolens.SuppressMessages(false)
	return out.String(), err
}

func TestBuildCommand(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "c6h6.json")
	if _, err := run(Te, "build", testPlan, "-o", name); err != nil {
		Te.Fatal(err)
	}
	doc, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	conf, err := electrolens.ParseConfiguration(doc)
	if err != nil {
		Te.Fatal(err)
	}
	if len(conf.Views) != 2 || conf.Views[0].MoleculeName != "C6H6" || conf.Views[1].View.PlotX != "rho" {
		Te.Errorf("Wrong configuration built %s", doc)
	}
	if *conf.PlotSetup.DensityCutoffLow != 0.01 {
		Te.Errorf("Wrong density cutoff %v", *conf.PlotSetup.DensityCutoffLow)
	}
	if _, err := run(Te, "build", testdata+"/missing.yaml", "-o", name); err == nil {
		Te.Error("A missing plan should fail")
	}
}

func TestValidateCommand(Te *testing.T) {
	out, err := run(Te, "validate", testPlan)
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "VIEW") {
		Te.Fatalf("Wrong table:\n%s", out)
	}
	for _, want := range []string{"0 C6H6", "3DView", "12 records", "C6H6_data.csv", "10 x 10 x 10"} {
		if !strings.Contains(lines[1], want) {
			Te.Errorf("%q not in the line of the 3D view: %s", want, lines[1])
		}
	}
	if !strings.Contains(lines[2], "2DHeatmap") || !strings.Contains(lines[2], "rho vs gamma") {
		Te.Errorf("Wrong line for the heatmap: %s", lines[2])
	}
}

func TestShowDryRun(Te *testing.T) {
	out, err := run(Te, "show", "--dry-run", testPlan)
	if err != nil {
		Te.Fatal(err)
	}
	doc := strings.TrimSpace(out)
	conf, err := electrolens.ParseConfiguration([]byte(doc))
	if err != nil {
		Te.Fatalf("Not a configuration document: %s", err)
	}
	if strings.Contains(doc, "\n") {
		Te.Error("The document should be compact")
	}
	if len(conf.Views) != 2 || len(conf.Views[0].MoleculeData.Data) != 12 {
		Te.Errorf("Wrong document %s", doc)
	}
	//A saved configuration file can be shown too.
	name := filepath.Join(Te.TempDir(), "c6h6.json")
	if _, err := run(Te, "build", testPlan, "-o", name); err != nil {
		Te.Fatal(err)
	}
	out2, err := run(Te, "show", "--dry-run", name)
	if err != nil {
		Te.Fatal(err)
	}
	if strings.TrimSpace(out2) != doc {
		Te.Errorf("The saved configuration shows differently:\n%s\n%s", out2, doc)
	}
}

func TestDensityCommand(Te *testing.T) {
	out, err := run(Te, "density", testdata+"/C6H6_data.csv")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(out, "rho: 5 values, 4 inside [0.001, 1e+06)") {
		Te.Errorf("Wrong counts:\n%s", out)
	}
	png := filepath.Join(Te.TempDir(), "rho.png")
	out, err = run(Te, "density", testdata+"/C6H6_data.csv", "--column", "gamma", "--low", "0.01", "--up", "1", "--bins", "2", "--png", png)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(out, "gamma: 5 values, 5 inside [0.01, 1)") {
		Te.Errorf("Wrong counts:\n%s", out)
	}
	if st, err := os.Stat(png); err != nil || st.Size() == 0 {
		Te.Errorf("No histogram drawn: %v", err)
	}
	if _, err := run(Te, "density", testdata+"/C6H6_data.csv", "--column", "nothere"); err == nil {
		Te.Error("A missing column should fail")
	}
}
