/*
 * plot_test.go, part of electrolens.
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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ray38/electrolens/mol"
	"github.com/ray38/electrolens/traj/stf"
)

//recorder keeps the last document it was asked to show.
type recorder struct {
	document []byte
}

func (R *recorder) Launch(ctx context.Context, document []byte) error {
	R.document = document
	return nil
}

func testPlot(Te *testing.T) *Plot {
	mp, _ := NewMolecularDataProperties(nil)
	sp, _ := NewSpatiallyResolvedDataProperties(nil, DensityLimits(1e-2, 100))
	P, err := NewPlot(WithMolecularProperties(mp), WithSpatiallyResolvedProperties(sp))
	if err != nil {
		Te.Fatal(err)
	}
	return P
}

func TestNewPlot(Te *testing.T) {
	if _, err := NewPlot(); err == nil {
		Te.Error("A plot without properties or configuration file should not be created")
	}
	if _, err := NewPlot(WithFramedProperties(NewFramedDataProperties(""))); err == nil {
		Te.Error("Framed properties alone should not be enough")
	}
	mp, _ := NewMolecularDataProperties(nil)
	if _, err := NewPlot(WithMolecularProperties(mp), WithFramedProperties(NewFramedDataProperties(""))); err == nil {
		Te.Error("The frame column should be among the molecular columns")
	}
	if _, err := NewPlot(WithMolecularProperties(mp), WithConfigurationFile(testdata+"/any.json")); err == nil {
		Te.Error("A configuration file together with properties should give an error")
	}
	if _, err := NewPlot(WithConfigurationFile(testdata + "/nothere.json")); err == nil {
		Te.Error("A missing configuration file should give an error")
	}
	bad := filepath.Join(Te.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{\"views\": ["), 0644)
	if _, err := NewPlot(WithConfigurationFile(bad)); err == nil {
		Te.Error("A malformed configuration file should give an error")
	}
}

func TestAddRemoveView(Te *testing.T) {
	P := testPlot(Te)
	v1 := NewThreeDView("one")
	v2 := NewTwoDHeatmap("x", "rho", "linear", "log10")
	if err := P.AddView(v1); err != nil {
		Te.Fatal(err)
	}
	before := P.Views()
	if err := P.AddView(v2); err != nil {
		Te.Fatal(err)
	}
	if len(P.Views()) != 2 {
		Te.Errorf("Expected 2 views, got %d", len(P.Views()))
	}
	if err := P.RemoveView(v2); err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(before, P.Views()) {
		Te.Errorf("Removing the added view should restore the plot: %v %v", before, P.Views())
	}
	if err := P.RemoveView(v2); err == nil {
		Te.Error("Removing a view not in the plot should give an error")
	}
	if err := P.RemoveView(v1); err != nil {
		Te.Fatal(err)
	}
	if _, err := P.Configuration(); err == nil {
		Te.Error("A plot without views should not give a configuration")
	}
}

func TestRoundTrip(Te *testing.T) {
	P := testPlot(Te)
	md, err := NewMolecularData(FileSource(testdata + "/cu.csv.gz"))
	if err != nil {
		Te.Fatal(err)
	}
	sd, err := NewSpatiallyResolvedData(FileSource(testdata+"/C6H6_data.csv"), WithGrid([3]int{3, 2, 1}, [3]float64{0.4, 0.3, 0.1}))
	if err != nil {
		Te.Fatal(err)
	}
	v := NewThreeDView("Cu", SystemLatticeVectors([3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
	v.AddData(md, "")
	v.AddData(sd, "")
	P.AddView(v)
	P.AddView(NewTwoDHeatmap("x", "rho", "linear", "log10"))
	original, err := P.Configuration()
	if err != nil {
		Te.Fatal(err)
	}
	if len(original.Views) != 2 || original.PlotSetup.MoleculePropertyList[3] != "atom" {
		Te.Fatalf("Wrong configuration %+v", original)
	}
	name := filepath.Join(Te.TempDir(), "config.json")
	if err := P.SaveConfiguration(name); err != nil {
		Te.Fatal(err)
	}
	P2, err := NewPlot(WithConfigurationFile(name))
	if err != nil {
		Te.Fatal(err)
	}
	if err := P2.AddView(NewThreeDView("other")); err == nil {
		Te.Error("Views should not be added to a plot with a configuration file")
	}
	loaded, err := P2.Configuration()
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(original, loaded) {
		o, _ := json.Marshal(original)
		l, _ := json.Marshal(loaded)
		Te.Errorf("Loaded configuration differs from the saved one:\n%s\n%s", o, l)
	}
	//Saving again should give the same file.
	name2 := filepath.Join(Te.TempDir(), "config2.json")
	if err := P2.SaveConfiguration(name2); err != nil {
		Te.Fatal(err)
	}
	b1, _ := os.ReadFile(name)
	b2, _ := os.ReadFile(name2)
	if string(b1) != string(b2) {
		Te.Errorf("Saving a loaded configuration changed it:\n%s\n%s", b1, b2)
	}
}

func TestResaveTrailingWhitespace(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "loose.json")
	doc := "\n {\"views\": [], \"plotSetup\": {\"frameProperty\": \"frame\"}}\n\n  \n"
	if err := os.WriteFile(name, []byte(doc), 0644); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		P, err := NewPlot(WithConfigurationFile(name))
		if err != nil {
			Te.Fatal(err)
		}
		next := filepath.Join(dir, fmt.Sprintf("resaved%d.json", i))
		if err := P.SaveConfiguration(next); err != nil {
			Te.Fatal(err)
		}
		name = next
	}
	b, _ := os.ReadFile(name)
	if !strings.HasPrefix(string(b), "{") || !strings.HasSuffix(string(b), "}\n") || strings.HasSuffix(string(b), "\n\n") {
		Te.Errorf("Whitespace not normalized by saving: %q", b)
	}
}

func TestShow(Te *testing.T) {
	P := testPlot(Te)
	d, _ := NewMolecularData(FileSource(testdata + "/cu.csv.gz"))
	v := NewThreeDView("Cu")
	v.AddData(d, "")
	P.AddView(v)
	rec := new(recorder)
	if err := P.Show(context.Background(), rec); err != nil {
		Te.Fatal(err)
	}
	conf, err := ParseConfiguration(rec.document)
	if err != nil {
		Te.Fatal(err)
	}
	if conf.Views[0].MoleculeName != "Cu" || len(conf.Views[0].MoleculeData.Data) != 3 {
		Te.Errorf("Wrong document shown %s", rec.document)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.document = nil
	if err := P.Show(ctx, rec); err == nil || rec.document != nil {
		Te.Error("A cancelled context should prevent the launch")
	}
}

//An STF trajectory can only be read once, but the plot should still be
//saved and shown.
func TestSaveThenShowTrajectory(Te *testing.T) {
	dir := Te.TempDir()
	m, err := mol.XYZFileRead(testdata + "/fe2.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(dir, "fe2.stf")
	w, err := stf.NewWriter(name, m.Len(), nil)
	if err != nil {
		Te.Fatal(err)
	}
	for _, c := range m.Coords {
		if err := w.WNext(c); err != nil {
			Te.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	traj, _, err := stf.New(name)
	if err != nil {
		Te.Fatal(err)
	}
	mp, _ := NewMolecularDataProperties([]string{"x", "y", "z", "frame"})
	P, err := NewPlot(WithMolecularProperties(mp), WithFramedProperties(NewFramedDataProperties("")))
	if err != nil {
		Te.Fatal(err)
	}
	d, err := NewMolecularData(TrajectorySource(traj, m.Topology, m.Cell))
	if err != nil {
		Te.Fatal(err)
	}
	v := NewThreeDView("Fe")
	v.AddData(d, "")
	P.AddView(v)
	if err := P.SaveConfiguration(filepath.Join(dir, "fe2.json")); err != nil {
		Te.Fatal(err)
	}
	rec := new(recorder)
	if err := P.Show(context.Background(), rec); err != nil {
		Te.Fatalf("Show after SaveConfiguration failed: %s", err)
	}
	conf, err := ParseConfiguration(rec.document)
	if err != nil {
		Te.Fatal(err)
	}
	data := conf.Views[0].MoleculeData.Data
	if len(data) != 4 || data[2]["frame"] != 1.0 {
		Te.Errorf("Wrong records shown %v", data)
	}
	if conf.Views[0].SystemDimension.X == 10 {
		Te.Error("The cell given with the source should set the geometry")
	}
}

func TestEmptyNameAndData(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "empty.csv.gz")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	z := gzip.NewWriter(f)
	z.Write([]byte("x,y,z,atom\n"))
	if err := z.Close(); err != nil {
		Te.Fatal(err)
	}
	f.Close()
	mp, _ := NewMolecularDataProperties(nil)
	P, err := NewPlot(WithMolecularProperties(mp))
	if err != nil {
		Te.Fatal(err)
	}
	d, err := NewMolecularData(FileSource(name))
	if err != nil {
		Te.Fatal(err)
	}
	v := NewThreeDView("")
	v.AddData(d, "")
	P.AddView(v)
	P.AddView(NewTwoDHeatmap("x", "y", "linear", "linear"))
	rec := new(recorder)
	if err := P.Show(context.Background(), rec); err != nil {
		Te.Fatal(err)
	}
	doc := string(rec.document)
	if !strings.Contains(doc, `"moleculeData":{"data":[]}`) {
		Te.Errorf("An empty inline block should have an empty data list: %s", doc)
	}
	if !strings.Contains(doc, `"moleculeName":""`) {
		Te.Errorf("An empty system name should be written: %s", doc)
	}
	if strings.Count(doc, "moleculeName") != 1 {
		Te.Errorf("Heatmaps should not have a system name: %s", doc)
	}
}
