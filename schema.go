/*
 * schema.go, part of electrolens.
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

import "encoding/json"

//View types understood by the renderer.
const (
	ThreeDViewType  = "3DView"
	TwoDHeatmapType = "2DHeatmap"
)

//Configuration is the document read by the renderer.
type Configuration struct {
	Views     []ViewConfig `json:"views"`
	PlotSetup PlotSetup    `json:"plotSetup"`
}

//PlotSetup holds the properties shared by all the views of a Plot.
type PlotSetup struct {
	MoleculePropertyList          []string `json:"moleculePropertyList,omitempty"`
	SpatiallyResolvedPropertyList []string `json:"spatiallyResolvedPropertyList,omitempty"`
	PointcloudDensity             string   `json:"pointcloudDensity,omitempty"`
	DensityCutoffLow              *float64 `json:"densityCutoffLow,omitempty"`
	DensityCutoffUp               *float64 `json:"densityCutoffUp,omitempty"`
	FrameProperty                 string   `json:"frameProperty,omitempty"`
}

//ViewConfig is the configuration of one view. 3D views use the top-level fields,
//2D heatmaps only View and HeatmapSetup.
type ViewConfig struct {
	ViewType              string          `json:"viewType,omitempty"`
	MoleculeName          string          `json:"moleculeName,omitempty"`
	SystemDimension       *Vector3        `json:"systemDimension,omitempty"`
	SystemLatticeVectors  *LatticeVectors `json:"systemLatticeVectors,omitempty"`
	MoleculeData          *DataBlock      `json:"moleculeData,omitempty"`
	SpatiallyResolvedData *DataBlock      `json:"spatiallyResolvedData,omitempty"`
	View                  *HeatmapView    `json:"view,omitempty"`
	HeatmapSetup          *HeatmapSetup   `json:"plot_setup,omitempty"`
}

//MarshalJSON always writes the moleculeName of 3D views, even if empty.
func (V ViewConfig) MarshalJSON() ([]byte, error) {
	type plain ViewConfig
	if V.ViewType != ThreeDViewType {
		return json.Marshal(plain(V))
	}
	return json.Marshal(struct {
		plain
		MoleculeName string `json:"moleculeName"`
	}{plain(V), V.MoleculeName})
}

//HeatmapView describes a 2D heatmap of two properties.
type HeatmapView struct {
	ViewType       string `json:"viewType"`
	PlotX          string `json:"plotX"`
	PlotY          string `json:"plotY"`
	PlotXTransform string `json:"plotXTransform"`
	PlotYTransform string `json:"plotYTransform"`
}

//HeatmapSetup is the (currently empty) per-heatmap setup.
type HeatmapSetup struct{}

//DataBlock holds the data of one category in a view: either inline records
//or the path to a file with them.
type DataBlock struct {
	Data          []Record    `json:"data,omitempty"`
	DataFilename  string      `json:"dataFilename,omitempty"`
	NumGridPoints *GridPoints `json:"numGridPoints,omitempty"`
	GridSpacing   *Vector3    `json:"gridSpacing,omitempty"`
}

//MarshalJSON writes inline blocks with a data list even if they have no records,
//so the renderer always finds either data or dataFilename.
func (D DataBlock) MarshalJSON() ([]byte, error) {
	type plain DataBlock
	if D.DataFilename != "" {
		return json.Marshal(plain(D))
	}
	data := D.Data
	if data == nil {
		data = []Record{}
	}
	return json.Marshal(struct {
		Data []Record `json:"data"`
		plain
	}{data, plain(D)})
}

//Record is one row of data, keyed by column name. Values are float64 or string.
type Record map[string]interface{}

//Vector3 is used for the system dimensions and the grid spacing.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

//GridPoints is the number of grid points along each axis.
type GridPoints struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

//LatticeVectors are the 3 lattice vectors of a system, (u11, u12, u13) being the first one.
type LatticeVectors struct {
	U11 float64 `json:"u11"`
	U12 float64 `json:"u12"`
	U13 float64 `json:"u13"`
	U21 float64 `json:"u21"`
	U22 float64 `json:"u22"`
	U23 float64 `json:"u23"`
	U31 float64 `json:"u31"`
	U32 float64 `json:"u32"`
	U33 float64 `json:"u33"`
}

//NewLatticeVectors returns the LatticeVectors with v[i] as the ith vector.
func NewLatticeVectors(v [3][3]float64) *LatticeVectors {
	return &LatticeVectors{
		U11: v[0][0], U12: v[0][1], U13: v[0][2],
		U21: v[1][0], U22: v[1][1], U23: v[1][2],
		U31: v[2][0], U32: v[2][1], U33: v[2][2],
	}
}

//Array returns the vectors as a 3x3 array, one vector per row.
func (L *LatticeVectors) Array() [3][3]float64 {
	return [3][3]float64{
		{L.U11, L.U12, L.U13},
		{L.U21, L.U22, L.U23},
		{L.U31, L.U32, L.U33},
	}
}

var (
	defaultDimension      = Vector3{10, 10, 10}
	defaultLatticeVectors = LatticeVectors{U11: 1, U22: 1, U33: 1}
)

//ParseConfiguration decodes a configuration document.
func ParseConfiguration(document []byte) (*Configuration, error) {
	conf := new(Configuration)
	if err := json.Unmarshal(document, conf); err != nil {
		return nil, newError("ParseConfiguration", "malformed configuration document: %s", err.Error())
	}
	return conf, nil
}
