/*
 * view.go, part of electrolens.
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

//View is one visualized system of a Plot.
type View interface {
	//Configuration returns the configuration of the view, converting its data
	//for the categories declared in setup.
	Configuration(setup PropertySet) (*ViewConfig, error)
}

//ViewOption sets the optional geometry of a ThreeDView.
type ViewOption func(*ThreeDView)

//SystemDimensions sets the size of the system along x, y and z.
func SystemDimensions(x, y, z float64) ViewOption {
	return func(V *ThreeDView) {
		V.dims = &Vector3{X: x, Y: y, Z: z}
	}
}

//SystemLatticeVectors sets the lattice vectors of the system, one per row.
func SystemLatticeVectors(vectors [3][3]float64) ViewOption {
	return func(V *ThreeDView) {
		V.lattice = NewLatticeVectors(vectors)
	}
}

//attached is a datum in a view, with the companion file its records go to, if any.
type attached struct {
	data   Datum
	output string
}

//ThreeDView is a 3D view of one system, with at most one MolecularData and one
//SpatiallyResolvedData.
type ThreeDView struct {
	SystemName        string
	dims              *Vector3
	lattice           *LatticeVectors
	molecular         *attached
	spatiallyResolved *attached
}

//NewThreeDView returns an empty 3D view for the system systemName.
func NewThreeDView(systemName string, opts ...ViewOption) *ThreeDView {
	V := &ThreeDView{SystemName: systemName}
	for _, o := range opts {
		o(V)
	}
	return V
}

//AddData attaches d to the view, replacing any data of the same kind attached before.
//If outputDataFile is not empty, the records are written there as CSV when the configuration is
//built, and only the file path goes in the configuration. That is not supported for file sources.
func (V *ThreeDView) AddData(d Datum, outputDataFile string) error {
	const funcname = "ThreeDView.AddData"
	if d == nil || d.Source() == nil {
		return newError(funcname, "nil data")
	}
	if _, ok := d.Source().(fileSource); ok && outputDataFile != "" {
		return newError(funcname, "output data file is not supported when input is already a file")
	}
	a := &attached{data: d, output: outputDataFile}
	var old *attached
	switch d.category() {
	case molecularCategory:
		old, V.molecular = V.molecular, a
	case spatiallyResolvedCategory:
		old, V.spatiallyResolved = V.spatiallyResolved, a
	default:
		return newError(funcname, "unknown data format")
	}
	if old != nil {
		information("%s: %s data replaced", V.SystemName, d.category())
	}
	return nil
}

//Configuration returns the configuration of the view. Spatially resolved data are converted first,
//then molecular data. The first cell found sets the geometry, unless it was given with the view
//options. Systems without any geometry get 10x10x10 dimensions and the identity lattice.
func (V *ThreeDView) Configuration(setup PropertySet) (*ViewConfig, error) {
	const funcname = "ThreeDView.Configuration"
	geo := &geometry{name: V.SystemName}
	if V.dims != nil {
		d := *V.dims
		geo.dims, geo.userDims = &d, true
	}
	if V.lattice != nil {
		l := *V.lattice
		geo.lattice, geo.userLattice = &l, true
	}
	conf := &ViewConfig{ViewType: ThreeDViewType, MoleculeName: V.SystemName}
	if p := setup.SpatiallyResolved; p != nil && V.spatiallyResolved != nil {
		c := &converter{target: spatiallyResolvedCategory, columns: p.Columns, framed: setup.Framed, output: V.spatiallyResolved.output, geo: geo}
		block, err := c.convert(V.spatiallyResolved.data)
		if err != nil {
			return nil, errDecorate(err, funcname)
		}
		aux := V.spatiallyResolved.data.aux()
		if aux.gridPoints != nil {
			g := aux.gridPoints
			block.NumGridPoints = &GridPoints{X: g[0], Y: g[1], Z: g[2]}
		}
		if aux.gridSpacing != nil {
			s := aux.gridSpacing
			block.GridSpacing = &Vector3{X: s[0], Y: s[1], Z: s[2]}
		}
		conf.SpatiallyResolvedData = block
	}
	if p := setup.Molecular; p != nil && V.molecular != nil {
		c := &converter{target: molecularCategory, columns: p.Columns, framed: setup.Framed, output: V.molecular.output, geo: geo}
		block, err := c.convert(V.molecular.data)
		if err != nil {
			return nil, errDecorate(err, funcname)
		}
		conf.MoleculeData = block
	}
	conf.SystemDimension = geo.dims
	if conf.SystemDimension == nil {
		d := defaultDimension
		conf.SystemDimension = &d
	}
	conf.SystemLatticeVectors = geo.lattice
	if conf.SystemLatticeVectors == nil {
		l := defaultLatticeVectors
		conf.SystemLatticeVectors = &l
	}
	return conf, nil
}

//TwoDHeatmap is a 2D heatmap of two properties of the data in the other views.
type TwoDHeatmap struct {
	PlotX          string
	PlotY          string
	PlotXTransform string
	PlotYTransform string
}

//NewTwoDHeatmap returns a heatmap of plotX against plotY, with the given transforms
//(such as "linear" or "log10") applied to each axis.
func NewTwoDHeatmap(plotX, plotY, xTransform, yTransform string) *TwoDHeatmap {
	return &TwoDHeatmap{PlotX: plotX, PlotY: plotY, PlotXTransform: xTransform, PlotYTransform: yTransform}
}

//Configuration returns the configuration of the heatmap. It doesn't depend on the properties.
func (H *TwoDHeatmap) Configuration(setup PropertySet) (*ViewConfig, error) {
	return &ViewConfig{
		View: &HeatmapView{
			ViewType:       TwoDHeatmapType,
			PlotX:          H.PlotX,
			PlotY:          H.PlotY,
			PlotXTransform: H.PlotXTransform,
			PlotYTransform: H.PlotYTransform,
		},
		HeatmapSetup: &HeatmapSetup{},
	}, nil
}
