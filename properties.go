/*
 * properties.go, part of electrolens.
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

import "strings"

//Column names with a special meaning.
const (
	XColumn    = "x"
	YColumn    = "y"
	ZColumn    = "z"
	AtomColumn = "atom"
)

//Defaults for the spatially resolved and framed properties.
const (
	DefaultDensityProperty   = "rho"
	DefaultDensityLowerLimit = 1e-3
	DefaultDensityUpperLimit = 1e6
	DefaultFrameColumn       = "frame"
)

var coordinateColumns = []string{XColumn, YColumn, ZColumn}

//checkColumns verifies that columns has no empty or repeated names and
//contains the coordinate columns.
func checkColumns(caller string, columns []string) error {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return newError(caller, "empty column name in %v", columns)
		}
		if seen[c] {
			return newError(caller, "column %q declared more than once", c)
		}
		seen[c] = true
	}
	for _, c := range coordinateColumns {
		if !seen[c] {
			return newError(caller, "columns list should contain 'x', 'y', 'z' columns at least, got %v", columns)
		}
	}
	return nil
}

func copyColumns(columns []string) []string {
	ret := make([]string, len(columns))
	copy(ret, columns)
	return ret
}

//MolecularDataProperties declares the columns of the per-atom data of a Plot.
type MolecularDataProperties struct {
	Columns []string
}

//NewMolecularDataProperties returns the properties for molecular data with the given columns.
//A nil columns slice means just the coordinates. The slice is copied.
func NewMolecularDataProperties(columns []string) (*MolecularDataProperties, error) {
	if columns == nil {
		columns = coordinateColumns
	}
	if err := checkColumns("NewMolecularDataProperties", columns); err != nil {
		return nil, err
	}
	return &MolecularDataProperties{Columns: copyColumns(columns)}, nil
}

func (P *MolecularDataProperties) addPlotSetup(setup *PlotSetup) {
	setup.MoleculePropertyList = withAtom(P.Columns)
}

//SpatiallyResolvedDataProperties declares the columns of the grid data of a Plot,
//which of them is the density, and the density range shown.
type SpatiallyResolvedDataProperties struct {
	Columns           []string
	DensityProperty   string
	DensityLowerLimit float64
	DensityUpperLimit float64
}

//DensityOption modifies the defaults of NewSpatiallyResolvedDataProperties.
type DensityOption func(*SpatiallyResolvedDataProperties)

//DensityProperty sets the column that holds the density. The default is "rho".
func DensityProperty(name string) DensityOption {
	return func(P *SpatiallyResolvedDataProperties) {
		P.DensityProperty = name
	}
}

//DensityLimits sets the density cutoffs. The defaults are 1e-3 and 1e6.
func DensityLimits(low, up float64) DensityOption {
	return func(P *SpatiallyResolvedDataProperties) {
		P.DensityLowerLimit = low
		P.DensityUpperLimit = up
	}
}

//NewSpatiallyResolvedDataProperties returns the properties for spatially resolved data.
//A nil columns slice means the coordinates plus the density property. Otherwise, the density
//property must be among the columns.
func NewSpatiallyResolvedDataProperties(columns []string, opts ...DensityOption) (*SpatiallyResolvedDataProperties, error) {
	const funcname = "NewSpatiallyResolvedDataProperties"
	P := &SpatiallyResolvedDataProperties{
		DensityProperty:   DefaultDensityProperty,
		DensityLowerLimit: DefaultDensityLowerLimit,
		DensityUpperLimit: DefaultDensityUpperLimit,
	}
	for _, o := range opts {
		o(P)
	}
	if strings.TrimSpace(P.DensityProperty) == "" {
		return nil, newError(funcname, "empty density property")
	}
	if P.DensityLowerLimit > P.DensityUpperLimit {
		return nil, newError(funcname, "density lower limit %g larger than the upper limit %g", P.DensityLowerLimit, P.DensityUpperLimit)
	}
	if columns == nil {
		columns = append(copyColumns(coordinateColumns), P.DensityProperty)
	} else if !isInString(columns, P.DensityProperty) {
		return nil, newError(funcname, "density property %q should be available in columns list %v", P.DensityProperty, columns)
	}
	if err := checkColumns(funcname, columns); err != nil {
		return nil, err
	}
	P.Columns = copyColumns(columns)
	return P, nil
}

func (P *SpatiallyResolvedDataProperties) addPlotSetup(setup *PlotSetup) {
	setup.SpatiallyResolvedPropertyList = withAtom(P.Columns)
	setup.PointcloudDensity = P.DensityProperty
	low, up := P.DensityLowerLimit, P.DensityUpperLimit
	setup.DensityCutoffLow = &low
	setup.DensityCutoffUp = &up
}

//FramedDataProperties marks the data of a Plot as time-dependent, and names the column
//with the frame index.
type FramedDataProperties struct {
	FrameColumn string
}

//NewFramedDataProperties returns framed properties with the given frame column.
//An empty string means "frame".
func NewFramedDataProperties(frameColumn string) *FramedDataProperties {
	if frameColumn == "" {
		frameColumn = DefaultFrameColumn
	}
	return &FramedDataProperties{FrameColumn: frameColumn}
}

func (P *FramedDataProperties) addPlotSetup(setup *PlotSetup) {
	setup.FrameProperty = P.FrameColumn
}

//PropertySet is the set of properties declared for a Plot. Nil members are
//categories the Plot doesn't have.
type PropertySet struct {
	Molecular         *MolecularDataProperties
	SpatiallyResolved *SpatiallyResolvedDataProperties
	Framed            *FramedDataProperties
}

//validate checks that at least one data category is declared and that the frame
//column, if any, is among the declared columns.
func (S PropertySet) validate() error {
	const funcname = "PropertySet.validate"
	if S.Molecular == nil && S.SpatiallyResolved == nil {
		return newError(funcname, "either spatially resolved or molecular properties should be provided when no configuration file is given")
	}
	if S.Framed == nil {
		return nil
	}
	fc := S.Framed.FrameColumn
	if S.SpatiallyResolved != nil && !isInString(S.SpatiallyResolved.Columns, fc) {
		return newError(funcname, "frame column %q should be available in spatially resolved properties list", fc)
	}
	if S.Molecular != nil && !isInString(S.Molecular.Columns, fc) {
		return newError(funcname, "frame column %q should be available in molecular properties list", fc)
	}
	return nil
}

//plotSetup returns the plotSetup block of the configuration document.
func (S PropertySet) plotSetup() PlotSetup {
	var setup PlotSetup
	if S.SpatiallyResolved != nil {
		S.SpatiallyResolved.addPlotSetup(&setup)
	}
	if S.Molecular != nil {
		S.Molecular.addPlotSetup(&setup)
	}
	if S.Framed != nil {
		S.Framed.addPlotSetup(&setup)
	}
	return setup
}

func (S PropertySet) empty() bool {
	return S.Molecular == nil && S.SpatiallyResolved == nil && S.Framed == nil
}
