/*
 * plot.go, part of electrolens.
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
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

//Launcher shows a configuration document with the renderer.
type Launcher interface {
	Launch(ctx context.Context, document []byte) error
}

//PlotOption sets the properties or the configuration file of a Plot.
type PlotOption func(*Plot)

//WithMolecularProperties declares the molecular data columns of the plot.
func WithMolecularProperties(p *MolecularDataProperties) PlotOption {
	return func(P *Plot) {
		P.props.Molecular = p
	}
}

//WithSpatiallyResolvedProperties declares the spatially resolved data columns of the plot.
func WithSpatiallyResolvedProperties(p *SpatiallyResolvedDataProperties) PlotOption {
	return func(P *Plot) {
		P.props.SpatiallyResolved = p
	}
}

//WithFramedProperties marks the data of the plot as framed.
func WithFramedProperties(p *FramedDataProperties) PlotOption {
	return func(P *Plot) {
		P.props.Framed = p
	}
}

//WithConfigurationFile makes the plot show an existing configuration file. It
//can't be combined with any properties, and no views can be added to such a plot.
func WithConfigurationFile(path string) PlotOption {
	return func(P *Plot) {
		P.configFile = path
	}
}

//Plot is the top-level container. It holds the properties of each data category and the views.
type Plot struct {
	props      PropertySet
	configFile string
	document   []byte //contents of configFile
	views      []View
}

//NewPlot returns a new plot. Either molecular or spatially resolved properties,
//or a configuration file, must be given.
func NewPlot(opts ...PlotOption) (*Plot, error) {
	const funcname = "NewPlot"
	P := new(Plot)
	for _, o := range opts {
		o(P)
	}
	if P.configFile == "" {
		if err := P.props.validate(); err != nil {
			return nil, errDecorate(err, funcname)
		}
		return P, nil
	}
	if !P.props.empty() {
		return nil, newError(funcname, "other arguments should not be provided when a configuration file is provided")
	}
	doc, err := os.ReadFile(P.configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "can't read configuration file %s", P.configFile)
	}
	if !json.Valid(doc) {
		return nil, newError(funcname, "configuration file %s is not valid JSON", P.configFile)
	}
	//Surrounding whitespace would survive json.Indent, and pile up with each save.
	P.document = bytes.TrimSpace(doc)
	return P, nil
}

//Properties returns the properties declared for the plot.
func (P *Plot) Properties() PropertySet {
	return P.props
}

//AddView adds V to the plot.
func (P *Plot) AddView(V View) error {
	if P.configFile != "" {
		return newError("Plot.AddView", "view cannot be added when a configuration file has been provided")
	}
	if V == nil {
		return newError("Plot.AddView", "nil view")
	}
	P.views = append(P.views, V)
	return nil
}

//RemoveView removes V, which must have been added before, from the plot.
func (P *Plot) RemoveView(V View) error {
	for i, v := range P.views {
		if v == V {
			P.views = append(P.views[:i], P.views[i+1:]...)
			return nil
		}
	}
	return newError("Plot.RemoveView", "view not in the plot")
}

//Views returns the views in the plot, in the order they were added.
func (P *Plot) Views() []View {
	ret := make([]View, len(P.views))
	copy(ret, P.views)
	return ret
}

//Configuration returns the configuration document of the plot, either read from the
//configuration file or built from the views.
func (P *Plot) Configuration() (*Configuration, error) {
	const funcname = "Plot.Configuration"
	if P.document != nil {
		conf, err := ParseConfiguration(P.document)
		return conf, errDecorate(err, funcname)
	}
	if len(P.views) == 0 {
		return nil, newError(funcname, "No view found")
	}
	conf := &Configuration{
		Views:     make([]ViewConfig, 0, len(P.views)),
		PlotSetup: P.props.plotSetup(),
	}
	for _, v := range P.views {
		vc, err := v.Configuration(P.props)
		if err != nil {
			return nil, errDecorate(err, funcname)
		}
		conf.Views = append(conf.Views, *vc)
	}
	return conf, nil
}

//marshal returns the configuration document, indented if indent is true.
func (P *Plot) marshal(indent bool) ([]byte, error) {
	if P.document != nil {
		var out bytes.Buffer
		var err error
		if indent {
			err = json.Indent(&out, P.document, "", "    ")
		} else {
			err = json.Compact(&out, P.document)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "configuration file %s", P.configFile)
		}
		return out.Bytes(), nil
	}
	conf, err := P.Configuration()
	if err != nil {
		return nil, err
	}
	if indent {
		return json.MarshalIndent(conf, "", "    ")
	}
	return json.Marshal(conf)
}

//SaveConfiguration writes the configuration document, as indented JSON, to path.
func (P *Plot) SaveConfiguration(path string) error {
	doc, err := P.marshal(true)
	if err != nil {
		return errDecorate(err, "Plot.SaveConfiguration")
	}
	doc = append(doc, '\n')
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return errors.Wrapf(err, "can't save configuration to %s", path)
	}
	information("configuration saved to %s", path)
	return nil
}

//Show builds the configuration document and hands it to launcher.
func (P *Plot) Show(ctx context.Context, launcher Launcher) error {
	if launcher == nil {
		return newError("Plot.Show", "nil launcher")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := P.marshal(false)
	if err != nil {
		return errDecorate(err, "Plot.Show")
	}
	return launcher.Launch(ctx, doc)
}
