/*
 * histo.go, part of electrolens.
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

//Package histo builds histograms of the values of one property, such as the density of
//spatially resolved data, and draws them. They help choosing the density cutoffs of a plot.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Data is a histogram. Values outside the range of the dividers are counted
//apart, and are not part of the histogram.
type Data struct {
	normalized bool
	total      int //values inside the range
	outside    int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Outside    int       `json:"outside"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Outside:    D.outside,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d, Outside: %d\n", D.normalized, D.total, D.outside)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, binLabel(D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//The dividers must be sorted and at least 2, otherwise, NewData returns an error.
//Neither slice is modified.
func NewData(dividers []float64, rawdata []float64) (*Data, error) {
	if len(dividers) < 2 {
		return nil, fmt.Errorf("histo: at least 2 dividers are needed, got %d", len(dividers))
	}
	if !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("histo: dividers not sorted")
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if len(rawdata) > 0 {
		d.reHisto(rawdata)
	}
	return d, nil
}

func (D *Data) reHisto(rawdata []float64) {
	data := make([]float64, len(rawdata))
	copy(data, rawdata)
	sort.Float64s(data)
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(data, D.dividers[0])
	data = data[mini:maxi]
	D.total = len(data)
	D.outside = len(rawdata) - len(data)
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}

//AddData adds the given data point(s) to the histogram
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		//sort.SearchFloat64s gives the first divider >= v.
		j := sort.SearchFloat64s(D.dividers, v)
		if j < len(D.dividers) && D.dividers[j] == v {
			j++
		}
		if j == 0 || j == len(D.dividers) {
			D.outside++
			continue
		}
		D.histo[j-1]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram, so each bin holds the fraction of the values (inside the range) that fall in it.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//Total returns the number of values inside the range of the histogram.
func (D *Data) Total() int {
	return D.total
}

//Outside returns the number of values that were outside the range of the histogram.
func (D *Data) Outside() int {
	return D.outside
}

//Dividers returns a copy of the dividers of the histogram
func (D *Data) Dividers() []float64 {
	ret := make([]float64, len(D.dividers))
	copy(ret, D.dividers)
	return ret
}

//View returns the bins of the histogram. Changes to the slice are reflected in the histogram.
func (D *Data) View() []float64 {
	return D.histo
}

//LinearDividers returns n+1 evenly spaced dividers from low to up, for n bins.
func LinearDividers(low, up float64, n int) ([]float64, error) {
	if n < 1 || !(low < up) {
		return nil, fmt.Errorf("histo: can't divide [%g, %g] in %d bins", low, up, n)
	}
	return floats.Span(make([]float64, n+1), low, up), nil
}

//LogDividers returns n+1 dividers from low to up, evenly spaced in logarithmic scale.
//Densities usually span several orders of magnitude, so these are the dividers to use for them.
func LogDividers(low, up float64, n int) ([]float64, error) {
	if n < 1 || low <= 0 || !(low < up) {
		return nil, fmt.Errorf("histo: can't divide [%g, %g] in %d logarithmic bins", low, up, n)
	}
	d := floats.LogSpan(make([]float64, n+1), low, up)
	//floats.LogSpan can be off in the last digits.
	d[0], d[n] = low, up
	return d, nil
}

func binLabel(a, b float64) string {
	if math.Abs(a) < 1e-2 || math.Abs(b) >= 1e3 || math.Abs(a) >= 1e3 {
		return fmt.Sprintf("%.1e-%.1e", a, b)
	}
	return fmt.Sprintf("%4.2f-%4.2f", a, b)
}

//Plot draws the histogram as a bar chart, and saves it to path. The format is
//taken from the extension of path (png, svg, pdf...).
func (D *Data) Plot(title, xlabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	if D.normalized {
		p.Y.Label.Text = "Fraction"
	} else {
		p.Y.Label.Text = "Count"
	}
	values := make(plotter.Values, len(D.histo))
	copy(values, D.histo)
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("histo: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	labels := make([]string, len(D.histo))
	for i := range labels {
		labels[i] = binLabel(D.dividers[i], D.dividers[i+1])
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	width := vg.Length(len(labels)) * vg.Points(30)
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("histo: can't save plot to %s: %w", path, err)
	}
	return nil
}
