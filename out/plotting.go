// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gofrac/frac"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Fmt holds formatting data for a curve
type Fmt struct {
	L  string // label; empty => alias
	C  int    // colour index; see plotutil.Color
	Ls int    // dashes index; see plotutil.Dashes
	M  bool   // draw markers
}

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label (raw; e.g. "t")
	Ylbl  string    // vertical axis label (raw; e.g. "eps_e")
	Style Fmt       // style
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Title  string       // title of subplot
	Xscale float64      // x-axis scale
	Yscale float64      // y-axis scale
	Xlbl   string       // x-axis label (formatted; e.g. "t [s]")
	Ylbl   string       // y-axis label (formatted; e.g. "load_Y [N]")
	Data   []*PltEntity // data and styles to be plotted
}

// Splot activates a new subplot window
func Splot(splotTitle string) {
	s := &SplotDat{Title: splotTitle, Xscale: 1, Yscale: 1}
	Splots = append(Splots, s)
	Csplot = s
}

// SplotConfig configures units and scales of axes
func SplotConfig(xunit, yunit string, xscale, yscale float64) {
	if Csplot != nil {
		var xlabel, ylabel string
		if len(Csplot.Data) > 0 {
			xlabel = Csplot.Data[0].Xlbl
			ylabel = Csplot.Data[0].Ylbl
		}
		Csplot.Xlbl = GetLabel(xlabel, xunit)
		Csplot.Ylbl = GetLabel(ylabel, yunit)
		Csplot.Xscale = xscale
		Csplot.Yscale = yscale
	}
}

// GetLabel returns the axis label with units; e.g. "t [s]"
func GetLabel(key, unit string) string {
	if unit == "" {
		return key
	}
	return io.Sf("%s [%s]", key, unit)
}

// Plot adds a curve to the current subplot
//  xHandle -- can be a key of the energy data, e.g. "t" or a slice, e.g. []float64{0, 1, 2}
//  yHandle -- can be a key of the energy data, e.g. "load_Y" or a slice
//  alias   -- alias such as "A"
//  fm      -- formatting codes; e.g. Fmt{C: 1, L: "label"}
func Plot(xHandle, yHandle interface{}, alias string, fm Fmt) (err error) {
	var e PltEntity
	e.Alias = alias
	e.Style = fm
	e.X, e.Xlbl, err = get_vals_and_labels(xHandle, alias)
	if err != nil {
		return
	}
	e.Y, e.Ylbl, err = get_vals_and_labels(yHandle, alias)
	if err != nil {
		return
	}
	if len(e.X) != len(e.Y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, x=%v, y=%v", len(e.X), len(e.Y), xHandle, yHandle)
	}
	if Csplot == nil {
		Splot("")
	}
	Csplot.Data = append(Csplot.Data, &e)
	SplotConfig("", "", Csplot.Xscale, Csplot.Yscale)
	return
}

// ExtraPlt defines a callback function for extra settings of a subplot
//  Note: i and j are indices as in Tiles
type ExtraPlt func(i, j, nplots int, p *plot.Plot)

// Draw draws all subplots and saves figure
//  dirout -- directory to save figure
//  fname  -- file name; e.g. myplot.png or myplot.eps. The extension selects the format
//  w, h   -- size of figure in inches
//  extra  -- is called after all curves of a subplot are added
func Draw(dirout, fname string, w, h float64, extra ExtraPlt) (err error) {

	// subplots
	nplots := len(Splots)
	if nplots < 1 {
		return chk.Err("there are no subplots to draw")
	}
	nr, nc := utl.BestSquare(nplots)
	plots := make([][]*plot.Plot, nr)
	var k int
	for i := 0; i < nr; i++ {
		plots[i] = make([]*plot.Plot, nc)
		for j := 0; j < nc; j++ {
			p := plot.New()
			plots[i][j] = p
			if k >= nplots {
				continue
			}
			s := Splots[k]
			p.Title.Text = s.Title
			p.X.Label.Text = s.Xlbl
			p.Y.Label.Text = s.Ylbl
			p.Add(plotter.NewGrid())
			for _, d := range s.Data {
				err = add_curve(p, d, s.Xscale, s.Yscale)
				if err != nil {
					return
				}
			}
			if extra != nil {
				extra(i+1, j+1, nplots, p)
			}
			k++
		}
	}

	// canvas
	format := strings.TrimPrefix(filepath.Ext(fname), ".")
	c, err := draw.NewFormattedCanvas(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, format)
	if err != nil {
		return chk.Err("cannot create canvas for %q:\n%v", fname, err)
	}
	tiles := draw.Tiles{Rows: nr, Cols: nc, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	// save
	fil, err := create_file(dirout, fname)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = c.WriteTo(fil)
	if err == nil && chk.Verbose {
		io.Pfblue2("file <%s> written\n", filepath.Join(dirout, fname))
	}
	return
}

// PlotResiduals plots the log10 of the residuals of the staggering cycles of each step
//  skip -- number of initial steps to skip
func PlotResiduals(sum *frac.Summary, skip int, dirout, fname string) (err error) {
	p := plot.New()
	p.X.Label.Text = "staggering cycle"
	p.Y.Label.Text = "log10(R)"
	p.Add(plotter.NewGrid())
	for i := range sum.Resids {
		if i < skip {
			continue
		}
		x, y := ConvCurve(sum, i)
		if len(x) == 0 {
			continue
		}
		err = add_curve(p, &PltEntity{X: x, Y: y, Style: Fmt{C: i, M: true}}, 1, 1)
		if err != nil {
			return
		}
	}
	return save_plot(p, dirout, fname)
}

// PlotCycles plots histograms with the number of staggering cycles per step of one or more simulations
func PlotCycles(sums []*frac.Summary, labels []string, dirout, fname string) (err error) {

	// counts
	if len(sums) != len(labels) {
		return chk.Err("number of labels (%d) must be equal to the number of summaries (%d)", len(labels), len(sums))
	}
	nmax := 1
	for _, sum := range sums {
		for _, n := range sum.Cycles() {
			nmax = utl.Imax(nmax, n)
		}
	}

	// bars
	p := plot.New()
	p.X.Label.Text = "number of staggering cycles"
	p.Y.Label.Text = "counts"
	p.Add(plotter.NewGrid())
	width := vg.Points(20) / vg.Length(len(sums))
	for i, sum := range sums {
		counts := make(plotter.Values, nmax)
		for _, n := range sum.Cycles() {
			if n > 0 {
				counts[n-1]++
			}
		}
		bars, err := plotter.NewBarChart(counts, width)
		if err != nil {
			return chk.Err("cannot create bar chart of %q:\n%v", labels[i], err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(i)*width - vg.Length(len(sums)-1)*width/2
		p.Add(bars)
		p.Legend.Add(labels[i], bars)
	}
	names := make([]string, nmax)
	for k := range names {
		names[k] = io.Sf("%d", k+1)
	}
	p.NominalX(names...)
	return save_plot(p, dirout, fname)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func get_vals_and_labels(handle interface{}, alias string) ([]float64, string, error) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, io.Sf("%s-type", alias), nil
	case string:
		if Energy == nil {
			return nil, "", chk.Err("cannot get %q values: energy data is not available", hnd)
		}
		vals, err := Energy.GetRes(hnd)
		return vals, hnd, err
	}
	return nil, "", chk.Err("cannot get values slice with handle = %v", handle)
}

func add_curve(p *plot.Plot, d *PltEntity, xscale, yscale float64) (err error) {
	pts := make(plotter.XYs, len(d.X))
	for i := range d.X {
		pts[i].X = d.X[i] * xscale
		pts[i].Y = d.Y[i] * yscale
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return chk.Err("cannot create line of %q:\n%v", d.Alias, err)
	}
	line.LineStyle.Color = plotutil.Color(d.Style.C)
	line.LineStyle.Dashes = plotutil.Dashes(d.Style.Ls)
	p.Add(line)
	label := d.Style.L
	if label == "" {
		label = d.Alias
	}
	if d.Style.M {
		sca, err := plotter.NewScatter(pts)
		if err != nil {
			return chk.Err("cannot create markers of %q:\n%v", d.Alias, err)
		}
		sca.GlyphStyle.Color = plotutil.Color(d.Style.C)
		sca.GlyphStyle.Shape = plotutil.Shape(d.Style.C)
		p.Add(sca)
		if label != "" {
			p.Legend.Add(label, line, sca)
		}
		return nil
	}
	if label != "" {
		p.Legend.Add(label, line)
	}
	return
}

func save_plot(p *plot.Plot, dirout, fname string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory <%s>:\n%v", dirout, err)
	}
	fn := filepath.Join(dirout, fname)
	err = p.Save(6*vg.Inch, 4*vg.Inch, fn)
	if err != nil {
		return chk.Err("cannot save figure <%s>:\n%v", fn, err)
	}
	if chk.Verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	return
}

func create_file(dirout, fname string) (*os.File, error) {
	err := os.MkdirAll(dirout, 0777)
	if err != nil {
		return nil, chk.Err("cannot create directory <%s>:\n%v", dirout, err)
	}
	return os.Create(filepath.Join(dirout, fname))
}
