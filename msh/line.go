// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a one-dimensional mesh refined by bisection with interpolating
// transfer of nodal and cell data between meshes
package msh

import (
	"bytes"
	"encoding/json"
	goio "io"
	"sort"

	"github.com/cpmech/gofrac/frac"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// constants
const Ztol = 1e-12

// Line holds a mesh of two-node cells on a line. Vertex i has the linear hat function i
type Line struct {
	X     []float64 `json:"x"`     // [nverts] vertex coordinates, increasing
	Level []int     `json:"level"` // [ncells] number of bisections of each cell
}

// NewLine returns a uniform mesh of ncells cells in [xa, xb]
func NewLine(xa, xb float64, ncells int) (o *Line, err error) {
	if ncells < 1 || xb-xa < Ztol {
		return nil, chk.Err("cannot create line mesh with %d cells in [%g, %g]", ncells, xa, xb)
	}
	o = new(Line)
	o.X = utl.LinSpace(xa, xb, ncells+1)
	o.Level = make([]int, ncells)
	return
}

// ReadLine reads a mesh from a JSON file with {"x":[...]} and optionally {"level":[...]}
func ReadLine(fnamepath string) (o *Line, err error) {

	// read file
	b, err := inp.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read line mesh file %q:\n%v", fnamepath, err)
	}

	// decode
	o = new(Line)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal line mesh file %q:\n%v", fnamepath, err)
	}

	// check
	if len(o.X) < 2 {
		return nil, chk.Err("line mesh %q must have at least 2 vertices", fnamepath)
	}
	for i := 1; i < len(o.X); i++ {
		if o.X[i]-o.X[i-1] < Ztol {
			return nil, chk.Err("coordinates of line mesh %q must be increasing. x[%d]=%g, x[%d]=%g", fnamepath, i-1, o.X[i-1], i, o.X[i])
		}
	}
	if len(o.Level) == 0 {
		o.Level = make([]int, len(o.X)-1)
	}
	if len(o.Level) != len(o.X)-1 {
		return nil, chk.Err("line mesh %q has %d levels but %d cells", fnamepath, len(o.Level), len(o.X)-1)
	}
	return
}

// NumElements returns the number of cells
func (o *Line) NumElements() int { return len(o.Level) }

// NumVerts returns the number of vertices (basis functions)
func (o *Line) NumVerts() int { return len(o.X) }

// ElementArea returns the length of cell eid
func (o *Line) ElementArea(eid int) float64 { return o.X[eid+1] - o.X[eid] }

// FunctionsForElements returns the hat functions with support on the given cells
func (o *Line) FunctionsForElements(eids []int) (funcs []int) {
	sel := make(map[int]bool)
	for _, eid := range eids {
		sel[eid] = true
		sel[eid+1] = true
	}
	for v := range sel {
		funcs = append(funcs, v)
	}
	sort.Ints(funcs)
	return
}

// Copy returns an independent copy of the mesh
func (o *Line) Copy() frac.Mesh { return o.GetCopy() }

// GetCopy returns an independent copy of the mesh
func (o *Line) GetCopy() *Line {
	return &Line{
		X:     append([]float64{}, o.X...),
		Level: append([]int{}, o.Level...),
	}
}

// Refine returns a new mesh where all cells in the support of the given hat functions are
// bisected. Cells with maxLevel bisections are not refined. maxLevel < 0 => no limit
func (o *Line) Refine(funcs []int, maxLevel int) (m *Line, nbisected int, err error) {

	// cells to bisect
	nc := o.NumElements()
	bisect := make([]bool, nc)
	for _, f := range funcs {
		if f < 0 || f > nc {
			return nil, 0, chk.Err("cannot refine: function %d is not in [0, %d]", f, nc)
		}
		for _, c := range []int{f - 1, f} {
			if c >= 0 && c < nc && (maxLevel < 0 || o.Level[c] < maxLevel) {
				bisect[c] = true
			}
		}
	}

	// new mesh
	m = new(Line)
	m.X = append(m.X, o.X[0])
	for c := 0; c < nc; c++ {
		if bisect[c] {
			m.X = append(m.X, (o.X[c]+o.X[c+1])/2.0)
			m.Level = append(m.Level, o.Level[c]+1, o.Level[c]+1)
			nbisected++
		} else {
			m.Level = append(m.Level, o.Level[c])
		}
		m.X = append(m.X, o.X[c+1])
	}
	return
}

// Locate returns the cell containing x. Points outside the mesh are assigned to the first or last cell
func (o *Line) Locate(x float64) int {
	nc := o.NumElements()
	i := sort.SearchFloat64s(o.X, x) // o.X[i-1] < x <= o.X[i]
	return utl.Imax(0, utl.Imin(i-1, nc-1))
}

// Interp interpolates the nodal values vals (one per vertex) at x
func (o *Line) Interp(vals []float64, x float64) float64 {
	c := o.Locate(x)
	xa, xb := o.X[c], o.X[c+1]
	r := (x - xa) / (xb - xa)
	return (1.0-r)*vals[c] + r*vals[c+1]
}

// TransferNodal computes the nodal values on this mesh of the nodal values vals on the mesh old
func (o *Line) TransferNodal(old *Line, vals []float64) (res []float64, err error) {
	if len(vals) != old.NumVerts() {
		return nil, chk.Err("cannot transfer %d nodal values from mesh with %d vertices", len(vals), old.NumVerts())
	}
	res = make([]float64, o.NumVerts())
	for i, x := range o.X {
		res[i] = old.Interp(vals, x)
	}
	return
}

// TransferCells computes the cell values on this mesh of the cell values vals on the mesh old,
// by sampling at the cell centres
func (o *Line) TransferCells(old *Line, vals []float64) (res []float64, err error) {
	if len(vals) != old.NumElements() {
		return nil, chk.Err("cannot transfer %d cell values from mesh with %d cells", len(vals), old.NumElements())
	}
	res = make([]float64, o.NumElements())
	for c := range res {
		res[c] = vals[old.Locate((o.X[c]+o.X[c+1])/2.0)]
	}
	return
}

// Write writes the mesh in JSON format
func (o *Line) Write(w goio.Writer) (err error) {
	b, err := json.Marshal(o)
	if err != nil {
		return chk.Err("cannot marshal line mesh:\n%v", err)
	}
	_, err = w.Write(append(b, '\n'))
	return
}

// String returns a table with the vertices and cells
func (o Line) String() string {
	var buf bytes.Buffer
	io.Ff(&buf, "%6s%23s%8s\n", "id", "x", "level")
	for i, x := range o.X {
		io.Ff(&buf, "%6d%23.15e", i, x)
		if i < len(o.Level) {
			io.Ff(&buf, "%8d", o.Level[i])
		}
		io.Ff(&buf, "\n")
	}
	return buf.String()
}
