// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"bytes"
	"math"

	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/io"
)

// EnergyTable writes one row with global energy quantities per saved step.
//
//  columns: t, norms of elasticity solver, eps_b |c| eps_d-eps_d(0) eps_d (from phase field),
//           boundary forces (load_X, load_Y, ...) and reactions (react_X, react_Y, ...)
//
//  The file is truncated at step 1 and appended to afterwards
type EnergyTable struct {
	Fname string // file name; empty => nothing is written
}

// Header returns the header line for nf boundary forces and nr reactions
func (o EnergyTable) Header(nf, nr int) string {
	var buf bytes.Buffer
	io.Ff(&buf, "#t eps_e external_energy eps+ eps- eps_b |c| eps_d-eps_d(0) eps_d")
	for i := 0; i < nf; i++ {
		io.Ff(&buf, " load_%c", 'X'+i)
	}
	for i := 0; i < nr; i++ {
		io.Ff(&buf, " react_%c", 'X'+i)
	}
	io.Ff(&buf, "\n")
	return buf.String()
}

// Row returns the row of step tp
//  n1 -- global norms of elasticity solver
//  n2 -- global norms of phase-field solver
//  bf -- boundary forces
//  rf -- reaction forces
func (o EnergyTable) Row(tp *TimeStep, n1, n2, bf, rf []float64) string {
	var buf bytes.Buffer
	io.Ff(&buf, "%.11e", tp.T)
	for _, v := range n1 {
		io.Ff(&buf, " %.11e", v)
	}
	var eb, ed0, ed float64
	n := len(n2)
	if n > 2 {
		eb = n2[1]
	}
	if n > 1 {
		ed0 = n2[n-2]
	}
	if n > 0 {
		ed = n2[n-1]
	}
	io.Ff(&buf, " %.11e %.11e %.11e", eb, ed0, ed)
	for _, v := range bf {
		io.Ff(&buf, " %.11e", truncate(v))
	}
	for _, v := range rf {
		io.Ff(&buf, " %.11e", truncate(v))
	}
	io.Ff(&buf, "\n")
	return buf.String()
}

// Write writes the row of step tp; and the header if tp.Step == 1. Nothing is done for step 0
func (o EnergyTable) Write(tp *TimeStep, n1, n2, bf, rf []float64) (err error) {
	if o.Fname == "" || tp.Step < 1 {
		return
	}
	defer inp.Recover(&err)
	var buf bytes.Buffer
	if tp.Step == 1 {
		buf.WriteString(o.Header(len(bf), len(rf)))
		buf.WriteString(o.Row(tp, n1, n2, bf, rf))
		io.WriteFile(o.Fname, &buf)
		return
	}
	buf.WriteString(o.Row(tp, n1, n2, bf, rf))
	io.AppendToFile(o.Fname, &buf)
	return
}

// truncate zeroes values below 1e-16 in magnitude
func truncate(v float64) float64 {
	if math.Abs(v) < 1e-16 {
		return 0
	}
	return v
}
