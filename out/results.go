// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"strings"

	"github.com/cpmech/gofrac/frac"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// EnergyData holds the columns of an energy file
type EnergyData struct {
	Keys []string             // column keys; e.g. "t", "eps_e", "load_X"
	Cols map[string][]float64 // maps keys to columns
}

// ReadEnergy reads an energy file. The first line has the keys and starts with "#t"
func ReadEnergy(fname string) (o *EnergyData, err error) {

	// read table
	defer func() {
		if err != nil {
			o, err = nil, chk.Err("cannot read energy file %q:\n%v", fname, err)
		}
	}()
	defer inp.Recover(&err)
	keys, cols := io.ReadTable(fname)

	// check
	if len(keys) == 0 || !strings.HasPrefix(keys[0], "#") {
		return nil, chk.Err("header line beginning with '#' is missing")
	}
	nrows := len(cols[keys[0]])
	for _, key := range keys {
		if len(cols[key]) != nrows {
			return nil, chk.Err("column %q has %d values but there are %d rows", key, len(cols[key]), nrows)
		}
	}

	// first key without '#'
	t := strings.TrimPrefix(keys[0], "#")
	cols[t] = cols[keys[0]]
	delete(cols, keys[0])
	keys[0] = t
	return &EnergyData{Keys: keys, Cols: cols}, nil
}

// Nrows returns the number of rows
func (o *EnergyData) Nrows() int {
	if len(o.Keys) == 0 {
		return 0
	}
	return len(o.Cols[o.Keys[0]])
}

// GetRes returns the column with the given key
func (o *EnergyData) GetRes(key string) ([]float64, error) {
	if col, ok := o.Cols[key]; ok {
		return col, nil
	}
	return nil, chk.Err("energy data does not have key %q. keys = %v", key, o.Keys)
}

// staggering residuals ////////////////////////////////////////////////////////////////////////////

// CountCycles returns the number of staggering cycles of each step
func CountCycles(sum *frac.Summary) (N []float64) {
	for _, n := range sum.Cycles() {
		N = append(N, float64(n))
	}
	return
}

// ConvCurve returns the log10 of the residuals of the staggering cycles of step idx.
// Non-positive residuals are skipped
func ConvCurve(sum *frac.Summary, idx int) (x, y []float64) {
	for k, r := range sum.Resids[idx] {
		if r <= 0 {
			continue
		}
		x = append(x, float64(k))
		y = append(y, math.Log10(r))
	}
	return
}

// PrintResiduals returns a table with the residuals of all steps
func PrintResiduals(sum *frac.Summary, format string) string {
	var b strings.Builder
	for i, res := range sum.Resids {
		b.WriteString(io.Sf("%4d:", i))
		for _, r := range res {
			b.WriteString(io.Sf(" "+format, r))
		}
		b.WriteString("\n")
	}
	return b.String()
}
