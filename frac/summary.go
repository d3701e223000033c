// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Summary records the output times and the residuals of all staggering cycles
type Summary struct {

	// main data
	OutTimes []float64   // [nOutTimes] output times
	Resids   [][]float64 // [nSteps][nCycles] combined residual norms of each staggering cycle
	Dirout   string      // directory where results are stored
	Fnkey    string      // filename key of simulation
}

// Append appends the residual norm of a staggering cycle. first => starts a new step
func (o *Summary) Append(first bool, r float64) {
	if first || len(o.Resids) == 0 {
		o.Resids = append(o.Resids, []float64{r})
		return
	}
	i := len(o.Resids) - 1
	o.Resids[i] = append(o.Resids[i], r)
}

// Cycles returns the number of staggering cycles of each step
func (o *Summary) Cycles() (ncycles []int) {
	ncycles = make([]int, len(o.Resids))
	for i, r := range o.Resids {
		ncycles[i] = len(r)
	}
	return
}

// Save saves summary to disc; only on processor 0
func (o Summary) Save(dirout, fnkey, enctype string, proc int, verbose bool) (err error) {

	// set flags before saving
	o.Dirout = dirout
	o.Fnkey = fnkey

	// skip if not root
	if proc != 0 {
		return
	}

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}

	// save file
	return save_file(out_sum_path(dirout, fnkey, enctype), &buf, verbose)
}

// ReadSummary reads summary back
func ReadSummary(dirout, fnkey, enctype string) (o *Summary, err error) {

	// open file
	fn := out_sum_path(dirout, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open summary file:\n%v", err)
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decode summary
	o = new(Summary)
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}
