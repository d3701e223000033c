// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the post-processing of staggered phase-field fracture simulations:
// staggering residuals from the summary and global energy quantities from the energy file
package out

import (
	"github.com/cpmech/gofrac/frac"
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Global variables
var (

	// data set by Start
	Sim    *inp.Simulation // simulation data
	Sum    *frac.Summary   // summary with output times and staggering residuals
	Energy *EnergyData     // global energy quantities. nil => no energy file

	// subplots
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
)

// Start starts handling of results given a simulation input file
func Start(simfnpath string) (err error) {

	// simulation data
	Sim, err = inp.ReadSim(simfnpath)
	if err != nil {
		return chk.Err("cannot read simulation file %q:\n%v", simfnpath, err)
	}

	// summary
	Sum, err = frac.ReadSummary(Sim.DirOut, Sim.Key, Sim.EncType)
	if err != nil {
		return chk.Err("cannot read summary of %q:\n%v", Sim.Key, err)
	}

	// energy file
	Energy = nil
	if Sim.Stagger.EnergyFile != "" {
		Energy, err = ReadEnergy(Sim.Stagger.EnergyFile)
		if err != nil {
			return
		}
	}

	// clear previous data
	Splots = make([]*SplotDat, 0)
	Csplot = nil
	if chk.Verbose {
		io.Pf("results of %q: %d output times\n", Sim.Key, len(Sum.OutTimes))
	}
	return
}

// ReadCheckpoint reads the solutions and history field saved before the mesh adaptation of step tidx
func ReadCheckpoint(tidx int) (snap *frac.Snapshot, err error) {
	if Sim == nil {
		return nil, chk.Err("Start must be called first")
	}
	snap, err = frac.ReadSnapshot(Sim.DirOut, Sim.Key, Sim.EncType, tidx)
	if err != nil {
		return nil, chk.Err("cannot read checkpoint %d of %q:\n%v", tidx, Sim.Key, err)
	}
	return
}
