// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"math"
	"time"

	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Driver couples an elasticity solver and a phase-field solver
type Driver[S Solid, P Phase] struct {
	*Coupling[S, P]
	Sim    *inp.Simulation // simulation data
	Scheme Scheme          // staggering scheme
	Infile string          // input file parsed again after mesh refinement
	Proc   int             // processor id; only processor 0 writes files

	// stop criterion
	Energy  EnergyTable // table with global energy quantities
	irfStop int         // 1-based reaction force component to check. 0 => no check
	stopVal float64     // stop when |RF[irfStop-1]| < stopVal
	doStop  bool        // stop criterion was met

	// refinement
	aMin float64 // minimum element area; computed at first adaptation
}

// NewDriver returns a new driver for the given solvers
//  Input:
//   s1      -- elasticity solver
//   s2      -- phase-field solver
//   sim     -- simulation data; SetDefault and PostProcess must have been called
//   verbose -- show messages
func NewDriver[S Solid, P Phase](s1 S, s2 P, sim *inp.Simulation, verbose bool) (o *Driver[S, P], err error) {

	// new driver
	o = new(Driver[S, P])
	o.Coupling = NewCoupling(s1, s2, verbose)
	o.Trk.Verbose = verbose && sim.Stagger.ShowR
	o.Sim = sim
	o.Infile = sim.Infile
	if sim.Data.Summary {
		o.Sum = new(Summary)
	}

	// staggering scheme
	o.Scheme, err = NewScheme(o.Coupling, &sim.Stagger)
	if err != nil {
		return nil, err
	}

	// stop criterion and energy output
	if sim.Stagger.Stop != nil {
		o.irfStop = sim.Stagger.Stop.Rcomp
		o.stopVal = sim.Stagger.Stop.Force
	}
	o.SetEnergyFile(sim.Stagger.EnergyFile)

	// shared data
	o.SetupDependencies()
	return
}

// SetupDependencies gives the phase-field solver read access to the tensile energy of
// the elasticity solver
func (o *Driver[S, P]) SetupDependencies() {
	o.S2.SetTensileEnergy(o.S1.TensileEnergy().View())
}

// SetEnergyFile sets the file for global energy output. Empty => no output
func (o *Driver[S, P]) SetEnergyFile(fname string) {
	if fname == "" {
		return
	}
	o.Energy.Fname = fname
	if o.Verbose {
		io.Pf("\tFile for global energy output: %s\n", fname)
	}
}

// Stopped tells whether the stop criterion was met
func (o *Driver[S, P]) Stopped() bool { return o.doStop }

// AdvanceStep advances the time step. It returns false if the simulation is finished;
// i.e. the final time was reached or the stop criterion was met
func (o *Driver[S, P]) AdvanceStep(tp *TimeStep) (ok bool, err error) {
	if o.doStop {
		return
	}
	if !tp.Increment() {
		return
	}
	err = o.S1.AdvanceStep(tp)
	if err != nil {
		return false, chk.Err("cannot advance %s to step %d:\n%v", o.S1.Name(), tp.Step, err)
	}
	err = o.S2.AdvanceStep(tp)
	if err != nil {
		return false, chk.Err("cannot advance %s to step %d:\n%v", o.S2.Name(), tp.Step, err)
	}
	return true, nil
}

// SolveStep computes the solution for the current time step
func (o *Driver[S, P]) SolveStep(tp *TimeStep) (err error) {
	err = o.Scheme.SolveStep(tp)
	if err != nil {
		return chk.Err("%s staggering failed at step %d (t = %g):\n%v", o.Scheme.Name(), tp.Step, tp.T, err)
	}
	return
}

// SaveStep saves the converged results of the current step, writes the global energy
// quantities and checks the stop criterion
func (o *Driver[S, P]) SaveStep(tp *TimeStep, nBlock *int) (err error) {

	// energy table
	rf := o.S1.BoundaryReactions()
	if o.Proc == 0 {
		bf := o.S1.BoundaryForce(o.S1.Solutions(), tp)
		err = o.Energy.Write(tp, o.S1.GlobalNorms(), o.S2.GlobalNorms(), bf, rf)
		if err != nil {
			return
		}
	}

	// stop criterion
	if tp.Step > 1 && o.irfStop > 0 && o.irfStop <= len(rf) {
		val := math.Abs(rf[o.irfStop-1])
		o.doStop = val < o.stopVal
		if o.doStop && o.Verbose {
			io.Pfyel("\n >>> Terminating simulation due to stop criterion |RF(%d)| = %g < %g\n", o.irfStop, val, o.stopVal)
		}
	}

	// results
	err = o.S2.SaveStep(tp, nBlock)
	if err != nil {
		return chk.Err("cannot save results of %s:\n%v", o.S2.Name(), err)
	}
	err = o.S1.SaveStep(tp, nBlock)
	if err != nil {
		return chk.Err("cannot save results of %s:\n%v", o.S1.Name(), err)
	}
	err = o.S2.SaveResidual(tp, o.Trk.Residual, nBlock)
	if err != nil {
		return chk.Err("cannot save residual of %s:\n%v", o.S2.Name(), err)
	}
	if o.Sum != nil {
		o.Sum.OutTimes = append(o.Sum.OutTimes, tp.T)
	}
	return
}

// Checkpoint saves the solutions and the history field of step tidx if
// Data.Checkpoint is set. Only processor 0 writes
func (o *Driver[S, P]) Checkpoint(tidx int) (err error) {
	if !o.Sim.Data.Checkpoint || o.Proc != 0 {
		return
	}
	err = TakeSnapshot(o.S1, o.S2).Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, tidx, o.Verbose)
	if err != nil {
		return chk.Err("cannot save checkpoint of step %d:\n%v", tidx, err)
	}
	return
}

// Run runs the time loop from tp until the final time or the stop criterion is met
func (o *Driver[S, P]) Run(tp *TimeStep) (err error) {

	// initial refinement
	cputime := time.Now()
	ref := o.Sim.Refine
	if ref != nil && ref.Initial {
		err = o.InitialRefine(ref.Beta, ref.MinFrac, ref.Nref)
		if err != nil {
			return
		}
	}

	// time loop
	var nBlock int
	for {

		// next step
		ok, err := o.AdvanceStep(tp)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if o.Verbose {
			io.Pf("\n  step = %d  time = %g\n", tp.Step, tp.T)
		}

		// solve and save
		err = o.SolveStep(tp)
		if err != nil {
			return err
		}
		err = o.SaveStep(tp, &nBlock)
		if err != nil {
			return err
		}

		// adaptive refinement
		if ref != nil && ref.Every > 0 && tp.Step%ref.Every == 0 {
			err = o.Checkpoint(tp.Step)
			if err != nil {
				return err
			}
			_, err = o.AdaptMesh(ref.Beta, ref.MinFrac, ref.Nref)
			if err != nil {
				return err
			}
		}
	}

	// message
	if o.Verbose {
		io.Pf("\nfinal time = %v\n", tp.T)
		io.Pflmag("cpu time   = %v\n", time.Now().Sub(cputime))
	}

	// save summary
	if o.Sum != nil {
		err = o.Sum.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType, o.Proc, o.Verbose)
	}
	return
}
