// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import "github.com/cpmech/gosl/chk"

// FixedCycle solves the coupled problem with a fixed number of staggering cycles per step:
//
//   predictor:  solid(1) -> strain energy -> phase -> solid(2)
//   cycles:     [phase -> solid(3)] x (NumCycle-1)
//
// The residuals are computed and reported once after the cycles; they are not checked
type FixedCycle[S Solid, P Phase] struct {
	*Coupling[S, P]
	NumCycle int // number of staggering cycles
}

// Name returns the name of the scheme
func (o *FixedCycle[S, P]) Name() string { return "fixed" }

// SolveStep computes the solution for the current time step
func (o *FixedCycle[S, P]) SolveStep(tp *TimeStep) (err error) {

	// first step
	hasIC := o.S2.HasIC("phasefield")
	if tp.Step == 1 {
		if hasIC {
			err = o.initialPhase(tp)
			if err != nil {
				return
			}
			tp.First = false
		} else if o.S1.HaveCrackPressure() {
			err = o.crackPressure(tp)
			if err != nil {
				return
			}
		}
	}

	// cycles
	if tp.Step > 1 || !hasIC {
		err = o.cycles(tp)
		if err != nil {
			return
		}
	}

	// residuals
	res, err := o.Trk.Report(tp)
	if err != nil {
		return chk.Err("cannot compute residuals at step %d:\n%v", tp.Step, err)
	}
	o.record(tp, res)
	return
}

// cycles runs the predictor and the corrector cycles
func (o *FixedCycle[S, P]) cycles(tp *TimeStep) (err error) {

	// predictor for the elasticity problem
	tp.Iter = 0
	err = o.iterateSolid(tp, 1)
	if err != nil {
		return
	}
	err = o.S1.UpdateStrainEnergyDensity(tp)
	if err != nil {
		return chk.Err("cannot update strain energy density of %s:\n%v", o.S1.Name(), err)
	}
	err = o.solvePhase(tp)
	if err != nil {
		return
	}

	// first corrector
	tp.Iter++
	err = o.iterateSolid(tp, 2)
	if err != nil {
		return
	}

	// remaining cycles
	for tp.Iter = 1; tp.Iter < o.NumCycle; tp.Iter++ {
		err = o.solvePhase(tp)
		if err != nil {
			return
		}
		err = o.iterateSolid(tp, 3)
		if err != nil {
			return
		}
	}

	// finalise step
	tp.First = false
	err = o.S1.PostSolve(tp)
	if err != nil {
		return chk.Err("cannot post-process %s:\n%v", o.S1.Name(), err)
	}
	err = o.S2.PostSolve(tp)
	if err != nil {
		return chk.Err("cannot post-process %s:\n%v", o.S2.Name(), err)
	}
	return
}

// iterateSolid performs one iteration of the elasticity problem; phase = 1 (predictor), 2 or 3 (correctors)
func (o *FixedCycle[S, P]) iterateSolid(tp *TimeStep, phase int) (err error) {
	status, err := o.S1.SolveIteration(tp, phase)
	if err != nil {
		return chk.Err("%s iteration (phase %d) failed at step %d, cycle %d:\n%v", o.S1.Name(), phase, tp.Step, tp.Iter, err)
	}
	if status.Failed() {
		return chk.Err("%s iteration (phase %d) failed at step %d, cycle %d with status %v", o.S1.Name(), phase, tp.Step, tp.Iter, status)
	}
	return
}
