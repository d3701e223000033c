// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import "github.com/cpmech/gosl/chk"

// SinglePass solves each field once per step (solid then phase). Used with small time
// steps; e.g. in dynamics
type SinglePass[S Solid, P Phase] struct {
	*Coupling[S, P]
}

// Name returns the name of the scheme
func (o *SinglePass[S, P]) Name() string { return "single" }

// SolveStep computes the solution for the current time step
func (o *SinglePass[S, P]) SolveStep(tp *TimeStep) (err error) {
	if tp.Step == 1 && o.S1.HaveCrackPressure() {
		err = o.crackPressure(tp)
		if err != nil {
			return
		}
	}
	tp.Iter = 0
	err = o.solveSolid(tp)
	if err != nil {
		return
	}
	err = o.solvePhase(tp)
	if err != nil {
		return
	}
	res, err := o.Trk.Report(tp)
	if err != nil {
		return chk.Err("cannot compute residuals at step %d:\n%v", tp.Step, err)
	}
	o.record(tp, res)
	return
}
