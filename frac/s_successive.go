// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SuccessiveIter solves the coupled problem with successive iterations (staggering cycles)
// until the sum of the residual norms of both equations is below a tolerance
type SuccessiveIter[S Solid, P Phase] struct {
	*Coupling[S, P]
	Tol      float64 // residual norm tolerance. negative => accept solution after MaxCycle cycles
	MaxCycle int     // max number of staggering cycles
}

// Name returns the name of the scheme
func (o *SuccessiveIter[S, P]) Name() string { return "si" }

// SolveStep computes the solution for the current time step
func (o *SuccessiveIter[S, P]) SolveStep(tp *TimeStep) (err error) {

	// first step
	solidFirst := true
	if tp.Step == 1 {

		// only solve the elasticity problem if an initial phase field is given
		if o.S2.HasIC("phasefield") {
			err = o.initialPhase(tp)
			if err != nil {
				return
			}
			var status ConvStatus
			status, err = o.CheckConvergence(tp, OK, OK)
			if err != nil {
				return
			}
			if status < OK {
				return chk.Err("initial step with given phase field failed with status %v", status)
			}
			return nil
		}

		// start by solving the phase field
		if o.S1.HaveCrackPressure() {
			err = o.crackPressure(tp)
			if err != nil {
				return
			}
		}

	} else {
		// solve the phase-field equation first, if an initial field is given
		solidFirst = !o.S2.HasIC("phasefield")
	}

	// staggering cycles
	for tp.Iter = 0; ; tp.Iter++ {
		s1, s2, errCycle := o.cycle(tp, solidFirst)
		status, err := o.CheckConvergence(tp, s1, s2)
		if errCycle != nil {
			return errCycle
		}
		if err != nil {
			return err
		}
		switch status {
		case Converged:
			return nil
		case OK:
			continue
		}
		return chk.Err("staggering cycles failed at step %d with status %v", tp.Step, status)
	}
}

// cycle performs one staggering cycle
func (o *SuccessiveIter[S, P]) cycle(tp *TimeStep, solidFirst bool) (s1, s2 ConvStatus, err error) {
	s1, s2 = OK, OK
	if solidFirst {
		if err = o.solveSolid(tp); err != nil {
			return Failure, s2, err
		}
		if err = o.solvePhase(tp); err != nil {
			return s1, Failure, err
		}
		return
	}
	if err = o.solvePhase(tp); err != nil {
		return s1, Failure, err
	}
	if err = o.solveSolid(tp); err != nil {
		return Failure, s2, err
	}
	return
}

// CheckConvergence checks whether the staggering cycles have converged.
// An error is returned if the residuals cannot be computed or with status Diverged
func (o *SuccessiveIter[S, P]) CheckConvergence(tp *TimeStep, status1, status2 ConvStatus) (status ConvStatus, err error) {

	// field statuses
	if w := worst(status1, status2); w.Failed() {
		return w, nil
	}

	// residuals
	res, err := o.Trk.CalcCycle(tp)
	if err != nil {
		return Failure, chk.Err("cannot compute residuals at step %d, cycle %d:\n%v", tp.Step, tp.Iter, err)
	}
	o.record(tp, res)

	// check
	rConv := res.R()
	switch {
	case rConv < math.Abs(o.Tol):
		return Converged, nil
	case tp.Iter < o.MaxCycle:
		return OK, nil
	case o.Tol < 0:
		return Converged, nil // continue after maximum number of cycles
	}
	if o.Verbose {
		io.Pfred("did not converge in %d staggering cycles, bailing..\n", o.MaxCycle)
	}
	return Diverged, chk.Err("did not converge in %d staggering cycles: Res = %g > %g", o.MaxCycle, rConv, o.Tol)
}
