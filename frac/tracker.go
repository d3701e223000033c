// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Residuals holds the residual and energy norms of both fields
type Residuals struct {
	R1 float64 // residual norm of the elasticity equation
	R2 float64 // residual norm of the phase-field equation
	E1 float64 // energy norm of the elasticity equation
	E2 float64 // energy norm of the phase-field equation
}

// R returns the combined residual norm
func (o Residuals) R() float64 { return o.R1 + o.R2 }

// E returns the combined energy norm
func (o Residuals) E() float64 { return o.E1 + o.E2 }

// EnergyTrace holds the energy norms of the staggering cycles of the current step.
// Used for messages only.
type EnergyTrace struct {
	E0 float64 // energy norm of initial staggering cycle
	Ec float64 // energy norm of current staggering cycle
	Ep float64 // energy norm of previous staggering cycle
}

// Update records the energy norm of cycle iter and returns the staggering angle in degrees.
// The angle is not computed for iter == 0. If E0 == Ec the angle is whatever atan2 gives.
func (o *EnergyTrace) Update(iter int, eConv float64) (beta float64, ok bool) {
	if iter == 0 {
		o.E0 = eConv
		o.Ep, o.Ec = 0, 0
		return
	}
	if iter > 1 {
		o.Ep = o.Ec
	} else {
		o.Ep = o.E0
	}
	o.Ec = eConv
	beta = math.Atan2(float64(iter)*(o.Ep-o.Ec), o.E0-o.Ec) * 180.0 / math.Pi
	return beta, true
}

// Tracker computes residual and energy norms of the coupled problem
type Tracker struct {
	Trace    EnergyTrace // energy norms of the staggering cycles
	Residual la.Vector   // residual force vector of the phase-field equation
	Last     Residuals   // norms of the last evaluation
	Verbose  bool        // show messages

	solid Solid // elasticity solver
	phase Phase // phase-field solver
}

// NewTracker returns a new tracker for the given solvers
func NewTracker(solid Solid, phase Phase, verbose bool) *Tracker {
	return &Tracker{solid: solid, phase: phase, Verbose: verbose}
}

// Calc computes the residual and energy norms at the current solutions
func (o *Tracker) Calc(tp *TimeStep) (res Residuals, err error) {

	// residual of the elasticity equation
	err = o.solid.SetMode(ModeRhsOnly)
	if err != nil {
		return res, chk.Err("cannot set rhs-only mode of %s:\n%v", o.solid.Name(), err)
	}
	err = o.solid.AssembleSystem(tp.T, o.solid.Solutions(), false)
	if err != nil {
		return res, chk.Err("cannot assemble %s residual:\n%v", o.solid.Name(), err)
	}
	r1, err := o.solid.ExtractLoadVec()
	if err != nil {
		return res, chk.Err("cannot extract %s residual:\n%v", o.solid.Name(), err)
	}
	res.R1 = r1.Norm()
	res.E1 = o.solid.ExtractScalar()

	// residual of the phase-field equation
	err = o.phase.SetMode(ModeIntForces)
	if err != nil {
		return res, chk.Err("cannot set internal-forces mode of %s:\n%v", o.phase.Name(), err)
	}
	err = o.phase.AssembleSystem(tp.T, []la.Vector{o.phase.Solution()}, false)
	if err != nil {
		return res, chk.Err("cannot assemble %s residual:\n%v", o.phase.Name(), err)
	}
	o.Residual, err = o.phase.ExtractLoadVec()
	if err != nil {
		return res, chk.Err("cannot extract %s residual:\n%v", o.phase.Name(), err)
	}
	res.R2 = o.Residual.Norm()
	res.E2 = o.phase.ExtractScalar()

	o.Last = res
	return
}

// CalcCycle computes the norms after staggering cycle tp.Iter and updates the energy trace
func (o *Tracker) CalcCycle(tp *TimeStep) (res Residuals, err error) {
	res, err = o.Calc(tp)
	if err != nil {
		return
	}
	beta, hasBeta := o.Trace.Update(tp.Iter, res.E())
	if o.Verbose {
		io.Pf("  cycle %d: Res = %g + %g = %g  E = %g + %g = %g", tp.Iter, res.R1, res.R2, res.R(), res.E1, res.E2, res.E())
		if hasBeta {
			io.Pf("  beta=%g", beta)
		}
		io.Pf("\n")
	}
	return
}

// Report computes and prints the norms once; e.g. after a fixed number of cycles
func (o *Tracker) Report(tp *TimeStep) (res Residuals, err error) {
	res, err = o.Calc(tp)
	if err != nil {
		return
	}
	if o.Verbose {
		io.Pf("  Res = %g + %g = %g\n", res.R1, res.R2, res.R())
		if res.E() > 0 {
			io.Pf("    E = %g + %g = %g\n", res.E1, res.E2, res.E())
		}
	}
	return
}
