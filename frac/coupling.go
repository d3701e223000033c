// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"github.com/cpmech/gofrac/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Scheme implements the staggering between the elasticity and phase-field solvers
// within one time step
type Scheme interface {
	Name() string                 // name of scheme; e.g. "si"
	SolveStep(tp *TimeStep) error // solves the coupled problem for the current time step
}

// Coupling holds the two solvers and the data shared by all staggering schemes
type Coupling[S Solid, P Phase] struct {
	S1      S        // elasticity solver
	S2      P        // phase-field solver
	Trk     *Tracker // residual and energy norms
	Sum     *Summary // summary with residuals of all cycles; may be nil
	Verbose bool     // show messages
}

// NewCoupling returns a new coupling of the given solvers
func NewCoupling[S Solid, P Phase](s1 S, s2 P, verbose bool) *Coupling[S, P] {
	return &Coupling[S, P]{
		S1:      s1,
		S2:      s2,
		Trk:     NewTracker(s1, s2, verbose),
		Verbose: verbose,
	}
}

// NewScheme allocates the staggering scheme named in dat.Type
func NewScheme[S Solid, P Phase](c *Coupling[S, P], dat *inp.StaggerData) (Scheme, error) {
	switch dat.Type {
	case "si":
		return &SuccessiveIter[S, P]{Coupling: c, Tol: dat.Tol, MaxCycle: dat.MaxCycle}, nil
	case "fixed":
		return &FixedCycle[S, P]{Coupling: c, NumCycle: dat.NumCycle}, nil
	case "single":
		return &SinglePass[S, P]{Coupling: c}, nil
	}
	return nil, chk.Err("cannot find staggering scheme named %q", dat.Type)
}

// solveSolid solves the elasticity problem as part of a staggering cycle
func (o *Coupling[S, P]) solveSolid(tp *TimeStep) (err error) {
	err = o.S1.SolveStep(tp, false)
	if err != nil {
		return chk.Err("%s failed at step %d, cycle %d:\n%v", o.S1.Name(), tp.Step, tp.Iter, err)
	}
	return
}

// solvePhase solves the phase-field problem as part of a staggering cycle
func (o *Coupling[S, P]) solvePhase(tp *TimeStep) (err error) {
	err = o.S2.SolveStep(tp, false)
	if err != nil {
		return chk.Err("%s failed at step %d, cycle %d:\n%v", o.S2.Name(), tp.Step, tp.Iter, err)
	}
	return
}

// initialPhase starts the first step from a given initial phase field: the phase field is
// post-processed and the elasticity problem is solved once. The elasticity solver gets a
// copy of tp such that the cycle counter is not changed
func (o *Coupling[S, P]) initialPhase(tp *TimeStep) (err error) {
	if o.Verbose {
		io.Pf("\n  Initial phase field...\n")
	}
	err = o.S2.PostSolve(tp)
	if err != nil {
		return chk.Err("cannot post-process initial phase field:\n%v", err)
	}
	myTp := *tp
	err = o.S1.SolveStep(&myTp, true)
	if err != nil {
		return chk.Err("%s failed with initial phase field:\n%v", o.S1.Name(), err)
	}
	return
}

// crackPressure starts the first step by solving the phase field when the crack faces are loaded
func (o *Coupling[S, P]) crackPressure(tp *TimeStep) (err error) {
	err = o.S2.SolveStep(tp, false)
	if err != nil {
		return chk.Err("%s failed when solving the phase field first:\n%v", o.S2.Name(), err)
	}
	return
}

// record saves the residual of the current cycle in the summary
func (o *Coupling[S, P]) record(tp *TimeStep, res Residuals) {
	if o.Sum != nil {
		o.Sum.Append(tp.Iter == 0, res.R())
	}
}
