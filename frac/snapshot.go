// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Snapshot holds the solution state to be transferred onto a refined mesh.
//
//   Sols = {u(t), u(t-dt), ..., c(t)}
//
// i.e. all solution vectors of the elasticity solver followed by the phase-field solution
type Snapshot struct {
	Sols  []la.Vector // solution vectors
	Hist  []float64   // history field of the phase-field solver
	Basis Mesh        // copy of the mesh before refinement; only set if Hist is not empty
}

// TakeSnapshot copies the current state of the solvers
func TakeSnapshot(solid Solid, phase Phase) (o *Snapshot) {
	o = new(Snapshot)
	for _, sol := range solid.Solutions() {
		o.Sols = append(o.Sols, sol.GetCopy())
	}
	o.Sols = append(o.Sols, phase.Solution().GetCopy())
	if hist := phase.HistoryField(); len(hist) > 0 {
		o.Hist = make([]float64, len(hist))
		copy(o.Hist, hist)
		if m := solid.Mesh(); m != nil {
			o.Basis = m.Copy()
		}
	}
	return
}

// SolidSols returns the solution vectors of the elasticity solver
func (o *Snapshot) SolidSols() []la.Vector {
	if len(o.Sols) == 0 {
		return nil
	}
	return o.Sols[:len(o.Sols)-1]
}

// PhaseSol returns the solution vector of the phase-field solver
func (o *Snapshot) PhaseSol() la.Vector {
	if len(o.Sols) == 0 {
		return nil
	}
	return o.Sols[len(o.Sols)-1]
}

// Restore sets the snapshot state into the solvers. The solvers transfer the
// vectors onto their current mesh. The history field is transferred from Basis
func (o *Snapshot) Restore(solid Solid, phase Phase) (err error) {
	if len(o.Sols) > 0 {
		err = solid.SetSolutions(o.SolidSols())
		if err != nil {
			return chk.Err("cannot set %d solution vectors of %s:\n%v", len(o.Sols)-1, solid.Name(), err)
		}
		err = phase.SetSolution(o.PhaseSol())
		if err != nil {
			return chk.Err("cannot set solution vector of %s:\n%v", phase.Name(), err)
		}
	}
	if len(o.Hist) > 0 {
		err = phase.TransferHistory(o.Hist, o.Basis)
		if err != nil {
			return chk.Err("cannot transfer %d history variables of %s:\n%v", len(o.Hist), phase.Name(), err)
		}
	}
	return
}
