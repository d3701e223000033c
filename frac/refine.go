// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	goio "io"
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// RefineStage defines the stage of the mesh adaptation pipeline
type RefineStage int

// refinement stages. The values are the codes returned by AdaptMesh on failure
const (
	StageMesh       RefineStage = -999 // mesh is not available
	StageIndicator  RefineStage = -1   // refinement indicators are missing
	StageRefine     RefineStage = -2   // refinement of the mesh
	StageRead       RefineStage = -3   // parsing of input file
	StagePreprocess RefineStage = -4   // set up of equation systems
	StageInit       RefineStage = -5   // initialisation of integrands
	StageInitSystem RefineStage = -6   // allocation of linear systems
	StageTransfer   RefineStage = -7   // transfer of solutions onto the new mesh
)

// Code returns the integer code of the stage
func (o RefineStage) Code() int { return int(o) }

// String returns the name of the stage
func (o RefineStage) String() string {
	switch o {
	case StageMesh:
		return "mesh"
	case StageIndicator:
		return "indicator"
	case StageRefine:
		return "refine"
	case StageRead:
		return "read"
	case StagePreprocess:
		return "preprocess"
	case StageInit:
		return "init"
	case StageInitSystem:
		return "initsystem"
	case StageTransfer:
		return "transfer"
	}
	return "unknown"
}

// RefineError is returned by AdaptMesh when a stage of the pipeline fails
type RefineError struct {
	Stage RefineStage // failed stage
	Err   error       // cause
}

// Error returns the error message
func (o *RefineError) Error() string {
	return io.Sf("mesh adaptation failed at stage %q (code %d):\n%v", o.Stage.String(), o.Stage.Code(), o.Err)
}

// Unwrap returns the cause
func (o *RefineError) Unwrap() error { return o.Err }

// Selection holds the elements selected for refinement
type Selection struct {
	Elements []int   // selected elements, by increasing indicator
	Emin     float64 // indicator threshold
	Emax     int     // max number of elements to refine
	Lowest   int     // element with the lowest indicator
	Highest  int     // element with the highest indicator
}

// SelectElements selects the elements to refine. The elements are visited by increasing
// indicator (eNorm) and the walk stops at the first element above emin or when emax elements
// were selected. Elements with area(eid) <= amin are skipped
//  Input:
//   eNorm   -- element indicators
//   gNorm   -- global norm corresponding to eNorm
//   beta    -- percentage of elements to refine. negative => no limit
//   minFrac -- indicator threshold. negative => relative to gNorm/sqrt(nel)
//   amin    -- minimum element area
//   area    -- area of elements
func SelectElements(eNorm []float64, gNorm, beta, minFrac, amin float64, area func(eid int) float64) (o Selection) {
	n := len(eNorm)
	if n == 0 {
		return
	}
	idx := utl.IntRange(n)
	sort.SliceStable(idx, func(i, j int) bool { return eNorm[idx[i]] < eNorm[idx[j]] })
	o.Lowest, o.Highest = idx[0], idx[n-1]
	o.Emin = minFrac
	if minFrac < 0 {
		o.Emin = -minFrac * gNorm / math.Sqrt(float64(n))
	}
	o.Emax = n
	if beta >= 0 {
		o.Emax = int(float64(n) * beta / 100.0)
	}
	for _, eid := range idx {
		if eNorm[eid] > o.Emin || len(o.Elements) >= o.Emax {
			break
		}
		if area(eid) > amin+1e-12 {
			o.Elements = append(o.Elements, eid)
		}
	}
	return
}

// InitialRefine refines the mesh on the initial configuration by solving the phase field
// and adapting the mesh until no more elements are selected. Nothing is done if the mesh
// was refined nref times during input parsing or if an initial phase field is given
func (o *Driver[S, P]) InitialRefine(beta, minFrac float64, nref int) (err error) {
	if o.S2.InitRefine() >= nref {
		return
	}
	if o.S2.HasIC("phasefield") {
		return
	}
	var step0 TimeStep
	nnew := 1
	for step0.Iter = 0; nnew > 0; step0.Iter++ {
		err = o.S2.SolveStep(&step0, true)
		if err != nil {
			return chk.Err("%s failed during initial refinement %d:\n%v", o.S2.Name(), step0.Iter, err)
		}
		nnew, err = o.AdaptMesh(beta, minFrac, nref)
		if err != nil {
			return chk.Err("initial refinement %d failed:\n%v", step0.Iter, err)
		}
	}
	return
}

// MinElementArea returns the area of the smallest element of the mesh
func MinElementArea(msh Mesh) (amin float64) {
	amin = msh.ElementArea(0)
	for e := 1; e < msh.NumElements(); e++ {
		amin = math.Min(amin, msh.ElementArea(e))
	}
	return
}

// AdaptMesh refines the elements with the lowest phase-field values and transfers the
// solutions and the history field onto the new mesh. It returns the number of refined
// elements. On failure, the code of the failed stage is returned with a *RefineError and
// the solvers are reverted to the previous mesh and state
func (o *Driver[S, P]) AdaptMesh(beta, minFrac float64, nref int) (nrefined int, err error) {

	// mesh
	msh := o.S1.Mesh()
	if msh == nil || msh.NumElements() < 1 {
		return o.refineFailed(StageMesh, chk.Err("mesh of %s is not available", o.S1.Name()))
	}

	// refinement indicators
	eNorm, gNorm := o.S2.ElementNorms(3)
	if len(eNorm) == 0 {
		return o.refineFailed(StageIndicator, chk.Err("missing refinement indicators, expected as the 3rd element norm"))
	}

	// minimum element area: finest element divided by 4^nref
	if o.aMin <= 0 {
		redMax := math.Pow(2, float64(nref))
		o.aMin = MinElementArea(msh) / (redMax * redMax)
	}

	// select elements
	sel := SelectElements(eNorm, gNorm, beta, minFrac, o.aMin, msh.ElementArea)
	if o.Verbose {
		io.Pf("\n  Lowest element: %8d    |c| = %g\n", sel.Lowest, eNorm[sel.Lowest])
		io.Pf("  Highest element:%8d    |c| = %g\n", sel.Highest, eNorm[sel.Highest])
		io.Pf("  Minimum |c|-value for refinement: %g\n", sel.Emin)
		io.Pf("  Minimum element area: %g\n", o.aMin)
	}
	if len(sel.Elements) == 0 {
		return
	}
	ne := len(sel.Elements)
	if o.Verbose {
		io.Pf("  Elements to refine: %d (|c| = [%g,%g])\n\n", ne, eNorm[sel.Elements[0]], eNorm[sel.Elements[ne-1]])
	}

	// save state; the solid transforms the working copies of the solutions
	snap := TakeSnapshot(o.S1, o.S2)
	work := &Snapshot{Hist: snap.Hist, Basis: snap.Basis}
	for _, sol := range snap.Sols {
		work.Sols = append(work.Sols, sol.GetCopy())
	}

	// refine
	req := NewRefineRequest(msh.FunctionsForElements(sel.Elements))
	err = o.S1.Refine(req, work.Sols)
	if err != nil {
		return o.refineFailed(StageRefine, chk.Err("cannot refine %s:\n%v", o.S1.Name(), err))
	}
	err = o.S2.Refine(req)
	if err != nil {
		return o.rollback(snap, false, StageRefine, chk.Err("cannot refine %s:\n%v", o.S2.Name(), err))
	}

	// re-initialise solvers on the new mesh
	o.S1.ClearProperties()
	o.S2.ClearProperties()
	for _, f := range []Refinable{o.S1, o.S2} {
		if err = f.Read(o.Infile); err != nil {
			return o.rollback(snap, true, StageRead, err)
		}
	}
	for _, f := range []Refinable{o.S1, o.S2} {
		if err = f.Preprocess(); err != nil {
			return o.rollback(snap, true, StagePreprocess, err)
		}
	}
	for _, f := range []Refinable{o.S1, o.S2} {
		if err = f.Init(new(TimeStep)); err != nil {
			return o.rollback(snap, true, StageInit, err)
		}
	}
	for _, f := range []Refinable{o.S1, o.S2} {
		if err = f.InitSystem(); err != nil {
			return o.rollback(snap, true, StageInitSystem, err)
		}
	}

	// transfer solutions
	if o.Verbose && len(work.Sols) > 1 {
		io.Pf("\nTransferring %dx%d solution variables to new mesh for %s", len(work.Sols)-1, len(work.Sols[0]), o.S1.Name())
		io.Pf("\nTransferring %d solution variables to new mesh for %s", len(work.PhaseSol()), o.S2.Name())
		if len(work.Hist) > 0 {
			io.Pf("\nTransferring %d history variables to new mesh for %s", len(work.Hist), o.S2.Name())
		}
		io.Pf("\n")
	}
	err = work.Restore(o.S1, o.S2)
	if err != nil {
		return o.rollback(snap, true, StageTransfer, err)
	}
	return ne, nil
}

// DumpMesh writes the current geometry of the phase-field solver
func (o *Driver[S, P]) DumpMesh(w goio.Writer) (err error) {
	err = o.S2.DumpGeometry(w)
	if err != nil {
		return chk.Err("cannot dump geometry of %s:\n%v", o.S2.Name(), err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// refineFailed returns the code and error of a failed stage
func (o *Driver[S, P]) refineFailed(stage RefineStage, cause error) (int, error) {
	if o.Verbose {
		io.Pfred("mesh adaptation failed at stage %q\n", stage.String())
	}
	return stage.Code(), &RefineError{Stage: stage, Err: cause}
}

// rollback reverts the refined solvers to the previous mesh and restores the saved state
func (o *Driver[S, P]) rollback(snap *Snapshot, phaseRefined bool, stage RefineStage, cause error) (int, error) {
	if err := o.S1.Revert(); err != nil {
		cause = chk.Err("%v\ncannot revert %s:\n%v", cause, o.S1.Name(), err)
	}
	if phaseRefined {
		if err := o.S2.Revert(); err != nil {
			cause = chk.Err("%v\ncannot revert %s:\n%v", cause, o.S2.Name(), err)
		}
	}
	snap.Basis = nil
	if err := snap.Restore(o.S1, o.S2); err != nil {
		cause = chk.Err("%v\ncannot restore state:\n%v", cause, err)
	}
	return o.refineFailed(stage, cause)
}
