// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	goio "io"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// CallLog records the calls of fake solvers; e.g. "A.SolveStep"
type CallLog struct {
	Calls []string
}

// Add adds a call
func (o *CallLog) Add(name, method string) {
	o.Calls = append(o.Calls, name+"."+method)
}

// Count returns the number of calls of the given full name
func (o *CallLog) Count(call string) (n int) {
	for _, c := range o.Calls {
		if c == call {
			n++
		}
	}
	return
}

// Filter returns the calls whose method is in methods
func (o *CallLog) Filter(methods ...string) (res []string) {
	for _, c := range o.Calls {
		for _, m := range methods {
			if strings.HasSuffix(c, "."+m) {
				res = append(res, c)
				break
			}
		}
	}
	return
}

// FakeMesh holds element areas only
type FakeMesh struct {
	Areas []float64
}

func (o *FakeMesh) NumElements() int                      { return len(o.Areas) }
func (o *FakeMesh) ElementArea(eid int) float64           { return o.Areas[eid] }
func (o *FakeMesh) FunctionsForElements(eids []int) []int { return append([]int{}, eids...) }
func (o *FakeMesh) Copy() Mesh                            { return &FakeMesh{append([]float64{}, o.Areas...)} }

// fakeField implements Field and Refinable, recording calls
type fakeField struct {
	name string   // "A" or "B"
	Log  *CallLog // shared call log

	Res        []float64 // residual norms returned by ExtractLoadVec; the last one is repeated
	Energy     float64   // returned by ExtractScalar
	Norms      []float64 // returned by GlobalNorms
	FailSolve  int       // SolveStep fails at this call (1-based); 0 => never
	FailStage  string    // Refinable method that fails; e.g. "Read"
	Infile     string    // last file read
	Iters      []int     // tp.Iter seen by SolveStep
	MutateIter bool      // SolveStep changes tp.Iter
	OnSolve    func(tp *TimeStep)

	nsolve int // number of SolveStep calls
	ncalc  int // number of ExtractLoadVec calls
}

func (o *fakeField) Name() string { return o.name }

func (o *fakeField) AdvanceStep(tp *TimeStep) error {
	o.Log.Add(o.name, "AdvanceStep")
	return nil
}

func (o *fakeField) SolveStep(tp *TimeStep, standalone bool) error {
	o.Log.Add(o.name, "SolveStep")
	o.nsolve++
	o.Iters = append(o.Iters, tp.Iter)
	if o.MutateIter {
		tp.Iter = 99
	}
	if o.nsolve == o.FailSolve {
		return chk.Err("%s solver failed", o.name)
	}
	if o.OnSolve != nil {
		o.OnSolve(tp)
	}
	return nil
}

func (o *fakeField) PostSolve(tp *TimeStep) error {
	o.Log.Add(o.name, "PostSolve")
	return nil
}

func (o *fakeField) SetMode(mode SolutionMode) error {
	o.Log.Add(o.name, "SetMode")
	return nil
}

func (o *fakeField) AssembleSystem(t float64, sols []la.Vector, newLHS bool) error {
	o.Log.Add(o.name, "AssembleSystem")
	return nil
}

func (o *fakeField) ExtractLoadVec() (la.Vector, error) {
	r := 0.0
	if len(o.Res) > 0 {
		i := o.ncalc
		if i >= len(o.Res) {
			i = len(o.Res) - 1
		}
		r = o.Res[i]
	}
	o.ncalc++
	return la.Vector{r}, nil
}

func (o *fakeField) ExtractScalar() float64 { return o.Energy }
func (o *fakeField) GlobalNorms() []float64 { return o.Norms }

func (o *fakeField) SaveStep(tp *TimeStep, nBlock *int) error {
	o.Log.Add(o.name, "SaveStep")
	*nBlock++
	return nil
}

func (o *fakeField) ClearProperties() { o.Log.Add(o.name, "ClearProperties") }

func (o *fakeField) Read(infile string) error {
	o.Infile = infile
	return o.stage("Read")
}

func (o *fakeField) Preprocess() error       { return o.stage("Preprocess") }
func (o *fakeField) Init(tp *TimeStep) error { return o.stage("Init") }
func (o *fakeField) InitSystem() error       { return o.stage("InitSystem") }
func (o *fakeField) Revert() error           { return o.stage("Revert") }
func (o *fakeField) DumpGeometry(w goio.Writer) error {
	_, err := w.Write([]byte(io.Sf("geometry of %s\n", o.name)))
	return err
}

func (o *fakeField) stage(method string) error {
	o.Log.Add(o.name, method)
	if o.FailStage == method {
		return chk.Err("%s.%s failed", o.name, method)
	}
	return nil
}

// FakeSolid implements Solid
type FakeSolid struct {
	fakeField
	Sols          []la.Vector    // solution vectors
	Msh           Mesh           // mesh
	Te            *TensileEnergy // tensile energy buffer
	Reacts        []float64      // reaction forces
	Forces        []float64      // boundary forces
	CrackPressure bool           // crack faces are loaded
	IterTags      []int          // phase tags of SolveIteration calls
	FailRefine    bool           // Refine fails
	OnRefine      func(req *RefineRequest, sols []la.Vector) error
}

// NewFakeSolid returns a new fake elasticity solver named "A"
func NewFakeSolid(log *CallLog) *FakeSolid {
	o := &FakeSolid{Te: NewTensileEnergy(4)}
	o.name, o.Log = "A", log
	o.Sols = []la.Vector{{1, 2, 3}, {0, 1, 2}}
	o.Msh = &FakeMesh{[]float64{1, 1, 1, 1}}
	return o
}

func (o *FakeSolid) Solutions() []la.Vector { return o.Sols }

func (o *FakeSolid) SetSolutions(sols []la.Vector) error {
	o.Log.Add(o.name, "SetSolutions")
	o.Sols = nil
	for _, s := range sols {
		o.Sols = append(o.Sols, s.GetCopy())
	}
	return nil
}

func (o *FakeSolid) SolveIteration(tp *TimeStep, phase int) (ConvStatus, error) {
	o.Log.Add(o.name, "SolveIteration")
	o.IterTags = append(o.IterTags, phase)
	return OK, nil
}

func (o *FakeSolid) UpdateStrainEnergyDensity(tp *TimeStep) error {
	o.Log.Add(o.name, "UpdateStrainEnergyDensity")
	return nil
}

func (o *FakeSolid) HaveCrackPressure() bool       { return o.CrackPressure }
func (o *FakeSolid) TensileEnergy() *TensileEnergy { return o.Te }
func (o *FakeSolid) BoundaryReactions() []float64  { return o.Reacts }
func (o *FakeSolid) Mesh() Mesh                    { return o.Msh }

func (o *FakeSolid) BoundaryForce(sols []la.Vector, tp *TimeStep) []float64 { return o.Forces }

func (o *FakeSolid) Refine(req *RefineRequest, sols []la.Vector) error {
	o.Log.Add(o.name, "Refine")
	if o.FailRefine {
		return chk.Err("refinement failed")
	}
	if o.OnRefine != nil {
		return o.OnRefine(req, sols)
	}
	return nil
}

// FakePhase implements Phase
type FakePhase struct {
	fakeField
	Sol        la.Vector       // solution vector
	Hist       []float64       // history field
	ENorm      []float64       // element norms (3rd)
	GNorm      float64         // global norm (3rd)
	IC         map[string]bool // initial conditions
	NInitRef   int             // refinements during input parsing
	Te         TensileView     // tensile energy of solid
	Resid      la.Vector       // residual given to SaveResidual
	FailRefine bool            // Refine fails
	OnTransfer func(hist []float64, oldMesh Mesh) ([]float64, error)
}

// NewFakePhase returns a new fake phase-field solver named "B"
func NewFakePhase(log *CallLog) *FakePhase {
	o := &FakePhase{IC: make(map[string]bool)}
	o.name, o.Log = "B", log
	o.Sol = la.Vector{1, 1, 0.5}
	return o
}

func (o *FakePhase) Solution() la.Vector { return o.Sol }

func (o *FakePhase) SetSolution(sol la.Vector) error {
	o.Log.Add(o.name, "SetSolution")
	o.Sol = sol.GetCopy()
	return nil
}

func (o *FakePhase) HistoryField() []float64 { return o.Hist }

func (o *FakePhase) TransferHistory(hist []float64, oldMesh Mesh) (err error) {
	o.Log.Add(o.name, "TransferHistory")
	if o.OnTransfer != nil && oldMesh != nil {
		o.Hist, err = o.OnTransfer(hist, oldMesh)
		return
	}
	o.Hist = append([]float64{}, hist...)
	return
}

func (o *FakePhase) ElementNorms(idx int) ([]float64, float64) {
	if idx != 3 {
		return nil, 0
	}
	return o.ENorm, o.GNorm
}

func (o *FakePhase) HasIC(name string) bool          { return o.IC[name] }
func (o *FakePhase) InitRefine() int                 { return o.NInitRef }
func (o *FakePhase) SetTensileEnergy(te TensileView) { o.Te = te }

func (o *FakePhase) Refine(req *RefineRequest) error {
	o.Log.Add(o.name, "Refine")
	if o.FailRefine {
		return chk.Err("refinement failed")
	}
	return nil
}

func (o *FakePhase) SaveResidual(tp *TimeStep, res la.Vector, nBlock *int) error {
	o.Log.Add(o.name, "SaveResidual")
	o.Resid = res
	return nil
}
