// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	goio "io"

	"github.com/cpmech/gosl/la"
)

// SolutionMode defines what the element assembly computes
type SolutionMode int

// solution modes
const (
	ModeStatic    SolutionMode = iota // tangent matrix and right-hand side
	ModeRhsOnly                       // right-hand side only
	ModeIntForces                     // internal forces only
)

// Field defines the operations shared by the elasticity and the phase-field solvers.
// All calls are synchronous; the staggering never issues two calls on the same field at once.
type Field interface {
	Name() string                                                  // name of the field; used in messages
	AdvanceStep(tp *TimeStep) error                                // prepares the field for a new step
	SolveStep(tp *TimeStep, standalone bool) error                 // solves the nonlinear equations of the current step
	PostSolve(tp *TimeStep) error                                  // finalises step-local state
	SetMode(mode SolutionMode) error                               // sets the assembly mode
	AssembleSystem(t float64, sols []la.Vector, newLHS bool) error // assembles the linear system
	ExtractLoadVec() (la.Vector, error)                            // returns the assembled right-hand side vector
	ExtractScalar() float64                                        // returns the energy-like scalar of the last assembly
	GlobalNorms() []float64                                        // returns the global norms of the last converged step
	SaveStep(tp *TimeStep, nBlock *int) error                      // saves the converged results
}

// Refinable defines the operations needed to re-initialise a field on a refined mesh
type Refinable interface {
	ClearProperties()                 // clears properties that were parsed from the input file
	Read(infile string) error         // parses the input file
	Preprocess() error                // sets up the equation system on the current mesh
	Init(tp *TimeStep) error          // initialises integrands and solution vectors
	InitSystem() error                // allocates the linear system
	Revert() error                    // discards the last refinement, restoring the previous mesh and setup
	DumpGeometry(w goio.Writer) error // writes the current geometry
}

// Solid defines the elasticity solver (field A)
type Solid interface {
	Field
	Refinable
	Solutions() []la.Vector                                     // current and previous solution vectors
	SetSolutions(sols []la.Vector) error                        // sets solution vectors (transferred onto the current mesh)
	SolveIteration(tp *TimeStep, phase int) (ConvStatus, error) // performs one predictor (1) or corrector (2, 3) iteration
	UpdateStrainEnergyDensity(tp *TimeStep) error               // updates the strain energy density driving the phase field
	HaveCrackPressure() bool                                    // tells whether the crack faces are pressure loaded
	TensileEnergy() *TensileEnergy                              // integration point tensile energy buffer (owned)
	BoundaryReactions() []float64                               // reaction forces
	BoundaryForce(sols []la.Vector, tp *TimeStep) []float64     // external boundary forces
	Mesh() Mesh                                                 // the mesh shared with the phase field
	Refine(req *RefineRequest, sols []la.Vector) error          // refines the mesh replacing the items of sols by the transferred vectors
}

// Phase defines the phase-field solver (field B)
type Phase interface {
	Field
	Refinable
	Solution() la.Vector                                         // current solution vector
	SetSolution(sol la.Vector) error                             // sets the solution vector (transferred onto the current mesh)
	HistoryField() []float64                                     // history field at integration points
	TransferHistory(hist []float64, oldMesh Mesh) error          // transfers a history field from an old mesh; nil => hist is on the current mesh
	ElementNorms(idx int) (eNorm []float64, gNorm float64)       // element norms with 1-based index and corresponding global norm
	HasIC(name string) bool                                      // tells whether an initial condition was given for a field
	InitRefine() int                                             // number of refinements performed during input parsing
	SetTensileEnergy(te TensileView)                             // read-only access to the solid's tensile energy
	Refine(req *RefineRequest) error                             // refines the mesh
	SaveResidual(tp *TimeStep, res la.Vector, nBlock *int) error // saves the residual of the last staggering cycle
}

// Mesh defines the mesh (basis) operations used by the refinement
type Mesh interface {
	NumElements() int                      // number of elements
	ElementArea(eid int) float64           // area of element eid
	FunctionsForElements(eids []int) []int // basis functions with support on the given elements
	Copy() Mesh                            // independent copy of the mesh
}

// RefineRequest holds data for refining a mesh
type RefineRequest struct {
	Options  []int // refinement options: {beta, multiplicity, strategy, symmetry, grading}
	Elements []int // basis functions to refine
}

// NewRefineRequest returns a request with the default refinement options
func NewRefineRequest(functions []int) *RefineRequest {
	return &RefineRequest{
		Options:  []int{10, 1, 2, 0, 1},
		Elements: functions,
	}
}
