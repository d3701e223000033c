// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_select01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("select01. selection of elements")

	// indicators in decreasing order of element ids
	n := 100
	eNorm := make([]float64, n)
	for i := 0; i < n; i++ {
		eNorm[i] = (float64(n-1-i) + 0.5) / 1000.0
	}
	unit := func(eid int) float64 { return 1 }

	// relative threshold: emin = 0.05 * 10 / sqrt(100) = 0.05. no limit on the number of elements
	sel := SelectElements(eNorm, 10, -1, -0.05, 0.1, unit)
	chk.Float64(tst, "emin", 1e-15, sel.Emin, 0.05)
	chk.IntAssert(sel.Emax, n)
	chk.IntAssert(sel.Lowest, 99)
	chk.IntAssert(sel.Highest, 0)
	correct := make([]int, 50)
	for i := range correct {
		correct[i] = 99 - i
	}
	chk.Ints(tst, "elements", sel.Elements, correct)
	for _, eid := range sel.Elements {
		if eNorm[eid] > 0.05 {
			tst.Errorf("element %d with indicator %g > emin must not be selected", eid, eNorm[eid])
		}
	}

	// absolute threshold gives the same selection
	sel = SelectElements(eNorm, 10, -1, 0.05, 0.1, unit)
	chk.Float64(tst, "emin", 1e-15, sel.Emin, 0.05)
	chk.Ints(tst, "elements", sel.Elements, correct)

	// at most 10% of the elements
	sel = SelectElements(eNorm, 10, 10, 0.05, 0.1, unit)
	chk.IntAssert(sel.Emax, 10)
	chk.Ints(tst, "elements", sel.Elements, correct[:10])

	// elements at the minimum area are skipped
	sel = SelectElements(eNorm, 10, -1, 0.05, 0.1, func(eid int) float64 {
		if eid%2 == 0 {
			return 0.1
		}
		return 1
	})
	chk.IntAssert(len(sel.Elements), 25)
	for _, eid := range sel.Elements {
		if eid%2 == 0 {
			tst.Errorf("element %d at minimum area must not be selected", eid)
		}
	}

	// empty
	sel = SelectElements(nil, 10, -1, 0.05, 0.1, unit)
	chk.IntAssert(len(sel.Elements), 0)
}

func Test_adapt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt01. missing indicator and area floor")

	// missing indicator
	d, log := newTestDriver(tst, "si")
	n, err := d.AdaptMesh(-1, 0.05, 2)
	chk.IntAssert(n, -1)
	var rerr *RefineError
	if !errors.As(err, &rerr) {
		tst.Errorf("error must be a RefineError: %v", err)
		return
	}
	if rerr.Stage != StageIndicator {
		tst.Errorf("stage is incorrect: %v", rerr.Stage)
	}
	io.Pforan("err = %v\n", err)
	chk.IntAssert(len(log.Filter("Refine", "SetSolutions", "SetSolution", "Revert")), 0)
	chk.Float64(tst, "sol", 1e-17, d.S1.Sols[0][2], 3)

	// all elements at the area floor: nref = 0 => amin = area of finest element
	d, log = newTestDriver(tst, "si")
	d.S2.ENorm = []float64{0, 0.01, 0.02, 0.03}
	d.S2.GNorm = 1
	n, err = d.AdaptMesh(-1, 0.05, 0)
	if err != nil {
		tst.Errorf("AdaptMesh failed:\n%v", err)
		return
	}
	chk.IntAssert(n, 0)
	chk.IntAssert(len(log.Filter("Refine", "SetSolutions", "SetSolution", "Revert")), 0)

	// missing mesh
	d, _ = newTestDriver(tst, "si")
	d.S1.Msh = nil
	n, err = d.AdaptMesh(-1, 0.05, 2)
	chk.IntAssert(n, StageMesh.Code())
	if err == nil {
		tst.Errorf("AdaptMesh must fail without mesh")
	}
}

func Test_adapt04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt04. area floor of non-uniform mesh")

	// finest element: 0.25 => amin = 0.25 / 4 = 0.0625
	msh := &FakeMesh{[]float64{1, 0.25, 1, 0.25}}
	chk.Float64(tst, "amin", 1e-17, MinElementArea(msh), 0.25)
	d, log := newTestDriver(tst, "si")
	d.S1.Msh = msh
	d.S2.ENorm = []float64{0, 0.01, 0.02, 0.03}
	d.S2.GNorm = 1
	var req *RefineRequest
	d.S1.OnRefine = func(r *RefineRequest, sols []la.Vector) error {
		req = r
		return nil
	}
	n, err := d.AdaptMesh(-1, 0.05, 1)
	if err != nil {
		tst.Errorf("AdaptMesh failed:\n%v", err)
		return
	}
	chk.Float64(tst, "aMin", 1e-17, d.aMin, 0.0625)
	chk.IntAssert(n, 4)
	chk.Ints(tst, "functions", req.Elements, []int{0, 1, 2, 3})
	chk.IntAssert(log.Count("A.Refine"), 1)
}

func Test_adapt02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt02. refinement pipeline")

	d, log := newTestDriver(tst, "si")
	d.Infile = "senTension.xinp"
	d.S2.ENorm = []float64{0.01, 0.5, 0.02, 0.9}
	d.S2.GNorm = 1
	d.S2.Hist = []float64{1, 2, 3, 4}
	var req *RefineRequest
	d.S1.OnRefine = func(r *RefineRequest, sols []la.Vector) error {
		req = r
		for i := range sols {
			sols[i] = append(sols[i], 9)
		}
		return nil
	}

	n, err := d.AdaptMesh(-1, 0.05, 2)
	if err != nil {
		tst.Errorf("AdaptMesh failed:\n%v", err)
		return
	}
	chk.IntAssert(n, 2)
	chk.Ints(tst, "functions", req.Elements, []int{0, 2})
	chk.Ints(tst, "options", req.Options, []int{10, 1, 2, 0, 1})
	checkCalls(tst, "pipeline", log.Filter("Refine", "ClearProperties", "Read", "Preprocess", "Init", "InitSystem", "SetSolutions", "SetSolution", "TransferHistory", "Revert"), []string{
		"A.Refine", "B.Refine",
		"A.ClearProperties", "B.ClearProperties",
		"A.Read", "B.Read",
		"A.Preprocess", "B.Preprocess",
		"A.Init", "B.Init",
		"A.InitSystem", "B.InitSystem",
		"A.SetSolutions", "B.SetSolution", "B.TransferHistory",
	})
	if d.S1.Infile != "senTension.xinp" || d.S2.Infile != "senTension.xinp" {
		tst.Errorf("input file is incorrect: %q, %q", d.S1.Infile, d.S2.Infile)
	}

	// transferred solutions
	chk.IntAssert(len(d.S1.Sols), 2)
	chk.Ints(tst, "len", []int{len(d.S1.Sols[0]), len(d.S1.Sols[1]), len(d.S2.Sol)}, []int{4, 4, 4})
	chk.Float64(tst, "u0", 1e-17, d.S1.Sols[0][3], 9)
	chk.Float64(tst, "c", 1e-17, d.S2.Sol[2], 0.5)
	chk.Float64(tst, "c", 1e-17, d.S2.Sol[3], 9)
	chk.Float64(tst, "h", 1e-17, d.S2.Hist[3], 4)

	// dump
	var buf bytes.Buffer
	err = d.DumpMesh(&buf)
	if err != nil {
		tst.Errorf("DumpMesh failed:\n%v", err)
		return
	}
	if !strings.Contains(buf.String(), "geometry of B") {
		tst.Errorf("geometry is incorrect: %q", buf.String())
	}
}

func Test_adapt03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt03. rollback")

	setup := func() (*Driver[*FakeSolid, *FakePhase], *CallLog) {
		d, log := newTestDriver(tst, "si")
		d.S2.ENorm = []float64{0.01, 0.5, 0.02, 0.9}
		d.S2.GNorm = 1
		d.S1.OnRefine = func(r *RefineRequest, sols []la.Vector) error {
			for i := range sols {
				sols[i] = append(sols[i], 9)
			}
			return nil
		}
		return d, log
	}

	// failures after refinement of both fields
	for _, stage := range []RefineStage{StageRead, StagePreprocess, StageInit, StageInitSystem} {
		d, log := setup()
		name := map[RefineStage]string{StageRead: "Read", StagePreprocess: "Preprocess", StageInit: "Init", StageInitSystem: "InitSystem"}[stage]
		d.S2.FailStage = name
		n, err := d.AdaptMesh(-1, 0.05, 2)
		chk.IntAssert(n, stage.Code())
		var rerr *RefineError
		if !errors.As(err, &rerr) || rerr.Stage != stage {
			tst.Errorf("error must be a RefineError at stage %v: %v", stage, err)
			return
		}
		io.Pforan("err = %v\n", err)
		chk.IntAssert(log.Count("A.Revert"), 1)
		chk.IntAssert(log.Count("B.Revert"), 1)
		chk.IntAssert(len(d.S1.Sols[0]), 3)
		chk.Float64(tst, "u0", 1e-17, d.S1.Sols[0][2], 3)
		chk.IntAssert(len(d.S2.Sol), 3)
	}

	// failure of the phase-field refinement
	d, log := setup()
	d.S2.FailRefine = true
	n, err := d.AdaptMesh(-1, 0.05, 2)
	chk.IntAssert(n, StageRefine.Code())
	if err == nil {
		tst.Errorf("AdaptMesh must fail")
	}
	chk.IntAssert(log.Count("A.Revert"), 1)
	chk.IntAssert(log.Count("B.Revert"), 0)
	chk.IntAssert(len(d.S1.Sols[1]), 3)

	// failure of the elasticity refinement
	d, log = setup()
	d.S1.FailRefine = true
	n, _ = d.AdaptMesh(-1, 0.05, 2)
	chk.IntAssert(n, StageRefine.Code())
	chk.IntAssert(log.Count("B.Refine"), 0)
	chk.IntAssert(len(log.Filter("Revert", "SetSolutions")), 0)
}

func Test_initref01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("initref01. initial refinement")

	// sufficiently refined during input parsing
	d, log := newTestDriver(tst, "si")
	d.S2.NInitRef = 2
	err := d.InitialRefine(-1, 0.05, 2)
	if err != nil {
		tst.Errorf("InitialRefine failed:\n%v", err)
		return
	}
	chk.IntAssert(len(log.Calls), 0)

	// initial phase field
	d, log = newTestDriver(tst, "si")
	d.S2.IC["phasefield"] = true
	err = d.InitialRefine(-1, 0.05, 2)
	if err != nil {
		tst.Errorf("InitialRefine failed:\n%v", err)
		return
	}
	chk.IntAssert(len(log.Calls), 0)

	// refine until the minimum area is reached
	d, log = newTestDriver(tst, "si")
	d.S2.ENorm = []float64{0.01, 0.5, 0.02, 0.9}
	d.S2.GNorm = 1
	d.S1.OnRefine = func(r *RefineRequest, sols []la.Vector) error {
		d.S1.Msh = &FakeMesh{[]float64{0.25, 0.25, 0.25, 0.25}}
		return nil
	}
	err = d.InitialRefine(-1, 0.05, 1)
	if err != nil {
		tst.Errorf("InitialRefine failed:\n%v", err)
		return
	}
	chk.IntAssert(log.Count("B.SolveStep"), 2)
	chk.IntAssert(log.Count("A.Refine"), 1)
	chk.Ints(tst, "iters", d.S2.Iters, []int{0, 1})

	// missing indicators
	d, _ = newTestDriver(tst, "si")
	err = d.InitialRefine(-1, 0.05, 1)
	if err == nil {
		tst.Errorf("InitialRefine must fail without indicators")
	}
	io.Pforan("err = %v\n", err)
}
