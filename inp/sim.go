// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc       string `json:"desc" yaml:"desc"`             // description of simulation
	Infile     string `json:"infile" yaml:"infile"`         // input file of the field solvers; re-read after mesh refinement
	DirOut     string `json:"dirout" yaml:"dirout"`         // directory for output; e.g. /tmp/gofrac
	Encoder    string `json:"encoder" yaml:"encoder"`       // encoder name; e.g. "gob" "json"
	Summary    bool   `json:"summary" yaml:"summary"`       // save summary with staggering residuals
	Checkpoint bool   `json:"checkpoint" yaml:"checkpoint"` // save solutions and history before each mesh adaptation
}

// StopData holds the reaction force stop criterion
type StopData struct {
	Rcomp int     `json:"rcomp" yaml:"rcomp"` // 1-based reaction force component; 0 => no stop criterion
	Force float64 `json:"force" yaml:"force"` // stop when |RF(rcomp)| is less than this value
}

// StaggerData holds data for the staggering between the elasticity and phase-field solvers
type StaggerData struct {
	Type       string    `json:"type" yaml:"type"`             // staggering scheme: {si, fixed, single} => successive iterations, fixed number of cycles, one pass
	Tol        float64   `json:"tol" yaml:"tol"`               // residual norm tolerance for the staggering cycles. negative => accept after max cycles
	MaxCycle   int       `json:"max" yaml:"max"`               // max number of staggering cycles (si)
	NumCycle   int       `json:"ncycle" yaml:"ncycle"`         // number of staggering cycles (fixed)
	Stop       *StopData `json:"stop" yaml:"stop"`             // stop criterion
	EnergyFile string    `json:"energyfile" yaml:"energyfile"` // file for global energy output
	ShowR      bool      `json:"showr" yaml:"showr"`           // show residuals of staggering cycles
}

// RefineData holds data for adaptive mesh refinement
type RefineData struct {
	Beta    float64 `json:"beta" yaml:"beta"`       // percentage of elements to refine. negative => no limit
	MinFrac float64 `json:"minfrac" yaml:"minfrac"` // minimum |c| for refinement. negative => relative to global norm
	Nref    int     `json:"nref" yaml:"nref"`       // max number of refinements of an element
	Initial bool    `json:"initial" yaml:"initial"` // refine the initial configuration
	Every   int     `json:"every" yaml:"every"`     // refine after every 'every' converged steps. 0 => never
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf float64 `json:"tf" yaml:"tf"` // final time
	Dt float64 `json:"dt" yaml:"dt"` // time step size
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data        `json:"data" yaml:"data"`       // stores global simulation data
	Stagger StaggerData `json:"stagger" yaml:"stagger"` // staggering data
	Refine  *RefineData `json:"refine" yaml:"refine"`   // adaptive refinement data. nil => no refinement
	Control TimeControl `json:"control" yaml:"control"` // time control

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	EncType string // encoder type
	Infile  string // input file of the field solvers with full path
}

// ReadSim reads all simulation data from a .sim (JSON) or .yaml file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file
	b, err := ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o, err = DecodeSim(b, filepath.Ext(simfilepath))
	if err != nil {
		return nil, chk.Err("cannot decode simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))
	if o.Data.Infile != "" {
		o.Infile = o.Data.Infile
		if !filepath.IsAbs(o.Infile) {
			o.Infile = filepath.Join(dir, o.Infile)
		}
	}

	// output directory
	if o.DirOut == "" {
		o.DirOut = "/tmp/gofrac/" + o.Key
	}
	return
}

// DecodeSim decodes simulation data. ext selects the format: ".yaml" and ".yml" => YAML; otherwise JSON
func DecodeSim(b []byte, ext string) (o *Simulation, err error) {
	o = new(Simulation)
	o.SetDefault()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	default:
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, err
	}
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}
	return
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *Simulation) SetDefault() {
	o.Stagger.SetDefault()
	o.Control.Tf = 1
	o.Control.Dt = 1
}

// PostProcess performs a post-processing of the just read file
func (o *Simulation) PostProcess() (err error) {

	// staggering
	err = o.Stagger.PostProcess()
	if err != nil {
		return
	}

	// refinement
	if o.Refine != nil {
		err = o.Refine.PostProcess()
		if err != nil {
			return
		}
	}

	// time control
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}
	if o.Control.Dt < 1e-14 {
		o.Control.Dt = 1
	}

	// output
	o.DirOut = o.Data.DirOut
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}
	return
}

// SetDefault sets defaults values
func (o *StaggerData) SetDefault() {
	o.Type = "si"
	o.Tol = 1e-4
	o.MaxCycle = 50
	o.NumCycle = 2
}

// PostProcess checks and fixes staggering data
func (o *StaggerData) PostProcess() (err error) {

	// scheme name
	switch o.Type {
	case "si", "successive", "qstatic":
		o.Type = "si"
	case "fixed", "miehe":
		o.Type = "fixed"
	case "single", "dynamics":
		o.Type = "single"
	default:
		return chk.Err("staggering type %q is not available. options: si, fixed, single", o.Type)
	}

	// cycles
	if o.MaxCycle < 0 {
		return chk.Err("max number of staggering cycles must be non-negative. max = %d is invalid", o.MaxCycle)
	}
	if o.NumCycle < 1 {
		return chk.Err("number of staggering cycles must be at least 1. ncycle = %d is invalid", o.NumCycle)
	}

	// stop criterion
	if o.Stop != nil {
		if o.Stop.Rcomp < 0 {
			return chk.Err("reaction force component of stop criterion must be non-negative. rcomp = %d is invalid", o.Stop.Rcomp)
		}
	}
	return
}

// PostProcess checks refinement data
func (o *RefineData) PostProcess() (err error) {
	if o.Nref < 0 {
		return chk.Err("max number of refinements must be non-negative. nref = %d is invalid", o.Nref)
	}
	if o.Every < 0 {
		return chk.Err("refinement interval must be non-negative. every = %d is invalid", o.Every)
	}
	return
}
