// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

// TimeStep holds the time control of the current step
type TimeStep struct {
	T     float64 // current time
	Dt    float64 // time increment
	Tf    float64 // final time
	Step  int     // step counter; 0 => initial configuration
	Iter  int     // staggering cycle counter
	First bool    // first time the current step is solved
}

// NewTimeStep returns a new time step with zero time and step counter
func NewTimeStep(dt, tf float64) *TimeStep {
	return &TimeStep{Dt: dt, Tf: tf, First: true}
}

// Increment advances to the next step. Returns false if the final time has been reached
func (o *TimeStep) Increment() bool {
	if o.T >= o.Tf-1e-10*o.Dt {
		return false
	}
	o.T += o.Dt
	if o.T > o.Tf {
		o.T = o.Tf
	}
	o.Step++
	o.Iter = 0
	o.First = true
	return true
}
