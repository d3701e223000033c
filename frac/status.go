// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

// ConvStatus is the outcome of a nonlinear iteration or of a staggering cycle.
// Values are ordered: anything at or below Diverged is a failure.
type ConvStatus int

// convergence status
const (
	Failure   ConvStatus = iota // assembly or solution failed
	Diverged                    // iterations did not converge
	OK                          // keep iterating
	Converged                   // converged
)

// Failed tells whether the status aborts the current step
func (o ConvStatus) Failed() bool {
	return o <= Diverged
}

// String returns the name of the status
func (o ConvStatus) String() string {
	switch o {
	case Failure:
		return "FAILURE"
	case Diverged:
		return "DIVERGED"
	case OK:
		return "OK"
	case Converged:
		return "CONVERGED"
	}
	return "UNKNOWN"
}

// worst returns the most severe of two field statuses
func worst(s1, s2 ConvStatus) ConvStatus {
	if s1 < s2 {
		return s1
	}
	return s2
}
