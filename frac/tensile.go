// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

// TensileEnergy holds the tensile strain energy at all integration points of the model.
// It is a flat buffer with global integration point numbering, written only by its owner
// (the elasticity solver) and read by the phase-field solver through a TensileView.
type TensileEnergy struct {
	vals []float64
}

// NewTensileEnergy returns a buffer with nip integration points
func NewTensileEnergy(nip int) *TensileEnergy {
	return &TensileEnergy{vals: make([]float64, nip)}
}

// Resize changes the number of integration points; e.g. after refinement. Values are zeroed
func (o *TensileEnergy) Resize(nip int) {
	if cap(o.vals) >= nip {
		o.vals = o.vals[:nip]
		for i := range o.vals {
			o.vals[i] = 0
		}
		return
	}
	o.vals = make([]float64, nip)
}

// Set sets the value at integration point ip
func (o *TensileEnergy) Set(ip int, val float64) {
	o.vals[ip] = val
}

// View returns a read-only handle to the buffer
func (o *TensileEnergy) View() TensileView {
	return TensileView{o}
}

// TensileView is a read-only handle to a TensileEnergy buffer.
// It remains valid across Resize calls of the owner.
type TensileView struct {
	buf *TensileEnergy
}

// Len returns the number of integration points; zero if the view is not set
func (o TensileView) Len() int {
	if o.buf == nil {
		return 0
	}
	return len(o.buf.vals)
}

// At returns the value at integration point ip
func (o TensileView) At(ip int) float64 {
	return o.buf.vals[ip]
}

// Valid tells whether the view points to a buffer
func (o TensileView) Valid() bool {
	return o.buf != nil
}
