// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package frac implements the staggered coupling of an elasticity solver and a phase-field
// solver for brittle fracture, with adaptive mesh refinement driven by the phase field
package frac
