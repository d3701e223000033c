// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Recover converts a panic raised by gosl (e.g. chk.Panic in io.OpenFileR) into an error.
// It must be deferred directly:
//  defer inp.Recover(&err)
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = chk.Err("%v", r)
	}
}

// ReadFile reads bytes from a file
func ReadFile(fn string) (b []byte, err error) {
	defer Recover(&err)
	b = io.ReadFile(fn)
	return
}
