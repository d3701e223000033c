// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frac

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// Save saves the solution vectors and history field of the snapshot to a file.
// The mesh copy is not saved
func (o *Snapshot) Save(dir, fnkey, enctype string, tidx int, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode state
	err = enc.Encode(o.Sols)
	if err != nil {
		return chk.Err("cannot encode Snapshot.Sols\n%v", err)
	}
	err = enc.Encode(o.Hist)
	if err != nil {
		return chk.Err("cannot encode Snapshot.Hist\n%v", err)
	}

	// save file
	return save_file(out_snap_path(dir, fnkey, enctype, tidx), &buf, verbose)
}

// ReadSnapshot reads a snapshot saved with Snapshot.Save
func ReadSnapshot(dir, fnkey, enctype string, tidx int) (o *Snapshot, err error) {

	// open file
	fn := out_snap_path(dir, fnkey, enctype, tidx)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decode state
	o = new(Snapshot)
	dec := GetDecoder(fil, enctype)
	err = dec.Decode(&o.Sols)
	if err != nil {
		return nil, chk.Err("cannot decode Snapshot.Sols\n%v", err)
	}
	err = dec.Decode(&o.Hist)
	if err != nil {
		return nil, chk.Err("cannot decode Snapshot.Hist\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_snap_path(dir, fnkey, enctype string, tidx int) string {
	return path.Join(dir, io.Sf("%s_snap_%010d.%s", fnkey, tidx, enctype))
}

func out_sum_path(dir, fnkey, enctype string) string {
	return path.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	err = os.MkdirAll(path.Dir(filename), 0777)
	if err != nil {
		return chk.Err("cannot create directory for <%s>:\n%v", filename, err)
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
