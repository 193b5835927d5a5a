// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Parse "zoneinfo" time zone file.
// https://github.com/golang/go/blob/master/src/time/zoneinfo_read.go
// See tzfile(5) and RFC 9636.

package rfc9636

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// maxFileSize is the max permitted size of files read by LoadLocation.
const maxFileSize = 10 << 20

// Simple I/O interface to binary blob of data.
type dataIO struct {
	p     []byte
	error bool
}

func (d *dataIO) read(n int) []byte {
	if len(d.p) < n {
		d.p = nil
		d.error = true
		return nil
	}
	p := d.p[0:n]
	d.p = d.p[n:]
	return p
}

func (d *dataIO) big4() (n uint32, ok bool) {
	p := d.read(4)
	if len(p) < 4 {
		d.error = true
		return 0, false
	}
	return uint32(p[3]) | uint32(p[2])<<8 | uint32(p[1])<<16 | uint32(p[0])<<24, true
}

func (d *dataIO) big8() (n uint64, ok bool) {
	n1, ok1 := d.big4()
	n2, ok2 := d.big4()
	if !ok1 || !ok2 {
		d.error = true
		return 0, false
	}
	return (uint64(n1) << 32) | uint64(n2), true
}

func (d *dataIO) byte() (n byte, ok bool) {
	p := d.read(1)
	if len(p) < 1 {
		d.error = true
		return 0, false
	}
	return p[0], true
}

// rest returns the rest of the data in the buffer.
func (d *dataIO) rest() []byte {
	r := d.p
	d.p = nil
	return r
}

// Make a string by stopping at the first NUL
func byteString(p []byte) string {
	if i := bytes.IndexByte(p, 0); i != -1 {
		p = p[:i]
	}
	return string(p)
}

// ErrBadData is returned, possibly wrapped, for input that is not
// well-formed TZif data.
var ErrBadData = errors.New("malformed time zone information")

// ErrUnknownZone is returned by LoadLocation when no directory holds name.
var ErrUnknownZone = errors.New("unknown time zone")

func badData(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBadData, format, args...)
}

// header counts, in file order.
const (
	nUTCLocal = iota
	nStdWall
	nLeap
	nTime
	nZone
	nChar
)

func readCounts(d *dataIO) (n [6]int, ok bool) {
	for i := range n {
		nn, ok := d.big4()
		if !ok || uint32(int(nn)) != nn {
			return n, false
		}
		n[i] = int(nn)
	}
	return n, true
}

// LoadLocationFromTZData returns a Location with the given name
// initialized from TZif data such as the content of /etc/localtime.
func LoadLocationFromTZData(name string, data []byte) (*Location, error) {
	d := dataIO{data, false}

	// 4-byte magic "TZif"
	if magic := d.read(4); string(magic) != "TZif" {
		return nil, badData("%s: missing TZif magic", name)
	}

	// 1-byte version, then 15 bytes of padding
	p := d.read(16)
	if len(p) != 16 {
		return nil, badData("%s: short header", name)
	}
	var version int
	switch p[0] {
	case 0:
		version = 1
	case '2', '3', '4':
		version = int(p[0] - '0')
	default:
		return nil, badData("%s: unsupported version %q", name, p[0])
	}

	n, ok := readCounts(&d)
	if !ok {
		return nil, badData("%s: bad header counts", name)
	}

	// Version 2 and later repeat the data in a 64-bit format after
	// the 32-bit one. Skip to the 64-bit block.
	size := 4
	if version > 1 {
		skip := n[nTime]*4 +
			n[nTime] +
			n[nZone]*6 +
			n[nChar] +
			n[nLeap]*8 +
			n[nStdWall] +
			n[nUTCLocal]
		// Skip the second header too.
		skip += 4 + 16
		d.read(skip)

		size = 8
		if n, ok = readCounts(&d); !ok {
			return nil, badData("%s: bad 64-bit header counts", name)
		}
	}

	txtimes := dataIO{d.read(n[nTime] * size), false}
	txzones := d.read(n[nTime])
	zonedata := dataIO{d.read(n[nZone] * 6), false}
	abbrev := d.read(n[nChar])
	// Leap-second records and the standard/wall and UT/local indicators
	// do not affect footer decoding.
	d.read(n[nLeap]*(size+4) + n[nStdWall] + n[nUTCLocal])

	if d.error {
		return nil, badData("%s: truncated data block", name)
	}

	var extend string
	rest := d.rest()
	if len(rest) > 2 && rest[0] == '\n' && rest[len(rest)-1] == '\n' {
		extend = string(rest[1 : len(rest)-1])
	}

	// utcoff[4] isdst[1] nameindex[1]
	if n[nZone] == 0 {
		return nil, badData("%s: no local time types", name)
	}
	zones := make([]Zone, n[nZone])
	for i := range zones {
		off, _ := zonedata.big4()
		isDST, _ := zonedata.byte()
		idx, _ := zonedata.byte()
		if int(idx) >= len(abbrev) {
			return nil, badData("%s: zone %d abbreviation index %d out of range", name, i, idx)
		}
		zones[i] = Zone{
			Name:   byteString(abbrev[idx:]),
			Offset: int(int32(off)),
			IsDST:  isDST != 0,
		}
	}

	tx := make([]Transition, n[nTime])
	for i := range tx {
		var when int64
		if size == 4 {
			n4, _ := txtimes.big4()
			when = int64(int32(n4))
		} else {
			n8, _ := txtimes.big8()
			when = int64(n8)
		}
		if int(txzones[i]) >= len(zones) {
			return nil, badData("%s: transition %d zone index %d out of range", name, i, txzones[i])
		}
		tx[i] = Transition{When: when, Index: txzones[i]}
	}

	if len(tx) == 0 {
		// Fixed zones such as "Etc/GMT0" get one transition covering all time.
		tx = append(tx, Transition{When: alpha, Index: 0})
	}

	return &Location{Name: name, Zones: zones, Transitions: tx, extend: extend}, nil
}

// ReadFile returns the contents of name in dir, refusing files too
// large to be zoneinfo.
func ReadFile(dir, name string) ([]byte, error) {
	path := filepath.Join(dir, name)
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if fi.Size() > maxFileSize {
		return nil, errors.Errorf("file %s is too large", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// LoadLocation returns the Location with the given name from the first
// of dirs that holds a well-formed file for it.
func LoadLocation(name string, dirs []string) (*Location, error) {
	var firstErr error
	for _, dir := range dirs {
		data, err := ReadFile(dir, name)
		if err == nil {
			var l *Location
			if l, err = LoadLocationFromTZData(name, data); err == nil {
				return l, nil
			}
		}
		if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, errors.Wrap(ErrUnknownZone, name)
}
