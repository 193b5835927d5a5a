// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// https://github.com/golang/go/blob/master/src/time/zoneinfo.go

// Package rfc9636 reads TZif zoneinfo files (RFC 9636) far enough to
// expose their zone types, transitions and the POSIX TZ footer that
// describes every instant after the last transition.
package rfc9636

import (
	"fmt"
	"io"
	"sort"
)

// A Location is the decoded content of one TZif file.
type Location struct {
	Name        string
	Zones       []Zone
	Transitions []Transition

	// The tzdata information can be followed by a string that describes
	// how to handle DST transitions not recorded in Transitions.
	// The format is the TZ environment variable without a colon.
	// Example string, for America/Los_Angeles: PST8PDT,M3.2.0,M11.1.0
	extend string
}

// A Zone represents a single local time type such as CET.
type Zone struct {
	Name   string // abbreviated name, "CET"
	Offset int    // seconds east of UTC
	IsDST  bool
}

// A Transition is the instant a zone type goes into effect.
type Transition struct {
	When  int64 // seconds since 1970 UTC
	Index uint8 // into Location.Zones
}

// alpha is the beginning of time for zone transitions.
const alpha = -1 << 63 // math.MinInt64

// Extend returns the POSIX TZ footer, or "" for version 1 data and
// files without one.
func (l *Location) Extend() string {
	return l.extend
}

// LastTransition returns the last recorded transition instant. Instants
// after it are governed by Extend.
func (l *Location) LastTransition() (int64, bool) {
	if len(l.Transitions) == 0 || l.Transitions[len(l.Transitions)-1].When == alpha {
		return 0, false
	}
	return l.Transitions[len(l.Transitions)-1].When, true
}

// Lookup returns the zone type recorded for unix. Instants after the
// last transition keep its zone type; the footer is not consulted.
// Instants before the first transition get the first standard-time type.
func (l *Location) Lookup(unix int64) Zone {
	i := sort.Search(len(l.Transitions), func(i int) bool { return l.Transitions[i].When > unix })
	if i > 0 {
		return l.Zones[l.Transitions[i-1].Index]
	}
	for _, z := range l.Zones {
		if !z.IsDST {
			return z
		}
	}
	return l.Zones[0]
}

// Dump writes a listing of l to w.
func (l *Location) Dump(w io.Writer) {
	fmt.Fprintln(w, "Name:", l.Name)
	fmt.Fprintf(w, "Zone[%d]\n", len(l.Zones))
	for i, z := range l.Zones {
		fmt.Fprintf(w, "  [%d]: %+v\n", i, z)
	}
	fmt.Fprintf(w, "Transition[%d]\n", len(l.Transitions))
	for i, tx := range l.Transitions {
		fmt.Fprintf(w, "  [%d]: %+v\n", i, tx)
	}
	fmt.Fprintln(w, "Extend:", l.extend)
}
