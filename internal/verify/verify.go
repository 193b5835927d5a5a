// Package verify cross-checks a tzposix.Zone against a reference
// *time.Location built from IANA data.
package verify

import (
	"fmt"
	"sort"
	"time"

	"4d63.com/tz"
	"github.com/pkg/errors"

	"github.com/tinytz/posix/tzposix"
)

// Mismatch is one instant where the zone and the reference disagree.
type Mismatch struct {
	At         time.Time
	GotDST     bool
	WantDST    bool
	GotOffset  int
	WantOffset int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: got dst=%t offset=%d, want dst=%t offset=%d",
		m.At.Format(time.RFC3339), m.GotDST, m.GotOffset, m.WantDST, m.WantOffset)
}

// Result summarizes one Compare call.
type Result struct {
	Location   string
	Year       int
	Samples    int
	Mismatches []Mismatch
}

// OK reports whether every sample agreed.
func (r Result) OK() bool { return len(r.Mismatches) == 0 }

// Reference loads name from the IANA database embedded in 4d63.com/tz,
// so results do not depend on the host's zoneinfo.
func Reference(name string) (*time.Location, error) {
	loc, err := tz.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load reference zone %s", name)
	}
	return loc, nil
}

// Compare samples year at noon UTC on the 1st and 15th of every month
// and one second either side of the zone's own transitions.
func Compare(z *tzposix.Zone, loc *time.Location, year int) Result {
	r := Result{Location: loc.String(), Year: year}
	for _, at := range Samples(z, year) {
		t := time.Unix(at, 0).In(loc)
		_, wantOffset := t.Zone()
		wantDST := t.IsDST()
		gotDST := z.IsDaylight(at)
		gotOffset := z.OffsetAt(at)

		r.Samples++
		if gotDST != wantDST || gotOffset != wantOffset {
			r.Mismatches = append(r.Mismatches, Mismatch{
				At:         t.UTC(),
				GotDST:     gotDST,
				WantDST:    wantDST,
				GotOffset:  gotOffset,
				WantOffset: wantOffset,
			})
		}
	}
	return r
}

// Samples returns the instants Compare checks for year, sorted.
func Samples(z *tzposix.Zone, year int) []int64 {
	var at []int64
	for m := time.January; m <= time.December; m++ {
		for _, day := range []int{1, 15} {
			at = append(at, time.Date(year, m, day, 12, 0, 0, 0, time.UTC).Unix())
		}
	}
	if z.Rules().HasDST() {
		start, end := z.Transitions(year)
		for _, t := range []int64{start, end} {
			at = append(at, t-1, t, t+1)
		}
	}
	sort.Slice(at, func(i, j int) bool { return at[i] < at[j] })
	return at
}
