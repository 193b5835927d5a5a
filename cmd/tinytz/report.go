package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/hako/durafmt"

	"github.com/tinytz/internal/config"
	"github.com/tinytz/posix/tzposix"
)

var (
	dstColor = color.New(color.FgGreen)
	stdColor = color.New(color.FgYellow)
	errColor = color.New(color.FgRed, color.Bold)
)

// writeReport sets z from zc and describes the result for year and at.
// The returned ZoneJSON is filled even when the descriptor is rejected.
func writeReport(w io.Writer, z *tzposix.Zone, zc config.Zone, year int, at time.Time) (ZoneJSON, error) {
	err := z.Set(zc.Descriptor)
	writeSummary(w, z, zc, year, at, err)
	if err == nil {
		writeNext(w, z, at)
	}
	fmt.Fprintln(w)
	return newZoneJSON(zc.Name, zc.Descriptor, z, year, err), err
}

// writeSummary prints everything but the next transition, which
// depends on the distance from at.
func writeSummary(w io.Writer, z *tzposix.Zone, zc config.Zone, year int, at time.Time, err error) {
	if zc.Name != "" {
		fmt.Fprintf(w, "== %s %s\n", zc.Name, zc.Descriptor)
	} else {
		fmt.Fprintf(w, "== %s\n", zc.Descriptor)
	}
	if err != nil {
		fmt.Fprintln(w, errColor.Sprint("error:"), err)
		// Partial commit keeps what was decoded before the failure.
		if z.StandardName() != "" {
			fmt.Fprintln(w, "Kept:")
			fmt.Fprintln(w, tzposix.HumanReadable(z.Rules()))
		}
		return
	}

	fmt.Fprintln(w, tzposix.HumanReadable(z.Rules()))
	d := tzposix.Describe(z.Rules())
	if z.Rules().HasDST() {
		start, end := z.Transitions(year)
		fmt.Fprintf(w, "Transitions %d: starts %s, ends %s\n", year, formatUnix(start), formatUnix(end))
	}

	status, desc := stdColor.Sprint("standard time"), d.Standard
	if z.IsDaylight(at.Unix()) {
		status, desc = dstColor.Sprint("daylight saving time"), d.Daylight
	}
	fmt.Fprintf(w, "At %s: %s, %s\n", at.UTC().Format(time.RFC3339), desc, status)
}

func writeNext(w io.Writer, z *tzposix.Zone, at time.Time) {
	next, ok := z.NextTransition(at.Unix())
	if !ok {
		return
	}
	in := time.Duration(next-at.Unix()) * time.Second
	fmt.Fprintf(w, "Next transition: %s (in %s)\n", formatUnix(next), durafmt.Parse(in).String())
}

func formatUnix(t int64) string {
	return time.Unix(t, 0).UTC().Format(time.RFC3339)
}
