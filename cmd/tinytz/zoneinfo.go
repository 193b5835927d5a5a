package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tinytz/internal/verify"
	"github.com/tinytz/rfc9636"
)

// zoneEntry is one zoneinfo file and the links pointing at it.
type zoneEntry struct {
	Aliases []string
	Extend  string
	loc     *time.Location
}

type catalog map[string]*zoneEntry

func newCatalog() catalog { return make(catalog) }

func (c catalog) entry(zone string) *zoneEntry {
	e, ok := c[zone]
	if !ok {
		e = &zoneEntry{}
		c[zone] = e
	}
	return e
}

func (c catalog) addAlias(zone, alias string) {
	e := c.entry(zone)
	index, found := slices.BinarySearch(e.Aliases, alias)
	if !found {
		e.Aliases = slices.Insert(e.Aliases, index, alias)
	}
}

// names returns the zone names in order and the longest name length.
func (c catalog) names() ([]string, int) {
	zones := make([]string, 0, len(c))
	keylen := 0
	for key := range c {
		zones = append(zones, key)
		keylen = max(keylen, len(key))
	}
	sort.Strings(zones)
	return zones, keylen
}

// walk loads every zoneinfo file below root. Symbolic links become
// aliases of the zone they resolve to.
func (c catalog) walk(root string) {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		Trace("zoneinfo directory is not available", "path", root)
		return
	}
	c.walkDir(root, resolvedRoot, "")
}

func (c catalog) walkDir(root, resolvedRoot, rel string) {
	dirInfos, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		Trace("zoneinfo directory is not available", "path", filepath.Join(root, rel))
		return
	}

	// Linux Convention
	//   The zoneinfo names are capitalized. Directories that do not follow
	//   it (posix, right) hold duplicates and are skipped.
	for _, info := range dirInfos {
		name := info.Name()
		if info.IsDir() && name != strings.ToUpper(name[:1])+name[1:] {
			Trace("Skipping directory because name is not capitalized", "filename", name)
			continue
		}

		zone := filepath.ToSlash(filepath.Join(rel, name))
		if info.IsDir() {
			c.walkDir(root, resolvedRoot, zone)
			continue
		}

		data, err := rfc9636.ReadFile(root, zone)
		if err != nil {
			Trace("File is not readable", "file", zone, "error", err)
			continue
		}
		zoneInfo, err := rfc9636.LoadLocationFromTZData(zone, data)
		if err != nil {
			Trace("File is not a timezone file", "file", zone, "error", err)
			continue
		}
		if slog.Default().Enabled(context.Background(), LevelTrace) {
			var b strings.Builder
			zoneInfo.Dump(&b)
			Trace("dump of zoneinfo", "timezone", zone, "dump", b.String())
		}

		if info.Type()&os.ModeSymlink != 0 {
			resolvedPath, err := filepath.EvalSymlinks(filepath.Join(root, zone))
			if err != nil {
				slog.Error("Could not evaluate symlink", "symlink", zone, "error", err)
				continue
			}
			target, err := filepath.Rel(resolvedRoot, resolvedPath)
			if err != nil || strings.HasPrefix(target, "..") {
				slog.Debug("Symlink points outside the zoneinfo directory", "symlink", zone, "target", resolvedPath)
				continue
			}
			slog.Debug("Timezone has alias", "timezone", target, "alias", zone)
			c.addAlias(filepath.ToSlash(target), zone)
			continue
		}

		e := c.entry(zone)
		e.Extend = zoneInfo.Extend()
		if e.loc, err = time.LoadLocationFromTZData(zone, data); err != nil {
			slog.Warn("Go rejects zoneinfo file", "file", zone, "error", err)
		}
	}
}

// listZoneinfo decodes the footer of every catalogued zone and checks
// the result against the zone's own transition data.
func listZoneinfo(w io.Writer, o *options, c catalog) ([]ZoneJSON, int) {
	zones, keylen := c.names()
	slog.Info("Statistics", "numKeys", len(zones), "keylen", keylen)

	var exports []ZoneJSON
	failed, numAliases := 0, 0
	for _, name := range zones {
		e := c[name]
		numAliases += len(e.Aliases)
		if e.Extend == "" {
			Trace("zone has no footer", "timezone", name)
			continue
		}

		z := o.newZone()
		err := z.Set(e.Extend)
		zj := newZoneJSON(name, e.Extend, z, o.cfg.Year, err)
		zj.Aliases = e.Aliases
		exports = append(exports, zj)

		status := "ok"
		switch {
		case err != nil:
			failed++
			status = errColor.Sprint(err.Error())
		case e.loc != nil:
			if r := verify.Compare(z, e.loc, o.cfg.Year); !r.OK() {
				failed++
				status = errColor.Sprintf("%d of %d samples differ", len(r.Mismatches), r.Samples)
				for _, m := range r.Mismatches {
					slog.Debug("mismatch", "timezone", name, "detail", m.String())
				}
			}
		}
		fmt.Fprintf(w, "%-*s DST: %-3s %s %s %v\n", keylen+3, name, yesNo(zj.HasDst), e.Extend, status, e.Aliases)
	}
	slog.Info("Statistics", "zoneinfos", len(zones), "aliases", numAliases, "total", len(zones)+numAliases, "failed", failed)
	return exports, failed
}

// verifyZones compares every named configured zone with the embedded
// IANA data.
func verifyZones(w io.Writer, o *options) ([]ZoneJSON, int) {
	var exports []ZoneJSON
	failed := 0
	for _, zc := range o.cfg.Zones {
		if zc.Name == "" {
			slog.Debug("zone has no name to verify against", "descriptor", zc.Descriptor)
			continue
		}
		z := o.newZone()
		err := z.Set(zc.Descriptor)
		exports = append(exports, newZoneJSON(zc.Name, zc.Descriptor, z, o.cfg.Year, err))
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %s\n", zc.Name, zc.Descriptor, errColor.Sprint(err.Error()))
			continue
		}
		loc, err := verify.Reference(zc.Name)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %s\n", zc.Name, zc.Descriptor, errColor.Sprint(err.Error()))
			continue
		}
		r := verify.Compare(z, loc, o.cfg.Year)
		if r.OK() {
			fmt.Fprintf(w, "%s %s: %d: ok, %d samples\n", zc.Name, zc.Descriptor, r.Year, r.Samples)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s: %d: %s\n", zc.Name, zc.Descriptor, r.Year,
			errColor.Sprintf("%d of %d samples differ", len(r.Mismatches), r.Samples))
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	return exports, failed
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
