package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytz/internal/config"
	"github.com/tinytz/posix/tzposix"
)

var july2023 = time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func TestParseLogLevel(t *testing.T) {
	var tests = []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"t", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"inf", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"e", slog.LevelError},
		{"fatal", LevelFatal},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
	_, err = parseLogLevel("debugging")
	assert.Error(t, err)
}

func TestReportGolden(t *testing.T) {
	var tests = []struct {
		zone   config.Zone
		commit tzposix.CommitMode
	}{
		{config.Zone{Name: "America/New_York", Descriptor: "EST5EDT,M3.2.0,M11.1.0"}, tzposix.CommitAtomic},
		{config.Zone{Descriptor: "AEST-10AEDT,M10.1.0,M4.1.0/3"}, tzposix.CommitAtomic},
		{config.Zone{Descriptor: "EST5"}, tzposix.CommitAtomic},
		{config.Zone{Descriptor: "EST5EDT,M3.2.0,M11"}, tzposix.CommitPartial},
	}

	var b bytes.Buffer
	for _, tt := range tests {
		z := tzposix.New(tzposix.WithCommit(tt.commit))
		err := z.Set(tt.zone.Descriptor)
		writeSummary(&b, z, tt.zone, 2023, july2023, err)
		b.WriteString("\n")
	}

	g := goldie.New(t)
	g.Assert(t, "report", b.Bytes())
}

func TestWriteNext(t *testing.T) {
	z := tzposix.New()
	require.NoError(t, z.Set("EST5EDT,M3.2.0,M11.1.0"))

	var b bytes.Buffer
	writeNext(&b, z, july2023)
	assert.True(t, strings.HasPrefix(b.String(), "Next transition: 2023-11-05T06:00:00Z (in "), b.String())
	assert.True(t, strings.HasSuffix(b.String(), ")\n"), b.String())
	assert.Contains(t, b.String(), "weeks")

	b.Reset()
	fixed := tzposix.New(tzposix.WithParser(tzposix.GlibcParser{}))
	require.NoError(t, fixed.Set("JST-9"))
	writeNext(&b, fixed, july2023)
	assert.Empty(t, b.String())
}

func TestRunDescriptors(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	jsonFile := filepath.Join(t.TempDir(), "zones.json")

	var out bytes.Buffer
	err := run([]string{"--at", "2023-07-01T00:00:00Z", "--json=" + jsonFile, "EST5EDT,M3.2.0,M11.1.0", "JST-9"}, &out, time.Now())
	require.EqualError(t, err, "1 of 2 zones failed")
	assert.Contains(t, out.String(), "Transitions 2023: starts 2023-03-12T07:00:00Z, ends 2023-11-05T06:00:00Z\n")
	assert.Contains(t, out.String(), "error: tzposix: missing daylight time name")
	assert.Contains(t, out.String(), "Successfully wrote JSON data to "+jsonFile)

	data, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var zones []ZoneJSON
	require.NoError(t, json.Unmarshal(data, &zones))
	require.Len(t, zones, 2)
	assert.Equal(t, ZoneJSON{
		Descriptor: "EST5EDT,M3.2.0,M11.1.0",
		HasDst:     true,
		Std:        "EST (UTC -05:00)",
		Dst:        "EDT (UTC -04:00)",
		Rules:      "Starts on the second Sunday of March at 02:00:00, Ends on the first Sunday of November at 02:00:00",
		Year:       2023,
		Start:      1678604400,
		End:        1699164000,
	}, zones[0])
	assert.Equal(t, "JST-9", zones[1].Descriptor)
	assert.Contains(t, zones[1].Error, "missing daylight time name")

	// The glibc parser accepts zones without daylight saving time.
	out.Reset()
	require.NoError(t, run([]string{"-p", "glibc", "-y", "2024", "--at", "2023-07-01T00:00:00Z", "JST-9"}, &out, time.Now()))
	assert.Contains(t, out.String(), "At 2023-07-01T00:00:00Z: JST (UTC +09:00), standard time\n")
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinytz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
parser: glibc
year: 2024
zones:
  - name: Europe/Berlin
    descriptor: CET-1CEST,M3.5.0,M10.5.0/3
  - name: Asia/Tokyo
    descriptor: JST-9
  - descriptor: EST5EDT
`), 0o644))
	t.Setenv(config.EnvVar, path)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--at", "2024-01-15T12:00:00Z"}, &out, time.Now()))
	assert.Contains(t, out.String(), "== Europe/Berlin CET-1CEST,M3.5.0,M10.5.0/3\n")
	assert.Contains(t, out.String(), "Transitions 2024: starts 2024-03-31T01:00:00Z, ends 2024-10-27T01:00:00Z\n")
	assert.Contains(t, out.String(), "== EST5EDT\n")

	out.Reset()
	require.NoError(t, run([]string{"--verify"}, &out, time.Now()))
	assert.Equal(t, "Europe/Berlin CET-1CEST,M3.5.0,M10.5.0/3: 2024: ok, 30 samples\n"+
		"Asia/Tokyo JST-9: 2024: ok, 24 samples\n", out.String())

	// Flags override the file.
	out.Reset()
	err := run([]string{"--verify", "--parser", "tiny"}, &out, time.Now())
	require.EqualError(t, err, "1 of 2 zones failed")
	assert.Contains(t, out.String(), "Asia/Tokyo JST-9: tzposix: missing daylight time name")
}

func TestRunErrors(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	var out bytes.Buffer
	assert.EqualError(t, run(nil, &out, time.Now()), "no descriptor given and no zones configured")
	assert.Error(t, run([]string{"--at", "yesterday", "EST5EDT,M3.2.0,M11.1.0"}, &out, time.Now()))
	assert.Error(t, run([]string{"--parser", "musl", "EST5EDT,M3.2.0,M11.1.0"}, &out, time.Now()))
	assert.Error(t, run([]string{"--loglevel", "loud", "EST5EDT,M3.2.0,M11.1.0"}, &out, time.Now()))
	assert.Error(t, run([]string{"--bogus"}, &out, time.Now()))
}

// tzifData builds a version 2 TZif file without transitions, so every
// instant is governed by footer.
func tzifData(t *testing.T, footer string, abbrev string, zones ...[3]int32) []byte {
	t.Helper()
	var b bytes.Buffer
	for i := 0; i < 2; i++ {
		b.WriteString("TZif2")
		b.Write(make([]byte, 15))
		for _, n := range []int{0, 0, 0, 0, len(zones), len(abbrev)} {
			require.NoError(t, binary.Write(&b, binary.BigEndian, uint32(n)))
		}
		for _, z := range zones {
			require.NoError(t, binary.Write(&b, binary.BigEndian, z[0]))
			b.WriteByte(byte(z[1]))
			b.WriteByte(byte(z[2]))
		}
		b.WriteString(abbrev)
	}
	b.WriteString("\n" + footer + "\n")
	return b.Bytes()
}

func TestCatalogWalk(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
	eastern := tzifData(t, "EST5EDT,M3.2.0,M11.1.0", "EST\x00EDT\x00", [3]int32{-18000, 0, 0}, [3]int32{-14400, 1, 4})
	write("America/New_York", eastern)
	write("Asia/Tokyo", tzifData(t, "JST-9", "JST\x00", [3]int32{32400, 0, 0}))
	write("posix/America/New_York", eastern)
	write("zone.tab", []byte("# country codes\n"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "US"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "America", "New_York"), filepath.Join(dir, "US", "Eastern")))

	cat := newCatalog()
	cat.walk(dir)
	cat.walk(filepath.Join(dir, "missing"))

	names, keylen := cat.names()
	assert.Equal(t, []string{"America/New_York", "Asia/Tokyo"}, names)
	assert.Equal(t, len("America/New_York"), keylen)
	assert.Equal(t, []string{"US/Eastern"}, cat["America/New_York"].Aliases)
	assert.Equal(t, "JST-9", cat["Asia/Tokyo"].Extend)
	require.NotNil(t, cat["Asia/Tokyo"].loc)

	o := &options{cfg: config.Default()}
	o.cfg.Parser = "glibc"
	o.cfg.Year = 2023
	var out bytes.Buffer
	exports, failed := listZoneinfo(&out, o, cat)
	assert.Zero(t, failed, out.String())
	require.Len(t, exports, 2)
	assert.Equal(t, []string{"US/Eastern"}, exports[0].Aliases)
	assert.Equal(t, "America/New_York    DST: yes EST5EDT,M3.2.0,M11.1.0 ok [US/Eastern]\n"+
		"Asia/Tokyo          DST: no  JST-9 ok []\n", out.String())

	// The tiny parser needs a daylight part.
	o.cfg.Parser = "tiny"
	out.Reset()
	_, failed = listZoneinfo(&out, o, cat)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "JST-9 tzposix: missing daylight time name")
}
