package tzposix

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTinyParseEastern(t *testing.T) {
	p, err := Parse("EST5EDT,M3.2.0/2,M11.1.0/2")
	require.NoError(t, err)

	assert.Equal(t, Rule{Name: "EST", Kind: MonthWeekDay, Month: 3, Week: 2, Weekday: 0, Time: 7200, Offset: -18000}, p[Std])
	assert.Equal(t, Rule{Name: "EDT", Kind: MonthWeekDay, Month: 11, Week: 1, Weekday: 0, Time: 7200, Offset: -14400}, p[Dst])
}

func TestTinyParseFields(t *testing.T) {
	var tests = []struct {
		tz  string
		std Rule
		dst Rule
	}{
		{tz: "CET-1CEST,M3.5.0,M10.5.0/3",
			std: Rule{Name: "CET", Kind: MonthWeekDay, Month: 3, Week: 5, Weekday: 0, Time: 7200, Offset: 3600},
			dst: Rule{Name: "CEST", Kind: MonthWeekDay, Month: 10, Week: 5, Weekday: 0, Time: 10800, Offset: 7200},
		},
		{tz: "NZST-12NZDT-13,M9.5.0,M4.1.0/3",
			std: Rule{Name: "NZST", Kind: MonthWeekDay, Month: 9, Week: 5, Weekday: 0, Time: 7200, Offset: 43200},
			dst: Rule{Name: "NZDT", Kind: MonthWeekDay, Month: 4, Week: 1, Weekday: 0, Time: 10800, Offset: 46800},
		},
		{tz: "EST5EDT,J60/1:30,300",
			std: Rule{Name: "EST", Kind: Julian, Day: 60, Time: 5400, Offset: -18000},
			dst: Rule{Name: "EDT", Kind: DayOfYear, Day: 300, Time: 7200, Offset: -14400},
		},
		{tz: "NST3:30NDT,M3.2.0,M11.1.0",
			std: Rule{Name: "NST", Kind: MonthWeekDay, Month: 3, Week: 2, Time: 7200, Offset: -12600},
			dst: Rule{Name: "NDT", Kind: MonthWeekDay, Month: 11, Week: 1, Time: 7200, Offset: -9000},
		},
		// A leading '-' is honored even when the hours are zero.
		{tz: "XYZ-0:30ABC,M3.2.0,M11.1.0",
			std: Rule{Name: "XYZ", Kind: MonthWeekDay, Month: 3, Week: 2, Time: 7200, Offset: 1800},
			dst: Rule{Name: "ABC", Kind: MonthWeekDay, Month: 11, Week: 1, Time: 7200, Offset: 5400},
		},
		// The tiny parser keeps only the magnitude of a transition time.
		{tz: "EST5EDT,M3.2.0/-1,M11.1.0/2:30:15",
			std: Rule{Name: "EST", Kind: MonthWeekDay, Month: 3, Week: 2, Time: 3600, Offset: -18000},
			dst: Rule{Name: "EDT", Kind: MonthWeekDay, Month: 11, Week: 1, Time: 9015, Offset: -14400},
		},
		{tz: "ABCDEFGHIJK5LMNOPQRSTU,M3.2.0,M11.1.0",
			std: Rule{Name: "ABCDEFGH", Kind: MonthWeekDay, Month: 3, Week: 2, Time: 7200, Offset: -18000},
			dst: Rule{Name: "LMNOPQRS", Kind: MonthWeekDay, Month: 11, Week: 1, Time: 7200, Offset: -14400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			p, err := Parse(tt.tz)
			require.NoError(t, err)
			assert.Equal(t, tt.std, p[Std])
			assert.Equal(t, tt.dst, p[Dst])
		})
	}
}

func TestTinyParseErrors(t *testing.T) {
	var tests = []struct {
		tz   string
		kind ErrorKind
	}{
		{"", TooShortOrLeadingColon},
		{"ES", TooShortOrLeadingColon},
		{":America/New_York", TooShortOrLeadingColon},
		{",,,,", MissingStandardName},
		{"123,M3.2.0,M11.1.0", MissingStandardName},
		{"ES5EDT,M3.2.0,M11.1.0", StandardNameTooShort},
		{"ESTEDT,M3.2.0,M11.1.0", MissingOrInvalidStandardOffset},
		{"EST1234567890EDT,M3.2.0,M11.1.0", StandardOffsetFieldTooLong},
		{"EST5,M3.2.0,M11.1.0", MissingDaylightName},
		{"EST5ED,M3.2.0,M11.1.0", DaylightNameTooShort},
		{"EST5EDT1234567890,M3.2.0,M11.1.0", DaylightOffsetFieldTooLong},
		{"EST5EDT", MissingStartRule},
		{"EST5EDT,M3.2.0", MissingEndRule},
		{"EST5EDT,M3.2,M11.1.0", InvalidMonthWeekDayFields},
		{"EST5EDT,M3.2.0,M11", InvalidMonthWeekDayFields},
		{"EST5EDT,M13.2.0,M11.1.0", InvalidMonthWeekDayFields},
		{"EST5EDT,M3.6.0,M11.1.0", InvalidMonthWeekDayFields},
		{"EST5EDT,M3.2.7,M11.1.0", InvalidMonthWeekDayFields},
		{"EST5EDT,J0,J300", InvalidJulianDay},
		{"EST5EDT,J60,366", InvalidJulianDay},
	}

	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			z := New()
			require.NoError(t, z.Set("EST5EDT,M3.2.0,M11.1.0"))

			err := z.Set(tt.tz)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.kind, pe.Kind, "got %v", pe)
			assert.True(t, errors.Is(err, &ParseError{Kind: tt.kind}))

			// A failed Set leaves unnamed UTC.
			assert.Equal(t, Pair{}, z.Rules())
			assert.Equal(t, "", z.StandardName())
			assert.Equal(t, 0, z.Offset(false))
			assert.Equal(t, 0, z.Offset(true))
		})
	}
}

func TestParseErrorKindsAreDistinct(t *testing.T) {
	seen := make(map[string]ErrorKind)
	for k := TooShortOrLeadingColon; k <= InvalidTransitionTime; k++ {
		err := &ParseError{Kind: k}
		if prev, ok := seen[err.Error()]; ok {
			t.Errorf("kind %d and %d share message %q", prev, k, err.Error())
		}
		seen[err.Error()] = k
		for other := TooShortOrLeadingColon; other <= InvalidTransitionTime; other++ {
			assert.Equal(t, k == other, errors.Is(err, &ParseError{Kind: other}))
		}
	}
}

func TestTinyParseLengthCap(t *testing.T) {
	head := "EST5EDT,M3.2.0/2"
	s := head + strings.Repeat(",", MaxDescriptorLen-len(head)) + "M11.1.0/2"
	require.Len(t, s[:MaxDescriptorLen], MaxDescriptorLen)

	// Without the cap the end rule would be found.
	_, err := Parse(s)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, MissingEndRule, pe.Kind)
	assert.Len(t, pe.Input, MaxDescriptorLen)

	// Bytes past the cap never affect a descriptor that fits.
	valid := "EST5EDT,M3.2.0/2,M11.1.0/2"
	padded := valid + strings.Repeat(",", MaxDescriptorLen-len(valid)) + "garbage that is ignored"
	want, err := Parse(valid)
	require.NoError(t, err)
	got, err := Parse(padded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTinyParseIdempotent(t *testing.T) {
	for _, tz := range []string{
		"EST5EDT,M3.2.0/2,M11.1.0/2",
		"AEST-10AEDT,M10.1.0,M4.1.0/3",
		"EST5EDT,J60/1:30,300",
	} {
		z := New()
		require.NoError(t, z.Set(tz))
		first := z.Rules()
		require.NoError(t, z.Set(tz))
		assert.Equal(t, first, z.Rules(), tz)
	}
}

func TestCommitModes(t *testing.T) {
	const tz = "EST5EDT,M3.2.0,M11"

	atomic := New()
	require.Error(t, atomic.Set(tz))
	assert.Equal(t, Pair{}, atomic.Rules())

	partial := New(WithCommit(CommitPartial))
	err := partial.Set(tz)
	require.True(t, errors.Is(err, &ParseError{Kind: InvalidMonthWeekDayFields}))

	// Everything before the end rule was kept.
	want := Pair{
		{Name: "EST", Kind: MonthWeekDay, Month: 3, Week: 2, Time: 7200, Offset: -18000},
		{Name: "EDT", Offset: -14400},
	}
	assert.Equal(t, want, partial.Rules())
	assert.Equal(t, "EDT", partial.DaylightName())

	// The reset happens before any parsing, in both modes.
	require.NoError(t, partial.Set("EST5EDT,M3.2.0,M11.1.0"))
	require.Error(t, partial.Set(":EST"))
	assert.Equal(t, Pair{}, partial.Rules())
}

func TestNewName(t *testing.T) {
	assert.Equal(t, Name("EST"), NewName("EST"))
	assert.Equal(t, Name("ABCDEFGH"), NewName("ABCDEFGH"))
	assert.Equal(t, Name("ABCDEFGH"), NewName("ABCDEFGHIJ"))
	assert.Equal(t, Name(""), NewName(""))
}

func TestLookupParser(t *testing.T) {
	p, err := LookupParser("tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", p.Name())

	p, err = LookupParser("GLIBC")
	require.NoError(t, err)
	assert.Equal(t, "glibc", p.Name())

	_, err = LookupParser("musl")
	assert.EqualError(t, err, `tzposix: unknown parser "musl", want one of glibc, tiny`)
}
