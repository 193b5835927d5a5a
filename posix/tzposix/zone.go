package tzposix

import (
	"log/slog"
	"time"
)

// Y2KEpoch is 2000-01-01 00:00:00 UTC in seconds since the Unix epoch.
// Timers on runtimes counting from 2000 must be shifted by it before
// they are compared with transitions, which are Unix-epoch based.
const Y2KEpoch int64 = 946684800

// FromY2K converts seconds since 2000-01-01 UTC to Unix seconds.
func FromY2K(ts int64) int64 { return ts + Y2KEpoch }

// ToY2K converts Unix seconds to seconds since 2000-01-01 UTC.
func ToY2K(unix int64) int64 { return unix - Y2KEpoch }

// CommitMode decides what a failed Set leaves behind.
type CommitMode uint8

const (
	// CommitAtomic decodes into scratch space and commits only on
	// success. A failed Set leaves unnamed UTC.
	CommitAtomic CommitMode = iota
	// CommitPartial resets to unnamed UTC and fills the zone in place,
	// so a failed Set keeps the fields decoded before the failure.
	CommitPartial
)

func (m CommitMode) String() string {
	if m == CommitPartial {
		return "partial"
	}
	return "atomic"
}

// Zone is a timezone built from a descriptor. The zero value is not
// ready for use; call New.
//
// A Zone does no locking. Callers sharing one between goroutines must
// serialize access themselves.
type Zone struct {
	rules  Pair
	parser Parser
	commit CommitMode
	logger *slog.Logger
}

// Option configures a Zone.
type Option func(*Zone)

// WithParser selects the parsing strategy. The default is TinyParser.
func WithParser(p Parser) Option {
	return func(z *Zone) { z.parser = p }
}

// WithCommit selects the failure contract of Set.
func WithCommit(m CommitMode) Option {
	return func(z *Zone) { z.commit = m }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(z *Zone) { z.logger = l }
}

// New returns a zone set to unnamed UTC.
func New(opts ...Option) *Zone {
	z := &Zone{parser: TinyParser{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

// Set replaces the zone rules with those decoded from descriptor.
// Only the first MaxDescriptorLen bytes are examined. On failure the
// error is a *ParseError and the rules depend on the commit mode.
func (z *Zone) Set(descriptor string) error {
	z.rules = Pair{}
	s, err := preflight(descriptor)
	if err != nil {
		z.logger.Debug("timezone rejected", "descriptor", s, "error", err)
		return err
	}

	if z.commit == CommitPartial {
		err = z.parser.Parse(s, &z.rules)
	} else {
		var scratch Pair
		if err = z.parser.Parse(s, &scratch); err == nil {
			z.rules = scratch
		}
	}
	if err != nil {
		z.logger.Debug("timezone rejected", "descriptor", s, "parser", z.parser.Name(), "commit", z.commit, "error", err)
		return err
	}
	z.logger.Debug("timezone set", "descriptor", s, "parser", z.parser.Name(),
		"std", z.rules[Std].Name, "dst", z.rules[Dst].Name, "hasDST", z.rules.HasDST())
	return nil
}

// Rules returns a copy of the current rule pair.
func (z *Zone) Rules() Pair { return z.rules }

// StandardName returns the standard time abbreviation.
func (z *Zone) StandardName() string { return string(z.rules[Std].Name) }

// DaylightName returns the daylight time abbreviation.
func (z *Zone) DaylightName() string { return string(z.rules[Dst].Name) }

// Offset returns the standard or daylight offset in seconds east of UTC.
func (z *Zone) Offset(isDaylight bool) int {
	if isDaylight {
		return z.rules[Dst].Offset
	}
	return z.rules[Std].Offset
}

// IsDaylight reports whether daylight saving time is in effect at unix.
func (z *Zone) IsDaylight(unix int64) bool { return z.rules.IsDaylight(unix) }

// IsDaylightY2K is IsDaylight for a timer counting from 2000-01-01 UTC.
func (z *Zone) IsDaylightY2K(ts int64) bool { return z.rules.IsDaylight(FromY2K(ts)) }

// OffsetAt returns the offset in effect at unix.
func (z *Zone) OffsetAt(unix int64) int { return z.Offset(z.IsDaylight(unix)) }

// NameAt returns the abbreviation in effect at unix.
func (z *Zone) NameAt(unix int64) string {
	if z.IsDaylight(unix) {
		return z.DaylightName()
	}
	return z.StandardName()
}

// Transitions returns the start and end of daylight saving time in year.
// For southern hemisphere zones start is later than end.
func (z *Zone) Transitions(year int) (start, end int64) {
	return z.rules[Std].Transition(year), z.rules[Dst].Transition(year)
}

// NextTransition returns the first transition strictly after unix.
// It reports false for zones without daylight saving time.
func (z *Zone) NextTransition(unix int64) (int64, bool) {
	if !z.rules.HasDST() {
		return 0, false
	}
	year := yearOf(unix)
	var next int64
	found := false
	for y := year; y <= year+1; y++ {
		start, end := z.Transitions(y)
		for _, t := range [2]int64{start, end} {
			if t > unix && (!found || t < next) {
				next, found = t, true
			}
		}
	}
	return next, found
}

// IsDaylight reports whether daylight saving time is in effect at unix.
func (p Pair) IsDaylight(unix int64) bool {
	if !p.HasDST() {
		return false
	}
	year := yearOf(unix)
	start := p[Std].Transition(year)
	end := p[Dst].Transition(year)
	if start > end {
		// Southern hemisphere: DST runs over the new year.
		return unix < end || unix >= start
	}
	return unix >= start && unix < end
}

func yearOf(unix int64) int {
	return time.Unix(unix, 0).UTC().Year()
}
