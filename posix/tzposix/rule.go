package tzposix

import "fmt"

// MaxNameLen is the longest zone abbreviation kept by a Rule.
// Longer names are truncated by NewName.
const MaxNameLen = 8

// Name is a zone abbreviation such as "EST" or "+0530".
type Name string

// NewName returns s truncated to MaxNameLen bytes.
func NewName(s string) Name {
	if len(s) > MaxNameLen {
		s = s[:MaxNameLen]
	}
	return Name(s)
}

// RuleKind selects how a Rule expresses its transition day.
type RuleKind uint8

const (
	// DayOfYear is the zero-based "n" form; Feb 29 is counted.
	DayOfYear RuleKind = iota
	// Julian is the one-based "Jn" form; Feb 29 is never counted.
	Julian
	// MonthWeekDay is the "Mm.w.d" form.
	MonthWeekDay
)

func (k RuleKind) String() string {
	switch k {
	case DayOfYear:
		return "DayOfYear"
	case Julian:
		return "Julian"
	case MonthWeekDay:
		return "MonthWeekDay"
	}
	return fmt.Sprintf("RuleKind(%d)", uint8(k))
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	// defaultTransitionTime is 02:00:00 local time.
	defaultTransitionTime = 2 * secondsPerHour
)

// Rule is one half of a Pair: the zone name and offset in effect after the
// transition described by Kind and its fields.
type Rule struct {
	Name Name
	Kind RuleKind

	Month   int // 1-12, MonthWeekDay only
	Week    int // 1-5, 5 means the last occurrence in the month
	Weekday int // 0-6, Sunday is 0
	Day     int // 0-365 for DayOfYear, 1-365 for Julian

	// Time is the local time of day of the transition, in seconds
	// after midnight. It may exceed one day or be negative.
	Time int

	// Offset is in seconds east of UTC. A POSIX "-" offset is stored
	// positive: "CET-1" gives 3600, "EST5" gives -18000.
	Offset int
}

// Validate reports whether the rule's day fields are within range for
// its kind. The parsers never produce a rule that fails Validate.
func (r Rule) Validate() error {
	switch r.Kind {
	case DayOfYear:
		if r.Day < 0 || r.Day > 365 {
			return fmt.Errorf("tzposix: day-of-year %d out of range [0,365]", r.Day)
		}
	case Julian:
		if r.Day < 1 || r.Day > 365 {
			return fmt.Errorf("tzposix: julian day %d out of range [1,365]", r.Day)
		}
	case MonthWeekDay:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("tzposix: month %d out of range [1,12]", r.Month)
		}
		if r.Week < 1 || r.Week > 5 {
			return fmt.Errorf("tzposix: week %d out of range [1,5]", r.Week)
		}
		if r.Weekday < 0 || r.Weekday > 6 {
			return fmt.Errorf("tzposix: weekday %d out of range [0,6]", r.Weekday)
		}
	default:
		return fmt.Errorf("tzposix: unknown rule kind %v", r.Kind)
	}
	return nil
}

// Indexes into a Pair.
const (
	Std = 0 // standard time; its transition is the start of DST
	Dst = 1 // daylight time; its transition is the end of DST
)

// Pair holds the standard and daylight rules of a zone.
// The zero value is unnamed UTC without daylight saving time.
type Pair [2]Rule

// HasDST reports whether the two offsets differ.
func (p Pair) HasDST() bool {
	return p[Std].Offset != p[Dst].Offset
}
