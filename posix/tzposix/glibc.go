package tzposix

// GlibcParser follows the GNU C library reading of TZ strings. Compared
// with TinyParser it accepts quoted names such as "<+0330>", zones
// without daylight saving time ("JST-9"), missing rules (the US rules
// M3.2.0,M11.1.0 apply) and signed transition times ("/-1").
type GlibcParser struct{}

func (GlibcParser) Name() string { return "glibc" }

func (GlibcParser) Parse(s string, p *Pair) error {
	pos := func(rest string) int { return len(s) - len(rest) }

	name, rest, ok := glibcName(s)
	if !ok {
		return newParseError(nameErrorKind(s, name, MissingStandardName, StandardNameTooShort), s, 0)
	}
	p[Std].Name = NewName(name)

	if rest == "" || !isOffsetStart(rest[0]) {
		return newParseError(MissingOrInvalidStandardOffset, s, pos(rest))
	}
	off, r, ok := glibcOffset(rest)
	if !ok {
		return newParseError(MissingOrInvalidStandardOffset, s, pos(rest))
	}
	p[Std].Offset = off
	rest = r

	if rest == "" || rest[0] == ',' {
		// Fixed offset, no daylight saving time.
		p[Dst].Name = p[Std].Name
		p[Dst].Offset = p[Std].Offset
		return nil
	}

	name, r, ok = glibcName(rest)
	if !ok {
		return newParseError(nameErrorKind(rest, name, MissingDaylightName, DaylightNameTooShort), s, pos(rest))
	}
	p[Dst].Name = NewName(name)
	rest = r

	p[Dst].Offset = p[Std].Offset + secondsPerHour
	if rest != "" && isOffsetStart(rest[0]) {
		if off, r, ok := glibcOffset(rest); ok {
			p[Dst].Offset = off
			rest = r
		} else {
			// A lone sign is consumed and the default kept.
			rest = rest[1:]
		}
	}

	for which := Std; which <= Dst; which++ {
		if rest != "" && rest[0] == ',' {
			rest = rest[1:]
		}
		rule := p[which]
		r, kind := glibcRule(rest, which, &rule)
		if kind != 0 {
			return newParseError(kind, s, pos(rest))
		}
		p[which] = rule
		rest = r
	}
	return nil
}

func nameErrorKind(s, name string, missing, short ErrorKind) ErrorKind {
	if name == "" && (s == "" || s[0] != '<') {
		return missing
	}
	return short
}

func isOffsetStart(c byte) bool { return c == '+' || c == '-' || isDigit(c) }

// glibcName returns the zone name at the start of s and the remainder.
// Unquoted names are runs of ASCII letters; quoted names sit between
// '<' and '>' and may hold letters, digits, '+' and '-'. Names shorter
// than three characters are rejected.
func glibcName(s string) (name, rest string, ok bool) {
	if s != "" && s[0] == '<' {
		i := 1
		for i < len(s) && (isAlnum(s[i]) || s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || s[i] != '>' {
			return s[1:i], s, false
		}
		return s[1:i], s[i+1:], i-1 >= 3
	}
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	return s[:i], s[i:], i >= 3
}

// glibcNum parses a run of decimal digits at the start of s.
func glibcNum(s string) (n int, rest string, ok bool) {
	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		if n < 1<<24 {
			n = n*10 + int(s[i]-'0')
		}
	}
	return n, s[i:], i > 0
}

// glibcClockParts parses "hh[:mm[:ss]]". A ':' not followed by a digit
// is left in rest.
func glibcClockParts(s string) (hh, mm, ss int, rest string, ok bool) {
	hh, s, ok = glibcNum(s)
	if !ok {
		return 0, 0, 0, s, false
	}
	if len(s) > 1 && s[0] == ':' && isDigit(s[1]) {
		mm, s, _ = glibcNum(s[1:])
		if len(s) > 1 && s[0] == ':' && isDigit(s[1]) {
			ss, s, _ = glibcNum(s[1:])
		}
	}
	return hh, mm, ss, s, true
}

// glibcOffset parses "[+-]hh[:mm[:ss]]" into seconds east of UTC.
// Hours are clamped to 24, minutes and seconds to 59.
func glibcOffset(s string) (offset int, rest string, ok bool) {
	sign := -1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = 1
		}
		s = s[1:]
	}
	hh, mm, ss, rest, ok := glibcClockParts(s)
	if !ok {
		return 0, rest, false
	}
	return sign * (min(hh, 24)*secondsPerHour + min(mm, 59)*secondsPerMinute + min(ss, 59)), rest, true
}

// glibcRule decodes one rule and its optional "/time" into r.
func glibcRule(s string, which int, r *Rule) (rest string, kind ErrorKind) {
	switch {
	case s == "":
		r.Kind, r.Day, r.Week, r.Weekday = MonthWeekDay, 0, 1, 0
		if which == Std {
			r.Month, r.Week = 3, 2
		} else {
			r.Month = 11
		}
	case s[0] == 'J' || isDigit(s[0]):
		julian := s[0] == 'J'
		if julian {
			s = s[1:]
		}
		d, rest, ok := glibcNum(s)
		if !ok || d > 365 || (julian && d == 0) {
			return s, InvalidJulianDay
		}
		r.Kind, r.Day = DayOfYear, d
		if julian {
			r.Kind = Julian
		}
		s = rest
	case s[0] == 'M':
		var m, w, d int
		var ok bool
		rest := s[1:]
		if m, rest, ok = glibcNum(rest); !ok || rest == "" || rest[0] != '.' {
			return s, InvalidMonthWeekDayFields
		}
		if w, rest, ok = glibcNum(rest[1:]); !ok || rest == "" || rest[0] != '.' {
			return s, InvalidMonthWeekDayFields
		}
		if d, rest, ok = glibcNum(rest[1:]); !ok {
			return s, InvalidMonthWeekDayFields
		}
		if m < 1 || m > 12 || w < 1 || w > 5 || d > 6 {
			return s, InvalidMonthWeekDayFields
		}
		r.Kind, r.Month, r.Week, r.Weekday, r.Day = MonthWeekDay, m, w, d, 0
		s = rest
	default:
		if which == Std {
			return s, MissingStartRule
		}
		return s, MissingEndRule
	}

	r.Time = defaultTransitionTime
	if s == "" || s[0] == ',' {
		return s, 0
	}
	if s[0] != '/' || len(s) == 1 {
		return s, InvalidTransitionTime
	}
	s = s[1:]
	sign := 1
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	if hh, mm, ss, rest, ok := glibcClockParts(s); ok {
		r.Time = sign * (hh*secondsPerHour + mm*secondsPerMinute + ss)
		s = rest
	}
	return s, 0
}
