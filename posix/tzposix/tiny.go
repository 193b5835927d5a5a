package tzposix

// maxOffsetField is the longest offset field the tiny parser accepts,
// enough for "+hh:mm:ss" and one spare byte.
const maxOffsetField = 9

// TinyParser is the small-footprint strategy. It tokenizes on ',', '/',
// '.' and ':' and reports a distinct ErrorKind per grammar element.
// Quoted names and descriptors without a DST part are not supported.
type TinyParser struct{}

func (TinyParser) Name() string { return "tiny" }

func (TinyParser) Parse(s string, p *Pair) error {
	fields := splitFields(s, 0, ',')
	if len(fields) == 0 {
		return newParseError(MissingStandardName, s, 0)
	}
	head := fields[0].s
	at := func(i int) int { return fields[0].pos + i }

	i := 0
	n := scanName(head[i:])
	switch {
	case n == 0:
		return newParseError(MissingStandardName, s, at(i))
	case n < 3:
		return newParseError(StandardNameTooShort, s, at(i))
	}
	p[Std].Name = NewName(head[i : i+n])
	i += n

	n = scanOffset(head[i:])
	if n == 0 {
		return newParseError(MissingOrInvalidStandardOffset, s, at(i))
	}
	if n > maxOffsetField {
		return newParseError(StandardOffsetFieldTooLong, s, at(i))
	}
	p[Std].Offset = tinyOffset(head[i : i+n])
	i += n

	n = scanName(head[i:])
	switch {
	case n == 0:
		return newParseError(MissingDaylightName, s, at(i))
	case n < 3:
		return newParseError(DaylightNameTooShort, s, at(i))
	}
	p[Dst].Name = NewName(head[i : i+n])
	i += n

	// Anything after the daylight offset in the first field is ignored.
	n = scanOffset(head[i:])
	if n > maxOffsetField {
		return newParseError(DaylightOffsetFieldTooLong, s, at(i))
	}
	if n == 0 {
		p[Dst].Offset = p[Std].Offset + secondsPerHour
	} else {
		p[Dst].Offset = tinyOffset(head[i : i+n])
	}

	missing := [2]ErrorKind{MissingStartRule, MissingEndRule}
	for which := Std; which <= Dst; which++ {
		if len(fields) < 2+which {
			return newParseError(missing[which], s, len(s))
		}
		r := p[which]
		if kind, pos := tinyRule(fields[1+which], &r); kind != 0 {
			if kind == missingRule {
				kind = missing[which]
			}
			return newParseError(kind, s, pos)
		}
		p[which] = r
	}
	return nil
}

// missingRule is a placeholder kind resolved by the caller to
// MissingStartRule or MissingEndRule.
const missingRule ErrorKind = 0xff

// tinyRule decodes "date[/time]" into r. It returns a zero kind on
// success, or the failing kind and its position.
func tinyRule(f field, r *Rule) (ErrorKind, int) {
	parts := splitFields(f.s, f.pos, '/')
	if len(parts) == 0 {
		return missingRule, f.pos
	}
	date := parts[0]
	switch date.s[0] {
	case 'M':
		mwd := splitFields(date.s[1:], date.pos+1, '.')
		if len(mwd) < 3 {
			return InvalidMonthWeekDayFields, date.pos
		}
		m, w, d := atoi(mwd[0].s), atoi(mwd[1].s), atoi(mwd[2].s)
		if m < 1 || m > 12 || w < 1 || w > 5 || d < 0 || d > 6 {
			return InvalidMonthWeekDayFields, date.pos
		}
		r.Kind, r.Month, r.Week, r.Weekday, r.Day = MonthWeekDay, m, w, d, 0
	case 'J':
		d := atoi(date.s[1:])
		if d < 1 || d > 365 {
			return InvalidJulianDay, date.pos
		}
		r.Kind, r.Day = Julian, d
	default:
		d := atoi(date.s)
		if d < 0 || d > 365 {
			return InvalidJulianDay, date.pos
		}
		r.Kind, r.Day = DayOfYear, d
	}

	r.Time = defaultTransitionTime
	if len(parts) > 1 {
		r.Time = abs(tinyOffset(parts[1].s))
	}
	return 0, 0
}

// scanName returns the length of the name at the start of s: every
// byte up to the first sign or digit.
func scanName(s string) int {
	i := 0
	for i < len(s) && s[i] != '+' && s[i] != '-' && !isDigit(s[i]) {
		i++
	}
	return i
}

// scanOffset returns the length of the run of offset bytes at the
// start of s.
func scanOffset(s string) int {
	i := 0
	for i < len(s) && (s[i] == '+' || s[i] == '-' || s[i] == ':' || isDigit(s[i])) {
		i++
	}
	return i
}

// tinyOffset converts "[+-]hh[:mm[:ss]]" to seconds east of UTC.
// POSIX offsets count west, so a leading '-' gives a positive result.
func tinyOffset(f string) int {
	parts := splitFields(f, 0, ':')
	var hh, mm, ss int
	if len(parts) > 0 {
		hh = atoi(parts[0].s)
	}
	if len(parts) > 1 {
		mm = atoi(parts[1].s)
	}
	if len(parts) > 2 {
		ss = atoi(parts[2].s)
	}
	o := abs(hh)*secondsPerHour + abs(mm)*secondsPerMinute + abs(ss)
	if f != "" && f[0] == '-' {
		return o
	}
	return -o
}
