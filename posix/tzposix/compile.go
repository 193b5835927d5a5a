package tzposix

// daysBefore[leap][m] is the number of days before month m+1.
var daysBefore = [2][13]int{
	{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365},
	{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366},
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func leapIndex(year int) int {
	if IsLeap(year) {
		return 1
	}
	return 0
}

// YearStart returns January 1st 00:00:00 UTC of year in seconds since
// the Unix epoch. Years up to and including 1970 map to 0.
func YearStart(year int) int64 {
	if year <= 1970 {
		return 0
	}
	days := (year-1970)*365 +
		((year-1)/4 - 1970/4) -
		((year-1)/100 - 1970/100) +
		((year-1)/400 - 1970/400)
	return int64(days) * secondsPerDay
}

// firstWeekday returns the weekday (Sunday = 0) of the first day of
// month in year, using Zeller's congruence.
func firstWeekday(year, month int) int {
	m1 := (month+9)%12 + 1
	yy0 := year
	if month <= 2 {
		yy0--
	}
	yy1 := yy0 / 100
	yy2 := yy0 % 100
	dow := ((26*m1-2)/10 + 1 + yy2 + yy2/4 + yy1/4 - 2*yy1) % 7
	if dow < 0 {
		dow += 7
	}
	return dow
}

// monthDay returns the zero-based day of month of the week'th weekday
// in month. Week 5, or any ordinal past the month's end, selects the
// last occurrence.
func monthDay(year, month, week, weekday int) int {
	leap := leapIndex(year)
	length := daysBefore[leap][month] - daysBefore[leap][month-1]
	d := weekday - firstWeekday(year, month)
	if d < 0 {
		d += 7
	}
	for i := 1; i < week; i++ {
		if d+7 >= length {
			break
		}
		d += 7
	}
	return d
}

// Transition returns the instant, in seconds since the Unix epoch, at
// which r takes effect in year: the rule's day at 00:00 UTC, shifted by
// the local time of day and the zone offset of the rule.
//
// Transition panics if r fails Validate.
func (r Rule) Transition(year int) int64 {
	if err := r.Validate(); err != nil {
		panic(err)
	}
	t := YearStart(year)
	switch r.Kind {
	case Julian:
		// Feb 29 is never counted, so J60 is always March 1.
		t += int64(r.Day-1) * secondsPerDay
		if r.Day >= 60 && IsLeap(year) {
			t += secondsPerDay
		}
	case DayOfYear:
		t += int64(r.Day) * secondsPerDay
	case MonthWeekDay:
		days := daysBefore[leapIndex(year)][r.Month-1] + monthDay(year, r.Month, r.Week, r.Weekday)
		t += int64(days) * secondsPerDay
	}
	return t - int64(r.Offset) + int64(r.Time)
}
