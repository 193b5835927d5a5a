package tzposix

import (
	"fmt"
	"strings"
)

// Description is the human-readable form of a Pair.
type Description struct {
	Standard string // "EST (UTC -05:00)"
	Daylight string // empty without daylight saving time
	Rules    string // "Starts ..., Ends ..."; empty without daylight saving time
}

// Describe renders p for people.
func Describe(p Pair) Description {
	d := Description{
		Standard: fmt.Sprintf("%s (UTC%s)", p[Std].Name, formatOffset(p[Std].Offset)),
	}
	if !p.HasDST() {
		return d
	}
	d.Daylight = fmt.Sprintf("%s (UTC%s)", p[Dst].Name, formatOffset(p[Dst].Offset))
	d.Rules = fmt.Sprintf("Starts %s, Ends %s", describeRule(p[Std]), describeRule(p[Dst]))
	return d
}

// HumanReadable returns a multi-line description of p, for example
//
//	Standard Time: EST (UTC -05:00)
//	Daylight Time: EDT (UTC -04:00)
//	Rules: Starts on the second Sunday of March at 02:00:00, Ends on the first Sunday of November at 02:00:00
func HumanReadable(p Pair) string {
	d := Describe(p)
	stdDesc := "Standard Time: " + d.Standard
	if d.Daylight == "" {
		return stdDesc + "\n(No Daylight Saving Time rules)"
	}
	return fmt.Sprintf("%s\nDaylight Time: %s\nRules: %s", stdDesc, d.Daylight, d.Rules)
}

// HumanReadableTZ parses descriptor with parser and describes it.
func HumanReadableTZ(parser Parser, descriptor string) (string, error) {
	p, err := ParseWith(parser, descriptor)
	if err != nil {
		return "", err
	}
	return HumanReadable(p), nil
}

// formatOffset converts seconds east of UTC to " +hh:mm" or " -hh:mm",
// adding ":ss" when the seconds are not zero.
func formatOffset(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
	}
	absOffset := abs(offsetSeconds)

	hours := absOffset / secondsPerHour
	minutes := (absOffset % secondsPerHour) / secondsPerMinute
	seconds := absOffset % secondsPerMinute
	if seconds != 0 {
		return fmt.Sprintf(" %s%02d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf(" %s%02d:%02d", sign, hours, minutes)
}

var (
	months   = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	weekDesc = []string{"", "first", "second", "third", "fourth", "last"}
	dayDesc  = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// describeRule turns a rule into "on the second Sunday of March at 02:00:00".
func describeRule(r Rule) string {
	var day string
	switch r.Kind {
	case MonthWeekDay:
		day = fmt.Sprintf("on the %s %s of %s", weekDesc[r.Week], dayDesc[r.Weekday], months[r.Month-1])
	case Julian:
		day = fmt.Sprintf("on Julian Day %d", r.Day)
	default:
		day = fmt.Sprintf("on day %d of the year", r.Day)
	}
	return day + " at " + describeTime(r.Time)
}

func describeTime(secs int) string {
	if secs == 24*secondsPerHour {
		return "midnight of the next day"
	}
	var b strings.Builder
	if secs < 0 {
		b.WriteByte('-')
		secs = -secs
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", secs/secondsPerHour, (secs%secondsPerHour)/secondsPerMinute, secs%secondsPerMinute)
	return b.String()
}
