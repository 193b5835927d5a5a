package tzposix

import "fmt"

// ErrorKind identifies the grammar element a descriptor failed on.
type ErrorKind uint8

const (
	TooShortOrLeadingColon ErrorKind = iota + 1
	MissingStandardName
	StandardNameTooShort
	MissingOrInvalidStandardOffset
	StandardOffsetFieldTooLong
	MissingDaylightName
	DaylightNameTooShort
	DaylightOffsetFieldTooLong
	MissingStartRule
	MissingEndRule
	InvalidMonthWeekDayFields
	InvalidJulianDay
	InvalidTransitionTime
)

var kindText = map[ErrorKind]string{
	TooShortOrLeadingColon:         "descriptor too short or starts with ':'",
	MissingStandardName:            "missing standard time name",
	StandardNameTooShort:           "standard time name shorter than 3 characters",
	MissingOrInvalidStandardOffset: "missing or invalid standard offset",
	StandardOffsetFieldTooLong:     "standard offset field too long",
	MissingDaylightName:            "missing daylight time name",
	DaylightNameTooShort:           "daylight time name shorter than 3 characters",
	DaylightOffsetFieldTooLong:     "daylight offset field too long",
	MissingStartRule:               "missing daylight start rule",
	MissingEndRule:                 "missing daylight end rule",
	InvalidMonthWeekDayFields:      "invalid month.week.day rule",
	InvalidJulianDay:               "julian day out of range",
	InvalidTransitionTime:          "invalid transition time",
}

func (k ErrorKind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// ParseError reports why a descriptor was rejected.
// Use errors.Is with a ParseError carrying only a Kind to test for a kind:
//
//	errors.Is(err, &tzposix.ParseError{Kind: tzposix.MissingEndRule})
type ParseError struct {
	Kind  ErrorKind
	Input string // the processed (capped) descriptor
	Pos   int    // byte offset of the failing element
}

func newParseError(kind ErrorKind, input string, pos int) *ParseError {
	return &ParseError{Kind: kind, Input: input, Pos: pos}
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return "tzposix: " + e.Kind.String()
	}
	return fmt.Sprintf("tzposix: %s at offset %d in %q", e.Kind, e.Pos, e.Input)
}

// Is matches any ParseError of the same Kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
