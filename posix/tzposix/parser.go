package tzposix

import (
	"fmt"
	"sort"
	"strings"
)

// MaxDescriptorLen caps the number of descriptor bytes examined.
// Bytes beyond it are ignored, not an error.
const MaxDescriptorLen = 64

// A Parser decodes a descriptor into a Pair.
//
// Parse fills p field by field, starting from the zero Pair. When it
// fails, p keeps whatever was decoded before the failing element;
// Zone decides whether that partial state is committed.
type Parser interface {
	Name() string
	Parse(descriptor string, p *Pair) error
}

// Parsers lists the available strategies by name.
var Parsers = map[string]Parser{
	TinyParser{}.Name():  TinyParser{},
	GlibcParser{}.Name(): GlibcParser{},
}

// LookupParser returns the parser registered under name.
func LookupParser(name string) (Parser, error) {
	if p, ok := Parsers[strings.ToLower(name)]; ok {
		return p, nil
	}
	names := make([]string, 0, len(Parsers))
	for n := range Parsers {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("tzposix: unknown parser %q, want one of %s", name, strings.Join(names, ", "))
}

// Parse decodes descriptor with the tiny parser and returns the pair.
func Parse(descriptor string) (Pair, error) {
	return ParseWith(TinyParser{}, descriptor)
}

// ParseWith applies the length cap and leading checks, then decodes
// descriptor with parser. On failure the returned pair is unnamed UTC.
func ParseWith(parser Parser, descriptor string) (Pair, error) {
	s, err := preflight(descriptor)
	if err != nil {
		return Pair{}, err
	}
	var p Pair
	if err := parser.Parse(s, &p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// preflight applies the checks shared by every parser.
func preflight(descriptor string) (string, error) {
	s := descriptor
	if len(s) > MaxDescriptorLen {
		s = s[:MaxDescriptorLen]
	}
	if len(s) < 3 || s[0] == ':' {
		return s, newParseError(TooShortOrLeadingColon, s, 0)
	}
	return s, nil
}

// field is a non-empty token and its byte offset in the descriptor.
type field struct {
	s   string
	pos int
}

// splitFields splits s on sep the way strtok does: runs of sep are
// skipped and empty fields never appear.
func splitFields(s string, pos int, sep byte) []field {
	var out []field
	for i := 0; i < len(s); {
		for i < len(s) && s[i] == sep {
			i++
		}
		start := i
		for i < len(s) && s[i] != sep {
			i++
		}
		if i > start {
			out = append(out, field{s: s[start:i], pos: pos + start})
		}
	}
	return out
}

// atoi parses a leading optional sign and decimal digits, ignoring
// anything after them. It returns 0 when there are no digits.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		if n < 1<<24 {
			n = n*10 + int(s[i]-'0')
		}
	}
	if neg {
		return -n
	}
	return n
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
