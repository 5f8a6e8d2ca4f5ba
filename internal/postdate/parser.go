// Package postdate turns the loose date strings found on social-media post
// pages ("3h", "Yesterday at 3:45 PM", "December 31 at 11:59 PM", ISO
// timestamps) into absolute UTC instants anchored to a reference "now".
//
// Parsing is pure: no I/O, no shared mutable state, and wall-clock time is
// only consulted through the Clock when the caller passes a zero reference.
// Unrecognized text is not an error; it is reported as ok == false.
package postdate

import "time"

// ISOLayout renders instants the way the scraper output expects them,
// e.g. 2025-09-13T12:00:00.000Z. Only valid for UTC times.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Match is a successful parse.
type Match struct {
	Instant time.Time
	Kind    Kind
}

// ISO returns the instant formatted with ISOLayout.
func (m Match) ISO() string {
	return FormatISO(m.Instant)
}

// FormatISO formats t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

type Parser struct {
	matchers []Matcher
	clock    Clock
}

// New returns a parser using the default pattern classes. A nil clock means
// SystemClock.
func New(clock Clock) *Parser {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Parser{
		matchers: DefaultMatchers(),
		clock:    clock,
	}
}

// Now reports the parser clock's current instant.
func (p *Parser) Now() time.Time {
	return p.clock.Now()
}

var defaultParser = New(nil)

// Parse resolves text against ref with the default parser.
func Parse(text string, ref time.Time) (time.Time, bool) {
	return defaultParser.Parse(text, ref)
}

// Parse resolves text against ref and returns the instant in UTC.
// A zero ref means "now" according to the parser's clock.
func (p *Parser) Parse(text string, ref time.Time) (time.Time, bool) {
	m, ok := p.Match(text, ref)
	if !ok {
		return time.Time{}, false
	}
	return m.Instant, true
}

// Match is Parse plus the pattern class that fired. Classes are tried in a
// fixed order and the first one that both matches and resolves to a valid
// calendar instant wins.
func (p *Parser) Match(text string, ref time.Time) (Match, bool) {
	return p.match(p.matchers, text, ref)
}

var absoluteMatchers = []Matcher{epochTimestamp{}, genericFallback{}}

// ParseAbsolute only accepts machine-readable timestamps, for values taken
// from structured attributes such as <time datetime="..."> or data-utime.
// Unix epochs are accepted here and nowhere else.
func (p *Parser) ParseAbsolute(text string, ref time.Time) (Match, bool) {
	return p.match(absoluteMatchers, text, ref)
}

func (p *Parser) match(matchers []Matcher, text string, ref time.Time) (Match, bool) {
	cleaned := normalizeText(text)
	if cleaned == "" {
		return Match{}, false
	}
	if ref.IsZero() {
		ref = p.clock.Now()
	}

	for _, m := range matchers {
		fields, ok := m.TryMatch(cleaned)
		if !ok {
			continue
		}
		t, ok := fields.resolve(ref)
		if !ok {
			return Match{}, false
		}
		t = t.UTC()
		if y := t.Year(); y < 1 || y > 9999 {
			return Match{}, false
		}
		return Match{Instant: t, Kind: fields.Kind}, true
	}
	return Match{}, false
}
