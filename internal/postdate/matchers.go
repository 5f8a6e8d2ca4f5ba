package postdate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which pattern class recognized a string.
type Kind int

const (
	ImmediateMarker Kind = iota
	RelativeOffset
	YesterdayAt
	MonthDayAt
	MonthDayYearAt
	GenericFallback
)

func (k Kind) String() string {
	switch k {
	case ImmediateMarker:
		return "immediate"
	case RelativeOffset:
		return "relative"
	case YesterdayAt:
		return "yesterday_at"
	case MonthDayAt:
		return "month_day_at"
	case MonthDayYearAt:
		return "month_day_year_at"
	case GenericFallback:
		return "fallback"
	}
	return "unknown"
}

// Unit of a relative offset such as "3h" or "2 weeks ago".
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// Fields is what a Matcher pulled out of the text. Which fields are set
// depends on Kind. Hour is always on the 24-hour clock.
type Fields struct {
	Kind   Kind
	Amount int
	Unit   Unit
	Month  time.Month
	Day    int
	Year   int
	Hour   int
	Minute int

	// Absolute is set by GenericFallback. Floating means the source had no
	// zone, so the wall clock is re-read in the reference's location.
	Absolute time.Time
	Floating bool
}

// Matcher recognizes one pattern class in normalized text.
type Matcher interface {
	Kind() Kind
	TryMatch(text string) (Fields, bool)
}

// DefaultMatchers returns the pattern classes in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		immediateMarker{},
		relativeOffset{},
		yesterdayAt{},
		monthDayAt{},
		monthDayYearAt{},
		genericFallback{},
	}
}

const (
	monthPattern = `(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?`
	clockPattern = `(\d{1,2}):(\d{2})\s*(am|pm)\b`
)

var (
	justNowRegex      = regexp.MustCompile(`(?i)\bjust\s+now\b`)
	relativeRegex     = regexp.MustCompile(`(?i)\b(\d+)\s*(years?|yrs?|y|months?|mos?|weeks?|wks?|w|days?|d|hours?|hrs?|h|minutes?|mins?|m|seconds?|secs?|s)\b`)
	yesterdayRegex    = regexp.MustCompile(`(?i)\byesterday\s+at\s+` + clockPattern)
	monthDayRegex     = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2})\s+at\s+` + clockPattern)
	monthDayYearRegex = regexp.MustCompile(`(?i)\b` + monthPattern + `\s+(\d{1,2}),?\s+(\d{4})\s+at\s+` + clockPattern)
	epochRegex        = regexp.MustCompile(`^\d{10}(\d{3})?$`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func lookupMonth(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[name[:3]]
	return m, ok
}

// clock24 converts a 12-hour clock reading. 12 AM is hour 0, 12 PM hour 12.
func clock24(hourStr, minuteStr, ampm string) (int, int, bool) {
	h, err := strconv.Atoi(hourStr)
	if err != nil || h < 1 || h > 12 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(minuteStr)
	if err != nil || m > 59 {
		return 0, 0, false
	}
	pm := strings.EqualFold(ampm, "pm")
	if h == 12 {
		h = 0
	}
	if pm {
		h += 12
	}
	return h, m, true
}

type immediateMarker struct{}

func (immediateMarker) Kind() Kind { return ImmediateMarker }

func (immediateMarker) TryMatch(text string) (Fields, bool) {
	if !justNowRegex.MatchString(text) {
		return Fields{}, false
	}
	return Fields{Kind: ImmediateMarker}, true
}

type relativeOffset struct{}

func (relativeOffset) Kind() Kind { return RelativeOffset }

// TryMatch accepts "3h", "4 d", "15 minutes", "2 wks ago", "1 yr" and so on.
// A trailing "ago" is allowed but not required.
func (relativeOffset) TryMatch(text string) (Fields, bool) {
	match := relativeRegex.FindStringSubmatch(text)
	if match == nil {
		return Fields{}, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		//out of int range
		return Fields{}, false
	}
	unit, ok := unitOf(strings.ToLower(match[2]))
	if !ok {
		return Fields{}, false
	}
	return Fields{Kind: RelativeOffset, Amount: n, Unit: unit}, true
}

func unitOf(word string) (Unit, bool) {
	switch {
	case strings.HasPrefix(word, "mo"):
		return Month, true
	case strings.HasPrefix(word, "y"):
		return Year, true
	case strings.HasPrefix(word, "w"):
		return Week, true
	case strings.HasPrefix(word, "d"):
		return Day, true
	case strings.HasPrefix(word, "h"):
		return Hour, true
	case strings.HasPrefix(word, "m"):
		return Minute, true
	case strings.HasPrefix(word, "s"):
		return Second, true
	}
	return 0, false
}

type yesterdayAt struct{}

func (yesterdayAt) Kind() Kind { return YesterdayAt }

func (yesterdayAt) TryMatch(text string) (Fields, bool) {
	match := yesterdayRegex.FindStringSubmatch(text)
	if match == nil {
		return Fields{}, false
	}
	h, m, ok := clock24(match[1], match[2], match[3])
	if !ok {
		return Fields{}, false
	}
	return Fields{Kind: YesterdayAt, Hour: h, Minute: m}, true
}

type monthDayAt struct{}

func (monthDayAt) Kind() Kind { return MonthDayAt }

func (monthDayAt) TryMatch(text string) (Fields, bool) {
	match := monthDayRegex.FindStringSubmatch(text)
	if match == nil {
		return Fields{}, false
	}
	month, ok := lookupMonth(match[1])
	if !ok {
		return Fields{}, false
	}
	day, err := strconv.Atoi(match[2])
	if err != nil || day < 1 || day > 31 {
		return Fields{}, false
	}
	h, m, ok := clock24(match[3], match[4], match[5])
	if !ok {
		return Fields{}, false
	}
	return Fields{Kind: MonthDayAt, Month: month, Day: day, Hour: h, Minute: m}, true
}

type monthDayYearAt struct{}

func (monthDayYearAt) Kind() Kind { return MonthDayYearAt }

func (monthDayYearAt) TryMatch(text string) (Fields, bool) {
	match := monthDayYearRegex.FindStringSubmatch(text)
	if match == nil {
		return Fields{}, false
	}
	month, ok := lookupMonth(match[1])
	if !ok {
		return Fields{}, false
	}
	day, err := strconv.Atoi(match[2])
	if err != nil || day < 1 || day > 31 {
		return Fields{}, false
	}
	year, err := strconv.Atoi(match[3])
	if err != nil || year < 1 {
		return Fields{}, false
	}
	h, m, ok := clock24(match[4], match[5], match[6])
	if !ok {
		return Fields{}, false
	}
	return Fields{Kind: MonthDayYearAt, Month: month, Day: day, Year: year, Hour: h, Minute: m}, true
}

type absoluteLayout struct {
	layout string
	zoned  bool
	//zone comes from an abbreviation only, e.g. "EST"
	abbrev bool
}

// Go gives unknown zone abbreviations a zero offset; these are the ones
// scraped pages actually print. Anything else is rejected.
var zoneAbbrevOffsets = map[string]int{
	"UTC": 0, "GMT": 0, "UT": 0, "Z": 0,
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

// Machine-readable formats seen in datetime attributes and tooltips.
var absoluteLayouts = []absoluteLayout{
	{time.RFC3339Nano, true, false},
	{"2006-01-02T15:04:05.999999999Z0700", true, false},
	{time.RFC1123Z, true, false},
	{time.RFC1123, true, true},
	{time.RFC850, true, true},
	{time.RubyDate, true, false},
	{time.UnixDate, true, true},
	{"2006-01-02 15:04:05 -0700 MST", true, false},
	{"2006-01-02 15:04:05 -0700", true, false},
	{"2006-01-02T15:04:05.999999999", false, false},
	{"2006-01-02 15:04:05", false, false},
	{"2006-01-02 15:04", false, false},
	{"2006-01-02", false, false},
	{"2006/01/02 15:04:05", false, false},
	{"2006/01/02 15:04", false, false},
	{"2006/01/02", false, false},
	{time.ANSIC, false, false},
	{"Monday, January 2, 2006 3:04 PM", false, false},
	{"January 2, 2006 3:04 PM", false, false},
	{"January 2, 2006", false, false},
	{"Jan 2, 2006", false, false},
	{"January 2 2006", false, false},
	{"Jan 2 2006", false, false},
	{"2 January 2006", false, false},
	{"1/2/2006 3:04 PM", false, false},
	{"1/2/2006", false, false},
}

type genericFallback struct{}

func (genericFallback) Kind() Kind { return GenericFallback }

func (genericFallback) TryMatch(text string) (Fields, bool) {
	if text == "" {
		return Fields{}, false
	}

	var ok bool
	for _, l := range absoluteLayouts {
		//parse in UTC so zone abbreviations never resolve against the host zone
		t, err := time.ParseInLocation(l.layout, text, time.UTC)
		if err != nil {
			continue
		}
		if l.abbrev {
			if t, ok = applyZoneAbbrev(t); !ok {
				return Fields{}, false
			}
		}
		return Fields{Kind: GenericFallback, Absolute: t, Floating: !l.zoned}, true
	}
	return Fields{}, false
}

func applyZoneAbbrev(t time.Time) (time.Time, bool) {
	name, _ := t.Zone()
	hours, ok := zoneAbbrevOffsets[name]
	if !ok {
		return time.Time{}, false
	}
	loc := time.FixedZone(name, hours*60*60)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), true
}

// epochTimestamp reads Unix seconds or milliseconds (data-utime and friends).
// Only structured attributes go through it; a bare number in visible text is
// more likely a phone number or an ID.
type epochTimestamp struct{}

func (epochTimestamp) Kind() Kind { return GenericFallback }

func (epochTimestamp) TryMatch(text string) (Fields, bool) {
	if !epochRegex.MatchString(text) {
		return Fields{}, false
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Fields{}, false
	}
	t := time.Unix(v, 0).UTC()
	if len(text) == 13 {
		t = time.UnixMilli(v).UTC()
	}
	return Fields{Kind: GenericFallback, Absolute: t}, true
}
