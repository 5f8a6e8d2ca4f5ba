package postdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchers_Order(t *testing.T) {
	var kinds []Kind
	for _, m := range DefaultMatchers() {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, []Kind{ImmediateMarker, RelativeOffset, YesterdayAt, MonthDayAt, MonthDayYearAt, GenericFallback}, kinds)
}

func TestRelativeOffset_TryMatch(t *testing.T) {
	tests := []struct {
		input  string
		amount int
		unit   Unit
	}{
		{"1m", 1, Minute},
		{"2 h", 2, Hour},
		{"15 minutes", 15, Minute},
		{"5 mins ago", 5, Minute},
		{"6 hours", 6, Hour},
		{"3 hrs", 3, Hour},
		{"2 days", 2, Day},
		{"4 d", 4, Day},
		{"10s", 10, Second},
		{"45 secs ago", 45, Second},
		{"2 wks", 2, Week},
		{"3 mos", 3, Month},
		{"1 month ago", 1, Month},
		{"7 yrs", 7, Year},
		{"1 year ago", 1, Year},
		{"1000 d", 1000, Day},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, ok := relativeOffset{}.TryMatch(tt.input)
			assert.True(t, ok)
			assert.Equal(t, RelativeOffset, f.Kind)
			assert.Equal(t, tt.amount, f.Amount)
			assert.Equal(t, tt.unit, f.Unit)
		})
	}

	for _, input := range []string{"now", "3 moments", "12:00 PM", "2025-10-07", "Oct 7"} {
		_, ok := relativeOffset{}.TryMatch(input)
		assert.False(t, ok, input)
	}
}

func TestYesterdayAt_TryMatch(t *testing.T) {
	tests := []struct {
		input  string
		ok     bool
		hour   int
		minute int
	}{
		{"Yesterday at 12:00 AM", true, 0, 0},
		{"Yesterday at 12:30 PM", true, 12, 30},
		{"yesterday at 3:45 pm", true, 15, 45},
		{"Yesterday at 11:59PM", true, 23, 59},
		{"Yesterday at 1:05 AM", true, 1, 5},
		{"Yesterday at 0:30 AM", false, 0, 0},
		{"Yesterday at 13:00 PM", false, 0, 0},
		{"Yesterday", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, ok := yesterdayAt{}.TryMatch(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.hour, f.Hour)
				assert.Equal(t, tt.minute, f.Minute)
			}
		})
	}
}

func TestMonthDayAt_TryMatch(t *testing.T) {
	f, ok := monthDayAt{}.TryMatch("December 31 at 11:59 PM")
	assert.True(t, ok)
	assert.Equal(t, Fields{Kind: MonthDayAt, Month: time.December, Day: 31, Hour: 23, Minute: 59}, f)

	f, ok = monthDayAt{}.TryMatch("jan. 2 at 7:00 am")
	assert.True(t, ok)
	assert.Equal(t, time.January, f.Month)
	assert.Equal(t, 7, f.Hour)

	//an explicit year belongs to the next class
	_, ok = monthDayAt{}.TryMatch("December 31, 2024 at 11:59 PM")
	assert.False(t, ok)

	_, ok = monthDayAt{}.TryMatch("December 0 at 11:59 PM")
	assert.False(t, ok)
}

func TestMonthDayYearAt_TryMatch(t *testing.T) {
	f, ok := monthDayYearAt{}.TryMatch("Saturday, September 13, 2025 at 2:34 PM")
	assert.True(t, ok)
	assert.Equal(t, Fields{Kind: MonthDayYearAt, Month: time.September, Day: 13, Year: 2025, Hour: 14, Minute: 34}, f)

	f, ok = monthDayYearAt{}.TryMatch("May 1 2020 at 12:01 AM")
	assert.True(t, ok)
	assert.Equal(t, 2020, f.Year)
	assert.Equal(t, 0, f.Hour)

	_, ok = monthDayYearAt{}.TryMatch("September 13 at 2:34 PM")
	assert.False(t, ok)
}

func TestGenericFallback_TryMatch(t *testing.T) {
	f, ok := genericFallback{}.TryMatch("2025-10-07")
	assert.True(t, ok)
	assert.True(t, f.Floating)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), f.Absolute)

	f, ok = genericFallback{}.TryMatch("2025-10-07T10:30:00Z")
	assert.True(t, ok)
	assert.False(t, f.Floating)

	f, ok = genericFallback{}.TryMatch("Mon, 06 Oct 2025 10:30:00 EST")
	assert.True(t, ok)
	assert.False(t, f.Floating)
	assert.Equal(t, time.Date(2025, 10, 6, 15, 30, 0, 0, time.UTC), f.Absolute.UTC())

	for _, input := range []string{"", "3h", "yesterday", "12345", "1757750400", "Mon, 06 Oct 2025 10:30:00 XYZ"} {
		_, ok := genericFallback{}.TryMatch(input)
		assert.False(t, ok, input)
	}
}

func TestEpochTimestamp_TryMatch(t *testing.T) {
	f, ok := epochTimestamp{}.TryMatch("1757750400")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 9, 13, 8, 0, 0, 0, time.UTC), f.Absolute)

	f, ok = epochTimestamp{}.TryMatch("1757750400123")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 9, 13, 8, 0, 0, 123_000_000, time.UTC), f.Absolute)

	for _, input := range []string{"", "12345", "175775040012", "17577504001234", "1757750400s"} {
		_, ok := epochTimestamp{}.TryMatch(input)
		assert.False(t, ok, input)
	}
}

func TestImmediateMarker_WholeWords(t *testing.T) {
	_, ok := immediateMarker{}.TryMatch("Just now")
	assert.True(t, ok)
	_, ok = immediateMarker{}.TryMatch("justnow")
	assert.False(t, ok)
	_, ok = immediateMarker{}.TryMatch("adjust nowhere")
	assert.False(t, ok)
}

func TestSubtract_RejectsOverflow(t *testing.T) {
	ref := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	for _, u := range []Unit{Second, Minute, Hour, Day, Week, Month, Year} {
		_, ok := subtract(ref, int(^uint(0)>>1), u)
		assert.False(t, ok)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Just now", normalizeText("  Just   now\n"))
	assert.Equal(t, "3:45 PM", normalizeText("3:45\u202fPM"))
	assert.Equal(t, "", normalizeText("\u200b \t"))
}
