package postdate

import "time"

// Anything further back than this cannot land inside years 1..9999.
const (
	maxOffsetYears   = 10000
	maxOffsetSeconds = int64(maxOffsetYears) * 366 * 24 * 60 * 60
)

var unitSeconds = map[Unit]int64{
	Second: 1,
	Minute: 60,
	Hour:   60 * 60,
}

// resolve anchors the matched fields to ref. The returned instant is still in
// ref's location; Parser converts it to UTC.
func (f Fields) resolve(ref time.Time) (time.Time, bool) {
	loc := ref.Location()

	switch f.Kind {
	case ImmediateMarker:
		return ref, true

	case RelativeOffset:
		return subtract(ref, f.Amount, f.Unit)

	case YesterdayAt:
		y, m, d := ref.AddDate(0, 0, -1).Date()
		return time.Date(y, m, d, f.Hour, f.Minute, 0, 0, loc), true

	case MonthDayAt:
		//posted labels describe the past: a date after ref belongs to last year
		t, ok := calendarDate(ref.Year(), f.Month, f.Day, f.Hour, f.Minute, loc)
		if !ok || t.After(ref) {
			t, ok = calendarDate(ref.Year()-1, f.Month, f.Day, f.Hour, f.Minute, loc)
		}
		return t, ok

	case MonthDayYearAt:
		return calendarDate(f.Year, f.Month, f.Day, f.Hour, f.Minute, loc)

	case GenericFallback:
		if !f.Floating {
			return f.Absolute, true
		}
		a := f.Absolute
		return time.Date(a.Year(), a.Month(), a.Day(), a.Hour(), a.Minute(), a.Second(), a.Nanosecond(), loc), true
	}
	return time.Time{}, false
}

// subtract walks back n units from ref. Sub-day units are exact durations and
// keep ref's sub-second part; day and larger units move calendar fields.
func subtract(ref time.Time, n int, u Unit) (time.Time, bool) {
	if n < 0 {
		return time.Time{}, false
	}

	switch u {
	case Second, Minute, Hour:
		per := unitSeconds[u]
		if int64(n) > maxOffsetSeconds/per {
			return time.Time{}, false
		}
		return time.Unix(ref.Unix()-int64(n)*per, int64(ref.Nanosecond())).In(ref.Location()), true
	case Day:
		if n > maxOffsetYears*366 {
			return time.Time{}, false
		}
		return ref.AddDate(0, 0, -n), true
	case Week:
		if n > maxOffsetYears*53 {
			return time.Time{}, false
		}
		return ref.AddDate(0, 0, -7*n), true
	case Month:
		if n > maxOffsetYears*12 {
			return time.Time{}, false
		}
		return ref.AddDate(0, -n, 0), true
	case Year:
		if n > maxOffsetYears {
			return time.Time{}, false
		}
		return ref.AddDate(-n, 0, 0), true
	}
	return time.Time{}, false
}

// calendarDate builds a wall-clock time and rejects dates time.Date would
// have normalized, such as February 30.
func calendarDate(year int, month time.Month, day, hour, minute int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
