package mensa

import (
	"regexp"
	"time"
)

// Weekday ordinals follow ISO-8601: 1=Monday .. 7=Sunday.
const (
	Monday = 1 + iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Date returns the UTC-midnight time used as a MenuMap key.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ResolveDate computes the calendar date of the given weekday (1=Monday ..
// 7=Sunday) in the given ISO-8601 week. Week 1 is the week containing the
// year's first Thursday. It returns an EINVALID error if the triple does
// not correspond to a valid date under this calendar, e.g. week 53 of a
// 52-week year.
func ResolveDate(year, week, weekday int) (time.Time, error) {
	if weekday < Monday || weekday > Sunday {
		return time.Time{}, Errorf(EINVALID, "weekday ordinal %d out of range 1-7", weekday)
	}
	if week < 1 || week > 53 {
		return time.Time{}, Errorf(EINVALID, "week number %d out of range 1-53", week)
	}

	// January 4th is always part of ISO week 1.
	jan4 := Date(year, time.January, 4)
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := jan4.AddDate(0, 0, 1-offset)
	date := monday.AddDate(0, 0, (week-1)*7+(weekday-1))

	// Round-trip check: the computed date must map back to the requested
	// week, or the week number does not exist in this year.
	if y, w := date.ISOWeek(); y != year || w != week {
		return time.Time{}, Errorf(EINVALID, "year %d has no ISO week %d", year, week)
	}
	return date, nil
}

// writtenDateRe matches a numeric day.month.year date anywhere in a string,
// tolerating a leading weekday name ("Mo 27.03.2017", "Montag, 27.03.2017").
var writtenDateRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)

// ParseWrittenDate parses a human-written date string as found in HTML date
// anchors. It returns an EINVALID error on unrecognized formats; callers
// are expected to skip the offending entry rather than abort the whole
// extraction.
func ParseWrittenDate(s string) (time.Time, error) {
	m := writtenDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, Errorf(EINVALID, "unrecognized date string %q", s)
	}
	date, err := time.Parse("2.1.2006", m[1]+"."+m[2]+"."+m[3])
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid date in %q: %v", s, err)
	}
	return Date(date.Year(), date.Month(), date.Day()), nil
}
