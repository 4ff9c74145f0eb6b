package dateinput

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmpty   = errors.New("empty date")
	ErrParsing = errors.New("no date format matches")
)

// Parse reads human date input relative to now. Accepted forms:
//
//	today, tomorrow, yesterday (tod, tom, yday)
//	monday .. sunday (mon .. sun), the next such day
//	in 3 days, 2w, 1 month ago, in 4 hours
//	21st, 21-04, 21/04/2024, 2024-04-21, feb 21, 21 february 2024
//
// A bare number counts days from today.
//
// Dates may be followed by a time of day ("tomorrow 9:30", "21-04 3pm").
// Results without a time of day are at midnight in now's location.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	if s == "now" {
		return now, nil
	}
	if t, err := parseDay(s, now); err == nil {
		return t, nil
	}
	// trailing clock time
	if i := strings.LastIndexByte(s, ' '); i > 0 {
		if clock, ok := parseClock(s[i+1:]); ok {
			day, err := parseDay(strings.TrimSpace(s[:i]), now)
			if err != nil {
				return time.Time{}, err
			}
			return day.Add(clock), nil
		}
	}
	return time.Time{}, ErrParsing
}

func parseDay(s string, now time.Time) (time.Time, error) {
	today := StartOfDay(now)
	switch s {
	case "today", "tod":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	}
	if d, err := parseWeekday(s); err == nil {
		return nextWeekday(today, d), nil
	}
	if t, err := parseRelative(s, now); err == nil {
		return t, nil
	}
	return parseAbsolute(stripOrdinal(s), now)
}

// StartOfDay is midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		name := strings.ToLower(i.String())
		if s == name || s == name[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

func nextWeekday(t time.Time, d time.Weekday) time.Time {
	day := int(d - t.Weekday())
	if day < 0 {
		day += 7
	}
	return t.AddDate(0, 0, day)
}

type unit struct {
	key  string
	hour bool
	days int
}

var units = []unit{
	{key: "hours", hour: true},
	{key: "days", days: 1},
	{key: "weeks", days: 7},
	{key: "months", days: 30},
	{key: "years", days: 365},
}

// parseRelative handles "in 3 days", "3d", "+2w" and "2 weeks ago". A bare
// number counts days. Hour offsets keep the time of day, day offsets start
// at midnight.
func parseRelative(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "in"))
	var negative bool
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "+")

	rest, n, err := parseInt(s)
	if err != nil {
		return time.Time{}, err
	}
	rest = strings.TrimSpace(rest)
	if strings.HasSuffix(rest, "ago") {
		negative = true
		rest = strings.TrimSpace(strings.TrimSuffix(rest, "ago"))
	}
	if negative {
		n = -n
	}
	if rest == "" {
		return StartOfDay(now).AddDate(0, 0, n), nil
	}
	for _, u := range units {
		if len(rest) > len(u.key) || u.key[:len(rest)] != rest {
			continue
		}
		if u.hour {
			return now.Add(time.Duration(n) * time.Hour), nil
		}
		return StartOfDay(now).AddDate(0, 0, n*u.days), nil
	}
	return time.Time{}, errors.New("invalid suffix, expected 'hours', 'days', 'weeks', 'months' or 'years'")
}

// parseInt splits the leading decimal number off s.
func parseInt(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return s, 0, errors.New("expected a number")
	}
	n, err := strconv.Atoi(s[:i])
	return s[i:], n, err
}

func stripOrdinal(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if len(f) < 3 || f[0] < '0' || f[0] > '9' {
			continue
		}
		switch f[len(f)-2:] {
		case "st", "nd", "rd", "th":
			fields[i] = f[:len(f)-2]
		}
	}
	return strings.Join(fields, " ")
}

type layout struct {
	format   string
	hasMonth bool
	hasYear  bool
}

var layouts = []layout{
	{"_2", false, false},
	{"_2/01", true, false},
	{"_2/01/06", true, true},
	{"_2/01/2006", true, true},
	{"_2-01", true, false},
	{"_2-01-06", true, true},
	{"_2-01-2006", true, true},
	{"2006-01-02", true, true},
	{"Jan _2", true, false},
	{"Jan _2 06", true, true},
	{"Jan _2 2006", true, true},
	{"January _2", true, false},
	{"January _2 2006", true, true},
	{"_2 Jan", true, false},
	{"_2 Jan 06", true, true},
	{"_2 Jan 2006", true, true},
	{"_2 January", true, false},
	{"_2 January 2006", true, true},
}

// parseAbsolute fills the parts missing from the input with now's month and
// year.
func parseAbsolute(s string, now time.Time) (time.Time, error) {
	for _, l := range layouts {
		t, err := time.Parse(l.format, s)
		if err != nil {
			continue
		}
		year, month := t.Year(), t.Month()
		if !l.hasYear {
			year = now.Year()
		}
		if !l.hasMonth {
			month = now.Month()
		}
		out := time.Date(year, month, t.Day(), 0, 0, 0, 0, now.Location())
		if out.Day() != t.Day() {
			return time.Time{}, errors.New("day out of range for month")
		}
		return out, nil
	}
	return time.Time{}, ErrParsing
}

var clocks = []string{"15:04", "3pm", "3:04pm"}

func parseClock(s string) (time.Duration, bool) {
	for _, f := range clocks {
		t, err := time.Parse(f, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// Format describes t relative to now: "today", "in 3 days", "2 weeks ago".
func Format(t, now time.Time) string {
	days := int(math.Round(StartOfDay(t).Sub(StartOfDay(now)).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return span(-days) + " ago"
	default:
		return "in " + span(days)
	}
}

func span(days int) string {
	n, unit := days, "day"
	switch {
	case days < 14:
	// max 1 month
	case days <= 31:
		n, unit = days/7, "week"
	default:
		n, unit = days/31, "month"
	}
	if n > 1 {
		unit += "s"
	}
	return strconv.Itoa(n) + " " + unit
}
