package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yigit/degreeplan/internal/app/models"
)

// ErrMalformedSchedule is returned for schedule strings that cannot be parsed
var ErrMalformedSchedule = errors.New("malformed schedule string")

// Interval is one weekly meeting: a day and a [Start, End) range in minutes after midnight
type Interval struct {
	Day   string
	Start int
	End   int
}

// Overlaps reports whether two meetings share a day and their ranges intersect.
// Ranges that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	if i.Day != o.Day {
		return false
	}
	return !(i.End <= o.Start || o.End <= i.Start)
}

var days = map[string]string{
	"MON": "MON", "MONDAY": "MON", "M": "MON",
	"TUE": "TUE", "TUESDAY": "TUE", "TUES": "TUE", "T": "TUE",
	"WED": "WED", "WEDNESDAY": "WED", "W": "WED",
	"THU": "THU", "THURSDAY": "THU", "THUR": "THU", "THURS": "THU", "R": "THU",
	"FRI": "FRI", "FRIDAY": "FRI", "F": "FRI",
	"SAT": "SAT", "SATURDAY": "SAT",
	"SUN": "SUN", "SUNDAY": "SUN",
}

// ParseSchedule parses strings such as "MON 10:00am-11:15am, WED 10:00am-11:15am".
// Ranges may be separated by commas, semicolons or plain spaces, and several days may share
// a range ("MON/WED 9:00am-9:50am" or "MON WED 9:00am-9:50am"). "TBD" and "" yield no intervals.
func ParseSchedule(s string) ([]Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, models.ScheduleTBD) {
		return nil, nil
	}

	s = strings.NewReplacer(",", " ", ";", " ").Replace(s)
	s = spacedDash.ReplaceAllString(s, "-")
	s = spacedMeridiem.ReplaceAllString(s, "$1$2")

	var out []Interval
	var pending []string
	for _, tok := range strings.Fields(s) {
		if !strings.ContainsAny(tok, "0123456789") {
			for _, d := range strings.Split(tok, "/") {
				day, ok := days[strings.ToUpper(d)]
				if !ok {
					return nil, fmt.Errorf("%w: unknown day %q", ErrMalformedSchedule, d)
				}
				pending = append(pending, day)
			}
			continue
		}

		if len(pending) == 0 {
			return nil, fmt.Errorf("%w: range %q has no day", ErrMalformedSchedule, tok)
		}
		start, end, err := parseRange(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
		}
		for _, day := range pending {
			out = append(out, Interval{Day: day, Start: start, End: end})
		}
		pending = nil
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: %q ends without a time range", ErrMalformedSchedule, s)
	}
	return out, nil
}

var (
	spacedDash     = regexp.MustCompile(`\s*-\s*`)
	spacedMeridiem = regexp.MustCompile(`(?i)(\d)\s+([ap]m)\b`)
)

func parseRange(s string) (int, int, error) {
	bounds := strings.Split(s, "-")
	if len(bounds) != 2 {
		return 0, 0, fmt.Errorf("range %q needs a start and an end", s)
	}
	start, err := parseClock(bounds[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(bounds[1])
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("range %q ends before it starts", s)
	}
	return start, end, nil
}

// parseClock converts "HH:MMam" / "HH:MMpm" into minutes after midnight
func parseClock(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var pm bool
	switch {
	case strings.HasSuffix(s, "am"):
		s = strings.TrimSuffix(s, "am")
	case strings.HasSuffix(s, "pm"):
		s = strings.TrimSuffix(s, "pm")
		pm = true
	default:
		return 0, fmt.Errorf("time %q lacks am/pm", s)
	}

	hh, mm, found := strings.Cut(s, ":")
	if !found {
		mm = "00"
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}

	hour %= 12
	if pm {
		hour += 12
	}
	return hour*60 + minute, nil
}

// Conflicts reports whether two schedule strings have an overlapping meeting. "TBD" and ""
// never conflict. A string that cannot be parsed is reported as an error.
func Conflicts(a, b string) (bool, error) {
	ia, err := ParseSchedule(a)
	if err != nil {
		return false, err
	}
	ib, err := ParseSchedule(b)
	if err != nil {
		return false, err
	}
	for _, x := range ia {
		for _, y := range ib {
			if x.Overlaps(y) {
				return true, nil
			}
		}
	}
	return false, nil
}
