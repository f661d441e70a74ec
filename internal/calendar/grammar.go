// Package calendar decodes the bracketed mini-grammar found in the
// CALENDAR table's clndr_data column (SPEC_FULL.md component C3) and
// implements the working-day arithmetic built on top of it (component C4).
package calendar

import (
	"regexp"
	"time"

	"github.com/xerproject/xersched/internal/diagnostics"
)

// TimeWindow is one working-hours interval within a day, stored as
// minutes since midnight so comparisons avoid timezone concerns.
type TimeWindow struct {
	StartMinute int
	EndMinute   int
}

// Calendar is the decoded form of one CALENDAR row: a default window list
// per ISO weekday (1=Monday..7=Sunday) plus a sparse map of exception
// dates that override the weekday default, per spec.md section 4.3.
type Calendar struct {
	ClndrID     string
	Name        string
	HoursPerDay float64

	weekday    map[int][]TimeWindow
	exceptions map[string][]TimeWindow // key: exception date formatted as "2006-01-02"; absent value ([]) means non-working
}

var (
	workdayPattern    = regexp.MustCompile(`\(0\|\|([1-7])\(\)([^()]*)\)`)
	exceptionPattern  = regexp.MustCompile(`\(0\|\|(\d+)\(d\|(\d+)\)(?:\(([^()]*)\))?\(\)\)`)
	hourPattern       = regexp.MustCompile(`s\|(\d{2}):(\d{2})\|f\|(\d{2}):(\d{2})`)
)

// Decode parses the grammar described in spec.md section 4.3 into a
// Calendar. Malformed fragments are skipped and reported through diags
// rather than aborting the decode, matching the tolerant behavior of
// original_source's calendar_parser.py.
func Decode(clndrID, name, data string, hoursPerDay float64, diags *diagnostics.List) *Calendar {
	c := &Calendar{
		ClndrID:     clndrID,
		Name:        name,
		HoursPerDay: hoursPerDay,
		weekday:     map[int][]TimeWindow{},
		exceptions:  map[string][]TimeWindow{},
	}

	for _, m := range workdayPattern.FindAllStringSubmatch(data, -1) {
		day := int(m[1][0] - '0')
		windows := parseHours(m[2], diags, clndrID)
		c.weekday[day] = mergeOverlapping(windows)
	}

	for _, m := range exceptionPattern.FindAllStringSubmatch(data, -1) {
		date, ok := serialToDate(m[2])
		if !ok {
			if diags != nil {
				diags.Warnf(diagnostics.KindCalendarParseWarning, "", "calendar %s: unparseable exception serial date %q", clndrID, m[2])
			}
			continue
		}
		key := date.Format("2006-01-02")
		windows := parseHours(m[3], diags, clndrID)
		if len(windows) == 0 {
			c.exceptions[key] = nil
			continue
		}
		c.exceptions[key] = mergeOverlapping(windows)
	}

	return c
}

func parseHours(hoursStr string, diags *diagnostics.List, clndrID string) []TimeWindow {
	var windows []TimeWindow
	for _, hm := range hourPattern.FindAllStringSubmatch(hoursStr, -1) {
		start := atoi(hm[1])*60 + atoi(hm[2])
		end := atoi(hm[3])*60 + atoi(hm[4])
		if end <= start {
			if diags != nil {
				diags.Warnf(diagnostics.KindCalendarParseWarning, "", "calendar %s: discarding non-increasing time window %s:%s-%s:%s", clndrID, hm[1], hm[2], hm[3], hm[4])
			}
			continue
		}
		windows = append(windows, TimeWindow{StartMinute: start, EndMinute: end})
	}
	return windows
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func mergeOverlapping(windows []TimeWindow) []TimeWindow {
	if len(windows) == 0 {
		return nil
	}
	sorted := append([]TimeWindow(nil), windows...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].StartMinute > sorted[j].StartMinute; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	merged := []TimeWindow{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.StartMinute <= last.EndMinute {
			if cur.EndMinute > last.EndMinute {
				last.EndMinute = cur.EndMinute
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// IsWorkingDay reports whether d has any working hours on this calendar,
// checking exception dates before the weekday default (spec.md section
// 4.3). A calendar that decoded with no weekday entries at all is the
// degenerate case of section 4.4: every non-excepted day is working,
// rather than none.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	key := d.Format("2006-01-02")
	if windows, ok := c.exceptions[key]; ok {
		return len(windows) > 0
	}
	if len(c.weekday) == 0 {
		return true
	}
	windows := c.weekday[isoWeekday(d)]
	return len(windows) > 0
}

// Windows returns the working-hours windows in effect for d, or nil if d
// is not a working day. On a calendar with no weekday entries it also
// returns nil for days that are not exceptions, although IsWorkingDay
// reports those days as working.
func (c *Calendar) Windows(d time.Time) []TimeWindow {
	key := d.Format("2006-01-02")
	if windows, ok := c.exceptions[key]; ok {
		return windows
	}
	return c.weekday[isoWeekday(d)]
}

func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
