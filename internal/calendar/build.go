package calendar

import (
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
)

// BuildSet decodes every calendar in a domain.Model into a Set, recording
// a diagnostic for each calendar whose clndr_data fails to yield any
// weekday or exception entries (an empty decode, not necessarily an
// error, but worth surfacing per spec.md section 7).
func BuildSet(calendars []*domain.RawCalendar, diags *diagnostics.List) *Set {
	decoded := make([]*Calendar, 0, len(calendars))
	for _, raw := range calendars {
		c := Decode(raw.ClndrID, raw.Name, raw.Data, raw.DayHrCnt, diags)
		if len(c.weekday) == 0 && len(c.exceptions) == 0 {
			diags.Warnf(diagnostics.KindCalendarParseWarning, "", "calendar %s (%s) decoded to zero working windows", raw.ClndrID, raw.Name)
		}
		decoded = append(decoded, c)
	}
	return NewSet(decoded...)
}
