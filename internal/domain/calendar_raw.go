package domain

import (
	"github.com/xerproject/xersched/internal/xer"
)

// RawCalendar is the unparsed typed view over one CALENDAR row. The
// bracketed mini-grammar in Data is decoded separately by the calendar
// package (SPEC_FULL.md component C3), which this package does not
// depend on.
type RawCalendar struct {
	ClndrID  string
	Name     string
	Data     string
	DayHrCnt float64
}

func buildRawCalendars(file *xer.File) ([]*RawCalendar, map[string]*RawCalendar) {
	table := file.Table(tblCalendar)
	if table == nil {
		return nil, map[string]*RawCalendar{}
	}
	cals := make([]*RawCalendar, 0, len(table.Rows))
	byID := make(map[string]*RawCalendar, len(table.Rows))
	for _, row := range table.Rows {
		c := &RawCalendar{
			ClndrID:  row.Get(table, colClndrID),
			Name:     row.Get(table, colClndrName),
			Data:     row.Get(table, colClndrData),
			DayHrCnt: ParseHours(row.Get(table, colDayHrCnt)),
		}
		cals = append(cals, c)
		byID[c.ClndrID] = c
	}
	return cals, byID
}
