package calendar

import (
	"strconv"
	"time"
)

// excelEpoch is the origin 1899-12-30 used for serial dates of 60 or more,
// reproducing the spreadsheet 1900-leap-year bug (1900 is treated as a
// leap year even though it is not), per original_source's
// calendar_parser.py `_excel_date_to_datetime`.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// alternateEpoch is used for serial values below 60, which fall before
// the fictitious February 29, 1900 and so need no day-count correction.
var alternateEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// serialToDate converts a vendor spreadsheet serial day count to a
// calendar date. It returns ok=false if value does not parse as an
// integer or floating-point serial number.
func serialToDate(value string) (time.Time, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Time{}, false
	}
	days := int(f)
	if days < 60 {
		return alternateEpoch.AddDate(0, 0, days-1), true
	}
	return excelEpoch.AddDate(0, 0, days), true
}
