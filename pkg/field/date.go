package field

import (
	"strconv"
	"strings"
	"time"
)

// Padding decides how a partial date (year, or year and month) is completed.
type Padding int

const (
	// PadNone rejects partial dates.
	PadNone Padding = iota
	// PadStart completes to the first day of the period.
	PadStart
	// PadEnd completes to the last day of the period.
	PadEnd
)

// Date part parameter suffixes: "<name>-year", "<name>-month", "<name>-day".
const (
	PartYear  = "year"
	PartMonth = "month"
	PartDay   = "day"

	PartSeparator = "-"
)

// Layouts used for API filters and for display.
const (
	APIDateLayout     = "2006-01-02"
	DisplayDateLayout = "02-01-2006"
)

// Date validation messages.
const (
	MsgMonthAndDayRequired = "Month and day are required."
	MsgDayRequired         = "Day is required."
	MsgYearRequired        = "Year is required."
	MsgMonthRequiredForDay = "Month is required if day is provided."
	MsgYearInteger         = "Year must be an integer."
	MsgYearRange           = "Year must be between 1 and 9999."
	MsgMonthInteger        = "Month must be an integer."
	MsgMonthRange          = "Month must be between 1 and 12."
	MsgDayInteger          = "Day must be an integer."
	MsgDayRange            = "Day must be between 1 and 31."
	MsgNotARealDate        = "Entered date must be a real date, for example Year 2017, Month 9, Day 23"
)

// DateParts holds the raw, trimmed date components.
type DateParts struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// Empty reports whether no component was supplied.
func (p DateParts) Empty() bool {
	return p.Day == "" && p.Month == "" && p.Year == ""
}

// Date is a date entered as separate day, month and year parameters.
type Date struct {
	Base
	padding Padding
	parts   DateParts
	cleaned time.Time
	ok      bool
}

// NewDate returns a date field.
func NewDate(opts ...Option) *Date {
	o := applyOptions(opts)
	return &Date{Base: newBase(o), padding: o.padding}
}

// Padding returns the configured padding strategy.
func (f *Date) Padding() Padding { return f.padding }

// PartName returns the request parameter name of a date part.
func (f *Date) PartName(part string) string {
	return f.name + PartSeparator + part
}

func (f *Date) ParamNames() []string {
	return []string{f.PartName(PartYear), f.PartName(PartMonth), f.PartName(PartDay)}
}

func (f *Date) SingleValued() bool { return true }

func (f *Date) Bind(name string, src Source) {
	f.bindName(name)
	f.parts = DateParts{
		Day:   strings.TrimSpace(last(src.GetAll(f.PartName(PartDay)))),
		Month: strings.TrimSpace(last(src.GetAll(f.PartName(PartMonth)))),
		Year:  strings.TrimSpace(last(src.GetAll(f.PartName(PartYear)))),
	}
}

// Value returns the bound components.
func (f *Date) Value() DateParts { return f.parts }

// Components returns the components keyed by parameter name.
func (f *Date) Components() map[string]string {
	return map[string]string{
		f.PartName(PartYear):  f.parts.Year,
		f.PartName(PartMonth): f.parts.Month,
		f.PartName(PartDay):   f.parts.Day,
	}
}

func (f *Date) IsValid() bool {
	f.reset()
	f.cleaned, f.ok = time.Time{}, false
	d, ok, err := f.clean()
	if err != nil {
		f.record(err)
		return false
	}
	f.cleaned, f.ok = d, ok
	return true
}

func (f *Date) clean() (time.Time, bool, error) {
	p := f.parts
	if p.Empty() {
		return time.Time{}, false, f.validateRequired(true)
	}

	// presence
	if p.Year == "" {
		return time.Time{}, false, invalid(MsgYearRequired)
	}
	if p.Day != "" && p.Month == "" {
		return time.Time{}, false, invalid(MsgMonthRequiredForDay)
	}
	if f.padding == PadNone {
		switch {
		case p.Month == "" && p.Day == "":
			return time.Time{}, false, invalid(MsgMonthAndDayRequired)
		case p.Day == "":
			return time.Time{}, false, invalid(MsgDayRequired)
		}
	}

	// ranges of the supplied parts
	year, err := parsePart(p.Year, 1, 9999, MsgYearInteger, MsgYearRange)
	if err != nil {
		return time.Time{}, false, err
	}
	month := 0
	if p.Month != "" {
		if month, err = parsePart(p.Month, 1, 12, MsgMonthInteger, MsgMonthRange); err != nil {
			return time.Time{}, false, err
		}
	}
	day := 0
	if p.Day != "" {
		if day, err = parsePart(p.Day, 1, 31, MsgDayInteger, MsgDayRange); err != nil {
			return time.Time{}, false, err
		}
	}

	// padding
	if month == 0 {
		month = 1
		if f.padding == PadEnd {
			month = 12
		}
	}
	if day == 0 {
		day = 1
		if f.padding == PadEnd {
			day = daysIn(year, time.Month(month))
		}
	}

	// calendar
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false, invalid(MsgNotARealDate)
	}
	return d, true, nil
}

// parsePart accepts unsigned decimal digits only.
func parsePart(s string, lo, hi int, notInt, outOfRange string) (int, error) {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, invalid(notInt)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid(notInt)
	}
	if n < lo || n > hi {
		return 0, invalid(outOfRange)
	}
	return n, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cleaned returns the date while the field has no error.
func (f *Date) Cleaned() (time.Time, bool) {
	if f.HasError() {
		return time.Time{}, false
	}
	return f.cleaned, f.ok
}

// InternalCleaned returns the date produced by the last successful
// validation, even if an error was attached afterwards.
func (f *Date) InternalCleaned() (time.Time, bool) {
	return f.cleaned, f.ok
}

// APIValue formats the public cleaned date as YYYY-MM-DD, or "" when there
// is none.
func (f *Date) APIValue() string {
	d, ok := f.Cleaned()
	if !ok {
		return ""
	}
	return d.Format(APIDateLayout)
}
