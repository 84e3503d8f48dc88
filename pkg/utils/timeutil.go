package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// The Indian financial year runs April through March. "2022-23" covers
// 1 Apr 2022 to 31 Mar 2023.

// ParseFinancialYear parses a financial-year token like "2022-23" or
// "2022-2023" and returns the calendar year it starts in.
func ParseFinancialYear(fy string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(fy), "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid financial year %q", fy)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 2017 || start > 2099 {
		return 0, fmt.Errorf("invalid financial year %q", fy)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid financial year %q", fy)
	}
	// Accept both two-digit and four-digit end years.
	if end < 100 {
		end += start - start%100
	}
	if end != start+1 {
		return 0, fmt.Errorf("financial year %q does not span consecutive years", fy)
	}
	return start, nil
}

// FinancialYearOf returns the financial-year token ("2022-23") containing t.
func FinancialYearOf(t time.Time) string {
	y := t.Year()
	if t.Month() < time.April {
		y--
	}
	return fmt.Sprintf("%d-%02d", y, (y+1)%100)
}

// FinancialYearEnd returns 31 March of the closing calendar year of fy.
func FinancialYearEnd(fy string) (time.Time, error) {
	start, err := ParseFinancialYear(fy)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(start+1, time.March, 31, 0, 0, 0, 0, time.UTC), nil
}

// monthTokens maps tax-period month tokens (full names and abbreviations,
// as seen in GSTN filing data) to calendar months.
var monthTokens = map[string]time.Month{
	"JANUARY": time.January, "JAN": time.January,
	"FEBRUARY": time.February, "FEB": time.February,
	"MARCH": time.March, "MAR": time.March,
	"APRIL": time.April, "APR": time.April,
	"MAY": time.May,
	"JUNE": time.June, "JUN": time.June,
	"JULY": time.July, "JUL": time.July,
	"AUGUST": time.August, "AUG": time.August,
	"SEPTEMBER": time.September, "SEP": time.September,
	"OCTOBER": time.October, "OCT": time.October,
	"NOVEMBER": time.November, "NOV": time.November,
	"DECEMBER": time.December, "DEC": time.December,
}

// quarterEndMonths maps quarter tokens to the quarter's closing month.
// Quarters follow the financial year: Q1 is April-June.
var quarterEndMonths = map[string]time.Month{
	"Q1": time.June, "APR-JUN": time.June,
	"Q2": time.September, "JUL-SEP": time.September,
	"Q3": time.December, "OCT-DEC": time.December,
	"Q4": time.March, "JAN-MAR": time.March,
}

// PeriodEnd resolves a tax-period token within a financial year to the last
// calendar day of that period. Supported tokens:
//
//   - month names: "April", "apr", "JULY"
//   - MMYYYY: "042022" (the year must fall inside fy)
//   - quarters: "Q1".."Q4", "Apr-Jun".."Jan-Mar"
//   - empty, "ANNUAL" or the fy token itself: the whole year (annual returns)
func PeriodEnd(taxPeriod, fy string) (time.Time, error) {
	startYear, err := ParseFinancialYear(fy)
	if err != nil {
		return time.Time{}, err
	}

	token := strings.ToUpper(strings.TrimSpace(taxPeriod))
	if token == "" || token == strings.ToUpper(strings.TrimSpace(fy)) || token == "ANNUAL" {
		return time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, time.UTC), nil
	}

	if m, ok := monthTokens[token]; ok {
		return lastDayOfMonth(calendarYearFor(m, startYear), m), nil
	}

	if m, ok := quarterEndMonths[token]; ok {
		return lastDayOfMonth(calendarYearFor(m, startYear), m), nil
	}

	// MMYYYY numeric token.
	if len(token) == 6 {
		mm, errM := strconv.Atoi(token[:2])
		yyyy, errY := strconv.Atoi(token[2:])
		if errM == nil && errY == nil && mm >= 1 && mm <= 12 {
			m := time.Month(mm)
			if yyyy != calendarYearFor(m, startYear) {
				return time.Time{}, fmt.Errorf("tax period %q is outside financial year %s", taxPeriod, fy)
			}
			return lastDayOfMonth(yyyy, m), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable tax period %q", taxPeriod)
}

// calendarYearFor places a month in its calendar year within the financial
// year starting at startYear: April-December belong to the start year,
// January-March to the next.
func calendarYearFor(m time.Month, startYear int) int {
	if m >= time.April {
		return startYear
	}
	return startYear + 1
}

// lastDayOfMonth returns the final calendar day of the given month.
func lastDayOfMonth(year int, m time.Month) time.Time {
	return time.Date(year, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// ParseDateIST parses a date string in "2006-01-02" format and returns it in IST.
func ParseDateIST(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, IST)
}

// FormatDateIST formats a time.Time to "2006-01-02" in IST.
func FormatDateIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}
