package models

import (
	"fmt"
	"strings"
	"time"
)

// ReturnType is the category of a GST filing obligation.
type ReturnType string

const (
	ReturnOutward ReturnType = "GSTR-1"  // periodic outward supplies
	ReturnSummary ReturnType = "GSTR-3B" // periodic summary return
	ReturnAnnual  ReturnType = "GSTR-9"  // annual return
	ReturnOther   ReturnType = "OTHER"   // unrecognized return types, kept so totals stay consistent
)

// returnTypeAliases maps the tags seen in upstream filing data to canonical types.
var returnTypeAliases = map[string]ReturnType{
	"GSTR1":    ReturnOutward,
	"GSTR-1":   ReturnOutward,
	"R1":       ReturnOutward,
	"GSTR3B":   ReturnSummary,
	"GSTR-3B":  ReturnSummary,
	"R3B":      ReturnSummary,
	"GSTR9":    ReturnAnnual,
	"GSTR-9":   ReturnAnnual,
	"R9":       ReturnAnnual,
	"GSTR9C":   ReturnAnnual,
	"GSTR-9C":  ReturnAnnual,
	"ANNUAL":   ReturnAnnual,
}

// NormalizeReturnType resolves an upstream return-type tag to a canonical
// ReturnType. Unknown tags bucket into ReturnOther rather than being dropped.
func NormalizeReturnType(tag string) ReturnType {
	key := strings.ToUpper(strings.TrimSpace(tag))
	if rt, ok := returnTypeAliases[key]; ok {
		return rt
	}
	return ReturnOther
}

// IsPeriodic reports whether the return type is filed per tax period rather
// than once per financial year.
func (rt ReturnType) IsPeriodic() bool {
	return rt != ReturnAnnual
}

// Date is a calendar date that serializes as "2006-01-02". Filing and due
// dates carry no meaningful time-of-day component.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate constructs a Date in UTC from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// MarshalJSON renders the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses "2006-01-02" (also accepting RFC 3339 timestamps from
// upstream payloads, truncated to the date).
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = DateOf(t.UTC()).Time
	return nil
}

// DaysUntil returns the number of whole days from d to other (negative when
// other precedes d).
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time) / (24 * time.Hour))
}

// ReturnRecord is one filing obligation as supplied by the upstream
// data-retrieval collaborator. Immutable once handed to the engine.
type ReturnRecord struct {
	GSTIN         string     `json:"gstin"`
	ReturnType    ReturnType `json:"return_type"`
	TaxPeriod     string     `json:"tax_period"`
	FinancialYear string     `json:"financial_year"`
	FilingDate    *Date      `json:"filing_date,omitempty"`
}

// Filed reports whether the record carries a filing date.
func (r ReturnRecord) Filed() bool {
	return r.FilingDate != nil
}

// Key identifies the obligation this record fulfils. Duplicate keys in raw
// data collapse to one canonical record.
func (r ReturnRecord) Key() string {
	return string(r.ReturnType) + "|" + r.TaxPeriod + "|" + r.FinancialYear
}

// FilingOutcome is a classified ReturnRecord: filed or pending and, when
// filed, on time or late with an exact delay-day count.
type FilingOutcome struct {
	Record    ReturnRecord `json:"record"`
	DueDate   Date         `json:"due_date"`
	Filed     bool         `json:"filed"`
	Late      bool         `json:"late"`
	DelayDays int          `json:"delay_days"` // 0 when on time or unfiled
}

// DataQualityIssue records a raw entry excluded from scoring, so bad records
// are traceable rather than silently dropped.
type DataQualityIssue struct {
	Record ReturnRecord `json:"record"`
	Reason string       `json:"reason"`
}
