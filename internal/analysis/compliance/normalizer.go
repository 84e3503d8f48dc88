package compliance

import (
	"sort"
	"strings"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// Normalize dedupes and cleans raw filing records, resolving one canonical
// record per (return type, tax period, financial year) obligation.
//
// Duplicate resolution: a record with a filing date always wins over an
// apparently-pending duplicate of the same obligation. Records whose tax
// period or financial year cannot be parsed are excluded from scoring but
// reported as data-quality issues, never silently dropped.
func Normalize(raw []models.ReturnRecord) ([]models.ReturnRecord, []models.DataQualityIssue) {
	var issues []models.DataQualityIssue
	canonical := make(map[string]models.ReturnRecord)

	for _, rec := range raw {
		rec.ReturnType = models.NormalizeReturnType(string(rec.ReturnType))

		if reason := validate(rec); reason != "" {
			issues = append(issues, models.DataQualityIssue{Record: rec, Reason: reason})
			continue
		}

		key := rec.Key()
		existing, seen := canonical[key]
		if !seen {
			canonical[key] = rec
			continue
		}
		if !existing.Filed() && rec.Filed() {
			canonical[key] = rec
		} else if existing.Filed() && rec.Filed() && rec.FilingDate.Before(existing.FilingDate.Time) {
			// Two filed copies of one obligation: keep the earliest filing.
			canonical[key] = rec
		}
	}

	records := make([]models.ReturnRecord, 0, len(canonical))
	for _, rec := range canonical {
		records = append(records, rec)
	}
	sortRecords(records)
	return records, issues
}

// validate returns a non-empty reason when the record cannot be scored.
func validate(rec models.ReturnRecord) string {
	if strings.TrimSpace(rec.FinancialYear) == "" {
		return "missing financial year"
	}
	if _, err := utils.ParseFinancialYear(rec.FinancialYear); err != nil {
		return "unparseable financial year: " + rec.FinancialYear
	}
	if strings.TrimSpace(rec.TaxPeriod) == "" && rec.ReturnType.IsPeriodic() {
		return "missing tax period"
	}
	if _, err := utils.PeriodEnd(rec.TaxPeriod, rec.FinancialYear); err != nil {
		return "unparseable tax period: " + rec.TaxPeriod
	}
	return ""
}

// sortRecords orders records by financial year, then period end, then return
// type, so every downstream stage sees a stable sequence.
func sortRecords(records []models.ReturnRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.FinancialYear != b.FinancialYear {
			ay, _ := utils.ParseFinancialYear(a.FinancialYear)
			by, _ := utils.ParseFinancialYear(b.FinancialYear)
			return ay < by
		}
		ae, _ := utils.PeriodEnd(a.TaxPeriod, a.FinancialYear)
		be, _ := utils.PeriodEnd(b.TaxPeriod, b.FinancialYear)
		if !ae.Equal(be) {
			return ae.Before(be)
		}
		return a.ReturnType < b.ReturnType
	})
}
