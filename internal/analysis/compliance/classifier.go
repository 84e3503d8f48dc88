package compliance

import (
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

// Classify maps each canonical record to a FilingOutcome: filed or pending
// and, when filed, on time or late with an exact delay-day count. Pure
// mapping, no side effects.
//
// Records are expected to have passed Normalize; a record whose due date
// still cannot be resolved is reported as a data-quality issue rather than
// aborting the remaining records.
func Classify(records []models.ReturnRecord, due *DueDateTable) ([]models.FilingOutcome, []models.DataQualityIssue) {
	outcomes := make([]models.FilingOutcome, 0, len(records))
	var issues []models.DataQualityIssue

	for _, rec := range records {
		dueDate, err := due.Resolve(rec.ReturnType, rec.TaxPeriod, rec.FinancialYear)
		if err != nil {
			issues = append(issues, models.DataQualityIssue{Record: rec, Reason: "due date unresolved: " + err.Error()})
			continue
		}

		out := models.FilingOutcome{
			Record:  rec,
			DueDate: models.DateOf(dueDate),
			Filed:   rec.Filed(),
		}
		if out.Filed {
			if delay := out.DueDate.DaysUntil(*rec.FilingDate); delay > 0 {
				out.Late = true
				out.DelayDays = delay
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, issues
}
