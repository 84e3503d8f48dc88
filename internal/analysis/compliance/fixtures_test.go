package compliance

import (
	"time"

	"github.com/Aryanchauhan26/gst-webapp-sub001/internal/config"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

// testEngineConfig mirrors the shipped defaults.
func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		DueDates: []config.DueDateRule{
			{ReturnType: "GSTR-1", MonthOffset: 1, Day: 11},
			{ReturnType: "GSTR-3B", MonthOffset: 1, Day: 20},
			{ReturnType: "GSTR-9", MonthOffset: 9, Day: 31},
			{ReturnType: "OTHER", MonthOffset: 1, Day: 20},
		},
		Penalty: config.PenaltyConfig{PerDayRate: 50, PerReturnCap: 5000},
	}
}

func testDueDateTable() *DueDateTable {
	t, err := NewDueDateTable(testEngineConfig().DueDates)
	if err != nil {
		panic(err)
	}
	return t
}

// fyMonths lists tax-period tokens in financial-year order, April first.
var fyMonths = []string{
	"April", "May", "June", "July", "August", "September",
	"October", "November", "December", "January", "February", "March",
}

// monthlyReturns builds one GSTR-3B record per month of fy. lateDays maps a
// month token to a filing delay in days; months present in the map file that
// many days after the due date, months absent file exactly on the due date.
// A negative delay marks the month unfiled.
func monthlyReturns(fy string, lateDays map[string]int) []models.ReturnRecord {
	table := testDueDateTable()
	records := make([]models.ReturnRecord, 0, len(fyMonths))
	for _, m := range fyMonths {
		rec := models.ReturnRecord{
			GSTIN:         "27AAPFU0939F1ZV",
			ReturnType:    models.ReturnSummary,
			TaxPeriod:     m,
			FinancialYear: fy,
		}
		delay, ok := lateDays[m]
		if !ok || delay >= 0 {
			due, err := table.Resolve(models.ReturnSummary, m, fy)
			if err != nil {
				panic(err)
			}
			filed := models.DateOf(due.AddDate(0, 0, delay))
			rec.FilingDate = &filed
		}
		records = append(records, rec)
	}
	return records
}

// unfiledMonths marks every listed month unfiled.
func unfiledMonths(months ...string) map[string]int {
	m := make(map[string]int, len(months))
	for _, month := range months {
		m[month] = -1
	}
	return m
}

func datePtr(y int, m time.Month, d int) *models.Date {
	v := models.NewDate(y, m, d)
	return &v
}
