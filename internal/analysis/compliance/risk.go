package compliance

import (
	"fmt"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

// PenaltyRates are the injected statutory late-filing figures.
type PenaltyRates struct {
	PerDayRate   float64 // ₹ per day of delay
	PerReturnCap float64 // ₹ cap per late return
}

// riskLabels maps a risk level to its compliance-risk label.
var riskLabels = map[models.RiskLevel]string{
	models.RiskLow:    "Low risk of non-compliance",
	models.RiskMedium: "Moderate risk of non-compliance",
	models.RiskHigh:   "High risk of non-compliance",
}

// AssessRisk converts lateness severity into a monetary penalty-risk
// estimate, collects qualitative red flags and buckets the overall level.
//
// All red-flag windows are anchored to the latest due date present in the
// data, never the wall clock, so identical input always yields identical
// output.
func AssessRisk(outcomes []models.FilingOutcome, score models.ComplianceScore, trend models.TrendResult, rates PenaltyRates) models.RiskAssessment {
	assessment := models.RiskAssessment{RedFlags: []string{}}

	for _, o := range outcomes {
		if !o.Late {
			continue
		}
		penalty := float64(o.DelayDays) * rates.PerDayRate
		if penalty > rates.PerReturnCap {
			penalty = rates.PerReturnCap
		}
		assessment.PenaltyRiskAmount += penalty
	}

	assessment.RedFlags = append(assessment.RedFlags, redFlags(outcomes, trend)...)
	assessment.RiskLevel = riskLevel(score, assessment.RedFlags)
	assessment.ComplianceRisk = riskLabels[assessment.RiskLevel]
	return assessment
}

// redFlags evaluates the qualitative trigger table in a fixed order, so the
// resulting list is deterministic by construction.
func redFlags(outcomes []models.FilingOutcome, trend models.TrendResult) []string {
	var flags []string
	if len(outcomes) == 0 {
		return flags
	}

	// Latest financial year with obligations, and the latest due date overall.
	latestFY := ""
	latestDue := outcomes[0].DueDate
	for _, o := range outcomes {
		if o.DueDate.After(latestDue.Time) {
			latestDue = o.DueDate
		}
		if o.Record.FinancialYear > latestFY {
			latestFY = o.Record.FinancialYear
		}
	}

	lateInLatestFY := 0
	for _, o := range outcomes {
		if o.Late && o.Record.FinancialYear == latestFY {
			lateInLatestFY++
		}
	}
	if lateInLatestFY >= 3 {
		flags = append(flags, fmt.Sprintf("3+ late filings in %s", latestFY))
	}

	// Two quarters of silence: nothing filed among obligations due in the
	// six months up to the latest due date in the data.
	windowStart := latestDue.AddDate(0, -6, 0)
	filedRecently := false
	hasRecentDue := false
	for _, o := range outcomes {
		if o.DueDate.Before(windowStart) {
			continue
		}
		hasRecentDue = true
		if o.Filed {
			filedRecently = true
			break
		}
	}
	if hasRecentDue && !filedRecently {
		flags = append(flags, "no returns filed in last 2 quarters")
	}

	if trend.Direction == models.TrendDeclining {
		flags = append(flags, "declining filing trend")
	}

	return flags
}

// riskLevel buckets the overall exposure: High on a sub-50 score or two or
// more red flags; Medium on a 50-74 score or exactly one flag; Low otherwise.
func riskLevel(score models.ComplianceScore, flags []string) models.RiskLevel {
	switch {
	case score.Score != nil && *score.Score < 50, len(flags) >= 2:
		return models.RiskHigh
	case score.Score != nil && *score.Score < 75, len(flags) == 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
