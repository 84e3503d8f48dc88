package compliance

import (
	"fmt"
	"strings"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// Compose assembles the full analysis into one Synopsis, ready for
// serialization. Pure assembly plus template-driven narrative text; no
// generative service is involved anywhere.
func Compose(
	profile models.BusinessProfile,
	score models.ComplianceScore,
	breakdown ScoreBreakdown,
	trend models.TrendResult,
	risk models.RiskAssessment,
	recs []models.Recommendation,
	issues []models.DataQualityIssue,
) models.Synopsis {
	// Collections serialize as [], never null.
	if trend.Years == nil {
		trend.Years = []models.YearlyStat{}
	}
	if risk.RedFlags == nil {
		risk.RedFlags = []string{}
	}
	if recs == nil {
		recs = []models.Recommendation{}
	}
	if issues == nil {
		issues = []models.DataQualityIssue{}
	}

	metrics := models.KeyMetrics{
		YearsInBusiness: yearsInBusiness(profile, trend.Years),
		FilingRatePct:   breakdown.FiledRatio * 100,
		Grade:           score.Grade,
		TotalReturns:    breakdown.TotalApplicable,
		OnTimeReturns:   breakdown.OnTimeCount,
		LateReturns:     breakdown.LateCount,
	}

	return models.Synopsis{
		Profile:         profile,
		Compliance:      score,
		Trend:           trend,
		Risk:            risk,
		Recommendations: recs,
		Metrics:         metrics,
		Narrative:       buildNarrative(profile, score, trend.Direction, risk),
		DataQuality:     issues,
	}
}

// yearsInBusiness derives the metric from the registration date relative to
// the latest financial year in the data, never from the wall clock. Without
// a registration date it falls back to the filing history's span.
func yearsInBusiness(profile models.BusinessProfile, years []models.YearlyStat) int {
	if profile.RegistrationDate != nil && len(years) > 0 {
		latest := years[len(years)-1].FinancialYear
		if end, err := utils.FinancialYearEnd(latest); err == nil {
			if n := end.Year() - profile.RegistrationDate.Year(); n > 0 {
				return n
			}
		}
		return 0
	}
	return len(years)
}

// Narrative sentence templates, selected by compliance status. Placeholders:
// business name, grade, score.
var statusSentences = map[string]string{
	models.StatusExcellent: "%s holds an excellent GST compliance record with grade %s (score %.0f/100).",
	models.StatusGood:      "%s maintains a good GST compliance record with grade %s (score %.0f/100).",
	models.StatusAverage:   "%s shows an average GST compliance record with grade %s (score %.0f/100).",
	models.StatusPoor:      "%s has a poor GST compliance record with grade %s (score %.0f/100).",
}

// Trend clauses appended to the base sentence.
var trendClauses = map[models.TrendDirection]string{
	models.TrendImproving:    "Filing discipline has improved over the last financial years.",
	models.TrendDeclining:    "Filing discipline has declined against the previous financial year.",
	models.TrendStable:       "Filing discipline has been steady across financial years.",
	models.TrendInsufficient: "There is not yet enough multi-year history to judge the filing trend.",
}

// Risk clauses appended last.
var riskClauses = map[models.RiskLevel]string{
	models.RiskLow:    "Overall risk is low.",
	models.RiskMedium: "Overall risk is moderate; the flagged items deserve attention.",
	models.RiskHigh:   "Overall risk is high and warrants immediate remediation.",
}

// buildNarrative fills the sentence templates for (status, trend, risk).
// String composition only.
func buildNarrative(profile models.BusinessProfile, score models.ComplianceScore, trend models.TrendDirection, risk models.RiskAssessment) string {
	name := profile.TradeName
	if name == "" {
		name = profile.LegalName
	}
	if name == "" {
		name = "The business"
	}

	parts := make([]string, 0, 4)
	if score.Score == nil {
		parts = append(parts, fmt.Sprintf("%s has no scoreable GST filing history yet.", name))
	} else {
		parts = append(parts, fmt.Sprintf(statusSentences[score.Status], name, score.Grade, *score.Score))
		parts = append(parts, trendClauses[trend])
	}
	if risk.PenaltyRiskAmount > 0 {
		parts = append(parts, fmt.Sprintf("Estimated late-filing exposure stands at %s.", utils.FormatINR(risk.PenaltyRiskAmount)))
	}
	parts = append(parts, riskClauses[risk.RiskLevel])

	return strings.Join(parts, " ")
}
