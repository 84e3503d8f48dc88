package compliance

import (
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

// Score weights. Filing at all matters more than filing on time.
const (
	weightFiled      = 70.0
	weightTimeliness = 30.0
)

// ScoreBreakdown carries the counts and ratios behind a ComplianceScore.
type ScoreBreakdown struct {
	TotalApplicable int
	FiledCount      int
	OnTimeCount     int
	LateCount       int
	FiledRatio      float64
	TimelinessRatio float64
}

// ComputeScore aggregates classified outcomes into the 0-100 compliance
// score and letter grade. Zero applicable returns yields a nil score and
// "No Data"; reporting 0 would be a false poor-compliance signal.
func ComputeScore(outcomes []models.FilingOutcome) (models.ComplianceScore, ScoreBreakdown) {
	b := ScoreBreakdown{TotalApplicable: len(outcomes)}
	for _, o := range outcomes {
		if !o.Filed {
			continue
		}
		b.FiledCount++
		if o.Late {
			b.LateCount++
		} else {
			b.OnTimeCount++
		}
	}

	if b.TotalApplicable == 0 {
		return models.ComplianceScore{Status: models.StatusNoData}, b
	}

	b.FiledRatio = float64(b.FiledCount) / float64(b.TotalApplicable)
	// A company with nothing filed yet is not penalized on timeliness.
	b.TimelinessRatio = 1.0
	if b.FiledCount > 0 {
		b.TimelinessRatio = float64(b.OnTimeCount) / float64(b.FiledCount)
	}

	score := weightFiled*b.FiledRatio + weightTimeliness*b.TimelinessRatio
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return models.ComplianceScore{
		Score:  &score,
		Grade:  GradeFor(score),
		Status: statusFor(score),
	}, b
}

// GradeFor maps a score to its letter grade. Pure and total: same score,
// same grade, always.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// statusFor maps a score to its human-readable compliance label.
func statusFor(score float64) string {
	switch {
	case score >= 90:
		return models.StatusExcellent
	case score >= 70:
		return models.StatusGood
	case score >= 60:
		return models.StatusAverage
	default:
		return models.StatusPoor
	}
}
