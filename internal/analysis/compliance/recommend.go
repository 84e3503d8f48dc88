package compliance

import (
	"fmt"
	"sort"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// Signals is the condensed view of an analysis that recommendation rules
// predicate over.
type Signals struct {
	Score           *float64
	Grade           string
	Status          string
	Trend           models.TrendDirection
	Risk            models.RiskLevel
	TotalApplicable int
	LateCount       int
	UnfiledCount    int
	PenaltyAmount   float64
}

// recommendationRule pairs a predicate with a recommendation builder. The
// table is evaluated in order and every matching rule fires; priority and
// category control the final ordering, not table position.
type recommendationRule struct {
	When  func(Signals) bool
	Build func(Signals) models.Recommendation
}

var ruleTable = []recommendationRule{
	{
		When: func(s Signals) bool { return s.TotalApplicable == 0 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "filing",
				Priority:    models.PriorityHigh,
				Title:       "Start filing returns",
				Description: "No filing history is available for this GSTIN. Regular returns establish the compliance track record lenders and partners check.",
				Action:      "File all applicable returns for the current tax period",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.UnfiledCount > 0 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "backlog",
				Priority:    models.PriorityHigh,
				Title:       "Clear pending returns",
				Description: fmt.Sprintf("%d return(s) are due but not yet filed. Every pending period keeps the compliance score suppressed and accrues late fees.", s.UnfiledCount),
				Action:      "File all pending returns, oldest period first",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.Score != nil && *s.Score < 50 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "compliance",
				Priority:    models.PriorityHigh,
				Title:       "Urgent compliance remediation",
				Description: fmt.Sprintf("The compliance score is %.0f/100. Sustained low scores invite scrutiny and can block e-way bill generation.", *s.Score),
				Action:      "Engage a GST practitioner and bring all filings current this quarter",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.LateCount >= 3 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "timeliness",
				Priority:    models.PriorityHigh,
				Title:       "Stop the late-filing pattern",
				Description: fmt.Sprintf("%d returns were filed after their due date. Repeated lateness compounds penalties and weakens the filing trend.", s.LateCount),
				Action:      "Set filing reminders a week before each statutory due date",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.PenaltyAmount > 0 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "penalty",
				Priority:    models.PriorityMedium,
				Title:       "Provision for late-filing liability",
				Description: fmt.Sprintf("Estimated late-filing exposure is %s across past-due filings.", utils.FormatINR(s.PenaltyAmount)),
				Action:      "Reconcile and discharge outstanding late fees with the next return",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.Trend == models.TrendDeclining },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "trend",
				Priority:    models.PriorityMedium,
				Title:       "Reverse the declining filing trend",
				Description: "The filing rate has dropped against the previous financial year. Declining trends are an early red flag for counterparties.",
				Action:      "Review what changed in the filing process this year and fix it",
			}
		},
	},
	{
		When: func(s Signals) bool {
			return s.Score != nil && *s.Score >= 50 && *s.Score < 75 && s.Risk != models.RiskHigh
		},
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "process",
				Priority:    models.PriorityMedium,
				Title:       "Tighten the filing process",
				Description: "Compliance is average. Moving filings a few days earlier and clearing stragglers would lift the grade a band.",
				Action:      "Assign a single owner for return preparation and sign-off",
			}
		},
	},
	{
		When: func(s Signals) bool { return s.Trend == models.TrendImproving && s.Score != nil && *s.Score < 90 },
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "momentum",
				Priority:    models.PriorityLow,
				Title:       "Keep the improvement going",
				Description: "The filing rate improved over the previous financial year. A few more on-time periods will move the grade up.",
				Action:      "Hold the current filing cadence through the next two quarters",
			}
		},
	},
	{
		When: func(s Signals) bool {
			return s.Score != nil && *s.Score >= 90 && s.Trend != models.TrendDeclining
		},
		Build: func(s Signals) models.Recommendation {
			return models.Recommendation{
				Category:    "maintenance",
				Priority:    models.PriorityLow,
				Title:       "Maintain the compliance record",
				Description: "Filing compliance is excellent. The record itself is now an asset worth protecting.",
				Action:      "Keep filing on schedule; review due-date changes each budget cycle",
			}
		},
	},
}

// priorityRank orders High before Medium before Low.
var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// Recommend evaluates the full rule table, collects every match and sorts by
// priority then category name. An empty result is valid, not an error.
func Recommend(sig Signals) []models.Recommendation {
	recs := []models.Recommendation{}
	for _, rule := range ruleTable {
		if rule.When(sig) {
			recs = append(recs, rule.Build(sig))
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
		}
		return recs[i].Category < recs[j].Category
	})
	return recs
}
