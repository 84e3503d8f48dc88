package compliance

import (
	"strings"
	"testing"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

func scorePtr(v float64) *float64 { return &v }

func categories(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Category
	}
	return out
}

func TestRecommendNoData(t *testing.T) {
	recs := Recommend(Signals{Status: models.StatusNoData})

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations: %v", len(recs), categories(recs))
	}
	if recs[0].Title != "Start filing returns" || recs[0].Priority != models.PriorityHigh {
		t.Errorf("recommendation = %+v", recs[0])
	}
}

func TestRecommendExcellentRecord(t *testing.T) {
	recs := Recommend(Signals{
		Score: scorePtr(100), Grade: "A+", Status: models.StatusExcellent,
		Trend: models.TrendInsufficient, Risk: models.RiskLow,
		TotalApplicable: 12,
	})

	if len(recs) != 1 || recs[0].Category != "maintenance" {
		t.Fatalf("recommendations = %v", categories(recs))
	}
	if recs[0].Priority != models.PriorityLow {
		t.Errorf("priority = %q, want %q", recs[0].Priority, models.PriorityLow)
	}
}

func TestRecommendTroubledFiler(t *testing.T) {
	recs := Recommend(Signals{
		Score: scorePtr(45), Grade: "D", Status: models.StatusPoor,
		Trend: models.TrendDeclining, Risk: models.RiskHigh,
		TotalApplicable: 12, LateCount: 4, UnfiledCount: 5, PenaltyAmount: 9000,
	})

	got := categories(recs)
	// Matching rules sorted High before Medium, alphabetical within a band.
	want := []string{"backlog", "compliance", "timeliness", "penalty", "trend"}
	if len(got) != len(want) {
		t.Fatalf("recommendations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recommendations = %v, want %v", got, want)
		}
	}
}

func TestRecommendPenaltyUsesIndianFormatting(t *testing.T) {
	recs := Recommend(Signals{
		Score: scorePtr(95), Grade: "A+", Status: models.StatusExcellent,
		Trend: models.TrendStable, Risk: models.RiskLow,
		TotalApplicable: 12, PenaltyAmount: 150000,
	})

	var penaltyRec *models.Recommendation
	for i := range recs {
		if recs[i].Category == "penalty" {
			penaltyRec = &recs[i]
		}
	}
	if penaltyRec == nil {
		t.Fatalf("no penalty recommendation in %v", categories(recs))
	}
	if !strings.Contains(penaltyRec.Description, "₹1,50,000") {
		t.Errorf("description = %q, want lakh grouping", penaltyRec.Description)
	}
}

func TestRecommendAverageScoreSkippedAtHighRisk(t *testing.T) {
	sig := Signals{
		Score: scorePtr(60), Grade: "C", Status: models.StatusAverage,
		Trend: models.TrendStable, Risk: models.RiskHigh,
		TotalApplicable: 12,
	}
	for _, r := range Recommend(sig) {
		if r.Category == "process" {
			t.Error("process tuning advice should defer to high-risk remediation")
		}
	}

	sig.Risk = models.RiskMedium
	found := false
	for _, r := range Recommend(sig) {
		if r.Category == "process" {
			found = true
		}
	}
	if !found {
		t.Error("expected process recommendation at medium risk")
	}
}

func TestRecommendImprovingMomentum(t *testing.T) {
	recs := Recommend(Signals{
		Score: scorePtr(82.5), Grade: "A", Status: models.StatusGood,
		Trend: models.TrendImproving, Risk: models.RiskLow,
		TotalApplicable: 24,
	})

	if len(recs) != 1 || recs[0].Category != "momentum" {
		t.Fatalf("recommendations = %v", categories(recs))
	}
}

func TestRecommendDeterministicOrder(t *testing.T) {
	sig := Signals{
		Score: scorePtr(45), Grade: "D", Status: models.StatusPoor,
		Trend: models.TrendDeclining, Risk: models.RiskHigh,
		TotalApplicable: 12, LateCount: 4, UnfiledCount: 5, PenaltyAmount: 9000,
	}
	first := Recommend(sig)
	for i := 0; i < 10; i++ {
		again := Recommend(sig)
		if len(again) != len(first) {
			t.Fatal("recommendation count varies")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d differs at index %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}
