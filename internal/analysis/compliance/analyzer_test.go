package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(testEngineConfig())
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testEngineConfig()
	cfg.Penalty.PerDayRate = 0
	if _, err := New(cfg); err == nil {
		t.Error("expected error for zero per-day rate")
	}

	cfg = testEngineConfig()
	cfg.DueDates = cfg.DueDates[:2] // drops the OTHER fallback
	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing fallback rule")
	}
}

func TestAnalyzePerfectFiler(t *testing.T) {
	a := testAnalyzer(t)
	syn, err := a.Analyze(Input{
		Profile: models.BusinessProfile{GSTIN: "27AAPFU0939F1ZV", TradeName: "Upadhyay Traders"},
		Returns: monthlyReturns("2023-24", nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	if syn.Compliance.Score == nil || *syn.Compliance.Score != 100 {
		t.Errorf("score = %v, want 100", syn.Compliance.Score)
	}
	if syn.Compliance.Grade != "A+" {
		t.Errorf("grade = %q, want A+", syn.Compliance.Grade)
	}
	if syn.Risk.RiskLevel != models.RiskLow || len(syn.Risk.RedFlags) != 0 {
		t.Errorf("risk = %+v", syn.Risk)
	}
	// State backfilled from the GSTIN prefix.
	if syn.Profile.State != "Maharashtra" {
		t.Errorf("state = %q, want Maharashtra", syn.Profile.State)
	}
}

func TestAnalyzeLateFilerScoresBelowPerfect(t *testing.T) {
	a := testAnalyzer(t)
	perfect, err := a.Analyze(Input{Returns: monthlyReturns("2023-24", nil)})
	if err != nil {
		t.Fatal(err)
	}
	late, err := a.Analyze(Input{Returns: monthlyReturns("2023-24", map[string]int{
		"April": 10, "May": 10, "June": 10,
	})})
	if err != nil {
		t.Fatal(err)
	}

	if *late.Compliance.Score != 92.5 {
		t.Errorf("score = %v, want 92.5", *late.Compliance.Score)
	}
	if *late.Compliance.Score >= *perfect.Compliance.Score {
		t.Error("a late filer must score below an identical on-time filer")
	}
	if late.Metrics.LateReturns != 3 {
		t.Errorf("late returns = %d, want 3", late.Metrics.LateReturns)
	}
	if late.Risk.PenaltyRiskAmount != 1500 {
		t.Errorf("penalty = %v, want 1500", late.Risk.PenaltyRiskAmount)
	}
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	a := testAnalyzer(t)
	syn, err := a.Analyze(Input{
		Profile: models.BusinessProfile{GSTIN: "27AAPFU0939F1ZV", TradeName: "Fresh Ventures"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if syn.Compliance.Score != nil {
		t.Errorf("score = %v, want nil", *syn.Compliance.Score)
	}
	if syn.Compliance.Status != models.StatusNoData {
		t.Errorf("status = %q, want %q", syn.Compliance.Status, models.StatusNoData)
	}
	if syn.Trend.Direction != models.TrendInsufficient {
		t.Errorf("trend = %q, want %q", syn.Trend.Direction, models.TrendInsufficient)
	}
	if len(syn.Recommendations) != 1 || syn.Recommendations[0].Title != "Start filing returns" {
		t.Errorf("recommendations = %+v", syn.Recommendations)
	}
}

func TestAnalyzeImprovingTrend(t *testing.T) {
	a := testAnalyzer(t)
	syn, err := a.Analyze(Input{Returns: append(
		monthlyReturns("2022-23", unfiledMonths("April", "May", "June", "July", "August", "September")),
		monthlyReturns("2023-24", nil)...)})
	if err != nil {
		t.Fatal(err)
	}

	if syn.Trend.Direction != models.TrendImproving {
		t.Errorf("trend = %q, want %q", syn.Trend.Direction, models.TrendImproving)
	}
}

func TestAnalyzeRejectsBadGSTIN(t *testing.T) {
	a := testAnalyzer(t)
	if _, err := a.Analyze(Input{
		Profile: models.BusinessProfile{GSTIN: "27AAPFU0939F1Z0"}, // wrong check character
	}); err == nil {
		t.Error("expected GSTIN validation error")
	}
}

func TestAnalyzeBadRecordsBecomeDataQualityIssues(t *testing.T) {
	a := testAnalyzer(t)
	records := monthlyReturns("2023-24", nil)
	records = append(records, models.ReturnRecord{
		ReturnType: models.ReturnSummary, TaxPeriod: "April", // missing financial year
	})

	syn, err := a.Analyze(Input{Returns: records})
	if err != nil {
		t.Fatal(err)
	}
	if len(syn.DataQuality) != 1 {
		t.Fatalf("data-quality issues = %+v", syn.DataQuality)
	}
	// The bad record is excluded, not scored.
	if syn.Metrics.TotalReturns != 12 {
		t.Errorf("total returns = %d, want 12", syn.Metrics.TotalReturns)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := testAnalyzer(t)
	in := Input{
		Profile: models.BusinessProfile{GSTIN: "27AAPFU0939F1ZV", TradeName: "Upadhyay Traders",
			RegistrationDate: datePtr(2019, 7, 1)},
		Returns: append(
			monthlyReturns("2022-23", map[string]int{"April": 4, "August": -1}),
			monthlyReturns("2023-24", map[string]int{"May": 12, "June": 3, "July": 40})...),
	}

	first, err := a.Analyze(in)
	if err != nil {
		t.Fatal(err)
	}
	rawFirst, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		again, err := a.Analyze(in)
		if err != nil {
			t.Fatal(err)
		}
		rawAgain, err := json.Marshal(again)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(rawFirst, rawAgain) {
			t.Fatalf("run %d produced different output:\n%s\nvs\n%s", i, rawFirst, rawAgain)
		}
	}
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	a := testAnalyzer(t)
	inputs := []Input{
		{Profile: models.BusinessProfile{TradeName: "First"}, Returns: monthlyReturns("2023-24", nil)},
		{Profile: models.BusinessProfile{TradeName: "Second"}},
		{Profile: models.BusinessProfile{TradeName: "Third"},
			Returns: monthlyReturns("2023-24", map[string]int{"April": 10})},
	}

	results, err := a.AnalyzeBatch(context.Background(), inputs, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if results[i].Profile.TradeName != want {
			t.Errorf("result %d is %q, want %q", i, results[i].Profile.TradeName, want)
		}
	}
	if results[1].Compliance.Status != models.StatusNoData {
		t.Errorf("second result status = %q", results[1].Compliance.Status)
	}
}

func TestAnalyzeBatchPropagatesFailure(t *testing.T) {
	a := testAnalyzer(t)
	inputs := []Input{
		{Returns: monthlyReturns("2023-24", nil)},
		{Profile: models.BusinessProfile{GSTIN: "BADGSTIN"}},
	}

	if _, err := a.AnalyzeBatch(context.Background(), inputs, 4); err == nil {
		t.Error("expected the invalid GSTIN to fail the batch")
	}
}
