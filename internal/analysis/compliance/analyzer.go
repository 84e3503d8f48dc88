package compliance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Aryanchauhan26/gst-webapp-sub001/internal/config"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// Analyzer runs the full compliance pipeline for one taxpayer at a time.
// It holds only immutable rule tables, so one Analyzer may serve any number
// of concurrent Analyze calls without locking.
type Analyzer struct {
	due   *DueDateTable
	rates PenaltyRates
}

// Input is one taxpayer's analysis request: profile metadata plus the raw
// filing records retrieved upstream.
type Input struct {
	Profile models.BusinessProfile `json:"business_profile"`
	Returns []models.ReturnRecord  `json:"returns"`
}

// New builds an Analyzer from engine configuration. Missing or invalid rule
// tables fail here, at construction time, never mid-computation.
func New(cfg config.EngineConfig) (*Analyzer, error) {
	due, err := NewDueDateTable(cfg.DueDates)
	if err != nil {
		return nil, fmt.Errorf("due-date table: %w", err)
	}
	if cfg.Penalty.PerDayRate <= 0 || cfg.Penalty.PerReturnCap <= 0 {
		return nil, fmt.Errorf("penalty rates must be positive (per_day_rate=%.2f, per_return_cap=%.2f)",
			cfg.Penalty.PerDayRate, cfg.Penalty.PerReturnCap)
	}
	return &Analyzer{
		due: due,
		rates: PenaltyRates{
			PerDayRate:   cfg.Penalty.PerDayRate,
			PerReturnCap: cfg.Penalty.PerReturnCap,
		},
	}, nil
}

// Analyze runs the pipeline: normalize → classify → score → trend → risk →
// recommend → compose. Bad individual records never abort the rest; they
// surface in the Synopsis data-quality list. The only input error is a
// malformed GSTIN on the profile.
func (a *Analyzer) Analyze(in Input) (*models.Synopsis, error) {
	profile := in.Profile
	if profile.GSTIN != "" {
		profile.GSTIN = utils.NormalizeGSTIN(profile.GSTIN)
		if err := utils.ValidateGSTIN(profile.GSTIN); err != nil {
			return nil, err
		}
		if profile.State == "" {
			profile.State = utils.GSTINState(profile.GSTIN)
		}
	}

	records, issues := Normalize(in.Returns)
	outcomes, classifyIssues := Classify(records, a.due)
	issues = append(issues, classifyIssues...)

	score, breakdown := ComputeScore(outcomes)
	trend := AnalyzeTrend(outcomes)
	risk := AssessRisk(outcomes, score, trend, a.rates)

	unfiled := breakdown.TotalApplicable - breakdown.FiledCount
	recs := Recommend(Signals{
		Score:           score.Score,
		Grade:           score.Grade,
		Status:          score.Status,
		Trend:           trend.Direction,
		Risk:            risk.RiskLevel,
		TotalApplicable: breakdown.TotalApplicable,
		LateCount:       breakdown.LateCount,
		UnfiledCount:    unfiled,
		PenaltyAmount:   risk.PenaltyRiskAmount,
	})

	synopsis := Compose(profile, score, breakdown, trend, risk, recs, issues)
	return &synopsis, nil
}

// AnalyzeBatch analyzes many taxpayers concurrently. Results keep the input
// order; the first failure cancels the remaining work.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []Input, concurrency int) ([]*models.Synopsis, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*models.Synopsis, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := a.Analyze(in)
			if err != nil {
				return fmt.Errorf("gstin %s: %w", in.Profile.GSTIN, err)
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
