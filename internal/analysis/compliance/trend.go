package compliance

import (
	"sort"

	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// trendBand is the minimum year-over-year rate change that counts as a real
// move. Changes inside ±trendBand classify as Stable.
const trendBand = 0.05

// AnalyzeTrend groups outcomes by financial year and classifies the
// multi-year filing trajectory from the two most recent qualifying years.
// Fewer than two qualifying years is Insufficient Data, a distinct outcome
// that is never defaulted to Stable.
func AnalyzeTrend(outcomes []models.FilingOutcome) models.TrendResult {
	byYear := make(map[string]*models.YearlyStat)
	for _, o := range outcomes {
		fy := o.Record.FinancialYear
		stat, ok := byYear[fy]
		if !ok {
			stat = &models.YearlyStat{FinancialYear: fy}
			byYear[fy] = stat
		}
		stat.TotalDue++
		if o.Filed {
			stat.FiledCount++
			if o.Late {
				stat.LateCount++
			}
		}
	}

	years := make([]models.YearlyStat, 0, len(byYear))
	for _, stat := range byYear {
		if stat.TotalDue > 0 {
			stat.Rate = float64(stat.FiledCount) / float64(stat.TotalDue)
		}
		years = append(years, *stat)
	}
	sort.Slice(years, func(i, j int) bool {
		a, _ := utils.ParseFinancialYear(years[i].FinancialYear)
		b, _ := utils.ParseFinancialYear(years[j].FinancialYear)
		return a < b
	})

	var qualifying []models.YearlyStat
	for _, y := range years {
		if y.TotalDue > 0 {
			qualifying = append(qualifying, y)
		}
	}

	result := models.TrendResult{Direction: models.TrendInsufficient, Years: years}
	if len(qualifying) < 2 {
		return result
	}

	later := qualifying[len(qualifying)-1].Rate
	earlier := qualifying[len(qualifying)-2].Rate
	switch delta := later - earlier; {
	case delta >= trendBand:
		result.Direction = models.TrendImproving
	case delta <= -trendBand:
		result.Direction = models.TrendDeclining
	default:
		result.Direction = models.TrendStable
	}
	return result
}
