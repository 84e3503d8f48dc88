// Package compliance implements the GST compliance analysis engine: a pure
// pipeline from raw filing records to a scored, graded and narrated Synopsis.
// Nothing in this package fetches data, persists state or reads the clock.
package compliance

import (
	"fmt"
	"time"

	"github.com/Aryanchauhan26/gst-webapp-sub001/internal/config"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/models"
	"github.com/Aryanchauhan26/gst-webapp-sub001/pkg/utils"
)

// dueRule is one resolved due-date rule.
type dueRule struct {
	monthOffset int
	day         int
}

// DueDateTable resolves statutory deadlines per return type. Built once from
// injected configuration; statutory changes never touch this code.
type DueDateTable struct {
	rules    map[models.ReturnType]dueRule
	fallback dueRule
}

// NewDueDateTable builds the lookup from config rules. The rule set must
// include an OTHER entry, which becomes the fallback for unrecognized types.
func NewDueDateTable(rules []config.DueDateRule) (*DueDateTable, error) {
	t := &DueDateTable{rules: make(map[models.ReturnType]dueRule, len(rules))}
	haveFallback := false
	for _, r := range rules {
		rt := models.NormalizeReturnType(r.ReturnType)
		rule := dueRule{monthOffset: r.MonthOffset, day: r.Day}
		if rt == models.ReturnOther {
			t.fallback = rule
			haveFallback = true
		}
		if _, dup := t.rules[rt]; dup {
			return nil, fmt.Errorf("duplicate due-date rule for %s", rt)
		}
		t.rules[rt] = rule
	}
	if !haveFallback {
		return nil, fmt.Errorf("due-date rules missing the OTHER fallback")
	}
	return t, nil
}

// Resolve returns the statutory due date of one obligation: day `day` of the
// month `monthOffset` months after the tax period ends, with the day clamped
// to the target month's length.
func (t *DueDateTable) Resolve(rt models.ReturnType, taxPeriod, financialYear string) (time.Time, error) {
	periodEnd, err := utils.PeriodEnd(taxPeriod, financialYear)
	if err != nil {
		return time.Time{}, err
	}

	rule, ok := t.rules[rt]
	if !ok {
		rule = t.fallback
	}

	// Offset whole months, anchored to the first of the month so that short
	// months never roll the target forward.
	py, pm, _ := periodEnd.Date()
	target := time.Date(py, pm+time.Month(rule.monthOffset), 1, 0, 0, 0, 0, time.UTC)
	y, m := target.Year(), target.Month()
	day := rule.day
	if last := lastDay(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

// lastDay returns the number of days in the given month.
func lastDay(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
