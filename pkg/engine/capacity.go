package engine

import (
	"fmt"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// ComputeUtilization sums a resource's available hours against its
// committed hours over an inclusive date range.
//
// Capacity is the sum of each in-range day's availability window length,
// zero for days off. Committed hours count every commitment whose start
// date falls in range. The reported utilization is clamped to [0, 100]
// for display; IsOverCapacity reflects the uncapped ratio.
func ComputeUtilization(res models.Resource, from, to time.Time, commitments []models.ScheduleEvent, hours models.BusinessHours) (models.UtilizationReport, error) {
	if to.Before(from) {
		return models.UtilizationReport{}, fmt.Errorf("date range end %s is before start %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	var capacity float64
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		window, err := ResolveAvailability(res, day, hours)
		if err != nil {
			return models.UtilizationReport{}, err
		}
		if window != nil {
			capacity += window.Duration().Hours()
		}
	}

	var scheduled float64
	for _, ev := range commitments {
		if !ev.Touches(res.ResourceID()) {
			continue
		}
		if dateBefore(ev.StartTime, from) || dateAfter(ev.StartTime, to) {
			continue
		}
		scheduled += ev.Duration().Hours()
	}

	report := models.UtilizationReport{
		ScheduledHours:     scheduled,
		TotalCapacityHours: capacity,
	}
	if capacity > 0 {
		raw := scheduled / capacity * 100
		report.IsOverCapacity = raw > 100
		if raw > 100 {
			raw = 100
		}
		report.Utilization = raw
	}
	return report, nil
}

func dateBefore(t, bound time.Time) bool {
	return t.Before(bound) && !sameDate(t, bound)
}

func dateAfter(t, bound time.Time) bool {
	return t.After(bound) && !sameDate(t, bound)
}
