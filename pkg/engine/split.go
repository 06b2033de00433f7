package engine

import (
	"fmt"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// splitSearchHorizonDays bounds the forward probe for the next day a
// staff member is available to take the remainder of a split job
const splitSearchHorizonDays = 10

// SplitPlan describes how a job that outruns a single day's window is
// divided. When NeedsSplit is false the whole job fits from the requested
// start and the other fields are zero.
type SplitPlan struct {
	NeedsSplit       bool       `json:"needs_split"`
	FirstDayEnd      time.Time  `json:"first_day_end,omitempty"`
	FirstDayHours    float64    `json:"first_day_hours,omitempty"`
	RemainingHours   float64    `json:"remaining_hours,omitempty"`
	NextAvailableDay *time.Time `json:"next_available_day,omitempty"`
}

// PlanSplit computes the first-day/remainder division for a job starting
// at the given instant on a staff member's calendar.
//
// PlanSplit only handles the duration-exceeds-window case. If the staff
// member does not work the start date at all that is an error here: the
// caller should have picked the day via ResolveAvailability first.
// The remainder is placed on the next day the staff member is available,
// probing forward up to splitSearchHorizonDays.
func PlanSplit(staff models.StaffMember, start time.Time, requiredHours float64, hours models.BusinessHours) (SplitPlan, error) {
	if requiredHours <= 0 {
		return SplitPlan{}, fmt.Errorf("required hours must be positive, got %v", requiredHours)
	}

	window, err := ResolveAvailability(staff, start, hours)
	if err != nil {
		return SplitPlan{}, err
	}
	if window == nil {
		return SplitPlan{}, fmt.Errorf("%s is not available on %s", staff.Name, start.Format("2006-01-02"))
	}

	available := window.End.Sub(start)
	if available <= 0 {
		return SplitPlan{}, fmt.Errorf("start time %s is at or past the end of %s's window", start.Format("15:04"), staff.Name)
	}

	required := time.Duration(requiredHours * float64(time.Hour))
	if required <= available {
		return SplitPlan{NeedsSplit: false}, nil
	}

	firstDayHours := available.Hours()
	plan := SplitPlan{
		NeedsSplit:     true,
		FirstDayEnd:    window.End,
		FirstDayHours:  firstDayHours,
		RemainingHours: requiredHours - firstDayHours,
	}

	for offset := 1; offset <= splitSearchHorizonDays; offset++ {
		day := start.AddDate(0, 0, offset)
		next, err := ResolveAvailability(staff, day, hours)
		if err != nil {
			return SplitPlan{}, err
		}
		if next != nil {
			d := next.Start
			plan.NextAvailableDay = &d
			return plan, nil
		}
	}

	return SplitPlan{}, fmt.Errorf("no available day for %s within %d days to place the remaining %.1f hours", staff.Name, splitSearchHorizonDays, plan.RemainingHours)
}
