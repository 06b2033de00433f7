package engine

import (
	"sort"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// SlotGranularity is the fixed step between candidate start times
const SlotGranularity = 30 * time.Minute

// Slot rejection reasons surfaced to callers verbatim
const (
	ReasonExceedsHours  = "Duration exceeds available hours"
	ReasonEventConflict = "Conflicts with another scheduled event"
)

// GenerateSlots enumerates candidate start times inside a working window
// for a job of the given duration, stepping in 30-minute increments.
//
// Each slot is tagged available, or blocked with a reason: the slot either
// runs past the window end, or overlaps one of the resource's existing
// commitments. The commitments slice is sorted internally so the output is
// identical regardless of input order, and every call recomputes from
// scratch.
func GenerateSlots(window Window, duration time.Duration, commitments []models.ScheduleEvent) []models.Slot {
	sorted := make([]models.ScheduleEvent, len(commitments))
	copy(sorted, commitments)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].StartTime.Equal(sorted[j].StartTime) {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var slots []models.Slot
	for start := window.Start; !start.Add(SlotGranularity).After(window.End); start = start.Add(SlotGranularity) {
		end := start.Add(duration)

		slot := models.Slot{Start: start, End: end}
		if end.After(window.End) {
			slot.HasConflict = true
			slot.ConflictReason = ReasonExceedsHours
		} else {
			for _, ev := range sorted {
				if start.Before(ev.EndTime) && end.After(ev.StartTime) {
					slot.HasConflict = true
					slot.ConflictReason = ReasonEventConflict
					break
				}
			}
			if !slot.HasConflict {
				slot.IsAvailable = true
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// FirstAvailableSlot returns the earliest available slot, or nil
func FirstAvailableSlot(slots []models.Slot) *models.Slot {
	for i := range slots {
		if slots[i].IsAvailable {
			return &slots[i]
		}
	}
	return nil
}

// commitmentsFor filters the snapshot down to one resource on one date
func commitmentsFor(commitments []models.ScheduleEvent, resourceID string, date time.Time) []models.ScheduleEvent {
	var out []models.ScheduleEvent
	for _, ev := range commitments {
		if ev.Touches(resourceID) && sameDate(ev.StartTime, date) {
			out = append(out, ev)
		}
	}
	return out
}
