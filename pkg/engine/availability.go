package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// Window is a resource's working interval on a single date, expressed as
// absolute instants. All wall-clock to instant conversion in the engine
// happens in this file.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether [start, end) fits inside the window
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}

// clockOn anchors an "HH:MM" wall-clock string on the given date, in the
// date's location
func clockOn(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", hhmm, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// weekdayKey returns the lowercase weekday name used in availability maps
func weekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// sameDate reports whether two instants fall on the same calendar day
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ResolveAvailability returns the working window for a resource on a date,
// or nil if the resource is not scheduled to work that day.
//
// Staff members consult their weekday availability map, then per-weekday
// custom hours, falling back to business hours. Machines run every day for
// a flat hours-per-day window anchored at the business-hours start, unless
// they are not operational or have maintenance scheduled on that date.
//
// The only error case is a malformed HH:MM string on the resource or the
// business hours; day-off and out-of-service days are nil, not errors.
func ResolveAvailability(res models.Resource, date time.Time, hours models.BusinessHours) (*Window, error) {
	switch r := res.(type) {
	case models.StaffMember:
		return staffWindow(r, date, hours)
	case *models.StaffMember:
		return staffWindow(*r, date, hours)
	case models.Machine:
		return machineWindow(r, date, hours)
	case *models.Machine:
		return machineWindow(*r, date, hours)
	default:
		return nil, fmt.Errorf("unknown resource type %T", res)
	}
}

func staffWindow(staff models.StaffMember, date time.Time, hours models.BusinessHours) (*Window, error) {
	day := weekdayKey(date)
	if !staff.Availability[day] {
		return nil, nil
	}

	start, end := hours.Start, hours.End
	if custom, ok := staff.AvailabilityHours[day]; ok {
		start, end = custom.Start, custom.End
	}

	ws, err := clockOn(date, start)
	if err != nil {
		return nil, err
	}
	we, err := clockOn(date, end)
	if err != nil {
		return nil, err
	}
	if !we.After(ws) {
		return nil, fmt.Errorf("availability window for %s ends before it starts (%s-%s)", staff.ID, start, end)
	}
	return &Window{Start: ws, End: we}, nil
}

func machineWindow(machine models.Machine, date time.Time, hours models.BusinessHours) (*Window, error) {
	if machine.Status != models.MachineOperational {
		return nil, nil
	}
	if machine.NextMaintenance != nil && sameDate(*machine.NextMaintenance, date) {
		return nil, nil
	}

	ws, err := clockOn(date, hours.Start)
	if err != nil {
		return nil, err
	}
	if machine.HoursPerDay <= 0 {
		return nil, nil
	}
	we := ws.Add(time.Duration(machine.HoursPerDay * float64(time.Hour)))
	return &Window{Start: ws, End: we}, nil
}
