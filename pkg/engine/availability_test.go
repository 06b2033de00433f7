package engine

import (
	"testing"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

var businessHours = models.BusinessHours{Start: "09:00", End: "17:00"}

// monday is 2026-01-05, a Monday
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func weekdayStaff() models.StaffMember {
	return models.StaffMember{
		ID:   "alex",
		Name: "Alex",
		Availability: map[string]bool{
			"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true,
		},
	}
}

func TestResolveAvailabilityStaffWorkday(t *testing.T) {
	window, err := ResolveAvailability(weekdayStaff(), monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil {
		t.Fatal("expected a window on Monday, got nil")
	}
	if window.Start.Hour() != 9 || window.End.Hour() != 17 {
		t.Errorf("expected 09:00-17:00, got %s-%s", window.Start.Format("15:04"), window.End.Format("15:04"))
	}
}

func TestResolveAvailabilityStaffDayOff(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	window, err := ResolveAvailability(weekdayStaff(), saturday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Errorf("expected nil window on Saturday, got %v", window)
	}
}

func TestResolveAvailabilityCustomHours(t *testing.T) {
	staff := weekdayStaff()
	staff.AvailabilityHours = map[string]models.DayWindow{
		"monday": {Start: "07:30", End: "15:30"},
	}

	window, err := ResolveAvailability(staff, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window.Start.Format("15:04") != "07:30" || window.End.Format("15:04") != "15:30" {
		t.Errorf("expected custom 07:30-15:30, got %s-%s", window.Start.Format("15:04"), window.End.Format("15:04"))
	}

	// Tuesday has no custom entry, falls back to business hours
	tuesday := monday.AddDate(0, 0, 1)
	window, err = ResolveAvailability(staff, tuesday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window.Start.Format("15:04") != "09:00" {
		t.Errorf("expected business-hours fallback on Tuesday, got start %s", window.Start.Format("15:04"))
	}
}

func TestResolveAvailabilityMachine(t *testing.T) {
	machine := models.Machine{
		ID:          "cnc-1",
		Name:        "CNC Mill 1",
		HoursPerDay: 10,
		Status:      models.MachineOperational,
	}

	window, err := ResolveAvailability(machine, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil {
		t.Fatal("expected a window for an operational machine")
	}
	if got := window.Duration().Hours(); got != 10 {
		t.Errorf("expected a 10 hour window, got %v", got)
	}
	if window.Start.Format("15:04") != "09:00" {
		t.Errorf("machine window should anchor at business start, got %s", window.Start.Format("15:04"))
	}
}

func TestResolveAvailabilityMachineOutOfService(t *testing.T) {
	machine := models.Machine{ID: "cnc-2", HoursPerDay: 8, Status: models.MachineMaintenance}
	window, err := ResolveAvailability(machine, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Error("machine in maintenance should have no window")
	}

	maint := monday
	operational := models.Machine{ID: "cnc-3", HoursPerDay: 8, Status: models.MachineOperational, NextMaintenance: &maint}
	window, err = ResolveAvailability(operational, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Error("machine with maintenance scheduled today should have no window")
	}
}

func TestResolveAvailabilityBadClock(t *testing.T) {
	staff := weekdayStaff()
	staff.AvailabilityHours = map[string]models.DayWindow{
		"monday": {Start: "late", End: "17:00"},
	}
	if _, err := ResolveAvailability(staff, monday, businessHours); err == nil {
		t.Error("expected an error for a malformed clock string")
	}
}

func TestResolveAvailabilityDeterministic(t *testing.T) {
	staff := weekdayStaff()
	first, err := ResolveAvailability(staff, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveAvailability(staff, monday, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Start.Equal(second.Start) || !first.End.Equal(second.End) {
		t.Error("same resource and date must resolve to the same window")
	}
}
