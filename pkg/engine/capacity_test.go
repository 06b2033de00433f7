package engine

import (
	"testing"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

func TestComputeUtilizationWeek(t *testing.T) {
	// Mon-Fri, 8h/day over a full week = 40 capacity hours
	friday := monday.AddDate(0, 0, 4)
	commitments := []models.ScheduleEvent{
		{ID: "e1", StaffID: "alex", StartTime: at(9, 0), EndTime: at(17, 0)},                                                       // 8h Monday
		{ID: "e2", StaffID: "alex", StartTime: at(9, 0).AddDate(0, 0, 1), EndTime: at(13, 0).AddDate(0, 0, 1)},                     // 4h Tuesday
		{ID: "e3", StaffID: "someone-else", StartTime: at(9, 0), EndTime: at(17, 0)},                                               // not alex
		{ID: "e4", StaffID: "alex", StartTime: at(9, 0).AddDate(0, 0, 14), EndTime: at(17, 0).AddDate(0, 0, 14)},                   // out of range
	}

	report, err := ComputeUtilization(weekdayStaff(), monday, friday, commitments, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalCapacityHours != 40 {
		t.Errorf("expected 40 capacity hours, got %v", report.TotalCapacityHours)
	}
	if report.ScheduledHours != 12 {
		t.Errorf("expected 12 scheduled hours, got %v", report.ScheduledHours)
	}
	if report.Utilization != 30 {
		t.Errorf("expected 30%% utilization, got %v", report.Utilization)
	}
	if report.IsOverCapacity {
		t.Error("30% utilization is not over capacity")
	}
}

func TestComputeUtilizationOverCapacity(t *testing.T) {
	// Single day of 8h capacity with 10 committed hours
	commitments := []models.ScheduleEvent{
		{ID: "e1", StaffID: "alex", StartTime: at(8, 0), EndTime: at(18, 0)},
	}

	report, err := ComputeUtilization(weekdayStaff(), monday, monday, commitments, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.IsOverCapacity {
		t.Error("10 committed hours against 8 capacity must flag over capacity")
	}
	if report.Utilization != 100 {
		t.Errorf("displayed utilization is capped at 100, got %v", report.Utilization)
	}
	if report.ScheduledHours != 10 {
		t.Errorf("expected the uncapped 10 scheduled hours, got %v", report.ScheduledHours)
	}
}

func TestComputeUtilizationBounds(t *testing.T) {
	cases := []struct {
		name   string
		events []models.ScheduleEvent
	}{
		{"empty", nil},
		{"half", []models.ScheduleEvent{{ID: "e1", StaffID: "alex", StartTime: at(9, 0), EndTime: at(13, 0)}}},
		{"double", []models.ScheduleEvent{
			{ID: "e1", StaffID: "alex", StartTime: at(6, 0), EndTime: at(18, 0)},
			{ID: "e2", StaffID: "alex", StartTime: at(6, 0), EndTime: at(18, 0)},
		}},
	}
	for _, tc := range cases {
		report, err := ComputeUtilization(weekdayStaff(), monday, monday, tc.events, businessHours)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if report.Utilization < 0 || report.Utilization > 100 {
			t.Errorf("%s: utilization out of bounds: %v", tc.name, report.Utilization)
		}
	}
}

func TestComputeUtilizationWeekendOnlyRange(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)

	report, err := ComputeUtilization(weekdayStaff(), saturday, sunday, nil, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalCapacityHours != 0 || report.Utilization != 0 {
		t.Errorf("weekend range has no capacity, got %+v", report)
	}
	if report.IsOverCapacity {
		t.Error("zero capacity with zero commitments is not over capacity")
	}
}

func TestComputeUtilizationMachine(t *testing.T) {
	machine := models.Machine{ID: "cnc-1", Name: "CNC Mill 1", HoursPerDay: 10, Status: models.MachineOperational}
	commitments := []models.ScheduleEvent{
		{ID: "e1", MachineID: "cnc-1", StartTime: at(9, 0), EndTime: at(14, 0)},
	}

	report, err := ComputeUtilization(machine, monday, monday, commitments, businessHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalCapacityHours != 10 {
		t.Errorf("expected 10 capacity hours, got %v", report.TotalCapacityHours)
	}
	if report.Utilization != 50 {
		t.Errorf("expected 50%% utilization, got %v", report.Utilization)
	}
}

func TestComputeUtilizationInvertedRange(t *testing.T) {
	if _, err := ComputeUtilization(weekdayStaff(), monday.AddDate(0, 0, 3), monday, nil, businessHours); err == nil {
		t.Error("expected an error for an inverted date range")
	}
}
