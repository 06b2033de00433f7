package store

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/database"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not open in-memory database: %v", err)
	}
	database.Migrate(db)
	return New(db)
}

func mondayAt(hour int) time.Time {
	return time.Date(2026, 1, 5, hour, 0, 0, 0, time.UTC)
}

func seedAlex(t *testing.T, s *Store) {
	t.Helper()
	_, err := s.SaveStaff(models.StaffMember{
		ID:   "alex",
		Name: "Alex",
		Availability: map[string]bool{
			"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true,
		},
	})
	if err != nil {
		t.Fatalf("could not seed staff: %v", err)
	}
}

func TestCreateCommitmentRoundTrip(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	created, conflicts, err := s.CreateCommitment(models.ScheduleEvent{
		JobID:     "j1",
		StaffID:   "alex",
		StartTime: mondayAt(9),
		EndTime:   mondayAt(11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("store should assign an id")
	}
	if len(conflicts) != 0 {
		t.Errorf("clean event should have no conflicts, got %+v", conflicts)
	}

	events, err := s.ListCommitments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].JobID != "j1" {
		t.Errorf("round trip lost the event: %+v", events)
	}
	if !events[0].StartTime.Equal(mondayAt(9)) {
		t.Errorf("start time changed in storage: %v", events[0].StartTime)
	}
}

func TestCreateCommitmentBlocksDoubleBooking(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	if _, _, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j1", StaffID: "alex", StartTime: mondayAt(9), EndTime: mondayAt(12),
	}); err != nil {
		t.Fatalf("first commitment should succeed: %v", err)
	}

	_, conflicts, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j2", StaffID: "alex", StartTime: mondayAt(11), EndTime: mondayAt(13),
	})
	if !errors.Is(err, engine.ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
	if len(conflicts) == 0 {
		t.Error("a blocked create must return the conflicts it found")
	}

	events, _ := s.ListCommitments()
	if len(events) != 1 {
		t.Errorf("blocked create must not write, have %d events", len(events))
	}
}

func TestCreateCommitmentForceOverride(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	if _, _, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j1", StaffID: "alex", StartTime: mondayAt(9), EndTime: mondayAt(12),
	}); err != nil {
		t.Fatalf("first commitment should succeed: %v", err)
	}

	s.Force = true
	_, conflicts, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j2", StaffID: "alex", StartTime: mondayAt(11), EndTime: mondayAt(13),
	})
	if err != nil {
		t.Fatalf("forced create should succeed: %v", err)
	}
	if len(conflicts) == 0 {
		t.Error("force still reports the conflicts it overrode")
	}
}

func TestCreateCommitmentWarningDoesNotBlock(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	// Saturday: availability conflicts warn, they do not block
	saturday := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	_, conflicts, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j1", StaffID: "alex", StartTime: saturday, EndTime: saturday.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("warning-only event should be written: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].Severity != models.SeverityWarning {
		t.Errorf("expected one warning back, got %+v", conflicts)
	}
}

func TestUpdateCommitmentSelfExclusion(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	created, _, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j1", StaffID: "alex", StartTime: mondayAt(9), EndTime: mondayAt(11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Shift by 30 minutes; overlaps its own stored copy, which must not count
	created.StartTime = mondayAt(9).Add(30 * time.Minute)
	created.EndTime = mondayAt(11).Add(30 * time.Minute)
	if _, err := s.UpdateCommitment(created); err != nil {
		t.Fatalf("update overlapping only itself should succeed: %v", err)
	}
}

func TestDeleteCommitment(t *testing.T) {
	s := testStore(t)
	seedAlex(t, s)

	created, _, err := s.CreateCommitment(models.ScheduleEvent{
		JobID: "j1", StaffID: "alex", StartTime: mondayAt(9), EndTime: mondayAt(11),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteCommitment(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, _ := s.ListCommitments()
	if len(events) != 0 {
		t.Errorf("expected empty commitment set after delete, got %d", len(events))
	}
}

func TestStaffRoundTripSerialization(t *testing.T) {
	s := testStore(t)

	saved, err := s.SaveStaff(models.StaffMember{
		Name:   "Blake",
		Skills: []string{"mill", "turn"},
		Availability: map[string]bool{
			"monday": true, "wednesday": true,
		},
		AvailabilityHours: map[string]models.DayWindow{
			"monday": {Start: "07:00", End: "15:00"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Error("store should assign an id")
	}

	staff, err := s.ListStaff()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(staff) != 1 {
		t.Fatalf("expected one staff member, got %d", len(staff))
	}
	got := staff[0]
	if len(got.Skills) != 2 || !got.Availability["wednesday"] {
		t.Errorf("serialized fields lost in round trip: %+v", got)
	}
	if got.AvailabilityHours["monday"].Start != "07:00" {
		t.Errorf("custom hours lost in round trip: %+v", got.AvailabilityHours)
	}
}

func TestJobRoundTrip(t *testing.T) {
	s := testStore(t)

	deadline := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	if _, err := s.SaveJob(models.Job{
		Title:          "Bracket run",
		EstimatedHours: 6,
		Deadline:       deadline,
		Priority:       "high",
		JobType:        "mill",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jobs, err := s.ListJobs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
	if jobs[0].Status != models.StatusPending {
		t.Errorf("new jobs default to pending, got %s", jobs[0].Status)
	}
	if jobs[0].EstimatedHours != 6 {
		t.Errorf("estimated hours lost: %v", jobs[0].EstimatedHours)
	}
}
