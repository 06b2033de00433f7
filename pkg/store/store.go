// Package store is the gorm-backed event store the engine reads
// commitments and rosters from. Creates are re-validated with the
// conflict detector: error-severity conflicts block the write unless the
// caller forces it, warnings are returned alongside the saved event.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/database"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// Store persists jobs, staff, machines, and commitments
type Store struct {
	db    *gorm.DB
	hours models.BusinessHours

	// Force skips the blocking check on create; warnings still flow back
	Force bool
}

// New creates a Store over an initialized database. Business hours come
// from BUSINESS_HOURS_START / BUSINESS_HOURS_END, defaulting to a
// 09:00-17:00 workday.
func New(db *gorm.DB) *Store {
	hours := models.BusinessHours{Start: "09:00", End: "17:00"}
	if v := os.Getenv("BUSINESS_HOURS_START"); v != "" {
		hours.Start = v
	}
	if v := os.Getenv("BUSINESS_HOURS_END"); v != "" {
		hours.End = v
	}
	return &Store{db: db, hours: hours}
}

// BusinessHours returns the configured default working window
func (s *Store) BusinessHours() (models.BusinessHours, error) {
	return s.hours, nil
}

// ListCommitments returns the full commitment snapshot
func (s *Store) ListCommitments() ([]models.ScheduleEvent, error) {
	var records []database.EventRecord
	if err := s.db.Order("start_time").Find(&records).Error; err != nil {
		return nil, err
	}
	events := make([]models.ScheduleEvent, 0, len(records))
	for _, r := range records {
		events = append(events, eventFromRecord(r))
	}
	return events, nil
}

// GetCommitment fetches one commitment by ID
func (s *Store) GetCommitment(id string) (models.ScheduleEvent, error) {
	var record database.EventRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		return models.ScheduleEvent{}, err
	}
	return eventFromRecord(record), nil
}

// CreateCommitment validates and persists a new commitment. The returned
// conflict list always includes warnings; when it contains error-severity
// conflicts and Force is off, nothing is written and the error wraps
// engine.ErrBlocked.
func (s *Store) CreateCommitment(event models.ScheduleEvent) (models.ScheduleEvent, []models.Conflict, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	conflicts, err := s.validate(event)
	if err != nil {
		return models.ScheduleEvent{}, nil, err
	}
	if engine.HasBlockingConflict(conflicts) && !s.Force {
		return models.ScheduleEvent{}, conflicts, fmt.Errorf("create commitment %s: %w", event.ID, engine.ErrBlocked)
	}

	record := recordFromEvent(event)
	if err := s.db.Create(&record).Error; err != nil {
		return models.ScheduleEvent{}, conflicts, err
	}
	return event, conflicts, nil
}

// UpdateCommitment validates and saves changes to an existing commitment.
// The event's own ID is excluded from overlap checks by the detector.
func (s *Store) UpdateCommitment(event models.ScheduleEvent) (models.ScheduleEvent, error) {
	if event.ID == "" {
		return models.ScheduleEvent{}, errors.New("update requires an event id")
	}

	conflicts, err := s.validate(event)
	if err != nil {
		return models.ScheduleEvent{}, err
	}
	if engine.HasBlockingConflict(conflicts) && !s.Force {
		return models.ScheduleEvent{}, fmt.Errorf("update commitment %s: %w", event.ID, engine.ErrBlocked)
	}

	record := recordFromEvent(event)
	if err := s.db.Save(&record).Error; err != nil {
		return models.ScheduleEvent{}, err
	}
	return event, nil
}

// DeleteCommitment removes a commitment by ID
func (s *Store) DeleteCommitment(id string) error {
	return s.db.Delete(&database.EventRecord{}, "id = ?", id).Error
}

func (s *Store) validate(event models.ScheduleEvent) ([]models.Conflict, error) {
	commitments, err := s.ListCommitments()
	if err != nil {
		return nil, err
	}
	staff, err := s.ListStaff()
	if err != nil {
		return nil, err
	}
	machines, err := s.ListMachines()
	if err != nil {
		return nil, err
	}
	return engine.DetectConflicts(event, commitments, staff, machines, s.hours), nil
}

// ListJobs returns every job
func (s *Store) ListJobs() ([]models.Job, error) {
	var records []database.JobRecord
	if err := s.db.Order("deadline").Find(&records).Error; err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, models.Job{
			ID:             r.ID,
			Title:          r.Title,
			Client:         r.Client,
			EstimatedHours: r.EstimatedHours,
			Deadline:       r.Deadline,
			Priority:       r.Priority,
			Status:         models.JobStatus(r.Status),
			JobType:        r.JobType,
		})
	}
	return jobs, nil
}

// SaveJob inserts or updates a job
func (s *Store) SaveJob(job models.Job) (models.Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.StatusPending
	}
	record := database.JobRecord{
		ID:             job.ID,
		Title:          job.Title,
		Client:         job.Client,
		EstimatedHours: job.EstimatedHours,
		Deadline:       job.Deadline,
		Priority:       job.Priority,
		Status:         string(job.Status),
		JobType:        job.JobType,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// DeleteJob removes a job by ID
func (s *Store) DeleteJob(id string) error {
	return s.db.Delete(&database.JobRecord{}, "id = ?", id).Error
}

// ListStaff returns the staff roster
func (s *Store) ListStaff() ([]models.StaffMember, error) {
	var records []database.StaffRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	staff := make([]models.StaffMember, 0, len(records))
	for _, r := range records {
		staff = append(staff, models.StaffMember{
			ID:                r.ID,
			Name:              r.Name,
			Skills:            r.Skills,
			Availability:      r.Availability,
			AvailabilityHours: r.AvailabilityHours,
		})
	}
	return staff, nil
}

// SaveStaff inserts or updates a staff member
func (s *Store) SaveStaff(member models.StaffMember) (models.StaffMember, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	record := database.StaffRecord{
		ID:                member.ID,
		Name:              member.Name,
		Skills:            member.Skills,
		Availability:      member.Availability,
		AvailabilityHours: member.AvailabilityHours,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return models.StaffMember{}, err
	}
	return member, nil
}

// DeleteStaff removes a staff member by ID
func (s *Store) DeleteStaff(id string) error {
	return s.db.Delete(&database.StaffRecord{}, "id = ?", id).Error
}

// ListMachines returns the machine roster
func (s *Store) ListMachines() ([]models.Machine, error) {
	var records []database.MachineRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	machines := make([]models.Machine, 0, len(records))
	for _, r := range records {
		machines = append(machines, models.Machine{
			ID:              r.ID,
			Name:            r.Name,
			Type:            r.Type,
			Capabilities:    r.Capabilities,
			HoursPerDay:     r.HoursPerDay,
			Status:          models.MachineStatus(r.Status),
			LastMaintenance: r.LastMaintenance,
			NextMaintenance: r.NextMaintenance,
		})
	}
	return machines, nil
}

// SaveMachine inserts or updates a machine
func (s *Store) SaveMachine(machine models.Machine) (models.Machine, error) {
	if machine.ID == "" {
		machine.ID = uuid.NewString()
	}
	if machine.Status == "" {
		machine.Status = models.MachineOperational
	}
	record := database.MachineRecord{
		ID:              machine.ID,
		Name:            machine.Name,
		Type:            machine.Type,
		Capabilities:    machine.Capabilities,
		HoursPerDay:     machine.HoursPerDay,
		Status:          string(machine.Status),
		LastMaintenance: machine.LastMaintenance,
		NextMaintenance: machine.NextMaintenance,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return models.Machine{}, err
	}
	return machine, nil
}

// DeleteMachine removes a machine by ID
func (s *Store) DeleteMachine(id string) error {
	return s.db.Delete(&database.MachineRecord{}, "id = ?", id).Error
}

func eventFromRecord(r database.EventRecord) models.ScheduleEvent {
	return models.ScheduleEvent{
		ID:        r.ID,
		JobID:     r.JobID,
		StaffID:   r.StaffID,
		MachineID: r.MachineID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
}

func recordFromEvent(e models.ScheduleEvent) database.EventRecord {
	return database.EventRecord{
		ID:        e.ID,
		JobID:     e.JobID,
		StaffID:   e.StaffID,
		MachineID: e.MachineID,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
	}
}
