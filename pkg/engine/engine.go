// Package engine implements the scheduling and conflict-resolution core:
// availability resolution, slot generation, conflict detection, multi-day
// splitting, suggestion ranking, batch auto-scheduling, and capacity
// aggregation.
//
// Every computation is a pure function of the commitment snapshot, the
// resource roster, business hours, and a clock value. The engine never
// mutates the store; only the AutoSchedule methods cross the store
// boundary, and they re-read the commitment set before every job.
package engine

import (
	"errors"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// Store is the external event store and roster the engine reads from and
// proposes commitments to. Implementations may re-validate a commitment
// on create and return the conflicts they found.
type Store interface {
	ListCommitments() ([]models.ScheduleEvent, error)
	ListStaff() ([]models.StaffMember, error)
	ListMachines() ([]models.Machine, error)
	ListJobs() ([]models.Job, error)
	BusinessHours() (models.BusinessHours, error)
	CreateCommitment(event models.ScheduleEvent) (models.ScheduleEvent, []models.Conflict, error)
	UpdateCommitment(event models.ScheduleEvent) (models.ScheduleEvent, error)
	DeleteCommitment(id string) error
}

// ErrBlocked is returned by stores that refuse a commitment because of
// error-severity conflicts
var ErrBlocked = errors.New("commitment blocked by conflicts")

// Engine drives the scheduling core against a store
type Engine struct {
	store Store
	now   func() time.Time

	daysToCheck int
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the wall clock, used by tests and replays
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLookahead sets the auto-schedule suggestion horizon in days
func WithLookahead(days int) Option {
	return func(e *Engine) { e.daysToCheck = days }
}

// New creates an Engine over the given store
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		now:         time.Now,
		daysToCheck: defaultDaysToCheck,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateSlots resolves availability for a resource on a date and
// enumerates candidate slots for the given duration against the store's
// current commitments. A nil slice with nil error means the resource does
// not work that day.
func (e *Engine) GenerateSlots(res models.Resource, date time.Time, durationMinutes int) ([]models.Slot, error) {
	hours, err := e.store.BusinessHours()
	if err != nil {
		return nil, err
	}
	window, err := ResolveAvailability(res, date, hours)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}
	commitments, err := e.store.ListCommitments()
	if err != nil {
		return nil, err
	}
	day := commitmentsFor(commitments, res.ResourceID(), date)
	return GenerateSlots(*window, time.Duration(durationMinutes)*time.Minute, day), nil
}

// DetectConflicts checks a candidate event against the store snapshot
func (e *Engine) DetectConflicts(event models.ScheduleEvent) ([]models.Conflict, error) {
	hours, err := e.store.BusinessHours()
	if err != nil {
		return nil, err
	}
	commitments, err := e.store.ListCommitments()
	if err != nil {
		return nil, err
	}
	staff, err := e.store.ListStaff()
	if err != nil {
		return nil, err
	}
	machines, err := e.store.ListMachines()
	if err != nil {
		return nil, err
	}
	return DetectConflicts(event, commitments, staff, machines, hours), nil
}

// FindScheduleSuggestions runs the ranker over the store snapshot. When
// staffID is non-empty the candidate pool is narrowed to that one staff
// member; otherwise all staff plus operational machines whose capability
// tags admit the job are considered.
func (e *Engine) FindScheduleSuggestions(job models.Job, staffID string, maxSuggestions, daysToCheck int) ([]models.Suggestion, error) {
	hours, err := e.store.BusinessHours()
	if err != nil {
		return nil, err
	}
	commitments, err := e.store.ListCommitments()
	if err != nil {
		return nil, err
	}
	pool, err := e.resourcePool(staffID)
	if err != nil {
		return nil, err
	}
	if daysToCheck <= 0 {
		daysToCheck = e.daysToCheck
	}
	return FindScheduleSuggestions(job, pool, commitments, hours, SuggestOptions{
		MaxSuggestions: maxSuggestions,
		DaysToCheck:    daysToCheck,
		Now:            e.now(),
	}), nil
}

// ComputeUtilization reports committed vs. available hours for a resource
// over an inclusive date range
func (e *Engine) ComputeUtilization(res models.Resource, from, to time.Time) (models.UtilizationReport, error) {
	hours, err := e.store.BusinessHours()
	if err != nil {
		return models.UtilizationReport{}, err
	}
	commitments, err := e.store.ListCommitments()
	if err != nil {
		return models.UtilizationReport{}, err
	}
	return ComputeUtilization(res, from, to, commitments, hours)
}

func (e *Engine) resourcePool(staffID string) ([]models.Resource, error) {
	staff, err := e.store.ListStaff()
	if err != nil {
		return nil, err
	}
	if staffID != "" {
		for _, s := range staff {
			if s.ID == staffID {
				return []models.Resource{s}, nil
			}
		}
		return nil, nil
	}

	var pool []models.Resource
	for _, s := range staff {
		pool = append(pool, s)
	}
	machines, err := e.store.ListMachines()
	if err != nil {
		return nil, err
	}
	for _, m := range machines {
		if m.Status == models.MachineOperational {
			pool = append(pool, m)
		}
	}
	return pool, nil
}
