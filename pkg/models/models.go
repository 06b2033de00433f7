package models

import "time"

// JobStatus tracks a job through its workflow
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusInProgress JobStatus = "in_progress"
	StatusReview     JobStatus = "review"
	StatusCompleted  JobStatus = "completed"
	StatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether a job in this status can still be scheduled
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MachineStatus tracks whether a machine can take work
type MachineStatus string

const (
	MachineOperational MachineStatus = "operational"
	MachineMaintenance MachineStatus = "maintenance"
	MachineOffline     MachineStatus = "offline"
)

// Job represents a unit of shop work with an estimated duration and deadline
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Client         string    `json:"client,omitempty"`
	EstimatedHours float64   `json:"estimated_hours"`
	Deadline       time.Time `json:"deadline"`
	Priority       string    `json:"priority,omitempty"`
	Status         JobStatus `json:"status"`
	JobType        string    `json:"job_type,omitempty"`
}

// DayWindow is a wall-clock {start, end} pair in "HH:MM" form
type DayWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BusinessHours is the default working window used when a resource
// specifies no custom hours
type BusinessHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StaffMember represents a person available for job assignments
type StaffMember struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills,omitempty"` // empty means qualified for all job types

	// Availability maps lowercase weekday names ("monday") to whether the
	// staff member works that day. Missing days count as not working.
	Availability map[string]bool `json:"availability,omitempty"`

	// AvailabilityHours holds per-weekday custom hours; a working day with
	// no entry falls back to business hours.
	AvailabilityHours map[string]DayWindow `json:"availability_hours,omitempty"`
}

// Machine represents a piece of shop equipment
type Machine struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Type            string        `json:"type,omitempty"`
	Capabilities    []string      `json:"capabilities,omitempty"`
	HoursPerDay     float64       `json:"hours_per_day"`
	Status          MachineStatus `json:"status"`
	LastMaintenance *time.Time    `json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time    `json:"next_maintenance,omitempty"`
}

// ScheduleEvent is a commitment: a job placed on the calendar, optionally
// assigned to a staff member and/or a machine
type ScheduleEvent struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	StaffID   string    `json:"staff_id,omitempty"`
	MachineID string    `json:"machine_id,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes,omitempty"`
}

// Duration returns the committed span
func (e ScheduleEvent) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Touches reports whether the event references the given resource
func (e ScheduleEvent) Touches(resourceID string) bool {
	return (e.StaffID != "" && e.StaffID == resourceID) ||
		(e.MachineID != "" && e.MachineID == resourceID)
}

// Overlaps reports whether two commitments intersect in time
func (e ScheduleEvent) Overlaps(other ScheduleEvent) bool {
	return e.StartTime.Before(other.EndTime) && other.StartTime.Before(e.EndTime)
}

// Resource is anything the engine can place work on: a staff member or a
// machine. The engine only ever needs identity and capability tags; the
// concrete type decides availability semantics.
type Resource interface {
	ResourceID() string
	ResourceName() string
	CapabilityTags() []string
}

func (s StaffMember) ResourceID() string       { return s.ID }
func (s StaffMember) ResourceName() string     { return s.Name }
func (s StaffMember) CapabilityTags() []string { return s.Skills }

func (m Machine) ResourceID() string       { return m.ID }
func (m Machine) ResourceName() string     { return m.Name }
func (m Machine) CapabilityTags() []string { return m.Capabilities }

// ConflictType categorizes a detected scheduling violation
type ConflictType string

const (
	ConflictStaff        ConflictType = "staff"
	ConflictMachine      ConflictType = "machine"
	ConflictTime         ConflictType = "time"
	ConflictAvailability ConflictType = "availability"
)

// Severity ranks how serious a conflict is. Errors block a commit;
// warnings are surfaced but allow it.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict describes one scheduling violation
type Conflict struct {
	Type     ConflictType      `json:"type"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// Slot is one fixed-granularity candidate start time for a job
type Slot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	IsAvailable    bool      `json:"is_available"`
	HasConflict    bool      `json:"has_conflict"`
	ConflictReason string    `json:"conflict_reason,omitempty"`
}

// Suggestion is a scored, conflict-free candidate placement for a job
type Suggestion struct {
	ResourceID       string    `json:"resource_id"`
	ResourceName     string    `json:"resource_name"`
	Date             time.Time `json:"date"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ConflictFree     bool      `json:"conflict_free"`
	UtilizationScore float64   `json:"utilization_score"`
	RelevanceScore   float64   `json:"relevance_score"`
	TotalScore       float64   `json:"total_score"`
}

// UtilizationReport summarizes committed vs. available hours for a
// resource over a date range
type UtilizationReport struct {
	Utilization        float64 `json:"utilization"`
	ScheduledHours     float64 `json:"scheduled_hours"`
	TotalCapacityHours float64 `json:"total_capacity_hours"`
	IsOverCapacity     bool    `json:"is_over_capacity"`
}

// JobOutcome is the per-job result of a batch auto-schedule run
type JobOutcome struct {
	JobID     string `json:"job_id"`
	Title     string `json:"title"`
	Scheduled bool   `json:"scheduled"`
	EventID   string `json:"event_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AutoScheduleReport aggregates a full auto-schedule pass
type AutoScheduleReport struct {
	Scheduled int          `json:"scheduled"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Outcomes  []JobOutcome `json:"outcomes"`
}
