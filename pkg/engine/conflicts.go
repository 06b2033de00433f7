package engine

import (
	"fmt"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// conflictSeverity is the single policy table deciding which conflict
// types block a commit (error) and which only warn. Callers and the store
// consult this table instead of deciding per call site.
var conflictSeverity = map[models.ConflictType]models.Severity{
	models.ConflictStaff:        models.SeverityError,
	models.ConflictMachine:      models.SeverityError,
	models.ConflictTime:         models.SeverityError,
	models.ConflictAvailability: models.SeverityWarning,
}

// SeverityFor exposes the policy table
func SeverityFor(t models.ConflictType) models.Severity {
	return conflictSeverity[t]
}

// HasBlockingConflict reports whether any conflict carries error severity
func HasBlockingConflict(conflicts []models.Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == models.SeverityError {
			return true
		}
	}
	return false
}

// DetectConflicts checks a candidate (or updated) event against the full
// commitment snapshot and the resource roster.
//
// The event's own ID is excluded so updates do not conflict with
// themselves. Double-booking of the same staff member or machine is an
// error; an event placed outside its resource's resolved availability is
// a warning. All conflicts are collected, never just the first.
func DetectConflicts(event models.ScheduleEvent, commitments []models.ScheduleEvent, staff []models.StaffMember, machines []models.Machine, hours models.BusinessHours) []models.Conflict {
	var conflicts []models.Conflict

	if !event.EndTime.After(event.StartTime) {
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictTime,
			Severity: conflictSeverity[models.ConflictTime],
			Message:  "Event end time must be after its start time",
		})
		return conflicts
	}

	for _, other := range commitments {
		if other.ID == event.ID {
			continue
		}
		if !event.Overlaps(other) {
			continue
		}
		if event.StaffID != "" && event.StaffID == other.StaffID {
			conflicts = append(conflicts, models.Conflict{
				Type:     models.ConflictStaff,
				Severity: conflictSeverity[models.ConflictStaff],
				Message:  fmt.Sprintf("%s is already booked from %s to %s", staffName(staff, event.StaffID), other.StartTime.Format("15:04"), other.EndTime.Format("15:04")),
				Details:  map[string]string{"staff_id": event.StaffID, "event_id": other.ID},
			})
		}
		if event.MachineID != "" && event.MachineID == other.MachineID {
			conflicts = append(conflicts, models.Conflict{
				Type:     models.ConflictMachine,
				Severity: conflictSeverity[models.ConflictMachine],
				Message:  fmt.Sprintf("%s is already booked from %s to %s", machineName(machines, event.MachineID), other.StartTime.Format("15:04"), other.EndTime.Format("15:04")),
				Details:  map[string]string{"machine_id": event.MachineID, "event_id": other.ID},
			})
		}
	}

	if event.StaffID != "" {
		if member, ok := findStaff(staff, event.StaffID); ok {
			conflicts = append(conflicts, availabilityConflicts(member, event, hours)...)
		}
	}
	if event.MachineID != "" {
		if machine, ok := findMachine(machines, event.MachineID); ok {
			conflicts = append(conflicts, availabilityConflicts(machine, event, hours)...)
		}
	}

	return conflicts
}

func availabilityConflicts(res models.Resource, event models.ScheduleEvent, hours models.BusinessHours) []models.Conflict {
	window, err := ResolveAvailability(res, event.StartTime, hours)
	if err != nil {
		return []models.Conflict{{
			Type:     models.ConflictAvailability,
			Severity: conflictSeverity[models.ConflictAvailability],
			Message:  fmt.Sprintf("Could not resolve availability for %s: %v", res.ResourceName(), err),
		}}
	}
	if window == nil {
		return []models.Conflict{{
			Type:     models.ConflictAvailability,
			Severity: conflictSeverity[models.ConflictAvailability],
			Message:  fmt.Sprintf("%s is not available on %s", res.ResourceName(), event.StartTime.Format("Monday, Jan 2")),
			Details:  map[string]string{"resource_id": res.ResourceID()},
		}}
	}
	if !window.Contains(event.StartTime, event.EndTime) {
		return []models.Conflict{{
			Type:     models.ConflictAvailability,
			Severity: conflictSeverity[models.ConflictAvailability],
			Message:  fmt.Sprintf("Event falls outside %s's working hours (%s-%s)", res.ResourceName(), window.Start.Format("15:04"), window.End.Format("15:04")),
			Details:  map[string]string{"resource_id": res.ResourceID()},
		}}
	}
	return nil
}

func findStaff(staff []models.StaffMember, id string) (models.StaffMember, bool) {
	for _, s := range staff {
		if s.ID == id {
			return s, true
		}
	}
	return models.StaffMember{}, false
}

func findMachine(machines []models.Machine, id string) (models.Machine, bool) {
	for _, m := range machines {
		if m.ID == id {
			return m, true
		}
	}
	return models.Machine{}, false
}

func staffName(staff []models.StaffMember, id string) string {
	if s, ok := findStaff(staff, id); ok {
		return s.Name
	}
	return id
}

func machineName(machines []models.Machine, id string) string {
	if m, ok := findMachine(machines, id); ok {
		return m.Name
	}
	return id
}
