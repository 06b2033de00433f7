package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

func millJob(hours float64) models.Job {
	return models.Job{
		ID:             "j1",
		Title:          "Bracket run",
		EstimatedHours: hours,
		Deadline:       monday.AddDate(0, 0, 7),
		Status:         models.StatusPending,
		JobType:        "mill",
	}
}

func namedStaff(id, name string, skills ...string) models.StaffMember {
	s := weekdayStaff()
	s.ID = id
	s.Name = name
	s.Skills = skills
	return s
}

// Scenario D: two qualified staff, the one whose day would be used more
// tightly ranks first.
func TestFindScheduleSuggestionsPrefersHigherUtilization(t *testing.T) {
	alex := namedStaff("alex", "Alex", "mill")
	blake := namedStaff("blake", "Blake", "mill")

	// Blake already has 4 committed hours on Monday afternoon, so adding
	// the job uses Blake's day more tightly than Alex's empty one
	commitments := []models.ScheduleEvent{{
		ID: "e1", JobID: "j0", StaffID: "blake",
		StartTime: at(13, 0), EndTime: at(17, 0),
	}}

	got := FindScheduleSuggestions(millJob(2), []models.Resource{alex, blake}, commitments, businessHours, SuggestOptions{
		MaxSuggestions: 1,
		DaysToCheck:    3,
		Now:            monday,
	})

	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if got[0].ResourceID != "blake" {
		t.Errorf("expected Blake (tighter day) first, got %s", got[0].ResourceID)
	}
	if !got[0].ConflictFree {
		t.Error("suggestions must be conflict free")
	}
}

func TestFindScheduleSuggestionsRelevancePenalty(t *testing.T) {
	miller := namedStaff("alex", "Alex", "mill")
	turner := namedStaff("blake", "Blake", "turn")
	generalist := namedStaff("casey", "Casey") // no skills means qualified for all

	got := FindScheduleSuggestions(millJob(2), []models.Resource{turner, miller, generalist}, nil, businessHours, SuggestOptions{
		MaxSuggestions: 3,
		DaysToCheck:    0,
		Now:            monday,
	})

	if len(got) != 3 {
		t.Fatalf("expected three suggestions, got %d", len(got))
	}
	// Alex and Casey score full relevance and tie, breaking on resource
	// ID; Blake's skill mismatch sinks to last
	if got[0].ResourceID != "alex" || got[1].ResourceID != "casey" {
		t.Errorf("expected alex then casey, got %s then %s", got[0].ResourceID, got[1].ResourceID)
	}
	if got[2].ResourceID != "blake" {
		t.Errorf("expected the unqualified turner last, got %s", got[2].ResourceID)
	}
	if got[2].RelevanceScore >= got[0].RelevanceScore {
		t.Errorf("mismatched skills must score lower relevance: %v vs %v", got[2].RelevanceScore, got[0].RelevanceScore)
	}
}

// Determinism: identical inputs produce identical ordered output.
func TestFindScheduleSuggestionsDeterministic(t *testing.T) {
	pool := []models.Resource{
		namedStaff("casey", "Casey"),
		namedStaff("alex", "Alex", "mill"),
		namedStaff("blake", "Blake", "mill"),
	}
	commitments := []models.ScheduleEvent{{
		ID: "e1", JobID: "j0", StaffID: "alex",
		StartTime: at(9, 0), EndTime: at(12, 0),
	}}
	opts := SuggestOptions{MaxSuggestions: 5, DaysToCheck: 7, Now: monday}

	first := FindScheduleSuggestions(millJob(3), pool, commitments, businessHours, opts)
	second := FindScheduleSuggestions(millJob(3), pool, commitments, businessHours, opts)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs with identical inputs returned different suggestions")
	}
}

func TestFindScheduleSuggestionsHorizonExhausted(t *testing.T) {
	// Nobody works weekends; a Saturday-only horizon has no candidates
	saturday := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got := FindScheduleSuggestions(millJob(2), []models.Resource{namedStaff("alex", "Alex")}, nil, businessHours, SuggestOptions{
		MaxSuggestions: 3,
		DaysToCheck:    0,
		Now:            saturday,
	})
	if len(got) != 0 {
		t.Errorf("expected an empty suggestion list, got %d", len(got))
	}
}

func TestFindScheduleSuggestionsSkipsFullDays(t *testing.T) {
	alex := namedStaff("alex", "Alex")
	// Monday fully booked; the suggestion must move to Tuesday
	commitments := []models.ScheduleEvent{{
		ID: "e1", JobID: "j0", StaffID: "alex",
		StartTime: at(9, 0), EndTime: at(17, 0),
	}}

	got := FindScheduleSuggestions(millJob(2), []models.Resource{alex}, commitments, businessHours, SuggestOptions{
		MaxSuggestions: 1,
		DaysToCheck:    3,
		Now:            monday,
	})
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if got[0].StartTime.Weekday() != time.Tuesday {
		t.Errorf("expected a Tuesday placement, got %s", got[0].StartTime.Weekday())
	}
}

func TestFindScheduleSuggestionsCapsResults(t *testing.T) {
	pool := []models.Resource{
		namedStaff("alex", "Alex"),
		namedStaff("blake", "Blake"),
		namedStaff("casey", "Casey"),
	}
	got := FindScheduleSuggestions(millJob(1), pool, nil, businessHours, SuggestOptions{
		MaxSuggestions: 2,
		DaysToCheck:    7,
		Now:            monday,
	})
	if len(got) != 2 {
		t.Errorf("expected the list capped at 2, got %d", len(got))
	}
}

func TestFindScheduleSuggestionsMachinePool(t *testing.T) {
	mill := models.Machine{ID: "cnc-1", Name: "CNC Mill 1", Capabilities: []string{"mill"}, HoursPerDay: 8, Status: models.MachineOperational}
	lathe := models.Machine{ID: "lathe-1", Name: "Lathe 1", Capabilities: []string{"turn"}, HoursPerDay: 8, Status: models.MachineOperational}

	got := FindScheduleSuggestions(millJob(2), []models.Resource{lathe, mill}, nil, businessHours, SuggestOptions{
		MaxSuggestions: 1,
		DaysToCheck:    0,
		Now:            monday,
	})
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %d", len(got))
	}
	if got[0].ResourceID != "cnc-1" {
		t.Errorf("expected the mill to outrank the lathe, got %s", got[0].ResourceID)
	}
}
