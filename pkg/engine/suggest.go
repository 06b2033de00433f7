package engine

import (
	"sort"
	"time"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// Suggestion scoring constants. Relevance dominates utilization so a
// qualified resource with a quiet day still beats an unqualified one with
// a packed day.
const (
	relevanceMatch    = 100.0
	relevancePenalty  = 40.0
	relevanceWeight   = 0.6
	utilizationWeight = 0.4
)

// SuggestOptions controls the suggestion search
type SuggestOptions struct {
	MaxSuggestions int       // defaults to 3
	DaysToCheck    int       // lookahead horizon in days; 0 checks only the current day
	Now            time.Time // search starts at this instant's date
}

const (
	defaultMaxSuggestions = 3
	defaultDaysToCheck    = 14
)

// FindScheduleSuggestions searches the lookahead horizon for conflict-free
// placements of a job across the candidate resource pool and returns the
// top suggestions, deterministically ordered.
//
// For each day and resource it resolves availability, generates slots, and
// keeps the earliest available slot of the day. Candidates are scored on
// capability relevance and day utilization, then sorted by total score
// descending with ties broken by date, start time, and resource ID, so
// identical inputs always produce identical output. An empty result means
// the horizon is exhausted, not an error.
func FindScheduleSuggestions(job models.Job, resources []models.Resource, commitments []models.ScheduleEvent, hours models.BusinessHours, opts SuggestOptions) []models.Suggestion {
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = defaultMaxSuggestions
	}
	daysToCheck := opts.DaysToCheck
	if daysToCheck < 0 {
		daysToCheck = 0
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	pool := make([]models.Resource, len(resources))
	copy(pool, resources)
	sort.Slice(pool, func(i, j int) bool { return pool[i].ResourceID() < pool[j].ResourceID() })

	duration := time.Duration(job.EstimatedHours * float64(time.Hour))
	if duration <= 0 {
		return nil
	}

	var suggestions []models.Suggestion
	for offset := 0; offset <= daysToCheck; offset++ {
		date := now.AddDate(0, 0, offset)
		for _, res := range pool {
			window, err := ResolveAvailability(res, date, hours)
			if err != nil || window == nil {
				continue
			}

			dayCommitments := commitmentsFor(commitments, res.ResourceID(), date)
			slot := FirstAvailableSlot(GenerateSlots(*window, duration, dayCommitments))
			if slot == nil {
				continue
			}

			relevance := relevanceScore(res, job.JobType)
			utilization := utilizationScore(*window, dayCommitments, duration)
			suggestions = append(suggestions, models.Suggestion{
				ResourceID:       res.ResourceID(),
				ResourceName:     res.ResourceName(),
				Date:             window.Start,
				StartTime:        slot.Start,
				EndTime:          slot.End,
				ConflictFree:     true,
				RelevanceScore:   relevance,
				UtilizationScore: utilization,
				TotalScore:       relevanceWeight*relevance + utilizationWeight*utilization,
			})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.ResourceID < b.ResourceID
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// relevanceScore is full marks when the resource has no capability tags
// (qualified for everything) or carries the job's type, else a flat
// penalty score
func relevanceScore(res models.Resource, jobType string) float64 {
	tags := res.CapabilityTags()
	if len(tags) == 0 || jobType == "" {
		return relevanceMatch
	}
	for _, tag := range tags {
		if tag == jobType {
			return relevanceMatch
		}
	}
	return relevancePenalty
}

// utilizationScore measures how tightly the day would be used if the job
// landed there: committed plus job time over window capacity, on a 0-100
// scale. Less idle capacity left over scores higher.
func utilizationScore(window Window, dayCommitments []models.ScheduleEvent, duration time.Duration) float64 {
	capacity := window.Duration()
	if capacity <= 0 {
		return 0
	}
	committed := duration
	for _, ev := range dayCommitments {
		committed += ev.Duration()
	}
	score := float64(committed) / float64(capacity) * 100
	if score > 100 {
		score = 100
	}
	return score
}
