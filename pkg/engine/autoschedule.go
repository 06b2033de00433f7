package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// priorityRank orders job priorities for the auto-schedule queue; unknown
// priorities sort last
var priorityRank = map[string]int{
	"urgent": 0,
	"high":   1,
	"medium": 2,
	"low":    3,
}

func rankPriority(p string) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// unscheduledJobs filters and orders the auto-schedule queue: jobs in a
// terminal status or already referenced by a commitment are dropped, the
// rest sort by earliest deadline, then priority, then ID.
func unscheduledJobs(jobs []models.Job, commitments []models.ScheduleEvent) []models.Job {
	referenced := make(map[string]bool, len(commitments))
	for _, ev := range commitments {
		referenced[ev.JobID] = true
	}

	var queue []models.Job
	for _, job := range jobs {
		if job.Status.Terminal() || referenced[job.ID] {
			continue
		}
		queue = append(queue, job)
	}

	sort.Slice(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		if ra, rb := rankPriority(a.Priority), rankPriority(b.Priority); ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})
	return queue
}

// AutoScheduleAll assigns every unscheduled, non-terminal job to its
// best-ranked suggestion and commits it through the store.
//
// Jobs are processed strictly in deadline order and the commitment set is
// re-read before each job, so two jobs in one run can never claim the same
// slot from a stale snapshot. A job with no conflict-free slot in the
// horizon, or whose commit the store rejects, counts as failed; failures
// never abort the run. Re-running is a no-op for jobs that already have a
// commitment.
func (e *Engine) AutoScheduleAll() (models.AutoScheduleReport, error) {
	jobs, err := e.store.ListJobs()
	if err != nil {
		return models.AutoScheduleReport{}, err
	}
	commitments, err := e.store.ListCommitments()
	if err != nil {
		return models.AutoScheduleReport{}, err
	}

	var report models.AutoScheduleReport
	for _, job := range unscheduledJobs(jobs, commitments) {
		outcome := e.scheduleOne(job)
		if outcome.Scheduled {
			report.Scheduled++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}
	return report, nil
}

// AutoScheduleJob schedules a single job by ID. It returns false without
// error when the job already has a commitment, is in a terminal status, or
// no conflict-free slot exists within the horizon.
func (e *Engine) AutoScheduleJob(jobID string) (bool, error) {
	jobs, err := e.store.ListJobs()
	if err != nil {
		return false, err
	}
	var job *models.Job
	for i := range jobs {
		if jobs[i].ID == jobID {
			job = &jobs[i]
			break
		}
	}
	if job == nil {
		return false, fmt.Errorf("job %s not found", jobID)
	}
	if job.Status.Terminal() {
		return false, nil
	}

	commitments, err := e.store.ListCommitments()
	if err != nil {
		return false, err
	}
	for _, ev := range commitments {
		if ev.JobID == jobID {
			return false, nil
		}
	}

	return e.scheduleOne(*job).Scheduled, nil
}

// scheduleOne asks the ranker for the single best candidate and commits
// it. The store re-validates; a blocked commit is a per-job failure.
func (e *Engine) scheduleOne(job models.Job) models.JobOutcome {
	outcome := models.JobOutcome{JobID: job.ID, Title: job.Title}

	suggestions, err := e.FindScheduleSuggestions(job, "", 1, e.daysToCheck)
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}
	if len(suggestions) == 0 {
		outcome.Reason = "no conflict-free slot found within the lookahead horizon"
		return outcome
	}

	best := suggestions[0]
	event := models.ScheduleEvent{
		JobID:     job.ID,
		StartTime: best.StartTime,
		EndTime:   best.EndTime,
		Notes:     "auto-scheduled",
	}
	if _, isMachine := resourceAsMachine(e, best.ResourceID); isMachine {
		event.MachineID = best.ResourceID
	} else {
		event.StaffID = best.ResourceID
	}

	created, conflicts, err := e.store.CreateCommitment(event)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			outcome.Reason = conflictSummary(conflicts)
		} else {
			outcome.Reason = err.Error()
		}
		return outcome
	}

	outcome.Scheduled = true
	outcome.EventID = created.ID
	return outcome
}

func resourceAsMachine(e *Engine, id string) (models.Machine, bool) {
	machines, err := e.store.ListMachines()
	if err != nil {
		return models.Machine{}, false
	}
	return findMachine(machines, id)
}

func conflictSummary(conflicts []models.Conflict) string {
	if len(conflicts) == 0 {
		return "store rejected the commitment"
	}
	return conflicts[0].Message
}
