package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// AutoScheduleCSV handles CSV uploads for one-shot batch scheduling.
// Jobs and staff come in as files, the whole pass runs in memory against
// an empty schedule, and the resulting assignments go back out as CSV.
// Nothing is persisted.
func (h *Handler) AutoScheduleCSV(c *gin.Context) {
	jobsFile, _ := c.FormFile("jobs_file")
	staffFile, _ := c.FormFile("staff_file")

	if jobsFile == nil || staffFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobs_file and staff_file are required"})
		return
	}

	// Parse jobs
	jFile, err := jobsFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open jobs file"})
		return
	}
	defer jFile.Close()
	jReader := csv.NewReader(jFile)
	jHeader, err := jReader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read jobs header"})
		return
	}
	jCols := make(map[string]int)
	for i, name := range jHeader {
		jCols[name] = i
	}

	var jobs []models.Job
	for {
		record, err := jReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		hours, _ := strconv.ParseFloat(record[jCols["estimated_hours"]], 64)
		deadline, _ := time.Parse("2006-01-02", record[jCols["deadline"]])
		job := models.Job{
			ID:             record[jCols["id"]],
			Title:          record[jCols["title"]],
			EstimatedHours: hours,
			Deadline:       deadline,
			Status:         models.StatusPending,
		}
		if idx, ok := jCols["job_type"]; ok {
			job.JobType = record[idx]
		}
		if idx, ok := jCols["priority"]; ok {
			job.Priority = record[idx]
		}
		jobs = append(jobs, job)
	}

	// Parse staff
	sFile, err := staffFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open staff file"})
		return
	}
	defer sFile.Close()
	sReader := csv.NewReader(sFile)
	sHeader, err := sReader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read staff header"})
		return
	}
	sCols := make(map[string]int)
	for i, name := range sHeader {
		sCols[name] = i
	}

	var pool []models.Resource
	for {
		record, err := sReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		member := models.StaffMember{
			ID:           record[sCols["id"]],
			Name:         record[sCols["name"]],
			Availability: map[string]bool{},
		}
		if idx, ok := sCols["skills"]; ok && record[idx] != "" {
			member.Skills = strings.Split(record[idx], "|")
		}
		// days column like "monday|tuesday|friday"; empty means Mon-Fri
		days := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
		if idx, ok := sCols["days"]; ok && record[idx] != "" {
			days = strings.Split(strings.ToLower(record[idx]), "|")
		}
		for _, d := range days {
			member.Availability[strings.TrimSpace(d)] = true
		}
		pool = append(pool, member)
	}

	hours, _ := h.Store.BusinessHours()
	now := time.Now()

	// Greedy in-memory pass: commit each best suggestion into the local
	// snapshot so later jobs see earlier placements
	var commitments []models.ScheduleEvent
	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"job_id", "title", "resource_id", "resource_name", "start", "end", "scheduled"})

	scheduled, failed := 0, 0
	for _, job := range jobs {
		suggestions := engine.FindScheduleSuggestions(job, pool, commitments, hours, engine.SuggestOptions{
			MaxSuggestions: 1,
			Now:            now,
		})
		if len(suggestions) == 0 {
			failed++
			writer.Write([]string{job.ID, job.Title, "", "", "", "", "false"})
			continue
		}
		best := suggestions[0]
		commitments = append(commitments, models.ScheduleEvent{
			ID:        fmt.Sprintf("csv-%s", job.ID),
			JobID:     job.ID,
			StaffID:   best.ResourceID,
			StartTime: best.StartTime,
			EndTime:   best.EndTime,
		})
		scheduled++
		writer.Write([]string{
			job.ID,
			job.Title,
			best.ResourceID,
			best.ResourceName,
			best.StartTime.Format(time.RFC3339),
			best.EndTime.Format(time.RFC3339),
			"true",
		})
	}
	writer.Flush()

	h.RecordUsage(c, len(jobs), scheduled)
	c.JSON(http.StatusOK, gin.H{
		"csv":       outCSV.String(),
		"scheduled": scheduled,
		"failed":    failed,
	})
}
