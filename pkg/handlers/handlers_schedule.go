package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// Suggestions runs the suggestion ranker for a job across the resource
// pool, optionally narrowed to one staff member
func (h *Handler) Suggestions(c *gin.Context) {
	var req struct {
		Job            models.Job `json:"job"`
		StaffID        string     `json:"staff_id"`
		MaxSuggestions int        `json:"max_suggestions"`
		DaysToCheck    int        `json:"days_to_check"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Job.EstimatedHours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job estimated_hours must be positive"})
		return
	}

	suggestions, err := h.Engine.FindScheduleSuggestions(req.Job, req.StaffID, req.MaxSuggestions, req.DaysToCheck)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 1, 0)
	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// Slots enumerates candidate start times for a resource on a date
func (h *Handler) Slots(c *gin.Context) {
	var req struct {
		ResourceID      string `json:"resource_id"`
		Date            string `json:"date"` // YYYY-MM-DD
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DurationMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_minutes must be positive"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	res, ok := h.lookupResource(req.ResourceID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	slots, err := h.Engine.GenerateSlots(res, date, req.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 0, 0)
	if slots == nil {
		c.JSON(http.StatusOK, gin.H{"available": false, "slots": []models.Slot{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "slots": slots})
}

// Conflicts checks a candidate event against the commitment snapshot
func (h *Handler) Conflicts(c *gin.Context) {
	var event models.ScheduleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conflicts, err := h.Engine.DetectConflicts(event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 0, 1)
	c.JSON(http.StatusOK, gin.H{
		"conflicts": conflicts,
		"blocking":  engine.HasBlockingConflict(conflicts),
	})
}

// Split plans the multi-day division of a job that outruns one day
func (h *Handler) Split(c *gin.Context) {
	var req struct {
		StaffID        string    `json:"staff_id"`
		Start          time.Time `json:"start"`
		EstimatedHours float64   `json:"estimated_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff, err := h.Store.ListStaff()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var member *models.StaffMember
	for i := range staff {
		if staff[i].ID == req.StaffID {
			member = &staff[i]
			break
		}
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	hours, _ := h.Store.BusinessHours()
	plan, err := engine.PlanSplit(*member, req.Start, req.EstimatedHours, hours)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 1, 0)
	c.JSON(http.StatusOK, plan)
}

// AutoSchedule runs a best-effort pass over every unscheduled job
func (h *Handler) AutoSchedule(c *gin.Context) {
	report, err := h.Engine.AutoScheduleAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, report.Scheduled+report.Failed, report.Scheduled)
	c.JSON(http.StatusOK, report)
}

// AutoScheduleJob schedules a single job by ID
func (h *Handler) AutoScheduleJob(c *gin.Context) {
	scheduled, err := h.Engine.AutoScheduleJob(c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrBlocked) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 1, 0)
	c.JSON(http.StatusOK, gin.H{"job_id": c.Param("id"), "scheduled": scheduled})
}

// Utilization reports committed vs. available hours for a resource
func (h *Handler) Utilization(c *gin.Context) {
	res, ok := h.lookupResource(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}

	report, err := h.Engine.ComputeUtilization(res, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 0, 0)
	c.JSON(http.StatusOK, report)
}

// lookupResource resolves an ID against staff first, then machines
func (h *Handler) lookupResource(id string) (models.Resource, bool) {
	staff, err := h.Store.ListStaff()
	if err == nil {
		for _, s := range staff {
			if s.ID == id {
				return s, true
			}
		}
	}
	machines, err := h.Store.ListMachines()
	if err == nil {
		for _, m := range machines {
			if m.ID == id {
				return m, true
			}
		}
	}
	return nil, false
}
