package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/engine"
	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// ListJobs returns every job
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.Store.ListJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob inserts or updates a job
func (h *Handler) CreateJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if job.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if job.EstimatedHours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estimated_hours must be positive"})
		return
	}

	saved, err := h.Store.SaveJob(job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.RecordUsage(c, 1, 0)
	c.JSON(http.StatusOK, saved)
}

// DeleteJob removes a job
func (h *Handler) DeleteJob(c *gin.Context) {
	if err := h.Store.DeleteJob(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ListStaff returns the staff roster
func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.Store.ListStaff()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateStaff inserts or updates a staff member
func (h *Handler) CreateStaff(c *gin.Context) {
	var member models.StaffMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if member.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	saved, err := h.Store.SaveStaff(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteStaff removes a staff member
func (h *Handler) DeleteStaff(c *gin.Context) {
	if err := h.Store.DeleteStaff(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ListMachines returns the machine roster
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.Store.ListMachines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// CreateMachine inserts or updates a machine
func (h *Handler) CreateMachine(c *gin.Context) {
	var machine models.Machine
	if err := c.ShouldBindJSON(&machine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if machine.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	saved, err := h.Store.SaveMachine(machine)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteMachine removes a machine
func (h *Handler) DeleteMachine(c *gin.Context) {
	if err := h.Store.DeleteMachine(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ListEvents returns the full commitment set
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Store.ListCommitments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEvent commits a new schedule event. Error-severity conflicts block
// the write unless force=true; warnings pass through with the saved event.
func (h *Handler) CreateEvent(c *gin.Context) {
	var event models.ScheduleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if event.JobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id is required"})
		return
	}

	// Shallow copy so a forced request does not flip the shared store
	s := *h.Store
	s.Force = c.Query("force") == "true"

	created, conflicts, err := s.CreateCommitment(event)
	if err != nil {
		if errors.Is(err, engine.ErrBlocked) {
			c.JSON(http.StatusConflict, gin.H{"error": "Event conflicts with the existing schedule", "conflicts": conflicts})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, 0, 1)
	c.JSON(http.StatusOK, gin.H{"event": created, "conflicts": conflicts})
}

// UpdateEvent saves changes to an existing commitment
func (h *Handler) UpdateEvent(c *gin.Context) {
	var event models.ScheduleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event.ID = c.Param("id")

	updated, err := h.Store.UpdateCommitment(event)
	if err != nil {
		if errors.Is(err, engine.ErrBlocked) {
			c.JSON(http.StatusConflict, gin.H{"error": "Event conflicts with the existing schedule"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEvent removes a commitment
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.Store.DeleteCommitment(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
