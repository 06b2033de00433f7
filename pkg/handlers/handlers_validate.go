package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// ValidateInput handles structural validation of a scheduling payload
// before the caller commits anything
func (h *Handler) ValidateInput(c *gin.Context) {
	var input struct {
		Jobs   []models.Job           `json:"jobs"`
		Staff  []models.StaffMember   `json:"staff"`
		Events []models.ScheduleEvent `json:"events"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Jobs) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one job is required",
		})
		return
	}

	// Check for duplicate IDs
	jobIDs := make(map[string]bool)
	for _, j := range input.Jobs {
		if jobIDs[j.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate job ID: " + j.ID})
			return
		}
		jobIDs[j.ID] = true

		if j.EstimatedHours <= 0 {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Job " + j.ID + " has non-positive estimated_hours"})
			return
		}
	}

	staffIDs := make(map[string]bool)
	for _, s := range input.Staff {
		if staffIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate staff ID: " + s.ID})
			return
		}
		staffIDs[s.ID] = true
	}

	for _, e := range input.Events {
		if !e.EndTime.After(e.StartTime) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Event " + e.ID + " ends before it starts"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"job_count":   len(input.Jobs),
			"staff_count": len(input.Staff),
			"event_count": len(input.Events),
		},
	})
}
