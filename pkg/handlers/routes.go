package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router. Shared between the
// standalone server and the serverless entry point.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job-Shop Scheduler API",
			"version": "1.2.0",
		})
	})

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/suggestions", h.Suggestions)
		api.POST("/slots", h.Slots)
		api.POST("/conflicts", h.Conflicts)
		api.POST("/split", h.Split)
		api.POST("/autoschedule", h.AutoSchedule)
		api.POST("/autoschedule/csv", h.AutoScheduleCSV)
		api.POST("/autoschedule/job/:id", h.AutoScheduleJob)
		api.GET("/utilization/:id", h.Utilization)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)

		api.GET("/jobs", h.ListJobs)
		api.POST("/jobs", h.CreateJob)
		api.DELETE("/jobs/:id", h.DeleteJob)

		api.GET("/staff", h.ListStaff)
		api.POST("/staff", h.CreateStaff)
		api.DELETE("/staff/:id", h.DeleteStaff)

		api.GET("/machines", h.ListMachines)
		api.POST("/machines", h.CreateMachine)
		api.DELETE("/machines/:id", h.DeleteMachine)

		api.GET("/events", h.ListEvents)
		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.DELETE("/events/:id", h.DeleteEvent)
	}
}
