package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/services"
)

// JobHandler serves the generator backend.
type JobHandler struct {
	Generation *services.GenerationService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(gen *services.GenerationService) *JobHandler {
	return &JobHandler{Generation: gen}
}

// Generate is the POST /generate endpoint.
// Generation failures keep HTTP 200 and report success=false in the body.
func (h *JobHandler) Generate(c *gin.Context) {
	var req dtos.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.GenerateResponse{
			Success: false,
			Error:   "Invalid JSON format: " + err.Error(),
			Message: "Failed to generate job description. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, h.Generation.Generate(c.Request.Context(), req))
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
