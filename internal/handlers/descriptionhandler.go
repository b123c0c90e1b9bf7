package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/database"
	"github.com/justsurfingit/job-description-generator/internal/document"
	"github.com/justsurfingit/job-description-generator/internal/dtos"
	"github.com/justsurfingit/job-description-generator/internal/services"
)

const (
	noDownloadMessage = "No job description to download. Please generate one first."
	noPreviewMessage  = "No job description to preview. Please generate one first."
	pdfErrorMessage   = "Error generating PDF. Please try again."
)

// DescriptionHandler serves the form and its exports.
type DescriptionHandler struct {
	Forms    *services.FormService
	Exporter *document.Exporter
}

func NewDescriptionHandler(forms *services.FormService, exporter *document.Exporter) *DescriptionHandler {
	return &DescriptionHandler{Forms: forms, Exporter: exporter}
}

// Create is POST /descriptions. Accepts form posts and JSON.
func (h *DescriptionHandler) Create(c *gin.Context) {
	var req dtos.JobInput
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	outcome, err := h.Forms.Submit(c.Request.Context(), req)
	h.respond(c, http.StatusCreated, outcome, err)
}

func (h *DescriptionHandler) Get(c *gin.Context) {
	desc, err := h.Forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, nil, err)
		return
	}
	h.respond(c, http.StatusOK, &services.Outcome{State: services.StateResult, Description: desc}, nil)
}

func (h *DescriptionHandler) Regenerate(c *gin.Context) {
	outcome, err := h.Forms.Regenerate(c.Request.Context(), c.Param("id"))
	h.respond(c, http.StatusOK, outcome, err)
}

func (h *DescriptionHandler) Preview(c *gin.Context) {
	desc, err := h.Forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, nil, err)
		return
	}

	out, err := h.Exporter.Preview(desc.Details, services.RenderedBody(desc))
	if errors.Is(err, document.ErrNothingToExport) {
		warn(c, noPreviewMessage)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

// PDF is GET /descriptions/:id/pdf. Nothing is sent unless the whole document rendered.
func (h *DescriptionHandler) PDF(c *gin.Context) {
	desc, err := h.Forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, nil, err)
		return
	}

	var buf bytes.Buffer
	filename, err := h.Exporter.PDF(desc.Details, services.RenderedBody(desc), &buf)
	if errors.Is(err, document.ErrNothingToExport) {
		warn(c, noDownloadMessage)
		return
	}
	var exportErr *document.ExportError
	if errors.As(err, &exportErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  pdfErrorMessage,
			"toasts": []dtos.Toast{{Kind: services.ToastError, Message: pdfErrorMessage}},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": pdfErrorMessage})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *DescriptionHandler) respond(c *gin.Context, status int, outcome *services.Outcome, err error) {
	if err != nil {
		h.fail(c, outcome, err)
		return
	}

	html, err := services.RenderedPage(outcome.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render description: " + err.Error()})
		return
	}
	c.JSON(status, describe(outcome, html))
}

// fail maps service errors to HTTP statuses.
func (h *DescriptionHandler) fail(c *gin.Context, outcome *services.Outcome, err error) {
	body := gin.H{"error": err.Error()}
	if outcome != nil {
		body["state"] = outcome.State
		body["toasts"] = outcome.Toasts
	}

	var verr *services.ValidationError
	var ce *client.Error
	switch {
	case errors.As(err, &verr):
		body["error"] = "Please fill in all required fields"
		body["missing"] = verr.Missing
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job description not found"})
	case errors.As(err, &ce):
		body["error"] = ce.Message
		c.JSON(http.StatusBadGateway, body)
	default:
		log.Printf("❌ Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, body)
	}
}

func warn(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  message,
		"toasts": []dtos.Toast{{Kind: services.ToastWarning, Message: message}},
	})
}

func describe(outcome *services.Outcome, html string) dtos.DescriptionResponse {
	desc := outcome.Description
	return dtos.DescriptionResponse{
		ID:         desc.ID,
		State:      string(outcome.State),
		Fallback:   desc.Fallback,
		HTML:       html,
		JobDetails: desc.Details,
		Metadata:   services.Metadata(desc),
		Toasts:     outcome.Toasts,
	}
}
