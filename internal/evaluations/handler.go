package evaluations

import (
	"github.com/gin-gonic/gin"

	"github.com/durianpy/events-backend/internal/models"
	"github.com/durianpy/events-backend/pkg/response"
)

// CreateRequest is the body for POST /evaluations.
type CreateRequest struct {
	EventID        string                        `json:"eventId" binding:"required"`
	RegistrationID string                        `json:"registrationId" binding:"required"`
	EvaluationList []models.EvaluationSubmission `json:"evaluationList" binding:"required"`
}

// Handler exposes the evaluation workflow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates an evaluations handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /evaluations.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if len(req.EvaluationList) == 0 {
		response.BadRequest(c, "evaluationList must not be empty")
		return
	}

	entries, aerr := h.service.Create(c.Request.Context(), req.EventID, req.RegistrationID, req.EvaluationList)
	if aerr != nil {
		response.AppError(c, aerr)
		return
	}
	response.Created(c, gin.H{"evaluations": entries})
}

// Update handles PATCH /evaluations/:eventId/:registrationId/:question.
func (h *Handler) Update(c *gin.Context) {
	var patch models.EvaluationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	entry, message, aerr := h.service.Update(
		c.Request.Context(),
		c.Param("eventId"),
		c.Param("registrationId"),
		c.Param("question"),
		&patch,
	)
	if aerr != nil {
		response.AppError(c, aerr)
		return
	}
	if message != "" {
		response.OKWithMessage(c, gin.H{"evaluation": entry}, message)
		return
	}
	response.OK(c, gin.H{"evaluation": entry})
}

// Get handles GET /evaluations/:eventId/:registrationId/:question.
func (h *Handler) Get(c *gin.Context) {
	entry, aerr := h.service.Get(
		c.Request.Context(),
		c.Param("eventId"),
		c.Param("registrationId"),
		c.Param("question"),
	)
	if aerr != nil {
		response.AppError(c, aerr)
		return
	}
	response.OK(c, gin.H{"evaluation": entry})
}

// List handles GET /evaluations with optional eventId, registrationId and
// question query parameters.
func (h *Handler) List(c *gin.Context) {
	entries, aerr := h.service.List(
		c.Request.Context(),
		c.Query("eventId"),
		c.Query("registrationId"),
		c.Query("question"),
	)
	if aerr != nil {
		response.AppError(c, aerr)
		return
	}
	response.OK(c, gin.H{"evaluations": entries})
}

// ListByQuestion handles GET /evaluations/questions with eventId and question
// query parameters.
func (h *Handler) ListByQuestion(c *gin.Context) {
	eventID := c.Query("eventId")
	question := c.Query("question")
	if eventID == "" || question == "" {
		response.BadRequest(c, "eventId and question are required")
		return
	}

	entries, aerr := h.service.ListByQuestion(c.Request.Context(), eventID, question)
	if aerr != nil {
		response.AppError(c, aerr)
		return
	}
	response.OK(c, gin.H{"evaluations": entries})
}
