package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	repo repositories.AppointmentRepository
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(repo repositories.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{repo: repo}
}

func (h *AppointmentHandler) respondList(c *gin.Context, appointments []*entities.Appointment, err error) {
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.repo.List(c.Request.Context())
	h.respondList(c, appointments, err)
}

// ListByPatient handles GET /appointments/patient/:id
func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	appointments, err := h.repo.ListByPatient(c.Request.Context(), c.Param("id"))
	h.respondList(c, appointments, err)
}

// ListUpcoming handles GET /appointments/upcoming
func (h *AppointmentHandler) ListUpcoming(c *gin.Context) {
	appointments, err := h.repo.ListUpcoming(c.Request.Context())
	h.respondList(c, appointments, err)
}

// ListToday handles GET /appointments/today
func (h *AppointmentHandler) ListToday(c *gin.Context) {
	appointments, err := h.repo.ListToday(c.Request.Context())
	h.respondList(c, appointments, err)
}

// Get handles GET /appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req entities.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// Update handles PUT /appointments/:id. The path id wins over the body.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var req entities.UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ID = c.Param("id")

	appointment, err := h.repo.Update(c.Request.Context(), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// Delete handles DELETE /appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
