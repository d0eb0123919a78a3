package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// PatientHandler handles patient requests
type PatientHandler struct {
	repo repositories.PatientRepository
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(repo repositories.PatientRepository) *PatientHandler {
	return &PatientHandler{repo: repo}
}

// List handles GET /patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// Search handles GET /patients/search?q=
func (h *PatientHandler) Search(c *gin.Context) {
	patients, err := h.repo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// Get handles GET /patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// Create handles POST /patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req entities.NewPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.repo.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

// Update handles PUT /patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	var req entities.UpdatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	patient, err := h.repo.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
