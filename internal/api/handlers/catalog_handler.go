package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// CatalogHandler serves the practice catalog: dentists, treatments and stats
type CatalogHandler struct {
	dentists   repositories.DentistRepository
	treatments repositories.TreatmentRepository
	stats      repositories.StatsRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(dentists repositories.DentistRepository, treatments repositories.TreatmentRepository, stats repositories.StatsRepository) *CatalogHandler {
	return &CatalogHandler{
		dentists:   dentists,
		treatments: treatments,
		stats:      stats,
	}
}

// ListDentists handles GET /dentists
func (h *CatalogHandler) ListDentists(c *gin.Context) {
	dentists, err := h.dentists.List(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dentists)
}

// GetDentist handles GET /dentists/:id
func (h *CatalogHandler) GetDentist(c *gin.Context) {
	dentist, err := h.dentists.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dentist)
}

// CreateDentist handles POST /dentists
func (h *CatalogHandler) CreateDentist(c *gin.Context) {
	var req entities.CreateDentistRequest
	if !bindJSON(c, &req) {
		return
	}
	dentist, err := h.dentists.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dentist)
}

// ListTreatments handles GET /treatments
func (h *CatalogHandler) ListTreatments(c *gin.Context) {
	treatments, err := h.treatments.List(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatments)
}

// GetTreatment handles GET /treatments/:id
func (h *CatalogHandler) GetTreatment(c *gin.Context) {
	treatment, err := h.treatments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatment)
}

// CreateTreatment handles POST /treatments
func (h *CatalogHandler) CreateTreatment(c *gin.Context) {
	var req entities.CreateTreatmentRequest
	if !bindJSON(c, &req) {
		return
	}
	treatment, err := h.treatments.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, treatment)
}

// Stats handles GET /stats
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
