package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/api/middleware"
)

// AuthHandler issues development access tokens
type AuthHandler struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthHandler creates a new auth handler. A nil clock uses time.Now.
func NewAuthHandler(secret string, ttl time.Duration, now func() time.Time) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{secret: secret, ttl: ttl, now: now}
}

type tokenRequest struct {
	Subject string `json:"subject"`
}

type tokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	if h.secret == "" {
		respondWithError(c, http.StatusNotFound, "NOT_FOUND", "token issuing is disabled")
		return
	}

	var req tokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
			Message: "One or more validation errors occurred.",
			Code:    "VALIDATION_ERROR",
			Errors:  map[string][]string{"subject": {"Subject is required"}},
		})
		return
	}

	token, expiresAt, err := middleware.IssueToken(h.secret, req.Subject, h.ttl, h.now())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}
