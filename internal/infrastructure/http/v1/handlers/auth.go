package handlers

import (
	"github.com/gin-gonic/gin"

	"prodcat/internal/core/apperror"
	"prodcat/internal/domain/auth"
	"prodcat/internal/infrastructure/http/v1/dto"
)

// AuthHandler issues access tokens.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Token handles GET /auth/jwt
func (h *AuthHandler) Token(c *gin.Context) {
	token, expiresAt, err := h.service.IssueToken()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	h.OK(c, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
