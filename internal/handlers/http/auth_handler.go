package http

import (
	stderrors "errors"
	"net/http"
	"strings"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/services"
	"streamvault/internal/infrastructure/monitoring"
	"streamvault/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	collector   *monitoring.PrometheusCollector
}

func NewAuthHandler(authService services.AuthService, collector *monitoring.PrometheusCollector) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		collector:   collector,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    domain.UserID `json:"id"`
	Email string        `json:"email"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLogin(false)
		switch {
		case stderrors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
		case stderrors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	h.recordLogin(true)
	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: loginUser{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}

func (h *AuthHandler) recordLogin(success bool) {
	if h.collector != nil {
		h.collector.RecordLogin(success)
	}
}
