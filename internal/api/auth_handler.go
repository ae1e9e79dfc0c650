package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/api/dto"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type AuthHandler struct {
	*BaseHandler
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login Authenticate against the tenant's users
// @Summary Login
// @Description Verifies the credentials against the users of the tenant resolved from the Host header
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Envelope{detail=dto.LoginResponse}
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(h.RequestCtx(c), req.Username, req.Password)
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Code: http.StatusOK, Detail: dto.FromLogin(result)})
}

// Refresh Exchange a refresh token for an access token
// @Summary Refresh access token
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.Envelope{detail=dto.RefreshResponse}
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router  /token/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.service.Refresh(h.RequestCtx(c), req.Refresh)
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Code: http.StatusOK, Detail: dto.RefreshResponse{AccessToken: access}})
}

// ListUsers List the tenant's users
// @Summary List users
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router  /user-list [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(h.RequestCtx(c))
	if err != nil {
		writeError(c, err, detailNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.FromUsers(users))
}
