package handler

import (
	"errors"
	"net/http"

	"fixly/internal/service"
	"fixly/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type authResponse struct {
	User         interface{} `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	u, access, refresh, err := h.authSvc.Register(req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrUsernameExists), errors.Is(err, service.ErrInvalidRole):
			response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "Internal", "registration failed")
		}
		return
	}
	response.OK(c, authResponse{User: u, AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	u, access, refresh, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
		return
	}
	response.OK(c, authResponse{User: u, AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	u, access, refresh, err := h.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", "invalid or expired refresh token")
		return
	}
	response.OK(c, authResponse{User: u, AccessToken: access, RefreshToken: refresh})
}
