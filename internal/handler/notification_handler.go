package handler

import (
	"net/http"

	"fixly/internal/domain"
	"fixly/internal/middleware"
	"fixly/internal/repository"
	"fixly/internal/service"
	"fixly/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifSvc  *service.NotificationService
	notifRepo *repository.NotificationRepository
}

func NewNotificationHandler(notifSvc *service.NotificationService, notifRepo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc, notifRepo: notifRepo}
}

// RegisterDevice upserts a push token for the authenticated user.
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "token is required")
		return
	}
	if err := h.notifSvc.RegisterDevice(c.Request.Context(), userID, req.Token, req.Platform); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "device registered")
}

// DeregisterDevice removes a push token; unknown tokens succeed.
func (h *NotificationHandler) DeregisterDevice(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "token is required")
		return
	}
	if err := h.notifSvc.DeregisterDevice(c.Request.Context(), req.Token); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "device deregistered")
}

// Send pushes a message to all of a user's devices (admin surface).
func (h *NotificationHandler) Send(c *gin.Context) {
	var req struct {
		UserID uint              `json:"user_id" binding:"required"`
		Title  string            `json:"title" binding:"required"`
		Body   string            `json:"body" binding:"required"`
		Data   map[string]string `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	result, err := h.notifSvc.Send(c.Request.Context(), req.UserID, domain.NotifTypeGeneric, req.Title, req.Body, req.Data)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

// List returns the authenticated user's in-app notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.notifRepo.ListByUserID(userID, 50, 0)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal", "failed to list notifications")
		return
	}
	response.OK(c, list)
}

// MarkRead marks one of the user's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "invalid notification id")
		return
	}
	if err := h.notifRepo.MarkRead(id, userID); err != nil {
		response.Fail(c, http.StatusInternalServerError, "Internal", "failed to mark read")
		return
	}
	response.Message(c, "marked read")
}
