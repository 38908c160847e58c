package handler

import (
	"net/http"

	"fixly/internal/middleware"
	"fixly/internal/service"
	"fixly/pkg/response"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subSvc *service.SubscriptionService
}

func NewSubscriptionHandler(subSvc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subSvc: subSvc}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	subscriberID := middleware.GetUserID(c)
	professionalID, err := parseID(c.Param("professionalId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "invalid professional id")
		return
	}
	if err := h.subSvc.Subscribe(c.Request.Context(), subscriberID, professionalID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "subscribed")
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	subscriberID := middleware.GetUserID(c)
	professionalID, err := parseID(c.Param("professionalId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "invalid professional id")
		return
	}
	if err := h.subSvc.Unsubscribe(c.Request.Context(), subscriberID, professionalID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "unsubscribed")
}
