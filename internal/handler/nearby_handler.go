package handler

import (
	"net/http"
	"strconv"

	"fixly/internal/service"
	"fixly/pkg/response"

	"github.com/gin-gonic/gin"
)

type NearbyHandler struct {
	proximitySvc *service.ProximityService
}

func NewNearbyHandler(proximitySvc *service.ProximityService) *NearbyHandler {
	return &NearbyHandler{proximitySvc: proximitySvc}
}

// Find answers GET /location/nearby?latitude=&longitude=&radius=&status=.
func (h *NearbyHandler) Find(c *gin.Context) {
	lat, ok1 := parseFloat(c.Query("latitude"))
	lng, ok2 := parseFloat(c.Query("longitude"))
	if !ok1 || !ok2 {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "latitude and longitude are required")
		return
	}
	radius := 5.0
	if raw := c.Query("radius"); raw != "" {
		var ok bool
		radius, ok = parseFloat(raw)
		if !ok {
			response.Fail(c, http.StatusBadRequest, "InvalidInput", "radius must be a number")
			return
		}
	}
	matches, err := h.proximitySvc.FindNearby(c.Request.Context(), lat, lng, radius, c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, matches)
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
