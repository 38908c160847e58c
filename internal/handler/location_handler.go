package handler

import (
	"log"
	"net/http"
	"strconv"

	"fixly/internal/middleware"
	"fixly/internal/models"
	"fixly/internal/repository"
	"fixly/internal/service"
	"fixly/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 20

type LocationHandler struct {
	locationSvc *service.LocationService
	subSvc      *service.SubscriptionService
	notifSvc    *service.NotificationService
	userRepo    *repository.UserRepository
	hub         interface {
		UpdateLocation(professionalID uint, lat, lng float64, status string, subscriberIDs []uint)
	}
}

func NewLocationHandler(
	locationSvc *service.LocationService,
	subSvc *service.SubscriptionService,
	notifSvc *service.NotificationService,
	userRepo *repository.UserRepository,
	hub interface {
		UpdateLocation(uint, float64, float64, string, []uint)
	},
) *LocationHandler {
	return &LocationHandler{
		locationSvc: locationSvc,
		subSvc:      subSvc,
		notifSvc:    notifSvc,
		userRepo:    userRepo,
		hub:         hub,
	}
}

// Update ingests a professional position report.
func (h *LocationHandler) Update(c *gin.Context) {
	professionalID := middleware.GetUserID(c)
	var req struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
		Accuracy  *float64 `json:"accuracy"`
		Speed     *float64 `json:"speed"`
		Heading   *float64 `json:"heading"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "latitude and longitude are required")
		return
	}
	loc, significant, err := h.locationSvc.SetCurrent(c.Request.Context(), professionalID, service.PositionUpdate{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Accuracy:  req.Accuracy,
		Speed:     req.Speed,
		Heading:   req.Heading,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.fanOut(c, loc, significant)
	response.OK(c, loc)
}

// fanOut refreshes the live map marker on every write so late subscribers get
// a current initial sync, and notifies subscribers when the move was
// significant. Best effort.
func (h *LocationHandler) fanOut(c *gin.Context, loc *models.CurrentLocation, significant bool) {
	ctx := c.Request.Context()
	if !significant {
		if h.hub != nil {
			h.hub.UpdateLocation(loc.ProfessionalID, loc.Latitude, loc.Longitude, loc.Status, nil)
		}
		return
	}
	subscriberIDs, err := h.subSvc.Subscribers(ctx, loc.ProfessionalID)
	if err != nil {
		log.Printf("[LOCATION] list subscribers for %d: %v", loc.ProfessionalID, err)
		subscriberIDs = nil
	}
	if h.hub != nil {
		h.hub.UpdateLocation(loc.ProfessionalID, loc.Latitude, loc.Longitude, loc.Status, subscriberIDs)
	}
	if len(subscriberIDs) == 0 {
		return
	}
	name := "A professional you follow"
	if u, err := h.userRepo.GetByID(loc.ProfessionalID); err == nil {
		name = u.Username
	}
	h.notifSvc.NotifyLocationUpdate(ctx, subscriberIDs, name, loc.ProfessionalID)
}

// SetStatus updates the availability status.
func (h *LocationHandler) SetStatus(c *gin.Context) {
	professionalID := middleware.GetUserID(c)
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "status is required")
		return
	}
	if err := h.locationSvc.SetStatus(c.Request.Context(), professionalID, req.Status); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "status updated")
}

// SetTracking toggles the tracking opt-in flag.
func (h *LocationHandler) SetTracking(c *gin.Context) {
	professionalID := middleware.GetUserID(c)
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "enabled is required")
		return
	}
	if err := h.locationSvc.SetTrackingEnabled(c.Request.Context(), professionalID, *req.Enabled); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "tracking preference updated")
}

// PatchSettings merge-patches the tracking settings.
func (h *LocationHandler) PatchSettings(c *gin.Context) {
	professionalID := middleware.GetUserID(c)
	var patch models.TrackingSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}
	settings, err := h.locationSvc.UpdateSettings(c.Request.Context(), professionalID, &patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, settings)
}

// GetSettings returns the effective tracking settings.
func (h *LocationHandler) GetSettings(c *gin.Context) {
	professionalID := middleware.GetUserID(c)
	settings, err := h.locationSvc.GetSettings(c.Request.Context(), professionalID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, settings)
}

// GetCurrent returns a professional's live position.
func (h *LocationHandler) GetCurrent(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "invalid professional id")
		return
	}
	loc, err := h.locationSvc.GetCurrent(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, loc)
}

// GetHistory returns a professional's recent trail, newest first.
func (h *LocationHandler) GetHistory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "InvalidInput", "invalid professional id")
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "InvalidInput", "limit must be an integer")
			return
		}
	}
	entries, err := h.locationSvc.GetHistory(c.Request.Context(), id, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, entries)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
