package ws

import (
	"sync"
	"time"
)

// Marker is the live-position payload pushed to subscribed customers.
type Marker struct {
	ProfessionalID uint    `json:"professional_id"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Status         string  `json:"status"`
	UpdatedAt      int64   `json:"updated_at"`
}

// LocationHub pushes professional position markers to their subscribers and
// remembers the last marker per professional for initial sync. Delivery is
// best effort only; the HTTP API remains the source of truth.
type LocationHub struct {
	*Hub
	mu      sync.RWMutex
	markers map[uint]Marker
}

func NewLocationHub() *LocationHub {
	return &LocationHub{
		Hub:     NewHub(),
		markers: make(map[uint]Marker),
	}
}

// UpdateLocation records the marker and pushes it to each subscriber.
func (h *LocationHub) UpdateLocation(professionalID uint, lat, lng float64, status string, subscriberIDs []uint) {
	marker := Marker{
		ProfessionalID: professionalID,
		Lat:            lat,
		Lng:            lng,
		Status:         status,
		UpdatedAt:      time.Now().Unix(),
	}
	h.mu.Lock()
	h.markers[professionalID] = marker
	h.mu.Unlock()
	payload := map[string]interface{}{"type": "marker", "marker": marker}
	for _, id := range subscriberIDs {
		h.BroadcastToUser(id, payload)
	}
}

// MarkersFor returns the stored markers for the given professionals, for the
// initial sync after a subscriber connects.
func (h *LocationHub) MarkersFor(professionalIDs []uint) []Marker {
	h.mu.RLock()
	defer h.mu.RUnlock()
	list := make([]Marker, 0, len(professionalIDs))
	for _, id := range professionalIDs {
		if m, ok := h.markers[id]; ok {
			list = append(list, m)
		}
	}
	return list
}
