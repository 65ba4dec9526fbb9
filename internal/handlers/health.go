package handlers

import (
	"net/http"
	"time"
)

const version = "0.1.0"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"` // always "healthy"; the store is in-process
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Rooms     int    `json:"rooms"`
	Messages  int    `json:"messages"`
	Timestamp string `json:"timestamp"`
}

// Health handles the health check endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()

	h.JSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Rooms:     stats.TotalRooms,
		Messages:  stats.TotalMessages,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
