package handlers

import (
	"net/http"
	"time"
)

// RoomStats represents stats for a single room.
type RoomStats struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MessageCount int    `json:"message_count"`
}

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	TotalRooms    int         `json:"total_rooms"`
	TotalMessages int         `json:"total_messages"`
	OnlineUsers   int         `json:"online_users"`
	LastActivity  string      `json:"last_activity"`
	TopRooms      []RoomStats `json:"top_rooms"`
}

// Stats returns platform statistics for the landing page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()

	lastActivity := "no activity yet"
	if !stats.LastActivity.IsZero() {
		lastActivity = formatTimeAgo(stats.LastActivity)
	}

	topRooms := make([]RoomStats, 0, len(stats.TopRooms))
	for _, room := range stats.TopRooms {
		topRooms = append(topRooms, RoomStats{
			ID:           room.ID,
			Name:         room.Name,
			MessageCount: room.MessageCount,
		})
	}

	h.JSON(w, http.StatusOK, StatsResponse{
		TotalRooms:    stats.TotalRooms,
		TotalMessages: stats.TotalMessages,
		OnlineUsers:   h.presence.Count(),
		LastActivity:  lastActivity,
		TopRooms:      topRooms,
	})
}

// formatTimeAgo formats a time as a human-readable "X ago" string.
func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return formatInt(mins) + " minutes ago"
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return formatInt(hours) + " hours ago"
	default:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return formatInt(days) + " days ago"
	}
}

// formatInt converts an int to string without importing strconv.
func formatInt(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
