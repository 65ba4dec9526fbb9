package store

import (
	"time"

	"github.com/ELpastelAnyCtt/BurnBox/internal/models"
)

// RoomStore defines the room and message lifecycle operations backing the
// HTTP handlers. MemoryStore implements this interface.
type RoomStore interface {
	// ListRooms returns summaries of all rooms (without messages) in
	// insertion order. Seeded official rooms sort first.
	ListRooms() []models.Room

	// CreateRoom inserts a new room. lifetimeBudget is in minutes; nil means
	// the configured default, 0 means the room never expires.
	CreateRoom(name string, lifetimeBudget *int, creatorID string) (models.Room, error)

	// DeleteRoom removes a room and its messages. Pinned rooms are never
	// deletable; otherwise the requester must be the room's creator.
	DeleteRoom(id, requesterID string) error

	// GetMessages returns a copy of the room's messages in the order they
	// were posted.
	GetMessages(id string) ([]models.Message, error)

	// PostMessage appends a message, updates the room preview and extends
	// the room's auto-destruct deadline.
	PostMessage(id, senderLabel, text string) (models.Message, error)

	// ExpireDue removes every non-pinned room whose auto-destruct deadline
	// is at or before now and returns summaries of the removed rooms.
	ExpireDue(now time.Time) []models.Room

	// Stats returns aggregate counters for the stats and health endpoints.
	Stats() Stats
}

// RoomActivity is a per-room entry in Stats.
type RoomActivity struct {
	ID           string
	Name         string
	MessageCount int
}

// Stats holds aggregate counters across all rooms.
type Stats struct {
	TotalRooms    int
	TotalMessages int
	LastActivity  time.Time // zero when no message has been posted yet
	TopRooms      []RoomActivity
}
