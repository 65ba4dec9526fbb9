package models

import "time"

// Room is a named ephemeral message channel. Messages are owned by the room
// and are destroyed with it.
type Room struct {
	ID             string
	Name           string
	UserCount      int
	Preview        string
	LifetimeBudget int    // minutes; 0 means the room never expires
	CreatorID      string // empty for seeded official rooms
	Pinned         bool
	CreatedAt      time.Time
	ExpiresAt      time.Time // zero when LifetimeBudget == 0
	Messages       []Message
}
