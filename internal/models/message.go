package models

import "time"

// Message is a single chat message. Messages are immutable after creation.
type Message struct {
	ID          string // ULID
	SenderLabel string
	Text        string
	SentAt      time.Time // server-assigned at receipt
	IsSystem    bool
}
