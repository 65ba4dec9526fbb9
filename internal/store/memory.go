package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/ELpastelAnyCtt/BurnBox/internal/models"
)

const (
	// previewLimit is the number of source characters kept in a room preview
	// before truncation.
	previewLimit    = 50
	previewEllipsis = "..."

	// newRoomPreview is the placeholder shown until the first message lands.
	newRoomPreview = "Sala recém-criada"

	// SeedOnlineUsers is the online counter the catalog starts with.
	SeedOnlineUsers = 28

	topRoomsLimit = 5
)

// MemoryStore is the authoritative in-memory registry of rooms. A single
// mutex guards rooms, messages and expiration deadlines; the sweeper takes
// the same lock for its whole pass, so a message post either lands before a
// sweep evaluates the room's deadline or observes the room already gone.
type MemoryStore struct {
	mu              sync.Mutex
	rooms           map[string]*models.Room
	order           []string // room ids in insertion order
	defaultLifetime int      // minutes, applied when creation omits a budget
	now             func() time.Time
}

// NewMemoryStore creates an empty store. defaultLifetime is in minutes.
func NewMemoryStore(defaultLifetime int) *MemoryStore {
	return &MemoryStore{
		rooms:           make(map[string]*models.Room),
		defaultLifetime: defaultLifetime,
		now:             time.Now,
	}
}

// Seed inserts the official BurnBox catalog: one pinned permanent room and
// two public rooms with a 60 minute budget. Unpinned seed rooms have no
// creator, so no requester can ever delete them.
func (s *MemoryStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	seeds := []*models.Room{
		{
			ID:        "sala1",
			Name:      "Chat Geral BurnBox",
			UserCount: 15,
			Preview:   "Bem-vindo ao chat geral BurnBox!",
			Pinned:    true,
			CreatedAt: now,
		},
		{
			ID:             "sala2",
			Name:           "Discussões Livres",
			UserCount:      23,
			Preview:        "Converse sobre qualquer coisa aqui...",
			LifetimeBudget: 60,
			CreatedAt:      now,
		},
		{
			ID:             "sala3",
			Name:           "Confissões Anônimas",
			UserCount:      47,
			Preview:        "Compartilhe seus segredos anonimamente...",
			LifetimeBudget: 60,
			CreatedAt:      now,
		},
	}

	for _, room := range seeds {
		if room.LifetimeBudget > 0 {
			room.ExpiresAt = now.Add(time.Duration(room.LifetimeBudget) * time.Minute)
		}
		s.rooms[room.ID] = room
		s.order = append(s.order, room.ID)
	}
}

// ListRooms returns summaries of all rooms in insertion order.
func (s *MemoryStore) ListRooms() []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make([]models.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, summaryOf(s.rooms[id]))
	}
	return rooms
}

// CreateRoom inserts a new room and starts its auto-destruct deadline.
func (s *MemoryStore) CreateRoom(name string, lifetimeBudget *int, creatorID string) (models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, &ValidationError{Field: "name"}
	}

	budget := s.defaultLifetime
	if lifetimeBudget != nil {
		if *lifetimeBudget < 0 {
			return models.Room{}, &ValidationError{Field: "lifetimeBudget", Reason: "must not be negative"}
		}
		budget = *lifetimeBudget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	room := &models.Room{
		ID:             s.newRoomID(),
		Name:           name,
		UserCount:      1,
		Preview:        newRoomPreview,
		LifetimeBudget: budget,
		CreatorID:      creatorID,
		CreatedAt:      now,
	}
	if budget > 0 {
		room.ExpiresAt = now.Add(time.Duration(budget) * time.Minute)
	}

	s.rooms[room.ID] = room
	s.order = append(s.order, room.ID)
	return summaryOf(room), nil
}

// DeleteRoom removes a room. The pinned check takes precedence over the
// creator check.
func (s *MemoryStore) DeleteRoom(id, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return ErrRoomNotFound
	}
	if room.Pinned {
		return ErrRoomPinned
	}
	if room.CreatorID == "" || requesterID != room.CreatorID {
		return ErrNotCreator
	}

	s.remove(id)
	return nil
}

// GetMessages returns a copy of the room's messages in posting order.
func (s *MemoryStore) GetMessages(id string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	messages := make([]models.Message, len(room.Messages))
	copy(messages, room.Messages)
	return messages, nil
}

// PostMessage appends a message, refreshes the preview and extends the
// room's auto-destruct deadline. A message counts as activity.
func (s *MemoryStore) PostMessage(id, senderLabel, text string) (models.Message, error) {
	if strings.TrimSpace(senderLabel) == "" {
		return models.Message{}, &ValidationError{Field: "senderLabel"}
	}
	if strings.TrimSpace(text) == "" {
		return models.Message{}, &ValidationError{Field: "text"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return models.Message{}, ErrRoomNotFound
	}

	now := s.now()
	msg := models.Message{
		ID:          ulid.Make().String(),
		SenderLabel: senderLabel,
		Text:        text,
		SentAt:      now.UTC(),
	}

	room.Messages = append(room.Messages, msg)
	room.Preview = previewOf(text)
	if room.LifetimeBudget > 0 {
		room.ExpiresAt = now.Add(time.Duration(room.LifetimeBudget) * time.Minute)
	}

	return msg, nil
}

// ExpireDue removes every non-pinned room whose deadline is at or before
// now. The whole pass runs under the store lock.
func (s *MemoryStore) ExpireDue(now time.Time) []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []models.Room
	for _, id := range append([]string(nil), s.order...) {
		room := s.rooms[id]
		if room.Pinned || room.ExpiresAt.IsZero() {
			continue
		}
		if room.ExpiresAt.After(now) {
			continue
		}
		expired = append(expired, summaryOf(room))
		s.remove(id)
	}
	return expired
}

// Stats returns aggregate counters across all rooms.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{TotalRooms: len(s.order)}
	for _, id := range s.order {
		room := s.rooms[id]
		stats.TotalMessages += len(room.Messages)
		if n := len(room.Messages); n > 0 {
			if last := room.Messages[n-1].SentAt; last.After(stats.LastActivity) {
				stats.LastActivity = last
			}
		}
		stats.TopRooms = append(stats.TopRooms, RoomActivity{
			ID:           room.ID,
			Name:         room.Name,
			MessageCount: len(room.Messages),
		})
	}

	sort.SliceStable(stats.TopRooms, func(i, j int) bool {
		return stats.TopRooms[i].MessageCount > stats.TopRooms[j].MessageCount
	})
	if len(stats.TopRooms) > topRoomsLimit {
		stats.TopRooms = stats.TopRooms[:topRoomsLimit]
	}
	return stats
}

// newRoomID allocates a room id, regenerating on the off chance a random
// UUID collides with an existing room. Caller must hold the lock.
func (s *MemoryStore) newRoomID() string {
	for {
		id := uuid.NewString()
		if _, exists := s.rooms[id]; !exists {
			return id
		}
	}
}

// remove deletes a room and its messages. Caller must hold the lock.
func (s *MemoryStore) remove(id string) {
	delete(s.rooms, id)
	for i, roomID := range s.order {
		if roomID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// summaryOf copies the listing view of a room, leaving the messages behind.
func summaryOf(room *models.Room) models.Room {
	summary := *room
	summary.Messages = nil
	return summary
}

// previewOf derives the room preview from message text: up to 50 characters,
// truncated with "..." beyond that.
func previewOf(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + previewEllipsis
}
