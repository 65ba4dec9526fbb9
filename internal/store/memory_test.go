package store

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fixedStore returns a store whose clock is controlled by the returned
// pointer. Advance the clock by reassigning through it.
func fixedStore(t *testing.T, defaultLifetime int) (*MemoryStore, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(defaultLifetime)
	s.now = func() time.Time { return now }
	return s, &now
}

func intPtr(n int) *int { return &n }

func TestSeedCatalog(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	rooms := s.ListRooms()
	if len(rooms) != 3 {
		t.Fatalf("expected 3 seed rooms, got %d", len(rooms))
	}

	general := rooms[0]
	if general.ID != "sala1" || !general.Pinned || general.LifetimeBudget != 0 {
		t.Fatalf("unexpected pinned room: %+v", general)
	}
	for _, room := range rooms[1:] {
		if room.Pinned {
			t.Fatalf("room %s should not be pinned", room.ID)
		}
		if room.LifetimeBudget != 60 {
			t.Fatalf("room %s: expected budget 60, got %d", room.ID, room.LifetimeBudget)
		}
		if room.CreatorID != "" {
			t.Fatalf("seed room %s should have no creator", room.ID)
		}
	}
}

func TestCreateRoomDefaults(t *testing.T) {
	s, _ := fixedStore(t, 360)

	room, err := s.CreateRoom("Test", nil, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if room.ID == "" {
		t.Fatal("expected a room id")
	}
	if room.UserCount != 1 {
		t.Fatalf("expected userCount 1, got %d", room.UserCount)
	}
	if room.Pinned {
		t.Fatal("created rooms must not be pinned")
	}
	if room.LifetimeBudget != 360 {
		t.Fatalf("expected default budget 360, got %d", room.LifetimeBudget)
	}
	if room.Preview != newRoomPreview {
		t.Fatalf("expected placeholder preview, got %q", room.Preview)
	}
	if room.CreatorID != "u1" {
		t.Fatalf("expected creator u1, got %q", room.CreatorID)
	}

	messages, err := s.GetMessages(room.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Fatalf("new room should have no messages, got %d", len(messages))
	}
}

func TestCreateRoomEmptyName(t *testing.T) {
	s, _ := fixedStore(t, 360)

	for _, name := range []string{"", "   "} {
		_, err := s.CreateRoom(name, nil, "u1")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("name %q: expected ValidationError, got %v", name, err)
		}
		if verr.Field != "name" {
			t.Fatalf("expected field name, got %q", verr.Field)
		}
	}
	if got := len(s.ListRooms()); got != 0 {
		t.Fatalf("failed creation must not mutate the registry, got %d rooms", got)
	}
}

func TestCreateRoomNegativeBudget(t *testing.T) {
	s, _ := fixedStore(t, 360)

	_, err := s.CreateRoom("Test", intPtr(-1), "u1")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRoomZeroBudgetNeverExpires(t *testing.T) {
	s, now := fixedStore(t, 360)

	room, err := s.CreateRoom("Forever", intPtr(0), "u1")
	if err != nil {
		t.Fatal(err)
	}

	expired := s.ExpireDue(now.Add(1000 * time.Hour))
	if len(expired) != 0 {
		t.Fatalf("zero-budget room must never expire, got %d expired", len(expired))
	}
	if _, err := s.GetMessages(room.ID); err != nil {
		t.Fatalf("room should still exist: %v", err)
	}
}

func TestDeleteRoomLifecycle(t *testing.T) {
	s, _ := fixedStore(t, 360)

	room, err := s.CreateRoom("Test", intPtr(5), "u1")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRoom(room.ID, "u2"); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("expected ErrNotCreator, got %v", err)
	}
	if err := s.DeleteRoom(room.ID, "u1"); err != nil {
		t.Fatalf("creator deletion should succeed: %v", err)
	}
	if _, err := s.GetMessages(room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound after deletion, got %v", err)
	}
	if err := s.DeleteRoom(room.ID, "u1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound on second delete, got %v", err)
	}
}

func TestDeleteRoomPinnedPrecedence(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	// The pinned check must win regardless of requester, including the empty
	// requester that would otherwise hit the creator check.
	for _, requester := range []string{"", "anyone", "sala1"} {
		if err := s.DeleteRoom("sala1", requester); !errors.Is(err, ErrRoomPinned) {
			t.Fatalf("requester %q: expected ErrRoomPinned, got %v", requester, err)
		}
	}
}

func TestDeleteRoomNoCreatorSeed(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	for _, requester := range []string{"", "u1"} {
		if err := s.DeleteRoom("sala2", requester); !errors.Is(err, ErrNotCreator) {
			t.Fatalf("requester %q: expected ErrNotCreator, got %v", requester, err)
		}
	}
}

func TestDeleteRoomUnknown(t *testing.T) {
	s, _ := fixedStore(t, 360)

	if err := s.DeleteRoom("nope", "u1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestPostMessageFields(t *testing.T) {
	s, now := fixedStore(t, 360)
	s.Seed()

	msg, err := s.PostMessage("sala1", "Alice", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID == "" {
		t.Fatal("expected a message id")
	}
	if msg.SenderLabel != "Alice" || msg.Text != "hello" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.IsSystem {
		t.Fatal("user messages must not be system messages")
	}
	if !msg.SentAt.Equal(now.UTC()) {
		t.Fatalf("expected server-assigned sentAt %v, got %v", now.UTC(), msg.SentAt)
	}

	messages, err := s.GetMessages("sala1")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].ID != msg.ID {
		t.Fatalf("expected exactly the posted message, got %+v", messages)
	}
}

func TestPostMessageValidation(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	cases := []struct {
		sender, text, field string
	}{
		{"", "hi", "senderLabel"},
		{"  ", "hi", "senderLabel"},
		{"Alice", "", "text"},
		{"Alice", "  ", "text"},
	}
	for _, tc := range cases {
		_, err := s.PostMessage("sala1", tc.sender, tc.text)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("sender %q text %q: expected ValidationError, got %v", tc.sender, tc.text, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
		}
	}

	if _, err := s.PostMessage("nope", "Alice", "hi"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestPreviewTruncation(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	short := strings.Repeat("a", 50)
	if _, err := s.PostMessage("sala1", "Alice", short); err != nil {
		t.Fatal(err)
	}
	if got := s.ListRooms()[0].Preview; got != short {
		t.Fatalf("50-char text must not be truncated, got %q", got)
	}

	long := strings.Repeat("b", 51)
	if _, err := s.PostMessage("sala1", "Alice", long); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("b", 50) + "..."
	if got := s.ListRooms()[0].Preview; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len([]rune(want)) != 53 {
		t.Fatalf("truncated preview must be 53 characters, got %d", len([]rune(want)))
	}
}

func TestPreviewTruncationMultibyte(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	long := strings.Repeat("ç", 60)
	if _, err := s.PostMessage("sala1", "Alice", long); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("ç", 50) + "..."
	if got := s.ListRooms()[0].Preview; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMessageOrdering(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	texts := []string{"one", "two", "three", "four", "five"}
	for _, text := range texts {
		if _, err := s.PostMessage("sala1", "Alice", text); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := s.GetMessages("sala1")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(messages))
	}
	seen := make(map[string]bool)
	for i, msg := range messages {
		if msg.Text != texts[i] {
			t.Fatalf("position %d: expected %q, got %q", i, texts[i], msg.Text)
		}
		if seen[msg.ID] {
			t.Fatalf("duplicate message id %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestGetMessagesIsolation(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	if _, err := s.PostMessage("sala1", "Alice", "original"); err != nil {
		t.Fatal(err)
	}

	messages, _ := s.GetMessages("sala1")
	messages[0].Text = "tampered"

	fresh, _ := s.GetMessages("sala1")
	if fresh[0].Text != "original" {
		t.Fatal("callers must not be able to mutate the store through results")
	}
}

func TestListRoomsInsertionOrder(t *testing.T) {
	s, _ := fixedStore(t, 360)
	s.Seed()

	first, _ := s.CreateRoom("First", nil, "u1")
	second, _ := s.CreateRoom("Second", nil, "u1")

	rooms := s.ListRooms()
	ids := []string{"sala1", "sala2", "sala3", first.ID, second.ID}
	if len(rooms) != len(ids) {
		t.Fatalf("expected %d rooms, got %d", len(ids), len(rooms))
	}
	for i, room := range rooms {
		if room.ID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], room.ID)
		}
	}
	for _, room := range rooms {
		if room.Messages != nil {
			t.Fatal("listing must not expose messages")
		}
	}
}

func TestRoomIDsUnique(t *testing.T) {
	s, _ := fixedStore(t, 360)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		room, err := s.CreateRoom("Room", nil, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if seen[room.ID] {
			t.Fatalf("duplicate room id %s", room.ID)
		}
		seen[room.ID] = true
	}
}

func TestExpireDueDeadlines(t *testing.T) {
	s, now := fixedStore(t, 360)
	start := *now

	room, err := s.CreateRoom("Short", intPtr(5), "u1")
	if err != nil {
		t.Fatal(err)
	}

	if expired := s.ExpireDue(start.Add(4 * time.Minute)); len(expired) != 0 {
		t.Fatalf("room expired early: %+v", expired)
	}

	expired := s.ExpireDue(start.Add(5 * time.Minute))
	if len(expired) != 1 || expired[0].ID != room.ID {
		t.Fatalf("expected the room to expire at its deadline, got %+v", expired)
	}
	if _, err := s.GetMessages(room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expired room must be indistinguishable from a deleted one, got %v", err)
	}
}

func TestPostMessageResetsDeadline(t *testing.T) {
	s, now := fixedStore(t, 360)
	start := *now

	room, err := s.CreateRoom("Short", intPtr(5), "u1")
	if err != nil {
		t.Fatal(err)
	}

	// Activity at t+4m pushes the deadline to t+9m.
	*now = start.Add(4 * time.Minute)
	if _, err := s.PostMessage(room.ID, "Alice", "still here"); err != nil {
		t.Fatal(err)
	}

	if expired := s.ExpireDue(start.Add(8 * time.Minute)); len(expired) != 0 {
		t.Fatalf("deadline was not extended by activity: %+v", expired)
	}
	if expired := s.ExpireDue(start.Add(9 * time.Minute)); len(expired) != 1 {
		t.Fatalf("expected expiry at the extended deadline, got %+v", expired)
	}
}

func TestExpireDueSkipsPinnedAndZeroBudget(t *testing.T) {
	s, now := fixedStore(t, 360)
	s.Seed()

	expired := s.ExpireDue(now.Add(1000 * time.Hour))
	if len(expired) != 2 {
		t.Fatalf("expected the two budgeted seed rooms to expire, got %d", len(expired))
	}

	rooms := s.ListRooms()
	if len(rooms) != 1 || rooms[0].ID != "sala1" {
		t.Fatalf("pinned room must survive every sweep, got %+v", rooms)
	}
}

func TestStats(t *testing.T) {
	s, now := fixedStore(t, 360)
	s.Seed()

	for i := 0; i < 3; i++ {
		if _, err := s.PostMessage("sala1", "Alice", "hi"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.PostMessage("sala2", "Bob", "oi"); err != nil {
		t.Fatal(err)
	}

	stats := s.Stats()
	if stats.TotalRooms != 3 {
		t.Fatalf("expected 3 rooms, got %d", stats.TotalRooms)
	}
	if stats.TotalMessages != 4 {
		t.Fatalf("expected 4 messages, got %d", stats.TotalMessages)
	}
	if !stats.LastActivity.Equal(now.UTC()) {
		t.Fatalf("expected last activity %v, got %v", now.UTC(), stats.LastActivity)
	}
	if len(stats.TopRooms) != 3 || stats.TopRooms[0].ID != "sala1" || stats.TopRooms[0].MessageCount != 3 {
		t.Fatalf("unexpected top rooms: %+v", stats.TopRooms)
	}
}
