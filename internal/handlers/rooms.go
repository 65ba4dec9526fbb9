package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ELpastelAnyCtt/BurnBox/internal/metrics"
	"github.com/ELpastelAnyCtt/BurnBox/internal/models"
)

// RoomSummary is the listing view of a room, without its messages.
type RoomSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UserCount      int    `json:"userCount"`
	Preview        string `json:"preview"`
	LifetimeBudget int    `json:"lifetimeBudget"`
	CreatorID      string `json:"creatorId,omitempty"`
	Pinned         bool   `json:"pinned"`
}

// ListRoomsResponse represents the room listing response.
type ListRoomsResponse struct {
	Sucesso     bool          `json:"sucesso"`
	Rooms       []RoomSummary `json:"rooms"`
	OnlineCount int           `json:"onlineCount"`
}

// CreateRoomRequest represents the room creation request.
type CreateRoomRequest struct {
	Name           string `json:"name"`
	LifetimeBudget *int   `json:"lifetimeBudget,omitempty"`
	CreatorID      string `json:"creatorId,omitempty"`
}

// CreateRoomResponse represents the room creation response.
type CreateRoomResponse struct {
	Sucesso bool        `json:"sucesso"`
	Room    RoomSummary `json:"room"`
}

// DeleteRoomRequest carries the requester's creator id in the body.
type DeleteRoomRequest struct {
	CreatorID string `json:"creatorId"`
}

// DeleteRoomResponse represents the empty success envelope.
type DeleteRoomResponse struct {
	Sucesso bool `json:"sucesso"`
}

// ListRooms handles listing all rooms with the online counter.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.store.ListRooms()

	summaries := make([]RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = summarize(room)
	}

	h.JSON(w, http.StatusOK, ListRoomsResponse{
		Sucesso:     true,
		Rooms:       summaries,
		OnlineCount: h.presence.Count(),
	})
}

// CreateRoom handles room creation.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	room, err := h.store.CreateRoom(req.Name, req.LifetimeBudget, req.CreatorID)
	if err != nil {
		h.StoreError(w, err)
		return
	}

	metrics.RoomsCreated.Inc()
	metrics.ActiveRooms.Inc()

	h.JSON(w, http.StatusOK, CreateRoomResponse{
		Sucesso: true,
		Room:    summarize(room),
	})
}

// DeleteRoom handles creator-only room deletion. An absent or unreadable
// body counts as an anonymous requester, which never matches a creator.
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DeleteRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.store.DeleteRoom(id, req.CreatorID); err != nil {
		h.StoreError(w, err)
		return
	}

	metrics.RoomsDeleted.WithLabelValues("creator").Inc()
	metrics.ActiveRooms.Dec()

	h.JSON(w, http.StatusOK, DeleteRoomResponse{Sucesso: true})
}

// summarize converts a store room to its API summary.
func summarize(room models.Room) RoomSummary {
	return RoomSummary{
		ID:             room.ID,
		Name:           room.Name,
		UserCount:      room.UserCount,
		Preview:        room.Preview,
		LifetimeBudget: room.LifetimeBudget,
		CreatorID:      room.CreatorID,
		Pinned:         room.Pinned,
	}
}
