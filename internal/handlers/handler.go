package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ELpastelAnyCtt/BurnBox/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store    store.RoomStore
	presence *store.PresenceCounter
	started  time.Time
}

// NewHandler creates a new Handler over the given store and presence counter.
func NewHandler(st store.RoomStore, presence *store.PresenceCounter) *Handler {
	return &Handler{store: st, presence: presence, started: time.Now()}
}

// failure is the error side of the response envelope.
type failure struct {
	Sucesso bool   `json:"sucesso"`
	Erro    string `json:"erro"`
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Fail sends a failure envelope with the given status code.
func (h *Handler) Fail(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, failure{Erro: message})
}

// StoreError maps a store error onto the HTTP status and failure envelope.
func (h *Handler) StoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		h.Fail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrRoomNotFound):
		h.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrRoomPinned), errors.Is(err, store.ErrNotCreator):
		h.Fail(w, http.StatusForbidden, err.Error())
	default:
		h.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
