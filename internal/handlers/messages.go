package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ELpastelAnyCtt/BurnBox/internal/metrics"
	"github.com/ELpastelAnyCtt/BurnBox/internal/models"
)

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID          string `json:"id"`
	SenderLabel string `json:"senderLabel"`
	Text        string `json:"text"`
	SentAt      string `json:"sentAt"` // RFC3339
	IsSystem    bool   `json:"isSystem"`
}

// GetMessagesResponse represents the message listing response.
type GetMessagesResponse struct {
	Sucesso  bool              `json:"sucesso"`
	Messages []MessageResponse `json:"messages"`
}

// PostMessageRequest represents the post message request. Any client-supplied
// timestamp is ignored; sentAt is assigned server-side.
type PostMessageRequest struct {
	SenderLabel string `json:"senderLabel"`
	Text        string `json:"text"`
}

// PostMessageResponse represents the post message response.
type PostMessageResponse struct {
	Sucesso bool            `json:"sucesso"`
	Message MessageResponse `json:"message"`
}

// GetMessages handles fetching a room's messages in posting order.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	messages, err := h.store.GetMessages(id)
	if err != nil {
		h.StoreError(w, err)
		return
	}

	responses := make([]MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = messageResponse(msg)
	}

	h.JSON(w, http.StatusOK, GetMessagesResponse{
		Sucesso:  true,
		Messages: responses,
	})
}

// PostMessage handles posting a message to a room.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	msg, err := h.store.PostMessage(id, req.SenderLabel, req.Text)
	if err != nil {
		h.StoreError(w, err)
		return
	}

	metrics.MessagesPosted.Inc()

	h.JSON(w, http.StatusOK, PostMessageResponse{
		Sucesso: true,
		Message: messageResponse(msg),
	})
}

// messageResponse converts a store message to its API form.
func messageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:          msg.ID,
		SenderLabel: msg.SenderLabel,
		Text:        msg.Text,
		SentAt:      msg.SentAt.Format(time.RFC3339),
		IsSystem:    msg.IsSystem,
	}
}
