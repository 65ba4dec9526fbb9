package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
)

// Word lists for generated room names.
var (
	roomNamePrefixes = []string{"Privada", "Secreta", "Anônima", "Oculta", "Segura", "Criptografada", "Fantasma", "Silenciosa"}
	roomNameSuffixes = []string{"Sala", "Espaço", "Lugar", "Canal", "Central", "Zona", "Canto", "Lounge"}
)

// NicknameResponse represents the generated nickname response.
type NicknameResponse struct {
	Sucesso  bool   `json:"sucesso"`
	Nickname string `json:"nickname"`
}

// RoomNameResponse represents the generated room name response.
type RoomNameResponse struct {
	Sucesso  bool   `json:"sucesso"`
	RoomName string `json:"roomName"`
}

// GenerateNickname returns a random anonymous label of the form BURN<4digits>#.
func (h *Handler) GenerateNickname(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, NicknameResponse{
		Sucesso:  true,
		Nickname: fmt.Sprintf("BURN%d#", fourDigits()),
	})
}

// GenerateRoomName returns a random "<prefix> <suffix> <4digits>" room name.
func (h *Handler) GenerateRoomName(w http.ResponseWriter, r *http.Request) {
	prefix := roomNamePrefixes[rand.Intn(len(roomNamePrefixes))]
	suffix := roomNameSuffixes[rand.Intn(len(roomNameSuffixes))]

	h.JSON(w, http.StatusOK, RoomNameResponse{
		Sucesso:  true,
		RoomName: fmt.Sprintf("%s %s %d", prefix, suffix, fourDigits()),
	})
}

// fourDigits returns a random number in [1000, 9999].
func fourDigits() int {
	return rand.Intn(9000) + 1000
}
