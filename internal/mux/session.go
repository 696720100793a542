package mux

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionPlayerID is the player ID for the single seat of a session
const sessionPlayerID int64 = 1

type sessionResponse struct {
	UUID     string `json:"uuid"`
	PlayerID int64  `json:"playerId"`
}

// postSession mints a new session identifier. The session's dealer spins up
// lazily on the first websocket connection.
func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, sessionResponse{
			UUID:     uuid.New().String(),
			PlayerID: sessionPlayerID,
		})
	}
}
