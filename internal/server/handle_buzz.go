package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/quizhall/jeopardy/internal/game"
)

// BuzzRequest is one player's attempt to claim the open buzz window.
type BuzzRequest struct {
	PlayerName string `json:"playerName"`
	PlayerTeam string `json:"playerTeam"`
}

// BuzzResponse tells the player whether their buzz won. Losing a race is a
// normal outcome, not an error: losers get accepted=false plus the reason and
// learn the winner from the broadcast that follows.
type BuzzResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// handleBuzz is the one contended write path. The check of the window and
// the write of the winner run inside Store.Update, so no matter how many
// attempts land in the same window, exactly one passes.
func handleBuzz(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuzzRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerName = strings.TrimSpace(req.PlayerName)
		req.PlayerTeam = strings.TrimSpace(req.PlayerTeam)
		if req.PlayerName == "" || req.PlayerTeam == "" {
			writeError(w, http.StatusBadRequest, "playerName and playerTeam are required")
			return
		}

		doc, err := store.Update(r.Context(), gameID(r), func(d *game.Document) error {
			return d.Buzz(req.PlayerName, req.PlayerTeam)
		})
		switch {
		case err == nil:
			broker.PublishUpdate(doc)
			writeJSON(w, http.StatusOK, BuzzResponse{Accepted: true})
		case errors.Is(err, game.ErrBuzzesClosed),
			errors.Is(err, game.ErrAlreadyBuzzed),
			errors.Is(err, game.ErrTeamIncorrect):
			writeJSON(w, http.StatusOK, BuzzResponse{Reason: err.Error()})
		default:
			writeDomainError(w, err)
		}
	}
}
