package server

import (
	"net/http"
	"strings"

	"github.com/quizhall/jeopardy/internal/game"
)

// WagerRequest is a player's Daily Double wager submission or confirmation.
type WagerRequest struct {
	Team   string `json:"team"`
	Player string `json:"player"`
	Amount int    `json:"amount,omitempty"`
}

func (req *WagerRequest) key() (game.PlayerKey, bool) {
	team := strings.TrimSpace(req.Team)
	player := strings.TrimSpace(req.Player)
	if team == "" || player == "" {
		return game.PlayerKey{}, false
	}
	return game.PlayerKey{Team: team, Name: player}, true
}

func handleDailyDoubleWager(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		key, ok := req.key()
		if !ok {
			writeError(w, http.StatusBadRequest, "team and player are required")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.SubmitDailyDoubleWager(key, req.Amount)
		})
	}
}

func handleDailyDoubleWagerConfirm(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		key, ok := req.key()
		if !ok {
			writeError(w, http.StatusBadRequest, "team and player are required")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.ConfirmDailyDoubleWager(key)
		})
	}
}

func handleDailyDoubleWagerUnconfirm(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		key, ok := req.key()
		if !ok {
			writeError(w, http.StatusBadRequest, "team and player are required")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.UnconfirmDailyDoubleWager(key)
		})
	}
}
