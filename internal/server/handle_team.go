package server

import (
	"net/http"
	"strings"

	"github.com/quizhall/jeopardy/internal/game"
)

// JoinTeamRequest registers a player on a team, creating the team on first
// mention.
type JoinTeamRequest struct {
	Team string `json:"team"`
}

// ChangeTeamRequest moves a player between teams mid-game.
type ChangeTeamRequest struct {
	Player string `json:"player"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func handleJoinTeam(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.JoinTeam(strings.TrimSpace(req.Team))
		})
	}
}

func handleChangeTeam(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangeTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Player) == "" {
			writeError(w, http.StatusBadRequest, "player is required")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.ChangeTeam(
				strings.TrimSpace(req.Player),
				strings.TrimSpace(req.From),
				strings.TrimSpace(req.To),
			)
		})
	}
}
