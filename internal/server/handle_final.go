package server

import (
	"net/http"
	"strings"

	"github.com/quizhall/jeopardy/internal/game"
)

// FinalWagerRequest places a team's single Final Jeopardy wager.
type FinalWagerRequest struct {
	Team   string `json:"team"`
	Amount int    `json:"amount"`
}

// FinalAnswerRequest is a player's Final Jeopardy answer submission or
// confirmation.
type FinalAnswerRequest struct {
	Team   string `json:"team"`
	Player string `json:"player"`
	Answer string `json:"answer,omitempty"`
}

// FinalTeamRequest targets a single team for reveal or scoring.
type FinalTeamRequest struct {
	Team    string `json:"team"`
	Correct bool   `json:"correct,omitempty"`
}

func handleFinalStart(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).StartFinalJeopardy)
	}
}

func handleFinalShow(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).ShowFinalQuestion)
	}
}

func handleFinalWager(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FinalWagerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Team) == "" {
			writeError(w, http.StatusBadRequest, "team is required")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.SubmitFinalWager(strings.TrimSpace(req.Team), req.Amount)
		})
	}
}

func handleFinalAnswer(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, req, ok := readFinalAnswer(w, r)
		if !ok {
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.SubmitFinalAnswer(key, strings.TrimSpace(req.Answer))
		})
	}
}

func handleFinalAnswerConfirm(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, _, ok := readFinalAnswer(w, r)
		if !ok {
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.ConfirmFinalAnswer(key)
		})
	}
}

func handleFinalAnswerUnconfirm(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, _, ok := readFinalAnswer(w, r)
		if !ok {
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.UnconfirmFinalAnswer(key)
		})
	}
}

func handleFinalReveal(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FinalTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.RevealFinalAnswer(req.Team)
		})
	}
}

func handleFinalScore(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FinalTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.ScoreFinal(req.Team, req.Correct)
		})
	}
}

func handleFinalEnd(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).EndFinalJeopardy)
	}
}

func readFinalAnswer(w http.ResponseWriter, r *http.Request) (game.PlayerKey, FinalAnswerRequest, bool) {
	var req FinalAnswerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return game.PlayerKey{}, req, false
	}
	team := strings.TrimSpace(req.Team)
	player := strings.TrimSpace(req.Player)
	if team == "" || player == "" {
		writeError(w, http.StatusBadRequest, "team and player are required")
		return game.PlayerKey{}, req, false
	}
	return game.PlayerKey{Team: team, Name: player}, req, true
}
