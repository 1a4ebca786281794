package server

import (
	"net/http"

	"github.com/quizhall/jeopardy/internal/game"
)

// SelectQuestionRequest identifies a board question the way the clients do:
// by clue text and value.
type SelectQuestionRequest struct {
	Question string `json:"question"`
	Value    int    `json:"value"`
}

// ScoreRequest marks the buzzed (or Daily Double) team's answer.
type ScoreRequest struct {
	Correct bool `json:"correct"`
}

func handleSelectQuestion(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectQuestionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.SelectQuestion(req.Question, req.Value)
		})
	}
}

func handleScoreCurrent(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.ScoreCurrent(req.Correct)
		})
	}
}

func handleCloseQuestion(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).CloseQuestion)
	}
}

func handleOpenBuzzes(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).OpenBuzzes)
	}
}

func handleCloseBuzzes(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).CloseBuzzes)
	}
}

func handleDailyDoubleTeam(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Team string `json:"team"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		mutate(w, r, store, broker, func(d *game.Document) error {
			return d.SelectDailyDoubleTeam(req.Team)
		})
	}
}

func handleDailyDoubleReveal(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, store, broker, (*game.Document).RevealDailyDouble)
	}
}
