package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quizhall/jeopardy/internal/boardfile"
	"github.com/quizhall/jeopardy/internal/game"
)

// CreateGameRequest carries a parsed game definition plus the instructor's
// chosen id.
type CreateGameRequest struct {
	GameID        string           `json:"gameId"`
	Categories    []string         `json:"categories"`
	Questions     []game.Question  `json:"questions"`
	FinalJeopardy *game.FinalRound `json:"finalJeopardy"`
}

// CreateGameResponse acknowledges game creation.
type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

// ExistsResponse reports whether a game id is taken.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

func handleCreateGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		setup := game.Setup{
			Categories: req.Categories,
			Questions:  req.Questions,
			Final:      req.FinalJeopardy,
		}
		createGame(w, r, store, req.GameID, setup)
	}
}

// handleUploadBoard creates a game straight from the uploaded definition
// file, with the server doing the parsing the clients otherwise do.
func handleUploadBoard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		setup, err := boardfile.Parse(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		createGame(w, r, store, gameID(r), setup)
	}
}

func createGame(w http.ResponseWriter, r *http.Request, store Store, rawID string, setup game.Setup) {
	id := game.NormalizeID(rawID)
	if err := game.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := game.ValidateSetup(setup); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.Create(r.Context(), game.NewDocument(id, setup)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateGameResponse{GameID: id})
}

func handleGameExists(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exists, err := store.Exists(r.Context(), gameID(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
	}
}

func handleGetGame(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := store.Get(r.Context(), gameID(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// enginePatchDenied lists document fields owned by the game transitions:
// scores, arbitration, consensus and results only change through their
// dedicated routes, never through a raw merge.
var enginePatchDenied = map[string]bool{
	"teams":                        true,
	"questions":                    true,
	"currentQuestion":              true,
	"buzzedPlayer":                 true,
	"buzzesOpen":                   true,
	"incorrectTeams":               true,
	"dailyDoubleTeam":              true,
	"dailyDoubleWagers":            true,
	"finalJeopardyWagers":          true,
	"finalJeopardyAnswers":         true,
	"finalJeopardyTeamAnswers":     true,
	"finalJeopardyRevealedAnswers": true,
	"finalJeopardyScored":          true,
	"winners":                      true,
	"finalScores":                  true,
	"gameEnded":                    true,
}

// handlePatchGame shallow-merges top-level fields into the stored document,
// last writer wins per field. It exists for non-contended display state;
// fields with invariants are rejected and have a dedicated transition route.
func handlePatchGame(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]json.RawMessage
		if err := readJSON(r, &fields); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		for field := range fields {
			if enginePatchDenied[field] {
				writeError(w, http.StatusUnprocessableEntity,
					fmt.Sprintf("field %q can only be changed through its game action", field))
				return
			}
		}
		// The identity of a document is not patchable.
		delete(fields, "gameId")

		doc, err := store.Patch(r.Context(), gameID(r), fields)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		broker.PublishUpdate(doc)
		writeJSON(w, http.StatusOK, doc)
	}
}

func handleDeleteGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := gameID(r)
		err := store.Delete(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			// Instructor leave can race a crashed tab's cleanup; deleting an
			// already-deleted game is fine.
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}
		if err != nil {
			logger.Error("deleting game", "game_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		broker.PublishDeleted(id)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
