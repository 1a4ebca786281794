package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizhall/jeopardy/internal/game"
)

// gameID reads and normalizes the {gameID} route parameter. Game ids are
// uppercase everywhere server-side; callers may send any case.
func gameID(r *http.Request) string {
	return game.NormalizeID(chi.URLParam(r, "gameID"))
}

// mutate runs one transition through the store's atomic update, broadcasts
// the committed document, and writes it back to the caller. Transition
// rejections reach only the originating caller; nothing is persisted or
// published for them.
func mutate(w http.ResponseWriter, r *http.Request, store Store, broker *Broker, fn func(*game.Document) error) {
	doc, err := store.Update(r.Context(), gameID(r), fn)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	broker.PublishUpdate(doc)
	writeJSON(w, http.StatusOK, doc)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "game id already exists")
	case errors.Is(err, game.ErrInvalidAction):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
