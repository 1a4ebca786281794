package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, broker *Broker, admin *AdminAuth, publicURL string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Jeopardy API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, store))

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", handleCreateGame(store))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/exists", handleGameExists(store))
			r.Get("/", handleGetGame(store))
			r.Put("/", handlePatchGame(store, broker))
			r.Delete("/", handleDeleteGame(logger, store, broker))
			r.Put("/board", handleUploadBoard(store))
			r.Get("/qr", handleJoinQR(publicURL))

			// Real-time state delivery.
			r.Get("/events", handleEvents(store, broker))
			r.Get("/ws", handleWS(logger, store, broker))

			// Player actions.
			r.Post("/buzz", handleBuzz(store, broker))
			r.Post("/teams/join", handleJoinTeam(store, broker))
			r.Post("/teams/change", handleChangeTeam(store, broker))

			// Instructor transitions.
			r.Post("/questions/select", handleSelectQuestion(store, broker))
			r.Post("/questions/score", handleScoreCurrent(store, broker))
			r.Post("/questions/close", handleCloseQuestion(store, broker))
			r.Post("/buzzes/open", handleOpenBuzzes(store, broker))
			r.Post("/buzzes/close", handleCloseBuzzes(store, broker))

			// Daily Double wager round.
			r.Post("/daily-double/team", handleDailyDoubleTeam(store, broker))
			r.Post("/daily-double/reveal", handleDailyDoubleReveal(store, broker))
			r.Post("/daily-double/wager", handleDailyDoubleWager(store, broker))
			r.Post("/daily-double/wager/confirm", handleDailyDoubleWagerConfirm(store, broker))
			r.Post("/daily-double/wager/unconfirm", handleDailyDoubleWagerUnconfirm(store, broker))

			// Final Jeopardy.
			r.Post("/final/start", handleFinalStart(store, broker))
			r.Post("/final/show", handleFinalShow(store, broker))
			r.Post("/final/wager", handleFinalWager(store, broker))
			r.Post("/final/answer", handleFinalAnswer(store, broker))
			r.Post("/final/answer/confirm", handleFinalAnswerConfirm(store, broker))
			r.Post("/final/answer/unconfirm", handleFinalAnswerUnconfirm(store, broker))
			r.Post("/final/reveal", handleFinalReveal(store, broker))
			r.Post("/final/score", handleFinalScore(store, broker))
			r.Post("/final/end", handleFinalEnd(store, broker))
		})
	})

	r.Post("/api/admin/verify", handleAdminVerify(admin))
	r.Delete("/api/admin/games", handleAdminPurge(logger, store, broker, admin))
}
