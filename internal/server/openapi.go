package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/quizhall/jeopardy/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "Jeopardy API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the live classroom Jeopardy game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	postGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGame.SetSummary("Create game")
	postGame.SetDescription("Create a new game session from a parsed game definition.")
	postGame.AddReqStructure(CreateGameRequest{})
	postGame.AddRespStructure(CreateGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postGame)

	// PUT /api/games/{gameID}/board
	putBoard, _ := r.NewOperationContext(http.MethodPut, "/api/games/{gameID}/board")
	putBoard.SetSummary("Create game from board file")
	putBoard.SetDescription("Upload a raw game-definition text file; the server parses and creates the game.")
	putBoard.AddRespStructure(CreateGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	putBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putBoard)

	// GET /api/games/{gameID}/exists
	getExists, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/exists")
	getExists.SetSummary("Check game id")
	getExists.AddRespStructure(ExistsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getExists)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game state")
	getGame.AddRespStructure(game.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// PUT /api/games/{gameID}
	putGame, _ := r.NewOperationContext(http.MethodPut, "/api/games/{gameID}")
	putGame.SetSummary("Patch game state")
	putGame.SetDescription("Shallow-merge top-level fields into the stored document, last writer wins per field.")
	putGame.AddRespStructure(game.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	putGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putGame)

	// DELETE /api/games/{gameID}
	delGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	delGame.SetSummary("Delete game")
	delGame.SetDescription("Ends the session and notifies every subscriber. Idempotent.")
	delGame.AddRespStructure(map[string]bool{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(delGame)

	// GET /api/games/{gameID}/qr
	getQR, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/qr")
	getQR.SetSummary("Join QR code")
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("image/png"))
	_ = r.AddOperation(getQR)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE state stream")
	getEvents.SetDescription("Server-Sent Events stream: current snapshot first, then every committed state, then a terminal gameDeleted event.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket state stream")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols), openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// POST /api/games/{gameID}/buzz
	postBuzz, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/buzz")
	postBuzz.SetSummary("Buzz in")
	postBuzz.SetDescription("Attempt to claim the open buzz window. At most one attempt per window is accepted; losers get accepted=false and a reason.")
	postBuzz.AddReqStructure(BuzzRequest{})
	postBuzz.AddRespStructure(BuzzResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postBuzz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postBuzz)

	// POST /api/games/{gameID}/teams/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/teams/join")
	postJoin.SetSummary("Join a team")
	postJoin.AddReqStructure(JoinTeamRequest{})
	postJoin.AddRespStructure(game.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postJoin)

	// POST /api/games/{gameID}/teams/change
	postChange, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/teams/change")
	postChange.SetSummary("Change team")
	postChange.AddReqStructure(ChangeTeamRequest{})
	postChange.AddRespStructure(game.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postChange)

	// Instructor transitions all share the response shape: the committed
	// document on success, 422 when the transition is illegal.
	transitions := []struct {
		path    string
		summary string
		req     any
	}{
		{"/api/games/{gameID}/questions/select", "Select question", SelectQuestionRequest{}},
		{"/api/games/{gameID}/questions/score", "Score current question", ScoreRequest{}},
		{"/api/games/{gameID}/questions/close", "Close question without scoring", nil},
		{"/api/games/{gameID}/buzzes/open", "Open buzzes", nil},
		{"/api/games/{gameID}/buzzes/close", "Close buzzes", nil},
		{"/api/games/{gameID}/daily-double/team", "Select daily double team", FinalTeamRequest{}},
		{"/api/games/{gameID}/daily-double/reveal", "Reveal daily double clue", nil},
		{"/api/games/{gameID}/daily-double/wager", "Submit daily double wager", WagerRequest{}},
		{"/api/games/{gameID}/daily-double/wager/confirm", "Confirm daily double wager", WagerRequest{}},
		{"/api/games/{gameID}/daily-double/wager/unconfirm", "Withdraw daily double wager confirmation", WagerRequest{}},
		{"/api/games/{gameID}/final/start", "Start final jeopardy", nil},
		{"/api/games/{gameID}/final/show", "Show final question", nil},
		{"/api/games/{gameID}/final/wager", "Submit final wager", FinalWagerRequest{}},
		{"/api/games/{gameID}/final/answer", "Submit final answer", FinalAnswerRequest{}},
		{"/api/games/{gameID}/final/answer/confirm", "Confirm final answer", FinalAnswerRequest{}},
		{"/api/games/{gameID}/final/answer/unconfirm", "Withdraw final answer confirmation", FinalAnswerRequest{}},
		{"/api/games/{gameID}/final/reveal", "Reveal a team's final answer", FinalTeamRequest{}},
		{"/api/games/{gameID}/final/score", "Score a team's final answer", FinalTeamRequest{}},
		{"/api/games/{gameID}/final/end", "End final jeopardy", nil},
	}
	for _, tr := range transitions {
		op, _ := r.NewOperationContext(http.MethodPost, tr.path)
		op.SetSummary(tr.summary)
		if tr.req != nil {
			op.AddReqStructure(tr.req)
		}
		op.AddRespStructure(game.Document{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
		_ = r.AddOperation(op)
	}

	// POST /api/admin/verify
	postVerify, _ := r.NewOperationContext(http.MethodPost, "/api/admin/verify")
	postVerify.SetSummary("Verify admin secret")
	postVerify.AddReqStructure(AdminSecretRequest{})
	postVerify.AddRespStructure(AdminVerifyResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postVerify)

	// DELETE /api/admin/games
	delAll, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/games")
	delAll.SetSummary("Purge all games")
	delAll.AddReqStructure(AdminSecretRequest{})
	delAll.AddRespStructure(AdminPurgeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	delAll.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(delAll)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}
