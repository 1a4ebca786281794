package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleWS is the WebSocket flavor of the subscription channel: the current
// snapshot on join, then every committed state, closed cleanly after the
// terminal gameDeleted event.
func handleWS(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := gameID(r)

		// Same ordering as the SSE handler: subscribe first so a mutation
		// committing between snapshot read and send is not lost.
		ch := broker.Subscribe(id)
		defer broker.Unsubscribe(id, ch)

		doc, err := store.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "game_id", id, "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Drain client frames; their only meaning is "still connected".
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.Read(ctx); err != nil {
					return
				}
			}
		}()

		snapshot, _ := json.Marshal(Event{Type: eventGameUpdate, State: doc})
		if err := writeWS(ctx, conn, snapshot); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case data := <-ch:
				if err := writeWS(ctx, conn, data); err != nil {
					logger.Debug("websocket write failed", "game_id", id, "error", err)
					return
				}
				var event Event
				if json.Unmarshal(data, &event) == nil && event.Type == eventGameDeleted {
					conn.Close(websocket.StatusNormalClosure, "game deleted")
					return
				}
			}
		}
	}
}

func writeWS(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
