package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams committed game states over SSE. Subscribers get the
// current snapshot immediately, then every committed mutation, and finally a
// terminal gameDeleted event. A dropped connection just ends the stream; the
// session itself is untouched.
func handleEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := gameID(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		// Subscribe before reading the snapshot: a mutation committing in
		// between then shows up on the channel. Delivering it twice is fine,
		// every event carries the full document.
		ch := broker.Subscribe(id)
		defer broker.Unsubscribe(id, ch)

		doc, err := store.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		snapshot, _ := json.Marshal(Event{Type: eventGameUpdate, State: doc})
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", snapshot)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
