package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizhall/jeopardy/internal/game"
)

// snapshotGate stalls the snapshot read until the test releases it, so a
// mutation can commit in the window between subscribing and reading.
type snapshotGate struct {
	Store
	doc     *game.Document
	reading chan struct{}
	release chan struct{}
}

func (s *snapshotGate) Get(ctx context.Context, id string) (*game.Document, error) {
	close(s.reading)
	<-s.release
	return s.doc, nil
}

func TestEventsKeepCommitDuringSnapshotRead(t *testing.T) {
	broker := NewBroker()
	gate := &snapshotGate{
		doc:     game.NewDocument("SSE001", game.Setup{}),
		reading: make(chan struct{}),
		release: make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Get("/api/games/{gameID}/events", handleEvents(gate, broker))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// While the snapshot read is in flight, a mutation commits and is
	// broadcast. The subscriber must still see it.
	go func() {
		<-gate.reading
		committed := game.NewDocument("SSE001", game.Setup{})
		committed.Teams["Alpha"] = 400
		broker.PublishUpdate(committed)
		close(gate.release)
	}()

	res, err := http.Get(srv.URL + "/api/games/SSE001/events")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	defer res.Body.Close()

	watchdog := time.AfterFunc(5*time.Second, func() { res.Body.Close() })
	defer watchdog.Stop()

	var frames []string
	scanner := bufio.NewScanner(res.Body)
	for scanner.Scan() && len(frames) < 2 {
		if line := scanner.Text(); strings.HasPrefix(line, "data: ") {
			frames = append(frames, strings.TrimPrefix(line, "data: "))
		}
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want snapshot plus the committed state", len(frames))
	}
	if !strings.Contains(frames[1], `"Alpha":400`) {
		t.Errorf("second frame missing the state committed during the snapshot read: %s", frames[1])
	}
}
