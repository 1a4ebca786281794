package server

import (
	"encoding/json"
	"sync"

	"github.com/quizhall/jeopardy/internal/game"
)

// Event is the payload delivered to game subscribers. Every committed
// mutation produces a gameUpdate carrying the full document; gameDeleted is
// terminal for the game's channel.
type Event struct {
	Type  string         `json:"type"`
	State *game.Document `json:"state,omitempty"`
}

const (
	eventGameUpdate  = "gameUpdate"
	eventGameDeleted = "gameDeleted"
)

// Broker is an in-process pub/sub keyed by game id. Publishing happens after
// a mutation commits and never feeds back into it: a failed or slow delivery
// cannot roll back state.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel receiving JSON-encoded events for the game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// PublishUpdate fans a committed document out to the game's subscribers.
func (b *Broker) PublishUpdate(doc *game.Document) {
	b.publish(doc.GameID, Event{Type: eventGameUpdate, State: doc})
}

// PublishDeleted tells the game's subscribers the session is gone.
func (b *Broker) PublishDeleted(gameID string) {
	b.publish(gameID, Event{Type: eventGameDeleted})
}

func (b *Broker) publish(gameID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
