package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/quizhall/jeopardy/internal/game"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrConflict = errors.New("game id already exists")
)

// Store is the durable keyed storage for game documents. The document for a
// given id is the only shared mutable resource in the system, so every
// contended mutation goes through Update: the read, the transition, and the
// write form one atomic unit against other mutators of the same id. Updates
// to different ids never block each other.
type Store interface {
	Ping(ctx context.Context) error
	Exists(ctx context.Context, id string) (bool, error)

	// Create fails with ErrConflict when the id is taken.
	Create(ctx context.Context, doc *game.Document) error

	// Get fails with ErrNotFound.
	Get(ctx context.Context, id string) (*game.Document, error)

	// Update atomically applies fn to the stored document and persists the
	// result, returning the committed state. When fn returns an error,
	// nothing is written and the error is returned unwrapped, so transition
	// sentinels survive for the handler to inspect.
	Update(ctx context.Context, id string, fn func(*game.Document) error) (*game.Document, error)

	// Patch shallow-merges raw JSON fields into the stored document,
	// last-writer-wins per field, and returns the committed state.
	Patch(ctx context.Context, id string, fields map[string]json.RawMessage) (*game.Document, error)

	// Delete reports ErrNotFound when there was nothing to delete.
	Delete(ctx context.Context, id string) error

	// DeleteAll purges every document and returns the deleted ids so the
	// caller can notify their subscribers.
	DeleteAll(ctx context.Context) ([]string, error)
}
