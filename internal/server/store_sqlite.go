package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/quizhall/jeopardy/internal/game"
)

// SQLiteStore keeps each game document as one JSONB row. Atomic
// read-modify-write is guaranteed by a per-game mutex held across the load,
// the transition, and the transactional write; this process is the single
// authoritative state holder, so the in-process lock linearizes all mutators
// of a given game while leaving other games untouched.
type SQLiteStore struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM games WHERE game_id = ?)
	`, id).Scan(&exists)
	return exists, err
}

func (s *SQLiteStore) Create(ctx context.Context, doc *game.Document) error {
	state, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (game_id, state) VALUES (?, jsonb(?))
	`, doc.GameID, string(state))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*game.Document, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `
		SELECT json(state) FROM games WHERE game_id = ?
	`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc game.Document
	if err := json.Unmarshal([]byte(state), &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, fn func(*game.Document) error) (*game.Document, error) {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.put(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *SQLiteStore) Patch(ctx context.Context, id string, fields map[string]json.RawMessage) (*game.Document, error) {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	var state string
	err := s.db.QueryRowContext(ctx, `
		SELECT json(state) FROM games WHERE game_id = ?
	`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Merge at the JSON level so a partial update can never drop fields it
	// does not name.
	var merged map[string]json.RawMessage
	if err := json.Unmarshal([]byte(state), &merged); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding document %s: %w", id, err)
	}
	var doc game.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("patch does not produce a valid document: %w", err)
	}

	if err := s.put(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `DELETE FROM games RETURNING game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SQLiteStore) put(ctx context.Context, doc *game.Document) error {
	state, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE games SET state = jsonb(?) WHERE game_id = ?
	`, string(state), doc.GameID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// lock returns the mutex for one game, allocating it on first use.
func (s *SQLiteStore) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
