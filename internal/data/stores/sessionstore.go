// Package stores implements sqlite-backed persistence for explorations.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/data/db"
)

// ErrNotFound is returned when a session id or name does not exist.
var ErrNotFound = errors.New("stores: session not found")

// Session is one saved exploration.
type Session struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Statement string             `json:"statement"`
	Snapshot  discovery.Snapshot `json:"-"`
	Solved    bool               `json:"solved"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// SessionStore persists discovery graph snapshots.
type SessionStore struct {
	db *db.DB
}

// NewSessionStore creates a session store on an open database.
func NewSessionStore(database *db.DB) *SessionStore {
	return &SessionStore{db: database}
}

// Create inserts a new session from a snapshot and returns it with a fresh
// id and timestamps.
func (s *SessionStore) Create(ctx context.Context, name string, snap discovery.Snapshot) (Session, error) {
	state, err := json.Marshal(snap)
	if err != nil {
		return Session{}, fmt.Errorf("create session %q marshal: %w", name, err)
	}

	now := time.Now()
	sess := Session{
		ID:        uuid.NewString(),
		Name:      name,
		Statement: snap.Statement,
		Snapshot:  snap,
		Solved:    snap.Solved,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Conn().ExecContext(ctx,
		`INSERT INTO sessions (id, name, statement, state, solved, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Name, sess.Statement, state, boolToInt(sess.Solved),
		now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("create session %q: %w", name, err)
	}
	return sess, nil
}

// Save replaces the stored snapshot of an existing session.
func (s *SessionStore) Save(ctx context.Context, id string, snap discovery.Snapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save session %q marshal: %w", id, err)
	}

	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE sessions SET statement = ?, state = ?, solved = ?, updated_at = ? WHERE id = ?`,
		snap.Statement, state, boolToInt(snap.Solved), time.Now().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("save session %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save session %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("save session %q: %w", id, ErrNotFound)
	}
	return nil
}

// Get loads a session by id, including its snapshot.
func (s *SessionStore) Get(ctx context.Context, id string) (Session, error) {
	return s.get(ctx, `SELECT id, name, statement, state, solved, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
}

// GetByName loads a session by its unique name.
func (s *SessionStore) GetByName(ctx context.Context, name string) (Session, error) {
	return s.get(ctx, `SELECT id, name, statement, state, solved, created_at, updated_at
		FROM sessions WHERE name = ?`, name)
}

func (s *SessionStore) get(ctx context.Context, query, arg string) (Session, error) {
	row := s.db.Conn().QueryRowContext(ctx, query, arg)

	var (
		sess               Session
		state              []byte
		solved             int
		createdAt, updated int64
	)
	err := row.Scan(&sess.ID, &sess.Name, &sess.Statement, &state, &solved, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("get session %q: %w", arg, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %q: %w", arg, err)
	}

	if err := json.Unmarshal(state, &sess.Snapshot); err != nil {
		return Session{}, fmt.Errorf("get session %q unmarshal: %w", arg, err)
	}
	sess.Solved = solved != 0
	sess.CreatedAt = time.Unix(0, createdAt)
	sess.UpdatedAt = time.Unix(0, updated)
	return sess, nil
}

// List returns session metadata (no snapshots) newest-first.
func (s *SessionStore) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, name, statement, solved, created_at, updated_at
		 FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Session
	for rows.Next() {
		var (
			sess               Session
			solved             int
			createdAt, updated int64
		)
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.Statement, &solved, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("list sessions scan: %w", err)
		}
		sess.Solved = solved != 0
		sess.CreatedAt = time.Unix(0, createdAt)
		sess.UpdatedAt = time.Unix(0, updated)
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn().ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %q: %w", id, ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
