package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSessionClosed is returned when a closed session is used again.
var ErrSessionClosed = errors.New("session is closed")

// Beginner starts transactions. *pgxpool.Pool satisfies it; tests substitute
// a mock pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Session is a request-scoped transactional unit of work. A transaction is
// begun lazily on first query and ended by Commit or Rollback; the next query
// after that begins a fresh one. Close rolls back any transaction still
// active and is terminal: a session is never reused across updates.
type Session struct {
	ctx    context.Context
	db     Beginner
	tx     pgx.Tx
	closed bool
}

// NewSession binds a unit of work to the given context and pool.
func NewSession(ctx context.Context, db Beginner) *Session {
	return &Session{ctx: ctx, db: db}
}

// Context returns the context the session was opened with.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) active(ctx context.Context) (pgx.Tx, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	s.tx = tx
	return tx, nil
}

// Query runs a query inside the session's transaction, beginning one if needed.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	tx, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return tx.Query(ctx, sql, args...)
}

// Exec runs a statement inside the session's transaction, beginning one if needed.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tx, err := s.active(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return tx.Exec(ctx, sql, args...)
}

// Commit ends the current transaction. A session with no transaction in
// flight commits trivially.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit(ctx)
	s.tx = nil
	return err
}

// Rollback aborts the current transaction, if any.
func (s *Session) Rollback(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback(ctx)
	s.tx = nil
	return err
}

// Close releases the session, rolling back any transaction still active.
// It is idempotent and must run on every exit path of an update.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
