package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bot-kit/registration-service/pkg/util"
)

// Session is the unit of work repository operations run in. Mutating
// operations commit it themselves; rollback and release belong to the
// middleware that opened it.
type Session interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Commit(ctx context.Context) error
}

// CreatePayload describes the fields inserted for a new entity. Every column
// it returns participates in the insert.
type CreatePayload interface {
	CreateColumns() ([]string, []any)
}

// UpdatePayload describes a partial update: only explicitly provided fields
// are returned.
type UpdatePayload interface {
	Assignments() ([]string, []any)
}

// Mapping binds an entity type to its table. A repository cannot be
// constructed from an incomplete mapping.
type Mapping[E any] struct {
	Table   string
	Columns []string
	Scan    pgx.RowToFunc[E]

	// UpdatedAtColumn, when set, is refreshed to now() on every update.
	UpdatedAtColumn string
}

type settings struct {
	readback bool
}

// Option configures a repository at construction time.
type Option func(*settings)

// WithoutReadback switches Create to the fire-and-forget variant: the insert
// is executed without RETURNING and Create yields no entity, leaving
// population to a follow-up read.
func WithoutReadback() Option {
	return func(s *settings) {
		s.readback = false
	}
}

// Repository implements entity-agnostic CRUD over a relational table,
// parameterized by the entity and its create/update payload shapes.
type Repository[E any, C CreatePayload, U UpdatePayload] struct {
	mapping    Mapping[E]
	selectList string
	fields     map[string]struct{}
	readback   bool
}

// New validates the mapping and builds a repository. An incomplete mapping is
// an integration mistake and fails here, before any request is served.
func New[E any, C CreatePayload, U UpdatePayload](m Mapping[E], opts ...Option) (*Repository[E, C, U], error) {
	var zero E
	name := fmt.Sprintf("%T", zero)

	if m.Table == "" {
		return nil, util.NewConfiguration(name, "no table bound")
	}
	if len(m.Columns) == 0 {
		return nil, util.NewConfiguration(name, "no columns bound")
	}
	if m.Scan == nil {
		return nil, util.NewConfiguration(name, "no row scanner bound")
	}

	cfg := settings{readback: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := make(map[string]struct{}, len(m.Columns))
	for _, col := range m.Columns {
		fields[col] = struct{}{}
	}

	return &Repository[E, C, U]{
		mapping:    m,
		selectList: strings.Join(m.Columns, ", "),
		fields:     fields,
		readback:   cfg.readback,
	}, nil
}

// validateField rejects field names that are not columns of the managed
// entity before any SQL is built.
func (r *Repository[E, C, U]) validateField(field string) error {
	if _, ok := r.fields[field]; !ok {
		return util.NewInvalidField(r.mapping.Table, field)
	}
	return nil
}

func (r *Repository[E, C, U]) one(rows pgx.Rows, err error) (*E, error) {
	if err != nil {
		return nil, err
	}
	entity, err := pgx.CollectOneRow(rows, r.mapping.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create inserts a new row built from all fields of the payload and commits.
// In the default read-back variant the stored entity, including generated id
// and timestamps, is returned. Constraint violations propagate unchanged.
func (r *Repository[E, C, U]) Create(ctx context.Context, s Session, payload C) (*E, error) {
	cols, vals := payload.CreateColumns()

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.mapping.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	if !r.readback {
		if _, err := s.Exec(ctx, query, vals...); err != nil {
			return nil, err
		}
		if err := s.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	query += " RETURNING " + r.selectList
	entity, err := r.one(s.Query(ctx, query, vals...))
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

// GetByID fetches the entity by primary key; absence is (nil, nil).
func (r *Repository[E, C, U]) GetByID(ctx context.Context, s Session, id int64) (*E, error) {
	return r.GetByField(ctx, s, "id", id)
}

// GetByField fetches the first entity whose field equals value.
func (r *Repository[E, C, U]) GetByField(ctx context.Context, s Session, field string, value any) (*E, error) {
	if err := r.validateField(field); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", r.selectList, r.mapping.Table, field)
	return r.one(s.Query(ctx, query, value))
}

// GetAll returns every row in primary-key order. No pagination; acceptable at
// this system's scale.
func (r *Repository[E, C, U]) GetAll(ctx context.Context, s Session) ([]E, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", r.selectList, r.mapping.Table, r.mapping.Columns[0])
	rows, err := s.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, r.mapping.Scan)
}

// UpdateByID applies the payload's provided fields to the row with the given
// primary key and commits. Absence is (nil, nil).
func (r *Repository[E, C, U]) UpdateByID(ctx context.Context, s Session, id int64, payload U) (*E, error) {
	return r.UpdateByField(ctx, s, "id", id, payload)
}

// UpdateByField applies a partial update to the row matched by field = value.
// Unprovided fields keep their prior values; the updated-at column, when
// mapped, is refreshed even for an otherwise empty payload.
func (r *Repository[E, C, U]) UpdateByField(ctx context.Context, s Session, field string, value any, payload U) (*E, error) {
	if err := r.validateField(field); err != nil {
		return nil, err
	}

	cols, vals := payload.Assignments()
	if len(cols) == 0 && r.mapping.UpdatedAtColumn == "" {
		return r.GetByField(ctx, s, field, value)
	}

	assignments := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	if r.mapping.UpdatedAtColumn != "" {
		assignments = append(assignments, r.mapping.UpdatedAtColumn+" = now()")
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		r.mapping.Table, strings.Join(assignments, ", "), field, len(cols)+1, r.selectList,
	)

	entity, err := r.one(s.Query(ctx, query, append(vals, value)...))
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

// DeleteByID removes the row with the given primary key and commits,
// returning its prior state. Absence is (nil, nil).
func (r *Repository[E, C, U]) DeleteByID(ctx context.Context, s Session, id int64) (*E, error) {
	return r.DeleteByField(ctx, s, "id", id)
}

// DeleteByField removes the row matched by field = value and commits.
func (r *Repository[E, C, U]) DeleteByField(ctx context.Context, s Session, field string, value any) (*E, error) {
	if err := r.validateField(field); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING %s", r.mapping.Table, field, r.selectList)
	entity, err := r.one(s.Query(ctx, query, value))
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}
