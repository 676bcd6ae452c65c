package domain

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// User is the persisted profile of a Telegram user. TelegramID is the
// platform-assigned natural key; it is set once at creation and never changed.
type User struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"tg_id"`
	FirstName  string    `db:"first_name"`
	LastName   *string   `db:"last_name"`
	Username   *string   `db:"username"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// FullName joins first and last name the way Telegram renders them.
func (u User) FullName() string {
	if u.LastName == nil || *u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + *u.LastName
}

// UserTable is the relational table backing User.
const UserTable = "users"

// UserColumns lists every column of the users table, in select order.
var UserColumns = []string{
	"id",
	"tg_id",
	"first_name",
	"last_name",
	"username",
	"is_active",
	"created_at",
	"updated_at",
}

// ScanUser materializes a User from a row by column name.
func ScanUser(row pgx.CollectableRow) (User, error) {
	return pgx.RowToStructByName[User](row)
}

// UserCreate is the creation payload. Optional fields insert as NULL when nil.
type UserCreate struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Username   *string
}

// CreateColumns returns the insert columns and their values. Every field of
// the payload participates; timestamps and the surrogate key are assigned by
// the store.
func (p UserCreate) CreateColumns() ([]string, []any) {
	return []string{"tg_id", "first_name", "last_name", "username"},
		[]any{p.TelegramID, p.FirstName, p.LastName, p.Username}
}

// UserUpdate is the partial-update payload: only provided fields change.
type UserUpdate struct {
	TelegramID Optional[int64]
	FirstName  Optional[string]
	LastName   Optional[*string]
	Username   Optional[*string]
	IsActive   Optional[bool]
}

// Assignments returns the columns and values explicitly provided.
func (p UserUpdate) Assignments() ([]string, []any) {
	cols := make([]string, 0, 5)
	vals := make([]any, 0, 5)
	if v, ok := p.TelegramID.Get(); ok {
		cols = append(cols, "tg_id")
		vals = append(vals, v)
	}
	if v, ok := p.FirstName.Get(); ok {
		cols = append(cols, "first_name")
		vals = append(vals, v)
	}
	if v, ok := p.LastName.Get(); ok {
		cols = append(cols, "last_name")
		vals = append(vals, v)
	}
	if v, ok := p.Username.Get(); ok {
		cols = append(cols, "username")
		vals = append(vals, v)
	}
	if v, ok := p.IsActive.Get(); ok {
		cols = append(cols, "is_active")
		vals = append(vals, v)
	}
	return cols, vals
}
