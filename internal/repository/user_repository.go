package repository

import (
	"context"

	"github.com/bot-kit/registration-service/internal/domain"
)

const telegramIDField = "tg_id"

// UserRepository defines persistence access for registered Telegram users.
type UserRepository interface {
	Create(ctx context.Context, s Session, payload domain.UserCreate) (*domain.User, error)
	GetByID(ctx context.Context, s Session, id int64) (*domain.User, error)
	GetByField(ctx context.Context, s Session, field string, value any) (*domain.User, error)
	GetAll(ctx context.Context, s Session) ([]domain.User, error)
	UpdateByID(ctx context.Context, s Session, id int64, payload domain.UserUpdate) (*domain.User, error)
	UpdateByField(ctx context.Context, s Session, field string, value any, payload domain.UserUpdate) (*domain.User, error)
	DeleteByID(ctx context.Context, s Session, id int64) (*domain.User, error)
	DeleteByField(ctx context.Context, s Session, field string, value any) (*domain.User, error)

	GetByTelegramID(ctx context.Context, s Session, tgID int64) (*domain.User, error)
	UpdateByTelegramID(ctx context.Context, s Session, tgID int64, payload domain.UserUpdate) (*domain.User, error)
	DeleteByTelegramID(ctx context.Context, s Session, tgID int64) (*domain.User, error)
}

type userRepository struct {
	*Repository[domain.User, domain.UserCreate, domain.UserUpdate]
}

// NewUserRepository binds the generic repository to the users table. The
// returned error is a configuration error and fatal at startup.
func NewUserRepository(opts ...Option) (UserRepository, error) {
	base, err := New[domain.User, domain.UserCreate, domain.UserUpdate](Mapping[domain.User]{
		Table:           domain.UserTable,
		Columns:         domain.UserColumns,
		Scan:            domain.ScanUser,
		UpdatedAtColumn: "updated_at",
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &userRepository{Repository: base}, nil
}

// GetByTelegramID looks a user up by the platform-assigned id.
func (r *userRepository) GetByTelegramID(ctx context.Context, s Session, tgID int64) (*domain.User, error) {
	return r.GetByField(ctx, s, telegramIDField, tgID)
}

// UpdateByTelegramID applies a partial update keyed by the platform-assigned id.
func (r *userRepository) UpdateByTelegramID(ctx context.Context, s Session, tgID int64, payload domain.UserUpdate) (*domain.User, error) {
	return r.UpdateByField(ctx, s, telegramIDField, tgID, payload)
}

// DeleteByTelegramID removes the user keyed by the platform-assigned id.
func (r *userRepository) DeleteByTelegramID(ctx context.Context, s Session, tgID int64) (*domain.User, error) {
	return r.DeleteByField(ctx, s, telegramIDField, tgID)
}
