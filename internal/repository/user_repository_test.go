package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bot-kit/registration-service/internal/domain"
	"github.com/bot-kit/registration-service/pkg/util"
)

func TestGetByTelegramIDQueriesTgIDColumn(t *testing.T) {
	repo := newUserRepo(t)
	sess, mock := newSession(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + " WHERE tg_id = $1")).
		WithArgs(int64(123456789)).
		WillReturnRows(userRow(1, 123456789, "Matvey", strPtr("Markin"), strPtr("Matik"), now))

	user, err := repo.GetByTelegramID(context.Background(), sess, 123456789)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(123456789), user.TelegramID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTelegramIDUnknownUser(t *testing.T) {
	repo := newUserRepo(t)
	sess, mock := newSession(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectUsers + " WHERE tg_id = $1")).
		WithArgs(int64(55)).
		WillReturnRows(pgxmock.NewRows(userColumns()))

	user, err := repo.GetByTelegramID(context.Background(), sess, 55)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByTelegramIDDelegatesToFieldUpdate(t *testing.T) {
	repo := newUserRepo(t)
	sess, mock := newSession(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET first_name = $1, updated_at = now() WHERE tg_id = $2 "+returning)).
		WithArgs("New", int64(123456789)).
		WillReturnRows(userRow(1, 123456789, "New", nil, nil, now))
	mock.ExpectCommit()

	user, err := repo.UpdateByTelegramID(context.Background(), sess, 123456789, domain.UserUpdate{
		FirstName: domain.Some("New"),
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "New", user.FirstName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByTelegramIDDelegatesToFieldDelete(t *testing.T) {
	repo := newUserRepo(t)
	sess, mock := newSession(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM users WHERE tg_id = $1 " + returning)).
		WithArgs(int64(123456789)).
		WillReturnRows(userRow(1, 123456789, "Matvey", nil, nil, now))
	mock.ExpectCommit()

	user, err := repo.DeleteByTelegramID(context.Background(), sess, 123456789)
	require.NoError(t, err)
	require.NotNil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByFieldRejectsUnknownField(t *testing.T) {
	repo := newUserRepo(t)
	sess, mock := newSession(t)

	_, err := repo.DeleteByField(context.Background(), sess, "telegram", int64(1))
	require.Error(t, err)

	var fieldErr *util.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "users", fieldErr.Entity)

	require.NoError(t, mock.ExpectationsWereMet())
}
