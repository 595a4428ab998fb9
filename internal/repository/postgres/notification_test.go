package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom-backend/internal/domain"
)

func TestNotificationRepository_Create_GeneratesID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(sqlmock.AnyArg(), "u1", "Meeting created", "Standup", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	note := &domain.Notification{UserID: "u1", Title: "Meeting created", Message: "Standup"}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.NotEmpty(t, note.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT count").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("FROM notifications WHERE user_id =").
		WithArgs("u1", int32(10), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "is_read", "created_on"}).
			AddRow("n2", "u1", "Meeting approved", "Offsite", false, now).
			AddRow("n1", "u1", "Meeting created", "Offsite", true, now.Add(-time.Hour)))

	notes, total, err := repo.List(context.Background(), "u1", 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int32(2), total)
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID)
	assert.True(t, notes[1].IsRead)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs("n1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkAsRead(context.Background(), "n1", "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead_WrongUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs("n1", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkAsRead(context.Background(), "n1", "someone-else")

	require.ErrorIs(t, err, domain.ErrNotFound)
}
