package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom-backend/internal/domain"
)

func roomRows(rooms ...domain.Room) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "code", "location", "capacity", "status", "need_approval", "created_on", "updated_on",
	})
	now := time.Now()
	for _, rm := range rooms {
		rows.AddRow(rm.ID, rm.Name, rm.Code, rm.Location, rm.Capacity, string(rm.Status), rm.NeedApproval, now, now)
	}
	return rows
}

func TestRoomRepository_Create_GeneratesID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectExec("INSERT INTO rooms").
		WithArgs(sqlmock.AnyArg(), "Boardroom", "BR-1", "3F", int32(12),
			domain.RoomStatusAvailable, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	room := &domain.Room{
		Name:         "Boardroom",
		Code:         "BR-1",
		Location:     "3F",
		Capacity:     12,
		Status:       domain.RoomStatusAvailable,
		NeedApproval: true,
	}
	require.NoError(t, repo.Create(context.Background(), room))
	assert.NotEmpty(t, room.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM rooms WHERE id =").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomRepository_ListAvailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM rooms").
		WithArgs(domain.RoomStatusAvailable, pq.Array([]string{"room-9"}), int32(6)).
		WillReturnRows(roomRows(
			domain.Room{ID: "room-2", Name: "Huddle", Code: "H-1", Capacity: 6, Status: domain.RoomStatusAvailable},
			domain.Room{ID: "room-3", Name: "Town Hall", Code: "TH-1", Capacity: 40, Status: domain.RoomStatusAvailable},
		))

	rooms, err := repo.ListAvailable(context.Background(), []string{"room-9"}, 6)

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	// Ascending capacity: smallest fitting room first.
	assert.Equal(t, "room-2", rooms[0].ID)
	assert.Equal(t, "room-3", rooms[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_ListAvailable_NoBusyRooms(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	// A quiet window must bind an empty array, not NULL, so every
	// AVAILABLE room still matches.
	mock.ExpectQuery("SELECT (.+) FROM rooms").
		WithArgs(domain.RoomStatusAvailable, pq.Array([]string{}), int32(0)).
		WillReturnRows(roomRows(
			domain.Room{ID: "room-1", Name: "Boardroom", Code: "BR-1", Capacity: 12, Status: domain.RoomStatusAvailable},
		))

	rooms, err := repo.ListAvailable(context.Background(), nil, 0)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "room-1", rooms[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepository_FindByNameOrCode_ExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM rooms WHERE").
		WithArgs("Boardroom", "BR-1", "room-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByNameOrCode(context.Background(), "Boardroom", "BR-1", "room-1")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectExec("DELETE FROM rooms").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomRepository_CountMeetings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepository(db)

	mock.ExpectQuery("SELECT count").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountMeetings(context.Background(), "room-1")

	require.NoError(t, err)
	assert.Equal(t, int32(4), count)
}
