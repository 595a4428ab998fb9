package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"meetingroom-backend/internal/domain"
)

func TestRoomService_Create(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	rooms.On("FindByNameOrCode", mock.Anything, "Boardroom", "BR-1", "").Return(nil, domain.NewNotFound("room"))
	rooms.On("Create", mock.Anything, mock.AnythingOfType("*domain.Room")).Return(nil)

	room, err := svc.Create(context.Background(), CreateRoomInput{
		Name:     "Boardroom",
		Code:     "BR-1",
		Capacity: 12,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusAvailable, room.Status)
	assert.Equal(t, int32(12), room.Capacity)
	rooms.AssertExpectations(t)
}

func TestRoomService_Create_DuplicateNameOrCode(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	rooms.On("FindByNameOrCode", mock.Anything, "Boardroom", "BR-1", "").Return(&domain.Room{ID: "other"}, nil)

	_, err := svc.Create(context.Background(), CreateRoomInput{Name: "Boardroom", Code: "BR-1"})

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomService_Update_UniquenessExcludesSelf(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	room := &domain.Room{ID: "room-1", Name: "Boardroom", Code: "BR-1", Capacity: 12}
	rooms.On("GetByID", mock.Anything, "room-1").Return(room, nil)
	rooms.On("FindByNameOrCode", mock.Anything, "Boardroom", "BR-1", "room-1").Return(nil, domain.NewNotFound("room"))
	rooms.On("Update", mock.Anything, room).Return(nil)

	got, err := svc.Update(context.Background(), room)

	require.NoError(t, err)
	assert.Equal(t, room, got)
	rooms.AssertExpectations(t)
}

func TestRoomService_Delete_RefusedWithMeetings(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	rooms.On("GetByID", mock.Anything, "room-1").Return(&domain.Room{ID: "room-1"}, nil)
	rooms.On("CountMeetings", mock.Anything, "room-1").Return(int32(3), nil)

	err := svc.Delete(context.Background(), "room-1")

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRoomService_Delete(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	rooms.On("GetByID", mock.Anything, "room-1").Return(&domain.Room{ID: "room-1"}, nil)
	rooms.On("CountMeetings", mock.Anything, "room-1").Return(int32(0), nil)
	rooms.On("Delete", mock.Anything, "room-1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "room-1"))
	rooms.AssertExpectations(t)
}

func TestRoomService_UpdateStatus(t *testing.T) {
	rooms := new(mockRoomRepo)
	svc := NewRoomService(rooms)

	rooms.On("GetByID", mock.Anything, "room-1").Return(&domain.Room{ID: "room-1", Status: domain.RoomStatusAvailable}, nil)
	rooms.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Status == domain.RoomStatusMaintenance
	})).Return(nil)

	room, err := svc.UpdateStatus(context.Background(), "room-1", domain.RoomStatusMaintenance)

	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusMaintenance, room.Status)
}
