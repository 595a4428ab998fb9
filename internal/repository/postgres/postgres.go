package postgres

import (
	"database/sql"

	"meetingroom-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MeetingRepository
	repository.RoomRepository
	repository.UserRepository
	repository.ApprovalRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		MeetingRepository:      NewMeetingRepository(db),
		RoomRepository:         NewRoomRepository(db),
		UserRepository:         NewUserRepository(db),
		ApprovalRepository:     NewApprovalRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
