package repository

import (
	"context"
	"errors"
	"time"

	"meetingroom-backend/internal/domain"
)

// ErrOverlap is returned by a transactional write when the in-transaction
// conflict re-check finds the room or a participant already booked. It is
// the backstop for the check-then-act race: two requests can both pass the
// service-level check, but only one survives the locked re-check.
var ErrOverlap = errors.New("booking interval overlaps an existing meeting")

// ErrInvalidState is returned when a guarded status transition finds the
// meeting no longer in the expected state.
var ErrInvalidState = errors.New("meeting is not in the expected state")

// MeetingFilter narrows List queries. Zero values mean "no filter".
type MeetingFilter struct {
	Keyword   string
	Status    domain.MeetingStatus
	RoomID    string
	CreatorID string
	StartFrom *time.Time
	EndTo     *time.Time
	Page      int32
	PageSize  int32
}

type MeetingRepository interface {
	// Create inserts the meeting and its participant rows inside a
	// transaction that serializes on the room and participant ids and
	// re-checks for overlap before writing. Returns ErrOverlap if the
	// window is no longer free.
	Create(ctx context.Context, m *domain.Meeting) error
	// Update rewrites the meeting (and participant rows when the set
	// changed) under the same locked re-check, excluding the meeting's own
	// id so an unmodified meeting does not conflict with itself.
	Update(ctx context.Context, m *domain.Meeting) error
	// MarkScheduled flips PENDING_APPROVAL to SCHEDULED after re-checking
	// the meeting's stored window against the current state of the store.
	// Returns ErrOverlap on a resource conflict and ErrInvalidState when
	// the meeting left PENDING_APPROVAL since it was loaded.
	MarkScheduled(ctx context.Context, id string) error
	// UpdateStatus sets the status without a conflict check. Used for
	// cancel/reject (which free resources) and the display-status jobs.
	UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) error

	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]domain.Meeting, int32, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Meeting, error)

	// Availability index.
	BusyRoomIDs(ctx context.Context, start, end time.Time) ([]string, error)
	RoomConflictExists(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)
	ParticipantConflictExists(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) (bool, error)

	// Display-status derivation, driven by the cron jobs.
	MarkInProgress(ctx context.Context, now time.Time) (int64, error)
	MarkCompleted(ctx context.Context, now time.Time) (int64, error)
}

// RoomFilter narrows room List queries.
type RoomFilter struct {
	Keyword     string
	Status      domain.RoomStatus
	MinCapacity int32
	Page        int32
	PageSize    int32
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RoomFilter) ([]domain.Room, int32, error)
	// ListAvailable returns AVAILABLE rooms not in busyIDs meeting the
	// capacity floor, ordered by ascending capacity.
	ListAvailable(ctx context.Context, busyIDs []string, minCapacity int32) ([]domain.Room, error)
	// FindByNameOrCode supports the uniqueness guard; excludeID skips the
	// room being updated.
	FindByNameOrCode(ctx context.Context, name, code, excludeID string) (*domain.Room, error)
	CountMeetings(ctx context.Context, roomID string) (int32, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type ApprovalRepository interface {
	// Insert appends one audit record; records are never updated or
	// deleted. A missing table is a migration failure, surfaced as an
	// error rather than swallowed.
	Insert(ctx context.Context, rec *domain.ApprovalRecord) error
	// ListByMeeting returns records newest first.
	ListByMeeting(ctx context.Context, meetingID string) ([]domain.ApprovalRecord, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
