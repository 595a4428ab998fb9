package service

import (
	"context"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
)

// CreateMeetingInput is a booking request entering the lifecycle.
type CreateMeetingInput struct {
	Title        string
	Description  string
	StartTime    time.Time
	EndTime      time.Time
	RoomID       string
	Participants []string
}

// UpdateMeetingInput is a partial patch; nil fields keep the prior value.
// A non-nil empty Participants slice clears the participant list.
type UpdateMeetingInput struct {
	Title        *string
	Description  *string
	StartTime    *time.Time
	EndTime      *time.Time
	RoomID       *string
	Participants []string
}

// CreateMeetingResult reports whether the meeting entered the approval queue.
type CreateMeetingResult struct {
	ApprovalRequired bool            `json:"approval_required"`
	Meeting          *domain.Meeting `json:"meeting"`
}

type MeetingService interface {
	Create(ctx context.Context, in CreateMeetingInput, creatorID string) (*CreateMeetingResult, error)
	Update(ctx context.Context, id string, patch UpdateMeetingInput, requesterID string) (*domain.Meeting, error)
	Cancel(ctx context.Context, id, requesterID string) (*domain.Meeting, error)
	Approve(ctx context.Context, id string, approverRole domain.UserRole, approverID string) (*domain.Meeting, error)
	Reject(ctx context.Context, id string, approverRole domain.UserRole, approverID, reason string) (*domain.Meeting, error)
	Availability(ctx context.Context, start, end time.Time, capacity int32) ([]domain.Room, error)
	ApprovalHistory(ctx context.Context, meetingID string) ([]domain.ApprovalRecord, error)
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, int32, error)
}

type CreateRoomInput struct {
	Name         string
	Code         string
	Location     string
	Capacity     int32
	Status       domain.RoomStatus
	NeedApproval bool
}

type RoomService interface {
	Create(ctx context.Context, in CreateRoomInput) (*domain.Room, error)
	Get(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, int32, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
}

type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.UserRole
}

type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, avatarURL string) (*domain.User, error)
}

type NotificationService interface {
	// List returns the user's in-app notifications, newest first.
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	// MarkAsRead flips one notification; the user id guards against marking
	// someone else's.
	MarkAsRead(ctx context.Context, id, userID string) error
}

type AuthService interface {
	// Login returns a signed access token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// EmailService is the outbound mail collaborator.
type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

// Notifier is the fire-and-forget notification sink. Implementations must
// never surface a delivery failure to the caller.
type Notifier interface {
	Notify(toUserIDs []string, subject, body string)
}
