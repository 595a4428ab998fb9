package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
)

type mockMeetingRepo struct {
	mock.Mock
}

func (m *mockMeetingRepo) Create(ctx context.Context, mt *domain.Meeting) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockMeetingRepo) Update(ctx context.Context, mt *domain.Meeting) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockMeetingRepo) MarkScheduled(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMeetingRepo) UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	if mt, ok := args.Get(0).(*domain.Meeting); ok {
		return mt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMeetingRepo) List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, int32, error) {
	args := m.Called(ctx, filter)
	var out []domain.Meeting
	if v, ok := args.Get(0).([]domain.Meeting); ok {
		out = v
	}
	return out, args.Get(1).(int32), args.Error(2)
}

func (m *mockMeetingRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Meeting, error) {
	args := m.Called(ctx, from, to)
	var out []domain.Meeting
	if v, ok := args.Get(0).([]domain.Meeting); ok {
		out = v
	}
	return out, args.Error(1)
}

func (m *mockMeetingRepo) BusyRoomIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	args := m.Called(ctx, start, end)
	var out []string
	if v, ok := args.Get(0).([]string); ok {
		out = v
	}
	return out, args.Error(1)
}

func (m *mockMeetingRepo) RoomConflictExists(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMeetingRepo) ParticipantConflictExists(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) (bool, error) {
	args := m.Called(ctx, userIDs, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMeetingRepo) MarkInProgress(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMeetingRepo) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.Room); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRoomRepo) List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, int32, error) {
	args := m.Called(ctx, filter)
	var out []domain.Room
	if v, ok := args.Get(0).([]domain.Room); ok {
		out = v
	}
	return out, args.Get(1).(int32), args.Error(2)
}

func (m *mockRoomRepo) ListAvailable(ctx context.Context, busyIDs []string, minCapacity int32) ([]domain.Room, error) {
	args := m.Called(ctx, busyIDs, minCapacity)
	var out []domain.Room
	if v, ok := args.Get(0).([]domain.Room); ok {
		out = v
	}
	return out, args.Error(1)
}

func (m *mockRoomRepo) FindByNameOrCode(ctx context.Context, name, code, excludeID string) (*domain.Room, error) {
	args := m.Called(ctx, name, code, excludeID)
	if r, ok := args.Get(0).(*domain.Room); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) CountMeetings(ctx context.Context, roomID string) (int32, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int32), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var out []domain.User
	if v, ok := args.Get(0).([]domain.User); ok {
		out = v
	}
	return out, args.Error(1)
}

type mockApprovalRepo struct {
	mock.Mock
}

func (m *mockApprovalRepo) Insert(ctx context.Context, rec *domain.ApprovalRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockApprovalRepo) ListByMeeting(ctx context.Context, meetingID string) ([]domain.ApprovalRecord, error) {
	args := m.Called(ctx, meetingID)
	var out []domain.ApprovalRecord
	if v, ok := args.Get(0).([]domain.ApprovalRecord); ok {
		return v, args.Error(1)
	}
	return out, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	var out []domain.Notification
	if v, ok := args.Get(0).([]domain.Notification); ok {
		out = v
	}
	return out, args.Get(1).(int32), args.Error(2)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

// fakeNotifier records notifications synchronously so tests can assert on
// them without racing a goroutine.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	userIDs []string
	subject string
	body    string
}

func (f *fakeNotifier) Notify(toUserIDs []string, subject, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{userIDs: toUserIDs, subject: subject, body: body})
}

func (f *fakeNotifier) sent() []notifyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notifyCall, len(f.calls))
	copy(out, f.calls)
	return out
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	return m.Called(ctx, toEmail, toName, subject, body).Error(0)
}
