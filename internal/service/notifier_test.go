package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"meetingroom-backend/internal/domain"
)

func TestAsyncNotifier_DeliversToEachRecipient(t *testing.T) {
	email := new(mockEmailService)
	notes := new(mockNotificationRepo)
	users := new(mockUserRepo)
	n := NewAsyncNotifier(email, notes, users)

	notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Email: "u1@example.com", Name: "One"}, nil)
	users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2", Email: "u2@example.com", Name: "Two"}, nil)
	email.On("Send", mock.Anything, "u1@example.com", "One", "Meeting created", "Standup").Return(nil)
	email.On("Send", mock.Anything, "u2@example.com", "Two", "Meeting created", "Standup").Return(nil)

	n.Notify([]string{"u1", "u2"}, "Meeting created", "Standup")
	n.Wait()

	email.AssertExpectations(t)
	notes.AssertNumberOfCalls(t, "Create", 2)
}

func TestAsyncNotifier_SwallowsDeliveryFailures(t *testing.T) {
	email := new(mockEmailService)
	notes := new(mockNotificationRepo)
	users := new(mockUserRepo)
	n := NewAsyncNotifier(email, notes, users)

	notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(errors.New("db down"))
	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Email: "u1@example.com"}, nil)
	users.On("GetByID", mock.Anything, "u2").Return(nil, domain.NewNotFound("user"))
	email.On("Send", mock.Anything, "u1@example.com", "", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	// Must not panic or surface errors; the unresolved recipient is skipped.
	n.Notify([]string{"u1", "u2"}, "Meeting cancelled", "Standup")
	n.Wait()

	email.AssertNumberOfCalls(t, "Send", 1)
}

func TestAsyncNotifier_NoRecipientsIsNoop(t *testing.T) {
	email := new(mockEmailService)
	notes := new(mockNotificationRepo)
	users := new(mockUserRepo)
	n := NewAsyncNotifier(email, notes, users)

	n.Notify(nil, "Meeting created", "Standup")
	n.Wait()

	notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
