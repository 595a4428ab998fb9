package service

import (
	"context"
	"sync"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/logger"
	"meetingroom-backend/internal/repository"
)

const notifyTimeout = 30 * time.Second

// AsyncNotifier delivers notifications on a background goroutine: one
// in-app notification row plus one email per recipient. Delivery failures
// are logged and swallowed; a booking never fails because a notification
// did. It detaches from the request context so an already-committed
// transition still notifies after the request completes.
type AsyncNotifier struct {
	email EmailService
	notes repository.NotificationRepository
	users repository.UserRepository
	wg    sync.WaitGroup
}

func NewAsyncNotifier(email EmailService, notes repository.NotificationRepository, users repository.UserRepository) *AsyncNotifier {
	return &AsyncNotifier{
		email: email,
		notes: notes,
		users: users,
	}
}

func (n *AsyncNotifier) Notify(toUserIDs []string, subject, body string) {
	if len(toUserIDs) == 0 {
		return
	}
	// Copy before handing off; callers may mutate their slice.
	recipients := append([]string(nil), toUserIDs...)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		n.dispatch(ctx, recipients, subject, body)
	}()
}

func (n *AsyncNotifier) dispatch(ctx context.Context, toUserIDs []string, subject, body string) {
	log := logger.WithService("notifier")
	for _, uid := range toUserIDs {
		note := &domain.Notification{
			UserID:  uid,
			Title:   subject,
			Message: body,
		}
		if err := n.notes.Create(ctx, note); err != nil {
			log.Warn("failed to store notification", "user_id", uid, "error", err)
		}

		user, err := n.users.GetByID(ctx, uid)
		if err != nil {
			log.Warn("failed to resolve notification recipient", "user_id", uid, "error", err)
			continue
		}
		if err := n.email.Send(ctx, user.Email, user.Name, subject, body); err != nil {
			log.Warn("failed to send notification email", "user_id", uid, "error", err)
		}
	}
}

// Wait blocks until all in-flight notifications are done. Used on shutdown
// and in tests.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}
