package service

import (
	"context"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
)

type notificationService struct {
	notes repository.NotificationRepository
}

func NewNotificationService(notes repository.NotificationRepository) NotificationService {
	return &notificationService{notes: notes}
}

func (s *notificationService) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.notes.List(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	return s.notes.MarkAsRead(ctx, id, userID)
}
