package service

import (
	"context"
	"errors"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
)

type roomService struct {
	rooms repository.RoomRepository
}

func NewRoomService(rooms repository.RoomRepository) RoomService {
	return &roomService{rooms: rooms}
}

func (s *roomService) Create(ctx context.Context, in CreateRoomInput) (*domain.Room, error) {
	existing, err := s.rooms.FindByNameOrCode(ctx, in.Name, in.Code, "")
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "room name or code already exists"}
	}

	status := in.Status
	if status == "" {
		status = domain.RoomStatusAvailable
	}
	room := &domain.Room{
		Name:         in.Name,
		Code:         in.Code,
		Location:     in.Location,
		Capacity:     in.Capacity,
		Status:       status,
		NeedApproval: in.NeedApproval,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *roomService) List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, int32, error) {
	return s.rooms.List(ctx, filter)
}

func (s *roomService) Update(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if _, err := s.rooms.GetByID(ctx, room.ID); err != nil {
		return nil, err
	}
	other, err := s.rooms.FindByNameOrCode(ctx, room.Name, room.Code, room.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if other != nil {
		return nil, &domain.ConflictError{Message: "room name or code already exists"}
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room.Status = status
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete refuses to remove a room that has ever hosted a meeting, cancelled
// or not; meeting history references the room row.
func (s *roomService) Delete(ctx context.Context, id string) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.rooms.CountMeetings(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ConflictError{Message: "room has meetings and cannot be deleted"}
	}
	return s.rooms.Delete(ctx, id)
}
