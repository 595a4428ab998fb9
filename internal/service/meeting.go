package service

import (
	"context"
	"errors"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"
	"meetingroom-backend/internal/scheduling"
)

type meetingService struct {
	meetings  repository.MeetingRepository
	rooms     repository.RoomRepository
	approvals repository.ApprovalRepository
	policy    scheduling.ApprovalPolicy
	notifier  Notifier
}

func NewMeetingService(
	meetings repository.MeetingRepository,
	rooms repository.RoomRepository,
	approvals repository.ApprovalRepository,
	policy scheduling.ApprovalPolicy,
	notifier Notifier,
) MeetingService {
	return &meetingService{
		meetings:  meetings,
		rooms:     rooms,
		approvals: approvals,
		policy:    policy,
		notifier:  notifier,
	}
}

func validateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return &domain.ValidationError{Message: "start time must be before end time"}
	}
	return nil
}

// checkConflicts runs the conflict detector over the room and participant
// set. excludeID removes one meeting from consideration so a meeting being
// updated or re-approved does not conflict with itself.
func (s *meetingService) checkConflicts(ctx context.Context, roomID string, participants []string, start, end time.Time, excludeID string) (bool, error) {
	roomBusy, err := s.meetings.RoomConflictExists(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	if roomBusy {
		return true, nil
	}
	return s.meetings.ParticipantConflictExists(ctx, participants, start, end, excludeID)
}

func conflictWithSuggestions(start, end time.Time, capacity int32) error {
	return &domain.ConflictError{
		Message:     "time window conflicts with an existing meeting",
		Suggestions: scheduling.Suggest(start, end, capacity),
	}
}

func (s *meetingService) Create(ctx context.Context, in CreateMeetingInput, creatorID string) (*CreateMeetingResult, error) {
	if err := validateWindow(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.RoomStatusAvailable {
		return nil, &domain.ConflictError{Message: "room is not available for booking"}
	}

	busy, err := s.checkConflicts(ctx, in.RoomID, in.Participants, in.StartTime, in.EndTime, "")
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, conflictWithSuggestions(in.StartTime, in.EndTime, room.Capacity)
	}

	approvalRequired := s.policy.RequiresApproval(room.NeedApproval, len(in.Participants))
	status := domain.MeetingStatusScheduled
	if approvalRequired {
		status = domain.MeetingStatusPendingApproval
	}

	m := &domain.Meeting{
		Title:        in.Title,
		Description:  in.Description,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		RoomID:       in.RoomID,
		CreatorID:    creatorID,
		Status:       status,
		Participants: in.Participants,
	}
	if err := s.meetings.Create(ctx, m); err != nil {
		// Lost the race between the check above and the locked write.
		if errors.Is(err, repository.ErrOverlap) {
			return nil, conflictWithSuggestions(in.StartTime, in.EndTime, room.Capacity)
		}
		return nil, err
	}

	s.notifier.Notify(m.Participants, "Meeting created", m.Title)

	return &CreateMeetingResult{ApprovalRequired: approvalRequired, Meeting: m}, nil
}

func (s *meetingService) Update(ctx context.Context, id string, patch UpdateMeetingInput, requesterID string) (*domain.Meeting, error) {
	existing, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatorID != requesterID {
		return nil, domain.ErrForbidden
	}

	// Merge the patch over the stored meeting. Status is deliberately left
	// untouched; approval is a creation-time decision.
	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.StartTime != nil {
		existing.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		existing.EndTime = *patch.EndTime
	}
	if patch.RoomID != nil {
		existing.RoomID = *patch.RoomID
	}
	if patch.Participants != nil {
		existing.Participants = patch.Participants
	}

	if err := validateWindow(existing.StartTime, existing.EndTime); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, existing.RoomID)
	if err != nil {
		return nil, err
	}

	busy, err := s.checkConflicts(ctx, existing.RoomID, existing.Participants, existing.StartTime, existing.EndTime, id)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, conflictWithSuggestions(existing.StartTime, existing.EndTime, room.Capacity)
	}

	if err := s.meetings.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, conflictWithSuggestions(existing.StartTime, existing.EndTime, room.Capacity)
		}
		return nil, err
	}

	s.notifier.Notify(existing.Participants, "Meeting changed", existing.Title)

	return existing, nil
}

// Cancel moves the meeting to CANCELLED. There is no state guard: cancelling
// an already-cancelled meeting succeeds again (idempotent), matching the
// booking flow this replaces.
func (s *meetingService) Cancel(ctx context.Context, id, requesterID string) (*domain.Meeting, error) {
	existing, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatorID != requesterID {
		return nil, domain.ErrForbidden
	}

	if err := s.meetings.UpdateStatus(ctx, id, domain.MeetingStatusCancelled); err != nil {
		return nil, err
	}
	existing.Status = domain.MeetingStatusCancelled

	s.notifier.Notify(existing.Participants, "Meeting cancelled", existing.Title)

	return existing, nil
}

func (s *meetingService) Approve(ctx context.Context, id string, approverRole domain.UserRole, approverID string) (*domain.Meeting, error) {
	if !approverRole.CanApprove() {
		return nil, domain.ErrForbidden
	}

	existing, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.MeetingStatusPendingApproval {
		return nil, &domain.ConflictError{Message: "meeting is not awaiting approval"}
	}

	// MarkScheduled re-checks the stored window under lock; the state may
	// have drifted since the meeting was created.
	if err := s.meetings.MarkScheduled(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			capacity := int32(0)
			if room, roomErr := s.rooms.GetByID(ctx, existing.RoomID); roomErr == nil {
				capacity = room.Capacity
			}
			return nil, conflictWithSuggestions(existing.StartTime, existing.EndTime, capacity)
		case errors.Is(err, repository.ErrInvalidState):
			return nil, &domain.ConflictError{Message: "meeting is not awaiting approval"}
		default:
			return nil, err
		}
	}
	existing.Status = domain.MeetingStatusScheduled

	rec := &domain.ApprovalRecord{
		MeetingID:  id,
		ApproverID: approverID,
		Action:     domain.ApprovalActionApproved,
	}
	if err := s.approvals.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.notifier.Notify(existing.Participants, "Meeting approved", existing.Title)

	return existing, nil
}

// Reject needs no conflict re-check: it frees resources rather than
// claiming them.
func (s *meetingService) Reject(ctx context.Context, id string, approverRole domain.UserRole, approverID, reason string) (*domain.Meeting, error) {
	if !approverRole.CanApprove() {
		return nil, domain.ErrForbidden
	}

	existing, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.MeetingStatusPendingApproval {
		return nil, &domain.ConflictError{Message: "meeting is not awaiting approval"}
	}

	if err := s.meetings.UpdateStatus(ctx, id, domain.MeetingStatusCancelled); err != nil {
		return nil, err
	}
	existing.Status = domain.MeetingStatusCancelled

	rec := &domain.ApprovalRecord{
		MeetingID:  id,
		ApproverID: approverID,
		Action:     domain.ApprovalActionRejected,
		Reason:     reason,
	}
	if err := s.approvals.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.notifier.Notify(existing.Participants, "Meeting rejected", existing.Title)

	return existing, nil
}

func (s *meetingService) Availability(ctx context.Context, start, end time.Time, capacity int32) ([]domain.Room, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	busyIDs, err := s.meetings.BusyRoomIDs(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return s.rooms.ListAvailable(ctx, busyIDs, capacity)
}

func (s *meetingService) ApprovalHistory(ctx context.Context, meetingID string) ([]domain.ApprovalRecord, error) {
	if _, err := s.meetings.GetByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.approvals.ListByMeeting(ctx, meetingID)
}

func (s *meetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *meetingService) List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, int32, error) {
	return s.meetings.List(ctx, filter)
}
