package domain

import "time"

type MeetingStatus string

const (
	MeetingStatusPendingApproval MeetingStatus = "PENDING_APPROVAL"
	MeetingStatusScheduled       MeetingStatus = "SCHEDULED"
	MeetingStatusInProgress      MeetingStatus = "IN_PROGRESS"
	MeetingStatusCompleted       MeetingStatus = "COMPLETED"
	MeetingStatusCancelled       MeetingStatus = "CANCELLED"
)

// IsTerminal reports whether no further lifecycle transition is defined
// from this status. IN_PROGRESS and COMPLETED are display statuses derived
// by the cron jobs, not transitioned by the booking flow.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusCancelled || s == MeetingStatusCompleted
}

type Meeting struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	RoomID       string        `json:"room_id"`
	CreatorID    string        `json:"creator_id"`
	Status       MeetingStatus `json:"status"`
	Participants []string      `json:"participants"`
	CreatedOn    time.Time     `json:"created_on"`
	UpdatedOn    time.Time     `json:"updated_on"`
}

// TimeWindow is a candidate booking window proposed after a conflict.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Suggestions is the advisory payload attached to a resource conflict.
// The windows are not verified free; the caller must resubmit.
type Suggestions struct {
	TimeWindows []TimeWindow `json:"time_windows"`
	Capacity    int32        `json:"capacity"`
}
