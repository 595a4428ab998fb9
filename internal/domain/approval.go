package domain

import "time"

type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "APPROVED"
	ApprovalActionRejected ApprovalAction = "REJECTED"
)

// ApprovalRecord is one entry of the append-only approval audit log.
// Records are never mutated or deleted; a meeting may accumulate several
// across repeated approval cycles.
type ApprovalRecord struct {
	ID         string         `json:"id"`
	MeetingID  string         `json:"meeting_id"`
	ApproverID string         `json:"approver_id"`
	Action     ApprovalAction `json:"action"`
	Reason     string         `json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
