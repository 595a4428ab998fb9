package postgres

import (
	"context"
	"database/sql"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"

	"github.com/google/uuid"
)

type approvalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) repository.ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Insert(ctx context.Context, rec *domain.ApprovalRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meeting_approvals (id, meeting_id, approver_id, action, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.MeetingID, rec.ApproverID, rec.Action, rec.Reason, rec.CreatedAt)
	return err
}

func (r *approvalRepository) ListByMeeting(ctx context.Context, meetingID string) ([]domain.ApprovalRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, meeting_id, approver_id, action, reason, created_at
		 FROM meeting_approvals WHERE meeting_id = $1 ORDER BY created_at DESC`,
		meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.ApprovalRecord
	for rows.Next() {
		var rec domain.ApprovalRecord
		if err := rows.Scan(&rec.ID, &rec.MeetingID, &rec.ApproverID, &rec.Action, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
