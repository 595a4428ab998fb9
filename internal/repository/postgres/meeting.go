package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Advisory lock classes, namespacing room and participant keys.
const (
	lockClassRoom        = 1
	lockClassParticipant = 2
)

type meetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) repository.MeetingRepository {
	return &meetingRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx so the overlap checks can
// run standalone and inside the locked write transactions.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const roomConflictQuery = `SELECT EXISTS (
	SELECT 1 FROM meetings m
	WHERE m.room_id = $1
	  AND m.status <> 'CANCELLED'
	  AND ($4 = '' OR m.id <> $4)
	  AND ((m.start_time <= $2 AND m.end_time > $2)
	    OR (m.start_time < $3 AND m.end_time >= $3)
	    OR (m.start_time >= $2 AND m.end_time <= $3)))`

const participantConflictQuery = `SELECT EXISTS (
	SELECT 1 FROM meetings m
	JOIN meeting_participants mp ON mp.meeting_id = m.id
	WHERE mp.user_id = ANY($1)
	  AND m.status <> 'CANCELLED'
	  AND ($4 = '' OR m.id <> $4)
	  AND ((m.start_time <= $2 AND m.end_time > $2)
	    OR (m.start_time < $3 AND m.end_time >= $3)
	    OR (m.start_time >= $2 AND m.end_time <= $3)))`

func roomConflictExists(ctx context.Context, q querier, roomID string, start, end time.Time, excludeID string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, roomConflictQuery, roomID, start, end, excludeID).Scan(&exists)
	return exists, err
}

func participantConflictExists(ctx context.Context, q querier, userIDs []string, start, end time.Time, excludeID string) (bool, error) {
	if len(userIDs) == 0 {
		return false, nil
	}
	var exists bool
	err := q.QueryRowContext(ctx, participantConflictQuery, pq.Array(userIDs), start, end, excludeID).Scan(&exists)
	return exists, err
}

func (r *meetingRepository) RoomConflictExists(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error) {
	return roomConflictExists(ctx, r.db, roomID, start, end, excludeID)
}

func (r *meetingRepository) ParticipantConflictExists(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) (bool, error) {
	return participantConflictExists(ctx, r.db, userIDs, start, end, excludeID)
}

func (r *meetingRepository) BusyRoomIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	query := `SELECT DISTINCT m.room_id FROM meetings m
	WHERE m.status <> 'CANCELLED'
	  AND ((m.start_time <= $1 AND m.end_time > $1)
	    OR (m.start_time < $2 AND m.end_time >= $2)
	    OR (m.start_time >= $1 AND m.end_time <= $2))`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// lockBookingKeys takes transaction-scoped advisory locks on the room and
// every participant, so the overlap re-check and the write happen atomically
// with respect to any concurrent booking touching the same resources.
// Participants are locked in sorted order to avoid deadlocks.
func lockBookingKeys(ctx context.Context, tx *sql.Tx, roomID string, participants []string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, lockClassRoom, roomID); err != nil {
		return fmt.Errorf("lock room %s: %w", roomID, err)
	}
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	for _, uid := range sorted {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, lockClassParticipant, uid); err != nil {
			return fmt.Errorf("lock participant %s: %w", uid, err)
		}
	}
	return nil
}

func checkBookingFree(ctx context.Context, tx *sql.Tx, roomID string, participants []string, start, end time.Time, excludeID string) error {
	busy, err := roomConflictExists(ctx, tx, roomID, start, end, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return repository.ErrOverlap
	}
	busy, err = participantConflictExists(ctx, tx, participants, start, end, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return repository.ErrOverlap
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, meetingID string, userIDs []string) error {
	for _, uid := range userIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meeting_participants (meeting_id, user_id) VALUES ($1, $2)`,
			meetingID, uid); err != nil {
			return err
		}
	}
	return nil
}

func (r *meetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockBookingKeys(ctx, tx, m.RoomID, m.Participants); err != nil {
		return err
	}
	if err := checkBookingFree(ctx, tx, m.RoomID, m.Participants, m.StartTime, m.EndTime, ""); err != nil {
		return err
	}

	now := time.Now()
	m.CreatedOn = now
	m.UpdatedOn = now
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meetings (id, title, description, start_time, end_time, room_id, creator_id, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Title, m.Description, m.StartTime, m.EndTime, m.RoomID, m.CreatorID, m.Status, now, now); err != nil {
		return err
	}
	if err := insertParticipants(ctx, tx, m.ID, m.Participants); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *meetingRepository) Update(ctx context.Context, m *domain.Meeting) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockBookingKeys(ctx, tx, m.RoomID, m.Participants); err != nil {
		return err
	}
	if err := checkBookingFree(ctx, tx, m.RoomID, m.Participants, m.StartTime, m.EndTime, m.ID); err != nil {
		return err
	}

	now := time.Now()
	m.UpdatedOn = now
	res, err := tx.ExecContext(ctx,
		`UPDATE meetings SET title=$1, description=$2, start_time=$3, end_time=$4, room_id=$5, updated_on=$6 WHERE id=$7`,
		m.Title, m.Description, m.StartTime, m.EndTime, m.RoomID, now, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("meeting")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertParticipants(ctx, tx, m.ID, m.Participants); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *meetingRepository) MarkScheduled(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		roomID     string
		start, end time.Time
		status     domain.MeetingStatus
	)
	err = tx.QueryRowContext(ctx,
		`SELECT room_id, start_time, end_time, status FROM meetings WHERE id = $1 FOR UPDATE`, id).
		Scan(&roomID, &start, &end, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("meeting")
	}
	if err != nil {
		return err
	}
	if status != domain.MeetingStatusPendingApproval {
		return repository.ErrInvalidState
	}

	participants, err := participantIDs(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := lockBookingKeys(ctx, tx, roomID, participants); err != nil {
		return err
	}
	// State may have drifted since creation; re-check before scheduling.
	if err := checkBookingFree(ctx, tx, roomID, participants, start, end, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE meetings SET status=$1, updated_on=$2 WHERE id=$3`,
		domain.MeetingStatusScheduled, time.Now(), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *meetingRepository) UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET status=$1, updated_on=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("meeting")
	}
	return nil
}

const meetingColumns = `id, title, description, start_time, end_time, room_id, creator_id, status, created_on, updated_on`

func scanMeeting(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Meeting, error) {
	m := &domain.Meeting{}
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.RoomID, &m.CreatorID, &m.Status, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func participantIDs(ctx context.Context, q rowQuerier, meetingID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT user_id FROM meeting_participants WHERE meeting_id = $1 ORDER BY user_id`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)
	m, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("meeting")
	}
	if err != nil {
		return nil, err
	}
	m.Participants, err = participantIDs(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *meetingRepository) List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, int32, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Keyword != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.RoomID != "" {
		query += fmt.Sprintf(" AND room_id = $%d", argIdx)
		args = append(args, filter.RoomID)
		argIdx++
	}
	if filter.CreatorID != "" {
		query += fmt.Sprintf(" AND creator_id = $%d", argIdx)
		args = append(args, filter.CreatorID)
		argIdx++
	}
	if filter.StartFrom != nil {
		query += fmt.Sprintf(" AND end_time >= $%d", argIdx)
		args = append(args, *filter.StartFrom)
		argIdx++
	}
	if filter.EndTo != nil {
		query += fmt.Sprintf(" AND start_time <= $%d", argIdx)
		args = append(args, *filter.EndTo)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	query += fmt.Sprintf(" ORDER BY start_time DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, err
		}
		meetings = append(meetings, *m)
	}
	return meetings, count, rows.Err()
}

func (r *meetingRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE status = $1 AND start_time >= $2 AND start_time < $3 ORDER BY start_time`,
		domain.MeetingStatusScheduled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range meetings {
		meetings[i].Participants, err = participantIDs(ctx, r.db, meetings[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return meetings, nil
}

func (r *meetingRepository) MarkInProgress(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET status=$1, updated_on=$2 WHERE status=$3 AND start_time <= $2 AND end_time > $2`,
		domain.MeetingStatusInProgress, now, domain.MeetingStatusScheduled)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *meetingRepository) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET status=$1, updated_on=$2 WHERE status = ANY($3) AND end_time <= $2`,
		domain.MeetingStatusCompleted, now,
		pq.Array([]string{string(domain.MeetingStatusScheduled), string(domain.MeetingStatusInProgress)}))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
