package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meetingroom-backend/internal/domain"
	"meetingroom-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `id, name, code, location, capacity, status, need_approval, created_on, updated_on`

func scanRoom(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Room, error) {
	rm := &domain.Room{}
	err := row.Scan(&rm.ID, &rm.Name, &rm.Code, &rm.Location, &rm.Capacity, &rm.Status, &rm.NeedApproval, &rm.CreatedOn, &rm.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	now := time.Now()
	room.CreatedOn = now
	room.UpdatedOn = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, name, code, location, capacity, status, need_approval, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		room.ID, room.Name, room.Code, room.Location, room.Capacity, room.Status, room.NeedApproval, now, now)
	return err
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("room")
	}
	return room, err
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	room.UpdatedOn = time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET name=$1, code=$2, location=$3, capacity=$4, status=$5, need_approval=$6, updated_on=$7 WHERE id=$8`,
		room.Name, room.Code, room.Location, room.Capacity, room.Status, room.NeedApproval, room.UpdatedOn, room.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("room")
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("room")
	}
	return nil
}

func (r *roomRepository) List(ctx context.Context, filter repository.RoomFilter) ([]domain.Room, int32, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Keyword != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR location ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.MinCapacity > 0 {
		query += fmt.Sprintf(" AND capacity >= $%d", argIdx)
		args = append(args, filter.MinCapacity)
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
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, *rm)
	}
	return rooms, count, rows.Err()
}

func (r *roomRepository) ListAvailable(ctx context.Context, busyIDs []string, minCapacity int32) ([]domain.Room, error) {
	// A nil slice binds SQL NULL and `id = ANY(NULL)` is never true, which
	// would filter out every room on a quiet window. Bind an empty array.
	if busyIDs == nil {
		busyIDs = []string{}
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms
		 WHERE status = $1 AND NOT (id = ANY($2)) AND capacity >= $3
		 ORDER BY capacity ASC`,
		domain.RoomStatusAvailable, pq.Array(busyIDs), minCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *rm)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) FindByNameOrCode(ctx context.Context, name, code, excludeID string) (*domain.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE (name = $1 OR code = $2) AND ($3 = '' OR id <> $3) LIMIT 1`,
		name, code, excludeID)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("room")
	}
	return room, err
}

func (r *roomRepository) CountMeetings(ctx context.Context, roomID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM meetings WHERE room_id = $1`, roomID).Scan(&count)
	return count, err
}
