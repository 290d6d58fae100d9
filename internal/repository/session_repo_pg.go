package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository interface {
	List(ctx context.Context) ([]domain.SessionView, error)
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	Create(ctx context.Context, session *domain.Session) error
	Update(ctx context.Context, session *domain.Session) error
	DeleteCascade(ctx context.Context, id int64) (int64, error)
}

type PGSessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) SessionRepository {
	return &PGSessionRepository{db: db}
}

const dateLayout = "2006-01-02"

func (r *PGSessionRepository) List(ctx context.Context) ([]domain.SessionView, error) {
	rows, err := r.db.Query(ctx, `SELECT s.id, s.restaurant_id, s.time_slot_id, s.name, s.date, s.max_guests, s.reserved_guests,
			t.id, t.slot_name, t.created_at, rest.name
		FROM sessions s
		JOIN time_slots t ON t.id = s.time_slot_id
		JOIN restaurants rest ON rest.id = s.restaurant_id
		ORDER BY s.date, t.slot_name, s.id`)
	if err != nil {
		return nil, unavailable("list sessions", err)
	}
	defer rows.Close()

	views := make([]domain.SessionView, 0)
	for rows.Next() {
		var v domain.SessionView
		var date time.Time
		if err := rows.Scan(&v.ID, &v.RestaurantID, &v.TimeSlotID, &v.Name, &date, &v.MaxGuests, &v.ReservedGuests,
			&v.TimeSlot.ID, &v.TimeSlot.SlotName, &v.TimeSlot.CreatedAt, &v.RestaurantName); err != nil {
			return nil, unavailable("scan session", err)
		}
		v.Date = date.Format(dateLayout)
		v.AvailableSlots = v.MaxGuests - v.ReservedGuests
		v.IsAvailable = v.AvailableSlots > 0
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list sessions", err)
	}
	return views, nil
}

func (r *PGSessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	row := r.db.QueryRow(ctx, `SELECT id, restaurant_id, time_slot_id, name, date, max_guests, reserved_guests, created_at, updated_at FROM sessions WHERE id=$1`, id)
	var s domain.Session
	var date time.Time
	if err := row.Scan(&s.ID, &s.RestaurantID, &s.TimeSlotID, &s.Name, &date, &s.MaxGuests, &s.ReservedGuests, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, unavailable("get session", err)
	}
	s.Date = date.Format(dateLayout)
	return &s, nil
}

func (r *PGSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	err := r.db.QueryRow(ctx, `INSERT INTO sessions (restaurant_id, time_slot_id, name, date, max_guests, reserved_guests)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id, created_at, updated_at`,
		session.RestaurantID, session.TimeSlotID, session.Name, session.Date, session.MaxGuests).
		Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return unavailable("create session", err)
	}
	session.ReservedGuests = 0
	return nil
}

// Update refuses to shrink max_guests below reserved_guests at the storage
// level; the engine performs the same check inside the per-session section.
func (r *PGSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	res, err := r.db.Exec(ctx, `UPDATE sessions SET time_slot_id=$2, name=$3, date=$4, max_guests=$5, updated_at=now()
		WHERE id=$1 AND reserved_guests <= $5`,
		session.ID, session.TimeSlotID, session.Name, session.Date, session.MaxGuests)
	if err != nil {
		return unavailable("update session", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrInvalidCapacity
	}
	return nil
}

// DeleteCascade cancels every confirmed booking for the session and removes
// the session row in one transaction. Returns the number of bookings cancelled.
func (r *PGSessionRepository) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, unavailable("begin delete session", err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE bookings SET status=$2, updated_at=now() WHERE session_id=$1 AND status=$3`,
		id, domain.BookingStatusCancelled, domain.BookingStatusConfirmed)
	if err != nil {
		return 0, unavailable("cancel session bookings", err)
	}
	cancelled := res.RowsAffected()

	del, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return 0, unavailable("delete session", err)
	}
	if del.RowsAffected() == 0 {
		return 0, domain.ErrSessionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, unavailable("commit delete session", err)
	}
	return cancelled, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, op, err)
}

var _ SessionRepository = (*PGSessionRepository)(nil)
