package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TimeSlotRepository interface {
	List(ctx context.Context) ([]domain.TimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

type PGTimeSlotRepository struct {
	db *pgxpool.Pool
}

func NewTimeSlotRepository(db *pgxpool.Pool) TimeSlotRepository {
	return &PGTimeSlotRepository{db: db}
}

func (r *PGTimeSlotRepository) List(ctx context.Context) ([]domain.TimeSlot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, slot_name, created_at FROM time_slots ORDER BY id`)
	if err != nil {
		return nil, unavailable("list time slots", err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var t domain.TimeSlot
		if err := rows.Scan(&t.ID, &t.SlotName, &t.CreatedAt); err != nil {
			return nil, unavailable("scan time slot", err)
		}
		slots = append(slots, t)
	}
	return slots, rows.Err()
}

func (r *PGTimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	row := r.db.QueryRow(ctx, `SELECT id, slot_name, created_at FROM time_slots WHERE id=$1`, id)
	var t domain.TimeSlot
	if err := row.Scan(&t.ID, &t.SlotName, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTimeSlotNotFound
		}
		return nil, unavailable("get time slot", err)
	}
	return &t, nil
}

var _ TimeSlotRepository = (*PGTimeSlotRepository)(nil)
