package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
	ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	CreateConfirmed(ctx context.Context, booking *domain.Booking) error
	CancelConfirmed(ctx context.Context, id int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, session_id, reference, guest_name, guest_email, guest_phone, number_of_guests, notes, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.SessionID, &b.Reference, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.NumberOfGuests, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, unavailable("get booking", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.session_id, b.reference, b.guest_name, b.guest_email, b.guest_phone,
			b.number_of_guests, b.notes, b.status, b.created_at, b.updated_at, s.name, rest.name
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		JOIN restaurants rest ON rest.id = s.restaurant_id
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, unavailable("list bookings", err)
	}
	defer rows.Close()

	views := make([]domain.BookingView, 0)
	for rows.Next() {
		var v domain.BookingView
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Reference, &v.GuestName, &v.GuestEmail, &v.GuestPhone,
			&v.NumberOfGuests, &v.Notes, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.SessionName, &v.RestaurantName); err != nil {
			return nil, unavailable("scan booking", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PGBookingRepository) ListBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE session_id=$1 ORDER BY created_at DESC`, sessionID)
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE guest_email=$1 ORDER BY created_at DESC`, email)
}

func (r *PGBookingRepository) list(ctx context.Context, query string, arg any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, unavailable("list bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, unavailable("scan booking", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateConfirmed reserves capacity and persists the booking as one unit.
// The guarded UPDATE keeps reserved_guests <= max_guests even if a caller
// ever reaches this without going through the engine's serialized section.
func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return unavailable("begin create booking", err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE sessions SET reserved_guests = reserved_guests + $2, updated_at = now()
		WHERE id=$1 AND reserved_guests + $2 <= max_guests`,
		booking.SessionID, booking.NumberOfGuests)
	if err != nil {
		return unavailable("reserve guests", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrCapacityExceeded
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (session_id, reference, guest_name, guest_email, guest_phone, number_of_guests, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.SessionID, booking.Reference, booking.GuestName, booking.GuestEmail, booking.GuestPhone,
		booking.NumberOfGuests, booking.Notes, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return unavailable("insert booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return unavailable("commit create booking", err)
	}
	return nil
}

// CancelConfirmed flips a confirmed booking to cancelled and releases its
// guests back to the session in one transaction. The status predicate makes
// the release happen at most once per booking.
func (r *PGBookingRepository) CancelConfirmed(ctx context.Context, id int64) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, unavailable("begin cancel booking", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now()
		WHERE id=$1 AND status=$3
		RETURNING `+bookingColumns,
		id, domain.BookingStatusCancelled, domain.BookingStatusConfirmed)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyCancelled
		}
		return nil, unavailable("cancel booking", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE sessions SET reserved_guests = reserved_guests - $2, updated_at = now() WHERE id=$1`,
		b.SessionID, b.NumberOfGuests); err != nil {
		return nil, unavailable("release guests", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, unavailable("commit cancel booking", err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
