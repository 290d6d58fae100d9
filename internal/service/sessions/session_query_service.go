package sessions

import (
	"context"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/repository"
)

// SessionQueryUseCase is the read-only side: projections for the session
// list and booking tables. It never mutates capacity.
type SessionQueryUseCase interface {
	List(ctx context.Context) ([]domain.SessionView, error)
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	ListBookings(ctx context.Context) ([]domain.BookingView, error)
	ListSessionBookings(ctx context.Context, sessionID int64) ([]domain.Booking, error)
	ListBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

type Cache interface {
	GetSessions(ctx context.Context) ([]domain.SessionView, error)
	SetSessions(ctx context.Context, views []domain.SessionView) error
}

type SessionQueryService struct {
	sessions repository.SessionRepository
	bookings repository.BookingRepository
	cache    Cache
}

func NewSessionQueryService(sessions repository.SessionRepository, bookings repository.BookingRepository, cache Cache) *SessionQueryService {
	return &SessionQueryService{sessions: sessions, bookings: bookings, cache: cache}
}

func (s *SessionQueryService) List(ctx context.Context) ([]domain.SessionView, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSessions(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	views, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSessions(ctx, views)
	}
	return views, nil
}

func (s *SessionQueryService) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *SessionQueryService) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	return s.bookings.ListAll(ctx)
}

func (s *SessionQueryService) ListSessionBookings(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.bookings.ListBySession(ctx, sessionID)
}

func (s *SessionQueryService) ListBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

var _ SessionQueryUseCase = (*SessionQueryService)(nil)
