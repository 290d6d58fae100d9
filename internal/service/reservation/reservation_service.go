package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/kafka"
	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationUseCase is the only writer of sessions and bookings. Every
// capacity decision happens inside its serialized per-session section.
type ReservationUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, requesterEmail string) (*domain.Booking, error)
	CreateSession(ctx context.Context, ownerID int64, input CreateSessionInput) (*domain.Session, error)
	UpdateSession(ctx context.Context, sessionID, ownerID int64, input UpdateSessionInput) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID, ownerID int64) error
}

type Cache interface {
	InvalidateSessions(ctx context.Context) error
	AcquireSessionLock(ctx context.Context, sessionID int64, ttl time.Duration) (bool, error)
	ReleaseSessionLock(ctx context.Context, sessionID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Broadcaster interface {
	Emit(event domain.Event)
}

type ReservationService struct {
	sessions    repository.SessionRepository
	bookings    repository.BookingRepository
	restaurants repository.RestaurantRepository
	timeSlots   repository.TimeSlotRepository

	cache       Cache
	producer    Producer
	broadcaster Broadcaster
	logger      *zap.Logger

	eventsTopic        string
	notificationsTopic string

	locks          *sessionLocks
	lockWait       time.Duration
	sessionLockTTL time.Duration
}

type CreateBookingInput struct {
	SessionID      int64
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	NumberOfGuests int
	Notes          string
}

type CreateSessionInput struct {
	RestaurantID int64
	TimeSlotID   int64
	Name         string
	Date         string
	MaxGuests    int
}

type UpdateSessionInput struct {
	TimeSlotID int64
	Name       string
	Date       string
	MaxGuests  int
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func WithLockWait(wait time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if wait > 0 {
			s.lockWait = wait
		}
	}
}

func WithSessionLockTTL(ttl time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if ttl > 0 {
			s.sessionLockTTL = ttl
		}
	}
}

const (
	defaultLockWait       = 3 * time.Second
	defaultSessionLockTTL = 10 * time.Second
)

func NewReservationService(
	sessions repository.SessionRepository,
	bookings repository.BookingRepository,
	restaurants repository.RestaurantRepository,
	timeSlots repository.TimeSlotRepository,
	cache Cache,
	producer Producer,
	broadcaster Broadcaster,
	logger *zap.Logger,
	eventsTopic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		sessions:       sessions,
		bookings:       bookings,
		restaurants:    restaurants,
		timeSlots:      timeSlots,
		cache:          cache,
		producer:       producer,
		broadcaster:    broadcaster,
		logger:         logger,
		eventsTopic:    eventsTopic,
		locks:          newSessionLocks(),
		lockWait:       defaultLockWait,
		sessionLockTTL: defaultSessionLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *ReservationService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.NumberOfGuests < 1 {
		return nil, domain.ErrInvalidGuests
	}
	if input.GuestName == "" {
		return nil, errors.New("name is required")
	}
	if input.GuestEmail == "" {
		return nil, errors.New("email is required")
	}

	sharedLock, err := s.enterSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer s.leaveSession(input.SessionID, sharedLock)

	session, err := s.sessions.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if input.NumberOfGuests > session.AvailableSlots() {
		return nil, domain.ErrCapacityExceeded
	}

	booking := &domain.Booking{
		SessionID:      input.SessionID,
		Reference:      uuid.NewString(),
		GuestName:      input.GuestName,
		GuestEmail:     input.GuestEmail,
		GuestPhone:     input.GuestPhone,
		NumberOfGuests: input.NumberOfGuests,
		Notes:          input.Notes,
	}
	if err := s.bookings.CreateConfirmed(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidateSessions(ctx)
	s.publish(ctx, "booking_created", booking, session.Name)
	return booking, nil
}

func (s *ReservationService) CancelBooking(ctx context.Context, bookingID int64, requesterEmail string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(current.GuestEmail, requesterEmail) {
		return nil, domain.ErrNotOwner
	}

	sharedLock, err := s.enterSession(ctx, current.SessionID)
	if err != nil {
		return nil, err
	}
	defer s.leaveSession(current.SessionID, sharedLock)

	// Status predicate in the ledger makes the capacity release happen at
	// most once even if the booking was cancelled between the read above
	// and entering the critical section.
	cancelled, err := s.bookings.CancelConfirmed(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, cancelled.SessionID)
	sessionName := ""
	if err == nil {
		sessionName = session.Name
	}

	s.broadcaster.Emit(domain.Event{
		Type:        domain.EventTypeSessionCancelled,
		SessionID:   cancelled.SessionID,
		SessionName: sessionName,
		UserName:    cancelled.GuestName,
		Timestamp:   time.Now().UTC(),
	})

	s.invalidateSessions(ctx)
	s.publish(ctx, "booking_cancelled", cancelled, sessionName)
	return cancelled, nil
}

func (s *ReservationService) CreateSession(ctx context.Context, ownerID int64, input CreateSessionInput) (*domain.Session, error) {
	if input.MaxGuests < 1 {
		return nil, errors.New("max guests must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	restaurant, err := s.restaurants.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	if _, err := s.timeSlots.GetByID(ctx, input.TimeSlotID); err != nil {
		return nil, err
	}

	session := &domain.Session{
		RestaurantID: input.RestaurantID,
		TimeSlotID:   input.TimeSlotID,
		Name:         input.Name,
		Date:         input.Date,
		MaxGuests:    input.MaxGuests,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.invalidateSessions(ctx)
	return session, nil
}

func (s *ReservationService) UpdateSession(ctx context.Context, sessionID, ownerID int64, input UpdateSessionInput) (*domain.Session, error) {
	if input.MaxGuests < 1 {
		return nil, errors.New("max guests must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	sharedLock, err := s.enterSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer s.leaveSession(sessionID, sharedLock)

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, session, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.timeSlots.GetByID(ctx, input.TimeSlotID); err != nil {
		return nil, err
	}
	if input.MaxGuests < session.ReservedGuests {
		return nil, domain.ErrInvalidCapacity
	}

	session.TimeSlotID = input.TimeSlotID
	session.Name = input.Name
	session.Date = input.Date
	session.MaxGuests = input.MaxGuests
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.invalidateSessions(ctx)
	return session, nil
}

func (s *ReservationService) DeleteSession(ctx context.Context, sessionID, ownerID int64) error {
	sharedLock, err := s.enterSession(ctx, sessionID)
	if err != nil {
		return err
	}
	defer s.leaveSession(sessionID, sharedLock)

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, session, ownerID); err != nil {
		return err
	}

	cancelled, err := s.sessions.DeleteCascade(ctx, sessionID)
	if err != nil {
		return err
	}
	if cancelled > 0 {
		s.logger.Info("cascade-cancelled bookings on session delete",
			zap.Int64("session_id", sessionID),
			zap.Int64("bookings", cancelled))
	}

	s.broadcaster.Emit(domain.Event{
		Type:        domain.EventTypeSessionCancelled,
		SessionID:   sessionID,
		SessionName: session.Name,
		Timestamp:   time.Now().UTC(),
	})

	s.invalidateSessions(ctx)
	s.publishSessionDeleted(ctx, session)
	return nil
}

func (s *ReservationService) requireOwner(ctx context.Context, session *domain.Session, ownerID int64) error {
	restaurant, err := s.restaurants.GetByID(ctx, session.RestaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	return nil
}

// enterSession combines the in-process keyed lock with a best-effort redis
// lock so two instances sharing the store do not interleave on one session.
// The returned flag reports whether the redis lock was actually taken;
// leaveSession must only delete the key in that case, otherwise it could
// break a lock held by another instance.
func (s *ReservationService) enterSession(ctx context.Context, sessionID int64) (bool, error) {
	if err := s.locks.acquire(ctx, sessionID, s.lockWait); err != nil {
		return false, err
	}
	if s.cache == nil {
		return false, nil
	}

	ok, err := s.cache.AcquireSessionLock(ctx, sessionID, s.sessionLockTTL)
	if err != nil {
		s.logger.Warn("session lock via cache failed, proceeding with local lock", zap.Error(err))
		return false, nil
	}
	if !ok {
		s.locks.release(sessionID)
		return false, domain.ErrEngineBusy
	}
	return true, nil
}

func (s *ReservationService) leaveSession(sessionID int64, sharedLock bool) {
	if sharedLock {
		_ = s.cache.ReleaseSessionLock(context.Background(), sessionID)
	}
	s.locks.release(sessionID)
}

func (s *ReservationService) invalidateSessions(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSessions(ctx); err != nil {
		s.logger.Warn("invalidate sessions cache", zap.Error(err))
	}
}

func (s *ReservationService) publish(ctx context.Context, eventType string, booking *domain.Booking, sessionName string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		SessionID:   booking.SessionID,
		SessionName: sessionName,
		Email:       booking.GuestEmail,
		Guests:      booking.NumberOfGuests,
		Status:      string(booking.Status),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.Reference, event); err != nil {
		s.logger.Warn("publish booking event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			s.logger.Warn("publish notification event", zap.String("type", eventType), zap.Error(err))
		}
	}
}

func (s *ReservationService) publishSessionDeleted(ctx context.Context, session *domain.Session) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        "session_deleted",
		SessionID:   session.ID,
		SessionName: session.Name,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, session.Name, event); err != nil {
		s.logger.Warn("publish session event", zap.Error(err))
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
