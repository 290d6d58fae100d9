package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReservationUseCase is a mock implementation of reservation.ReservationUseCase
type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) CreateBooking(ctx context.Context, input reservation.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) CancelBooking(ctx context.Context, bookingID int64, requesterEmail string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, requesterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) CreateSession(ctx context.Context, ownerID int64, input reservation.CreateSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockReservationUseCase) UpdateSession(ctx context.Context, sessionID, ownerID int64, input reservation.UpdateSessionInput) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockReservationUseCase) DeleteSession(ctx context.Context, sessionID, ownerID int64) error {
	args := m.Called(ctx, sessionID, ownerID)
	return args.Error(0)
}

// MockSessionQueryUseCase is a mock implementation of sessions.SessionQueryUseCase
type MockSessionQueryUseCase struct {
	mock.Mock
}

func (m *MockSessionQueryUseCase) List(ctx context.Context) ([]domain.SessionView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SessionView), args.Error(1)
}

func (m *MockSessionQueryUseCase) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionQueryUseCase) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockSessionQueryUseCase) ListSessionBookings(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockSessionQueryUseCase) ListBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockEngine := &MockReservationUseCase{}
	handler := NewBookingHandler(mockEngine, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]any{
		"session_id":       int64(1),
		"name":             "Alice",
		"email":            "alice@example.com",
		"number_of_guests": 2,
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	booking := &domain.Booking{
		ID:             1,
		SessionID:      1,
		Reference:      "ref-123",
		GuestName:      "Alice",
		GuestEmail:     "alice@example.com",
		NumberOfGuests: 2,
		Status:         domain.BookingStatusConfirmed,
	}

	mockEngine.On("CreateBooking", c.Request.Context(), reservation.CreateBookingInput{
		SessionID:      1,
		GuestName:      "Alice",
		GuestEmail:     "alice@example.com",
		NumberOfGuests: 2,
	}).Return(booking, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string         `json:"message"`
		Booking domain.Booking `json:"booking"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Alice booked successfully", response.Message)
	assert.Equal(t, "ref-123", response.Booking.Reference)
	assert.Equal(t, domain.BookingStatusConfirmed, response.Booking.Status)

	mockEngine.AssertExpectations(t)
}

func TestBookingHandler_create_invalidPhone(t *testing.T) {
	mockEngine := &MockReservationUseCase{}
	handler := NewBookingHandler(mockEngine, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]any{
		"session_id":       int64(1),
		"name":             "Alice",
		"email":            "alice@example.com",
		"phone":            "1234567890",
		"number_of_guests": 2,
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockEngine.AssertNotCalled(t, "CreateBooking")
}

func TestBookingHandler_create_capacityExceeded(t *testing.T) {
	mockEngine := &MockReservationUseCase{}
	handler := NewBookingHandler(mockEngine, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]any{
		"session_id":       int64(1),
		"name":             "Alice",
		"email":            "alice@example.com",
		"number_of_guests": 8,
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockEngine.On("CreateBooking", c.Request.Context(), mock.AnythingOfType("reservation.CreateBookingInput")).
		Return(nil, domain.ErrCapacityExceeded)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "capacity_exceeded", response["code"])
}

func TestBookingHandler_cancel(t *testing.T) {
	mockEngine := &MockReservationUseCase{}
	handler := NewBookingHandler(mockEngine, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "alice@example.com"}, {Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("DELETE", "/api/bookings/alice@example.com/5", nil)

	cancelled := &domain.Booking{
		ID:         5,
		SessionID:  1,
		GuestEmail: "alice@example.com",
		Status:     domain.BookingStatusCancelled,
	}

	mockEngine.On("CancelBooking", c.Request.Context(), int64(5), "alice@example.com").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockEngine.AssertExpectations(t)
}

func TestBookingHandler_cancel_notOwner(t *testing.T) {
	mockEngine := &MockReservationUseCase{}
	handler := NewBookingHandler(mockEngine, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "mallory@example.com"}, {Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("DELETE", "/api/bookings/mallory@example.com/5", nil)

	mockEngine.On("CancelBooking", c.Request.Context(), int64(5), "mallory@example.com").
		Return(nil, domain.ErrNotOwner)

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_listByEmail(t *testing.T) {
	mockQueries := &MockSessionQueryUseCase{}
	handler := NewBookingHandler(nil, mockQueries)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "alice@example.com"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/user/alice@example.com", nil)

	bookings := []domain.Booking{{ID: 1, GuestEmail: "alice@example.com", Status: domain.BookingStatusConfirmed}}
	mockQueries.On("ListBookingsByEmail", c.Request.Context(), "alice@example.com").Return(bookings, nil)

	handler.listByEmail(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	mockQueries.AssertExpectations(t)
}

func TestValidPhone(t *testing.T) {
	assert.True(t, validPhone("0123456789"))
	assert.False(t, validPhone("1234567890"))
	assert.False(t, validPhone("012345678"))
	assert.False(t, validPhone("01234567890"))
	assert.False(t, validPhone("012345678a"))
}
