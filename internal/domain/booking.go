package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking JSON keys follow the shape the booking pages already consume.
type Booking struct {
	ID             int64         `json:"id"`
	SessionID      int64         `json:"session_id"`
	Reference      string        `json:"reference"`
	GuestName      string        `json:"user_name"`
	GuestEmail     string        `json:"user_email"`
	GuestPhone     string        `json:"user_phone"`
	NumberOfGuests int           `json:"number_of_guests"`
	Notes          string        `json:"notes"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BookingView is the admin projection: a booking plus the session and
// restaurant it belongs to, matching what the dashboard table renders.
type BookingView struct {
	Booking
	SessionName    string `json:"session_name"`
	RestaurantName string `json:"restaurant_name"`
}
