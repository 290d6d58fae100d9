package domain

import "time"

type Session struct {
	ID             int64
	RestaurantID   int64
	TimeSlotID     int64
	Name           string
	Date           string
	MaxGuests      int
	ReservedGuests int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailableSlots is derived, never stored.
func (s *Session) AvailableSlots() int {
	return s.MaxGuests - s.ReservedGuests
}

// SessionView is the read projection served to the UI: the session plus
// its computed availability and the reference data the session forms need.
type SessionView struct {
	ID             int64    `json:"id"`
	RestaurantID   int64    `json:"restaurant_id"`
	TimeSlotID     int64    `json:"time_slot_id"`
	Name           string   `json:"name"`
	Date           string   `json:"date"`
	MaxGuests      int      `json:"max_guests"`
	ReservedGuests int      `json:"reserved_guests"`
	AvailableSlots int      `json:"available_slots"`
	IsAvailable    bool     `json:"is_available"`
	TimeSlot       TimeSlot `json:"time_slot"`
	RestaurantName string   `json:"restaurant_name"`
}
