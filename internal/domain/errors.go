package domain

import "errors"

// Business rejections are final answers, never retried. Only ErrUnavailable
// and ErrEngineBusy are transient from the caller's point of view.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrTimeSlotNotFound   = errors.New("time slot not found")
	ErrCapacityExceeded   = errors.New("not enough slots")
	ErrInvalidCapacity    = errors.New("max guests cannot drop below already reserved guests")
	ErrInvalidGuests      = errors.New("number of guests must be at least 1")
	ErrNotOwner           = errors.New("not the owner of this resource")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrEngineBusy         = errors.New("session is busy, try again")
	ErrUnavailable        = errors.New("storage unavailable")
)
