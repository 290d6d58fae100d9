package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/Domenick1991/tablebook/internal/service/users"
	"github.com/gin-gonic/gin"
)

// The UI shows the error field verbatim, so every business rejection keeps
// its own message and a stable code; only storage faults are collapsed.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusBadRequest, "bad_request"

	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrTimeSlotNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrCapacityExceeded):
		status, code = http.StatusConflict, "capacity_exceeded"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		status, code = http.StatusConflict, "already_cancelled"
	case errors.Is(err, domain.ErrInvalidCapacity):
		status, code = http.StatusUnprocessableEntity, "invalid_capacity"
	case errors.Is(err, domain.ErrInvalidGuests):
		status, code = http.StatusUnprocessableEntity, "invalid_guests"
	case errors.Is(err, domain.ErrNotOwner):
		status, code = http.StatusForbidden, "not_owner"
	case errors.Is(err, domain.ErrEngineBusy):
		status, code = http.StatusServiceUnavailable, "engine_busy"
	case errors.Is(err, domain.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, users.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, users.ErrEmailTaken):
		status, code = http.StatusConflict, "email_taken"
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
