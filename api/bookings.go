package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/tablebook/internal/service/reservation"
	"github.com/Domenick1991/tablebook/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	engine  reservation.ReservationUseCase
	queries sessions.SessionQueryUseCase
}

type createBookingRequest struct {
	SessionID      int64   `json:"session_id" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	Phone          *string `json:"phone"`
	NumberOfGuests int     `json:"number_of_guests" binding:"required"`
	Notes          string  `json:"notes"`
}

func NewBookingHandler(engine reservation.ReservationUseCase, queries sessions.SessionQueryUseCase) *BookingHandler {
	return &BookingHandler{engine: engine, queries: queries}
}

func (h *BookingHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/bookings", h.create)
	public.GET("/bookings/user/:email", h.listByEmail)
	public.DELETE("/bookings/:email/:id", h.cancel)
	admin.GET("/bookings", h.listAll)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "bad_request"})
		return
	}

	phone := ""
	if req.Phone != nil {
		phone = *req.Phone
	}
	if phone != "" && !validPhone(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone must be 10 digits and start with 0", "code": "bad_request"})
		return
	}

	booking, err := h.engine.CreateBooking(c.Request.Context(), reservation.CreateBookingInput{
		SessionID:      req.SessionID,
		GuestName:      req.Name,
		GuestEmail:     req.Email,
		GuestPhone:     phone,
		NumberOfGuests: req.NumberOfGuests,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": req.Name + " booked successfully",
		"booking": booking,
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	email := c.Param("email")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "code": "bad_request"})
		return
	}

	booking, err := h.engine.CancelBooking(c.Request.Context(), id, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled, seats available again",
		"booking": booking,
	})
}

func (h *BookingHandler) listByEmail(c *gin.Context) {
	bookings, err := h.queries.ListBookingsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	views, err := h.queries.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func validPhone(phone string) bool {
	if len(phone) != 10 || phone[0] != '0' {
		return false
	}
	for _, ch := range phone {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
