package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/Domenick1991/tablebook/internal/service/reservation"
	"github.com/Domenick1991/tablebook/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	engine  reservation.ReservationUseCase
	queries sessions.SessionQueryUseCase
}

type createSessionRequest struct {
	RestaurantID int64  `json:"restaurant_id" binding:"required"`
	TimeSlotID   int64  `json:"time_slot_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Date         string `json:"date" binding:"required"`
	MaxGuests    int    `json:"max_guests" binding:"required"`
}

type updateSessionRequest struct {
	TimeSlotID int64  `json:"time_slot_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Date       string `json:"date" binding:"required"`
	MaxGuests  int    `json:"max_guests" binding:"required"`
}

type sessionResponse struct {
	ID             int64  `json:"id"`
	RestaurantID   int64  `json:"restaurant_id"`
	TimeSlotID     int64  `json:"time_slot_id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	MaxGuests      int    `json:"max_guests"`
	ReservedGuests int    `json:"reserved_guests"`
	AvailableSlots int    `json:"available_slots"`
}

func NewSessionHandler(engine reservation.ReservationUseCase, queries sessions.SessionQueryUseCase) *SessionHandler {
	return &SessionHandler{engine: engine, queries: queries}
}

func (h *SessionHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/sessions", h.list)
	admin.GET("/sessions/:id/bookings", h.listBookings)
	admin.POST("/sessions", h.create)
	admin.PUT("/sessions/:id", h.update)
	admin.DELETE("/sessions/:id", h.delete)
}

func (h *SessionHandler) list(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *SessionHandler) listBookings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "code": "bad_request"})
		return
	}
	bookings, err := h.queries.ListSessionBookings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *SessionHandler) create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "bad_request"})
		return
	}

	session, err := h.engine.CreateSession(c.Request.Context(), identityFrom(c).UserID, reservation.CreateSessionInput{
		RestaurantID: req.RestaurantID,
		TimeSlotID:   req.TimeSlotID,
		Name:         req.Name,
		Date:         req.Date,
		MaxGuests:    req.MaxGuests,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created successfully",
		"session": toSessionResponse(session),
	})
}

func (h *SessionHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "code": "bad_request"})
		return
	}
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "bad_request"})
		return
	}

	session, err := h.engine.UpdateSession(c.Request.Context(), id, identityFrom(c).UserID, reservation.UpdateSessionInput{
		TimeSlotID: req.TimeSlotID,
		Name:       req.Name,
		Date:       req.Date,
		MaxGuests:  req.MaxGuests,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated successfully",
		"session": toSessionResponse(session),
	})
}

func (h *SessionHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "code": "bad_request"})
		return
	}

	if err := h.engine.DeleteSession(c.Request.Context(), id, identityFrom(c).UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		RestaurantID:   s.RestaurantID,
		TimeSlotID:     s.TimeSlotID,
		Name:           s.Name,
		Date:           s.Date,
		MaxGuests:      s.MaxGuests,
		ReservedGuests: s.ReservedGuests,
		AvailableSlots: s.AvailableSlots(),
	}
}
