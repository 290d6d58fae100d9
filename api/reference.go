package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/tablebook/internal/repository"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the static lookup data the session and booking
// forms are built from.
type ReferenceHandler struct {
	timeSlots   repository.TimeSlotRepository
	restaurants repository.RestaurantRepository
}

func NewReferenceHandler(timeSlots repository.TimeSlotRepository, restaurants repository.RestaurantRepository) *ReferenceHandler {
	return &ReferenceHandler{timeSlots: timeSlots, restaurants: restaurants}
}

func (h *ReferenceHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("/time-slots", h.listTimeSlots)
	public.GET("/restaurants", h.listRestaurants)
	public.GET("/restaurants/:id", h.getRestaurant)
	admin.GET("/my-restaurant", h.myRestaurant)
}

func (h *ReferenceHandler) listTimeSlots(c *gin.Context) {
	slots, err := h.timeSlots.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *ReferenceHandler) listRestaurants(c *gin.Context) {
	restaurants, err := h.restaurants.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *ReferenceHandler) myRestaurant(c *gin.Context) {
	restaurant, err := h.restaurants.GetByOwner(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *ReferenceHandler) getRestaurant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "code": "bad_request"})
		return
	}
	restaurant, err := h.restaurants.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}
