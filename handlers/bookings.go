package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
)

func (h *Handler) CreateBooking(c *gin.Context) {
	var input models.NewBooking
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	booking, err := models.CreateBooking(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateBooking", err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	booking, err := models.GetBooking(c.Request.Context(), h.DB, id)
	if err != nil {
		h.respondError(c, "GetBooking", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) ListBookings(c *gin.Context) {
	var barberId *int
	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			h.respondError(c, "ListBookings", utils.NewValidationError("invalid barber id: %s", s))
			return
		}
		barberId = &id
	}
	var status *models.BookingStatus
	if s := c.Query("status"); s != "" {
		st := models.BookingStatus(s)
		if !st.IsValid() {
			h.respondError(c, "ListBookings", utils.NewValidationError("invalid booking status: %s", s))
			return
		}
		status = &st
	}
	bookings, err := models.ListBookings(c.Request.Context(), h.DB, barberId, status)
	if err != nil {
		h.respondError(c, "ListBookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type bookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	var input bookingStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	booking, err := models.UpdateBookingStatus(c.Request.Context(), h.DB, id, input.Status)
	if err != nil {
		h.respondError(c, "UpdateBookingStatus", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
