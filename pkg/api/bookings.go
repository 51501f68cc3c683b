package api

import (
	"net/http"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/serializers"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getBookings(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		return
	}
	page, size := pageParams(c)

	bookings, total, err := h.bookings.ListByUser(c.Request.Context(), user.ID, size, (page-1)*size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(bookings, serializers.NewBookingRepresentation, page, size, total))
}

func (h *Handler) createBooking(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		return
	}

	var in serializers.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	booking, err := in.ToBooking(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	exists, err := h.listings.Exists(c.Request.Context(), booking.ListingID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		writeError(c, apperror.NewNotFound("listing", booking.ListingID.String()))
		return
	}

	if err := h.bookings.Create(c.Request.Context(), booking); err != nil {
		writeError(c, err)
		return
	}
	stored, err := h.bookings.GetByID(c.Request.Context(), booking.BookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializers.NewBookingRepresentation(stored))
}

func (h *Handler) getBooking(c *gin.Context) {
	id, ok := pathUUID(c, "bookingId", "booking")
	if !ok {
		return
	}
	booking, err := h.bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.NewBookingRepresentation(booking))
}

func (h *Handler) updateBooking(c *gin.Context) {
	id, ok := pathUUID(c, "bookingId", "booking")
	if !ok {
		return
	}

	var in serializers.BookingUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	booking, err := h.bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := in.Apply(booking); err != nil {
		writeError(c, err)
		return
	}
	if err := h.bookings.Update(c.Request.Context(), booking); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.NewBookingRepresentation(booking))
}

func (h *Handler) deleteBooking(c *gin.Context) {
	id, ok := pathUUID(c, "bookingId", "booking")
	if !ok {
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
