package handlers

import (
	"net/http"

	"github.com/katsunaka/court-booking/services"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bs *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bs,
	}
}

// ListHandler godoc
// @Summary List all bookings with their participants
// @Tags bookings
// @Produce json
// @Success 200 {object} map[string]interface{} "bookings"
// @Failure 401 {object} map[string]string "Not logged in"
// @Security BearerAuth
// @Router /bookings [get]
func (h *BookingHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.ListBookings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bookings": bookings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler godoc
// @Summary Get one booking with its participants
// @Tags bookings
// @Produce json
// @Param bookingID path int true "Booking ID"
// @Success 200 {object} map[string]interface{} "booking"
// @Failure 404 {object} map[string]string "Unknown booking"
// @Security BearerAuth
// @Router /bookings/{bookingID} [get]
func (h *BookingHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler godoc
// @Summary Create a booking
// @Tags bookings
// @Description The date is picked once; both clock times are combined with it.
// @Accept json
// @Produce json
// @Param body body services.CreateBookingInput true "New booking"
// @Success 201 {object} map[string]interface{} "booking"
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bookings [post]
func (h *BookingHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBookingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler godoc
// @Summary Delete a booking and its participants
// @Tags bookings
// @Description Deleting an unknown id is a no-op, not an error.
// @Param bookingID path int true "Booking ID"
// @Success 204 "Deleted (or nothing to delete)"
// @Security BearerAuth
// @Router /bookings/{bookingID} [delete]
func (h *BookingHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bookingService.DeleteBooking(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
