package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/katsunaka/court-booking/services"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(ps *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: ps,
	}
}

// AddHandler godoc
// @Summary Add a participant to a booking
// @Tags participants
// @Description The booking id is not checked for existence; duplicate names are allowed.
// @Accept json
// @Produce json
// @Param bookingID path int true "Booking ID"
// @Success 201 {object} map[string]interface{} "participant"
// @Failure 400 {object} map[string]string "Empty name"
// @Security BearerAuth
// @Router /bookings/{bookingID}/participants [post]
func (h *ParticipantHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := getIDFromURL(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.AddParticipant(r.Context(), bookingID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveHandler godoc
// @Summary Remove a participant from a booking
// @Tags participants
// @Description Removes every participant of the booking with exactly that name; no match is a no-op.
// @Param bookingID path int true "Booking ID"
// @Param name path string true "Participant name"
// @Success 204 "Removed (or nothing matched)"
// @Security BearerAuth
// @Router /bookings/{bookingID}/participants/{name} [delete]
func (h *ParticipantHandler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := getIDFromURL(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Names travel URL-encoded in the path.
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		badRequestResponse(w, r, services.ErrParticipantNameRequired)
		return
	}

	if err := h.participantService.RemoveParticipant(r.Context(), bookingID, name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
