package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/models"
	"github.com/katsunaka/court-booking/repositories"
	"github.com/katsunaka/court-booking/services"
)

// testRouter mounts the booking/participant handlers over a tempdir-backed
// store, without the auth middleware.
func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := db.Open(t.TempDir())
	require.NoError(t, err)

	bookingRepo := repositories.NewCSVBookingRepository(store)
	participantRepo := repositories.NewCSVParticipantRepository(store)
	bookingService := services.NewBookingService(bookingRepo, participantRepo, nil)
	participantService := services.NewParticipantService(participantRepo, nil)

	bookingHandler := NewBookingHandler(bookingService)
	participantHandler := NewParticipantHandler(participantService)

	r := chi.NewRouter()
	r.Get("/bookings", bookingHandler.ListHandler)
	r.Post("/bookings", bookingHandler.CreateHandler)
	r.Get("/bookings/{bookingID}", bookingHandler.GetByIDHandler)
	r.Delete("/bookings/{bookingID}", bookingHandler.DeleteHandler)
	r.Post("/bookings/{bookingID}/participants", participantHandler.AddHandler)
	r.Delete("/bookings/{bookingID}/participants/{name}", participantHandler.RemoveHandler)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateBookingHandler(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings", services.CreateBookingInput{
		Facility:    "Court A",
		CourtNumber: 1,
		Date:        "2024-06-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var response struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Booking.ID)
	assert.Equal(t, "2024-06-01 09:00", response.Booking.StartTime)
	assert.Equal(t, "2024-06-01 10:00", response.Booking.EndTime)
}

func TestCreateBookingHandlerValidationError(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings", services.CreateBookingInput{
		Facility:    "",
		CourtNumber: 1,
		Date:        "2024-06-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "facility")
}

func TestListBookingsHandlerNestsParticipants(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings", services.CreateBookingInput{
		Facility: "Court A", CourtNumber: 1, Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/bookings/1/participants", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/bookings", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Bookings, 1)
	require.Len(t, response.Bookings[0].Participants, 1)
	assert.Equal(t, "Alice", response.Bookings[0].Participants[0].Name)
}

func TestGetBookingHandlerNotFound(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/bookings/7", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteBookingHandlerIsIdempotent(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings", services.CreateBookingInput{
		Facility: "Court A", CourtNumber: 1, Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/bookings/1", nil).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, "/bookings/1", nil).Code)
}

func TestRemoveParticipantHandlerEscapedName(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings/1/participants", map[string]string{"name": "山田 太郎"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodDelete, "/bookings/1/participants/%E5%B1%B1%E7%94%B0%20%E5%A4%AA%E9%83%8E", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/bookings", nil)
	assert.NotContains(t, rr.Body.String(), "山田")
}

func TestAddParticipantHandlerEmptyName(t *testing.T) {
	router := testRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/bookings/1/participants", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginHandler(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	authService := services.NewAuthService("admin", "secret", repositories.NewFileSessionRepository(sessionPath))
	handler := NewAuthHandler(authService, "test-secret")

	r := chi.NewRouter()
	r.Post("/auth/login", handler.Login)

	t.Run("correct credentials return a token", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "secret"})
		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.NotEmpty(t, response["token"])
		assert.True(t, authService.IsAuthenticated())
	})

	t.Run("wrong credentials are rejected", func(t *testing.T) {
		require.NoError(t, authService.Logout())

		rr := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, authService.IsAuthenticated())
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
