package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katsunaka/court-booking/models"
	"github.com/katsunaka/court-booking/repositories"
)

// Live event types pushed to connected clients after a mutation.
const (
	EventBookingCreated      = "BOOKING_CREATED"
	EventBookingDeleted      = "BOOKING_DELETED"
	EventParticipantsChanged = "PARTICIPANTS_CHANGED"
)

// BookingNotifier receives a notification after every successful mutation so
// open UIs can re-render from freshly loaded data. A nil notifier is valid.
type BookingNotifier interface {
	NotifyBookingsChanged(eventType string, bookingID int)
}

type CreateBookingInput struct {
	Facility    string `json:"facility"`
	CourtNumber int    `json:"court_number"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// BookingService инкапсулирует бизнес-логику бронирований.
type BookingService struct {
	bookingRepo     repositories.BookingRepository
	participantRepo repositories.ParticipantRepository
	notifier        BookingNotifier
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	participantRepo repositories.ParticipantRepository,
	notifier BookingNotifier,
) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		participantRepo: participantRepo,
		notifier:        notifier,
	}
}

// ListBookings returns all bookings in table (insertion) order, each carrying
// its participants.
func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byBooking := make(map[int][]models.Participant, len(bookings))
	for _, p := range participants {
		byBooking[p.BookingID] = append(byBooking[p.BookingID], p)
	}
	for i := range bookings {
		bookings[i].Participants = byBooking[bookings[i].ID]
	}
	return bookings, nil
}

// GetBooking returns a single booking with its participants.
func (s *BookingService) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	participants, err := s.participantRepo.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Participants = participants
	return booking, nil
}

// CreateBooking combines the picked date with the two clock times and
// appends the new record. Overlapping bookings on the same court are allowed,
// and the end time is not required to come after the start time.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	facility := strings.TrimSpace(input.Facility)
	if facility == "" {
		return nil, ErrFacilityRequired
	}
	if input.CourtNumber <= 0 {
		return nil, ErrCourtNumberInvalid
	}

	date, err := time.Parse(models.DateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, input.Date)
	}
	start, err := combine(date, input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := combine(date, input.EndTime)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Facility:    facility,
		CourtNumber: input.CourtNumber,
		StartTime:   start.Format(models.TimeLayout),
		EndTime:     end.Format(models.TimeLayout),
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyBookingsChanged(EventBookingCreated, booking.ID)
	}
	return booking, nil
}

// DeleteBooking removes the booking and cascades to its participants.
// Deleting an unknown id is a silent no-op.
func (s *BookingService) DeleteBooking(ctx context.Context, id int) error {
	removed, err := s.bookingRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.participantRepo.DeleteByBooking(ctx, id); err != nil {
		return err
	}

	if removed > 0 && s.notifier != nil {
		s.notifier.NotifyBookingsChanged(EventBookingDeleted, id)
	}
	return nil
}

// combine merges a calendar date with a "HH:MM" clock time.
func combine(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(models.ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
