package services

import (
	"context"
	"strings"

	"github.com/katsunaka/court-booking/models"
	"github.com/katsunaka/court-booking/repositories"
)

// ParticipantService инкапсулирует бизнес-логику участников бронирований.
type ParticipantService struct {
	participantRepo repositories.ParticipantRepository
	notifier        BookingNotifier
}

func NewParticipantService(participantRepo repositories.ParticipantRepository, notifier BookingNotifier) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		notifier:        notifier,
	}
}

// AddParticipant appends a participant to the booking. The booking id is not
// verified against the bookings table, and duplicate names are allowed.
func (s *ParticipantService) AddParticipant(ctx context.Context, bookingID int, name string) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrParticipantNameRequired
	}

	participant := &models.Participant{
		BookingID: bookingID,
		Name:      name,
		Contact:   "",
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyBookingsChanged(EventParticipantsChanged, bookingID)
	}
	return participant, nil
}

// RemoveParticipant removes every participant of the booking with exactly
// that name. Removing a name that is not there is a silent no-op.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, bookingID int, name string) error {
	removed, err := s.participantRepo.DeleteByBookingAndName(ctx, bookingID, name)
	if err != nil {
		return err
	}

	if removed > 0 && s.notifier != nil {
		s.notifier.NotifyBookingsChanged(EventParticipantsChanged, bookingID)
	}
	return nil
}
