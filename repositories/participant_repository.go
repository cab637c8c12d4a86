package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/models"
)

type ParticipantRepository interface {
	List(ctx context.Context) ([]models.Participant, error)
	ListByBooking(ctx context.Context, bookingID int) ([]models.Participant, error)
	// Create appends the participant row. The referenced booking is not
	// checked for existence; the table carries no referential integrity.
	Create(ctx context.Context, p *models.Participant) error
	// DeleteByBookingAndName removes every row matching the pair exactly
	// and reports how many were removed. Zero is not an error.
	DeleteByBookingAndName(ctx context.Context, bookingID int, name string) (int, error)
	// DeleteByBooking removes all participants of a booking (cascade).
	DeleteByBooking(ctx context.Context, bookingID int) (int, error)
}

type csvParticipantRepository struct {
	store *db.Store
}

func NewCSVParticipantRepository(store *db.Store) ParticipantRepository {
	return &csvParticipantRepository{store: store}
}

func (r *csvParticipantRepository) List(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.store.Load(db.ParticipantsFile, db.ParticipantHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	participants := make([]models.Participant, 0, len(rows))
	for _, row := range rows {
		p, err := scanParticipant(row)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (r *csvParticipantRepository) ListByBooking(ctx context.Context, bookingID int) ([]models.Participant, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	participants := make([]models.Participant, 0)
	for _, p := range all {
		if p.BookingID == bookingID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

func (r *csvParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	err := r.store.Update(db.ParticipantsFile, db.ParticipantHeader, func(rows [][]string) ([][]string, error) {
		return append(rows, participantRow(*p)), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *csvParticipantRepository) DeleteByBookingAndName(ctx context.Context, bookingID int, name string) (int, error) {
	return r.deleteWhere(fmt.Sprintf("booking %d name %q", bookingID, name), func(p models.Participant) bool {
		return p.BookingID == bookingID && p.Name == name
	})
}

func (r *csvParticipantRepository) DeleteByBooking(ctx context.Context, bookingID int) (int, error) {
	return r.deleteWhere(fmt.Sprintf("booking %d", bookingID), func(p models.Participant) bool {
		return p.BookingID == bookingID
	})
}

func (r *csvParticipantRepository) deleteWhere(desc string, match func(models.Participant) bool) (int, error) {
	removed := 0
	err := r.store.Update(db.ParticipantsFile, db.ParticipantHeader, func(rows [][]string) ([][]string, error) {
		kept := rows[:0]
		for _, row := range rows {
			p, err := scanParticipant(row)
			if err != nil {
				return nil, err
			}
			if match(p) {
				removed++
				continue
			}
			kept = append(kept, row)
		}
		return kept, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete participants (%s): %w", desc, err)
	}
	return removed, nil
}

func scanParticipant(row []string) (models.Participant, error) {
	bookingID, err := strconv.Atoi(row[0])
	if err != nil {
		return models.Participant{}, fmt.Errorf("bad participant booking_id %q: %w", row[0], db.ErrMalformedTable)
	}
	return models.Participant{
		BookingID: bookingID,
		Name:      row[1],
		Contact:   row[2],
	}, nil
}

func participantRow(p models.Participant) []string {
	return []string{
		strconv.Itoa(p.BookingID),
		p.Name,
		p.Contact,
	}
}
