package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	List(ctx context.Context) ([]models.Booking, error)
	FindByID(ctx context.Context, id int) (*models.Booking, error)
	// Create assigns a fresh id to b and appends it to the table.
	Create(ctx context.Context, b *models.Booking) error
	// DeleteByID removes the booking with the given id and reports how many
	// rows were removed. Zero is not an error.
	DeleteByID(ctx context.Context, id int) (int, error)
}

type csvBookingRepository struct {
	store *db.Store
}

func NewCSVBookingRepository(store *db.Store) BookingRepository {
	return &csvBookingRepository{store: store}
}

func (r *csvBookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.store.Load(db.BookingsFile, db.BookingHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	bookings := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := scanBooking(row)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *csvBookingRepository) FindByID(ctx context.Context, id int) (*models.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *csvBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	err := r.store.Update(db.BookingsFile, db.BookingHeader, func(rows [][]string) ([][]string, error) {
		// max(id)+1 instead of count+1, so deleting a booking never makes
		// a later creation collide with a surviving id.
		nextID := 1
		for _, row := range rows {
			existing, err := scanBooking(row)
			if err != nil {
				return nil, err
			}
			if existing.ID >= nextID {
				nextID = existing.ID + 1
			}
		}
		b.ID = nextID
		return append(rows, bookingRow(*b)), nil
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *csvBookingRepository) DeleteByID(ctx context.Context, id int) (int, error) {
	removed := 0
	err := r.store.Update(db.BookingsFile, db.BookingHeader, func(rows [][]string) ([][]string, error) {
		kept := rows[:0]
		for _, row := range rows {
			b, err := scanBooking(row)
			if err != nil {
				return nil, err
			}
			if b.ID == id {
				removed++
				continue
			}
			kept = append(kept, row)
		}
		return kept, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return removed, nil
}

func scanBooking(row []string) (models.Booking, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return models.Booking{}, fmt.Errorf("bad booking id %q: %w", row[0], db.ErrMalformedTable)
	}
	court, err := strconv.Atoi(row[2])
	if err != nil {
		return models.Booking{}, fmt.Errorf("bad court number %q: %w", row[2], db.ErrMalformedTable)
	}
	return models.Booking{
		ID:          id,
		Facility:    row[1],
		CourtNumber: court,
		StartTime:   row[3],
		EndTime:     row[4],
		LatestFile:  row[5],
	}, nil
}

func bookingRow(b models.Booking) []string {
	return []string{
		strconv.Itoa(b.ID),
		b.Facility,
		strconv.Itoa(b.CourtNumber),
		b.StartTime,
		b.EndTime,
		b.LatestFile,
	}
}
