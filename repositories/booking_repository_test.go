package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katsunaka/court-booking/db"
	"github.com/katsunaka/court-booking/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(t.TempDir())
	require.NoError(t, err)
	return store
}

func testBooking(facility string) *models.Booking {
	return &models.Booking{
		Facility:    facility,
		CourtNumber: 1,
		StartTime:   "2024-06-01 09:00",
		EndTime:     "2024-06-01 10:00",
	}
}

func TestBookingRepositoryCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewCSVBookingRepository(newTestStore(t))
	ctx := context.Background()

	for i, facility := range []string{"Court A", "Court B", "Court C"} {
		b := testBooking(facility)
		require.NoError(t, repo.Create(ctx, b))
		assert.Equal(t, i+1, b.ID)
	}

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "Court A", bookings[0].Facility)
	assert.Equal(t, "Court C", bookings[2].Facility)
}

func TestBookingRepositoryIDsNotReusedAfterMiddleDelete(t *testing.T) {
	repo := NewCSVBookingRepository(newTestStore(t))
	ctx := context.Background()

	for _, facility := range []string{"Court A", "Court B", "Court C"} {
		require.NoError(t, repo.Create(ctx, testBooking(facility)))
	}

	removed, err := repo.DeleteByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	b := testBooking("Court D")
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, 4, b.ID, "new id must not collide with surviving ids")
}

func TestBookingRepositoryFindByID(t *testing.T) {
	repo := NewCSVBookingRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testBooking("Court A")))

	found, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Court A", found.Facility)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepositoryDeleteUnknownIDIsNoop(t *testing.T) {
	repo := NewCSVBookingRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testBooking("Court A")))

	removed, err := repo.DeleteByID(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, removed)

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingRepositoryRoundTripPreservesFields(t *testing.T) {
	repo := NewCSVBookingRepository(newTestStore(t))
	ctx := context.Background()

	created := &models.Booking{
		Facility:    "勝中コート",
		CourtNumber: 2,
		StartTime:   "2024-06-01 09:00",
		EndTime:     "2024-06-01 10:00",
	}
	require.NoError(t, repo.Create(ctx, created))

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, *created, bookings[0])
}
