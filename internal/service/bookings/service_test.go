package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
	"github.com/slotta-app/SlottaService/internal/service/bookings/models"
	"github.com/slotta-app/SlottaService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID     map[int64]*domain.Booking
	byClient map[int64][]*domain.Booking
	filters  []domain.MasterBookingsFilter
	byMaster []*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range f.byClient[clientID] {
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByMasterWithFilter(_ context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	f.filters = append(f.filters, filter)
	return f.byMaster, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		MasterID:     3,
		ClientID:     42,
		ServiceID:    7,
		BookingDate:  time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		ServicePrice: decimal.RequireFromString("1000"),
		SlottaAmount: decimal.RequireFromString("390.00"),
		Status:       status,
	}
}

func TestGetByID_MasterAndClientHaveAccess(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		101: testBooking(101, domain.StatusConfirmed),
	}}
	svc := NewService(repo, noopLogger{})

	for _, requester := range []int64{3, 42} {
		resp, err := svc.GetByID(context.Background(), 101, requester)
		require.NoError(t, err)
		assert.Equal(t, int64(101), resp.ID)
		assert.Equal(t, "390.00", resp.SlottaAmount)
		assert.Equal(t, "1000.00", resp.ServicePrice)
	}
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		101: testBooking(101, domain.StatusConfirmed),
	}}
	svc := NewService(repo, noopLogger{})

	_, err := svc.GetByID(context.Background(), 101, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}}, noopLogger{})

	_, err := svc.GetByID(context.Background(), 777, 3)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClientBookings_FiltersByStatus(t *testing.T) {
	repo := &fakeBookingRepo{byClient: map[int64][]*domain.Booking{
		42: {
			testBooking(101, domain.StatusConfirmed),
			testBooking(102, domain.StatusCompleted),
		},
	}}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 42,
		Status:   ptr.Ptr("completed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(102), resp.Bookings[0].ID)
}

func TestGetClientBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, noopLogger{})

	_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
		ClientID: 42,
		Status:   ptr.Ptr("vanished"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMasterBookings_BuildsFilter(t *testing.T) {
	repo := &fakeBookingRepo{byMaster: []*domain.Booking{
		testBooking(101, domain.StatusConfirmed),
	}}
	svc := NewService(repo, noopLogger{})

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetMasterBookings(context.Background(), &models.GetMasterBookingsRequest{
		MasterID:        3,
		StartDate:       &start,
		Status:          ptr.Ptr("confirmed"),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	require.Len(t, repo.filters, 1)
	filter := repo.filters[0]
	assert.Equal(t, int64(3), filter.MasterID)
	assert.Equal(t, start, *filter.StartDate)
	assert.Equal(t, domain.StatusConfirmed, *filter.Status)
	assert.True(t, filter.IncludeInactive)
}

func TestGetMasterBookings_InvalidMaster(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, noopLogger{})

	_, err := svc.GetMasterBookings(context.Background(), &models.GetMasterBookingsRequest{MasterID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
