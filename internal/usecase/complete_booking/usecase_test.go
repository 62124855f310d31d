package complete_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	updateErr   error
	updatedTo   []domain.BookingStatus
	updatedFrom [][]domain.BookingStatus
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, _ int64, to domain.BookingStatus, from []domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedTo = append(f.updatedTo, to)
	f.updatedFrom = append(f.updatedFrom, from)
	return nil
}

type fakeClientRepo struct {
	client      *domain.Client
	incrDeltas  []domain.ClientCounterDelta
	reliability []domain.ClientReliability
}

func (f *fakeClientRepo) GetByID(_ context.Context, _ int64) (*domain.Client, error) {
	c := *f.client
	// отражаем уже примененные инкременты
	for _, d := range f.incrDeltas {
		c.TotalBookings += d.TotalBookings
		c.CompletedBookings += d.CompletedBookings
		c.NoShows += d.NoShows
		c.Cancellations += d.Cancellations
	}
	return &c, nil
}

func (f *fakeClientRepo) IncrementCounters(_ context.Context, _ int64, delta domain.ClientCounterDelta) error {
	f.incrDeltas = append(f.incrDeltas, delta)
	return nil
}

func (f *fakeClientRepo) SetReliability(_ context.Context, _ int64, r domain.ClientReliability) error {
	f.reliability = append(f.reliability, r)
	return nil
}

type fakeGateway struct {
	releaseErr error
	released   []string
}

func (f *fakeGateway) Release(_ context.Context, holdRef string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, holdRef)
	return nil
}

type fakeNotifier struct {
	completed []*domain.Booking
}

func (f *fakeNotifier) BookingCompleted(_ context.Context, b *domain.Booking) {
	f.completed = append(f.completed, b)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func holdRef(s string) *string { return &s }

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 101,
		MasterID:           3,
		ClientID:           42,
		ServiceID:          7,
		BookingDate:        time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		DurationMinutes:    90,
		ServicePrice:       decimal.RequireFromString("1000"),
		SlottaAmount:       decimal.RequireFromString("390.00"),
		Status:             domain.StatusConfirmed,
		PaymentHoldRef:     holdRef("chrg_test_001"),
		PaymentAuthorized:  true,
		RescheduleDeadline: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func newFixture() (*UseCase, *fakeBookingRepo, *fakeClientRepo, *fakeGateway, *fakeNotifier) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	clients := &fakeClientRepo{client: &domain.Client{
		ID:            42,
		TotalBookings: 3,
		NoShows:       0,
		Reliability:   domain.ReliabilityNew,
	}}
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, clients, gateway, notifier, &fakeTxManager{}, noopLogger{})
	return uc, bookings, clients, gateway, notifier
}

func TestExecute_CompletesAndReleasesHold(t *testing.T) {
	uc, bookings, clients, gateway, notifier := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)
	assert.True(t, resp.HoldReleased)

	require.Len(t, gateway.released, 1)
	assert.Equal(t, "chrg_test_001", gateway.released[0])

	require.Len(t, bookings.updatedTo, 1)
	assert.Equal(t, domain.StatusCompleted, bookings.updatedTo[0])
	assert.Equal(t, domain.TransitionableStatuses, bookings.updatedFrom[0])

	require.Len(t, clients.incrDeltas, 1)
	assert.Equal(t, domain.ClientCounterDelta{CompletedBookings: 1}, clients.incrDeltas[0])

	require.Len(t, notifier.completed, 1)
}

func TestExecute_PayLaterBookingHasNoHoldToRelease(t *testing.T) {
	uc, bookings, _, gateway, _ := newFixture()
	bookings.booking.PaymentHoldRef = nil
	bookings.booking.PaymentAuthorized = false
	bookings.booking.Status = domain.StatusPending

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	assert.False(t, resp.HoldReleased)
	assert.Empty(t, gateway.released)
}

func TestExecute_ReclassifiesClientToReliable(t *testing.T) {
	uc, _, clients, _, _ := newFixture()
	// 3 bookings, 0 no-shows: становится reliable

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	require.Len(t, clients.reliability, 1)
	assert.Equal(t, domain.ReliabilityReliable, clients.reliability[0])
}

func TestExecute_SkipsReclassifyWhenUnchanged(t *testing.T) {
	uc, _, clients, _, _ := newFixture()
	clients.client.TotalBookings = 1 // остается new

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	assert.Empty(t, clients.reliability)
}

func TestExecute_TerminalStatus(t *testing.T) {
	uc, bookings, _, gateway, notifier := newFixture()
	bookings.booking.Status = domain.StatusCompleted

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, gateway.released)
	assert.Empty(t, notifier.completed)
}

func TestExecute_ConcurrentLoserGetsInvalidTransition(t *testing.T) {
	uc, bookings, _, _, _ := newFixture()
	bookings.updateErr = bookingRepo.ErrStatusPrecondition

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_GatewayFailureKeepsStatus(t *testing.T) {
	uc, bookings, clients, gateway, _ := newFixture()
	gateway.releaseErr = errors.New("gateway timeout")

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrPaymentGateway)
	assert.Empty(t, bookings.updatedTo)
	assert.Empty(t, clients.incrDeltas)
}

func TestExecute_ForeignMaster(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 999})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 777, MasterID: 3})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
