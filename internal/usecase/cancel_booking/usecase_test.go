package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	updateErr error
	updatedTo []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, _ int64, to domain.BookingStatus, _ []domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedTo = append(f.updatedTo, to)
	return nil
}

type fakeClientRepo struct {
	incrDeltas []domain.ClientCounterDelta
}

func (f *fakeClientRepo) IncrementCounters(_ context.Context, _ int64, delta domain.ClientCounterDelta) error {
	f.incrDeltas = append(f.incrDeltas, delta)
	return nil
}

type fakeGateway struct {
	released []string
}

func (f *fakeGateway) Release(_ context.Context, holdRef string) error {
	f.released = append(f.released, holdRef)
	return nil
}

type fakeNotifier struct {
	cancelled []*domain.Booking
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, b *domain.Booking) {
	f.cancelled = append(f.cancelled, b)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func holdRef(s string) *string { return &s }

var (
	visitAt  = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	deadline = visitAt.Add(-24 * time.Hour)
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 101,
		MasterID:           3,
		ClientID:           42,
		ServiceID:          7,
		BookingDate:        visitAt,
		SlottaAmount:       decimal.RequireFromString("390.00"),
		Status:             domain.StatusConfirmed,
		PaymentHoldRef:     holdRef("chrg_test_001"),
		PaymentAuthorized:  true,
		RescheduleDeadline: deadline,
	}
}

func newFixture(now time.Time) (*UseCase, *fakeBookingRepo, *fakeClientRepo, *fakeGateway, *fakeNotifier) {
	bookings := &fakeBookingRepo{booking: testBooking()}
	clients := &fakeClientRepo{}
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, clients, gateway, notifier, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc, bookings, clients, gateway, notifier
}

func TestExecute_CancelsBeforeDeadline(t *testing.T) {
	uc, bookings, clients, gateway, notifier := newFixture(deadline.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	assert.True(t, resp.HoldReleased)

	require.Len(t, gateway.released, 1)
	require.Len(t, bookings.updatedTo, 1)
	assert.Equal(t, domain.StatusCancelled, bookings.updatedTo[0])

	require.Len(t, clients.incrDeltas, 1)
	assert.Equal(t, domain.ClientCounterDelta{Cancellations: 1}, clients.incrDeltas[0])

	require.Len(t, notifier.cancelled, 1)
}

func TestExecute_ExactlyAtDeadlineStillAllowed(t *testing.T) {
	uc, _, _, _, _ := newFixture(deadline)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
}

func TestExecute_AfterDeadline(t *testing.T) {
	uc, bookings, clients, gateway, _ := newFixture(deadline.Add(time.Minute))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.Empty(t, gateway.released)
	assert.Empty(t, bookings.updatedTo)
	assert.Empty(t, clients.incrDeltas)
}

func TestExecute_PayLaterCancelsWithoutHold(t *testing.T) {
	uc, bookings, _, gateway, _ := newFixture(deadline.Add(-time.Hour))
	bookings.booking.PaymentHoldRef = nil
	bookings.booking.Status = domain.StatusPending

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	require.NoError(t, err)
	assert.False(t, resp.HoldReleased)
	assert.Empty(t, gateway.released)
}

func TestExecute_ForeignClient(t *testing.T) {
	uc, _, _, _, _ := newFixture(deadline.Add(-time.Hour))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 999})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_TerminalStatus(t *testing.T) {
	uc, bookings, _, _, _ := newFixture(deadline.Add(-time.Hour))
	bookings.booking.Status = domain.StatusNoShow

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ConcurrentLoserGetsInvalidTransition(t *testing.T) {
	uc, bookings, _, _, _ := newFixture(deadline.Add(-time.Hour))
	bookings.updateErr = bookingRepo.ErrStatusPrecondition

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, ClientID: 42})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _, _ := newFixture(deadline.Add(-time.Hour))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 777, ClientID: 42})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
