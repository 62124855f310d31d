package mark_no_show

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
	client      *domain.Client
	incrDeltas  []domain.ClientCounterDelta
	credited    []decimal.Decimal
	reliability []domain.ClientReliability
}

func (f *fakeClientRepo) GetByID(_ context.Context, _ int64) (*domain.Client, error) {
	c := *f.client
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

func (f *fakeClientRepo) CreditWallet(_ context.Context, _ int64, amount decimal.Decimal) error {
	f.credited = append(f.credited, amount)
	return nil
}

func (f *fakeClientRepo) SetReliability(_ context.Context, _ int64, r domain.ClientReliability) error {
	f.reliability = append(f.reliability, r)
	return nil
}

type fakeTransactionRepo struct {
	created []*domain.Transaction
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	stored := *t
	stored.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeGateway struct {
	captureErr error
	captured   []decimal.Decimal
}

func (f *fakeGateway) Capture(_ context.Context, _ string, amount decimal.Decimal) error {
	if f.captureErr != nil {
		return f.captureErr
	}
	f.captured = append(f.captured, amount)
	return nil
}

type fakeNotifier struct {
	masterComp   []decimal.Decimal
	clientCredit []decimal.Decimal
}

func (f *fakeNotifier) BookingNoShow(_ context.Context, _ *domain.Booking, masterCompensation, clientCredit decimal.Decimal) {
	f.masterComp = append(f.masterComp, masterCompensation)
	f.clientCredit = append(f.clientCredit, clientCredit)
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

func heldBooking() *domain.Booking {
	return &domain.Booking{
		ID:                101,
		MasterID:          3,
		ClientID:          42,
		ServiceID:         7,
		BookingDate:       time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		ServicePrice:      decimal.RequireFromString("1000"),
		SlottaAmount:      decimal.RequireFromString("400.00"),
		Status:            domain.StatusConfirmed,
		PaymentHoldRef:    holdRef("chrg_test_001"),
		PaymentAuthorized: true,
	}
}

func newFixture() (*UseCase, *fakeBookingRepo, *fakeClientRepo, *fakeTransactionRepo, *fakeGateway, *fakeNotifier) {
	bookings := &fakeBookingRepo{booking: heldBooking()}
	clients := &fakeClientRepo{client: &domain.Client{
		ID:            42,
		TotalBookings: 5,
		NoShows:       1,
		Reliability:   domain.ReliabilityReliable,
	}}
	transactions := &fakeTransactionRepo{}
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, clients, transactions, gateway, notifier, &fakeTxManager{}, noopLogger{})
	return uc, bookings, clients, transactions, gateway, notifier
}

func TestExecute_CapturesAndSplitsDeposit(t *testing.T) {
	uc, bookings, clients, transactions, gateway, notifier := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, resp.Booking.Status)
	assert.True(t, resp.HoldCaptured)

	// 400 × 0.625 / 400 × 0.375
	assert.True(t, resp.MasterCompensation.Equal(decimal.RequireFromString("250.00")),
		"got %s", resp.MasterCompensation)
	assert.True(t, resp.ClientWalletCredit.Equal(decimal.RequireFromString("150.00")),
		"got %s", resp.ClientWalletCredit)

	// полная сумма депозита захвачена одним вызовом
	require.Len(t, gateway.captured, 1)
	assert.True(t, gateway.captured[0].Equal(decimal.RequireFromString("400.00")))

	// ровно две записи леджера, в сумме равные депозиту
	require.Len(t, transactions.created, 2)
	assert.Equal(t, domain.TransactionHoldCapture, transactions.created[0].Type)
	require.NotNil(t, transactions.created[0].MasterID)
	assert.Equal(t, int64(3), *transactions.created[0].MasterID)
	assert.Equal(t, domain.TransactionWalletCredit, transactions.created[1].Type)
	require.NotNil(t, transactions.created[1].ClientID)
	assert.Equal(t, int64(42), *transactions.created[1].ClientID)
	total := transactions.created[0].Amount.Add(transactions.created[1].Amount)
	assert.True(t, total.Equal(decimal.RequireFromString("400.00")), "got %s", total)

	// кошелек клиента пополнен на его долю
	require.Len(t, clients.credited, 1)
	assert.True(t, clients.credited[0].Equal(resp.ClientWalletCredit))

	require.Len(t, bookings.updatedTo, 1)
	assert.Equal(t, domain.StatusNoShow, bookings.updatedTo[0])

	require.Len(t, clients.incrDeltas, 1)
	assert.Equal(t, domain.ClientCounterDelta{NoShows: 1}, clients.incrDeltas[0])

	require.Len(t, notifier.masterComp, 1)
	assert.True(t, notifier.masterComp[0].Equal(resp.MasterCompensation))
	assert.True(t, notifier.clientCredit[0].Equal(resp.ClientWalletCredit))
}

func TestExecute_ReclassifiesToNeedsProtection(t *testing.T) {
	uc, _, clients, _, _, _ := newFixture()
	// после инкремента станет 2 неявки

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	require.Len(t, clients.reliability, 1)
	assert.Equal(t, domain.ReliabilityNeedsProtection, clients.reliability[0])
}

func TestExecute_PayLaterNoShowMovesNoMoney(t *testing.T) {
	uc, bookings, clients, transactions, gateway, notifier := newFixture()
	bookings.booking.PaymentHoldRef = nil
	bookings.booking.PaymentAuthorized = false
	bookings.booking.Status = domain.StatusPending

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, resp.Booking.Status)
	assert.False(t, resp.HoldCaptured)
	assert.True(t, resp.MasterCompensation.IsZero())
	assert.True(t, resp.ClientWalletCredit.IsZero())

	assert.Empty(t, gateway.captured)
	assert.Empty(t, transactions.created)
	assert.Empty(t, clients.credited)

	// счетчик неявок растет и без холда
	require.Len(t, clients.incrDeltas, 1)
	assert.Equal(t, domain.ClientCounterDelta{NoShows: 1}, clients.incrDeltas[0])

	require.Len(t, notifier.masterComp, 1)
	assert.True(t, notifier.masterComp[0].IsZero())
}

func TestExecute_CaptureFailureKeepsStatus(t *testing.T) {
	uc, bookings, clients, transactions, gateway, _ := newFixture()
	gateway.captureErr = errors.New("gateway timeout")

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrPaymentGateway)
	assert.Empty(t, bookings.updatedTo)
	assert.Empty(t, transactions.created)
	assert.Empty(t, clients.incrDeltas)
}

func TestExecute_TerminalStatus(t *testing.T) {
	uc, bookings, _, _, gateway, _ := newFixture()
	bookings.booking.Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, gateway.captured)
}

func TestExecute_ConcurrentLoserGetsInvalidTransition(t *testing.T) {
	uc, bookings, _, _, _, _ := newFixture()
	bookings.updateErr = bookingRepo.ErrStatusPrecondition

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 3})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ForeignMaster(t *testing.T) {
	uc, _, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 101, MasterID: 999})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 777, MasterID: 3})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
