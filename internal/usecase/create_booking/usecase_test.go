package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotta-app/SlottaService/internal/domain"
	clientRepo "github.com/slotta-app/SlottaService/internal/infra/storage/client"
	serviceRepo "github.com/slotta-app/SlottaService/internal/infra/storage/service"
	"github.com/slotta-app/SlottaService/internal/integrations/omisepay"
)

// --- fakes ---

type fakeBookingRepo struct {
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *b
	stored.ID = 101
	f.created = &stored
	return &stored, nil
}

type fakeClientRepo struct {
	byID       map[int64]*domain.Client
	byEmail    map[string]*domain.Client
	createdID  int64
	createErr  error
	incrDeltas []domain.ClientCounterDelta
	incrErr    error
}

func (f *fakeClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *c
	stored.ID = f.createdID
	return &stored, nil
}

func (f *fakeClientRepo) IncrementCounters(_ context.Context, _ int64, delta domain.ClientCounterDelta) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	f.incrDeltas = append(f.incrDeltas, delta)
	return nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeGateway struct {
	holdRef      string
	authorizeErr error
	authorized   []omisepay.AuthorizeRequest
	released     []string
}

func (f *fakeGateway) Authorize(_ context.Context, req omisepay.AuthorizeRequest) (string, error) {
	if f.authorizeErr != nil {
		return "", f.authorizeErr
	}
	f.authorized = append(f.authorized, req)
	return f.holdRef, nil
}

func (f *fakeGateway) Release(_ context.Context, holdRef string) error {
	f.released = append(f.released, holdRef)
	return nil
}

type fakeNotifier struct {
	created []*domain.Booking
}

func (f *fakeNotifier) BookingCreated(_ context.Context, b *domain.Booking) {
	f.created = append(f.created, b)
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

// --- fixtures ---

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture() (*UseCase, *fakeBookingRepo, *fakeClientRepo, *fakeServiceRepo, *fakeGateway, *fakeNotifier) {
	bookings := &fakeBookingRepo{}
	clients := &fakeClientRepo{
		byID:      map[int64]*domain.Client{},
		byEmail:   map[string]*domain.Client{},
		createdID: 55,
	}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{}}
	gateway := &fakeGateway{holdRef: "chrg_test_001"}
	notifier := &fakeNotifier{}

	uc := NewUseCase(bookings, clients, services, gateway, notifier, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return uc, bookings, clients, services, gateway, notifier
}

func haircut(masterID int64) *domain.Service {
	return &domain.Service{
		ID:              7,
		MasterID:        masterID,
		Name:            "Haircut",
		DurationMinutes: 90,
		Price:           decimal.RequireFromString("1000"),
		Active:          true,
	}
}

func newClient(id int64) *domain.Client {
	return &domain.Client{
		ID:          id,
		Email:       "ann@example.com",
		Name:        "Ann",
		Reliability: domain.ReliabilityNew,
	}
}

// --- pay-later ---

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, bookings, clients, services, _, notifier := newFixture()
	services.services[7] = haircut(3)
	clients.byID[42] = newClient(42)

	date := testNow.Add(72 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: date,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(101), resp.Booking.ID)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Nil(t, resp.Booking.PaymentHoldRef)
	assert.False(t, resp.Booking.PaymentAuthorized)

	// new client, 90 min: 1000 × 0.325 × 1.20
	assert.True(t, resp.SlottaAmount.Equal(decimal.RequireFromString("390.00")),
		"got %s", resp.SlottaAmount)
	assert.Equal(t, 50, resp.RiskScore)

	// deadline is 24h before the visit
	assert.Equal(t, date.Add(-24*time.Hour), resp.Booking.RescheduleDeadline)

	// total_bookings incremented inside the transaction
	require.Len(t, clients.incrDeltas, 1)
	assert.Equal(t, domain.ClientCounterDelta{TotalBookings: 1}, clients.incrDeltas[0])

	require.Len(t, notifier.created, 1)
	assert.Equal(t, bookings.created.ID, notifier.created[0].ID)
}

func TestExecute_SnapshotsServicePriceAndDuration(t *testing.T) {
	uc, bookings, clients, services, _, _ := newFixture()
	services.services[7] = haircut(3)
	clients.byID[42] = newClient(42)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, bookings.created.ServicePrice.Equal(decimal.RequireFromString("1000")))
	assert.Equal(t, 90, bookings.created.DurationMinutes)
}

func TestExecute_DateInPast(t *testing.T) {
	uc, _, clients, services, _, _ := newFixture()
	services.services[7] = haircut(3)
	clients.byID[42] = newClient(42)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _, clients, _, _, _ := newFixture()
	clients.byID[42] = newClient(42)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceOfAnotherMaster(t *testing.T) {
	uc, _, clients, services, _, _ := newFixture()
	services.services[7] = haircut(999)
	clients.byID[42] = newClient(42)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	uc, _, clients, services, _, _ := newFixture()
	svc := haircut(3)
	svc.Active = false
	services.services[7] = svc
	clients.byID[42] = newClient(42)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_ClientNotFound(t *testing.T) {
	uc, _, _, services, _, _ := newFixture()
	services.services[7] = haircut(3)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:    0,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UsesClientHistoryForAmount(t *testing.T) {
	uc, _, clients, services, _, _ := newFixture()
	services.services[7] = haircut(3)

	c := newClient(42)
	c.TotalBookings = 10
	c.CompletedBookings = 5
	c.NoShows = 3
	c.Cancellations = 2
	c.Reliability = domain.ReliabilityNeedsProtection
	clients.byID[42] = c

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:    42,
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	require.NoError(t, err)
	// 1000 × 0.325 × (1 + 0.30 + 0.30) = 520.00
	assert.True(t, resp.SlottaAmount.Equal(decimal.RequireFromString("520.00")),
		"got %s", resp.SlottaAmount)
	// 0.3×60 + 0.2×20 = 22
	assert.Equal(t, 22, resp.RiskScore)
}

// --- pay-now ---

func TestExecuteWithPayment_CreatesConfirmedBookingWithHold(t *testing.T) {
	uc, bookings, clients, services, gateway, notifier := newFixture()
	services.services[7] = haircut(3)
	clients.byEmail["ann@example.com"] = newClient(42)

	resp, err := uc.ExecuteWithPayment(context.Background(), &RequestWithPayment{
		ClientEmail: "ann@example.com",
		ClientName:  "Ann",
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
		CardToken:   "tokn_test_001",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	require.NotNil(t, resp.Booking.PaymentHoldRef)
	assert.Equal(t, "chrg_test_001", *resp.Booking.PaymentHoldRef)
	assert.True(t, resp.Booking.PaymentAuthorized)

	require.Len(t, gateway.authorized, 1)
	assert.True(t, gateway.authorized[0].Amount.Equal(resp.SlottaAmount))
	assert.Equal(t, "tokn_test_001", gateway.authorized[0].CardToken)

	assert.NotNil(t, bookings.created)
	require.Len(t, notifier.created, 1)
}

func TestExecuteWithPayment_ProvisionsNewClient(t *testing.T) {
	uc, bookings, _, services, _, _ := newFixture()
	services.services[7] = haircut(3)

	resp, err := uc.ExecuteWithPayment(context.Background(), &RequestWithPayment{
		ClientEmail: "new@example.com",
		ClientName:  "Newcomer",
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
		CardToken:   "tokn_test_002",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(55), bookings.created.ClientID)
	// newly provisioned client gets the new-client modifier
	assert.True(t, resp.SlottaAmount.Equal(decimal.RequireFromString("390.00")),
		"got %s", resp.SlottaAmount)
}

func TestExecuteWithPayment_DeclinedAuthorizationCreatesNothing(t *testing.T) {
	uc, bookings, clients, services, gateway, notifier := newFixture()
	services.services[7] = haircut(3)
	clients.byEmail["ann@example.com"] = newClient(42)
	gateway.authorizeErr = omisepay.ErrAuthorizeDeclined

	_, err := uc.ExecuteWithPayment(context.Background(), &RequestWithPayment{
		ClientEmail: "ann@example.com",
		ClientName:  "Ann",
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
		CardToken:   "tokn_test_003",
	})

	assert.ErrorIs(t, err, ErrPaymentAuthorization)
	assert.Nil(t, bookings.created)
	assert.Empty(t, clients.incrDeltas)
	assert.Empty(t, notifier.created)
}

func TestExecuteWithPayment_PersistFailureReleasesHold(t *testing.T) {
	uc, bookings, clients, services, gateway, _ := newFixture()
	services.services[7] = haircut(3)
	clients.byEmail["ann@example.com"] = newClient(42)
	bookings.createErr = errors.New("connection reset")

	_, err := uc.ExecuteWithPayment(context.Background(), &RequestWithPayment{
		ClientEmail: "ann@example.com",
		ClientName:  "Ann",
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
		CardToken:   "tokn_test_004",
	})

	assert.ErrorIs(t, err, ErrInternal)
	require.Len(t, gateway.released, 1)
	assert.Equal(t, "chrg_test_001", gateway.released[0])
}

func TestExecuteWithPayment_MissingCardToken(t *testing.T) {
	uc, _, _, _, _, _ := newFixture()

	_, err := uc.ExecuteWithPayment(context.Background(), &RequestWithPayment{
		ClientEmail: "ann@example.com",
		ClientName:  "Ann",
		MasterID:    3,
		ServiceID:   7,
		BookingDate: testNow.Add(48 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
