package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	clientRepo "github.com/slotta-app/SlottaService/internal/infra/storage/client"
	serviceRepo "github.com/slotta-app/SlottaService/internal/infra/storage/service"
	"github.com/slotta-app/SlottaService/internal/integrations/omisepay"
	"github.com/slotta-app/SlottaService/internal/slotta"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	serviceRepo  ServiceRepository
	gateway      PaymentHoldGateway
	notifier     NotificationDispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	serviceRepo ServiceRepository,
	gateway PaymentHoldGateway,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		serviceRepo:  serviceRepo,
		gateway:      gateway,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования без предоплаты.
// Депозит рассчитывается и фиксируется на бронировании, но холд не
// выставляется: бронирование остается в статусе pending до визита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, master=%d, service=%d, date=%s",
		req.ClientID, req.MasterID, req.ServiceID, req.BookingDate.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата в будущем
	if err := validateDate(req.BookingDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is not in the future",
			req.BookingDate.Format(domain.DateTimeFormat))
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.resolveService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 5. Получаем клиента
	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 6. Считаем депозит и риск по истории клиента
	slottaAmount, err := slotta.Calculate(
		service.Price,
		service.DurationMinutes,
		client.Reliability,
		client.NoShows,
		client.Cancellations,
		req.IsPeakSlot,
	)
	if err != nil {
		uc.logger.Error("CreateBooking: slotta calculation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	riskScore := slotta.RiskScore(
		client.TotalBookings, client.CompletedBookings,
		client.NoShows, client.Cancellations, nil,
	)

	booking := &domain.Booking{
		MasterID:           req.MasterID,
		ClientID:           client.ID,
		ServiceID:          service.ID,
		BookingDate:        req.BookingDate,
		DurationMinutes:    service.DurationMinutes,
		ServicePrice:       service.Price,
		SlottaAmount:       slottaAmount,
		Status:             domain.StatusPending,
		RiskScore:          riskScore,
		RescheduleDeadline: req.BookingDate.Add(-domain.RescheduleWindow),
	}

	// 7. Сохраняем бронирование и инкрементируем счетчик клиента атомарно
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.clientRepo.IncrementCounters(txCtx, client.ID, domain.ClientCounterDelta{TotalBookings: 1}); err != nil {
			uc.logger.Error("CreateBooking: failed to increment counters for client id=%d: %v", client.ID, err)
			return fmt.Errorf("%w: failed to increment counters: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, slotta=%s, risk=%d",
		result.ID, slottaAmount.StringFixed(2), riskScore)

	// 8. Уведомление после фиксации транзакции
	uc.notifier.BookingCreated(ctx, result)

	return &Response{
		Booking:      result,
		SlottaAmount: slottaAmount,
		RiskScore:    riskScore,
	}, nil
}

// ExecuteWithPayment выполняет use case создания бронирования с предоплатой.
// Холд авторизуется ДО записи в БД: если авторизация отклонена, бронирование
// не создается вовсе. Если запись не удалась после успешной авторизации,
// холд освобождается (best-effort).
func (uc *UseCase) ExecuteWithPayment(ctx context.Context, req *RequestWithPayment) (*Response, error) {
	uc.logger.Info("CreateBookingWithPayment: email=%s, master=%d, service=%d, date=%s",
		req.ClientEmail, req.MasterID, req.ServiceID, req.BookingDate.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequestWithPayment(req); err != nil {
		uc.logger.Warn("CreateBookingWithPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата в будущем
	now := uc.timeProvider.Now()
	if err := validateDate(req.BookingDate, now); err != nil {
		uc.logger.Warn("CreateBookingWithPayment: date %s is not in the future",
			req.BookingDate.Format(domain.DateTimeFormat))
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.resolveService(ctx, req.MasterID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 4. Разрешаем клиента по email, создаем при отсутствии
	client, err := uc.resolveClientByEmail(ctx, req.ClientEmail, req.ClientName)
	if err != nil {
		return nil, err
	}

	// 5. Считаем депозит и риск
	slottaAmount, err := slotta.Calculate(
		service.Price,
		service.DurationMinutes,
		client.Reliability,
		client.NoShows,
		client.Cancellations,
		req.IsPeakSlot,
	)
	if err != nil {
		uc.logger.Error("CreateBookingWithPayment: slotta calculation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	riskScore := slotta.RiskScore(
		client.TotalBookings, client.CompletedBookings,
		client.NoShows, client.Cancellations, nil,
	)

	// 6. Авторизуем холд до записи в БД
	holdRef, err := uc.gateway.Authorize(ctx, omisepay.AuthorizeRequest{
		Amount:    slottaAmount,
		CardToken: req.CardToken,
		PayerRef:  req.ClientEmail,
		Metadata: map[string]interface{}{
			"master_id":  req.MasterID,
			"client_id":  client.ID,
			"service_id": service.ID,
		},
	})
	if err != nil {
		if errors.Is(err, omisepay.ErrAuthorizeDeclined) {
			uc.logger.Warn("CreateBookingWithPayment: authorization declined for client id=%d", client.ID)
			return nil, ErrPaymentAuthorization
		}
		uc.logger.Error("CreateBookingWithPayment: authorization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentAuthorization, err)
	}

	booking := &domain.Booking{
		MasterID:           req.MasterID,
		ClientID:           client.ID,
		ServiceID:          service.ID,
		BookingDate:        req.BookingDate,
		DurationMinutes:    service.DurationMinutes,
		ServicePrice:       service.Price,
		SlottaAmount:       slottaAmount,
		Status:             domain.StatusConfirmed,
		PaymentHoldRef:     &holdRef,
		PaymentAuthorized:  true,
		RiskScore:          riskScore,
		RescheduleDeadline: req.BookingDate.Add(-domain.RescheduleWindow),
	}

	// 7. Сохраняем бронирование; при неудаче освобождаем холд
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBookingWithPayment: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.clientRepo.IncrementCounters(txCtx, client.ID, domain.ClientCounterDelta{TotalBookings: 1}); err != nil {
			uc.logger.Error("CreateBookingWithPayment: failed to increment counters for client id=%d: %v", client.ID, err)
			return fmt.Errorf("%w: failed to increment counters: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if releaseErr := uc.gateway.Release(ctx, holdRef); releaseErr != nil {
			uc.logger.Error("CreateBookingWithPayment: failed to release orphaned hold %s: %v", holdRef, releaseErr)
		}
		return nil, err
	}

	uc.logger.Info("CreateBookingWithPayment: successfully created booking id=%d, hold=%s, slotta=%s, risk=%d",
		result.ID, holdRef, slottaAmount.StringFixed(2), riskScore)

	uc.notifier.BookingCreated(ctx, result)

	return &Response{
		Booking:      result,
		SlottaAmount: slottaAmount,
		RiskScore:    riskScore,
	}, nil
}

// resolveService получает услугу и проверяет принадлежность мастеру и активность
func (uc *UseCase) resolveService(ctx context.Context, masterID, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.MasterID != masterID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to master id=%d, not %d",
			serviceID, service.MasterID, masterID)
		return nil, ErrServiceNotFound
	}

	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is not active", serviceID)
		return nil, ErrServiceInactive
	}

	return service, nil
}

// resolveClientByEmail находит клиента по email или создает нового
func (uc *UseCase) resolveClientByEmail(ctx context.Context, email, name string) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByEmail(ctx, email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreateBookingWithPayment: failed to get client by email: %v", err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	created, err := uc.clientRepo.Create(ctx, &domain.Client{
		Email:       email,
		Name:        name,
		Reliability: domain.ReliabilityNew,
	})
	if err != nil {
		// Гонка с параллельной регистрацией: перечитываем по email
		if errors.Is(err, clientRepo.ErrEmailTaken) {
			return uc.clientRepo.GetByEmail(ctx, email)
		}
		uc.logger.Error("CreateBookingWithPayment: failed to create client: %v", err)
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBookingWithPayment: provisioned new client id=%d for email=%s", created.ID, email)
	return created, nil
}
