package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
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
	gateway PaymentHoldGateway,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		gateway:      gateway,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Бесплатная отмена возможна не позже, чем за 24 часа до визита:
// холд освобождается полностью, счетчик отмен клиента растет.
// После дедлайна отмена запрещена, исход помечает мастер.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, client=%d", req.BookingID, req.ClientID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		result       *domain.Booking
		holdReleased bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.ClientID != req.ClientID {
			uc.logger.Warn("CancelBooking: booking id=%d belongs to client id=%d, not %d",
				req.BookingID, booking.ClientID, req.ClientID)
			return ErrForbidden
		}

		if !booking.CanTransition() {
			uc.logger.Warn("CancelBooking: booking id=%d has terminal status %s",
				req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		// Дедлайн проверяется по моменту запроса, не по моменту коммита
		if now.After(booking.RescheduleDeadline) {
			uc.logger.Warn("CancelBooking: booking id=%d deadline %s already passed at %s",
				req.BookingID,
				booking.RescheduleDeadline.Format(domain.DateTimeFormat),
				now.Format(domain.DateTimeFormat))
			return ErrDeadlinePassed
		}

		if booking.HasPaymentHold() {
			if err := uc.gateway.Release(txCtx, *booking.PaymentHoldRef); err != nil {
				uc.logger.Error("CancelBooking: failed to release hold %s: %v",
					*booking.PaymentHoldRef, err)
				return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
			}
			holdReleased = true
		}

		if err := uc.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.StatusCancelled, domain.TransitionableStatuses); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusPrecondition) {
				return ErrInvalidTransition
			}
			uc.logger.Error("CancelBooking: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		if err := uc.clientRepo.IncrementCounters(txCtx, booking.ClientID, domain.ClientCounterDelta{Cancellations: 1}); err != nil {
			uc.logger.Error("CancelBooking: failed to increment counters for client id=%d: %v",
				booking.ClientID, err)
			return fmt.Errorf("%w: failed to increment counters: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, hold released=%t",
		result.ID, holdReleased)

	uc.notifier.BookingCancelled(ctx, result)

	return &Response{
		Booking:      result,
		HoldReleased: holdReleased,
	}, nil
}
