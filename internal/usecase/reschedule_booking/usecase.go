package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
)

// UseCase use case для переноса бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     NotificationDispatcher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования на новую дату.
// Холд и сумма депозита сохраняются как есть, дедлайн отмены
// пересчитывается от новой даты. Перенесенное бронирование остается
// открытым: его можно завершить, отменить, пометить неявкой или
// перенести еще раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, client=%d, newDate=%s",
		req.BookingID, req.ClientID, req.NewDate.Format(domain.DateTimeFormat))

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if !req.NewDate.After(now) {
		uc.logger.Warn("RescheduleBooking: new date %s is not in the future",
			req.NewDate.Format(domain.DateTimeFormat))
		return nil, ErrInvalidDate
	}

	newDeadline := req.NewDate.Add(-domain.RescheduleWindow)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.ClientID != req.ClientID {
			uc.logger.Warn("RescheduleBooking: booking id=%d belongs to client id=%d, not %d",
				req.BookingID, booking.ClientID, req.ClientID)
			return ErrForbidden
		}

		if !booking.CanTransition() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has terminal status %s",
				req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, newDeadline, domain.TransitionableStatuses); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusPrecondition) {
				return ErrInvalidTransition
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		booking.BookingDate = req.NewDate
		booking.RescheduleDeadline = newDeadline
		booking.Status = domain.StatusRescheduled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to %s",
		result.ID, req.NewDate.Format(domain.DateTimeFormat))

	uc.notifier.BookingRescheduled(ctx, result)

	return &Response{Booking: result}, nil
}
