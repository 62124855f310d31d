package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
	"github.com/slotta-app/SlottaService/internal/slotta"
)

// UseCase use case для завершения визита мастером
type UseCase struct {
	bookingRepo BookingRepository
	clientRepo  ClientRepository
	gateway     PaymentHoldGateway
	notifier    NotificationDispatcher
	txManager   TransactionManager
	logger      Logger
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
		bookingRepo: bookingRepo,
		clientRepo:  clientRepo,
		gateway:     gateway,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case завершения визита.
// Клиент пришел: холд (если был) освобождается полностью, счетчик
// завершенных визитов растет, надежность клиента пересчитывается.
// Использует сериализуемую транзакцию с блокировкой строки бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, master=%d", req.BookingID, req.MasterID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	var (
		result       *domain.Booking
		holdReleased bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CompleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.MasterID != req.MasterID {
			uc.logger.Warn("CompleteBooking: booking id=%d belongs to master id=%d, not %d",
				req.BookingID, booking.MasterID, req.MasterID)
			return ErrForbidden
		}

		if !booking.CanTransition() {
			uc.logger.Warn("CompleteBooking: booking id=%d has terminal status %s",
				req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		// 2. Освобождаем холд до смены статуса: если платежная система
		// недоступна, бронирование остается в исходном статусе
		if booking.HasPaymentHold() {
			if err := uc.gateway.Release(txCtx, *booking.PaymentHoldRef); err != nil {
				uc.logger.Error("CompleteBooking: failed to release hold %s: %v",
					*booking.PaymentHoldRef, err)
				return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
			}
			holdReleased = true
		}

		// 3. Переводим статус с precondition на текущий статус
		if err := uc.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.StatusCompleted, domain.TransitionableStatuses); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusPrecondition) {
				return ErrInvalidTransition
			}
			uc.logger.Error("CompleteBooking: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 4. Инкрементируем счетчик и пересчитываем надежность
		if err := uc.clientRepo.IncrementCounters(txCtx, booking.ClientID, domain.ClientCounterDelta{CompletedBookings: 1}); err != nil {
			uc.logger.Error("CompleteBooking: failed to increment counters for client id=%d: %v",
				booking.ClientID, err)
			return fmt.Errorf("%w: failed to increment counters: %v", ErrInternal, err)
		}

		if err := uc.reclassifyClient(txCtx, booking.ClientID); err != nil {
			return err
		}

		booking.Status = domain.StatusCompleted
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteBooking: booking id=%d completed, hold released=%t",
		result.ID, holdReleased)

	uc.notifier.BookingCompleted(ctx, result)

	return &Response{
		Booking:      result,
		HoldReleased: holdReleased,
	}, nil
}

// reclassifyClient пересчитывает надежность клиента по актуальным счетчикам
func (uc *UseCase) reclassifyClient(ctx context.Context, clientID int64) error {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	reliability := slotta.DetermineReliability(client.TotalBookings, client.NoShows)
	if reliability == client.Reliability {
		return nil
	}

	if err := uc.clientRepo.SetReliability(ctx, clientID, reliability); err != nil {
		uc.logger.Error("CompleteBooking: failed to set reliability for client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: failed to set reliability: %v", ErrInternal, err)
	}

	uc.logger.Info("CompleteBooking: client id=%d reclassified %s -> %s",
		clientID, client.Reliability, reliability)
	return nil
}
