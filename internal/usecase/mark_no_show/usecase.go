package mark_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
	bookingRepo "github.com/slotta-app/SlottaService/internal/infra/storage/booking"
	"github.com/slotta-app/SlottaService/internal/slotta"
)

// UseCase use case для пометки неявки клиента мастером
type UseCase struct {
	bookingRepo     BookingRepository
	clientRepo      ClientRepository
	transactionRepo TransactionRepository
	gateway         PaymentHoldGateway
	notifier        NotificationDispatcher
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	transactionRepo TransactionRepository,
	gateway PaymentHoldGateway,
	notifier NotificationDispatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
		gateway:         gateway,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case пометки неявки.
// Холд захватывается полностью и делится: компенсация мастеру и кредит
// в кошелек клиента, двумя записями в леджере, сумма которых в точности
// равна депозиту. Счетчик неявок растет, надежность пересчитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: booking=%d, master=%d", req.BookingID, req.MasterID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	var (
		result       *domain.Booking
		holdCaptured bool
		masterComp   = decimal.Zero
		clientCredit = decimal.Zero
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("MarkNoShow: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("MarkNoShow: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.MasterID != req.MasterID {
			uc.logger.Warn("MarkNoShow: booking id=%d belongs to master id=%d, not %d",
				req.BookingID, booking.MasterID, req.MasterID)
			return ErrForbidden
		}

		if !booking.CanTransition() {
			uc.logger.Warn("MarkNoShow: booking id=%d has terminal status %s",
				req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		// 1. Захват холда до смены статуса: при сбое платежной системы
		// бронирование остается как было и операцию можно повторить
		if booking.HasPaymentHold() {
			if err := uc.gateway.Capture(txCtx, *booking.PaymentHoldRef, booking.SlottaAmount); err != nil {
				uc.logger.Error("MarkNoShow: failed to capture hold %s: %v",
					*booking.PaymentHoldRef, err)
				return fmt.Errorf("%w: %v", ErrPaymentGateway, err)
			}
			holdCaptured = true

			split := slotta.NoShowSplit(booking.SlottaAmount)
			masterComp = split.MasterCompensation
			clientCredit = split.ClientWalletCredit

			if err := uc.recordSplit(txCtx, booking, split); err != nil {
				return err
			}
		}

		// 2. Переводим статус с precondition на текущий статус
		if err := uc.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.StatusNoShow, domain.TransitionableStatuses); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusPrecondition) {
				return ErrInvalidTransition
			}
			uc.logger.Error("MarkNoShow: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 3. Счетчик неявок и пересчет надежности
		if err := uc.clientRepo.IncrementCounters(txCtx, booking.ClientID, domain.ClientCounterDelta{NoShows: 1}); err != nil {
			uc.logger.Error("MarkNoShow: failed to increment counters for client id=%d: %v",
				booking.ClientID, err)
			return fmt.Errorf("%w: failed to increment counters: %v", ErrInternal, err)
		}

		if err := uc.reclassifyClient(txCtx, booking.ClientID); err != nil {
			return err
		}

		booking.Status = domain.StatusNoShow
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("MarkNoShow: booking id=%d marked no-show, captured=%t, master=%s, client=%s",
		result.ID, holdCaptured, masterComp.StringFixed(2), clientCredit.StringFixed(2))

	uc.notifier.BookingNoShow(ctx, result, masterComp, clientCredit)

	return &Response{
		Booking:            result,
		HoldCaptured:       holdCaptured,
		MasterCompensation: masterComp,
		ClientWalletCredit: clientCredit,
	}, nil
}

// recordSplit пишет обе записи разделения депозита в леджер и кредитует
// кошелек клиента
func (uc *UseCase) recordSplit(ctx context.Context, booking *domain.Booking, split slotta.Split) error {
	_, err := uc.transactionRepo.Create(ctx, &domain.Transaction{
		BookingID:   &booking.ID,
		MasterID:    &booking.MasterID,
		Type:        domain.TransactionHoldCapture,
		Amount:      split.MasterCompensation,
		Description: fmt.Sprintf("no-show compensation for booking %d", booking.ID),
	})
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to record master compensation: %v", err)
		return fmt.Errorf("%w: failed to record master compensation: %v", ErrInternal, err)
	}

	_, err = uc.transactionRepo.Create(ctx, &domain.Transaction{
		BookingID:   &booking.ID,
		ClientID:    &booking.ClientID,
		Type:        domain.TransactionWalletCredit,
		Amount:      split.ClientWalletCredit,
		Description: fmt.Sprintf("wallet credit for no-show booking %d", booking.ID),
	})
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to record wallet credit: %v", err)
		return fmt.Errorf("%w: failed to record wallet credit: %v", ErrInternal, err)
	}

	if err := uc.clientRepo.CreditWallet(ctx, booking.ClientID, split.ClientWalletCredit); err != nil {
		uc.logger.Error("MarkNoShow: failed to credit wallet for client id=%d: %v",
			booking.ClientID, err)
		return fmt.Errorf("%w: failed to credit wallet: %v", ErrInternal, err)
	}

	return nil
}

// reclassifyClient пересчитывает надежность клиента по актуальным счетчикам
func (uc *UseCase) reclassifyClient(ctx context.Context, clientID int64) error {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to get client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	reliability := slotta.DetermineReliability(client.TotalBookings, client.NoShows)
	if reliability == client.Reliability {
		return nil
	}

	if err := uc.clientRepo.SetReliability(ctx, clientID, reliability); err != nil {
		uc.logger.Error("MarkNoShow: failed to set reliability for client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: failed to set reliability: %v", ErrInternal, err)
	}

	uc.logger.Info("MarkNoShow: client id=%d reclassified %s -> %s",
		clientID, client.Reliability, reliability)
	return nil
}
