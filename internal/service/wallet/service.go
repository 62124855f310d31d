package wallet

import (
	"context"
	"fmt"

	"github.com/slotta-app/SlottaService/internal/domain"
	"github.com/slotta-app/SlottaService/internal/service/wallet/models"
)

const defaultTransactionsLimit = 50

// Service сервис сводок по средствам и аналитике мастера
type Service struct {
	transactionRepo TransactionRepository
	bookingRepo     BookingRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(transactionRepo TransactionRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		bookingRepo:     bookingRepo,
		logger:          logger,
	}
}

// GetMasterWallet возвращает сводку по средствам мастера: сумма
// захваченных депозитов, выплаты и доступный остаток.
func (s *Service) GetMasterWallet(ctx context.Context, masterID int64) (*models.WalletResponse, error) {
	s.logger.Info("GetMasterWallet: fetching wallet for master=%d", masterID)

	if masterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	compensation, err := s.transactionRepo.SumByMasterAndType(ctx, masterID, domain.TransactionHoldCapture)
	if err != nil {
		s.logger.Error("GetMasterWallet: failed to sum compensation for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: failed to sum compensation: %v", ErrInternal, err)
	}

	payouts, err := s.transactionRepo.SumByMasterAndType(ctx, masterID, domain.TransactionPayout)
	if err != nil {
		s.logger.Error("GetMasterWallet: failed to sum payouts for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: failed to sum payouts: %v", ErrInternal, err)
	}

	return &models.WalletResponse{
		MasterID:          masterID,
		TotalCompensation: compensation.StringFixed(2),
		TotalPayouts:      payouts.StringFixed(2),
		AvailableBalance:  compensation.Sub(payouts).StringFixed(2),
	}, nil
}

// GetMasterTransactions возвращает страницу записей леджера мастера
func (s *Service) GetMasterTransactions(ctx context.Context, masterID int64, limit, offset uint64) (*models.TransactionListResponse, error) {
	s.logger.Info("GetMasterTransactions: fetching transactions for master=%d, limit=%d, offset=%d",
		masterID, limit, offset)

	if masterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	if limit == 0 {
		limit = defaultTransactionsLimit
	}

	transactions, err := s.transactionRepo.GetByMasterID(ctx, masterID, limit, offset)
	if err != nil {
		s.logger.Error("GetMasterTransactions: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTransactionList(transactions), nil
}

// GetMasterAnalytics возвращает агрегаты по бронированиям мастера:
// распределение по статусам, долю неявок и защищенную выручку.
func (s *Service) GetMasterAnalytics(ctx context.Context, masterID int64) (*models.AnalyticsResponse, error) {
	s.logger.Info("GetMasterAnalytics: fetching analytics for master=%d", masterID)

	if masterID <= 0 {
		return nil, fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}

	counts, err := s.bookingRepo.StatusCounts(ctx, masterID)
	if err != nil {
		s.logger.Error("GetMasterAnalytics: failed to get status counts for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: failed to get status counts: %v", ErrInternal, err)
	}

	protected, err := s.transactionRepo.SumByMasterAndType(ctx, masterID, domain.TransactionHoldCapture)
	if err != nil {
		s.logger.Error("GetMasterAnalytics: failed to sum protected revenue for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: failed to sum protected revenue: %v", ErrInternal, err)
	}

	total := 0
	statusCounts := make(map[string]int, len(counts))
	for status, n := range counts {
		statusCounts[string(status)] = n
		total += n
	}

	// Доля неявок считается только по завершившимся визитам
	finished := counts[domain.StatusCompleted] + counts[domain.StatusNoShow]
	noShowRate := 0.0
	if finished > 0 {
		noShowRate = float64(counts[domain.StatusNoShow]) / float64(finished)
	}

	return &models.AnalyticsResponse{
		MasterID:         masterID,
		TotalBookings:    total,
		StatusCounts:     statusCounts,
		NoShowRate:       noShowRate,
		ProtectedRevenue: protected.StringFixed(2),
	}, nil
}
