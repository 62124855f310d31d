package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
	"github.com/slotta-app/SlottaService/pkg/dbmetrics"
	"github.com/slotta-app/SlottaService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var transactionColumns = []string{
	"id",
	"booking_id",
	"master_id",
	"client_id",
	"type",
	"amount",
	"description",
	"created_at",
}

// Repository репозиторий леджера. Записи immutable: только INSERT и SELECT.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория транзакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись леджера
func (r *Repository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("transactions").
		Columns("booking_id", "master_id", "client_id", "type", "amount", "description").
		Values(t.BookingID, t.MasterID, t.ClientID, t.Type, t.Amount, t.Description).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByMasterID получает транзакции мастера, новые первыми, с пагинацией
func (r *Repository) GetByMasterID(ctx context.Context, masterID int64, limit, offset uint64) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.BookingID,
			&t.MasterID,
			&t.ClientID,
			&t.Type,
			&t.Amount,
			&t.Description,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMasterID: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - rows: %v", ErrExecQuery, err)
	}

	return transactions, nil
}

// SumByMasterAndType считает сумму транзакций мастера указанного типа.
// COALESCE, чтобы отсутствие записей давало 0, а не NULL.
func (r *Repository) SumByMasterAndType(ctx context.Context, masterID int64, txType domain.TransactionType) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.Eq{"master_id": masterID, "type": txType}).
		ToSql()

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumByMasterAndType - build select query: %v", ErrBuildQuery, err)
	}

	var sum decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumByMasterAndType: %v", ErrScanRow, err)
	}

	return sum, nil
}
