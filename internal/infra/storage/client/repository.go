package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/slotta-app/SlottaService/internal/domain"
	"github.com/slotta-app/SlottaService/pkg/dbmetrics"
	"github.com/slotta-app/SlottaService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var clientColumns = []string{
	"id",
	"email",
	"name",
	"phone",
	"total_bookings",
	"completed_bookings",
	"no_shows",
	"cancellations",
	"reliability",
	"wallet_balance",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента (reliability = new, нулевые счетчики)
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("email", "name", "phone", "reliability").
		Values(c.Email, c.Name, c.Phone, domain.ReliabilityNew).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.Reliability = domain.ReliabilityNew
	c.WalletBalance = decimal.Zero
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail получает клиента по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, "GetByEmail")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.Phone,
		&c.TotalBookings,
		&c.CompletedBookings,
		&c.NoShows,
		&c.Cancellations,
		&c.Reliability,
		&c.WalletBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// IncrementCounters атомарно инкрементирует счетчики клиента на стороне БД
// (col = col + n). Никогда не пишет прочитанный снапшот обратно, поэтому
// корректен при конкурентных бронированиях одного клиента.
func (r *Repository) IncrementCounters(ctx context.Context, id int64, delta domain.ClientCounterDelta) error {
	if delta == (domain.ClientCounterDelta{}) {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("clients").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	if delta.TotalBookings != 0 {
		builder = builder.Set("total_bookings", squirrel.Expr("total_bookings + ?", delta.TotalBookings))
	}
	if delta.CompletedBookings != 0 {
		builder = builder.Set("completed_bookings", squirrel.Expr("completed_bookings + ?", delta.CompletedBookings))
	}
	if delta.NoShows != 0 {
		builder = builder.Set("no_shows", squirrel.Expr("no_shows + ?", delta.NoShows))
	}
	if delta.Cancellations != 0 {
		builder = builder.Set("cancellations", squirrel.Expr("cancellations + ?", delta.Cancellations))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementCounters - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "IncrementCounters")
}

// CreditWallet атомарно увеличивает баланс кошелька клиента
func (r *Repository) CreditWallet(ctx context.Context, id int64, amount decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("wallet_balance", squirrel.Expr("wallet_balance + ?", amount)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreditWallet - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "CreditWallet")
}

// SetReliability устанавливает расчетный тег надежности клиента
func (r *Repository) SetReliability(ctx context.Context, id int64, reliability domain.ClientReliability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("reliability", reliability).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetReliability - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetReliability")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}
