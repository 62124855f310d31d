package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/slotta-app/SlottaService/internal/domain"
	"github.com/slotta-app/SlottaService/pkg/dbmetrics"
	"github.com/slotta-app/SlottaService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"master_id",
	"client_id",
	"service_id",
	"booking_date",
	"duration_minutes",
	"service_price",
	"slotta_amount",
	"status",
	"payment_hold_ref",
	"payment_authorized",
	"risk_score",
	"reschedule_deadline",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её; иначе выполняет обычный запрос без транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"master_id",
			"client_id",
			"service_id",
			"booking_date",
			"duration_minutes",
			"service_price",
			"slotta_amount",
			"status",
			"payment_hold_ref",
			"payment_authorized",
			"risk_score",
			"reschedule_deadline",
			"notes",
		).
		Values(
			booking.MasterID,
			booking.ClientID,
			booking.ServiceID,
			booking.BookingDate,
			booking.DurationMinutes,
			booking.ServicePrice,
			booking.SlottaAmount,
			booking.Status,
			booking.PaymentHoldRef,
			booking.PaymentAuthorized,
			booking.RiskScore,
			booking.RescheduleDeadline,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (FOR UPDATE).
// Используется в транзакциях перехода статуса: конкурентный переход на той же
// строке будет ждать и увидит уже обновленный статус.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByID: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает бронирования клиента, опционально по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	return r.queryBookings(ctx, builder, "GetByClientID")
}

// GetByMasterWithFilter получает бронирования мастера с гибкой фильтрацией
// по периоду и статусу
func (r *Repository) GetByMasterWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"master_id": filter.MasterID}).
		OrderBy("booking_date ASC")

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": domain.TransitionableStatuses})
	}

	return r.queryBookings(ctx, builder, "GetByMasterWithFilter")
}

// UpdateStatusFrom переводит бронирование в новый статус с precondition на
// текущий статус. Если строка уже не в одном из from-статусов, ни одна
// строка не обновляется и возвращается ErrStatusPrecondition: проигравший
// из двух конкурентных переходов не проходит.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, to domain.BookingStatus, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatusFrom")
}

// Reschedule обновляет дату бронирования и дедлайн отмены с тем же
// precondition на статус, что и UpdateStatusFrom
func (r *Repository) Reschedule(ctx context.Context, id int64, newDate, newDeadline time.Time, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", newDate).
		Set("reschedule_deadline", newDeadline).
		Set("status", domain.StatusRescheduled).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reschedule")
}

// StatusCounts агрегаты по статусам бронирований мастера (для аналитики)
func (r *Repository) StatusCounts(ctx context.Context, masterID int64) (map[domain.BookingStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"master_id": masterID}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: StatusCounts: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: StatusCounts - rows: %v", ErrExecQuery, err)
	}

	return counts, nil
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
		return ErrStatusPrecondition
	}
	return nil
}

func (r *Repository) queryBookings(ctx context.Context, builder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows: %v", ErrExecQuery, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.MasterID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.DurationMinutes,
		&booking.ServicePrice,
		&booking.SlottaAmount,
		&booking.Status,
		&booking.PaymentHoldRef,
		&booking.PaymentAuthorized,
		&booking.RiskScore,
		&booking.RescheduleDeadline,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
