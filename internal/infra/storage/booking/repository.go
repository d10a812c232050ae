package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/dbmetrics"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings для SELECT запросов
var bookingColumns = []string{
	"id",
	"customer_id",
	"vendor_id",
	"service_id",
	"addon_service_ids",
	"booking_date",
	"start_time",
	"duration_minutes",
	"base_price",
	"addon_price",
	"discount_amount",
	"final_price",
	"commission_amount",
	"vendor_earnings",
	"status",
	"payment_status",
	"payment_method",
	"payment_ref",
	"promo_code",
	"promo_discount",
	"loyalty_points_used",
	"loyalty_points_earned",
	"notes",
	"cancellation_reason",
	"cancellation_tokens",
	"cancelled_at",
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

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// создание бронирования вместе с проверкой доступности слота должно
// выполняться в одной сериализуемой транзакции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"vendor_id",
			"service_id",
			"addon_service_ids",
			"booking_date",
			"start_time",
			"duration_minutes",
			"base_price",
			"addon_price",
			"discount_amount",
			"final_price",
			"commission_amount",
			"vendor_earnings",
			"status",
			"payment_status",
			"promo_code",
			"promo_discount",
			"loyalty_points_used",
			"loyalty_points_earned",
			"notes",
			"cancellation_tokens",
		).
		Values(
			booking.CustomerID,
			booking.VendorID,
			booking.ServiceID,
			pq.Array(booking.AddOnServiceIDs),
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.BasePrice,
			booking.AddOnPrice,
			booking.DiscountAmount,
			booking.FinalPrice,
			booking.CommissionAmount,
			booking.VendorEarnings,
			booking.Status,
			booking.PaymentStatus,
			booking.PromoCode,
			booking.PromoDiscount,
			booking.LoyaltyPointsUsed,
			booking.LoyaltyPointsEarned,
			booking.Notes,
			booking.CancellationTokens,
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
// Внутри транзакции строки блокируются через FOR UPDATE - это
// idempotency-guard для переходов жизненного цикла (оплата, отмена)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований покупателя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByVendorWithFilter получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
func (r *Repository) GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vendor_id": filter.VendorID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Без явного статуса по умолчанию отдаем только активные бронирования
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	// Для выборки на конкретную дату сортируем по времени начала
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Внутри транзакции (создание бронирования) блокируем строки дня
	if dbmetrics.IsInTransaction(ctx) && filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// ConfirmPayment переводит бронирование в confirmed/paid и фиксирует
// расчетные суммы комиссии и начисленных баллов
func (r *Repository) ConfirmPayment(ctx context.Context, id int64, params domain.PaymentConfirmation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("payment_method", params.PaymentMethod).
		Set("payment_ref", params.PaymentRef).
		Set("commission_amount", params.CommissionAmount).
		Set("vendor_earnings", params.VendorEarnings).
		Set("loyalty_points_earned", params.LoyaltyPointsEarned).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "ConfirmPayment", query, args)
}

// Cancel отменяет бронирование с указанием причины и штрафных токенов
// paymentStatus передается явно: refunded для оплаченных, pending для остальных
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, tokens int, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("payment_status", paymentStatus).
		Set("cancellation_reason", reason).
		Set("cancellation_tokens", tokens).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// SetNoShow переводит бронирование в no_show со штрафными токенами
func (r *Repository) SetNoShow(ctx context.Context, id int64, tokens int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusNoShow).
		Set("cancellation_tokens", tokens).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetNoShow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetNoShow", query, args)
}

// execExpectingRow выполняет UPDATE и проверяет, что затронута ровно одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку результата в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var addOnIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VendorID,
		&booking.ServiceID,
		&addOnIDs,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.BasePrice,
		&booking.AddOnPrice,
		&booking.DiscountAmount,
		&booking.FinalPrice,
		&booking.CommissionAmount,
		&booking.VendorEarnings,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.PaymentRef,
		&booking.PromoCode,
		&booking.PromoDiscount,
		&booking.LoyaltyPointsUsed,
		&booking.LoyaltyPointsEarned,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancellationTokens,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	booking.AddOnServiceIDs = addOnIDs
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
