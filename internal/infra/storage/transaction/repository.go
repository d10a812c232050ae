package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/dbmetrics"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/psqlbuilder"
)

// transactionColumns полный список колонок таблицы transactions
var transactionColumns = []string{
	"id",
	"reference",
	"type",
	"booking_id",
	"vendor_id",
	"customer_id",
	"amount",
	"commission_amount",
	"description",
	"status",
	"created_at",
	"processed_at",
}

// Repository репозиторий append-only леджера денежных транзакций
// (комиссии, выплаты, возвраты). Записи неизменяемы после создания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория транзакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в денежный леджер
func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("transactions").
		Columns(
			"reference",
			"type",
			"booking_id",
			"vendor_id",
			"customer_id",
			"amount",
			"commission_amount",
			"description",
			"status",
			"processed_at",
		).
		Values(
			tx.Reference,
			tx.Type,
			tx.BookingID,
			tx.VendorID,
			tx.CustomerID,
			tx.Amount,
			tx.CommissionAmount,
			tx.Description,
			tx.Status,
			tx.ProcessedAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tx.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	tx.CreatedAt = createdAt.Time

	return tx, nil
}

// ExistsForBooking проверяет наличие записи заданного типа по бронированию
// Используется как settled-once guard при подтверждении оплаты
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64, txType domain.TransactionType) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"type": txType}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByVendorID получает транзакции салона указанных типов (новые первыми)
func (r *Repository) GetByVendorID(ctx context.Context, vendorID int64, types []domain.TransactionType) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		OrderBy("created_at DESC, id DESC")

	if len(types) > 0 {
		typeStrings := make([]string, len(types))
		for i, t := range types {
			typeStrings[i] = string(t)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": typeStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetCommissions получает комиссионные транзакции за период
// Обе границы опциональны
func (r *Repository) GetCommissions(ctx context.Context, startDate, endDate *time.Time) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"type": domain.TransactionCommission}).
		OrderBy("created_at DESC, id DESC")

	if startDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *startDate})
	}
	if endDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *endDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCommissions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCommissions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// scanTransactions сканирует результаты запроса в слайс транзакций
func scanTransactions(rows *sql.Rows) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)

	for rows.Next() {
		var tx domain.Transaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&tx.ID,
			&tx.Reference,
			&tx.Type,
			&tx.BookingID,
			&tx.VendorID,
			&tx.CustomerID,
			&tx.Amount,
			&tx.CommissionAmount,
			&tx.Description,
			&tx.Status,
			&createdAt,
			&tx.ProcessedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanTransactions - scan row: %v", ErrScanRow, err)
		}

		tx.CreatedAt = createdAt.Time
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTransactions - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}
