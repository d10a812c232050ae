package loyalty

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

// transactionColumns полный список колонок таблицы loyalty_transactions
var transactionColumns = []string{
	"id",
	"reference",
	"customer_id",
	"type",
	"points",
	"booking_id",
	"description",
	"expires_at",
	"expiry_processed",
	"created_at",
}

// Repository репозиторий append-only леджера баллов лояльности
// Леджер - источник истины; таблица loyalty_balances лишь кэш проекции,
// который можно пересобрать перечитыванием леджера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateTransaction добавляет запись в леджер
// Записи неизменяемы: UPDATE/DELETE для леджера не предусмотрены
func (r *Repository) CreateTransaction(ctx context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_transactions").
		Columns(
			"reference",
			"customer_id",
			"type",
			"points",
			"booking_id",
			"description",
			"expires_at",
			"expiry_processed",
		).
		Values(
			tx.Reference,
			tx.CustomerID,
			tx.Type,
			tx.Points,
			tx.BookingID,
			tx.Description,
			tx.ExpiresAt,
			tx.ExpiryProcessed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTransaction - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&tx.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTransaction - execute insert: %v", ErrExecQuery, err)
	}

	tx.CreatedAt = createdAt.Time

	return tx, nil
}

// GetByCustomerID получает всю историю леджера покупателя (новые записи первыми)
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("loyalty_transactions").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByPeriod получает все записи леджера за период (новые записи первыми)
// Обе границы опциональны
func (r *Repository) ListByPeriod(ctx context.Context, startDate, endDate *time.Time) ([]*domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(transactionColumns...).
		From("loyalty_transactions").
		OrderBy("created_at DESC, id DESC")

	if startDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *startDate})
	}
	if endDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *endDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumAvailablePoints вычисляет доступные баллы проекцией леджера:
// неистекшие earned плюс все redeemed (отрицательные), с полом в 0
func (r *Repository) SumAvailablePoints(ctx context.Context, customerID int64, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(points), 0)").
		From("loyalty_transactions").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"type": domain.LoyaltyEarned},
				squirrel.Or{
					squirrel.Eq{"expires_at": nil},
					squirrel.Gt{"expires_at": now},
				},
			},
			squirrel.Eq{"type": domain.LoyaltyRedeemed},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumAvailablePoints - build select query: %v", ErrBuildQuery, err)
	}

	var sum int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumAvailablePoints - scan sum: %v", ErrScanRow, err)
	}

	if sum < 0 {
		sum = 0
	}

	return sum, nil
}

// ListExpiredUnprocessed получает earned-записи с истекшим сроком действия,
// еще не обработанные sweep-ом. Внутри транзакции строки блокируются,
// чтобы два параллельных sweep-а не списали одни и те же баллы дважды
func (r *Repository) ListExpiredUnprocessed(ctx context.Context, now time.Time, limit uint64) ([]*domain.LoyaltyTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(transactionColumns...).
		From("loyalty_transactions").
		Where(squirrel.Eq{"type": domain.LoyaltyEarned}).
		Where(squirrel.Eq{"expiry_processed": false}).
		Where(squirrel.Lt{"expires_at": now}).
		OrderBy("expires_at ASC, id ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredUnprocessed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredUnprocessed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// MarkExpiryProcessed помечает earned-запись обработанной sweep-ом
// Единственное разрешенное изменение записи леджера: points не трогаем,
// флаг лишь гарантирует идемпотентность списания
func (r *Repository) MarkExpiryProcessed(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("loyalty_transactions").
		Set("expiry_processed", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"expiry_processed": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkExpiryProcessed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkExpiryProcessed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkExpiryProcessed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// AdjustBalance атомарно изменяет кэш баланса покупателя
// Пол в 0 соответствует проекции availablePoints, которая не бывает отрицательной
func (r *Repository) AdjustBalance(ctx context.Context, customerID int64, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO loyalty_balances (customer_id, points, updated_at)
		VALUES ($1, GREATEST(0, $2), NOW())
		ON CONFLICT (customer_id)
		DO UPDATE SET points = GREATEST(0, loyalty_balances.points + $2), updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, customerID, delta); err != nil {
		return fmt.Errorf("%w: AdjustBalance - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanTransactions сканирует результаты запроса в слайс записей леджера
func scanTransactions(rows *sql.Rows) ([]*domain.LoyaltyTransaction, error) {
	transactions := make([]*domain.LoyaltyTransaction, 0)

	for rows.Next() {
		var tx domain.LoyaltyTransaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&tx.ID,
			&tx.Reference,
			&tx.CustomerID,
			&tx.Type,
			&tx.Points,
			&tx.BookingID,
			&tx.Description,
			&tx.ExpiresAt,
			&tx.ExpiryProcessed,
			&createdAt,
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
