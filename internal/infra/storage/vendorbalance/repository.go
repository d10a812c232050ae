package vendorbalance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/dbmetrics"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/psqlbuilder"
)

// Repository репозиторий денормализованных счетчиков заработка салонов
// Источник истины - денежный леджер; счетчики поддерживаются в той же
// транзакции, что и записи леджера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория балансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// AddEarnings атомарно изменяет заработок салона
// delta положительна при расчете комиссии и отрицательна при возврате
func (r *Repository) AddEarnings(ctx context.Context, vendorID int64, delta float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO vendor_balances (vendor_id, total_earnings, pending_payouts, updated_at)
		VALUES ($1, $2, $2, NOW())
		ON CONFLICT (vendor_id)
		DO UPDATE SET
			total_earnings = vendor_balances.total_earnings + $2,
			pending_payouts = vendor_balances.pending_payouts + $2,
			updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, vendorID, delta); err != nil {
		return fmt.Errorf("%w: AddEarnings - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeductPayout атомарно уменьшает ожидающие выплаты с полом в 0
func (r *Repository) DeductPayout(ctx context.Context, vendorID int64, amount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE vendor_balances
		SET pending_payouts = GREATEST(0, pending_payouts - $2), updated_at = NOW()
		WHERE vendor_id = $1`

	result, err := executor.ExecContext(ctx, query, vendorID, amount)
	if err != nil {
		return fmt.Errorf("%w: DeductPayout - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeductPayout - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBalanceNotFound
	}

	return nil
}

// Get возвращает счетчики заработка салона
// Отсутствие строки означает нулевой баланс
func (r *Repository) Get(ctx context.Context, vendorID int64) (*domain.VendorBalance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"vendor_id",
		"total_earnings",
		"pending_payouts",
		"updated_at",
	).
		From("vendor_balances").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var balance domain.VendorBalance
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&balance.VendorID,
		&balance.TotalEarnings,
		&balance.PendingPayouts,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return &domain.VendorBalance{VendorID: vendorID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan balance: %v", ErrScanRow, err)
	}

	balance.UpdatedAt = updatedAt.Time

	return &balance, nil
}
