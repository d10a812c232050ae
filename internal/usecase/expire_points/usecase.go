package expire_points

import (
	"context"
	"fmt"
)

// defaultBatchSize размер партии истекших записей за одну транзакцию
const defaultBatchSize = 500

// UseCase use case списания истекших баллов лояльности.
// Запускается фоновым тикером из main и администраторским эндпоинтом.
// Каждая партия обрабатывается в отдельной транзакции: блокировки
// держатся недолго, а прерванный прогон можно безопасно перезапустить
type UseCase struct {
	loyaltySvc LoyaltyService
	txManager  TransactionManager
	batchSize  uint64
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(loyaltySvc LoyaltyService, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		loyaltySvc: loyaltySvc,
		txManager:  txManager,
		batchSize:  defaultBatchSize,
		logger:     logger,
	}
}

// Response результат прогона списания истекших баллов
type Response struct {
	Processed int // Количество обработанных записей леджера
}

// Execute выполняет прогон списания истекших баллов до исчерпания записей
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	total := 0

	for {
		var processed int

		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			var err error
			processed, err = uc.loyaltySvc.ExpireOldPoints(txCtx, uc.batchSize)
			return err
		})
		if err != nil {
			uc.logger.Error("ExpirePoints: batch failed after %d processed entries: %v", total, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		total += processed
		if processed == 0 {
			break
		}
	}

	if total > 0 {
		uc.logger.Info("ExpirePoints: processed %d expired ledger entries", total)
	}

	return &Response{Processed: total}, nil
}
