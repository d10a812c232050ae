package cancel_booking

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// Инициаторы отмены
const (
	CancelledByCustomer = "customer"
	CancelledByVendor   = "vendor"
	CancelledByAdmin    = "admin"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64  // ID бронирования
	UserID      int64  // ID пользователя (из заголовка аутентификации)
	Reason      string // Причина отмены
	CancelledBy string // Инициатор: customer, vendor или admin
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID            int64            // ID бронирования
	CustomerID    int64            // ID покупателя
	VendorID      int64            // ID салона
	BookingDate   time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	Status        string           // Статус бронирования (cancelled)
	PaymentStatus string           // Статус оплаты после отмены
	FinalPrice    float64          // Итоговая цена

	CancellationReason *string // Причина отмены
	CancellationTokens int     // Штрафные токены покупателя
	CancelledAt        *time.Time

	RefundTransactionRef *string // Ссылка на транзакцию возврата (если была оплата)

	UpdatedAt time.Time // Время обновления
}
