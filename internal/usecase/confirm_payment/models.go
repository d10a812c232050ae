package confirm_payment

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// Request модель запроса на подтверждение оплаты
type Request struct {
	BookingID     int64  // ID бронирования
	UserID        int64  // ID пользователя (из заголовка аутентификации)
	PaymentMethod string // Способ оплаты ("card", "upi", ...)
	PaymentRef    string // Идентификатор платежа во внешней платежной системе
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	ID              int64            // ID бронирования
	CustomerID      int64            // ID покупателя
	VendorID        int64            // ID салона
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Статус оплаты
	PaymentMethod   *string          // Способ оплаты
	PaymentRef      *string          // Идентификатор платежа

	FinalPrice       float64 // Итоговая цена
	CommissionAmount float64 // Комиссия платформы
	VendorEarnings   float64 // Заработок салона

	LoyaltyPointsUsed   int // Списанные баллы
	LoyaltyPointsEarned int // Начисленные баллы

	AlreadyPaid bool // true, если оплата была подтверждена ранее

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
