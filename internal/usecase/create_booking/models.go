package create_booking

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      int64            // ID покупателя (из заголовка аутентификации)
	VendorID        int64            // ID салона
	ServiceID       int64            // ID основной услуги
	AddOnServiceIDs []int64          // ID дополнительных услуг (неизвестные игнорируются)
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	LoyaltyPoints   int              // Запрошенное списание баллов (опционально)
	PromoCode       *string          // Промокод (опционально)
	PromoDiscount   float64          // Скидка по промокоду, провалидирована выше по стеку
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID покупателя
	VendorID        int64            // ID салона
	ServiceID       int64            // ID услуги
	AddOnServiceIDs []int64          // Учтенные дополнительные услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Суммарная длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Статус оплаты

	// Разбивка цены
	BasePrice      float64 // Цена основной услуги
	AddOnPrice     float64 // Суммарная цена дополнительных услуг
	DiscountAmount float64 // Общая скидка (баллы + промокод)
	FinalPrice     float64 // Итог к оплате

	LoyaltyPointsUsed int     // Баллы, зарезервированные к списанию
	PromoCode         *string // Примененный промокод
	PromoDiscount     float64 // Скидка по промокоду

	Notes     *string   // Заметки
	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
