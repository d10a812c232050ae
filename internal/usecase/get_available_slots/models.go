package get_available_slots

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	VendorID  int64     // ID салона
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	VendorID        int64              // ID салона
	ServiceID       int64              // ID услуги
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность услуги в минутах
	AvailableSlots  []types.TimeString // Свободные времена начала
	BookedSlots     []types.TimeString // Занятые времена начала
	OperatingHours  OperatingHours     // Режим работы салона в этот день
}

// OperatingHours режим работы салона на запрошенную дату
type OperatingHours struct {
	IsOpen     bool    // Работает ли салон в этот день
	OpenTime   *string // Время открытия (например, "09:00")
	CloseTime  *string // Время закрытия
	BreakStart *string // Начало перерыва (опционально)
	BreakEnd   *string // Конец перерыва (опционально)
}
