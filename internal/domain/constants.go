package domain

// Default billing and loyalty rates
// Реальные значения задаются в config.toml, здесь дефолты для случая,
// когда секция в конфиге не заполнена
const (
	DefaultCommissionRate        = 0.22 // платформа забирает 22% от финальной цены
	DefaultPointsPerCurrencyUnit = 1.0  // 1 балл за каждую денежную единицу
	DefaultRedemptionRate        = 1.0  // 1 балл = 1 денежная единица скидки
	DefaultMinRedemptionPoints   = 100
	DefaultPointsExpiryDays      = 365
)

// Slot generation constants
const (
	SlotGranularityMinutes = 30 // фиксированный шаг сетки слотов
)

// Cancellation token policy (customer-initiated cancellations only)
const (
	TokensLateCancel         = 2 // отмена менее чем за 2 часа
	TokensNearCancel         = 1 // отмена менее чем за 24 часа
	TokensNoShow             = 3 // неявка
	LateCancelThresholdHours = 2
	NearCancelThresholdHours = 24
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAddOnsPerBooking         = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот
// Используется при подсчете занятых слотов на дату
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses список конечных статусов
// Из этих статусов переходы запрещены
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
