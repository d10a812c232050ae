package vendorservice

// Vendor модель салона из каталога VendorService
type Vendor struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	ManagerIDs     []int64        `json:"manager_ids"`
	OperatingHours OperatingHours `json:"operating_hours"`
}

// OperatingHours расписание работы салона по дням недели
type OperatingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
// BreakStart/BreakEnd задают перерыв, слоты в окне [BreakStart, BreakEnd) не выдаются
type DaySchedule struct {
	IsOpen     bool    `json:"is_open"`
	OpenTime   *string `json:"open_time,omitempty"`  // "09:00"
	CloseTime  *string `json:"close_time,omitempty"` // "17:00"
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

// Service модель услуги салона
type Service struct {
	ID              int64   `json:"id"`
	VendorID        int64   `json:"vendor_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	AddOns          []AddOn `json:"add_ons"`
}

// AddOn модель дополнительной услуги
type AddOn struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от VendorService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
