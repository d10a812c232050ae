package get_available_slots

import (
	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	getAvailableSlots "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	VendorID        int64               `json:"vendorId"`
	ServiceID       int64               `json:"serviceId"`
	Date            string              `json:"date"`
	DurationMinutes int                 `json:"durationMinutes"`
	AvailableSlots  []string            `json:"availableSlots"`
	BookedSlots     []string            `json:"bookedSlots"`
	OperatingHours  OperatingHoursModel `json:"operatingHours"`
}

// OperatingHoursModel режим работы салона на запрошенную дату
type OperatingHoursModel struct {
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`
	CloseTime  *string `json:"closeTime,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	available := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		available[i] = slot.String()
	}

	booked := make([]string, len(resp.BookedSlots))
	for i, slot := range resp.BookedSlots {
		booked[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		VendorID:        resp.VendorID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		AvailableSlots:  available,
		BookedSlots:     booked,
		OperatingHours: OperatingHoursModel{
			IsOpen:     resp.OperatingHours.IsOpen,
			OpenTime:   resp.OperatingHours.OpenTime,
			CloseTime:  resp.OperatingHours.CloseTime,
			BreakStart: resp.OperatingHours.BreakStart,
			BreakEnd:   resp.OperatingHours.BreakEnd,
		},
	}
}
