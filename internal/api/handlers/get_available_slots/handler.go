package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	getAvailableSlots "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/get_available_slots"
)

const (
	msgInvalidVendorID  = "некорректный ID салона"
	msgInvalidServiceID = "некорректный параметр serviceId"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVendorNotFound   = "салон не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/available-slots?serviceId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vendorID, err := strconv.ParseInt(vars["vendorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/available-slots - Invalid vendor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		VendorID:  vendorID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVendorNotFound):
			h.logger.Warn("GET /vendors/{id}/available-slots - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /vendors/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /vendors/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vendors/{id}/available-slots - Failed: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vendors/{id}/available-slots - OK: vendor_id=%d, service_id=%d, available=%d",
		vendorID, serviceID, len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
