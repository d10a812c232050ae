package get_vendor_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/bookings"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/bookings/models"
)

const (
	msgInvalidVendorID = "некорректный ID салона"
	msgInvalidStatus   = "некорректный статус бронирования"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgVendorNotFound  = "салон не найден"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vendors/{vendorId}/bookings?startDate=&endDate=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vendorID, err := strconv.ParseInt(vars["vendorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/bookings - Invalid vendor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendors/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	filter := domain.VendorBookingsFilter{VendorID: vendorID}
	query := r.URL.Query()

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /vendors/{id}/bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /vendors/{id}/bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &end
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status, err := models.ToDomainBookingStatus(statusStr)
		if err != nil {
			h.logger.Warn("GET /vendors/{id}/bookings - Invalid status: %s", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	filter.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetVendorBookings(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrVendorNotFound):
			h.logger.Warn("GET /vendors/{id}/bookings - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /vendors/{id}/bookings - Access denied: vendor_id=%d, user_id=%d", vendorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /vendors/{id}/bookings - Failed: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vendors/{id}/bookings - Retrieved %d bookings: vendor_id=%d, user_id=%d",
		len(result), vendorID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
