package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус бронирования"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь видит только свои бронирования
	if userID != targetUserID {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: user_id=%d, target=%d", userID, targetUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *domain.BookingStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		parsed, err := models.ToDomainBookingStatus(statusStr)
		if err != nil {
			if errors.Is(err, models.ErrInvalidStatus) {
				h.logger.Warn("GET /users/{id}/bookings - Invalid status: %s", statusStr)
				handlers.RespondBadRequest(w, msgInvalidStatus)
				return
			}
		}
		status = &parsed
	}

	result, err := h.service.GetCustomerBookings(r.Context(), targetUserID, status)
	if err != nil {
		h.logger.Error("GET /users/{id}/bookings - Failed: user_id=%d, error=%v", targetUserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/bookings - Retrieved %d bookings: user_id=%d", len(result), targetUserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
