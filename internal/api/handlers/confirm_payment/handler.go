package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	confirmPayment "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidState       = "оплату нельзя подтвердить в текущем статусе бронирования"
	msgInsufficientPoints = "недостаточно баллов лояльности"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingID:     bookingID,
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		PaymentRef:    req.PaymentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrPermissionDenied):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Permission denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, confirmPayment.ErrInsufficientPoints):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Insufficient points: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgInsufficientPoints)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/confirm-payment - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-payment - Payment confirmed: booking_id=%d, user_id=%d, already_paid=%v",
		bookingID, userID, result.AlreadyPaid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
