package create_booking

import (
	"errors"
	"net/http"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	createBooking "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVendorNotFound     = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgVendorClosed       = "салон закрыт в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgBelowMinRedemption = "запрошено меньше минимального количества баллов"
	msgInsufficientPoints = "недостаточно баллов лояльности"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, vendor_id=%d", userID, req.VendorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /bookings - Vendor not found: vendor_id=%d", req.VendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: vendor_id=%d, service_id=%d", req.VendorID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrVendorClosed):
			h.logger.Warn("POST /bookings - Vendor closed: user_id=%d, vendor_id=%d", userID, req.VendorID)
			handlers.RespondBadRequest(w, msgVendorClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, vendor_id=%d", userID, req.VendorID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, vendor_id=%d", userID, req.VendorID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, vendor_id=%d", userID, req.VendorID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrBelowMinimumRedemption):
			h.logger.Warn("POST /bookings - Below minimum redemption: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgBelowMinRedemption)

		case errors.Is(err, createBooking.ErrInsufficientPoints):
			h.logger.Warn("POST /bookings - Insufficient points: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInsufficientPoints)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, vendor_id=%d, error=%v",
				userID, req.VendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, vendor_id=%d",
		result.ID, userID, req.VendorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
