package process_payout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/billing"
)

const (
	msgInvalidVendorID = "некорректный ID вендора"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgVendorNotFound  = "вендор не найден"
	msgInvalidAmount   = "некорректная сумма выплаты"
)

type Handler struct {
	billingService BillingService
	vendorClient   VendorServiceClient
	logger         Logger
}

func NewHandler(billingService BillingService, vendorClient VendorServiceClient, logger Logger) *Handler {
	return &Handler{
		billingService: billingService,
		vendorClient:   vendorClient,
		logger:         logger,
	}
}

// Handle POST /api/v1/vendors/{vendorId}/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vendorID, err := strconv.ParseInt(vars["vendorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /vendors/{id}/payouts - Invalid vendor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /vendors/{id}/payouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors/{id}/payouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	vendor, err := h.vendorClient.GetVendor(r.Context(), vendorID)
	if err != nil {
		if errors.Is(err, vendorservice.ErrVendorNotFound) {
			h.logger.Warn("POST /vendors/{id}/payouts - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)
			return
		}
		h.logger.Error("POST /vendors/{id}/payouts - Vendor lookup failed: vendor_id=%d, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	if !isManager(vendor, userID) {
		h.logger.Warn("POST /vendors/{id}/payouts - Access denied: vendor_id=%d, user_id=%d", vendorID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	ref, err := h.billingService.Payout(r.Context(), vendorID, req.Amount)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidAmount) {
			h.logger.Warn("POST /vendors/{id}/payouts - Invalid amount: vendor_id=%d, amount=%.2f", vendorID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)
			return
		}
		h.logger.Error("POST /vendors/{id}/payouts - Failed: vendor_id=%d, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /vendors/{id}/payouts - Payout recorded: vendor_id=%d, amount=%.2f, ref=%s", vendorID, req.Amount, ref)
	handlers.RespondJSON(w, http.StatusCreated, &PayoutResponse{
		VendorID:       vendorID,
		Amount:         req.Amount,
		TransactionRef: ref,
	})
}

func isManager(vendor *vendorservice.Vendor, userID int64) bool {
	for _, managerID := range vendor.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}
