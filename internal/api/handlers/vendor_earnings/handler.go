package vendor_earnings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

const (
	msgInvalidVendorID = "некорректный ID вендора"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgVendorNotFound  = "вендор не найден"
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

// Handle GET /api/v1/vendors/{vendorId}/earnings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vendorID, err := strconv.ParseInt(vars["vendorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /vendors/{id}/earnings - Invalid vendor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVendorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendors/{id}/earnings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vendor, err := h.vendorClient.GetVendor(r.Context(), vendorID)
	if err != nil {
		if errors.Is(err, vendorservice.ErrVendorNotFound) {
			h.logger.Warn("GET /vendors/{id}/earnings - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)
			return
		}
		h.logger.Error("GET /vendors/{id}/earnings - Vendor lookup failed: vendor_id=%d, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	if !isManager(vendor, userID) {
		h.logger.Warn("GET /vendors/{id}/earnings - Access denied: vendor_id=%d, user_id=%d", vendorID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	summary, err := h.billingService.VendorEarnings(r.Context(), vendorID)
	if err != nil {
		h.logger.Error("GET /vendors/{id}/earnings - Failed: vendor_id=%d, error=%v", vendorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vendors/{id}/earnings - Earnings returned: vendor_id=%d, transactions=%d", vendorID, len(summary.Transactions))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(vendorID, summary))
}

func isManager(vendor *vendorservice.Vendor, userID int64) bool {
	for _, managerID := range vendor.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}
