package loyalty_analytics

import (
	"net/http"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

const (
	msgInvalidStartDate = "некорректная дата начала периода"
	msgInvalidEndDate   = "некорректная дата конца периода"
)

type Handler struct {
	loyaltyService LoyaltyService
	logger         Logger
}

func NewHandler(loyaltyService LoyaltyService, logger Logger) *Handler {
	return &Handler{
		loyaltyService: loyaltyService,
		logger:         logger,
	}
}

// Handle GET /api/v1/admin/loyalty/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var startDate, endDate *time.Time
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/loyalty/analytics - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		startDate = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/loyalty/analytics - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		endDate = &parsed
	}

	summary, err := h.loyaltyService.PlatformAnalytics(r.Context(), startDate, endDate)
	if err != nil {
		h.logger.Error("GET /admin/loyalty/analytics - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/loyalty/analytics - Analytics returned: customers=%d", summary.ActiveCustomers)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(summary))
}
