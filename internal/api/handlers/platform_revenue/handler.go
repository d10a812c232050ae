package platform_revenue

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
	billingService BillingService
	logger         Logger
}

func NewHandler(billingService BillingService, logger Logger) *Handler {
	return &Handler{
		billingService: billingService,
		logger:         logger,
	}
}

// Handle GET /api/v1/admin/platform-revenue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var startDate, endDate *time.Time
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/platform-revenue - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		startDate = &parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/platform-revenue - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		endDate = &parsed
	}

	summary, err := h.billingService.PlatformRevenue(r.Context(), startDate, endDate)
	if err != nil {
		h.logger.Error("GET /admin/platform-revenue - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/platform-revenue - Revenue returned: bookings=%d", summary.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(summary))
}
