package get_loyalty_points

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type PointsResponse struct {
	AvailablePoints int     `json:"availablePoints"`
	RedemptionValue float64 `json:"redemptionValue"`
}

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/loyalty/points
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pathUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/loyalty/points - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/loyalty/points - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if pathUserID != userID {
		h.logger.Warn("GET /users/{id}/loyalty/points - Access denied: path_user_id=%d, user_id=%d", pathUserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	points, err := h.service.AvailablePoints(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/loyalty/points - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/loyalty/points - Balance returned: user_id=%d, points=%d", userID, points)
	handlers.RespondJSON(w, http.StatusOK, &PointsResponse{
		AvailablePoints: points,
		RedemptionValue: h.service.RedemptionValue(points),
	})
}
