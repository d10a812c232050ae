package expire_points

import (
	"net/http"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/api/handlers"
)

type SweepResponse struct {
	Processed int `json:"processed"`
}

type Handler struct {
	useCase ExpirePointsUseCase
	logger  Logger
}

func NewHandler(useCase ExpirePointsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/loyalty/expire
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/loyalty/expire - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/loyalty/expire - Sweep finished: processed=%d", resp.Processed)
	handlers.RespondJSON(w, http.StatusOK, &SweepResponse{Processed: resp.Processed})
}
