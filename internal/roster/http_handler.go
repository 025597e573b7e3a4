package roster

import (
	"errors"
	"net/http"

	"pokecatcher/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type moveReq struct {
	RecordID     string    `json:"recordId" validate:"required"`
	From         *Location `json:"from" validate:"required"`
	To           *Location `json:"to" validate:"required"`
	OverRecordID string    `json:"overRecordId"`
}

// Pool handles GET /v1/me/pool
// @Summary Unassigned Pokemon
// @Tags roster
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/me/pool [get]
func (h *HTTPHandler) Pool(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	pool, err := h.service.Pool(r.Context(), trainer.ID)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, pool, map[string]any{"total": len(pool)})
}

// Move handles POST /v1/me/roster/moves
// @Summary Move a Pokemon between the pool and a team
// @Description from/to are "pool" or "team:<id>"; overRecordId reorders within a team
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body moveReq true "Move"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /v1/me/roster/moves [post]
func (h *HTTPHandler) Move(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	var req moveReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", details)
		return
	}

	team, err := h.service.Move(r.Context(), trainer.ID, Move{
		RecordID:     req.RecordID,
		From:         *req.From,
		To:           *req.To,
		OverRecordID: req.OverRecordID,
	})
	switch {
	case err == nil:
		httpx.JSONSuccess(w, r, team, nil)
	case errors.Is(err, ErrTeamFull):
		httpx.JSONError(w, r, http.StatusConflict, "TEAM_FULL", err.Error(), nil)
	case errors.Is(err, ErrCrossTeamMove):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "CROSS_TEAM_MOVE", err.Error(), nil)
	default:
		httpx.JSONDomainError(w, r, err)
	}
}
