package collection

import (
	"context"
	"errors"
	"net/http"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/httpx"
)

// SpeciesLookup resolves a species id to its catalog entry.
type SpeciesLookup interface {
	Get(ctx context.Context, id int) (catalog.Entry, error)
}

type HTTPHandler struct {
	service *Service
	species SpeciesLookup
}

func NewHTTPHandler(service *Service, species SpeciesLookup) *HTTPHandler {
	return &HTTPHandler{service: service, species: species}
}

type catchReq struct {
	SpeciesID int    `json:"speciesId" validate:"required,gt=0"`
	Nickname  string `json:"nickname" validate:"required,notblank,max=40"`
}

type editReq struct {
	Nickname     *string `json:"nickname" validate:"omitempty,notblank,max=40"`
	DateCaught   *string `json:"datecaught" validate:"omitempty,calendar_date"`
	FavoriteFood *string `json:"favfood" validate:"omitempty,max=80"`
}

type teamReq struct {
	Name string `json:"name" validate:"max=40"`
}

// ListPokemons handles GET /v1/me/pokemons
// @Summary List caught Pokemon
// @Tags collection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/me/pokemons [get]
func (h *HTTPHandler) ListPokemons(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	state, err := h.service.Load(r.Context(), trainer.ID)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, state.Owned, map[string]any{"total": len(state.Owned)})
}

// Catch handles POST /v1/me/pokemons
// @Summary Catch a Pokemon
// @Tags collection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catchReq true "Species and nickname"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/me/pokemons [post]
func (h *HTTPHandler) Catch(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	var req catchReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", details)
		return
	}

	entry, err := h.species.Get(r.Context(), req.SpeciesID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Pokemon not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FAILED", "Pokemon data is unavailable", nil)
		return
	}

	caught, err := h.service.Catch(r.Context(), trainer.ID, entry, req.Nickname)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, caught)
}

// Edit handles PATCH /v1/me/pokemons/{id}
// @Summary Edit a caught Pokemon
// @Tags collection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record id"
// @Param request body editReq true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/me/pokemons/{id} [patch]
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	var req editReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", details)
		return
	}

	patch := Patch{Nickname: req.Nickname, DateCaught: req.DateCaught, FavoriteFood: req.FavoriteFood}
	updated, err := h.service.Edit(r.Context(), trainer.ID, r.PathValue("id"), patch)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, updated, nil)
}

// Release handles DELETE /v1/me/pokemons/{id}
// @Summary Release a caught Pokemon
// @Description Deletes the record and removes it from every team
// @Tags collection
// @Security BearerAuth
// @Param id path string true "Record id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/me/pokemons/{id} [delete]
func (h *HTTPHandler) Release(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	if err := h.service.Release(r.Context(), trainer.ID, r.PathValue("id")); err != nil {
		if errors.Is(err, ErrPartialCascade) {
			httpx.JSONError(w, r, http.StatusBadGateway, "PARTIAL_CASCADE", "Released, but some teams could not be updated", nil)
			return
		}
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// ListTeams handles GET /v1/me/teams
// @Summary List teams
// @Description Creates the default team on first access
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/me/teams [get]
func (h *HTTPHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	state, err := h.service.EnsureDefaultTeam(r.Context(), trainer.ID)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, state.Teams, nil)
}

// CreateTeam handles POST /v1/me/teams
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body teamReq false "Team name"
// @Success 201 {object} httpx.SuccessResponse
// @Router /v1/me/teams [post]
func (h *HTTPHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	var req teamReq
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
			return
		}
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", details)
		return
	}

	team, err := h.service.CreateTeam(r.Context(), trainer.ID, req.Name)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, team)
}

// RenameTeam handles PATCH /v1/me/teams/{id}
// @Summary Rename a team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team id"
// @Param request body teamReq true "New name"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/me/teams/{id} [patch]
func (h *HTTPHandler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	var req teamReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", details)
		return
	}

	team, err := h.service.RenameTeam(r.Context(), trainer.ID, r.PathValue("id"), req.Name)
	if err != nil {
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, team, nil)
}

// DeleteTeam handles DELETE /v1/me/teams/{id}
// @Summary Delete a team
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /v1/me/teams/{id} [delete]
func (h *HTTPHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	trainer, ok := httpx.RequireTrainer(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(r.Context(), trainer.ID, r.PathValue("id")); err != nil {
		if errors.Is(err, ErrLastTeam) {
			httpx.JSONError(w, r, http.StatusConflict, "LAST_TEAM", "A trainer must keep at least one team", nil)
			return
		}
		httpx.JSONDomainError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
