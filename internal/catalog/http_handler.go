package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pokecatcher/internal/httpx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func init() {
	httpx.RegisterValidation("stat_key", IsStatKey)
}

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type listParams struct {
	Q          string `json:"q" validate:"max=100"`
	Type       string `json:"type" validate:"max=20"`
	Generation string `json:"generation" validate:"omitempty,oneof=I II III IV V VI VII VIII unknown"`
	Sort       string `json:"sort" validate:"omitempty,stat_key"`
	Order      string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// List handles GET /v1/catalog
// @Summary Browse the loaded catalog
// @Description Search, filter and sort the Pokemon loaded so far
// @Tags catalog
// @Produce json
// @Param q query string false "Name, id or type"
// @Param type query string false "Type tag"
// @Param generation query string false "Generation label (I..VIII, unknown)"
// @Param legendary query bool false "Legendary only"
// @Param sort query string false "Stat key"
// @Param order query string false "asc or desc" default(asc)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/catalog [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := listParams{
		Q:          query.Get("q"),
		Type:       strings.ToLower(query.Get("type")),
		Generation: query.Get("generation"),
		Sort:       query.Get("sort"),
		Order:      strings.ToLower(query.Get("order")),
	}
	if details := httpx.ValidateStruct(params); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid query parameters", details)
		return
	}

	legendary := false
	if v := query.Get("legendary"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid query parameters",
				[]httpx.ErrorDetail{{Field: "legendary", Message: "legendary must be a boolean"}})
			return
		}
		legendary = b
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	view := h.svc.View(params.Q,
		Filters{Type: params.Type, Generation: params.Generation, LegendaryOnly: legendary},
		Sort{Key: params.Sort, Descending: params.Order == "desc"})
	total := len(view)

	httpx.JSONSuccess(w, r, Paginate(view, page, pageSize), map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
		"exhausted":   h.svc.Exhausted(),
	})
}

// Autocomplete handles GET /v1/catalog/autocomplete
// @Summary Suggest Pokemon names
// @Tags catalog
// @Produce json
// @Param q query string false "Name prefix"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/catalog/autocomplete [get]
func (h *HTTPHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, h.svc.Autocomplete(r.URL.Query().Get("q")), nil)
}

// Get handles GET /v1/catalog/{id}
// @Summary Get a catalog entry
// @Tags catalog
// @Produce json
// @Param id path int true "Pokemon id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/catalog/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, entry, nil)
}

// Species handles GET /v1/catalog/{id}/species
// @Summary Flavor text and evolution chain
// @Tags catalog
// @Produce json
// @Param id path int true "Pokemon id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/catalog/{id}/species [get]
func (h *HTTPHandler) Species(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.Species(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, detail, nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Pokemon not found", nil)
		return
	}
	httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FAILED", "Pokemon data is unavailable", nil)
}

type JobHandler struct {
	svc    *Service
	secret string
}

func NewJobHandler(svc *Service, secret string) *JobHandler {
	return &JobHandler{svc: svc, secret: secret}
}

// LoadNextPage handles POST /internal/jobs/catalog/load
// @Summary Load the next catalog page
// @Description Fetch one page from PokeAPI and append it to the catalog
// @Tags internal
// @Produce json
// @Param X-Internal-Secret header string true "Internal secret for authentication"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /internal/jobs/catalog/load [post]
func (h *JobHandler) LoadNextPage(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get("X-Internal-Secret") != h.secret {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return
	}

	res, err := h.svc.LoadNextPage(r.Context())
	if err != nil {
		if errors.Is(err, ErrLoadInProgress) {
			httpx.JSONError(w, r, http.StatusConflict, "LOAD_IN_PROGRESS", "A catalog page is already loading", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadGateway, "LOAD_FAILED", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"appended":    len(res.Appended),
		"dropped":     res.Dropped,
		"next_offset": res.NextOffset,
		"exhausted":   res.Exhausted,
		"total":       res.Total,
	}, nil)
}
