// AngelaMos | 2026
// handler.go

package author

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/library-api/internal/core"
	"github.com/carterperez-dev/library-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the author catalog. Reads are public; writes are
// admin-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/authors", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{authorID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin)

			r.Post("/", h.Create)
			r.Patch("/{authorID}", h.Update)
			r.Delete("/{authorID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListAuthorsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "pageSize", 20),
		Search:   r.URL.Query().Get("search"),
	}
	params.Normalize()

	authors, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToAuthorResponseList(authors),
		params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "author")
		return
	}

	core.OK(w, ToAuthorResponse(a))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "author")
		return
	}

	core.Created(w, ToAuthorResponse(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "author")
		return
	}

	core.OK(w, ToAuthorResponse(a))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.DomainError(w, err, "author")
		return
	}

	core.NoContent(w)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "authorID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid authorID")
		return 0, false
	}
	return id, true
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
