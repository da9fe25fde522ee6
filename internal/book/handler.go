// AngelaMos | 2026
// handler.go

package book

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

// RegisterRoutes mounts the book catalog. Reads and searches are public;
// mutations and external-catalog calls are admin-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/search/simple", h.SearchSimple)
		r.Get("/{bookID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin)

			r.Post("/", h.Create)
			r.Post("/from-isbn", h.CreateFromCatalog)
			r.Get("/catalog/search", h.SearchCatalog)
			r.Patch("/{bookID}", h.Update)
			r.Delete("/{bookID}", h.Delete)
			r.Post("/{bookID}/enrich", h.Enrich)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListBooksParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "pageSize", 20),
		Genre:    r.URL.Query().Get("genre"),
	}
	params.Normalize()

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToBookResponseList(books),
		params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		core.BadRequest(w, "q is required")
		return
	}

	books, err := h.service.Search(
		r.Context(), query, r.URL.Query().Get("genre"),
		parseIntQuery(r, "limit", 20))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponseList(books))
}

// SearchSimple takes independent optional filters; all provided ones must
// match.
func (h *Handler) SearchSimple(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	books, err := h.service.SearchSimple(
		r.Context(),
		q.Get("title"),
		q.Get("genre"),
		q.Get("authorName"),
		parseIntQuery(r, "limit", 20))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponseList(books))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.EnrichFromCatalog(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) CreateFromCatalog(w http.ResponseWriter, r *http.Request) {
	var req ImportBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateFromCatalog(r.Context(), req.ISBN)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.Created(w, resp)
}

func (h *Handler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		core.BadRequest(w, "q is required")
		return
	}

	volumes, err := h.service.SearchCatalog(
		r.Context(), query, parseIntQuery(r, "maxResults", 10))
	if err != nil {
		core.DomainError(w, err, "catalog")
		return
	}

	core.OK(w, volumes)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid bookID")
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
