// AngelaMos | 2026
// handler.go

package card

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

// RegisterRoutes exposes card pool management; admin-only since the pool
// gates registration capacity.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/cards", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/inventory", h.Inventory)
		r.Get("/{cardID}", h.Get)
		r.Post("/{cardID}/archive", h.Archive)
		r.Delete("/{cardID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" &&
		status != StatusFree &&
		status != StatusInUse &&
		status != StatusArchived {
		core.BadRequest(w, "invalid status filter")
		return
	}

	cards, err := h.service.List(r.Context(), status)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCardResponseList(cards))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "card")
		return
	}

	core.Created(w, ToCardResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "card")
		return
	}

	core.OK(w, ToCardResponse(c))
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Archive(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "card")
		return
	}

	core.OK(w, ToCardResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.DomainError(w, err, "card")
		return
	}

	core.NoContent(w)
}

func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.service.Inventory(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, inventory)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "cardID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid cardID")
		return 0, false
	}
	return id, true
}
