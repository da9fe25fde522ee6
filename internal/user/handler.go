// AngelaMos | 2026
// handler.go

package user

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{userID}", h.Get)
		r.Patch("/{userID}", h.Update)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Delete("/{userID}", h.Delete)
		})
	})
}

// Get returns a user's profile. Users may read themselves; admins anyone.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	if !canAccess(r, id) {
		core.Forbidden(w, "insufficient permissions")
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.Created(w, ToUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	if !canAccess(r, id) {
		core.Forbidden(w, "insufficient permissions")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.DomainError(w, err, "user")
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		Role:     r.URL.Query().Get("role"),
	}
	params.Normalize()

	users, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}

// canAccess implements the self-or-admin rule enforced at the app layer in
// place of the storage-level row policies.
func canAccess(r *http.Request, targetID int64) bool {
	ctx := r.Context()
	return middleware.IsAdmin(ctx) || middleware.GetUserID(ctx) == targetID
}

func parseID(
	w http.ResponseWriter,
	r *http.Request,
	param string,
) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid "+param)
		return 0, false
	}
	return id, true
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
