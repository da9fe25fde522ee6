// AngelaMos | 2026
// handler.go

package loan

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

// RegisterRoutes mounts loan operations. Borrowing is reserved for the
// USER role; admins oversee the ledger but do not borrow.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/loans", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequireUser).Post("/", h.Create)
		r.Post("/{loanID}/return", h.Return)
		r.With(middleware.RequireUser).Get("/my", h.My)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/", h.ListOngoing)
			r.Get("/search", h.Search)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	l, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.DomainError(w, err, "book")
		return
	}

	core.Created(w, ToLoanResponse(l))
}

func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "authentication required")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "loan")
		return
	}

	if l.UserID != userID && !middleware.IsAdmin(r.Context()) {
		core.Forbidden(w, "not your loan")
		return
	}

	returned, err := h.service.Return(r.Context(), id)
	if err != nil {
		core.DomainError(w, err, "loan")
		return
	}

	core.OK(w, ToLoanResponse(returned))
}

// My lists the caller's ongoing loans; closed loans stay out of the
// response.
func (h *Handler) My(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "authentication required")
		return
	}

	loans, err := h.service.FindOngoingByUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLoanResponseList(loans))
}

func (h *Handler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.FindOngoing(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLoanResponseList(loans))
}

// Search filters the ledger by borrower or book; exactly one filter is
// required.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userIDRaw := r.URL.Query().Get("userId")
	bookIDRaw := r.URL.Query().Get("bookId")

	switch {
	case userIDRaw != "":
		userID, err := strconv.ParseInt(userIDRaw, 10, 64)
		if err != nil || userID < 1 {
			core.BadRequest(w, "invalid userId")
			return
		}
		loans, err := h.service.FindByUserID(r.Context(), userID)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		core.OK(w, ToLoanResponseList(loans))

	case bookIDRaw != "":
		bookID, err := strconv.ParseInt(bookIDRaw, 10, 64)
		if err != nil || bookID < 1 {
			core.BadRequest(w, "invalid bookId")
			return
		}
		loans, err := h.service.FindByBookID(r.Context(), bookID)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		core.OK(w, ToLoanResponseList(loans))

	default:
		core.BadRequest(w, "userId or bookId is required")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "loanID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid loanID")
		return 0, false
	}
	return id, true
}
