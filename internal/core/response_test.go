// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("get book: %w", ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("create loan: %w", ErrConflict),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("bad isbn: %w", ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid credentials",
			err:        fmt.Errorf("login: %w", ErrInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "no capacity",
			err:        fmt.Errorf("register: %w", ErrNoCapacity),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
		},
		{
			name:       "forbidden",
			err:        fmt.Errorf("delete: %w", ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			DomainError(w, tc.err, "book")

			assert.Equal(t, tc.wantStatus, w.Code)

			var body struct {
				Success bool      `json:"success"`
				Error   *AppError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestOKEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	OK(w, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"success": true, "data": {"hello": "world"}}`,
		w.Body.String(),
	)
}

func TestPaginatedMeta(t *testing.T) {
	w := httptest.NewRecorder()

	Paginated(w, []int{1, 2, 3}, 2, 3, 10)

	var body struct {
		Success bool           `json:"success"`
		Data    []int          `json:"data"`
		Meta    PaginationMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, []int{1, 2, 3}, body.Data)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 3, body.Meta.PageSize)
	assert.Equal(t, 10, body.Meta.Total)
	assert.Equal(t, 4, body.Meta.TotalPages)
}

func TestNoContentHasEmptyBody(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
