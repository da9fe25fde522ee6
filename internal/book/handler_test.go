// AngelaMos | 2026
// handler_test.go

package book

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(repo *fakeBookRepo) *chi.Mux {
	svc := NewService(nil, repo, &fakeAuthorRepo{}, &fakeCatalog{})
	h := NewHandler(svc)

	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	h.RegisterRoutes(r, passthrough)
	return r
}

func TestSearchSimpleReadsFilterParams(t *testing.T) {
	repo := newFakeBookRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/books/search/simple?title=Dune&genre=Fiction&authorName=Herbert",
		nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.simpleCalls, 1)
	assert.Equal(t, "Dune", repo.simpleCalls[0].title)
	assert.Equal(t, "Fiction", repo.simpleCalls[0].genre)
	assert.Equal(t, "Herbert", repo.simpleCalls[0].authorName)
}

func TestSearchSimpleAllowsAnyFilterSubset(t *testing.T) {
	repo := newFakeBookRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/books/search/simple?authorName=Herbert", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.simpleCalls, 1)
	assert.Empty(t, repo.simpleCalls[0].title)
	assert.Empty(t, repo.simpleCalls[0].genre)
	assert.Equal(t, "Herbert", repo.simpleCalls[0].authorName)
}

func TestSearchReadsGenreParam(t *testing.T) {
	repo := newFakeBookRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/books/search?q=desert+planet&genre=Fiction", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.searchCalls, 1)
	assert.Equal(t, "desert planet", repo.searchCalls[0].query)
	assert.Equal(t, "Fiction", repo.searchCalls[0].genre)
}

func TestSearchRequiresQuery(t *testing.T) {
	repo := newFakeBookRepo()
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet,
		"/books/search?genre=Fiction", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.searchCalls)
}
