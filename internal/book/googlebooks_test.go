// AngelaMos | 2026
// googlebooks_test.go

package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/library-api/internal/config"
	"github.com/carterperez-dev/library-api/internal/core"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *GoogleBooksCatalog {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGoogleBooksCatalog(config.GoogleBooksConfig{
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})
}

func TestSearchByISBNMapsVolume(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9780134190440", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "vol-go",
				"volumeInfo": {
					"title": "The Go Programming Language",
					"description": "A reference.",
					"categories": ["Computers", "Programming"],
					"publishedDate": "2015-11-16",
					"industryIdentifiers": [
						{"type": "ISBN_10", "identifier": "0134190440"},
						{"type": "ISBN_13", "identifier": "9780134190440"}
					],
					"imageLinks": {"thumbnail": "http://example.com/cover.jpg"}
				}
			}]
		}`))
	})

	v, err := catalog.SearchByISBN(context.Background(), "9780134190440")
	require.NoError(t, err)

	assert.Equal(t, "google_books", v.Source)
	assert.Equal(t, "vol-go", v.ExternalID)
	assert.Equal(t, "The Go Programming Language", v.Title)

	require.NotNil(t, v.Description)
	assert.Equal(t, "A reference.", *v.Description)

	require.NotNil(t, v.Genre)
	assert.Equal(t, "Computers", *v.Genre)

	require.NotNil(t, v.ISBN10)
	assert.Equal(t, "0134190440", *v.ISBN10)
	require.NotNil(t, v.ISBN13)
	assert.Equal(t, "9780134190440", *v.ISBN13)

	require.NotNil(t, v.PublicationDate)
	assert.Equal(t,
		time.Date(2015, 11, 16, 0, 0, 0, 0, time.UTC),
		*v.PublicationDate,
	)

	require.NotNil(t, v.CoverImageURL)
	assert.Equal(t, "http://example.com/cover.jpg", *v.CoverImageURL)

	assert.NotEmpty(t, v.Metadata)
}

func TestSearchByISBNEmptyResult(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := catalog.SearchByISBN(context.Background(), "9780000000000")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSearchByISBNUpstreamError(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := catalog.SearchByISBN(context.Background(), "9780000000000")

	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestSearchClampsMaxResults(t *testing.T) {
	var gotMax string
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotMax = r.URL.Query().Get("maxResults")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0, "items": []}`))
	})

	_, err := catalog.Search(context.Background(), "golang", 500)
	require.NoError(t, err)

	assert.Equal(t, "10", gotMax)
}

func TestParsePublishedDateGranularities(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{
			name: "full date",
			raw:  "2015-11-16",
			want: timePtr(time.Date(2015, 11, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "year and month",
			raw:  "2015-11",
			want: timePtr(time.Date(2015, 11, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "year only",
			raw:  "2015",
			want: timePtr(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "garbage",
			raw:  "sometime",
			want: nil,
		},
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parsePublishedDate(tc.raw)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tc.want))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
