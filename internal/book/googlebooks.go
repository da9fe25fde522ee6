// AngelaMos | 2026
// googlebooks.go

package book

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carterperez-dev/library-api/internal/config"
	"github.com/carterperez-dev/library-api/internal/core"
)

const googleBooksSource = "google_books"

// GoogleBooksCatalog implements Catalog against the Google Books volumes
// API. An empty API key is accepted; Google serves unauthenticated volume
// queries at a lower quota.
type GoogleBooksCatalog struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewGoogleBooksCatalog(cfg config.GoogleBooksConfig) *GoogleBooksCatalog {
	return &GoogleBooksCatalog{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          imageLinks           `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

func (g *GoogleBooksCatalog) SearchByISBN(
	ctx context.Context,
	isbn string,
) (*CatalogVolume, error) {
	resp, err := g.query(ctx, "isbn:"+isbn, 1)
	if err != nil {
		return nil, err
	}

	if resp.TotalItems == 0 || len(resp.Items) == 0 {
		return nil, fmt.Errorf("catalog lookup %q: %w", isbn, core.ErrNotFound)
	}

	v, err := toCatalogVolume(resp.Items[0])
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (g *GoogleBooksCatalog) Search(
	ctx context.Context,
	query string,
	maxResults int,
) ([]CatalogVolume, error) {
	if maxResults < 1 || maxResults > 40 {
		maxResults = 10
	}

	resp, err := g.query(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	volumes := make([]CatalogVolume, 0, len(resp.Items))
	for _, item := range resp.Items {
		v, err := toCatalogVolume(item)
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, *v)
	}

	return volumes, nil
}

func (g *GoogleBooksCatalog) query(
	ctx context.Context,
	q string,
	maxResults int,
) (*volumesResponse, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	reqURL := g.endpoint + "/volumes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}

	httpResp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("catalog response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"catalog responded %d", httpResp.StatusCode)
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("catalog response: %w", err)
	}

	return &resp, nil
}

func toCatalogVolume(item volume) (*CatalogVolume, error) {
	info := item.VolumeInfo

	metadata, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("catalog metadata: %w", err)
	}

	v := &CatalogVolume{
		Source:     googleBooksSource,
		ExternalID: item.ID,
		Title:      info.Title,
		Metadata:   metadata,
	}

	if info.Description != "" {
		v.Description = &info.Description
	}
	if len(info.Categories) > 0 {
		v.Genre = &info.Categories[0]
	}
	if d := parsePublishedDate(info.PublishedDate); d != nil {
		v.PublicationDate = d
	}
	for _, id := range info.IndustryIdentifiers {
		identifier := id.Identifier
		switch id.Type {
		case "ISBN_10":
			v.ISBN10 = &identifier
		case "ISBN_13":
			v.ISBN13 = &identifier
		}
	}
	if info.ImageLinks.Thumbnail != "" {
		v.CoverImageURL = &info.ImageLinks.Thumbnail
	} else if info.ImageLinks.SmallThumbnail != "" {
		v.CoverImageURL = &info.ImageLinks.SmallThumbnail
	}

	return v, nil
}

// parsePublishedDate accepts the three granularities Google Books emits.
func parsePublishedDate(raw string) *time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
