// AngelaMos | 2026
// catalog.go

package book

import (
	"context"
	"encoding/json"
	"time"
)

// Catalog is the port to an external bibliographic source. Adapters return
// core.ErrNotFound when the source has no match.
type Catalog interface {
	SearchByISBN(ctx context.Context, isbn string) (*CatalogVolume, error)
	Search(ctx context.Context, query string, maxResults int) ([]CatalogVolume, error)
}

// CatalogVolume is a normalized external record. Metadata keeps the raw
// source payload for provenance.
type CatalogVolume struct {
	Source          string          `json:"source"`
	ExternalID      string          `json:"externalId"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	Genre           *string         `json:"genre,omitempty"`
	PublicationDate *time.Time      `json:"publicationDate,omitempty"`
	ISBN10          *string         `json:"isbn10,omitempty"`
	ISBN13          *string         `json:"isbn13,omitempty"`
	CoverImageURL   *string         `json:"coverImageUrl,omitempty"`
	Metadata        json.RawMessage `json:"-"`
}
